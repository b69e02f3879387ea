package huffman

import (
	"io"
	"strings"
)

// Decoder turns a Huffman-coded bitstream back into text.
type Decoder struct {
	tree *Tree
}

// NewDecoder rebuilds the tree for the given frequencies.  Given the same
// table, it produces the same tree as NewEncoder.  It returns the errors of
// BuildTree.
func NewDecoder(freqs FrequencyTable) (*Decoder, error) {
	t, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	return &Decoder{tree: t}, nil
}

// Decode walks the tree from the root, one bit at a time, and emits a symbol
// each time it reaches a leaf.  The bitstream must end exactly on a symbol
// boundary: a stream that stops partway down the tree yields a
// *TruncatedStreamError.  For a single-symbol tree, every 0 bit is one symbol
// and a 1 bit yields an *InvalidCodeError.
func (d *Decoder) Decode(bits Bits) (string, error) {
	t := d.tree
	root := t.Root()

	var sb strings.Builder

	if t.IsLeaf(root) {
		symbol := t.Symbol(root)
		sb.Grow(len(bits))
		for index, bit := range bits {
			if bit {
				return "", &InvalidCodeError{Position: uint64(index)}
			}
			sb.WriteRune(symbol)
		}
		return sb.String(), nil
	}

	sb.Grow(len(bits) / 2)
	current := root
	var depth uint
	for _, bit := range bits {
		current = t.Step(current, bit)
		depth++
		if t.IsLeaf(current) {
			sb.WriteRune(t.Symbol(current))
			current = root
			depth = 0
		}
	}
	if depth != 0 {
		n := uint64(len(bits))
		return "", &TruncatedStreamError{Expect: n - uint64(depth), Actual: n, Depth: depth}
	}
	return sb.String(), nil
}

// Tree returns the code tree.
func (d *Decoder) Tree() *Tree {
	return d.tree
}

// Dump writes a programmer-readable debugging dump of the Decoder's tree to
// the given writer.
func (d *Decoder) Dump(w io.Writer) (int64, error) {
	return d.tree.Dump(w)
}
