package huffman

import (
	"io"
)

// Encoder turns text into a Huffman-coded bitstream.
type Encoder struct {
	tree  *Tree
	codes CodeTable
}

// NewEncoder builds the tree and code table for the given frequencies.  It
// returns the errors of BuildTree and DeriveCodes.
func NewEncoder(freqs FrequencyTable) (*Encoder, error) {
	t, err := BuildTree(freqs)
	if err != nil {
		return nil, err
	}
	codes, err := DeriveCodes(t)
	if err != nil {
		return nil, err
	}
	return &Encoder{tree: t, codes: codes}, nil
}

// Encode concatenates the code of every symbol of text, in order.  It returns
// an *UnknownSymbolError for a symbol that has no code.
func (e *Encoder) Encode(text string) (Bits, error) {
	return e.AppendEncoded(nil, text)
}

// AppendEncoded is like Encode, but appends the result to dst.
func (e *Encoder) AppendEncoded(dst Bits, text string) (Bits, error) {
	for offset, symbol := range text {
		hc, found := e.codes[symbol]
		if !found {
			return dst, &UnknownSymbolError{Symbol: symbol, Offset: offset}
		}
		dst = hc.AppendTo(dst)
	}
	return dst, nil
}

// EncodedLen returns the number of bits Encode would produce for text, or an
// *UnknownSymbolError.
func (e *Encoder) EncodedLen(text string) (uint64, error) {
	var n uint64
	for offset, symbol := range text {
		hc, found := e.codes[symbol]
		if !found {
			return 0, &UnknownSymbolError{Symbol: symbol, Offset: offset}
		}
		n += uint64(hc.Size)
	}
	return n, nil
}

// Codes returns the code table.  The caller must not modify it.
func (e *Encoder) Codes() CodeTable {
	return e.codes
}

// Tree returns the code tree.
func (e *Encoder) Tree() *Tree {
	return e.tree
}

// Dump writes a programmer-readable debugging dump of the Encoder's code
// table to the given writer.
func (e *Encoder) Dump(w io.Writer) (int64, error) {
	return e.codes.Dump(w)
}
