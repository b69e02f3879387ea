package huffman

import (
	"bytes"
	"fmt"
	"io"
	"sort"
	"strconv"

	"github.com/chronos-tachyon/assert"
)

// MaxCodeSize is the longest code a CodeTable can hold.  Text that fits in
// memory never needs a longer code, but a frequency table from elsewhere can:
// Fibonacci-shaped counts over 66 or more symbols build a deeper tree.
const MaxCodeSize = 64

// Code represents a sequence of bits.
type Code struct {
	// Size holds the number of valid bits.
	Size byte

	// Bits holds the actual values of the bits.  The first bit is the most
	// significant of the Size low bits of Bits.
	Bits uint64
}

// MakeCode is a convenience function that constructs a Code.
func MakeCode(size byte, bits uint64) Code {
	return Code{Size: size, Bits: bits}
}

// Bit returns bit i of the code, counting from the first bit.
func (hc Code) Bit(i byte) bool {
	return (hc.Bits>>(hc.Size-1-i))&1 != 0
}

// Append returns the code extended by one bit.  It panics if hc already
// holds MaxCodeSize bits.
func (hc Code) Append(bit bool) Code {
	assert.Assertf(hc.Size < MaxCodeSize, "code longer than %d bits", MaxCodeSize)
	next := hc.Bits << 1
	if bit {
		next |= 1
	}
	return MakeCode(hc.Size+1, next)
}

// AppendTo appends the bits of the code to dst, first bit first.
func (hc Code) AppendTo(dst Bits) Bits {
	for i := byte(0); i < hc.Size; i++ {
		dst = append(dst, hc.Bit(i))
	}
	return dst
}

// HasPrefix reports whether prefix is a prefix of hc.  Every code is a
// prefix of itself.
func (hc Code) HasPrefix(prefix Code) bool {
	if prefix.Size > hc.Size {
		return false
	}
	return hc.Bits>>(hc.Size-prefix.Size) == prefix.Bits
}

// String returns the string representation of this Code.
func (hc Code) String() string {
	if hc.Size == 0 {
		return "\"\""
	}
	format := "%0" + strconv.FormatUint(uint64(hc.Size), 10) + "b"
	return strconv.Quote(fmt.Sprintf(format, hc.Bits))
}

var _ fmt.Stringer = Code{}

// CodeTable maps every symbol of a Tree to its code.
type CodeTable map[Symbol]Code

// DeriveCodes computes the code of every leaf of the tree: the path from the
// root, with 0 for each left turn and 1 for each right turn.  A tree with a
// single leaf assigns that symbol the code "0".  A *CodeTooLongError is
// returned if any leaf lies deeper than MaxCodeSize.
func DeriveCodes(t *Tree) (CodeTable, error) {
	codes := make(CodeTable, t.NumSymbols())

	root := t.Root()
	if t.IsLeaf(root) {
		codes[t.Symbol(root)] = MakeCode(1, 0)
		return codes, nil
	}

	// Walk the tree with an explicit stack; its depth is the depth of the
	// tree, not the number of nodes.
	//
	// stackItem.x tracks where we are at each node:
	//   x=0 → We just arrived at stackItem for the first time
	//   x=1 → We have already processed the left child
	//   x=2 → We have already processed both children

	type stackItem struct {
		id   NodeID
		code Code
		x    byte
	}

	stack := make([]stackItem, 0, log2ceil(t.NumSymbols())+1)
	stack = append(stack, stackItem{id: root})

	processChild := func(child NodeID, code Code) {
		if t.IsLeaf(child) {
			codes[t.Symbol(child)] = code
			return
		}
		stack = append(stack, stackItem{id: child, code: code})
	}

	for len(stack) != 0 {
		top := &stack[len(stack)-1]
		x := top.x
		top.x++
		if x < 2 && top.code.Size >= MaxCodeSize {
			return nil, &CodeTooLongError{Node: top.id}
		}
		left, right := t.Children(top.id)
		switch x {
		case 0:
			processChild(left, top.code.Append(false))
		case 1:
			processChild(right, top.code.Append(true))
		case 2:
			stack = stack[:len(stack)-1]
		}
	}

	return codes, nil
}

// MinSize is the bit length of the shortest code.
func (codes CodeTable) MinSize() byte {
	var minSize byte
	for _, hc := range codes {
		if minSize == 0 || hc.Size < minSize {
			minSize = hc.Size
		}
	}
	return minSize
}

// MaxSize is the bit length of the longest code.
func (codes CodeTable) MaxSize() byte {
	var maxSize byte
	for _, hc := range codes {
		if hc.Size > maxSize {
			maxSize = hc.Size
		}
	}
	return maxSize
}

// Dump writes a programmer-readable debugging dump of the table to the
// given writer, in ascending symbol order.
func (codes CodeTable) Dump(w io.Writer) (int64, error) {
	symbols := make([]Symbol, 0, len(codes))
	for symbol := range codes {
		symbols = append(symbols, symbol)
	}
	sort.Slice(symbols, func(i, j int) bool { return symbols[i] < symbols[j] })

	var buf bytes.Buffer
	buf.WriteString("CodeTable{\n")
	fmt.Fprintf(&buf, "\tMinSize() = %d\n", codes.MinSize())
	fmt.Fprintf(&buf, "\tMaxSize() = %d\n", codes.MaxSize())
	for _, symbol := range symbols {
		fmt.Fprintf(&buf, "\tEncode(%s) = %s\n", strconv.QuoteRune(symbol), codes[symbol])
	}
	buf.WriteString("}\n")
	return buf.WriteTo(w)
}
