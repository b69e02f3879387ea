package huffman

import (
	"fmt"
	"math"
	"strconv"
)

// EmptyAlphabetError is returned when a tree is requested for a frequency
// table with no symbols.  Callers must handle empty text before building a
// tree.
type EmptyAlphabetError struct{}

func (err *EmptyAlphabetError) Error() string {
	return "cannot build Huffman tree: frequency table is empty"
}

// FrequencyOverflowError is returned when the counts of a frequency table
// sum to more than fits in a uint64.
type FrequencyOverflowError struct {
	// Symbol is the symbol whose count pushed the total past the limit.
	Symbol Symbol
	Count  uint64
}

func (err *FrequencyOverflowError) Error() string {
	return fmt.Sprintf("frequency table overflows: adding %d for symbol %s exceeds %d", err.Count, strconv.QuoteRune(err.Symbol), uint64(math.MaxUint64))
}

// CodeTooLongError is returned when a tree is deeper than MaxCodeSize, so
// that some of its codes cannot be represented.
type CodeTooLongError struct {
	// Node is the first internal node found at depth MaxCodeSize.
	Node NodeID
}

func (err *CodeTooLongError) Error() string {
	return fmt.Sprintf("Huffman tree too deep: node %d has children beyond the %d-bit code limit", err.Node, MaxCodeSize)
}

// UnknownSymbolError is returned when the text to encode contains a symbol
// that has no code.
type UnknownSymbolError struct {
	Symbol Symbol

	// Offset is the byte offset of Symbol within the text.
	Offset int
}

func (err *UnknownSymbolError) Error() string {
	return fmt.Sprintf("unknown symbol %s (U+%04X) at offset %d: not in frequency table", strconv.QuoteRune(err.Symbol), err.Symbol, err.Offset)
}

// TruncatedStreamError is returned when a bitstream runs out in the middle
// of a code, or when it holds fewer bits than its header promised.
type TruncatedStreamError struct {
	// Expect is the number of bits needed.
	Expect uint64

	// Actual is the number of bits available.
	Actual uint64

	// Depth is the number of bits of the unfinished code, if any.
	Depth uint
}

func (err *TruncatedStreamError) Error() string {
	if err.Depth != 0 {
		return fmt.Sprintf("truncated bitstream: stream ended %d bits into a code after %d bits", err.Depth, err.Actual)
	}
	return fmt.Sprintf("truncated bitstream: expected %d bits, got %d", err.Expect, err.Actual)
}

// InvalidCodeError is returned when a bit leads nowhere in the tree.  This
// only happens with single-symbol trees, whose one code is "0".
type InvalidCodeError struct {
	// Position is the index of the offending bit.
	Position uint64
}

func (err *InvalidCodeError) Error() string {
	return fmt.Sprintf("invalid code at bit %d: single-symbol stream contains a 1 bit", err.Position)
}

// CorruptContainerError is returned when a serialized container is
// malformed.
type CorruptContainerError struct {
	// Field names the part of the container that failed to parse.
	Field string

	// Expect and Actual describe the mismatch, when there is one.
	Expect string
	Actual string

	// Err is the underlying cause, if any.
	Err error
}

func (err *CorruptContainerError) Error() string {
	msg := "corrupt container: " + err.Field
	if err.Expect != "" || err.Actual != "" {
		msg += fmt.Sprintf(": expected %s, got %s", err.Expect, err.Actual)
	}
	if err.Err != nil {
		msg += ": " + err.Err.Error()
	}
	return msg
}

func (err *CorruptContainerError) Unwrap() error {
	return err.Err
}

var (
	_ error = (*EmptyAlphabetError)(nil)
	_ error = (*FrequencyOverflowError)(nil)
	_ error = (*CodeTooLongError)(nil)
	_ error = (*UnknownSymbolError)(nil)
	_ error = (*TruncatedStreamError)(nil)
	_ error = (*InvalidCodeError)(nil)
	_ error = (*CorruptContainerError)(nil)
)
