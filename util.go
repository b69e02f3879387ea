package huffman

import (
	mathbits "math/bits"
)

// log2ceil returns the number of bits needed to represent x, treating 0 as 1.
// It is used as a capacity hint for tree-depth-sized buffers.
func log2ceil(x int) int {
	if x <= 0 {
		x = 1
	}
	return mathbits.Len(uint(x))
}

// bytesForBits returns the number of bytes needed to hold n bits.
func bytesForBits(n uint64) uint64 {
	return (n + 7) / 8
}
