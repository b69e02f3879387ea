// Package huffman implements Huffman coding of text.  A message is compressed
// by counting its symbols, building a prefix-code tree from those counts,
// encoding every symbol with its code, and packing the resulting bitstream
// into bytes.  The frequency table travels with the payload, and the decoder
// rebuilds the identical tree from it.
//
// Symbols are Unicode code points, not bytes.  Packed bytes use MSB-first bit
// order: the first bit of every 8-bit group is the most significant bit of
// its byte, and the final byte is padded with zero bits.
//
// References:
//
//     <https://en.wikipedia.org/wiki/Huffman_coding>
//
package huffman
