package huffman

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/chronos-tachyon/assert"
	"github.com/icza/bitio"
)

// Bits is a logical sequence of bits, first bit first.
type Bits []bool

// ParseBits parses a string of '0' and '1' characters.
func ParseBits(s string) (Bits, error) {
	out := make(Bits, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '0':
		case '1':
			out[i] = true
		default:
			return nil, fmt.Errorf("invalid bit %q at index %d", s[i], i)
		}
	}
	return out, nil
}

// String returns the bits as a string of '0' and '1' characters.
func (bits Bits) String() string {
	var sb strings.Builder
	sb.Grow(len(bits))
	for _, bit := range bits {
		if bit {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

var _ fmt.Stringer = Bits(nil)

// Pack packs bits into bytes, MSB-first: bit 0 of the sequence becomes the
// most significant bit of byte 0.  The last byte is padded on the right with
// zero bits, so the result holds ceil(len(bits)/8) bytes.
func Pack(bits Bits) []byte {
	var buf bytes.Buffer
	buf.Grow(int(bytesForBits(uint64(len(bits)))))

	// Writes to a bytes.Buffer never fail.
	w := bitio.NewWriter(&buf)
	for _, bit := range bits {
		err := w.WriteBool(bit)
		assert.Assertf(err == nil, "bitio.Writer.WriteBool: %v", err)
	}
	err := w.Close()
	assert.Assertf(err == nil, "bitio.Writer.Close: %v", err)

	return buf.Bytes()
}

// Unpack is the inverse of Pack.  It returns all 8*len(data) bits, padding
// included; the caller knows how many of them are meaningful.
func Unpack(data []byte) Bits {
	out := make(Bits, 0, 8*len(data))

	r := bitio.NewReader(bytes.NewReader(data))
	for i := 0; i < 8*len(data); i++ {
		bit, err := r.ReadBool()
		assert.Assertf(err == nil, "bitio.Reader.ReadBool: %v", err)
		out = append(out, bit)
	}
	return out
}
