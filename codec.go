package huffman

import (
	"strconv"
)

// Compress encodes text with a code built from its own symbol counts.  Empty
// text produces an empty Container; no tree is built for it.
func Compress(text string) (*Container, error) {
	return CompressWith(text, Frequencies(text))
}

// CompressWith encodes text with a code built from the given frequency
// table, which must cover every symbol of text.  It returns an
// *UnknownSymbolError otherwise.
func CompressWith(text string, freqs FrequencyTable) (*Container, error) {
	if text == "" {
		return &Container{Frequencies: freqs.Clone()}, nil
	}

	e, err := NewEncoder(freqs)
	if err != nil {
		return nil, err
	}

	bits, err := e.Encode(text)
	if err != nil {
		return nil, err
	}

	return &Container{
		BitLen:      uint64(len(bits)),
		Frequencies: freqs.Clone(),
		Packed:      Pack(bits),
	}, nil
}

// Decompress reverses Compress.  The tree is rebuilt from c.Frequencies, the
// packed bytes are unpacked and trimmed to c.BitLen, and the remaining bits
// are decoded.
func Decompress(c *Container) (string, error) {
	if c == nil {
		return "", &CorruptContainerError{Field: "container", Expect: "a container", Actual: "nil"}
	}

	available := 8 * uint64(len(c.Packed))
	if c.BitLen > available {
		return "", &TruncatedStreamError{Expect: c.BitLen, Actual: available}
	}
	if want := bytesForBits(c.BitLen); uint64(len(c.Packed)) != want {
		return "", &CorruptContainerError{
			Field:  "packed bytes",
			Expect: strconv.FormatUint(want, 10) + " bytes",
			Actual: strconv.Itoa(len(c.Packed)) + " bytes",
		}
	}

	bits := Unpack(c.Packed)
	for index := c.BitLen; index < available; index++ {
		if bits[index] {
			return "", &CorruptContainerError{
				Field:  "padding",
				Expect: "zero bits",
				Actual: "1 bit at position " + strconv.FormatUint(index, 10),
			}
		}
	}
	bits = bits[:c.BitLen]

	if c.BitLen == 0 {
		return "", nil
	}

	d, err := NewDecoder(c.Frequencies)
	if err != nil {
		return "", err
	}
	return d.Decode(bits)
}
