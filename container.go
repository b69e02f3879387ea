package huffman

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"github.com/cespare/xxhash/v2"
)

const (
	containerMagic   = "HUF1"
	containerVersion = uint16(1)

	containerHeaderSize   = len(containerMagic) + 2
	containerChecksumSize = 8

	maxContainerBytes = 1 << 30 // 1 GiB
)

// Wire format (version 1):
//
//	magic     [4] = "HUF1"
//	version   = uint16 little-endian
//	bitLen    = uvarint
//	symbolCnt = uvarint
//	repeat symbolCnt times, in strictly ascending symbol order:
//	  symbol = uvarint
//	  count  = uvarint, > 0
//	packedLen = uvarint, == ceil(bitLen/8)
//	packed    = packedLen bytes, MSB-first bit order, zero-padded
//	checksum  = uint64 little-endian, xxhash64 of all preceding bytes
//
// Decoding requires all three of bitLen, the frequency table, and the packed
// bytes: the table is specific to one message.

// Container is the persisted form of a compressed message.
type Container struct {
	// BitLen is the number of meaningful bits in Packed, before padding.
	BitLen uint64

	// Frequencies is the symbol count table the code was built from.
	Frequencies FrequencyTable

	// Packed holds the packed bitstream.  It is opaque binary data.
	Packed []byte
}

// Ratio returns the size of the packed payload relative to the given
// original size in bytes.  It returns 0 if originalSize is 0.
func (c *Container) Ratio(originalSize int) float64 {
	if originalSize == 0 {
		return 0
	}
	return float64(len(c.Packed)) / float64(originalSize)
}

// Equal reports whether both containers hold the same fields.
func (c *Container) Equal(other *Container) bool {
	return c.BitLen == other.BitLen &&
		c.Frequencies.Equal(other.Frequencies) &&
		string(c.Packed) == string(other.Packed)
}

// Serialize returns the wire form of the container.  A table whose counts
// overflow a uint64 is refused with a *FrequencyOverflowError.
func Serialize(c *Container) ([]byte, error) {
	if c == nil {
		return nil, fmt.Errorf("cannot serialize a nil container")
	}
	if want := bytesForBits(c.BitLen); uint64(len(c.Packed)) != want {
		return nil, fmt.Errorf("packed payload holds %d bytes, bit length %d needs %d", len(c.Packed), c.BitLen, want)
	}

	symbols := c.Frequencies.Symbols()
	var total uint64
	for _, symbol := range symbols {
		count := c.Frequencies[symbol]
		if total+count < total {
			return nil, &FrequencyOverflowError{Symbol: symbol, Count: count}
		}
		total += count
	}
	size := containerHeaderSize + 3*binary.MaxVarintLen64 + 2*len(symbols)*binary.MaxVarintLen64 + len(c.Packed) + containerChecksumSize

	out := make([]byte, 0, size)
	out = append(out, containerMagic...)
	out = binary.LittleEndian.AppendUint16(out, containerVersion)
	out = binary.AppendUvarint(out, c.BitLen)
	out = binary.AppendUvarint(out, uint64(len(symbols)))
	for _, symbol := range symbols {
		count := c.Frequencies[symbol]
		if symbol < 0 || !utf8.ValidRune(symbol) {
			return nil, fmt.Errorf("frequency table holds invalid symbol U+%04X", symbol)
		}
		if count == 0 {
			return nil, fmt.Errorf("frequency table holds zero count for symbol %s", strconv.QuoteRune(symbol))
		}
		out = binary.AppendUvarint(out, uint64(symbol))
		out = binary.AppendUvarint(out, count)
	}
	out = binary.AppendUvarint(out, uint64(len(c.Packed)))
	out = append(out, c.Packed...)
	out = binary.LittleEndian.AppendUint64(out, xxhash.Sum64(out))
	return out, nil
}

// Deserialize parses the wire form of a container.  It returns a
// *CorruptContainerError if blob is malformed.
func Deserialize(blob []byte) (*Container, error) {
	if len(blob) < containerHeaderSize+containerChecksumSize {
		return nil, &CorruptContainerError{
			Field:  "header",
			Expect: "at least " + strconv.Itoa(containerHeaderSize+containerChecksumSize) + " bytes",
			Actual: strconv.Itoa(len(blob)) + " bytes",
		}
	}
	if magic := string(blob[:len(containerMagic)]); magic != containerMagic {
		return nil, &CorruptContainerError{Field: "magic", Expect: strconv.Quote(containerMagic), Actual: strconv.Quote(magic)}
	}
	if version := binary.LittleEndian.Uint16(blob[len(containerMagic):]); version != containerVersion {
		return nil, &CorruptContainerError{
			Field:  "version",
			Expect: strconv.FormatUint(uint64(containerVersion), 10),
			Actual: strconv.FormatUint(uint64(version), 10),
		}
	}

	body := blob[:len(blob)-containerChecksumSize]
	expectSum := binary.LittleEndian.Uint64(blob[len(body):])
	if actualSum := xxhash.Sum64(body); actualSum != expectSum {
		return nil, &CorruptContainerError{
			Field:  "checksum",
			Expect: fmt.Sprintf("%#016x", expectSum),
			Actual: fmt.Sprintf("%#016x", actualSum),
		}
	}

	r := blobReader{data: body, off: containerHeaderSize}

	bitLen, err := r.uvarint("bit length")
	if err != nil {
		return nil, err
	}

	symbolCnt, err := r.uvarint("symbol count")
	if err != nil {
		return nil, err
	}
	// Each entry takes at least two bytes.
	if symbolCnt > uint64(r.remaining()/2) {
		return nil, &CorruptContainerError{
			Field:  "symbol count",
			Expect: "at most " + strconv.Itoa(r.remaining()/2),
			Actual: strconv.FormatUint(symbolCnt, 10),
		}
	}

	freqs := make(FrequencyTable, symbolCnt)
	prev := int64(-1)
	var total uint64
	for index := uint64(0); index < symbolCnt; index++ {
		field := "frequency table entry " + strconv.FormatUint(index, 10)
		raw, err := r.uvarint(field + " symbol")
		if err != nil {
			return nil, err
		}
		if raw > uint64(MaxSymbol) || !utf8.ValidRune(Symbol(raw)) {
			return nil, &CorruptContainerError{Field: field + " symbol", Expect: "a Unicode scalar value", Actual: fmt.Sprintf("%#x", raw)}
		}
		if int64(raw) <= prev {
			return nil, &CorruptContainerError{
				Field:  field + " symbol",
				Expect: fmt.Sprintf("greater than U+%04X", prev),
				Actual: fmt.Sprintf("U+%04X", raw),
			}
		}
		prev = int64(raw)

		count, err := r.uvarint(field + " count")
		if err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, &CorruptContainerError{Field: field + " count", Expect: "a positive count", Actual: "0"}
		}
		if total+count < total {
			return nil, &CorruptContainerError{
				Field:  "frequency table",
				Expect: "counts summing to at most 2^64-1",
				Actual: fmt.Sprintf("overflow at entry %d (%d + %d)", index, total, count),
			}
		}
		total += count
		freqs[Symbol(raw)] = count
	}

	packedLen, err := r.uvarint("packed length")
	if err != nil {
		return nil, err
	}
	if want := bytesForBits(bitLen); packedLen != want {
		return nil, &CorruptContainerError{
			Field:  "packed length",
			Expect: strconv.FormatUint(want, 10),
			Actual: strconv.FormatUint(packedLen, 10),
		}
	}
	if packedLen != uint64(r.remaining()) {
		return nil, &CorruptContainerError{
			Field:  "packed bytes",
			Expect: strconv.FormatUint(packedLen, 10) + " bytes",
			Actual: strconv.Itoa(r.remaining()) + " bytes",
		}
	}

	packed := make([]byte, packedLen)
	copy(packed, r.data[r.off:])

	return &Container{BitLen: bitLen, Frequencies: freqs, Packed: packed}, nil
}

// MarshalBinary fulfills encoding.BinaryMarshaler.
func (c *Container) MarshalBinary() ([]byte, error) {
	return Serialize(c)
}

// UnmarshalBinary fulfills encoding.BinaryUnmarshaler.
func (c *Container) UnmarshalBinary(data []byte) error {
	dec, err := Deserialize(data)
	if err != nil {
		return err
	}
	*c = *dec
	return nil
}

// WriteTo writes the wire form of the container to w.
func (c *Container) WriteTo(w io.Writer) (int64, error) {
	blob, err := Serialize(c)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(blob)
	if err == nil && n != len(blob) {
		err = io.ErrShortWrite
	}
	return int64(n), err
}

// ReadFrom reads one container from r, consuming r to EOF.
func (c *Container) ReadFrom(r io.Reader) (int64, error) {
	blob, err := io.ReadAll(io.LimitReader(r, maxContainerBytes+1))
	n := int64(len(blob))
	if err != nil {
		return n, err
	}
	if len(blob) > maxContainerBytes {
		return n, &CorruptContainerError{Field: "size", Expect: "at most " + strconv.Itoa(maxContainerBytes) + " bytes", Actual: "more"}
	}
	return n, c.UnmarshalBinary(blob)
}

// WriteFile writes the container to the named file, creating or truncating
// it.
func WriteFile(path string, c *Container) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %q: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close %q: %w", path, closeErr)
		}
	}()

	if _, err = c.WriteTo(f); err != nil {
		return fmt.Errorf("write %q: %w", path, err)
	}
	return nil
}

// ReadFile reads a container from the named file.
func ReadFile(path string) (*Container, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %q: %w", path, err)
	}
	defer f.Close()

	c := new(Container)
	if _, err := c.ReadFrom(f); err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return c, nil
}

var (
	_ io.WriterTo   = (*Container)(nil)
	_ io.ReaderFrom = (*Container)(nil)
)

type blobReader struct {
	data []byte
	off  int
}

func (r *blobReader) remaining() int {
	return len(r.data) - r.off
}

func (r *blobReader) uvarint(field string) (uint64, error) {
	v, n := binary.Uvarint(r.data[r.off:])
	switch {
	case n == 0:
		return 0, &CorruptContainerError{Field: field, Err: io.ErrUnexpectedEOF}
	case n < 0:
		return 0, &CorruptContainerError{Field: field, Expect: "a 64-bit varint", Actual: "overflow"}
	}
	r.off += n
	return v, nil
}
