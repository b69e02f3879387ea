package huffman

import (
	"sort"
	"unicode/utf8"
)

// Symbol represents a single Unicode code point of the input text.
type Symbol = rune

// MaxSymbol is the maximum valid symbol.
const MaxSymbol = Symbol(utf8.MaxRune)

// FrequencyTable maps each distinct Symbol to the number of times it occurs.
// Counts are always positive; a Symbol that does not occur has no entry.
type FrequencyTable map[Symbol]uint64

// Frequencies counts the symbols of text.  The sum of the counts equals
// utf8.RuneCountInString(text), and the empty string yields an empty table.
func Frequencies(text string) FrequencyTable {
	freqs := make(FrequencyTable)
	for _, ch := range text {
		freqs[ch]++
	}
	return freqs
}

// Total returns the sum of all counts.
func (freqs FrequencyTable) Total() uint64 {
	var sum uint64
	for _, count := range freqs {
		sum += count
	}
	return sum
}

// Symbols returns the symbols of the table in ascending order.
func (freqs FrequencyTable) Symbols() []Symbol {
	out := make([]Symbol, 0, len(freqs))
	for symbol := range freqs {
		out = append(out, symbol)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// Clone returns an independent copy of the table.
func (freqs FrequencyTable) Clone() FrequencyTable {
	out := make(FrequencyTable, len(freqs))
	for symbol, count := range freqs {
		out[symbol] = count
	}
	return out
}

// Equal reports whether both tables hold exactly the same counts.
func (freqs FrequencyTable) Equal(other FrequencyTable) bool {
	if len(freqs) != len(other) {
		return false
	}
	for symbol, count := range freqs {
		if otherCount, found := other[symbol]; !found || otherCount != count {
			return false
		}
	}
	return true
}
