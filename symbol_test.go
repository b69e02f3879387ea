package huffman

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestFrequencies(t *testing.T) {
	type testRow struct {
		name string
		text string
		want FrequencyTable
	}

	testData := [...]testRow{
		{name: "empty", text: "", want: FrequencyTable{}},
		{name: "repeated", text: "aaaa", want: FrequencyTable{'a': 4}},
		{name: "hello", text: "hello", want: FrequencyTable{'h': 1, 'e': 1, 'l': 2, 'o': 1}},
		{name: "multibyte", text: "héé→→→", want: FrequencyTable{'h': 1, 'é': 2, '→': 3}},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			got := Frequencies(row.text)
			require.Equal(t, row.want, got)
			require.Equal(t, uint64(utf8.RuneCountInString(row.text)), got.Total())
		})
	}
}

func TestFrequencyTable_Symbols(t *testing.T) {
	freqs := Frequencies("the quick brown fox")
	symbols := freqs.Symbols()
	require.Len(t, symbols, len(freqs))
	for i := 1; i < len(symbols); i++ {
		require.Less(t, symbols[i-1], symbols[i], "symbols out of order at %d", i)
	}
}

func TestFrequencyTable_Clone(t *testing.T) {
	freqs := Frequencies("abba")
	clone := freqs.Clone()
	clone['a'] = 7
	require.Equal(t, uint64(2), freqs['a'], "clone shares storage with original")
	require.False(t, freqs.Equal(clone))
	require.True(t, freqs.Equal(Frequencies("baba")))
}
