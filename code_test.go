package huffman

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func mustDeriveCodes(t *testing.T, freqs FrequencyTable) CodeTable {
	t.Helper()
	codes, err := DeriveCodes(mustBuildTree(t, freqs))
	require.NoError(t, err)
	return codes
}

func TestCode_String(t *testing.T) {
	type testRow struct {
		code Code
		want string
	}

	testData := [...]testRow{
		{code: MakeCode(0, 0), want: `""`},
		{code: MakeCode(1, 0), want: `"0"`},
		{code: MakeCode(3, 0x3), want: `"011"`},
		{code: MakeCode(4, 0xc), want: `"1100"`},
	}
	for _, row := range testData {
		require.Equal(t, row.want, row.code.String(), "%#v", row.code)
	}
}

func TestCode_AppendTo(t *testing.T) {
	hc := MakeCode(0, 0).Append(true).Append(false).Append(true).Append(true)
	require.Equal(t, "1011", hc.AppendTo(nil).String())
	require.True(t, hc.HasPrefix(MakeCode(2, 0x2)))
	require.False(t, hc.HasPrefix(MakeCode(2, 0x3)))
}

func TestDeriveCodes(t *testing.T) {
	freqs := FrequencyTable{'a': 5, 'b': 9, 'c': 12, 'd': 13, 'e': 16, 'f': 45}
	codes := mustDeriveCodes(t, freqs)

	expectDump := strings.Join([]string{
		"CodeTable{\n",
		"\tMinSize() = 1\n",
		"\tMaxSize() = 4\n",
		"\tEncode('a') = \"1100\"\n",
		"\tEncode('b') = \"1101\"\n",
		"\tEncode('c') = \"100\"\n",
		"\tEncode('d') = \"101\"\n",
		"\tEncode('e') = \"111\"\n",
		"\tEncode('f') = \"0\"\n",
		"}\n",
	}, "")

	var buf strings.Builder
	_, _ = codes.Dump(&buf)
	actualDump := buf.String()

	if expectDump != actualDump {
		t.Errorf("wrong output:\n\texpect: %s\n\tactual: %s", expectDump, actualDump)
	}
}

func TestDeriveCodes_Hello(t *testing.T) {
	codes := mustDeriveCodes(t, Frequencies("hello"))

	expect := map[Symbol]string{'e': `"00"`, 'h': `"01"`, 'o': `"10"`, 'l': `"11"`}
	require.Len(t, codes, len(expect))
	for symbol, want := range expect {
		require.Equal(t, want, codes[symbol].String(), "code for %q", symbol)
	}
	for symbol, hc := range codes {
		require.GreaterOrEqual(t, hc.Size, codes['l'].Size, "%q has a shorter code than the most frequent symbol", symbol)
	}
}

func TestDeriveCodes_SingleSymbol(t *testing.T) {
	codes := mustDeriveCodes(t, FrequencyTable{'a': 4})
	require.Equal(t, MakeCode(1, 0), codes['a'])
}

func TestDeriveCodes_Ties(t *testing.T) {
	type testRow struct {
		name  string
		freqs FrequencyTable
		want  map[Symbol]string
	}

	testData := [...]testRow{
		{
			name:  "equal leaves",
			freqs: FrequencyTable{'d': 1, 'c': 1, 'b': 1, 'a': 1},
			want:  map[Symbol]string{'a': `"00"`, 'b': `"01"`, 'c': `"10"`, 'd': `"11"`},
		},
		{
			name:  "leaf before merged node",
			freqs: FrequencyTable{'a': 1, 'b': 1, 'c': 2},
			want:  map[Symbol]string{'c': `"0"`, 'a': `"10"`, 'b': `"11"`},
		},
	}
	for _, row := range testData {
		t.Run(row.name, func(t *testing.T) {
			for attempt := 0; attempt < 10; attempt++ {
				codes := mustDeriveCodes(t, row.freqs.Clone())
				for symbol, want := range row.want {
					require.Equal(t, want, codes[symbol].String(), "attempt %d: code for %q", attempt, symbol)
				}
			}
		})
	}
}

func TestDeriveCodes_PrefixFree(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	freqs := make(FrequencyTable)
	for i := 0; i < 300; i++ {
		freqs[Symbol('!'+rng.Intn(2000))] += uint64(1 + rng.Intn(1000))
	}
	codes := mustDeriveCodes(t, freqs)
	require.Len(t, codes, len(freqs))

	for a, ca := range codes {
		require.NotZero(t, ca.Size, "%q has an empty code", a)
		for b, cb := range codes {
			if a != b {
				require.False(t, ca.HasPrefix(cb), "code %s for %q has prefix %s for %q", ca, a, cb, b)
			}
		}
	}

	again := mustDeriveCodes(t, freqs.Clone())
	require.Equal(t, codes, again)
}

func TestDeriveCodes_TooDeep(t *testing.T) {
	// 65 symbols give depth 64, the longest code that fits.
	codes := mustDeriveCodes(t, fibonacciTable(65))
	require.Equal(t, byte(MaxCodeSize), codes.MaxSize())
	require.Equal(t, byte(1), codes.MinSize())

	_, err := DeriveCodes(mustBuildTree(t, fibonacciTable(66)))
	var tooLong *CodeTooLongError
	require.True(t, errors.As(err, &tooLong), "got %v", err)

	_, err = DeriveCodes(mustBuildTree(t, fibonacciTable(70)))
	require.True(t, errors.As(err, &tooLong), "got %v", err)
}
