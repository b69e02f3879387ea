package config

import (
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "huffpack.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func mapEnv(env map[string]string) func(string) string {
	return func(key string) string { return env[key] }
}

func TestParse_Defaults(t *testing.T) {
	dir := t.TempDir()
	conf, rest, err := Parse([]string{"-config", filepath.Join(dir, "absent.toml"), "compress"}, mapEnv(nil), io.Discard)
	require.Error(t, err, "explicit config file must exist")

	conf, rest, err = Parse([]string{"compress"}, mapEnv(nil), io.Discard)
	require.NoError(t, err)
	require.Equal(t, []string{"compress"}, rest)
	require.Equal(t, defaultConfigFile, conf.File)
	require.Empty(t, conf.Input)
	require.False(t, conf.Verbose)
}

func TestParse_Precedence(t *testing.T) {
	path := writeConfig(t, `
input = "from-file.txt"
output = "from-file.huf"
verbose = true
dump_codes = true
`)

	conf, _, err := Parse([]string{"-config", path}, mapEnv(nil), io.Discard)
	require.NoError(t, err)
	require.Equal(t, "from-file.txt", conf.Input)
	require.Equal(t, "from-file.huf", conf.Output)
	require.True(t, conf.Verbose)
	require.True(t, conf.DumpCodes)

	env := map[string]string{
		"HUFFPACK_IN":         "from-env.txt",
		"HUFFPACK_DUMP_CODES": "false",
	}
	conf, _, err = Parse([]string{"-config", path, "-out", "from-flag.huf"}, mapEnv(env), io.Discard)
	require.NoError(t, err)
	require.Equal(t, "from-env.txt", conf.Input)
	require.Equal(t, "from-flag.huf", conf.Output)
	require.True(t, conf.Verbose)
	require.False(t, conf.DumpCodes)
}

func TestParse_BadEnvironment(t *testing.T) {
	_, _, err := Parse(nil, mapEnv(map[string]string{"HUFFPACK_VERBOSE": "sometimes"}), io.Discard)
	require.Error(t, err)
	require.Contains(t, err.Error(), "HUFFPACK_VERBOSE")
}

func TestParse_BadConfigFile(t *testing.T) {
	path := writeConfig(t, "input = [")
	_, _, err := Parse([]string{"-config", path}, mapEnv(nil), io.Discard)
	require.Error(t, err)
}
