// Command huffpack compresses and decompresses text files with a Huffman
// code.
//
// Usage:
//
//	huffpack [flags] compress|decompress|inspect
//
package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"github.com/banditpig/huffman"
	"github.com/banditpig/huffman/internal/config"
	"github.com/banditpig/huffman/internal/logger"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr, os.Getenv))
}

func run(args []string, stdin io.Reader, stdout io.Writer, stderr io.Writer, getenv func(string) string) int {
	conf, rest, err := config.Parse(args, getenv, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "huffpack: %v\n", err)
		return 2
	}

	log := logger.New(stderr, conf.Verbose)

	if len(rest) != 1 {
		log.Errorf("expected one command (compress, decompress, inspect), got %d arguments", len(rest))
		return 2
	}

	var cmdErr error
	switch rest[0] {
	case "compress":
		cmdErr = compress(conf, log, stdin, stdout)
	case "decompress":
		cmdErr = decompress(conf, log, stdin, stdout)
	case "inspect":
		cmdErr = inspect(conf, log, stdin, stdout)
	default:
		log.Errorf("unknown command %q", rest[0])
		return 2
	}
	if cmdErr != nil {
		log.Errorf("%s: %v", rest[0], cmdErr)
		return 1
	}
	return 0
}

func compress(conf config.Configuration, log logger.Logger, stdin io.Reader, stdout io.Writer) error {
	raw, err := readInput(conf.Input, stdin)
	if err != nil {
		return err
	}
	text := string(raw)
	if !utf8.ValidString(text) {
		log.Infof("input is not valid UTF-8; invalid bytes will decode as U+FFFD")
	}

	c, err := huffman.Compress(text)
	if err != nil {
		return err
	}
	log.Debugf("%d symbols, %d distinct, %d bits", c.Frequencies.Total(), len(c.Frequencies), c.BitLen)

	if conf.DumpCodes && len(c.Frequencies) != 0 {
		e, err := huffman.NewEncoder(c.Frequencies)
		if err != nil {
			return err
		}
		if _, err := e.Dump(logWriter{log}); err != nil {
			return err
		}
	}

	if isStdio(conf.Output) {
		_, err = c.WriteTo(stdout)
	} else {
		err = huffman.WriteFile(conf.Output, c)
	}
	if err != nil {
		return err
	}
	log.Infof("compressed %d bytes to %d payload bytes (ratio %.3f)", len(raw), len(c.Packed), c.Ratio(len(raw)))
	return nil
}

func decompress(conf config.Configuration, log logger.Logger, stdin io.Reader, stdout io.Writer) error {
	c, err := readContainer(conf.Input, stdin)
	if err != nil {
		return err
	}

	text, err := huffman.Decompress(c)
	if err != nil {
		return err
	}
	log.Debugf("decoded %d bits into %d bytes", c.BitLen, len(text))

	if isStdio(conf.Output) {
		_, err = io.WriteString(stdout, text)
		return err
	}
	return os.WriteFile(conf.Output, []byte(text), 0o644)
}

func inspect(conf config.Configuration, log logger.Logger, stdin io.Reader, stdout io.Writer) error {
	c, err := readContainer(conf.Input, stdin)
	if err != nil {
		return err
	}

	fmt.Fprintf(stdout, "bit length: %d\n", c.BitLen)
	fmt.Fprintf(stdout, "payload bytes: %d\n", len(c.Packed))
	fmt.Fprintf(stdout, "symbols: %d (%d distinct)\n", c.Frequencies.Total(), len(c.Frequencies))
	if len(c.Frequencies) == 0 {
		return nil
	}

	e, err := huffman.NewEncoder(c.Frequencies)
	if err != nil {
		return err
	}
	_, err = e.Dump(stdout)
	return err
}

func readContainer(path string, stdin io.Reader) (*huffman.Container, error) {
	if !isStdio(path) {
		return huffman.ReadFile(path)
	}
	c := new(huffman.Container)
	if _, err := c.ReadFrom(stdin); err != nil {
		return nil, err
	}
	return c, nil
}

func readInput(path string, stdin io.Reader) ([]byte, error) {
	if isStdio(path) {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

func isStdio(path string) bool {
	return path == "" || path == "-"
}

// logWriter sends each line written to it to the info log.
type logWriter struct {
	log logger.Logger
}

func (w logWriter) Write(p []byte) (int, error) {
	for _, line := range bytes.Split(bytes.TrimRight(p, "\n"), []byte("\n")) {
		w.log.Infof("%s", line)
	}
	return len(p), nil
}
