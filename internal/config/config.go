// Package config implements configuration parsing for huffpack.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
)

// Configuration specifies the complete huffpack configuration.
type Configuration struct {
	// File is the path of the TOML configuration file.
	File string `toml:"-"`

	// Input is the file to read; "-" or "" means standard input.
	Input string `toml:"input"`

	// Output is the file to write; "-" or "" means standard output.
	Output string `toml:"output"`

	// Verbose enables debug logging.
	Verbose bool `toml:"verbose"`

	// DumpCodes prints the code table after compressing.
	DumpCodes bool `toml:"dump_codes"`
}

const (
	envPrefix         = "HUFFPACK_"
	defaultConfigFile = "huffpack.toml"
)

// Parse all configuration.  It returns the configuration and the arguments
// left after the flags.
//
// Environment variables take precedence over the configuration file,
// but command line flags take precedence over both.
func Parse(args []string, getenv func(string) string, stderr io.Writer) (Configuration, []string, error) {
	config := Configuration{File: defaultConfigFile}

	fset := flag.NewFlagSet("huffpack", flag.ContinueOnError)
	fset.SetOutput(stderr)
	fset.StringVar(&config.File, "config", config.File, "The path to the configuration file")
	fset.StringVar(&config.Input, "in", config.Input, "The file to read (default standard input)")
	fset.StringVar(&config.Output, "out", config.Output, "The file to write (default standard output)")
	fset.BoolVar(&config.Verbose, "verbose", config.Verbose, "Enable debug logging")
	fset.BoolVar(&config.DumpCodes, "dump-codes", config.DumpCodes, "Print the code table after compressing")

	if err := fset.Parse(args); err != nil {
		return config, nil, err
	}

	// Parse environment
	set := make(map[string]bool)
	fset.Visit(func(f *flag.Flag) {
		set[f.Name] = true
	})
	var envErr error
	fset.VisitAll(func(f *flag.Flag) {
		if set[f.Name] {
			return
		}
		if val := envValueForFlag(getenv, f.Name); val != "" {
			if err := fset.Set(f.Name, val); err != nil && envErr == nil {
				envErr = fmt.Errorf("%s: %w", envKey(f.Name), err)
			}
			set[f.Name] = true
		}
	})
	if envErr != nil {
		return config, nil, envErr
	}

	// Override values with config file, then restore flags and environment
	explicit := config
	if err := parseConfigFile(&config, set["config"]); err != nil {
		return config, nil, err
	}
	fset.VisitAll(func(f *flag.Flag) {
		if !set[f.Name] {
			return
		}
		switch f.Name {
		case "in":
			config.Input = explicit.Input
		case "out":
			config.Output = explicit.Output
		case "verbose":
			config.Verbose = explicit.Verbose
		case "dump-codes":
			config.DumpCodes = explicit.DumpCodes
		}
	})

	return config, fset.Args(), nil
}

// A missing file is only an error when it was asked for explicitly.
func parseConfigFile(config *Configuration, required bool) error {
	_, err := toml.DecodeFile(config.File, config)
	if errors.Is(err, fs.ErrNotExist) && !required {
		return nil
	}
	if err != nil {
		return fmt.Errorf("config file %q: %w", config.File, err)
	}
	return nil
}

func envKey(name string) string {
	return envPrefix + strings.ToUpper(strings.Replace(name, "-", "_", -1))
}

func envValueForFlag(getenv func(string) string, name string) string {
	if getenv == nil {
		getenv = os.Getenv
	}
	return getenv(envKey(name))
}
