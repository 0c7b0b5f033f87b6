// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config loads settings for the jcq command-line tool.
//
// Settings come from a YAML file named by the --config flag or, failing that,
// by the JCQ_CONFIG environment variable. Without either, the defaults apply.
// Command-line flags are applied over the loaded settings by the caller.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/creachadair/jcursor"
	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable consulted for a config file path.
const EnvVar = "JCQ_CONFIG"

// Output formats understood by the tool.
var Formats = []string{"json", "yaml", "cbor"}

// Config is the configuration for jcq.
type Config struct {
	// MaxDepth is the maximum nesting depth of input values.
	// Zero means the library default.
	MaxDepth int `yaml:"max_depth"`

	// AllowComments permits comments in the input.
	AllowComments bool `yaml:"allow_comments"`

	// JWCC accepts JSON With Commas and Comments.
	JWCC bool `yaml:"jwcc"`

	// Output is the output format for selected values, one of Formats.
	// Default: json
	Output string `yaml:"output"`

	// Indent controls output layout. If positive, JSON output is formatted
	// across multiple lines, and YAML output is indented by Indent spaces.
	// Zero selects compact JSON and the default YAML indentation.
	Indent int `yaml:"indent"`
}

// Default returns the default configuration.
func Default() *Config { return &Config{Output: "json"} }

// Load loads the configuration from path if it is non-empty, or otherwise
// from the file named by EnvVar if that is set. If neither is set, Load
// returns the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	defer f.Close()
	cfg, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("load config %q: %w", path, err)
	}
	return cfg, nil
}

// Decode reads a YAML configuration from r, over the defaults. Unknown
// fields are rejected. An empty document yields the defaults.
func Decode(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	var errs []error
	if c.MaxDepth < 0 {
		errs = append(errs, fmt.Errorf("max_depth must be non-negative, got %d", c.MaxDepth))
	}
	if c.Indent < 0 {
		errs = append(errs, fmt.Errorf("indent must be non-negative, got %d", c.Indent))
	}
	if !slices.Contains(Formats, c.Output) {
		errs = append(errs, fmt.Errorf("output must be one of %v, got %q", Formats, c.Output))
	}
	return errors.Join(errs...)
}

// IndexOptions returns the indexing options selected by c.
func (c *Config) IndexOptions() *jcursor.Options {
	return &jcursor.Options{
		MaxDepth:      c.MaxDepth,
		AllowComments: c.AllowComments,
		JWCC:          c.JWCC,
	}
}
