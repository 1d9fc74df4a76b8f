// This file is part of source2adoc.
// © 2024, sommerfeld.io and the source2adoc contributors
// SPDX-License-Identifier: GPL-3.0

// Package config loads the optional project configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sommerfeld-io/source2adoc/pkg/codefile"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the configuration file looked up in the working directory.
const DefaultFile = ".source2adoc.yml"

// Config holds the settings of a documentation run. Command line flags take precedence.
type Config struct {
	// SourceDir is scanned for code files.
	SourceDir string `yaml:"source_dir"`

	// OutputDir receives the generated AsciiDoc files.
	OutputDir string `yaml:"output_dir"`

	// Exclude lists paths or glob patterns that are skipped.
	Exclude []string `yaml:"exclude"`

	// CommentFormat is either "plain" or "markdown".
	CommentFormat string `yaml:"comment_format"`

	// Concurrency limits the files processed in parallel (0 = number of CPUs).
	Concurrency int `yaml:"concurrency"`

	// Nav names an Antora navigation file written to the output directory (empty = none).
	Nav string `yaml:"nav"`

	// Lock guards the output directory against concurrent runs.
	Lock bool `yaml:"lock"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Exclude:       []string{},
		CommentFormat: string(codefile.FormatPlain),
		Concurrency:   0,
		Lock:          true,
	}
}

// LoadConfig reads the configuration file at path. A missing file yields the defaults, a
// malformed file or unknown keys are errors. Keys present in the file replace the defaults.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the values that cannot be checked by the YAML decoder.
func (c *Config) Validate() error {
	if _, err := codefile.ParseCommentFormat(c.CommentFormat); err != nil {
		return err
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render config: %w", err)
	}
	return data, nil
}
