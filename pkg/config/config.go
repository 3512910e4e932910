// Package config holds the typed settings shared by the selection,
// assembly and delivery stages.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-root configuration file picked up when no explicit
// path is given.
const FileName = ".fetchit.yaml"

// DefaultSeparator sits between file chunks when no separator is configured.
const DefaultSeparator = "\n\n---\n\n"

// DefaultClipboardThreshold is the fraction of the written payload that a
// clipboard read-back must return to count as a successful copy.
const DefaultClipboardThreshold = 0.9

// Config is the configuration for one fetchit invocation.
type Config struct {
	ExcludeGlobs           []string `yaml:"exclude_globs"`            // Globs excluded anywhere in the tree.
	WrapAsCodeBlock        bool     `yaml:"wrap_as_code_block"`       // Emit path headers and fenced blocks.
	Separator              string   `yaml:"separator"`                // Text placed between file chunks.
	IgnoreFileName         string   `yaml:"ignore_file_name"`         // Name of the layered ignore files.
	NestedIgnoreExclusions []string `yaml:"nested_ignore_exclusions"` // Directories never searched for nested ignore files.
	ClipboardThreshold     float64  `yaml:"clipboard_threshold"`      // Minimum read-back ratio.
	SaveDir                string   `yaml:"save_dir"`                 // Directory suggested for fallback saves.
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		ExcludeGlobs:           []string{},
		WrapAsCodeBlock:        true,
		Separator:              DefaultSeparator,
		IgnoreFileName:         ".gitignore",
		NestedIgnoreExclusions: []string{".git", "node_modules"},
		ClipboardThreshold:     DefaultClipboardThreshold,
	}
}

// Load reads a YAML file over the defaults. A missing file yields the
// defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config file: %w", err)
	}

	if err := decode(data, &cfg); err != nil {
		return Default(), fmt.Errorf("parsing config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), fmt.Errorf("validating config file %s: %w", path, err)
	}
	return cfg, nil
}

func decode(data []byte, cfg *Config) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// Validate reports settings the pipeline cannot work with.
func (c Config) Validate() error {
	if c.ClipboardThreshold <= 0 || c.ClipboardThreshold > 1 {
		return fmt.Errorf("clipboard_threshold must be in (0, 1], got %v", c.ClipboardThreshold)
	}
	if strings.TrimSpace(c.IgnoreFileName) == "" {
		return errors.New("ignore_file_name must not be empty")
	}
	if strings.ContainsAny(c.IgnoreFileName, `/\`) {
		return fmt.Errorf("ignore_file_name must be a bare file name, got %q", c.IgnoreFileName)
	}
	return nil
}

// EffectiveSeparator returns the separator, falling back to the default
// when it is unset.
func (c Config) EffectiveSeparator() string {
	if c.Separator == "" {
		return DefaultSeparator
	}
	return c.Separator
}
