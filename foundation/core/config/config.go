// File: config.go
// Title: Core Configuration Implementation
// Description: Implements the typed Config, file format detection, TOML and
//              YAML decoding, defaults and validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation with TOML/YAML support

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwlog "github.com/msto63/turtle/foundation/core/log"
)

// Format represents the configuration file format
type Format int

const (
	// FormatTOML represents TOML format (default)
	FormatTOML Format = iota

	// FormatYAML represents YAML format
	FormatYAML
)

// String returns the string representation of the format
func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Output formats understood by the CLI
var OutputFormats = []string{"text", "tree", "json", "yaml"}

// Config holds the complete tool configuration
type Config struct {
	General GeneralConfig `toml:"general" yaml:"general"`
	Log     LogConfig     `toml:"log" yaml:"log"`
	Parser  ParserConfig  `toml:"parser" yaml:"parser"`
	Output  OutputConfig  `toml:"output" yaml:"output"`
	Watch   WatchConfig   `toml:"watch" yaml:"watch"`
}

// GeneralConfig holds general settings
type GeneralConfig struct {
	Name        string `toml:"name" yaml:"name"`
	Environment string `toml:"environment" yaml:"environment"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`
	Format string `toml:"format" yaml:"format"`
}

// ParserConfig holds lexer and parser settings. Zero limits select the
// parser defaults; negative limits disable them.
type ParserConfig struct {
	Strict         bool `toml:"strict" yaml:"strict"`
	MaxInputLength int  `toml:"max_input_length" yaml:"max_input_length"`
	MaxDepth       int  `toml:"max_depth" yaml:"max_depth"`
}

// OutputConfig holds result rendering settings
type OutputConfig struct {
	Format  string `toml:"format" yaml:"format"`
	NoColor bool   `toml:"no_color" yaml:"no_color"`
}

// WatchConfig holds file watching settings
type WatchConfig struct {
	Debounce Duration `toml:"debounce" yaml:"debounce"`
}

// Duration wraps time.Duration for TOML and YAML parsing
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string
func (d *Duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText formats the duration as a string
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

const (
	defaultMaxInputLength = 1 << 20
	defaultMaxDepth       = 256
	defaultDebounce       = 200 * time.Millisecond
)

// Default returns the configuration used when no file is present
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a configuration file, choosing the decoder by extension
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)

	data, err := os.ReadFile(path)
	if err != nil {
		code := mdwerror.CodeConfigError
		if errors.Is(err, os.ErrNotExist) {
			code = mdwerror.CodeMissingConfig
		}
		return nil, mdwerror.Wrap(err, "failed to read config file").
			WithCode(code).
			WithOperation("config.Load").
			WithDetail("path", path)
	}

	cfg, err := Parse(data, DetectFormat(path))
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to load config file").
			WithOperation("config.Load").
			WithDetail("path", path)
	}
	return cfg, nil
}

// Parse decodes configuration content, applies defaults and validates the
// result
func Parse(data []byte, format Format) (*Config, error) {
	var cfg Config

	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return nil, mdwerror.Wrap(err, "TOML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, len(undecoded))
			for i, key := range undecoded {
				keys[i] = key.String()
			}
			sort.Strings(keys)
			return nil, mdwerror.Newf("unknown config keys: %s", strings.Join(keys, ", ")).
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}

	case FormatYAML:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		decoder.KnownFields(true)
		if err := decoder.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, mdwerror.Wrap(err, "YAML parse error").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.Parse")
		}

	default:
		return nil, mdwerror.Newf("unsupported format: %s", format).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Parse")
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// DetectFormat determines the configuration format from file extension
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

// applyDefaults sets default values for missing configuration
func (c *Config) applyDefaults() {
	if c.General.Name == "" {
		c.General.Name = "turtle"
	}
	if c.General.Environment == "" {
		c.General.Environment = "development"
	}

	if c.Log.Level == "" {
		c.Log.Level = mdwlog.DefaultLevel().String()
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}

	if c.Parser.MaxInputLength == 0 {
		c.Parser.MaxInputLength = defaultMaxInputLength
	}
	if c.Parser.MaxDepth == 0 {
		c.Parser.MaxDepth = defaultMaxDepth
	}

	if c.Output.Format == "" {
		c.Output.Format = "text"
	}

	if c.Watch.Debounce.Duration == 0 {
		c.Watch.Debounce.Duration = defaultDebounce
	}
}

// Validate checks that every enumerated setting has a known value
func (c *Config) Validate() error {
	var problems []string

	if _, err := mdwlog.ParseLevel(c.Log.Level); err != nil {
		problems = append(problems, fmt.Sprintf("log.level: %v (want one of %s)",
			err, strings.Join(mdwlog.LevelNames(), ", ")))
	}
	if _, err := mdwlog.ParseFormat(c.Log.Format); err != nil {
		problems = append(problems, fmt.Sprintf("log.format: %v", err))
	}
	if !isOutputFormat(c.Output.Format) {
		problems = append(problems, fmt.Sprintf("output.format: invalid format: %s (want one of %s)",
			c.Output.Format, strings.Join(OutputFormats, ", ")))
	}
	if c.Watch.Debounce.Duration < 0 {
		problems = append(problems, "watch.debounce: must not be negative")
	}

	if len(problems) > 0 {
		return mdwerror.Newf("invalid configuration: %s", strings.Join(problems, "; ")).
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.Validate").
			WithDetail("problems", problems)
	}
	return nil
}

// NewLogger builds a logger from the log section, writing to output
func (c *Config) NewLogger(output io.Writer) (*mdwlog.Logger, error) {
	level, err := mdwlog.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log level").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.NewLogger")
	}
	format, err := mdwlog.ParseFormat(c.Log.Format)
	if err != nil {
		return nil, mdwerror.Wrap(err, "invalid log format").
			WithCode(mdwerror.CodeInvalidConfig).
			WithOperation("config.NewLogger")
	}

	return mdwlog.NewWithConfig(mdwlog.Config{
		Level:  level,
		Format: format,
		Output: output,
		Name:   c.General.Name,
	}), nil
}

// Encode writes the configuration in the given format
func (c *Config) Encode(w io.Writer, format Format) error {
	switch format {
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(c); err != nil {
			return err
		}
		return encoder.Close()
	default:
		return toml.NewEncoder(w).Encode(c)
	}
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
