// File: discovery.go
// Title: Configuration Discovery
// Description: Locates the configuration file through TURTLE_CONFIG and a
//              list of default paths, and applies TURTLE_* environment
//              overrides on top of the loaded values.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial discovery and environment overrides

package config

import (
	"os"
	"strconv"
	"strings"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
)

// EnvConfigPath names the variable holding an explicit config file path
const EnvConfigPath = "TURTLE_CONFIG"

// DefaultPaths are tried in order when TURTLE_CONFIG is unset
var DefaultPaths = []string{
	"./configs/turtle.toml",
	"./configs/turtle.yaml",
	"./turtle.toml",
	"./turtle.yaml",
}

// LookupFunc reads an environment variable
type LookupFunc func(key string) (string, bool)

// LoadFromEnv loads the file named by TURTLE_CONFIG or the first existing
// default path. Without any file it returns Default(). Environment
// overrides are applied in both cases.
func LoadFromEnv() (*Config, error) {
	return LoadFromLookup(os.LookupEnv)
}

// LoadFromLookup is LoadFromEnv with a custom variable source
func LoadFromLookup(lookup LookupFunc) (*Config, error) {
	path, _ := lookup(EnvConfigPath)
	if path == "" {
		path = FindConfigFile(DefaultPaths)
	}

	cfg := Default()
	if path != "" {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if err := cfg.ApplyEnv(lookup); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FindConfigFile returns the first of paths that exists as a regular file
func FindConfigFile(paths []string) string {
	for _, p := range paths {
		if info, err := os.Stat(p); err == nil && !info.IsDir() {
			return p
		}
	}
	return ""
}

// ApplyEnv overrides settings from TURTLE_LOG_LEVEL, TURTLE_LOG_FORMAT,
// TURTLE_STRICT and TURTLE_OUTPUT, then validates the result
func (c *Config) ApplyEnv(lookup LookupFunc) error {
	if v, ok := lookup("TURTLE_LOG_LEVEL"); ok && v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v, ok := lookup("TURTLE_LOG_FORMAT"); ok && v != "" {
		c.Log.Format = strings.ToLower(v)
	}
	if v, ok := lookup("TURTLE_OUTPUT"); ok && v != "" {
		c.Output.Format = strings.ToLower(v)
	}
	if v, ok := lookup("TURTLE_STRICT"); ok && v != "" {
		strict, err := strconv.ParseBool(v)
		if err != nil {
			return mdwerror.Wrap(err, "invalid TURTLE_STRICT value").
				WithCode(mdwerror.CodeInvalidConfig).
				WithOperation("config.ApplyEnv").
				WithDetail("value", v)
		}
		c.Parser.Strict = strict
	}

	return c.Validate()
}
