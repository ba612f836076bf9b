// File: doc.go
// Title: Configuration Management Package Documentation
// Description: Package config loads the turtle tool configuration from TOML
//              or YAML files, applies defaults and environment overrides, and
//              watches files for changes.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Typed configuration with TOML/YAML support

/*
Package config provides configuration management for the turtle tools.

The configuration is a typed struct with four sections:

	[general]
	name = "turtle"
	environment = "development"

	[log]
	level = "warn"     # trace, debug, info, warn, error
	format = "text"    # text, json, console

	[parser]
	strict = false
	max_input_length = 1048576   # negative: unlimited
	max_depth = 256              # negative: unlimited

	[output]
	format = "text"    # text, tree, json, yaml
	no_color = false

	[watch]
	debounce = "200ms"

The file format follows the extension: .yaml and .yml are read with
gopkg.in/yaml.v3, everything else as TOML. Unknown keys are rejected.

# Loading

	cfg, err := mdwconfig.Load("configs/turtle.toml")

LoadFromEnv looks at TURTLE_CONFIG, then ./configs/turtle.toml and
./turtle.toml, and falls back to Default() when no file exists. In every
case the TURTLE_LOG_LEVEL, TURTLE_LOG_FORMAT, TURTLE_STRICT and
TURTLE_OUTPUT variables override the file.

# Watching

Watcher reports writes to a set of files after a debounce interval. Watch
uses it to reload a configuration file:

	err := mdwconfig.Watch(ctx, path, cfg.Watch.Debounce.Duration, logger,
		func(cfg *mdwconfig.Config, err error) { ... })
*/
package config
