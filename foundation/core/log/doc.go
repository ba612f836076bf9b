// File: doc.go
// Title: Structured Logging Package Documentation
// Description: Structured logger used by the turtle parser, engine and CLI.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Logger reduced to the levels, formats and context
//                      fields needed by the turtle tooling

/*
Package log provides structured logging with levels, fields and pluggable
output formats (JSON, text, console).

Loggers are immutable: every With* method returns a configured copy, so a
component can derive its own logger without affecting the caller's.

	logger := log.NewWithConfig(log.Config{
		Level:  log.LevelDebug,
		Format: log.FormatText,
		Output: os.Stderr,
		Name:   "turtle",
	}).WithField("component", "turtle-parser")

	logger.Info("Program parsed", log.Fields{"expressions": 4})

	timer := logger.StartTimer("parse")
	// ... work
	timer.Stop()

Errors created with the foundation error package are logged with their code,
operation and details by LogError.
*/
package log
