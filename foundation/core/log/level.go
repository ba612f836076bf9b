// File: level.go
// Title: Log Level Definitions
// Description: Defines log levels for filtering and controlling log output.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Levels trace through error

package log

import (
	"strings"
)

// Level represents the importance level of a log message
type Level int

const (
	// LevelTrace is the most verbose level (token-level diagnostics)
	LevelTrace Level = iota

	// LevelDebug provides detailed information for debugging purposes
	LevelDebug

	// LevelInfo represents general informational messages
	LevelInfo

	// LevelWarn indicates input that was accepted with reservations
	LevelWarn

	// LevelError represents failed operations
	LevelError
)

// levelNames is indexed by Level
var levelNames = [...]struct{ name, short string }{
	LevelTrace: {"trace", "TRC"},
	LevelDebug: {"debug", "DBG"},
	LevelInfo:  {"info", "INF"},
	LevelWarn:  {"warn", "WRN"},
	LevelError: {"error", "ERR"},
}

func (l Level) known() bool {
	return l >= LevelTrace && int(l) < len(levelNames)
}

// String returns the string representation of the log level
func (l Level) String() string {
	if !l.known() {
		return "unknown"
	}
	return levelNames[l].name
}

// ShortString returns the three letter tag used by the text formatter
func (l Level) ShortString() string {
	if !l.known() {
		return "???"
	}
	return levelNames[l].short
}

func (l Level) enabled(minLevel Level) bool {
	return l >= minLevel
}

// ParseLevel parses a level name or its three letter tag. The empty
// string selects info and "warning" is accepted for warn.
func ParseLevel(level string) (Level, error) {
	s := strings.ToLower(strings.TrimSpace(level))
	switch s {
	case "":
		return LevelInfo, nil
	case "warning":
		return LevelWarn, nil
	}
	for i, n := range levelNames {
		if s == n.name || s == strings.ToLower(n.short) {
			return Level(i), nil
		}
	}
	return LevelInfo, &ParseError{
		Input: level,
		Type:  "level",
	}
}

// LevelNames lists the canonical level names from most to least verbose
func LevelNames() []string {
	names := make([]string, len(levelNames))
	for i, n := range levelNames {
		names[i] = n.name
	}
	return names
}

// ParseError represents an error parsing a log configuration value
type ParseError struct {
	Input string
	Type  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return "invalid " + e.Type + ": " + e.Input
}

// DefaultLevel returns the default log level
func DefaultLevel() Level {
	return LevelWarn
}
