// File: codes.go
// Title: Error Code Definitions
// Description: Defines the error codes used to classify failures of the
//              turtle toolchain and the process exit status each maps to.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial code set

package error

// Code represents a structured error code for categorizing errors
type Code string

const (
	// Generic codes
	CodeUnknown      Code = "UNKNOWN"
	CodeInternal     Code = "INTERNAL"
	CodeNotFound     Code = "NOT_FOUND"
	CodeInvalidInput Code = "INVALID_INPUT"
	CodeCanceled     Code = "CANCELED"

	// Turtle language
	CodeTurtleSyntax   Code = "TURTLE_SYNTAX"
	CodeTurtleSemantic Code = "TURTLE_SEMANTIC"
	CodeInputTooLong   Code = "INPUT_TOO_LONG"

	// Configuration and environment
	CodeConfigError   Code = "CONFIG_ERROR"
	CodeMissingConfig Code = "MISSING_CONFIG"
	CodeInvalidConfig Code = "INVALID_CONFIG"

	// Input and output
	CodeIOError      Code = "IO_ERROR"
	CodeEncodeFailed Code = "ENCODE_FAILED"
)

// String returns the string representation of the error code
func (c Code) String() string {
	return string(c)
}

// IsValid checks if the error code is a known valid code
func (c Code) IsValid() bool {
	switch c {
	case CodeUnknown, CodeInternal, CodeNotFound, CodeInvalidInput, CodeCanceled,
		CodeTurtleSyntax, CodeTurtleSemantic, CodeInputTooLong,
		CodeConfigError, CodeMissingConfig, CodeInvalidConfig,
		CodeIOError, CodeEncodeFailed:
		return true
	default:
		return false
	}
}

// Category returns the high-level category of the error code
func (c Code) Category() string {
	switch c {
	case CodeTurtleSyntax, CodeTurtleSemantic, CodeInputTooLong:
		return "turtle"
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return "configuration"
	case CodeIOError, CodeEncodeFailed, CodeNotFound:
		return "io"
	default:
		return "generic"
	}
}

// ExitCode returns the process exit status for this error code.
// 1 is a rejected program, 2 a usage or configuration problem, 3 an I/O
// failure and 4 anything else.
func (c Code) ExitCode() int {
	switch c {
	case CodeTurtleSyntax, CodeTurtleSemantic, CodeInputTooLong:
		return 1
	case CodeInvalidInput, CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return 2
	case CodeIOError, CodeEncodeFailed, CodeNotFound:
		return 3
	default:
		return 4
	}
}
