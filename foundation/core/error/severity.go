// File: severity.go
// Title: Error Severity Levels
// Description: Defines severity levels for errors. The logger picks its
//              output level from the severity of the error it records.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation with severity levels

package error

// Severity represents the severity level of an error
type Severity int

const (
	// SeverityLow marks errors caused by the user's input, such as a
	// malformed program
	SeverityLow Severity = iota

	// SeverityMedium marks errors with a clear recovery path, such as a
	// missing file
	SeverityMedium

	// SeverityHigh marks errors that stop the tool from working, such as
	// an unreadable configuration
	SeverityHigh

	// SeverityCritical marks internal faults
	SeverityCritical
)

// String returns the string representation of the severity level
func (s Severity) String() string {
	switch s {
	case SeverityLow:
		return "low"
	case SeverityMedium:
		return "medium"
	case SeverityHigh:
		return "high"
	case SeverityCritical:
		return "critical"
	default:
		return "unknown"
	}
}

// GetSeverityFromCode determines the default severity for an error code
func GetSeverityFromCode(code Code) Severity {
	switch code {
	case CodeInternal:
		return SeverityCritical
	case CodeConfigError, CodeMissingConfig, CodeInvalidConfig:
		return SeverityHigh
	case CodeTurtleSyntax, CodeTurtleSemantic, CodeInputTooLong, CodeInvalidInput:
		return SeverityLow
	default:
		return SeverityMedium
	}
}
