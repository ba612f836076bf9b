// File: errors.go
// Title: Turtle Syntax Errors
// Description: Defines the structured syntax error returned by the lexer
//              and parser, its error kinds and the sentinel errors used
//              with errors.Is.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial syntax error taxonomy

package parser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies a syntax error
type ErrorKind int

const (
	KindUnexpectedToken ErrorKind = iota + 1
	KindUnexpectedEndOfInput
	KindUnmatchedCloser
	KindUnclosedBlock
	KindIllegalCharacter
	KindInputTooLong
	KindNestingTooDeep
)

// Sentinel errors, one per kind. A *SyntaxError unwraps to the sentinel of
// its kind so callers can use errors.Is.
var (
	ErrUnexpectedToken      = errors.New("unexpected token")
	ErrUnexpectedEndOfInput = errors.New("unexpected end of input")
	ErrUnmatchedCloser      = errors.New("unmatched closer")
	ErrUnclosedBlock        = errors.New("unclosed block")
	ErrIllegalCharacter     = errors.New("illegal character")
	ErrInputTooLong         = errors.New("input too long")
	ErrNestingTooDeep       = errors.New("nesting too deep")
)

// String returns the kind name
func (k ErrorKind) String() string {
	switch k {
	case KindUnexpectedToken:
		return "UnexpectedToken"
	case KindUnexpectedEndOfInput:
		return "UnexpectedEndOfInput"
	case KindUnmatchedCloser:
		return "UnmatchedCloser"
	case KindUnclosedBlock:
		return "UnclosedBlock"
	case KindIllegalCharacter:
		return "IllegalCharacter"
	case KindInputTooLong:
		return "InputTooLong"
	case KindNestingTooDeep:
		return "NestingTooDeep"
	default:
		return "Unknown"
	}
}

// Err returns the sentinel error for the kind
func (k ErrorKind) Err() error {
	switch k {
	case KindUnexpectedToken:
		return ErrUnexpectedToken
	case KindUnexpectedEndOfInput:
		return ErrUnexpectedEndOfInput
	case KindUnmatchedCloser:
		return ErrUnmatchedCloser
	case KindUnclosedBlock:
		return ErrUnclosedBlock
	case KindIllegalCharacter:
		return ErrIllegalCharacter
	case KindInputTooLong:
		return ErrInputTooLong
	case KindNestingTooDeep:
		return ErrNestingTooDeep
	default:
		return nil
	}
}

// SyntaxError represents a lexing or parsing failure with position information
type SyntaxError struct {
	Kind     ErrorKind
	Message  string
	Expected string  // Construct the grammar required, if any
	Token    *Token  // Offending token; nil at end of input
	Residual []Token // Matching stack contents for UnclosedBlock
	Position int
	Line     int
	Column   int
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.Line > 0 {
		fmt.Fprintf(&b, " at line %d, column %d", e.Line, e.Column)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	}
	return b.String()
}

// Unwrap returns the sentinel error of the kind
func (e *SyntaxError) Unwrap() error {
	return e.Kind.Err()
}

// AsSyntaxError extracts a *SyntaxError from an error chain
func AsSyntaxError(err error) (*SyntaxError, bool) {
	var syntaxErr *SyntaxError
	if errors.As(err, &syntaxErr) {
		return syntaxErr, true
	}
	return nil, false
}

// Constructors

func tokenError(kind ErrorKind, tok Token, message, expected string) *SyntaxError {
	return &SyntaxError{
		Kind:     kind,
		Message:  message,
		Expected: expected,
		Token:    &tok,
		Position: tok.Position,
		Line:     tok.Line,
		Column:   tok.Column,
	}
}

func unexpectedToken(tok Token, expected string) *SyntaxError {
	return tokenError(KindUnexpectedToken, tok, fmt.Sprintf("unexpected token %s", tok), expected)
}

func unexpectedEnd(expected string) *SyntaxError {
	return &SyntaxError{
		Kind:     KindUnexpectedEndOfInput,
		Message:  "unexpected end of input",
		Expected: expected,
	}
}

func unmatchedCloser(closer Token, opener string) *SyntaxError {
	return tokenError(KindUnmatchedCloser, closer,
		fmt.Sprintf("unmatched closer %s", quoteToken(closer.Type)),
		fmt.Sprintf("opening %s before %s", opener, quoteToken(closer.Type)))
}

func unclosedBlock(residual []Token) *SyntaxError {
	top := residual[len(residual)-1]
	err := tokenError(KindUnclosedBlock, top,
		fmt.Sprintf("unclosed block opened by %s", quoteToken(top.Type)),
		fmt.Sprintf("closing token %s", closerFor(top.Type)))
	err.Residual = residual
	return err
}

func nestingTooDeep(tok Token, limit int) *SyntaxError {
	return tokenError(KindNestingTooDeep, tok,
		fmt.Sprintf("block nesting exceeds maximum depth %d", limit), "")
}

// quoteToken renders a marker token type as its source text
func quoteToken(tt TokenType) string {
	for text, kw := range keywords {
		if kw == tt {
			return "'" + text + "'"
		}
	}
	return tt.String()
}

// closerFor returns the quoted closer that matches an opener
func closerFor(opener TokenType) string {
	switch opener {
	case TokenLeftBracket:
		return "']'"
	case TokenTo:
		return "'end'"
	default:
		return opener.String()
	}
}
