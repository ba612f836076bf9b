// File: token.go
// Title: Turtle Token Definitions
// Description: Defines the token types produced by the turtle lexer, the
//              keyword table and the token value type with its source
//              position.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial token definitions

package parser

import (
	"fmt"

	mdwast "github.com/msto63/turtle/foundation/turtle/ast"
)

// TokenType represents the type of a lexical token
type TokenType int

const (
	// Movement keywords
	TokenForward TokenType = iota
	TokenBack
	TokenRight
	TokenLeft

	// Block keywords and delimiters
	TokenRepeat
	TokenLeftBracket  // [
	TokenRightBracket // ]
	TokenTo
	TokenEnd

	// Reserved, never accepted by the parser
	TokenIf
	TokenGreater // >
	TokenLess    // <

	// Payload tokens
	TokenNumber
	TokenIdentifier
	TokenVariable
)

// String returns a string representation of the token type
func (tt TokenType) String() string {
	switch tt {
	case TokenForward:
		return "FORWARD"
	case TokenBack:
		return "BACK"
	case TokenRight:
		return "RIGHT"
	case TokenLeft:
		return "LEFT"
	case TokenRepeat:
		return "REPEAT"
	case TokenLeftBracket:
		return "LEFT_BRACKET"
	case TokenRightBracket:
		return "RIGHT_BRACKET"
	case TokenTo:
		return "TO"
	case TokenEnd:
		return "END"
	case TokenIf:
		return "IF"
	case TokenGreater:
		return "GREATER"
	case TokenLess:
		return "LESS"
	case TokenNumber:
		return "NUMBER"
	case TokenIdentifier:
		return "IDENTIFIER"
	case TokenVariable:
		return "VARIABLE"
	default:
		return "UNKNOWN"
	}
}

// IsMarker reports whether the token type carries no payload
func (tt TokenType) IsMarker() bool {
	return tt < TokenNumber
}

// Token represents a lexical token with position information
type Token struct {
	Type     TokenType // Token type
	Value    string    // Matched source text
	Number   int32     // Parsed value for TokenNumber
	Position int       // Byte position in input
	Line     int       // Line number (1-based)
	Column   int       // Column number (1-based)
}

// String returns a string representation of the token
func (t Token) String() string {
	switch t.Type {
	case TokenNumber:
		return fmt.Sprintf("NUMBER(%d)", t.Number)
	case TokenIdentifier, TokenVariable:
		return fmt.Sprintf("%s(%q)", t.Type, t.Value)
	default:
		return t.Type.String()
	}
}

// Pos returns the token position as an AST position
func (t Token) Pos() mdwast.Position {
	return mdwast.Position{
		Line:   t.Line,
		Column: t.Column,
		Offset: t.Position,
	}
}

// Is reports whether the token has the given type
func (t Token) Is(tt TokenType) bool {
	return t.Type == tt
}

// keywords maps exact source text to marker tokens
var keywords = map[string]TokenType{
	"forward": TokenForward,
	"back":    TokenBack,
	"right":   TokenRight,
	"left":    TokenLeft,
	"repeat":  TokenRepeat,
	"[":       TokenLeftBracket,
	"]":       TokenRightBracket,
	"to":      TokenTo,
	"end":     TokenEnd,
	"if":      TokenIf,
	">":       TokenGreater,
	"<":       TokenLess,
}

// IsKeyword checks if a string is a turtle keyword (case-sensitive)
func IsKeyword(s string) bool {
	_, ok := keywords[s]
	return ok
}

// Keywords returns the keyword table as a fresh map
func Keywords() map[string]TokenType {
	result := make(map[string]TokenType, len(keywords))
	for k, v := range keywords {
		result[k] = v
	}
	return result
}
