// File: lexer.go
// Title: Turtle Lexical Analyzer (Tokenizer)
// Description: Implements the lexical analysis phase of turtle parsing.
//              Scans the program text with a single token pattern,
//              classifies each match against the keyword table and
//              attaches position information for error reporting.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial lexer implementation

package parser

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	mdwlog "github.com/msto63/turtle/foundation/core/log"
)

// tokenPattern matches, leftmost first: an alphanumeric run with optional
// ':' sigils, a digit run, a single bracket, or a comparison operator.
var tokenPattern = regexp.MustCompile(`:*[a-zA-Z0-9]+|[0-9]+|\[|\]|(<=|<|>=|>|==|!=|!)`)

// LexerOptions configures lexer behavior
type LexerOptions struct {
	// Strict rejects characters that match no token pattern instead of
	// skipping them. Whitespace is always skipped.
	Strict bool

	// Logger receives a warning for every skipped run in lenient mode
	Logger *mdwlog.Logger
}

// Lexer performs lexical analysis of turtle input
type Lexer struct {
	input      string
	options    LexerOptions
	lineStarts []int // Byte offsets at which each line begins
}

// NewLexer creates a new lexer for the given input
func NewLexer(input string, opts LexerOptions) *Lexer {
	lineStarts := []int{0}
	for i := 0; i < len(input); i++ {
		if input[i] == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	return &Lexer{
		input:      input,
		options:    opts,
		lineStarts: lineStarts,
	}
}

// Tokenize returns all tokens from the input in source order
func (l *Lexer) Tokenize() ([]Token, error) {
	matches := tokenPattern.FindAllStringIndex(l.input, -1)
	tokens := make([]Token, 0, len(matches))

	prev := 0
	for _, m := range matches {
		if err := l.checkGap(prev, m[0]); err != nil {
			return tokens, err
		}
		tokens = append(tokens, l.newToken(m[0], m[1]))
		prev = m[1]
	}

	if err := l.checkGap(prev, len(l.input)); err != nil {
		return tokens, err
	}

	return tokens, nil
}

// newToken classifies the match input[start:end]
func (l *Lexer) newToken(start, end int) Token {
	text := l.input[start:end]
	line, column := l.location(start)

	tok := Token{
		Value:    text,
		Position: start,
		Line:     line,
		Column:   column,
	}
	tok.Type, tok.Number = classify(text)
	return tok
}

// classify applies the keyword, integer, variable, identifier priority
func classify(text string) (TokenType, int32) {
	if tt, ok := keywords[text]; ok {
		return tt, 0
	}
	if n, err := strconv.ParseInt(text, 10, 32); err == nil {
		return TokenNumber, int32(n)
	}
	if strings.HasPrefix(text, ":") {
		return TokenVariable, 0
	}
	return TokenIdentifier, 0
}

// checkGap inspects text between two matches. Whitespace is always
// ignored; anything else is an error in strict mode and a warning otherwise.
func (l *Lexer) checkGap(start, end int) error {
	if start >= end {
		return nil
	}

	gap := l.input[start:end]
	idx := strings.IndexFunc(gap, func(r rune) bool { return !unicode.IsSpace(r) })
	if idx < 0 {
		return nil
	}

	offset := start + idx
	line, column := l.location(offset)
	r, _ := utf8.DecodeRuneInString(l.input[offset:])

	if l.options.Strict {
		return &SyntaxError{
			Kind:     KindIllegalCharacter,
			Message:  fmt.Sprintf("illegal character %q", r),
			Position: offset,
			Line:     line,
			Column:   column,
		}
	}

	if l.options.Logger != nil {
		l.options.Logger.Warn("Skipping unrecognized characters", mdwlog.Fields{
			"text":   strings.TrimSpace(gap),
			"line":   line,
			"column": column,
		})
	}
	return nil
}

// location converts a byte offset to a 1-based line and column
func (l *Lexer) location(offset int) (int, int) {
	idx := sort.Search(len(l.lineStarts), func(i int) bool {
		return l.lineStarts[i] > offset
	}) - 1
	return idx + 1, offset - l.lineStarts[idx] + 1
}

// TokenizeInput is a convenience function that tokenizes input leniently
func TokenizeInput(input string) ([]Token, error) {
	return NewLexer(input, LexerOptions{}).Tokenize()
}
