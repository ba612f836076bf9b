// File: stream.go
// Title: Parser State: Token Stream and Matching Stack
// Description: Holds the per-parse mutable state threaded through every
//              builder: the front-consumed token stream and the stack of
//              open block markers.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial parser state types

package parser

// TokenStream is consumed front to back with one token of lookahead
type TokenStream struct {
	tokens []Token
	pos    int
}

// NewTokenStream wraps a token slice. The slice is not copied; the stream
// must be the slice's only consumer.
func NewTokenStream(tokens []Token) *TokenStream {
	return &TokenStream{tokens: tokens}
}

// Next consumes and returns the front token
func (s *TokenStream) Next() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	tok := s.tokens[s.pos]
	s.pos++
	return tok, true
}

// Peek returns the front token without consuming it
func (s *TokenStream) Peek() (Token, bool) {
	if s.pos >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[s.pos], true
}

// Empty reports whether every token has been consumed
func (s *TokenStream) Empty() bool {
	return s.pos >= len(s.tokens)
}

// Len returns the number of tokens not yet consumed
func (s *TokenStream) Len() int {
	return len(s.tokens) - s.pos
}

// Remaining returns a copy of the tokens not yet consumed
func (s *TokenStream) Remaining() []Token {
	rest := make([]Token, s.Len())
	copy(rest, s.tokens[s.pos:])
	return rest
}

// MatchStack records open blocks. Only TokenLeftBracket and TokenTo
// tokens are ever pushed.
type MatchStack struct {
	openers []Token
}

// NewMatchStack creates an empty matching stack
func NewMatchStack() *MatchStack {
	return &MatchStack{}
}

// Push records an opener
func (m *MatchStack) Push(opener Token) {
	m.openers = append(m.openers, opener)
}

// Pop removes and returns the innermost opener
func (m *MatchStack) Pop() (Token, bool) {
	if len(m.openers) == 0 {
		return Token{}, false
	}
	top := m.openers[len(m.openers)-1]
	m.openers = m.openers[:len(m.openers)-1]
	return top, true
}

// Top returns the innermost opener without removing it
func (m *MatchStack) Top() (Token, bool) {
	if len(m.openers) == 0 {
		return Token{}, false
	}
	return m.openers[len(m.openers)-1], true
}

// Len returns the number of open blocks
func (m *MatchStack) Len() int {
	return len(m.openers)
}

// Empty reports whether no block is open
func (m *MatchStack) Empty() bool {
	return len(m.openers) == 0
}

// Items returns a copy of the open blocks, outermost first
func (m *MatchStack) Items() []Token {
	items := make([]Token, len(m.openers))
	copy(items, m.openers)
	return items
}
