// File: doc.go
// Title: Turtle Parser Package Documentation
// Description: Implements the lexical analyzer and parser for turtle
//              programs.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial parser implementation

/*
Package parser provides lexical analysis and parsing for turtle programs.

The lexer scans the text with one pattern, leftmost match first:

	:*[a-zA-Z0-9]+ | [0-9]+ | [ | ] | <= < >= > == != !

and classifies each match as a keyword, a 32-bit number, a variable (leading
':') or an identifier. Text between matches is skipped; with
LexerOptions.Strict any skipped non-whitespace character is an error.

The parser is a recursive descent over the token stream. Repeat blocks and
procedure definitions recurse once per level; the closing ']' or 'end' is
consumed by the nested call, checked against the matching stack, and returns
control to the enclosing block.

	p, _ := parser.New(parser.Options{})
	prog, err := p.Parse("repeat 4 [ forward 10 right 90 ]")
	// prog.String() == "[Repeat(Number(4), [Forward(Number(10)), Right(Number(90))])]"

All failures are returned as *SyntaxError values that unwrap to one of the
Err* sentinels.
*/
package parser
