// File: doc.go
// Title: Turtle Package Documentation
// Description: Top-level entry point for turtle program processing.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial engine documentation

/*
Package turtle processes programs written in a small turtle-graphics
language:

	to square :side
	    repeat 4 [ forward :side right 90 ]
	end
	square 5

Subpackages:

  - parser: lexer, token stream, matching stack and recursive descent parser
  - ast: expression tree, visitors, printers and encoders
  - examples: embedded sample programs

The Engine ties them together:

	engine, err := turtle.New(turtle.Options{Logger: logger})
	result, err := engine.Parse(ctx, source)
	fmt.Println(result.Program)

Failures are *error.Error values from the foundation error package with
code TURTLE_SYNTAX or INPUT_TOO_LONG. The underlying *parser.SyntaxError is
kept in the chain:

	if syntaxErr, ok := parser.AsSyntaxError(err); ok {
		fmt.Println(syntaxErr.Line, syntaxErr.Column)
	}
*/
package turtle
