// File: doc.go
// Title: Turtle Abstract Syntax Tree Package Documentation
// Description: Defines the Abstract Syntax Tree nodes for parsed turtle
//              programs together with visitors, printers and encoders.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial AST implementation

/*
Package ast defines the Abstract Syntax Tree for turtle programs.

A program is an ordered list of expressions:

  - MoveExpr: forward, back, right, left with one amount
  - RepeatExpr: a count and a block body
  - ProcedureDef: a name, variable parameters and a body
  - CallExpr: a name and a greedy list of number/variable arguments
  - NumberExpr, IdentifierExpr, VariableExpr: leaves

Nodes own their children exclusively and are not mutated after the parser
returns them. The String form of a node mirrors its constructor shape, for
example:

	Repeat(Number(4), [Forward(Number(10)), Right(Number(90))])

Fprint renders an indented tree, EncodeJSON and EncodeYAML produce tagged
documents, and CollectStats summarizes a program.
*/
package ast
