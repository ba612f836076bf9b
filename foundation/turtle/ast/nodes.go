// File: nodes.go
// Title: Turtle AST Node Definitions
// Description: Defines the expression node types produced by the turtle
//              parser: movement commands, repeat blocks, procedure
//              definitions, calls and the leaf literals. Provides the
//              compact string form and structural validation.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial turtle AST node definitions

package ast

import (
	"fmt"
	"strings"
)

// Node represents the base interface for all AST nodes
type Node interface {
	// String returns the compact representation of the node
	String() string

	// Accept implements the visitor pattern
	Accept(visitor Visitor) interface{}

	// Position returns the source position of the token that introduced the node
	Position() Position

	// Validate checks the structural invariants of the node and its children
	Validate() error
}

// Expr is implemented by every node that may appear in a program body
type Expr interface {
	Node
	exprNode()
}

// Position represents a position in the source text
type Position struct {
	Line   int // Line number (1-based)
	Column int // Column number (1-based)
	Offset int // Byte offset (0-based)
}

// String returns "line:column"
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// Direction identifies one of the four movement commands
type Direction int

const (
	Forward Direction = iota
	Back
	Right
	Left
)

// String returns the node name used for the direction
func (d Direction) String() string {
	switch d {
	case Forward:
		return "Forward"
	case Back:
		return "Back"
	case Right:
		return "Right"
	case Left:
		return "Left"
	default:
		return "Unknown"
	}
}

// Keyword returns the source keyword of the direction
func (d Direction) Keyword() string {
	return strings.ToLower(d.String())
}

// Program is the ordered list of top-level expressions of a parsed source
type Program struct {
	Body []Expr
}

// MoveExpr represents forward/back/right/left with a single amount
type MoveExpr struct {
	Dir    Direction
	Amount Expr // NumberExpr or VariableExpr
	Pos    Position
}

// RepeatExpr represents `repeat <count> [ <body> ]`
type RepeatExpr struct {
	Count Expr // NumberExpr or VariableExpr
	Body  []Expr
	Pos   Position
}

// ProcedureDef represents `to <name> <params...> <body> end`
type ProcedureDef struct {
	Name   *IdentifierExpr
	Params []*VariableExpr
	Body   []Expr
	Pos    Position
}

// CallExpr represents a procedure call with its greedy argument list
type CallExpr struct {
	Name *IdentifierExpr
	Args []Expr // NumberExpr or VariableExpr
	Pos  Position
}

// NumberExpr is a signed 32-bit integer literal
type NumberExpr struct {
	Value int32
	Pos   Position
}

// IdentifierExpr is a bare name
type IdentifierExpr struct {
	Name string
	Pos  Position
}

// VariableExpr is a variable reference; Name keeps the leading sigil
type VariableExpr struct {
	Name string
	Pos  Position
}

func (*MoveExpr) exprNode()       {}
func (*RepeatExpr) exprNode()     {}
func (*ProcedureDef) exprNode()   {}
func (*CallExpr) exprNode()       {}
func (*NumberExpr) exprNode()     {}
func (*IdentifierExpr) exprNode() {}
func (*VariableExpr) exprNode()   {}

// Program

// String renders the top-level list as `[a, b, ...]`
func (p *Program) String() string {
	return listString(p.Body)
}

// Len returns the number of top-level expressions
func (p *Program) Len() int {
	return len(p.Body)
}

// Validate validates every top-level expression
func (p *Program) Validate() error {
	for i, expr := range p.Body {
		if expr == nil {
			return fmt.Errorf("expression %d is nil", i)
		}
		if err := expr.Validate(); err != nil {
			return fmt.Errorf("expression %d: %w", i, err)
		}
	}
	return nil
}

// MoveExpr

func (m *MoveExpr) String() string {
	return fmt.Sprintf("%s(%s)", m.Dir, nodeString(m.Amount))
}

func (m *MoveExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitMove(m)
}

func (m *MoveExpr) Position() Position {
	return m.Pos
}

func (m *MoveExpr) Validate() error {
	if m.Dir < Forward || m.Dir > Left {
		return fmt.Errorf("invalid direction %d", m.Dir)
	}
	if err := validateArgument(m.Amount); err != nil {
		return fmt.Errorf("%s amount: %w", m.Dir.Keyword(), err)
	}
	return nil
}

// RepeatExpr

func (r *RepeatExpr) String() string {
	return fmt.Sprintf("Repeat(%s, %s)", nodeString(r.Count), listString(r.Body))
}

func (r *RepeatExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitRepeat(r)
}

func (r *RepeatExpr) Position() Position {
	return r.Pos
}

func (r *RepeatExpr) Validate() error {
	if err := validateArgument(r.Count); err != nil {
		return fmt.Errorf("repeat count: %w", err)
	}
	return validateBody("repeat", r.Body)
}

// ProcedureDef

func (d *ProcedureDef) String() string {
	params := make([]string, len(d.Params))
	for i, param := range d.Params {
		if param == nil {
			params[i] = "<nil>"
			continue
		}
		params[i] = param.String()
	}
	return fmt.Sprintf("ProcedureDef(%s, [%s], %s)",
		identString(d.Name), strings.Join(params, ", "), listString(d.Body))
}

func (d *ProcedureDef) Accept(visitor Visitor) interface{} {
	return visitor.VisitProcedure(d)
}

func (d *ProcedureDef) Position() Position {
	return d.Pos
}

func (d *ProcedureDef) Validate() error {
	if d.Name == nil {
		return fmt.Errorf("procedure name is required")
	}
	if err := d.Name.Validate(); err != nil {
		return fmt.Errorf("procedure name: %w", err)
	}
	for i, param := range d.Params {
		if param == nil {
			return fmt.Errorf("procedure %s: parameter %d is nil", d.Name.Name, i)
		}
		if err := param.Validate(); err != nil {
			return fmt.Errorf("procedure %s: parameter %d: %w", d.Name.Name, i, err)
		}
	}
	return validateBody("procedure "+d.Name.Name, d.Body)
}

// Arity returns the number of declared parameters
func (d *ProcedureDef) Arity() int {
	return len(d.Params)
}

// CallExpr

func (c *CallExpr) String() string {
	return fmt.Sprintf("Call(%s, %s)", identString(c.Name), listString(c.Args))
}

func (c *CallExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitCall(c)
}

func (c *CallExpr) Position() Position {
	return c.Pos
}

func (c *CallExpr) Validate() error {
	if c.Name == nil {
		return fmt.Errorf("call name is required")
	}
	if err := c.Name.Validate(); err != nil {
		return fmt.Errorf("call name: %w", err)
	}
	for i, arg := range c.Args {
		if err := validateArgument(arg); err != nil {
			return fmt.Errorf("call %s: argument %d: %w", c.Name.Name, i, err)
		}
	}
	return nil
}

// NumberExpr

func (n *NumberExpr) String() string {
	return fmt.Sprintf("Number(%d)", n.Value)
}

func (n *NumberExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitNumber(n)
}

func (n *NumberExpr) Position() Position {
	return n.Pos
}

func (n *NumberExpr) Validate() error {
	return nil
}

// IdentifierExpr

func (i *IdentifierExpr) String() string {
	return fmt.Sprintf("Identifier(%q)", i.Name)
}

func (i *IdentifierExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitIdentifier(i)
}

func (i *IdentifierExpr) Position() Position {
	return i.Pos
}

func (i *IdentifierExpr) Validate() error {
	if i.Name == "" {
		return fmt.Errorf("identifier cannot be empty")
	}
	if strings.HasPrefix(i.Name, VariableSigil) {
		return fmt.Errorf("identifier %q must not start with %q", i.Name, VariableSigil)
	}
	return nil
}

// VariableExpr

// VariableSigil marks a variable reference in source text
const VariableSigil = ":"

func (v *VariableExpr) String() string {
	return fmt.Sprintf("Variable(%q)", v.Name)
}

func (v *VariableExpr) Accept(visitor Visitor) interface{} {
	return visitor.VisitVariable(v)
}

func (v *VariableExpr) Position() Position {
	return v.Pos
}

func (v *VariableExpr) Validate() error {
	if !strings.HasPrefix(v.Name, VariableSigil) {
		return fmt.Errorf("variable %q must start with %q", v.Name, VariableSigil)
	}
	if strings.TrimLeft(v.Name, VariableSigil) == "" {
		return fmt.Errorf("variable %q has no name after the sigil", v.Name)
	}
	return nil
}

// BareName returns the variable name without its sigils
func (v *VariableExpr) BareName() string {
	return strings.TrimLeft(v.Name, VariableSigil)
}

// Helpers

// validateArgument accepts only the two leaf kinds allowed as amounts and arguments
func validateArgument(expr Expr) error {
	switch arg := expr.(type) {
	case *NumberExpr:
		if arg == nil {
			return fmt.Errorf("missing value")
		}
		return nil
	case *VariableExpr:
		if arg == nil {
			return fmt.Errorf("missing value")
		}
		return arg.Validate()
	case nil:
		return fmt.Errorf("missing value")
	default:
		return fmt.Errorf("expected number or variable, got %s", expr.String())
	}
}

func validateBody(owner string, body []Expr) error {
	for i, expr := range body {
		if expr == nil {
			return fmt.Errorf("%s: body expression %d is nil", owner, i)
		}
		if err := expr.Validate(); err != nil {
			return fmt.Errorf("%s: body expression %d: %w", owner, i, err)
		}
	}
	return nil
}

func nodeString(node Node) string {
	if node == nil {
		return "<nil>"
	}
	return node.String()
}

func identString(ident *IdentifierExpr) string {
	if ident == nil {
		return "<nil>"
	}
	return ident.String()
}

func listString(exprs []Expr) string {
	parts := make([]string, len(exprs))
	for i, expr := range exprs {
		parts[i] = nodeString(expr)
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
