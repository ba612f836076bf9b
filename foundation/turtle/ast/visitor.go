// File: visitor.go
// Title: Turtle AST Visitor Pattern Implementation
// Description: Implements the visitor pattern for traversing turtle AST
//              nodes, a depth-first Inspect helper, an indented tree
//              printer and a statistics collector.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial visitor pattern implementation

package ast

import (
	"fmt"
	"io"
	"sort"
	"strings"
)

// Visitor interface for traversing AST nodes using the visitor pattern
type Visitor interface {
	VisitMove(expr *MoveExpr) interface{}
	VisitRepeat(expr *RepeatExpr) interface{}
	VisitProcedure(expr *ProcedureDef) interface{}
	VisitCall(expr *CallExpr) interface{}
	VisitNumber(expr *NumberExpr) interface{}
	VisitIdentifier(expr *IdentifierExpr) interface{}
	VisitVariable(expr *VariableExpr) interface{}
}

// BaseVisitor provides no-op implementations for all visitor methods.
// Embed it in concrete visitors to only override needed methods.
type BaseVisitor struct{}

func (BaseVisitor) VisitMove(*MoveExpr) interface{}             { return nil }
func (BaseVisitor) VisitRepeat(*RepeatExpr) interface{}         { return nil }
func (BaseVisitor) VisitProcedure(*ProcedureDef) interface{}    { return nil }
func (BaseVisitor) VisitCall(*CallExpr) interface{}             { return nil }
func (BaseVisitor) VisitNumber(*NumberExpr) interface{}         { return nil }
func (BaseVisitor) VisitIdentifier(*IdentifierExpr) interface{} { return nil }
func (BaseVisitor) VisitVariable(*VariableExpr) interface{}     { return nil }

// Children returns the direct children of a node in source order
func Children(node Node) []Node {
	var children []Node
	switch n := node.(type) {
	case *MoveExpr:
		if n.Amount != nil {
			children = append(children, n.Amount)
		}
	case *RepeatExpr:
		if n.Count != nil {
			children = append(children, n.Count)
		}
		for _, expr := range n.Body {
			children = append(children, expr)
		}
	case *ProcedureDef:
		if n.Name != nil {
			children = append(children, n.Name)
		}
		for _, param := range n.Params {
			if param != nil {
				children = append(children, param)
			}
		}
		for _, expr := range n.Body {
			children = append(children, expr)
		}
	case *CallExpr:
		if n.Name != nil {
			children = append(children, n.Name)
		}
		for _, arg := range n.Args {
			children = append(children, arg)
		}
	}
	return children
}

// Inspect traverses the nodes depth-first. fn receives each node with its
// block depth (0 for top-level); returning false skips the node's children.
func Inspect(nodes []Expr, fn func(node Node, depth int) bool) {
	for _, expr := range nodes {
		inspect(expr, 0, fn)
	}
}

func inspect(node Node, depth int, fn func(Node, int) bool) {
	if node == nil || !fn(node, depth) {
		return
	}
	childDepth := depth
	switch node.(type) {
	case *RepeatExpr, *ProcedureDef:
		childDepth++
	}
	for _, child := range Children(node) {
		inspect(child, childDepth, fn)
	}
}

// Walk dispatches every node of the tree to the visitor in depth-first order
func Walk(visitor Visitor, nodes []Expr) {
	Inspect(nodes, func(node Node, _ int) bool {
		node.Accept(visitor)
		return true
	})
}

// TreePrinter renders an indented tree, one node per line
type TreePrinter struct {
	BaseVisitor
	buffer strings.Builder
	indent int
}

// NewTreePrinter creates a new tree printer
func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

// String returns the built representation
func (tp *TreePrinter) String() string {
	return tp.buffer.String()
}

// Reset clears the internal buffer
func (tp *TreePrinter) Reset() {
	tp.buffer.Reset()
	tp.indent = 0
}

func (tp *TreePrinter) line(format string, args ...interface{}) {
	tp.buffer.WriteString(strings.Repeat("  ", tp.indent))
	tp.buffer.WriteString(fmt.Sprintf(format, args...))
	tp.buffer.WriteString("\n")
}

func (tp *TreePrinter) block(exprs []Expr) {
	tp.indent++
	for _, expr := range exprs {
		expr.Accept(tp)
	}
	tp.indent--
}

func (tp *TreePrinter) VisitMove(expr *MoveExpr) interface{} {
	tp.line("%s %s", expr.Dir, nodeString(expr.Amount))
	return nil
}

func (tp *TreePrinter) VisitRepeat(expr *RepeatExpr) interface{} {
	tp.line("Repeat %s", nodeString(expr.Count))
	tp.block(expr.Body)
	return nil
}

func (tp *TreePrinter) VisitProcedure(expr *ProcedureDef) interface{} {
	params := make([]string, 0, len(expr.Params))
	for _, param := range expr.Params {
		if param == nil {
			params = append(params, "<nil>")
			continue
		}
		params = append(params, param.Name)
	}
	tp.line("ProcedureDef %s [%s]", identString(expr.Name), strings.Join(params, " "))
	tp.block(expr.Body)
	return nil
}

func (tp *TreePrinter) VisitCall(expr *CallExpr) interface{} {
	tp.line("Call %s %s", identString(expr.Name), listString(expr.Args))
	return nil
}

func (tp *TreePrinter) VisitNumber(expr *NumberExpr) interface{} {
	tp.line("%s", expr)
	return nil
}

func (tp *TreePrinter) VisitIdentifier(expr *IdentifierExpr) interface{} {
	tp.line("%s", expr)
	return nil
}

func (tp *TreePrinter) VisitVariable(expr *VariableExpr) interface{} {
	tp.line("%s", expr)
	return nil
}

// Fprint writes the indented tree of nodes to w
func Fprint(w io.Writer, nodes []Expr) error {
	tp := NewTreePrinter()
	for _, expr := range nodes {
		if expr != nil {
			expr.Accept(tp)
		}
	}
	_, err := io.WriteString(w, tp.String())
	return err
}

// Stats summarizes a parsed program
type Stats struct {
	Nodes      int            `json:"nodes" yaml:"nodes"`
	Kinds      map[string]int `json:"kinds" yaml:"kinds"`
	Procedures []string       `json:"procedures" yaml:"procedures"`
	Calls      []string       `json:"calls" yaml:"calls"`
	MaxDepth   int            `json:"max_depth" yaml:"max_depth"`
}

// statsVisitor counts nodes per kind and collects procedure and call names
type statsVisitor struct {
	BaseVisitor
	stats *Stats
	calls map[string]bool
}

func (sv *statsVisitor) VisitProcedure(expr *ProcedureDef) interface{} {
	if expr.Name != nil {
		sv.stats.Procedures = append(sv.stats.Procedures, expr.Name.Name)
	}
	return nil
}

func (sv *statsVisitor) VisitCall(expr *CallExpr) interface{} {
	if expr.Name != nil && !sv.calls[expr.Name.Name] {
		sv.calls[expr.Name.Name] = true
		sv.stats.Calls = append(sv.stats.Calls, expr.Name.Name)
	}
	return nil
}

// CollectStats walks the nodes and returns their statistics
func CollectStats(nodes []Expr) *Stats {
	stats := &Stats{
		Kinds:      make(map[string]int),
		Procedures: []string{},
		Calls:      []string{},
	}
	sv := &statsVisitor{stats: stats, calls: make(map[string]bool)}

	Inspect(nodes, func(node Node, depth int) bool {
		stats.Nodes++
		stats.Kinds[Kind(node)]++
		switch node.(type) {
		case *RepeatExpr, *ProcedureDef:
			if depth+1 > stats.MaxDepth {
				stats.MaxDepth = depth + 1
			}
		}
		node.Accept(sv)
		return true
	})

	sort.Strings(stats.Calls)
	return stats
}

// Kind returns the node kind name used by printers and encoders
func Kind(node Node) string {
	switch n := node.(type) {
	case *MoveExpr:
		return n.Dir.String()
	case *RepeatExpr:
		return "Repeat"
	case *ProcedureDef:
		return "ProcedureDef"
	case *CallExpr:
		return "Call"
	case *NumberExpr:
		return "Number"
	case *IdentifierExpr:
		return "Identifier"
	case *VariableExpr:
		return "Variable"
	default:
		return "Unknown"
	}
}

// ValidateAST validates every node and returns the first error
func ValidateAST(nodes []Expr) error {
	return (&Program{Body: nodes}).Validate()
}
