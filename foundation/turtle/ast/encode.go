// File: encode.go
// Title: Turtle AST Document Encoding
// Description: Converts AST nodes into tagged generic documents and encodes
//              them as JSON or YAML for tooling and inspection.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial JSON/YAML encoders

package ast

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// Document is the generic tagged form of a node
type Document map[string]interface{}

// ToDocument converts a node into its tagged document. Every document has a
// "type" key holding the node kind and a "pos" key holding "line:column".
func ToDocument(node Node) Document {
	if node == nil {
		return nil
	}

	doc := Document{
		"type": Kind(node),
		"pos":  node.Position().String(),
	}

	switch n := node.(type) {
	case *MoveExpr:
		doc["amount"] = ToDocument(n.Amount)
	case *RepeatExpr:
		doc["count"] = ToDocument(n.Count)
		doc["body"] = ToDocuments(n.Body)
	case *ProcedureDef:
		if n.Name != nil {
			doc["name"] = ToDocument(n.Name)
		}
		params := make([]Document, 0, len(n.Params))
		for _, param := range n.Params {
			if param == nil {
				params = append(params, nil)
				continue
			}
			params = append(params, ToDocument(param))
		}
		doc["params"] = params
		doc["body"] = ToDocuments(n.Body)
	case *CallExpr:
		if n.Name != nil {
			doc["name"] = ToDocument(n.Name)
		}
		doc["args"] = ToDocuments(n.Args)
	case *NumberExpr:
		doc["value"] = n.Value
	case *IdentifierExpr:
		doc["name"] = n.Name
	case *VariableExpr:
		doc["name"] = n.Name
	}

	return doc
}

// ToDocuments converts a list of expressions, never returning nil
func ToDocuments(exprs []Expr) []Document {
	docs := make([]Document, 0, len(exprs))
	for _, expr := range exprs {
		docs = append(docs, ToDocument(expr))
	}
	return docs
}

// EncodeJSON writes the program as an indented JSON array
func EncodeJSON(w io.Writer, nodes []Expr) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(ToDocuments(nodes))
}

// EncodeYAML writes the program as a YAML sequence
func EncodeYAML(w io.Writer, nodes []Expr) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(ToDocuments(nodes)); err != nil {
		return err
	}
	return enc.Close()
}
