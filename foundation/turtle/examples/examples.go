// File: examples.go
// Package: examples
// Title: Turtle Sample Programs
// Description: Embeds a small set of turtle programs used as defaults by the
//              CLI and as fixtures by the tests.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: rect, square, polygon and spiral samples

// Package examples provides embedded turtle sample programs.
package examples

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strings"
)

// DefaultName is the sample parsed when no input is given
const DefaultName = "rect"

const extension = ".logo"

//go:embed programs/*.logo
var programs embed.FS

// Sample is a named program text
type Sample struct {
	Name   string
	Source string
}

// Get returns the source of the named sample
func Get(name string) (string, error) {
	data, err := programs.ReadFile("programs/" + name + extension)
	if err != nil {
		return "", fmt.Errorf("unknown sample %q (available: %s)", name, strings.Join(Names(), ", "))
	}
	return string(data), nil
}

// MustGet is like Get but panics for unknown names
func MustGet(name string) string {
	source, err := Get(name)
	if err != nil {
		panic(err)
	}
	return source
}

// Names returns the sample names in sorted order
func Names() []string {
	entries, err := fs.ReadDir(programs, "programs")
	if err != nil {
		return nil
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if name := entry.Name(); strings.HasSuffix(name, extension) {
			names = append(names, strings.TrimSuffix(name, extension))
		}
	}
	sort.Strings(names)
	return names
}

// All returns every sample in name order
func All() []Sample {
	names := Names()
	samples := make([]Sample, 0, len(names))
	for _, name := range names {
		samples = append(samples, Sample{Name: name, Source: MustGet(name)})
	}
	return samples
}
