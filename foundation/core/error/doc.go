// Package error provides structured errors for the turtle toolchain.
//
// Package: error
// Title: Turtle Error Handling
// Description: Errors carry a code, a severity, an operation name and a set
//              of details next to the message and the wrapped cause. The
//              engine uses them to attach syntax error positions; the CLI
//              maps codes to process exit statuses.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial implementation with codes and severities
//
// Usage:
//
//	import mdwerror "github.com/msto63/turtle/foundation/core/error"
//
//	err := mdwerror.Wrap(syntaxErr, "parse failed").
//		WithCode(mdwerror.CodeTurtleSyntax).
//		WithDetail("line", 3).
//		WithOperation("engine.parse")
//
//	if mdwerror.HasCode(err, mdwerror.CodeTurtleSyntax) {
//		// report the position to the user
//	}
package error
