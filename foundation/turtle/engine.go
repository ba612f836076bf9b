// File: engine.go
// Title: Turtle High-Level Engine Interface
// Description: Provides the entry point for processing turtle programs. The
//              engine configures lexer and parser, tags every run with a
//              unique identifier, times it, and reports failures as
//              structured errors.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial engine implementation

package turtle

import (
	"context"
	"time"

	"github.com/google/uuid"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwlog "github.com/msto63/turtle/foundation/core/log"
	mdwast "github.com/msto63/turtle/foundation/turtle/ast"
	mdwparser "github.com/msto63/turtle/foundation/turtle/parser"
)

// Engine lexes and parses turtle programs. It holds no per-run state and
// is safe for concurrent use.
type Engine struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures the engine
type Options struct {
	Logger *mdwlog.Logger

	// Strict rejects characters that match no token
	Strict bool

	// MaxInputLength and MaxDepth are passed to the parser: zero selects
	// the parser default, negative disables the limit
	MaxInputLength int
	MaxDepth       int
}

// Result describes one successful parse run
type Result struct {
	RunID    string
	Program  *mdwast.Program
	Tokens   []mdwparser.Token
	Duration time.Duration
}

// New creates a new engine
func New(opts Options) (*Engine, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}

	logger := opts.Logger.WithField("component", "turtle-engine")
	logger.Debug("Turtle engine initialized", mdwlog.Fields{
		"strict":         opts.Strict,
		"maxInputLength": opts.MaxInputLength,
		"maxDepth":       opts.MaxDepth,
	})

	return &Engine{
		logger:  logger,
		options: opts,
	}, nil
}

// Options returns the engine options
func (e *Engine) Options() Options {
	return e.options
}

// Parse lexes and parses source. Every run gets a fresh UUID that is
// attached to its log entries and returned in the result.
func (e *Engine) Parse(ctx context.Context, source string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, mdwerror.Wrap(err, "parse canceled").
			WithCode(mdwerror.CodeCanceled).
			WithOperation("turtle.Parse")
	}

	runID := uuid.NewString()
	logger := e.logger.WithRunID(runID)
	timer := logger.StartTimer("turtle.parse").WithField("length", len(source))

	p, err := mdwparser.New(e.options.parserOptions(logger))
	if err != nil {
		wrapped := mdwerror.Wrap(err, "failed to initialize turtle parser").
			WithCode(mdwerror.CodeInternal).
			WithOperation("turtle.Parse")
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	tokens, err := p.Tokenize(source)
	if err != nil {
		wrapped := wrapSyntaxError(err, runID)
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	program, err := p.ParseTokens(tokens)
	if err != nil {
		wrapped := wrapSyntaxError(err, runID)
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	if err := program.Validate(); err != nil {
		wrapped := mdwerror.Wrap(err, "invalid turtle program").
			WithCode(mdwerror.CodeTurtleSemantic).
			WithOperation("turtle.Parse").
			WithDetail("run_id", runID)
		timer.StopWithError(wrapped)
		return nil, wrapped
	}

	timer.WithField("tokens", len(tokens)).WithField("expressions", program.Len())
	duration := timer.Stop()

	return &Result{
		RunID:    runID,
		Program:  program,
		Tokens:   tokens,
		Duration: duration,
	}, nil
}

// Tokenize runs only the lexer with the engine's settings
func (e *Engine) Tokenize(source string) ([]mdwparser.Token, error) {
	p, err := mdwparser.New(e.options.parserOptions(e.logger))
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to initialize turtle parser").
			WithCode(mdwerror.CodeInternal).
			WithOperation("turtle.Tokenize")
	}

	tokens, err := p.Tokenize(source)
	if err != nil {
		return nil, wrapSyntaxError(err, "")
	}
	return tokens, nil
}

// Validate reports whether source is a well-formed program
func (e *Engine) Validate(ctx context.Context, source string) error {
	_, err := e.Parse(ctx, source)
	return err
}

func (o Options) parserOptions(logger *mdwlog.Logger) mdwparser.Options {
	return mdwparser.Options{
		Logger:         logger,
		MaxInputLength: o.MaxInputLength,
		MaxDepth:       o.MaxDepth,
		Strict:         o.Strict,
	}
}

// wrapSyntaxError converts a parser failure into a structured error that
// keeps the *parser.SyntaxError reachable through errors.As
func wrapSyntaxError(err error, runID string) error {
	syntaxErr, ok := mdwparser.AsSyntaxError(err)
	if !ok {
		return mdwerror.Wrap(err, "failed to parse turtle program").
			WithCode(mdwerror.CodeInternal).
			WithOperation("turtle.Parse")
	}

	code := mdwerror.CodeTurtleSyntax
	if syntaxErr.Kind == mdwparser.KindInputTooLong {
		code = mdwerror.CodeInputTooLong
	}

	wrapped := mdwerror.Wrap(err, "failed to parse turtle program").
		WithCode(code).
		WithOperation("turtle.Parse").
		WithDetail("kind", syntaxErr.Kind.String())

	if syntaxErr.Line > 0 {
		wrapped.WithDetail("line", syntaxErr.Line).
			WithDetail("column", syntaxErr.Column).
			WithDetail("offset", syntaxErr.Position)
	}
	if syntaxErr.Expected != "" {
		wrapped.WithDetail("expected", syntaxErr.Expected)
	}
	if syntaxErr.Token != nil {
		wrapped.WithDetail("token", syntaxErr.Token.String())
	}
	if len(syntaxErr.Residual) > 0 {
		wrapped.WithDetail("open_blocks", len(syntaxErr.Residual))
	}
	if runID != "" {
		wrapped.WithDetail("run_id", runID)
	}
	return wrapped
}
