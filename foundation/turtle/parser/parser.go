// File: parser.go
// Title: Turtle Recursive Descent Parser
// Description: Implements the parsing phase of turtle program processing.
//              Converts token streams into expression trees using recursive
//              descent, one recursion level per open block, and validates
//              block nesting with an explicit matching stack.
// Author: msto63
// Version: v0.1.0
// Created: 2026-10-18
// Modified: 2026-10-18
//
// Change History:
// - 2026-10-18 v0.1.0: Initial parser implementation

package parser

import (
	"fmt"

	mdwlog "github.com/msto63/turtle/foundation/core/log"
	mdwast "github.com/msto63/turtle/foundation/turtle/ast"
)

const (
	// DefaultMaxInputLength is used when Options.MaxInputLength is zero
	DefaultMaxInputLength = 1 << 20

	// DefaultMaxDepth is used when Options.MaxDepth is zero
	DefaultMaxDepth = 256
)

// Parser implements recursive descent parsing for turtle programs
type Parser struct {
	logger  *mdwlog.Logger
	options Options
}

// Options configures parser behavior
type Options struct {
	Logger *mdwlog.Logger

	// MaxInputLength limits the input size in bytes; negative disables the limit
	MaxInputLength int

	// MaxDepth limits block nesting; negative disables the limit
	MaxDepth int

	// Strict rejects characters that match no token pattern
	Strict bool
}

// New creates a new turtle parser with the given options
func New(opts Options) (*Parser, error) {
	if opts.Logger == nil {
		opts.Logger = mdwlog.GetDefault()
	}
	if opts.MaxInputLength == 0 {
		opts.MaxInputLength = DefaultMaxInputLength
	}
	if opts.MaxDepth == 0 {
		opts.MaxDepth = DefaultMaxDepth
	}

	return &Parser{
		logger:  opts.Logger.WithField("component", "turtle-parser"),
		options: opts,
	}, nil
}

// Options returns the effective parser options
func (p *Parser) Options() Options {
	return p.options
}

// Tokenize runs the lexer with the parser's strictness and logger
func (p *Parser) Tokenize(input string) ([]Token, error) {
	if p.options.MaxInputLength > 0 && len(input) > p.options.MaxInputLength {
		return nil, &SyntaxError{
			Kind:    KindInputTooLong,
			Message: fmt.Sprintf("input exceeds maximum length: %d > %d", len(input), p.options.MaxInputLength),
		}
	}

	lexer := NewLexer(input, LexerOptions{
		Strict: p.options.Strict,
		Logger: p.logger,
	})
	return lexer.Tokenize()
}

// Parse lexes and parses a program and returns its AST
func (p *Parser) Parse(input string) (*mdwast.Program, error) {
	p.logger.Debug("Starting turtle parsing", mdwlog.Fields{
		"length": len(input),
		"strict": p.options.Strict,
	})

	tokens, err := p.Tokenize(input)
	if err != nil {
		p.logger.Debug("Turtle lexing failed", mdwlog.Fields{
			"error": err.Error(),
		})
		return nil, err
	}

	return p.ParseTokens(tokens)
}

// ParseTokens parses an already lexed token sequence. A block still open
// once the tokens are exhausted is reported as an UnclosedBlock error.
func (p *Parser) ParseTokens(tokens []Token) (*mdwast.Program, error) {
	stack := NewMatchStack()
	b := &builder{
		tokens:   NewTokenStream(tokens),
		stack:    stack,
		maxDepth: p.options.MaxDepth,
	}

	body, err := b.build()
	if err == nil && !stack.Empty() {
		err = unclosedBlock(stack.Items())
	}
	if err != nil {
		p.logger.Debug("Turtle parsing failed", mdwlog.Fields{
			"tokens": len(tokens),
			"error":  err.Error(),
		})
		return nil, err
	}

	p.logger.Debug("Turtle parsing completed successfully", mdwlog.Fields{
		"tokens":      len(tokens),
		"expressions": len(body),
	})

	return &mdwast.Program{Body: body}, nil
}

// Build consumes tokens until the stream is exhausted or a closer ends the
// current block, and returns the expressions read. Openers are pushed on
// stack and left there when the stream runs out, so a non-empty stack
// after the outermost call means a block was never closed.
func Build(tokens *TokenStream, stack *MatchStack) ([]mdwast.Expr, error) {
	b := &builder{tokens: tokens, stack: stack, maxDepth: -1}
	return b.build()
}

// builder carries the state of one parse through the recursive descent
type builder struct {
	tokens   *TokenStream
	stack    *MatchStack
	depth    int
	maxDepth int
}

var directions = map[TokenType]mdwast.Direction{
	TokenForward: mdwast.Forward,
	TokenBack:    mdwast.Back,
	TokenRight:   mdwast.Right,
	TokenLeft:    mdwast.Left,
}

func (b *builder) build() ([]mdwast.Expr, error) {
	exprs := []mdwast.Expr{}

	for {
		tok, ok := b.tokens.Next()
		if !ok {
			return exprs, nil
		}

		switch tok.Type {
		case TokenForward, TokenBack, TokenRight, TokenLeft:
			amount, err := b.buildVar()
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, &mdwast.MoveExpr{
				Dir:    directions[tok.Type],
				Amount: amount,
				Pos:    tok.Pos(),
			})

		case TokenRepeat:
			expr, err := b.buildRepeat(tok)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)

		case TokenRightBracket:
			if err := b.popStack(TokenLeftBracket, tok); err != nil {
				return nil, err
			}
			return exprs, nil

		case TokenTo:
			expr, err := b.buildTo(tok)
			if err != nil {
				return nil, err
			}
			exprs = append(exprs, expr)

		case TokenEnd:
			if err := b.popStack(TokenTo, tok); err != nil {
				return nil, err
			}
			return exprs, nil

		case TokenIdentifier:
			exprs = append(exprs, b.buildCall(tok))

		default:
			return nil, unexpectedToken(tok, "command")
		}
	}
}

// buildVar reads one number or variable
func (b *builder) buildVar() (mdwast.Expr, error) {
	tok, ok := b.tokens.Next()
	if !ok {
		return nil, unexpectedEnd("variable")
	}

	switch tok.Type {
	case TokenNumber:
		return &mdwast.NumberExpr{Value: tok.Number, Pos: tok.Pos()}, nil
	case TokenVariable:
		return &mdwast.VariableExpr{Name: tok.Value, Pos: tok.Pos()}, nil
	default:
		return nil, unexpectedToken(tok, "variable")
	}
}

// buildName reads the identifier following `to`
func (b *builder) buildName() (*mdwast.IdentifierExpr, error) {
	tok, ok := b.tokens.Next()
	if !ok {
		return nil, unexpectedEnd("identifier")
	}
	if tok.Type != TokenIdentifier {
		return nil, unexpectedToken(tok, "identifier")
	}
	return &mdwast.IdentifierExpr{Name: tok.Value, Pos: tok.Pos()}, nil
}

func (b *builder) buildRepeat(repeat Token) (*mdwast.RepeatExpr, error) {
	count, err := b.buildVar()
	if err != nil {
		return nil, err
	}

	open, ok := b.tokens.Next()
	if !ok {
		return nil, unexpectedEnd("'['")
	}
	if open.Type != TokenLeftBracket {
		return nil, unexpectedToken(open, "'['")
	}
	b.stack.Push(open)

	body, err := b.nested(open)
	if err != nil {
		return nil, err
	}

	return &mdwast.RepeatExpr{
		Count: count,
		Body:  body,
		Pos:   repeat.Pos(),
	}, nil
}

func (b *builder) buildTo(to Token) (*mdwast.ProcedureDef, error) {
	name, err := b.buildName()
	if err != nil {
		return nil, err
	}
	b.stack.Push(to)

	params := []*mdwast.VariableExpr{}
	for {
		tok, ok := b.tokens.Peek()
		if !ok || tok.Type != TokenVariable {
			break
		}
		b.tokens.Next()
		params = append(params, &mdwast.VariableExpr{Name: tok.Value, Pos: tok.Pos()})
	}

	body, err := b.nested(to)
	if err != nil {
		return nil, err
	}

	return &mdwast.ProcedureDef{
		Name:   name,
		Params: params,
		Body:   body,
		Pos:    to.Pos(),
	}, nil
}

func (b *builder) buildCall(name Token) *mdwast.CallExpr {
	args := []mdwast.Expr{}
	for {
		tok, ok := b.tokens.Peek()
		if !ok {
			break
		}
		if tok.Type == TokenNumber {
			args = append(args, &mdwast.NumberExpr{Value: tok.Number, Pos: tok.Pos()})
		} else if tok.Type == TokenVariable {
			args = append(args, &mdwast.VariableExpr{Name: tok.Value, Pos: tok.Pos()})
		} else {
			break
		}
		b.tokens.Next()
	}

	return &mdwast.CallExpr{
		Name: &mdwast.IdentifierExpr{Name: name.Value, Pos: name.Pos()},
		Args: args,
		Pos:  name.Pos(),
	}
}

// nested parses the body of the block opened by opener
func (b *builder) nested(opener Token) ([]mdwast.Expr, error) {
	b.depth++
	defer func() { b.depth-- }()

	if b.maxDepth > 0 && b.depth > b.maxDepth {
		return nil, nestingTooDeep(opener, b.maxDepth)
	}
	return b.build()
}

// popStack closes the innermost block, which must have been opened by opener
func (b *builder) popStack(opener TokenType, closer Token) error {
	top, ok := b.stack.Pop()
	if !ok || top.Type != opener {
		return unmatchedCloser(closer, quoteToken(opener))
	}
	return nil
}
