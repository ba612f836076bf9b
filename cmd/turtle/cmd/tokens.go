package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwparser "github.com/msto63/turtle/foundation/turtle/parser"
)

// tokenRecord is the encoded form of a token
type tokenRecord struct {
	Type   string `json:"type" yaml:"type"`
	Value  string `json:"value" yaml:"value"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column" yaml:"column"`
	Offset int    `json:"offset" yaml:"offset"`
}

func newTokensCommand(a *app) *cobra.Command {
	var (
		input  inputFlags
		parser parserFlags
		output string
	)

	tokensCmd := &cobra.Command{
		Use:   "tokens [file|-]",
		Short: "Print the token stream of a program",
		Long: `Runs only the lexer and prints one token per line with its position.

Examples:
  turtle tokens --expr "forward 10"
  turtle tokens --strict prog.logo
  turtle tokens -o json prog.logo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := input.read(cmd, args)
			if err != nil {
				return err
			}
			if output != "text" && output != "json" && output != "yaml" {
				return mdwerror.Newf("invalid output format: %s (want one of text, json, yaml)", output).
					WithCode(mdwerror.CodeInvalidInput).
					WithOperation("cmd.tokens")
			}

			engine, err := a.newEngine(&parser)
			if err != nil {
				return err
			}

			tokens, err := engine.Tokenize(src.Text)
			if err != nil {
				printDiagnostic(cmd.ErrOrStderr(), src, err, a.styler())
				return reported(err)
			}
			return writeTokens(cmd, output, tokens)
		},
	}

	input.bind(tokensCmd)
	parser.bind(tokensCmd)
	tokensCmd.Flags().StringVarP(&output, "output", "o", "text", "Output format (text, json, yaml)")

	return tokensCmd
}

func writeTokens(cmd *cobra.Command, format string, tokens []mdwparser.Token) error {
	w := cmd.OutOrStdout()

	var err error
	if format == "text" {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, tok := range tokens {
			fmt.Fprintf(tw, "%s\t%s\n", tok.Pos(), tok)
		}
		err = tw.Flush()
	} else {
		records := make([]tokenRecord, len(tokens))
		for i, tok := range tokens {
			records[i] = tokenRecord{
				Type:   tok.Type.String(),
				Value:  tok.Value,
				Line:   tok.Line,
				Column: tok.Column,
				Offset: tok.Position,
			}
		}
		err = encodeValue(w, format, records)
	}

	if err != nil {
		return mdwerror.Wrap(err, "failed to write tokens").
			WithCode(mdwerror.CodeEncodeFailed).
			WithOperation("cmd.tokens")
	}
	return nil
}
