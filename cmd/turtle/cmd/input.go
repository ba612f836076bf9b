package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
	"github.com/msto63/turtle/foundation/turtle/examples"
	mdwparser "github.com/msto63/turtle/foundation/turtle/parser"
)

// source is a program text and where it came from
type source struct {
	Name string
	Path string // Set for files only
	Text string
}

// inputFlags select the program to process when no file is given
type inputFlags struct {
	expr   string
	sample string
}

func (f *inputFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.expr, "expr", "e", "", "Program text to process")
	cmd.Flags().StringVarP(&f.sample, "sample", "s", "", "Built-in sample to process (see 'turtle samples')")
}

// exclusive rejects combining --expr, --sample and file arguments
func (f *inputFlags) exclusive(args []string) error {
	given := 0
	for _, set := range []bool{f.expr != "", f.sample != "", len(args) > 0} {
		if set {
			given++
		}
	}
	if given > 1 {
		return mdwerror.New("only one of --expr, --sample or file arguments may be given").
			WithCode(mdwerror.CodeInvalidInput).
			WithOperation("cmd.readInput")
	}
	return nil
}

// read resolves the program from --expr, --sample, a file argument or
// stdin ("-"). Without any of them the default sample is used.
func (f *inputFlags) read(cmd *cobra.Command, args []string) (*source, error) {
	if err := f.exclusive(args); err != nil {
		return nil, err
	}

	switch {
	case f.expr != "":
		return &source{Name: "<expr>", Text: f.expr}, nil
	case f.sample != "":
		return readSample(f.sample)
	case len(args) > 0:
		return readFile(cmd.InOrStdin(), args[0])
	default:
		return readSample(examples.DefaultName)
	}
}

// readAll is read for commands that accept several file arguments
func (f *inputFlags) readAll(cmd *cobra.Command, args []string) ([]*source, error) {
	if len(args) <= 1 {
		src, err := f.read(cmd, args)
		if err != nil {
			return nil, err
		}
		return []*source{src}, nil
	}
	if err := f.exclusive(args); err != nil {
		return nil, err
	}

	sources := make([]*source, 0, len(args))
	for _, path := range args {
		src, err := readFile(cmd.InOrStdin(), path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	return sources, nil
}

func readSample(name string) (*source, error) {
	text, err := examples.Get(name)
	if err != nil {
		return nil, mdwerror.Wrap(err, "sample lookup failed").
			WithCode(mdwerror.CodeNotFound).
			WithOperation("cmd.readSample").
			WithDetail("sample", name)
	}
	return &source{Name: name, Text: text}, nil
}

func readFile(stdin io.Reader, path string) (*source, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, mdwerror.Wrap(err, "failed to read stdin").
				WithCode(mdwerror.CodeIOError).
				WithOperation("cmd.readFile")
		}
		return &source{Name: "<stdin>", Text: string(data)}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, mdwerror.Wrap(err, "failed to read program").
			WithCode(mdwerror.CodeIOError).
			WithOperation("cmd.readFile").
			WithDetail("path", path)
	}
	return &source{Name: filepath.Base(path), Path: path, Text: string(data)}, nil
}

// printDiagnostic reports a failed run in file:line:column form and, when
// the position is known, shows the offending line with a caret. An
// unclosed block also lists the openers still on the matching stack,
// outermost first.
func printDiagnostic(w io.Writer, src *source, err error, st styler) {
	syntaxErr, ok := mdwparser.AsSyntaxError(err)
	if !ok || syntaxErr.Line == 0 {
		fmt.Fprintf(w, "%s: %s %v\n", src.Name, st.failure("error:"), err)
		return
	}

	msg := syntaxErr.Message
	if syntaxErr.Expected != "" {
		msg += ": expected " + syntaxErr.Expected
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s\n", src.Name, syntaxErr.Line, syntaxErr.Column, st.failure("error:"), msg)

	lines := strings.Split(src.Text, "\n")
	if syntaxErr.Line <= len(lines) {
		line := strings.TrimRight(lines[syntaxErr.Line-1], "\r")
		fmt.Fprintf(w, "  %s\n", line)
		fmt.Fprintf(w, "  %s%s\n", caretPadding(line, syntaxErr.Column), st.caret("^"))
	}

	if len(syntaxErr.Residual) > 0 {
		open := make([]string, len(syntaxErr.Residual))
		for i, tok := range syntaxErr.Residual {
			open[i] = fmt.Sprintf("'%s' at %d:%d", tok.Value, tok.Line, tok.Column)
		}
		fmt.Fprintf(w, "  open blocks: %s\n", strings.Join(open, ", "))
	}
}

// caretPadding returns whitespace reaching column, keeping tabs so the
// caret lines up with the source line
func caretPadding(line string, column int) string {
	n := column - 1
	if n > len(line) {
		n = len(line)
	}
	var b strings.Builder
	for i := 0; i < n; i++ {
		if line[i] == '\t' {
			b.WriteByte('\t')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}
