package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwparser "github.com/msto63/turtle/foundation/turtle/parser"
)

type cliResult struct {
	stdout string
	stderr string
	err    error
}

func clearTurtleEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"TURTLE_CONFIG", "TURTLE_LOG_LEVEL", "TURTLE_LOG_FORMAT", "TURTLE_OUTPUT", "TURTLE_STRICT"} {
		t.Setenv(key, "")
	}
}

func runCLI(t *testing.T, stdin string, args ...string) cliResult {
	t.Helper()
	clearTurtleEnv(t)

	var stdout, stderr bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--no-color"}, args...))

	err := root.Execute()
	return cliResult{stdout: stdout.String(), stderr: stderr.String(), err: err}
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRootCommandTree(t *testing.T) {
	var names []string
	for _, sub := range rootCmd.Commands() {
		names = append(names, sub.Name())
	}
	for _, want := range []string{"parse", "tokens", "check", "samples", "version"} {
		assert.Contains(t, names, want)
	}
	for _, flag := range []string{"config", "verbose", "log-format", "no-color"} {
		assert.NotNil(t, rootCmd.PersistentFlags().Lookup(flag), flag)
	}

	fresh := NewRootCommand()
	assert.NotSame(t, rootCmd, fresh)
	require.NoError(t, fresh.PersistentFlags().Set("verbose", "true"))
	assert.Equal(t, "false", rootCmd.PersistentFlags().Lookup("verbose").Value.String())
}

func TestParseDefaultSample(t *testing.T) {
	res := runCLI(t, "", "parse")
	require.NoError(t, res.err)

	want := `[ProcedureDef(Identifier("rect"), [Variable(":arg1"), Variable(":arg2")], ` +
		`[Repeat(Number(2), [Forward(Variable(":arg1")), Right(Number(90)), Forward(Variable(":arg2")), Right(Number(90))])]), ` +
		`Call(Identifier("rect"), [Number(10), Number(20)])]` + "\n"
	assert.Equal(t, want, res.stdout)
}

func TestParseOutputFormats(t *testing.T) {
	t.Run("tree", func(t *testing.T) {
		res := runCLI(t, "", "parse", "--expr", "repeat 2 [ forward 10 ] left 5", "-o", "tree")
		require.NoError(t, res.err)
		assert.Equal(t, "Repeat Number(2)\n  Forward Number(10)\nLeft Number(5)\n", res.stdout)
	})

	t.Run("json", func(t *testing.T) {
		res := runCLI(t, "", "parse", "--expr", "forward 10", "-o", "json")
		require.NoError(t, res.err)

		var docs []map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "Forward", docs[0]["type"])
	})

	t.Run("json with stats", func(t *testing.T) {
		res := runCLI(t, "", "parse", "--sample", "square", "-o", "json", "--stats")
		require.NoError(t, res.err)

		var doc struct {
			Program []map[string]interface{} `json:"program"`
			Stats   struct {
				Procedures []string `json:"procedures"`
				MaxDepth   int      `json:"max_depth"`
				OpenBlocks *int     `json:"open_blocks"`
			} `json:"stats"`
		}
		require.NoError(t, json.Unmarshal([]byte(res.stdout), &doc))
		assert.Len(t, doc.Program, 2)
		assert.Equal(t, []string{"square"}, doc.Stats.Procedures)
		assert.Equal(t, 2, doc.Stats.MaxDepth)
		require.NotNil(t, doc.Stats.OpenBlocks)
		assert.Equal(t, 0, *doc.Stats.OpenBlocks)
	})

	t.Run("yaml", func(t *testing.T) {
		res := runCLI(t, "", "parse", "--expr", "back :x", "-o", "yaml")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "type: Back")
		assert.Contains(t, res.stdout, "type: Variable")
	})

	t.Run("text with stats", func(t *testing.T) {
		res := runCLI(t, "", "parse", "--sample", "square", "--stats")
		require.NoError(t, res.err)
		assert.Contains(t, res.stdout, "Statistics")
		assert.Contains(t, res.stdout, "procedures: square")
		assert.Contains(t, res.stdout, "kinds:      Call=1, ")
		assert.Contains(t, res.stdout, "  open blocks: 0\n")
	})

	t.Run("unknown format", func(t *testing.T) {
		res := runCLI(t, "", "parse", "-o", "xml")
		require.Error(t, res.err)
		assert.Equal(t, 2, ExitCode(res.err))
	})
}

func TestParseInputs(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "prog.logo", "forward 1\nright 2\n")

	res := runCLI(t, "", "parse", path)
	require.NoError(t, res.err)
	assert.Equal(t, "[Forward(Number(1)), Right(Number(2))]\n", res.stdout)

	res = runCLI(t, "left 3", "parse", "-")
	require.NoError(t, res.err)
	assert.Equal(t, "[Left(Number(3))]\n", res.stdout)

	res = runCLI(t, "", "parse", filepath.Join(dir, "missing.logo"))
	require.Error(t, res.err)
	assert.Equal(t, 3, ExitCode(res.err))
	assert.True(t, mdwerror.HasCode(res.err, mdwerror.CodeIOError))

	res = runCLI(t, "", "parse", "--sample", "nope")
	require.Error(t, res.err)
	assert.True(t, mdwerror.HasCode(res.err, mdwerror.CodeNotFound))

	res = runCLI(t, "", "parse", "--expr", "forward 1", "--sample", "rect")
	require.Error(t, res.err)
	assert.Equal(t, 2, ExitCode(res.err))
}

func TestParseSyntaxErrorDiagnostic(t *testing.T) {
	res := runCLI(t, "", "parse", "--expr", "repeat 4 forward 10")
	require.Error(t, res.err)

	assert.Equal(t, 1, ExitCode(res.err))
	assert.True(t, errors.Is(res.err, mdwparser.ErrUnexpectedToken))
	assert.Empty(t, res.stdout)
	assert.Equal(t, "<expr>:1:10: error: unexpected token FORWARD: expected '['\n"+
		"  repeat 4 forward 10\n"+
		"           ^\n", res.stderr, "the diagnostic is the only output at the default log level")

	var buf bytes.Buffer
	printError(&buf, res.err)
	assert.Empty(t, buf.String(), "reported errors are not printed twice")
}

func TestCheckSyntaxErrorOnlyDiagnostic(t *testing.T) {
	res := runCLI(t, "", "check", "-q", "-e", "to p repeat 2 [ forward 1")
	require.Error(t, res.err)
	assert.Equal(t, "<expr>:1:15: error: unclosed block opened by '[': expected closing token ']'\n"+
		"  to p repeat 2 [ forward 1\n"+
		"  "+strings.Repeat(" ", 14)+"^\n"+
		"  open blocks: 'to' at 1:1, '[' at 1:15\n", res.stderr)

	res = runCLI(t, "", "--verbose", "check", "-q", "-e", "repeat 4 forward 10")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "turtle.parse failed")
}

func TestParseUnclosedBlockDiagnostic(t *testing.T) {
	res := runCLI(t, "", "parse", "--expr", "to sq\n\tforward 1")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, mdwparser.ErrUnclosedBlock))
	assert.Contains(t, res.stderr, "<expr>:1:1: error: unclosed block opened by 'to': expected closing token 'end'")
	assert.Contains(t, res.stderr, "  open blocks: 'to' at 1:1\n")

	res = runCLI(t, "", "parse", "--stats", "-o", "yaml", "--expr", "forward 1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "\n  open_blocks: 0\n")
}

func TestParseParserFlags(t *testing.T) {
	res := runCLI(t, "", "parse", "--expr", "forward 10 ; right 90")
	require.NoError(t, res.err)
	assert.Equal(t, "[Forward(Number(10)), Right(Number(90))]\n", res.stdout)

	res = runCLI(t, "", "parse", "--strict", "--expr", "forward 10 ; right 90")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, mdwparser.ErrIllegalCharacter))
	assert.Contains(t, res.stderr, "<expr>:1:12: error: illegal character ';'")

	res = runCLI(t, "", "parse", "--max-depth", "1", "--expr", "repeat 1 [ repeat 1 [ ] ]")
	require.Error(t, res.err)
	assert.True(t, errors.Is(res.err, mdwparser.ErrNestingTooDeep))

	res = runCLI(t, "", "parse", "--max-input", "4", "--expr", "forward 1")
	require.Error(t, res.err)
	assert.True(t, mdwerror.HasCode(res.err, mdwerror.CodeInputTooLong))
	assert.Equal(t, 1, ExitCode(res.err))

	res = runCLI(t, "", "parse", "--strict", "--lenient")
	require.Error(t, res.err)
	assert.Equal(t, 2, ExitCode(res.err))
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()

	tomlPath := writeFile(t, dir, "turtle.toml", "[output]\nformat = \"tree\"\n\n[parser]\nstrict = true\n")
	res := runCLI(t, "", "--config", tomlPath, "parse", "--expr", "forward 1")
	require.NoError(t, res.err)
	assert.Equal(t, "Forward Number(1)\n", res.stdout)

	res = runCLI(t, "", "--config", tomlPath, "parse", "--expr", "forward 1 ;")
	assert.True(t, errors.Is(res.err, mdwparser.ErrIllegalCharacter))

	// Flags override the file.
	res = runCLI(t, "", "--config", tomlPath, "parse", "--lenient", "-o", "text", "--expr", "forward 1 ;")
	require.NoError(t, res.err)
	assert.Equal(t, "[Forward(Number(1))]\n", res.stdout)

	yamlPath := writeFile(t, dir, "turtle.yaml", "output:\n  format: json\n")
	res = runCLI(t, "", "--config", yamlPath, "parse", "--expr", "left 1")
	require.NoError(t, res.err)
	assert.True(t, strings.HasPrefix(res.stdout, "[\n"))

	badPath := writeFile(t, dir, "bad.toml", "[log]\nlevel = \"loud\"\n")
	res = runCLI(t, "", "--config", badPath, "parse")
	require.Error(t, res.err)
	assert.Equal(t, 2, ExitCode(res.err))
	assert.True(t, mdwerror.HasCode(res.err, mdwerror.CodeInvalidConfig))

	res = runCLI(t, "", "--config", filepath.Join(dir, "none.toml"), "parse")
	require.Error(t, res.err)
	assert.True(t, mdwerror.HasCode(res.err, mdwerror.CodeMissingConfig))
}

func TestEnvironmentOverrides(t *testing.T) {
	clearTurtleEnv(t)
	t.Setenv("TURTLE_OUTPUT", "tree")

	var stdout bytes.Buffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"parse", "--expr", "back 1"})
	require.NoError(t, root.Execute())
	assert.Equal(t, "Back Number(1)\n", stdout.String())
}

func TestVerboseLogging(t *testing.T) {
	res := runCLI(t, "", "--verbose", "--log-format", "json", "parse", "--expr", "forward 1")
	require.NoError(t, res.err)
	assert.Contains(t, res.stderr, `"message":"Configuration loaded"`)
	assert.Contains(t, res.stderr, `"run_id":"`)

	res = runCLI(t, "", "--log-format", "fancy", "parse")
	require.Error(t, res.err)
	assert.Equal(t, 2, ExitCode(res.err))
}

func TestTokensCommand(t *testing.T) {
	res := runCLI(t, "", "tokens", "--expr", "forward 10")
	require.NoError(t, res.err)
	assert.Equal(t, "1:1  FORWARD\n1:9  NUMBER(10)\n", res.stdout)

	res = runCLI(t, "", "tokens", "--expr", "to p :a", "-o", "json")
	require.NoError(t, res.err)
	var records []tokenRecord
	require.NoError(t, json.Unmarshal([]byte(res.stdout), &records))
	assert.Equal(t, []tokenRecord{
		{Type: "TO", Value: "to", Line: 1, Column: 1, Offset: 0},
		{Type: "IDENTIFIER", Value: "p", Line: 1, Column: 4, Offset: 3},
		{Type: "VARIABLE", Value: ":a", Line: 1, Column: 6, Offset: 5},
	}, records)

	// Unbalanced input still lexes.
	res = runCLI(t, "", "tokens", "--expr", "]]")
	require.NoError(t, res.err)

	res = runCLI(t, "", "tokens", "--strict", "--expr", "forward +1")
	require.Error(t, res.err)
	assert.Contains(t, res.stderr, "<expr>:1:9: error: illegal character '+'")

	res = runCLI(t, "", "tokens", "-o", "tree")
	require.Error(t, res.err)
	assert.Equal(t, 2, ExitCode(res.err))
}

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.logo", "repeat 4 [ forward 10 right 90 ]\n")
	bad := writeFile(t, dir, "bad.logo", "forward 10\n]\n")

	res := runCLI(t, "", "check", good)
	require.NoError(t, res.err)
	assert.Equal(t, "ok   good.logo\n", res.stdout)

	res = runCLI(t, "", "check", good, bad)
	require.Error(t, res.err)
	assert.Equal(t, 1, ExitCode(res.err))
	assert.Equal(t, "ok   good.logo\nFAIL bad.logo\n", res.stdout)
	assert.Contains(t, res.stderr, "bad.logo:2:1: error: unmatched closer ']': expected opening '[' before ']'")

	res = runCLI(t, "", "check", "-q", bad)
	require.Error(t, res.err)
	assert.Empty(t, res.stdout)

	res = runCLI(t, "", "check", "--sample", "spiral")
	require.NoError(t, res.err)
	assert.Equal(t, "ok   spiral\n", res.stdout)
	for _, extra := range [][]string{{"--sample", "spiral"}, {"-e", "forward 1"}} {
		args := append([]string{"check"}, extra...)
		res = runCLI(t, "", append(args, good, bad)...)
		require.Error(t, res.err, "%v with two files", extra)
		assert.Equal(t, mdwerror.CodeInvalidInput, mdwerror.GetCode(res.err))
		assert.Empty(t, res.stdout)
	}
}

func TestSamplesCommand(t *testing.T) {
	res := runCLI(t, "", "samples")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "Samples\n")
	assert.Contains(t, res.stdout, "  rect (default)\n")
	assert.Contains(t, res.stdout, "  spiral\n")

	res = runCLI(t, "", "samples", "square")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "to square :side")

	// The printed sample parses back to the same program.
	parsed := runCLI(t, res.stdout, "parse", "-")
	require.NoError(t, parsed.err)
	direct := runCLI(t, "", "parse", "--sample", "square")
	assert.Equal(t, direct.stdout, parsed.stdout)

	res = runCLI(t, "", "samples", "nope")
	require.Error(t, res.err)
	assert.Equal(t, 3, ExitCode(res.err))
}

func TestVersionCommand(t *testing.T) {
	res := runCLI(t, "", "version")
	require.NoError(t, res.err)
	assert.Contains(t, res.stdout, "turtle v"+Version)
	assert.Contains(t, res.stdout, "Go Version:")
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 2, ExitCode(errors.New("unknown flag: --bogus")))
	assert.Equal(t, 1, ExitCode(mdwerror.New("x").WithCode(mdwerror.CodeTurtleSyntax)))
	assert.Equal(t, 3, ExitCode(reported(mdwerror.New("x").WithCode(mdwerror.CodeIOError))))
	assert.Equal(t, 4, ExitCode(mdwerror.New("x").WithCode(mdwerror.CodeInternal)))

	res := runCLI(t, "", "parse", "--bogus")
	require.Error(t, res.err)
	assert.Equal(t, 2, ExitCode(res.err))
}

func TestCaretPadding(t *testing.T) {
	assert.Equal(t, "", caretPadding("forward", 1))
	assert.Equal(t, "\t  ", caretPadding("\tforward", 4))
	assert.Equal(t, "   ", caretPadding("abc", 10))
}

// syncBuffer is a bytes.Buffer safe for the watch goroutine and the test
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestParseWatch(t *testing.T) {
	clearTurtleEnv(t)
	dir := t.TempDir()
	prog := writeFile(t, dir, "prog.logo", "forward 1\n")
	cfg := writeFile(t, dir, "turtle.toml", "[watch]\ndebounce = \"20ms\"\n")

	var stdout, stderr syncBuffer
	root := NewRootCommand()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs([]string{"--no-color", "--config", cfg, "parse", "--watch", prog})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- root.ExecuteContext(ctx) }()

	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "[Forward(Number(1))]")
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.WriteFile(prog, []byte("back 2\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "[Back(Number(2))]")
	}, 5*time.Second, 10*time.Millisecond)

	// A broken program is reported and watching continues.
	require.NoError(t, os.WriteFile(prog, []byte("back 2 ]\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stderr.String(), "prog.logo:1:8: error: unmatched closer")
	}, 5*time.Second, 10*time.Millisecond)

	// Reloading the config switches the output format.
	require.NoError(t, os.WriteFile(cfg, []byte("[watch]\ndebounce = \"20ms\"\n\n[output]\nformat = \"tree\"\n"), 0o644))
	require.NoError(t, os.WriteFile(prog, []byte("left 3\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(stdout.String(), "Left Number(3)\n")
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancel")
	}
}

func TestParseWatchRequiresFile(t *testing.T) {
	res := runCLI(t, "", "parse", "--watch", "--expr", "forward 1")
	require.Error(t, res.err)
	assert.Equal(t, 2, ExitCode(res.err))
}
