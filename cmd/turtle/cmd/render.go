package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/msto63/turtle/foundation/core/config"
	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwast "github.com/msto63/turtle/foundation/turtle/ast"
)

// checkOutputFormat rejects formats the renderers do not know
func checkOutputFormat(format string) error {
	for _, f := range config.OutputFormats {
		if f == format {
			return nil
		}
	}
	return mdwerror.Newf("invalid output format: %s (want one of %s)",
		format, strings.Join(config.OutputFormats, ", ")).
		WithCode(mdwerror.CodeInvalidInput).
		WithOperation("cmd.render")
}

// renderProgram writes the parsed program in the given output format,
// followed by its statistics when stats is set
func renderProgram(w io.Writer, format string, program *mdwast.Program, stats bool, st styler) error {
	var err error
	switch format {
	case "json", "yaml":
		err = encodeProgram(w, format, program, stats)
	case "tree":
		err = mdwast.Fprint(w, program.Body)
		if err == nil && stats {
			err = writeStats(w, collectStats(program), st)
		}
	default:
		_, err = fmt.Fprintln(w, program.String())
		if err == nil && stats {
			err = writeStats(w, collectStats(program), st)
		}
	}

	if err != nil {
		return mdwerror.Wrap(err, "failed to write output").
			WithCode(mdwerror.CodeEncodeFailed).
			WithOperation("cmd.render").
			WithDetail("format", format)
	}
	return nil
}

// encodeProgram writes the tagged document form. With stats the program
// and its statistics are wrapped in one object.
func encodeProgram(w io.Writer, format string, program *mdwast.Program, stats bool) error {
	if !stats {
		if format == "yaml" {
			return mdwast.EncodeYAML(w, program.Body)
		}
		return mdwast.EncodeJSON(w, program.Body)
	}

	doc := struct {
		Program []mdwast.Document `json:"program" yaml:"program"`
		Stats   *programStats     `json:"stats" yaml:"stats"`
	}{
		Program: mdwast.ToDocuments(program.Body),
		Stats:   collectStats(program),
	}
	return encodeValue(w, format, doc)
}

// encodeValue writes v as indented JSON or YAML
func encodeValue(w io.Writer, format string, v interface{}) error {
	if format == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// programStats extends the AST statistics with the number of blocks left
// on the matching stack, which is zero for every accepted program
type programStats struct {
	mdwast.Stats `yaml:",inline"`
	OpenBlocks   int `json:"open_blocks" yaml:"open_blocks"`
}

func collectStats(program *mdwast.Program) *programStats {
	return &programStats{Stats: *mdwast.CollectStats(program.Body)}
}

func writeStats(w io.Writer, stats *programStats, st styler) error {
	kinds := make([]string, 0, len(stats.Kinds))
	for kind, n := range stats.Kinds {
		kinds = append(kinds, fmt.Sprintf("%s=%d", kind, n))
	}
	sort.Strings(kinds)

	lines := []string{
		"",
		st.header("Statistics"),
		fmt.Sprintf("  nodes:      %d", stats.Nodes),
		fmt.Sprintf("  max depth:  %d", stats.MaxDepth),
		fmt.Sprintf("  procedures: %s", listOrNone(stats.Procedures)),
		fmt.Sprintf("  calls:      %s", listOrNone(stats.Calls)),
		fmt.Sprintf("  kinds:      %s", listOrNone(kinds)),
		fmt.Sprintf("  open blocks: %d", stats.OpenBlocks),
	}
	_, err := io.WriteString(w, strings.Join(lines, "\n")+"\n")
	return err
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
