package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newCheckCommand(a *app) *cobra.Command {
	var (
		input  inputFlags
		parser parserFlags
		quiet  bool
	)

	checkCmd := &cobra.Command{
		Use:   "check [file...]",
		Short: "Check programs for syntax errors",
		Long: `Parses each program and reports whether it is well formed.
The exit status is 1 if any program is rejected.

Examples:
  turtle check *.logo
  turtle check --sample spiral
  turtle check --strict -q prog.logo`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sources, err := input.readAll(cmd, args)
			if err != nil {
				return err
			}

			engine, err := a.newEngine(&parser)
			if err != nil {
				return err
			}

			st := a.styler()
			var firstErr error
			for _, src := range sources {
				err := engine.Validate(cmd.Context(), src.Text)
				if err != nil {
					printDiagnostic(cmd.ErrOrStderr(), src, err, st)
					if !quiet {
						fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", st.failure("FAIL"), src.Name)
					}
					if firstErr == nil {
						firstErr = err
					}
					continue
				}
				if !quiet {
					fmt.Fprintf(cmd.OutOrStdout(), "%s   %s\n", st.success("ok"), src.Name)
				}
			}

			if firstErr != nil {
				return reported(firstErr)
			}
			return nil
		},
	}

	input.bind(checkCmd)
	parser.bind(checkCmd)
	checkCmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "Only print diagnostics")

	return checkCmd
}
