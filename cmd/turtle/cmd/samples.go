package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msto63/turtle/foundation/turtle/examples"
)

func newSamplesCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "samples [name]",
		Short: "List the built-in sample programs or print one",
		Long: `Without an argument lists the built-in samples. With a name prints
the program text, ready to be piped into 'turtle parse -'.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()

			if len(args) == 1 {
				src, err := readSample(args[0])
				if err != nil {
					return err
				}
				fmt.Fprint(w, src.Text)
				if !strings.HasSuffix(src.Text, "\n") {
					fmt.Fprintln(w)
				}
				return nil
			}

			st := a.styler()
			fmt.Fprintln(w, st.header("Samples"))
			for _, sample := range examples.All() {
				name := sample.Name
				if name == examples.DefaultName {
					name += " " + st.muted("(default)")
				}
				fmt.Fprintf(w, "  %s\n", name)
			}
			return nil
		},
	}
}
