package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/turtle/foundation/core/config"
	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwlog "github.com/msto63/turtle/foundation/core/log"
	"github.com/msto63/turtle/foundation/turtle"
)

type parseOptions struct {
	input  inputFlags
	parser parserFlags
	output string
	stats  bool
	watch  bool
}

func newParseCommand(a *app) *cobra.Command {
	opts := &parseOptions{}

	parseCmd := &cobra.Command{
		Use:   "parse [file|-]",
		Short: "Parse a program and print its expressions",
		Long: `Parses a turtle program and prints the top-level expressions.

Output formats:
  text  - compact form, e.g. [Forward(Number(10))]
  tree  - indented tree
  json  - tagged JSON documents
  yaml  - tagged YAML documents

Examples:
  turtle parse
  turtle parse square.logo
  turtle parse --expr "repeat 4 [ forward 10 right 90 ]" -o tree
  turtle parse --sample polygon --stats
  cat prog.logo | turtle parse -
  turtle parse --watch prog.logo`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runParse(cmd, args, opts)
		},
	}

	opts.input.bind(parseCmd)
	opts.parser.bind(parseCmd)
	parseCmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output format (text, tree, json, yaml)")
	parseCmd.Flags().BoolVar(&opts.stats, "stats", false, "Print program statistics")
	parseCmd.Flags().BoolVarP(&opts.watch, "watch", "w", false, "Re-parse the file whenever it changes")

	return parseCmd
}

func (a *app) runParse(cmd *cobra.Command, args []string, opts *parseOptions) error {
	src, err := opts.input.read(cmd, args)
	if err != nil {
		return err
	}

	if opts.watch {
		if src.Path == "" {
			return mdwerror.New("--watch requires a file argument").
				WithCode(mdwerror.CodeInvalidInput).
				WithOperation("cmd.parse")
		}
		return a.watchParse(cmd, src, opts)
	}

	engine, err := a.newEngine(&opts.parser)
	if err != nil {
		return err
	}
	return a.parseOnce(cmd, engine, src, opts)
}

func (a *app) outputFormat(opts *parseOptions) (string, error) {
	format := opts.output
	if format == "" {
		format = a.cfg.Output.Format
	}
	return format, checkOutputFormat(format)
}

// parseOnce parses src and renders the result. A rejected program is
// reported on stderr.
func (a *app) parseOnce(cmd *cobra.Command, engine *turtle.Engine, src *source, opts *parseOptions) error {
	format, err := a.outputFormat(opts)
	if err != nil {
		return err
	}

	result, err := engine.Parse(cmd.Context(), src.Text)
	if err != nil {
		printDiagnostic(cmd.ErrOrStderr(), src, err, a.styler())
		return reported(err)
	}

	a.logger.WithRunID(result.RunID).Debug("Program parsed", mdwlog.Fields{
		"source":      src.Name,
		"expressions": result.Program.Len(),
		"tokens":      len(result.Tokens),
	})
	return renderProgram(cmd.OutOrStdout(), format, result.Program, opts.stats, a.styler())
}

// watchParse parses the file once and again after every change until the
// command is interrupted. A change to the config file reloads it.
func (a *app) watchParse(cmd *cobra.Command, src *source, opts *parseOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	cmd.SetContext(ctx)

	watcher, err := config.NewWatcher(a.cfg.Watch.Debounce.Duration, a.logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	programPath, err := filepath.Abs(src.Path)
	if err != nil {
		return err
	}
	if err := watcher.Add(programPath); err != nil {
		return err
	}

	var configPath string
	if a.cfgFile != "" {
		if configPath, err = filepath.Abs(a.cfgFile); err != nil {
			return err
		}
		if err := watcher.Add(configPath); err != nil {
			return err
		}
	}

	engine, err := a.newEngine(&opts.parser)
	if err != nil {
		return err
	}

	run := func() {
		a.printWatchHeader(cmd, src)
		if err := a.parseOnce(cmd, engine, src, opts); err != nil {
			printError(cmd.ErrOrStderr(), err)
		}
	}
	run()

	a.logger.Info("Watching for changes", mdwlog.Fields{"files": watcher.Files()})

	return watcher.Run(ctx, func(path string) {
		if path == configPath {
			if err := a.reloadConfig(); err != nil {
				a.logger.LogError(err)
				return
			}
			if engine, err = a.newEngine(&opts.parser); err != nil {
				a.logger.LogError(err)
				return
			}
		} else {
			data, err := os.ReadFile(src.Path)
			if err != nil {
				a.logger.WarnWithErr("Failed to re-read program", err)
				return
			}
			src.Text = string(data)
		}
		run()
	})
}

// reloadConfig re-reads the config file, keeping the current configuration
// when the new one is invalid
func (a *app) reloadConfig() error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger.Info("Configuration reloaded", mdwlog.Fields{"path": a.cfgFile})
	return nil
}

func (a *app) printWatchHeader(cmd *cobra.Command, src *source) {
	header := fmt.Sprintf("# %s @ %s", src.Name, time.Now().Format("15:04:05"))
	fmt.Fprintln(cmd.ErrOrStderr(), a.styler().muted(header))
}
