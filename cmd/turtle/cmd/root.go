package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/msto63/turtle/foundation/core/config"
	mdwerror "github.com/msto63/turtle/foundation/core/error"
	mdwlog "github.com/msto63/turtle/foundation/core/log"
	"github.com/msto63/turtle/foundation/turtle"
)

// app holds the global flags and the state prepared before every subcommand
type app struct {
	cfgFile   string
	verbose   bool
	logFormat string
	noColor   bool

	cfg    *config.Config
	logger *mdwlog.Logger
}

// rootCmd is the command tree Execute runs
var rootCmd *cobra.Command

func init() {
	rootCmd = NewRootCommand()
}

// NewRootCommand builds a fresh turtle command tree. Flag state lives in
// the tree, so every call starts from the defaults.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "turtle",
		Short: "Turtle graphics language parser",
		Long: `turtle lexes and parses programs written in a small turtle graphics
language and prints the resulting expression tree.

Language:
  forward|back|right|left <n|:var>   move or turn the turtle
  repeat <n|:var> [ ... ]            repeat a block
  to <name> :param ... end           define a procedure
  <name> <n|:var> ...                call a procedure

Without an input argument the built-in "rect" sample is parsed.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "Config file (default: $TURTLE_CONFIG or ./configs/turtle.toml)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "Verbose output (debug logging)")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "Log format (text, json, console)")
	root.PersistentFlags().BoolVar(&a.noColor, "no-color", false, "Disable colored output")

	root.AddCommand(
		newParseCommand(a),
		newTokensCommand(a),
		newCheckCommand(a),
		newSamplesCommand(a),
		newVersionCommand(),
	)
	return root
}

// Execute runs the command line and prints any error not yet reported
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

// ExitCode maps an error to the process exit status. Errors without a
// code come from flag or argument parsing.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var mdwErr *mdwerror.Error
	if !errors.As(err, &mdwErr) {
		return 2
	}
	return mdwErr.Code().ExitCode()
}

// setup loads the configuration, applies the global flags and builds the
// logger
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := a.loadConfig()
	if err != nil {
		return err
	}

	logger, err := cfg.NewLogger(cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	mdwlog.SetDefault(logger)

	logger.Debug("Configuration loaded", mdwlog.Fields{
		"config":      a.cfgFile,
		"environment": cfg.General.Environment,
		"strict":      cfg.Parser.Strict,
	})
	return nil
}

func (a *app) loadConfig() (*config.Config, error) {
	var cfg *config.Config
	var err error

	if a.cfgFile != "" {
		cfg, err = config.Load(a.cfgFile)
		if err == nil {
			err = cfg.ApplyEnv(os.LookupEnv)
		}
	} else {
		cfg, err = config.LoadFromEnv()
	}
	if err != nil {
		return nil, err
	}

	a.applyFlags(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyFlags lets command line flags override the configuration
func (a *app) applyFlags(cfg *config.Config) {
	if a.verbose {
		cfg.Log.Level = mdwlog.LevelDebug.String()
	}
	if a.logFormat != "" {
		cfg.Log.Format = a.logFormat
	}
	if a.noColor {
		cfg.Output.NoColor = true
	}
}

func (a *app) styler() styler {
	return styler{plain: a.cfg == nil || a.cfg.Output.NoColor}
}

// newEngine builds an engine from the configuration and parser flags
func (a *app) newEngine(pf *parserFlags) (*turtle.Engine, error) {
	opts := turtle.Options{
		Logger:         a.logger,
		Strict:         a.cfg.Parser.Strict,
		MaxInputLength: a.cfg.Parser.MaxInputLength,
		MaxDepth:       a.cfg.Parser.MaxDepth,
	}
	if pf != nil {
		pf.apply(&opts)
	}
	return turtle.New(opts)
}

// parserFlags are the per-command overrides of the parser section
type parserFlags struct {
	strict         bool
	lenient        bool
	maxInputLength int
	maxDepth       int
	cmd            *cobra.Command
}

func (pf *parserFlags) bind(cmd *cobra.Command) {
	pf.cmd = cmd
	cmd.Flags().BoolVar(&pf.strict, "strict", false, "Reject characters that match no token")
	cmd.Flags().BoolVar(&pf.lenient, "lenient", false, "Skip characters that match no token")
	cmd.Flags().IntVar(&pf.maxInputLength, "max-input", 0, "Maximum input length in bytes (negative: unlimited)")
	cmd.Flags().IntVar(&pf.maxDepth, "max-depth", 0, "Maximum block nesting (negative: unlimited)")
	cmd.MarkFlagsMutuallyExclusive("strict", "lenient")
}

func (pf *parserFlags) apply(opts *turtle.Options) {
	flags := pf.cmd.Flags()
	if flags.Changed("strict") {
		opts.Strict = pf.strict
	}
	if flags.Changed("lenient") {
		opts.Strict = !pf.lenient
	}
	if flags.Changed("max-input") {
		opts.MaxInputLength = pf.maxInputLength
	}
	if flags.Changed("max-depth") {
		opts.MaxDepth = pf.maxDepth
	}
}

// reportedError marks an error whose diagnostic has already been printed
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	return &reportedError{err: err}
}

func printError(w io.Writer, err error) {
	var rep *reportedError
	if errors.As(err, &rep) {
		return
	}
	fmt.Fprintf(w, "Error: %v\n", err)
}
