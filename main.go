package main

// implements the cell command: run, compile and check Cell programs, or
// start a repl.

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cell/config"
	"cell/eval"
)

var VERSION string
var LOGO = `
              _ _  |
   ___ ___  | | | | cell language
  / __/ _ \ | | | | version: $VERSION
  \___\___| |_|_| |
`

func sliceVersion(v string) string {
	m := 10
	if len(v) < 10 {
		m = len(v)
	}
	return v[0:m]
}

var errRed = color.New(color.FgRed)

// reportError prints err to w; evaluation errors carry their call trace.
func reportError(w io.Writer, err error) {
	var evalErr *eval.Error
	if errors.As(err, &evalErr) {
		errRed.Fprintln(w, evalErr.String())
		return
	}
	errRed.Fprintf(w, "Error: %s\n", err)
}

type options struct {
	envFiles   []string
	logLevel   string
	maxDepth   int
	noPrologue bool

	cfg    *config.Config
	logger *slog.Logger
}

// load reads the configuration; flags given on the command line win.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.envFiles...)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("log-level") {
		if err := cfg.LogLevel.UnmarshalText([]byte(o.logLevel)); err != nil {
			return fmt.Errorf("--log-level: %w", err)
		}
	}
	if flags.Changed("max-depth") {
		if o.maxDepth < 0 {
			return fmt.Errorf("--max-depth: expected a non-negative integer, got %d", o.maxDepth)
		}
		cfg.MaxDepth = o.maxDepth
	}
	if flags.Changed("no-prologue") {
		cfg.Prologue = !o.noPrologue
	}
	o.cfg = cfg
	o.logger = cfg.Logger()
	slog.SetDefault(o.logger)
	return nil
}

func (o *options) context() *eval.Context {
	return eval.NewContext(o.cfg.EvalOptions(o.logger)...)
}

func newRootCmd() *cobra.Command {
	o := &options{}
	root := &cobra.Command{
		Use:           "cell",
		Short:         "Run, compile and check programs in the Cell language",
		Version:       VERSION,
		SilenceErrors: true,
		SilenceUsage:  true,
		Args:          cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return o.load(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return repl(cmd, o)
		},
	}
	pf := root.PersistentFlags()
	pf.StringSliceVar(&o.envFiles, "env-file", nil, "read settings from these files instead of .env")
	pf.StringVar(&o.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.IntVar(&o.maxDepth, "max-depth", eval.DefaultMaxDepth, "maximum call depth, 0 for unlimited")
	pf.BoolVar(&o.noPrologue, "no-prologue", false, "do not load the standard library written in Cell")

	root.AddCommand(
		newRunCmd(o),
		newCompileCmd(o),
		newCheckCmd(o),
		&cobra.Command{
			Use:   "repl",
			Short: "Start an interactive session",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return repl(cmd, o)
			},
		},
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		reportError(root.ErrOrStderr(), err)
		os.Exit(1)
	}
}

func logo() string {
	return strings.Replace(LOGO, "$VERSION", sliceVersion(VERSION), 1)
}
