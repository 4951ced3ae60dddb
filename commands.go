package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"cell/compiler"
	"cell/eval"
	"cell/lexer"
	"cell/parser"
	"cell/resolver"
)

var warnYellow = color.New(color.FgYellow)

// openParser returns a parser reading the named file; "-" is stdin.
func openParser(cmd *cobra.Command, name string) (*parser.Parser, func() error, error) {
	if name == "-" {
		return parser.New(lexer.New(bufio.NewReader(cmd.InOrStdin()))), func() error { return nil }, nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, err
	}
	return parser.New(lexer.New(bufio.NewReader(f))), f.Close, nil
}

func parseFile(cmd *cobra.Command, name string) ([]parser.Expr, error) {
	p, closer, err := openParser(cmd, name)
	if err != nil {
		return nil, err
	}
	defer closer()
	stmts, err := p.Parse()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return stmts, nil
}

// checkFiles resolves every file against the names bound in env and
// reports what it finds to w. Files see the names of earlier files.
func checkFiles(cmd *cobra.Command, env *eval.Environment, files []string, w io.Writer) (int, error) {
	problems := 0
	var globals []string
	if env != nil {
		globals = env.Names()
	}
	for _, name := range files {
		stmts, err := parseFile(cmd, name)
		if err != nil {
			return problems, err
		}
		r := resolver.New(name)
		r.AddGlobals(globals)
		for _, err := range r.Resolve(stmts) {
			warnYellow.Fprintln(w, err)
			problems++
		}
		for global, bound := range r.Globals() {
			if bound {
				globals = append(globals, global)
			}
		}
	}
	return problems, nil
}

func newRunCmd(o *options) *cobra.Command {
	var check bool
	cmd := &cobra.Command{
		Use:   "run FILE...",
		Short: "Evaluate Cell programs, in order, in one global environment",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := o.context()
			env, err := ctx.NewGlobalEnvironment(eval.WithStdout(cmd.OutOrStdout()))
			if err != nil {
				return err
			}
			if check {
				problems, err := checkFiles(cmd, env, args, cmd.ErrOrStderr())
				if err != nil {
					return err
				}
				if problems > 0 {
					return fmt.Errorf("%d unknown symbol(s), not running", problems)
				}
			}
			for _, name := range args {
				if err := runFile(cmd, ctx, env, name); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&check, "check", false, "look for unknown symbols before running")
	return cmd
}

// runFile evaluates each statement as soon as it is parsed.
func runFile(cmd *cobra.Command, ctx *eval.Context, env *eval.Environment, name string) error {
	p, closer, err := openParser(cmd, name)
	if err != nil {
		return err
	}
	defer closer()
	slog.Debug("running", slog.String("file", name))
	for {
		stmt, err := p.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := ctx.EvalExpr(stmt, env); err != nil {
			return err
		}
	}
}

func newCompileCmd(o *options) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "compile FILE",
		Short: "Translate a Cell program to JavaScript",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			stmts, err := parseFile(cmd, args[0])
			if err != nil {
				return err
			}
			js, err := compiler.CompileList(stmts)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if output == "" || output == "-" {
				_, err = io.WriteString(cmd.OutOrStdout(), js)
				return err
			}
			return os.WriteFile(output, []byte(js), 0o644)
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write JavaScript here instead of stdout")
	return cmd
}

func newCheckCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Report symbols that are used but never bound",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := o.context().NewGlobalEnvironment()
			if err != nil {
				return err
			}
			problems, err := checkFiles(cmd, env, args, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			if problems > 0 {
				return fmt.Errorf("%d unknown symbol(s)", problems)
			}
			return nil
		},
	}
}
