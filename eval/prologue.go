package eval

import (
	"bufio"
	"embed"
	"fmt"
	"io/fs"

	"cell/lexer"
	"cell/parser"
)

// The prologue is the part of the standard library written in Cell.
//
//go:embed prologue/*.cell
var prologue embed.FS

// LoadPrologue evaluates every prologue file, in name order, in env. The
// library functions must already be installed there.
func (ctx *Context) LoadPrologue(env *Environment) error {
	files, err := fs.Glob(prologue, "prologue/*.cell")
	if err != nil {
		return err
	}
	for _, name := range files {
		f, err := prologue.Open(name)
		if err != nil {
			return err
		}
		stmts, err := parser.New(lexer.New(bufio.NewReader(f))).Parse()
		f.Close()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		if _, err := ctx.EvalList(stmts, env); err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
	}
	return nil
}

// NewGlobalEnvironment returns a root environment with the library and,
// unless disabled, the prologue loaded.
func (ctx *Context) NewGlobalEnvironment(opts ...EnvOption) (*Environment, error) {
	env := NewEnvironment(nil, opts...)
	Install(env)
	if !ctx.prologue {
		return env, nil
	}
	if err := ctx.LoadPrologue(env); err != nil {
		return nil, err
	}
	return env, nil
}
