package eval

import (
	"log/slog"
	"strings"

	"cell/parser"
)

// InteractiveContext evaluates a program one chunk at a time, keeping its
// bindings between chunks. The REPL feeds it one line per call.
type InteractiveContext struct {
	ctx    *Context
	env    *Environment
	logger *slog.Logger
}

func NewInteractiveContext(ctx *Context, opts ...EnvOption) (*InteractiveContext, error) {
	env, err := ctx.NewGlobalEnvironment(opts...)
	if err != nil {
		return nil, err
	}
	return &InteractiveContext{ctx: ctx, env: env, logger: ctx.logger}, nil
}

func (ic *InteractiveContext) Env() *Environment { return ic.env }

// Run evaluates every statement in input. A missing final ';' is added.
// It returns nil (and no error) when input holds no statements.
func (ic *InteractiveContext) Run(input string) (Value, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, nil
	}
	if !strings.HasSuffix(input, ";") {
		input += ";"
	}
	stmts, err := parser.ParseString(input)
	if err != nil {
		return nil, err
	}
	if len(stmts) == 0 {
		return nil, nil
	}
	ic.logger.Debug("evaluating", slog.Int("statements", len(stmts)))
	// a failed statement leaves the bindings made before it in place.
	return ic.ctx.EvalList(stmts, ic.env)
}
