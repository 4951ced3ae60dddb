package eval

// Implements the tree-walking evaluator.

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"cell/parser"
)

// DefaultMaxDepth bounds how many Cell function calls may be active at
// once. The prologue's for() spends two calls per element (itself and the
// branch if() runs), so it can visit lists of about half this length.
const DefaultMaxDepth = 100000

// Context holds evaluator settings and the current call depth. A Context
// is not safe for concurrent use.
type Context struct {
	maxDepth int // 0 means unlimited
	depth    int
	logger   *slog.Logger
	prologue bool
}

type Option func(*Context)

// WithMaxDepth sets the call depth limit; 0 disables it.
func WithMaxDepth(n int) Option {
	return func(ctx *Context) { ctx.maxDepth = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(ctx *Context) { ctx.logger = logger }
}

// WithPrologue controls whether NewGlobalEnvironment loads the prologue.
func WithPrologue(load bool) Option {
	return func(ctx *Context) { ctx.prologue = load }
}

func NewContext(opts ...Option) *Context {
	ctx := &Context{
		maxDepth: DefaultMaxDepth,
		logger:   slog.Default(),
		prologue: true,
	}
	for _, opt := range opts {
		opt(ctx)
	}
	return ctx
}

// EvalExpr evaluates node in env with a default Context.
func EvalExpr(node parser.Expr, env *Environment) (Value, error) {
	return NewContext().EvalExpr(node, env)
}

// EvalList evaluates stmts in env with a default Context.
func EvalList(stmts []parser.Expr, env *Environment) (Value, error) {
	return NewContext().EvalList(stmts, env)
}

// EvalList evaluates stmts in order, all in env, and returns the value of
// the last one, or None if there are none.
func (ctx *Context) EvalList(stmts []parser.Expr, env *Environment) (Value, error) {
	rv := NONE
	for _, stmt := range stmts {
		v, err := ctx.EvalExpr(stmt, env)
		if err != nil {
			return nil, err
		}
		rv = v
	}
	return rv, nil
}

func (ctx *Context) EvalExpr(node parser.Expr, env *Environment) (Value, error) {
	switch node := node.(type) {
	case parser.Number:
		return parseNumber(node.Value)
	case parser.String:
		return String(node.Value), nil
	case parser.Symbol:
		return env.Get(node.Name)
	case parser.Operation:
		return ctx.evalOperation(node, env)
	case parser.Assignment:
		value, err := ctx.EvalExpr(node.Value, env)
		if err != nil {
			return nil, err
		}
		env.SetLocal(node.Target.Name, value)
		return value, nil
	case parser.Function:
		return newFunction(node, env), nil
	case parser.Call:
		return ctx.evalCall(node, env)
	}
	return nil, newError("Unknown node type: %T", node)
}

func parseNumber(text string) (Value, error) {
	f, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return nil, newError("Not a number: '%s'.", text)
	}
	return Number(f), nil
}

func (ctx *Context) evalOperation(node parser.Operation, env *Environment) (Value, error) {
	left, err := ctx.evalNumber(node.Left, env)
	if err != nil {
		return nil, err
	}
	right, err := ctx.evalNumber(node.Right, env)
	if err != nil {
		return nil, err
	}
	switch node.Op {
	case "+":
		return left + right, nil
	case "-":
		return left - right, nil
	case "*":
		return left * right, nil
	case "/":
		return left / right, nil
	}
	return nil, newError("Unknown operator '%s'.", node.Op)
}

func (ctx *Context) evalNumber(node parser.Expr, env *Environment) (Number, error) {
	v, err := ctx.EvalExpr(node, env)
	if err != nil {
		return 0, err
	}
	n, ok := v.(Number)
	if !ok {
		return 0, newError("Arithmetic is only allowed on numbers, but I was passed %s.", Inspect(v))
	}
	return n, nil
}

func (ctx *Context) evalCall(node parser.Call, env *Environment) (Value, error) {
	callee, err := ctx.EvalExpr(node.Callee, env)
	if err != nil {
		return nil, err
	}
	args := make([]Value, len(node.Args))
	for i, argNode := range node.Args {
		arg, err := ctx.EvalExpr(argNode, env)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	rv, err := ctx.Call(callee, args, env)
	if e, ok := err.(*Error); ok {
		e.addTrace(node)
	}
	return rv, err
}

// Call invokes a function value with already evaluated arguments. env is
// the caller's environment; natives receive it, closures ignore it and run
// in a new child of the environment they captured.
func (ctx *Context) Call(callee Value, args []Value, env *Environment) (Value, error) {
	switch fn := callee.(type) {
	case *Function:
		if len(args) != len(fn.Params) {
			return nil, arityError(len(args), len(fn.Params))
		}
		if ctx.maxDepth > 0 && ctx.depth >= ctx.maxDepth {
			return nil, newError("Maximum call depth of %d exceeded.", ctx.maxDepth)
		}
		ctx.depth++
		defer func() { ctx.depth-- }()
		ctx.debug("call", fn, args)
		frame := NewEnvironment(fn.Closure)
		for i, param := range fn.Params {
			frame.SetLocal(param.Name, args[i])
		}
		return ctx.EvalList(fn.Body, frame)
	case *Native:
		if len(args) != fn.Arity {
			return nil, arityError(len(args), fn.Arity)
		}
		ctx.debug("native", fn, args)
		return fn.Fn(ctx, env, args)
	}
	return nil, newError("Not a function: %s.", Inspect(callee))
}

func (ctx *Context) debug(msg string, fn Value, args []Value) {
	if !ctx.logger.Enabled(context.Background(), slog.LevelDebug) {
		return
	}
	rendered := make([]string, len(args))
	for i, arg := range args {
		rendered[i] = Inspect(arg)
	}
	ctx.logger.Debug(msg,
		slog.String("fn", Inspect(fn)),
		slog.String("args", fmt.Sprint(rendered)),
		slog.Int("depth", ctx.depth),
	)
}
