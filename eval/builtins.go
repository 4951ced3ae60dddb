package eval

import (
	"fmt"
)

// =================
// Builtin functions
// =================

// --
// if
// --
func bi_if(ctx *Context, env *Environment, args []Value) (Value, error) {
	cond, ok := args[0].(Number)
	if !ok {
		return nil, newError("Only numbers may be passed to an if, but I was passed %s.", Inspect(args[0]))
	}
	branch := args[2]
	if cond != 0 {
		branch = args[1]
	}
	return ctx.Call(branch, []Value{}, env)
}

// ------
// equals
// ------
func bi_equals(ctx *Context, env *Environment, args []Value) (Value, error) {
	return boolean(areEqual(args[0], args[1])), nil
}

// areEqual compares numbers and strings by value. None equals None, so that
// lists can be tested for their end. Functions, natives and pairs are never
// equal to anything, themselves included.
func areEqual(a, b Value) bool {
	switch a := a.(type) {
	case Number:
		b, ok := b.(Number)
		return ok && a == b
	case String:
		b, ok := b.(String)
		return ok && a == b
	case None:
		_, ok := b.(None)
		return ok
	}
	return false
}

// ---
// set
// ---
func bi_set(ctx *Context, env *Environment, args []Value) (Value, error) {
	name, ok := args[0].(String)
	if !ok {
		return nil, newError("set() takes a string as its first argument, but I was passed %s.", Inspect(args[0]))
	}
	env.SetEnclosing(string(name), args[1])
	return args[1], nil
}

// -----
// print
// -----
func bi_print(ctx *Context, env *Environment, args []Value) (Value, error) {
	if _, err := fmt.Fprintln(env.Stdout(), Display(args[0])); err != nil {
		return nil, fmt.Errorf("print: %w", err)
	}
	return NONE, nil
}

// ----------------------
// pair / first / second
// ----------------------
func bi_pair(ctx *Context, env *Environment, args []Value) (Value, error) {
	return &Pair{First: args[0], Second: args[1]}, nil
}

func bi_first(ctx *Context, env *Environment, args []Value) (Value, error) {
	p, err := expectPair("first", args[0])
	if err != nil {
		return nil, err
	}
	return p.First, nil
}

func bi_second(ctx *Context, env *Environment, args []Value) (Value, error) {
	p, err := expectPair("second", args[0])
	if err != nil {
		return nil, err
	}
	return p.Second, nil
}

// =======
// Globals
// =======

var builtins = []*Native{
	NewNative("if", 3, bi_if),
	NewNative("equals", 2, bi_equals),
	NewNative("set", 2, bi_set),
	NewNative("print", 1, bi_print),
	NewNative("pair", 2, bi_pair),
	NewNative("first", 1, bi_first),
	NewNative("second", 1, bi_second),
}

// Install binds the library functions, and None, in env.
func Install(env *Environment) {
	env.SetLocal("None", NONE)
	for _, b := range builtins {
		env.SetLocal(b.Name, b)
	}
}

// ========
// Utilties
// ========

func boolean(b bool) Value {
	if b {
		return Number(1)
	}
	return Number(0)
}

func expectPair(fn string, v Value) (*Pair, error) {
	p, ok := v.(*Pair)
	if !ok {
		return nil, newError("%s() requires a pair, but I was passed %s.", fn, Inspect(v))
	}
	return p, nil
}
