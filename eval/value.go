package eval

import (
	"fmt"

	"cell/parser"
)

type ValueType uint8

const (
	_ = ValueType(iota)
	VT_NONE
	VT_NUMBER
	VT_STRING
	VT_FUNCTION
	VT_NATIVE
	VT_PAIR
)

var valueTypeNames = map[ValueType]string{
	VT_NONE:     "none",
	VT_NUMBER:   "number",
	VT_STRING:   "string",
	VT_FUNCTION: "function",
	VT_NATIVE:   "native",
	VT_PAIR:     "pair",
}

func (t ValueType) String() string {
	if name, ok := valueTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ValueType(%d)", uint8(t))
}

// Value is one of None, Number, String, *Function, *Native or *Pair.
type Value interface {
	Type() ValueType
}

type None struct{}
type Number float64
type String string

// Function is a closure: a function literal together with the environment
// it was evaluated in. Closure never changes once the value exists.
type Function struct {
	Params  []parser.Symbol
	Body    []parser.Expr
	Closure *Environment
}

func newFunction(node parser.Function, env *Environment) *Function {
	return &Function{
		Params:  node.Params,
		Body:    node.Body,
		Closure: env,
	}
}

// NativeFunc is the host side of a native function. env is the caller's
// environment, not a fresh frame.
type NativeFunc func(ctx *Context, env *Environment, args []Value) (Value, error)

// Native is a host function exposed to Cell programs. It requires exactly
// Arity arguments.
type Native struct {
	Name  string
	Arity int
	Fn    NativeFunc
}

func NewNative(name string, arity int, fn NativeFunc) *Native {
	return &Native{Name: name, Arity: arity, Fn: fn}
}

// Pair is built by the pair() library function; lists are chains of them.
type Pair struct {
	First  Value
	Second Value
}

func (v None) Type() ValueType      { return VT_NONE }
func (v Number) Type() ValueType    { return VT_NUMBER }
func (v String) Type() ValueType    { return VT_STRING }
func (v *Function) Type() ValueType { return VT_FUNCTION }
func (v *Native) Type() ValueType   { return VT_NATIVE }
func (v *Pair) Type() ValueType     { return VT_PAIR }

var NONE = Value(None{})
