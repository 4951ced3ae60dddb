// Package compiler translates Cell programs into JavaScript source.
//
// The output follows the evaluator's semantics for everything the
// compiler can see without running the program: a block's value is its
// last statement, operators group to the right, and calls to the library
// functions if, equals, print and set are turned into inline JavaScript.
package compiler

import (
	"fmt"
	"strconv"
	"strings"

	"cell/parser"
)

const indentUnit = "    "

type Error struct {
	Message string
}

func (e *Error) Error() string { return e.Message }

type compiler struct{}

func (c *compiler) error(s string, args ...interface{}) {
	panic(&Error{Message: fmt.Sprintf(s, args...)})
}

func recoverError(err *error) {
	if rv := recover(); rv != nil {
		if e, ok := rv.(*Error); ok {
			*err = e
			return
		}
		panic(rv)
	}
}

// CompileString parses source and compiles it.
func CompileString(source string) (string, error) {
	stmts, err := parser.ParseString(source)
	if err != nil {
		return "", err
	}
	return CompileList(stmts)
}

// CompileList compiles top-level statements, each ending in ";\n".
func CompileList(stmts []parser.Expr) (out string, err error) {
	defer recoverError(&err)
	c := &compiler{}
	var buf strings.Builder
	for _, stmt := range stmts {
		buf.WriteString(c.statement(stmt, 0))
		buf.WriteString(";\n")
	}
	return buf.String(), nil
}

// Compile compiles a single expression.
func Compile(expr parser.Expr) (out string, err error) {
	defer recoverError(&err)
	c := &compiler{}
	return c.expr(expr, 0), nil
}

// ==========
// Statements
// ==========

// statement compiles a node in statement position, where an assignment
// can become a declaration.
func (c *compiler) statement(node parser.Expr, level int) string {
	if node, ok := node.(parser.Assignment); ok {
		return "var " + mangle(node.Target.Name) + " = " + c.expr(node.Value, level)
	}
	return c.expr(node, level)
}

// block writes the statements of a function body at the given level;
// the last one is returned.
func (c *compiler) block(buf *strings.Builder, stmts []parser.Expr, level int) {
	indent := strings.Repeat(indentUnit, level)
	for i, stmt := range stmts {
		buf.WriteString(indent)
		if i < len(stmts)-1 {
			buf.WriteString(c.statement(stmt, level))
			buf.WriteString(";\n")
			continue
		}
		if asgn, ok := stmt.(parser.Assignment); ok {
			buf.WriteString(c.statement(asgn, level))
			buf.WriteString(";\n")
			buf.WriteString(indent)
			buf.WriteString("return " + mangle(asgn.Target.Name) + ";\n")
			continue
		}
		buf.WriteString("return ")
		buf.WriteString(c.expr(stmt, level))
		buf.WriteString(";\n")
	}
}

// ===========
// Expressions
// ===========

func (c *compiler) expr(node parser.Expr, level int) string {
	switch node := node.(type) {
	case parser.Number:
		f, err := strconv.ParseFloat(node.Value, 64)
		if err != nil {
			c.error("Can't compile number '%s'.", node.Value)
		}
		// JavaScript reads a leading 0 as octal, so print the value
		// rather than the numeral.
		if f >= 1e21 {
			return strconv.FormatFloat(f, 'g', -1, 64)
		}
		return strconv.FormatFloat(f, 'f', -1, 64)
	case parser.String:
		return quote(node.Value)
	case parser.Symbol:
		return mangle(node.Name)
	case parser.Operation:
		return c.operand(node.Left, level) + " " + node.Op + " " + c.operand(node.Right, level)
	case parser.Assignment:
		return "(" + mangle(node.Target.Name) + " = " + c.expr(node.Value, level) + ")"
	case parser.Function:
		return c.function(node, level)
	case parser.Call:
		return c.call(node, level)
	}
	c.error("Unknown node type: %T", node)
	return ""
}

// operand parenthesises nested operations, since JavaScript would group
// `a - b - c` to the left and Cell groups it to the right.
func (c *compiler) operand(node parser.Expr, level int) string {
	if _, ok := node.(parser.Operation); ok {
		return "(" + c.expr(node, level) + ")"
	}
	return c.expr(node, level)
}

func (c *compiler) function(node parser.Function, level int) string {
	var buf strings.Builder
	params := []string{}
	for _, param := range node.Params {
		params = append(params, mangle(param.Name))
	}
	buf.WriteString("(function(")
	buf.WriteString(strings.Join(params, ", "))
	buf.WriteString(") {\n")
	c.block(&buf, node.Body, level+1)
	buf.WriteString(strings.Repeat(indentUnit, level))
	buf.WriteString("})")
	return buf.String()
}

func (c *compiler) call(node parser.Call, level int) string {
	if callee, ok := node.Callee.(parser.Symbol); ok {
		if out, ok := c.libraryCall(callee.Name, node.Args, level); ok {
			return out
		}
	}
	args := []string{}
	for _, arg := range node.Args {
		args = append(args, c.expr(arg, level))
	}
	return c.expr(node.Callee, level) + "(" + strings.Join(args, ", ") + ")"
}
