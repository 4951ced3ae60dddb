package compiler

import (
	"strings"

	"cell/parser"
)

// libraryCall compiles calls to the library functions that have a direct
// JavaScript rendering. ok is false when the call is an ordinary one.
func (c *compiler) libraryCall(name string, args []parser.Expr, level int) (out string, ok bool) {
	switch {
	case name == "equals" && len(args) == 2:
		return "(" + c.expr(args[0], level) + "===" + c.expr(args[1], level) + " ? 1 : 0)", true
	case name == "if" && len(args) == 3:
		return c.ifCall(args, level), true
	case name == "print" && len(args) == 1:
		return "console.log(" + c.expr(args[0], level) + ")", true
	case name == "set" && len(args) == 2:
		target, isString := args[0].(parser.String)
		if !isString {
			return "", false
		}
		return "(" + mangle(target.Value) + " = " + c.expr(args[1], level) + ")", true
	}
	return "", false
}

// ifCall renders if(cond, then, else) as an immediately invoked function
// that returns the result of calling the chosen branch.
func (c *compiler) ifCall(args []parser.Expr, level int) string {
	var buf strings.Builder
	inner := strings.Repeat(indentUnit, level+1)
	buf.WriteString("(function() {\n")
	buf.WriteString(inner)
	buf.WriteString("if( " + c.expr(args[0], level+1) + " !== 0 ) {\n")
	c.branch(&buf, args[1], level+2)
	buf.WriteString(inner)
	buf.WriteString("} else {\n")
	c.branch(&buf, args[2], level+2)
	buf.WriteString(inner)
	buf.WriteString("}\n")
	buf.WriteString(strings.Repeat(indentUnit, level))
	buf.WriteString("})()")
	return buf.String()
}

// branch inlines the body of a parameterless function literal; any other
// branch value is called.
func (c *compiler) branch(buf *strings.Builder, node parser.Expr, level int) {
	if fn, ok := node.(parser.Function); ok && len(fn.Params) == 0 {
		c.block(buf, fn.Body, level)
		return
	}
	buf.WriteString(strings.Repeat(indentUnit, level))
	buf.WriteString("return " + c.expr(node, level) + "();\n")
}
