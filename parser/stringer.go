package parser

import (
	"bytes"
	"strings"
)

// The String methods render nodes back into Cell source; error messages
// use them to show the expression that was being built.

func (node Number) String() string { return node.Value }
func (node String) String() string { return "'" + node.Value + "'" }
func (node Symbol) String() string { return node.Name }

func (node Operation) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.Left.String())
	buf.WriteString(" ")
	buf.WriteString(node.Op)
	buf.WriteString(" ")
	buf.WriteString(node.Right.String())
	buf.WriteString(")")
	return buf.String()
}

func (node Assignment) String() string {
	var buf bytes.Buffer
	buf.WriteString("(")
	buf.WriteString(node.Target.String())
	buf.WriteString(" = ")
	buf.WriteString(node.Value.String())
	buf.WriteString(")")
	return buf.String()
}

func (node Call) String() string {
	args := []string{}
	for _, arg := range node.Args {
		args = append(args, arg.String())
	}
	return node.Callee.String() + "(" + strings.Join(args, ", ") + ")"
}

func (node Function) String() string {
	var buf bytes.Buffer
	buf.WriteString("{")
	if len(node.Params) > 0 {
		params := []string{}
		for _, param := range node.Params {
			params = append(params, param.Name)
		}
		buf.WriteString(":(")
		buf.WriteString(strings.Join(params, ", "))
		buf.WriteString(")")
	}
	for i, stmt := range node.Body {
		if i > 0 || len(node.Params) > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(stmt.String())
		buf.WriteString(";")
	}
	buf.WriteString("}")
	return buf.String()
}
