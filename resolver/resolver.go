// Package resolver implements a static check that every symbol a program
// refers to could be bound when it is looked up. Cell binds names at run
// time, so a scope counts as defining every name assigned anywhere in its
// own body, and set("name", ...) with a literal name may define it at the
// top level. What remains can only fail with "Unknown symbol".
package resolver

import (
	"fmt"
	"strings"

	"cell/parser"
)

type ResolverError struct {
	Filename string
	Context  []string // enclosing named functions, outermost first
	Name     string
}

func (re ResolverError) Error() string { return re.String() }
func (re ResolverError) String() string {
	var buf strings.Builder
	if re.Filename != "" {
		buf.WriteString(re.Filename)
		buf.WriteString(": ")
	}
	if len(re.Context) > 0 {
		buf.WriteString("in ")
		buf.WriteString(strings.Join(re.Context, "."))
		buf.WriteString(": ")
	}
	buf.WriteString(fmt.Sprintf("Unknown symbol '%s'.", re.Name))
	return buf.String()
}

type Scope map[string]bool

type Resolver struct {
	filename string
	// each scope is the set of names bound in one function body; the
	// first one is the top level.
	scopes   []Scope
	names    []string // function names, parallel to scopes[1:]
	reported map[string]bool
	Errors   []error
}

func New(filename string) *Resolver {
	r := &Resolver{
		filename: filename,
		scopes:   []Scope{},
		reported: map[string]bool{},
		Errors:   []error{},
	}
	r.push("") // the global scope.
	return r
}

func (r *Resolver) AddGlobals(globals []string) {
	for _, x := range globals {
		r.scopes[0][x] = true
	}
}

// Globals is the set of names bound at the top level so far.
func (r *Resolver) Globals() Scope { return r.scopes[0] }

func (r *Resolver) curr() Scope { return r.scopes[len(r.scopes)-1] }
func (r *Resolver) push(name string) {
	r.scopes = append(r.scopes, Scope{})
	if len(r.scopes) > 1 {
		r.names = append(r.names, name)
	}
}
func (r *Resolver) pop() {
	r.scopes = r.scopes[:len(r.scopes)-1]
	if len(r.names) > 0 {
		r.names = r.names[:len(r.names)-1]
	}
}

func (r *Resolver) defined(name string) bool {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if r.scopes[i][name] {
			return true
		}
	}
	return false
}

func (r *Resolver) err(name string) {
	context := append([]string{}, r.names...)
	key := strings.Join(context, ".") + "/" + name
	if r.reported[key] {
		return
	}
	r.reported[key] = true
	r.Errors = append(r.Errors, ResolverError{
		Filename: r.filename,
		Context:  context,
		Name:     name,
	})
}

// Resolve checks top-level statements and returns the errors it found.
// It can be called repeatedly, e.g. once per REPL line; names bound by
// earlier calls stay bound.
func (r *Resolver) Resolve(stmts []parser.Expr) []error {
	start := len(r.Errors)
	r.reported = map[string]bool{}
	for _, stmt := range stmts {
		r.collectSets(stmt)
	}
	r.declare(stmts)
	for _, stmt := range stmts {
		r.resolve(stmt, "")
	}
	return r.Errors[start:]
}

// declare binds, in the current scope, every name assigned by stmts
// outside nested function bodies.
func (r *Resolver) declare(stmts []parser.Expr) {
	var visit func(node parser.Expr)
	visit = func(node parser.Expr) {
		switch node := node.(type) {
		case parser.Assignment:
			r.curr()[node.Target.Name] = true
			visit(node.Value)
		case parser.Operation:
			visit(node.Left)
			visit(node.Right)
		case parser.Call:
			visit(node.Callee)
			for _, arg := range node.Args {
				visit(arg)
			}
		}
	}
	for _, stmt := range stmts {
		visit(stmt)
	}
}

// collectSets binds at the top level every literal name passed to set().
func (r *Resolver) collectSets(node parser.Expr) {
	switch node := node.(type) {
	case parser.Assignment:
		r.collectSets(node.Value)
	case parser.Operation:
		r.collectSets(node.Left)
		r.collectSets(node.Right)
	case parser.Function:
		for _, stmt := range node.Body {
			r.collectSets(stmt)
		}
	case parser.Call:
		if callee, ok := node.Callee.(parser.Symbol); ok && callee.Name == "set" && len(node.Args) == 2 {
			if name, ok := node.Args[0].(parser.String); ok {
				r.scopes[0][name.Value] = true
			}
		}
		r.collectSets(node.Callee)
		for _, arg := range node.Args {
			r.collectSets(arg)
		}
	}
}

// resolve checks node; name is what the enclosing assignment calls it,
// used to label errors inside function literals.
func (r *Resolver) resolve(node parser.Expr, name string) {
	switch node := node.(type) {
	case parser.Symbol:
		if !r.defined(node.Name) {
			r.err(node.Name)
		}
	case parser.Operation:
		r.resolve(node.Left, "")
		r.resolve(node.Right, "")
	case parser.Assignment:
		r.resolve(node.Value, node.Target.Name)
	case parser.Call:
		r.resolve(node.Callee, "")
		for _, arg := range node.Args {
			r.resolve(arg, "")
		}
	case parser.Function:
		if name == "" {
			name = "<function>"
		}
		r.push(name)
		for _, param := range node.Params {
			r.curr()[param.Name] = true
		}
		r.declare(node.Body)
		for _, stmt := range node.Body {
			r.resolve(stmt, "")
		}
		r.pop()
	}
}
