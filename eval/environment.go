package eval

import (
	"io"
	"os"
)

// Environment is one scope frame. Bindings are only ever added or
// overwritten. A frame stays alive for as long as a closure or a child
// frame refers to it.
type Environment struct {
	store  map[string]Value
	names  []string // binding order
	parent *Environment
	stdout io.Writer // nil means: ask the parent
}

type EnvOption func(*Environment)

// WithStdout sets where print() writes for this frame and its children.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Environment) { e.stdout = w }
}

func NewEnvironment(parent *Environment, opts ...EnvOption) *Environment {
	e := &Environment{
		store:  map[string]Value{},
		parent: parent,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Environment) Parent() *Environment { return e.parent }

// Root returns the outermost frame.
func (e *Environment) Root() *Environment {
	for e.parent != nil {
		e = e.parent
	}
	return e
}

func (e *Environment) Stdout() io.Writer {
	for f := e; f != nil; f = f.parent {
		if f.stdout != nil {
			return f.stdout
		}
	}
	return os.Stdout
}

// Get looks name up from this frame outwards.
func (e *Environment) Get(name string) (Value, error) {
	for f := e; f != nil; f = f.parent {
		if v, ok := f.store[name]; ok {
			return v, nil
		}
	}
	return nil, newError("Unknown symbol '%s'.", name)
}

// SetLocal binds name in this frame, shadowing any outer binding.
func (e *Environment) SetLocal(name string, value Value) {
	if _, ok := e.store[name]; !ok {
		e.names = append(e.names, name)
	}
	e.store[name] = value
}

// SetEnclosing overwrites the binding in the nearest frame that already
// defines name, or creates it in the root frame if none does.
func (e *Environment) SetEnclosing(name string, value Value) {
	f := e
	for ; f.parent != nil; f = f.parent {
		if _, ok := f.store[name]; ok {
			break
		}
	}
	f.SetLocal(name, value)
}

// Names lists every name visible from this frame, innermost first, each
// once.
func (e *Environment) Names() []string {
	seen := map[string]bool{}
	names := []string{}
	for f := e; f != nil; f = f.parent {
		for _, name := range f.names {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}
