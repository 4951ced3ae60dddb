package parser

// Node is implemented by every AST node. Nodes are plain values: once the
// parser builds them they are never mutated, and two trees are equal when
// their fields are.
type Node interface {
	String() string
	node()
}

// In Cell every statement is an expression.
type Expr interface {
	Node
	expr()
}

type (
	// Number keeps the numeral's source text; it is only parsed when the
	// program is evaluated or compiled.
	Number struct {
		Value string
	}

	// String holds the literal content without its quotes.
	String struct {
		Value string
	}

	Symbol struct {
		Name string
	}

	Operation struct {
		Op    string // one of + - * /
		Left  Expr
		Right Expr
	}

	Assignment struct {
		Target Symbol
		Value  Expr
	}

	Call struct {
		Callee Expr
		Args   []Expr
	}

	Function struct {
		Params []Symbol
		Body   []Expr
	}
)

func (Number) node()     {}
func (String) node()     {}
func (Symbol) node()     {}
func (Operation) node()  {}
func (Assignment) node() {}
func (Call) node()       {}
func (Function) node()   {}

func (Number) expr()     {}
func (String) expr()     {}
func (Symbol) expr()     {}
func (Operation) expr()  {}
func (Assignment) expr() {}
func (Call) expr()       {}
func (Function) expr()   {}
