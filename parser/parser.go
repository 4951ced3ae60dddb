package parser

import (
	"io"
	"strings"

	"cell/lexer"
)

// TokenSource is anything that hands out tokens one at a time, returning
// io.EOF when it runs out; *lexer.Lexer is one.
type TokenSource interface {
	Next() (lexer.Token, error)
}

type stopSet []lexer.Kind

func (s stopSet) has(kind lexer.Kind) bool {
	for _, k := range s {
		if k == kind {
			return true
		}
	}
	return false
}

var (
	stopStatement = stopSet{lexer.SEMICOLON}
	stopArgument  = stopSet{lexer.COMMA, lexer.RIGHT_PAREN}
	stopBody      = stopSet{lexer.SEMICOLON, lexer.RIGHT_BRACE}
)

// Parser turns tokens into top-level statements lazily, one per call to
// Next, with a single token of lookahead.
type Parser struct {
	tokens  TokenSource
	next    lexer.Token // the lookahead token
	hasNext bool
	primed  bool  // whether the lookahead has been filled yet
	err     error // sticky error returned by Next
}

func New(tokens TokenSource) *Parser {
	return &Parser{tokens: tokens}
}

// ParseString lexes and parses a whole program.
func ParseString(source string) ([]Expr, error) {
	return New(lexer.New(strings.NewReader(source))).Parse()
}

// =====
// utils
// =====

// fill reads the lookahead token. Errors from the token source abort the
// parse just like our own errors do.
func (p *Parser) fill() {
	tok, err := p.tokens.Next()
	if err == io.EOF {
		p.hasNext = false
		return
	}
	if err != nil {
		p.hasNext = false
		panic(tokenFailure{err})
	}
	p.next = tok
	p.hasNext = true
}

// consume consumes one token and returns it.
func (p *Parser) consume() lexer.Token {
	tok := p.next
	p.fill()
	return tok
}

// check returns if the peek token matches the given kind.
func (p *Parser) check(kind lexer.Kind) bool {
	return p.hasNext && p.next.Kind == kind
}

// ===========
// entry point
// ===========

// Next returns the next top-level statement, skipping empty ones, or
// io.EOF once the tokens are exhausted.
func (p *Parser) Next() (stmt Expr, err error) {
	if p.err != nil {
		return nil, p.err
	}
	defer func() {
		if err != nil {
			p.err = err
		}
	}()
	defer recoverError(&err)
	for {
		if !p.primed {
			p.primed = true
			p.fill()
		}
		if !p.hasNext {
			break
		}
		stmt = p.parse(nil, stopStatement)
		if !p.hasNext {
			if stmt != nil {
				p.error("A statement ran off the end of the program.")
			}
			break
		}
		// drop the ';' but leave the refill to the next call, so a bad
		// token after it is not reported against this statement.
		p.primed = false
		if stmt != nil {
			return stmt, nil
		}
	}
	return nil, io.EOF
}

// Parse drains the parser.
func (p *Parser) Parse() ([]Expr, error) {
	stmts := []Expr{}
	for {
		stmt, err := p.Next()
		if err == io.EOF {
			return stmts, nil
		}
		if err != nil {
			return stmts, err
		}
		stmts = append(stmts, stmt)
	}
}

// ===================
// the expression rule
// ===================
//
// parse keeps extending expr with the following tokens until it sees a
// token in stop (which is left unconsumed) or runs out of tokens. An
// operator takes everything up to the stop token as its right operand,
// so there is no precedence and `a - b - c` means `a - (b - c)`.

func (p *Parser) parse(expr Expr, stop stopSet) Expr {
	for p.hasNext && !stop.has(p.next.Kind) {
		tok := p.consume()
		switch tok.Kind {
		case lexer.NUMBER:
			p.expectNothingBefore(expr, "number")
			expr = Number{tok.Text}
		case lexer.STRING:
			p.expectNothingBefore(expr, "string")
			expr = String{tok.Text}
		case lexer.SYMBOL:
			p.expectNothingBefore(expr, "symbol")
			expr = Symbol{tok.Text}
		case lexer.ARITHMETIC:
			if expr == nil {
				p.error("Unexpected token: %s", tok)
			}
			right := p.parse(nil, stop)
			p.expectSomething(right, tok)
			expr = Operation{Op: tok.Text, Left: expr, Right: right}
		case lexer.LEFT_PAREN:
			if expr == nil {
				p.error("Unexpected token: %s", tok)
			}
			expr = Call{Callee: expr, Args: p.arguments()}
		case lexer.LEFT_BRACE:
			p.expectNothingBefore(expr, "function")
			params := p.params()
			expr = Function{Params: params, Body: p.body()}
		case lexer.EQUAL:
			target, ok := expr.(Symbol)
			if !ok {
				p.error("You can't assign to anything except a symbol.")
			}
			value := p.parse(nil, stop)
			p.expectSomething(value, tok)
			expr = Assignment{Target: target, Value: value}
		default:
			p.error("Unexpected token: %s", tok)
		}
	}
	return expr
}

func (p *Parser) expectNothingBefore(expr Expr, what string) {
	if expr != nil {
		p.error("You can't have a %s after: %s", what, expr)
	}
}

func (p *Parser) expectSomething(expr Expr, after lexer.Token) {
	if expr == nil {
		p.error("Expected an expression after %s", after)
	}
}

// arguments → ( expr ( "," expr )* )? ")"
// The "(" is already consumed.
func (p *Parser) arguments() []Expr {
	args := []Expr{}
	if !p.hasNext {
		p.error("An argument list ran off the end of the program.")
	}
	if p.check(lexer.RIGHT_PAREN) {
		p.consume()
		return args
	}
	for {
		arg := p.parse(nil, stopArgument)
		if !p.hasNext {
			p.error("An argument list ran off the end of the program.")
		}
		sep := p.consume()
		if arg == nil {
			p.error("Unexpected token: %s", sep)
		}
		args = append(args, arg)
		if sep.Kind == lexer.RIGHT_PAREN {
			return args
		}
	}
}

// params → ( ":" "(" ( SYMBOL ( "," SYMBOL )* )? ")" )?
// The "{" is already consumed.
func (p *Parser) params() []Symbol {
	params := []Symbol{}
	if !p.hasNext {
		p.error("A function definition ran off the end of the program.")
	}
	if !p.check(lexer.COLON) {
		return params
	}
	p.consume()
	if !p.check(lexer.LEFT_PAREN) {
		p.error("Colon must be followed by ( in a function definition.")
	}
	p.consume()
	if p.check(lexer.RIGHT_PAREN) {
		p.consume()
		return params
	}
	for {
		if !p.hasNext {
			p.error("A function parameter list ran off the end of the program.")
		}
		tok := p.consume()
		if tok.Kind != lexer.SYMBOL {
			p.error("Only symbols are allowed in function parameter lists. I found: %s.", tok)
		}
		params = append(params, Symbol{tok.Text})
		if !p.hasNext {
			p.error("A function parameter list ran off the end of the program.")
		}
		sep := p.consume()
		switch sep.Kind {
		case lexer.RIGHT_PAREN:
			return params
		case lexer.COMMA:
		case lexer.SYMBOL:
			p.error("Function parameters must be separated by commas. I found: %s.", sep)
		default:
			p.error("Only symbols are allowed in function parameter lists. I found: %s.", sep)
		}
	}
}

// body → ( expr? ( ";" expr? )* ) "}"
func (p *Parser) body() []Expr {
	stmts := []Expr{}
	for {
		if !p.hasNext {
			p.error("A function definition ran off the end of the program.")
		}
		if p.check(lexer.RIGHT_BRACE) {
			p.consume()
			return stmts
		}
		if stmt := p.parse(nil, stopBody); stmt != nil {
			stmts = append(stmts, stmt)
		}
		if p.check(lexer.SEMICOLON) {
			p.consume()
		}
	}
}
