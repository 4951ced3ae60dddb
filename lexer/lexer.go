package lexer

import (
	"fmt"
	"io"
	"strings"
)

type Kind uint8

const (
	_ = Kind(iota)
	// punctuation
	LEFT_PAREN
	RIGHT_PAREN
	LEFT_BRACE
	RIGHT_BRACE
	COMMA
	SEMICOLON
	EQUAL
	COLON
	// literals
	STRING
	NUMBER
	SYMBOL
	// + - * /
	ARITHMETIC
)

var kindNames = map[Kind]string{
	LEFT_PAREN:  "(",
	RIGHT_PAREN: ")",
	LEFT_BRACE:  "{",
	RIGHT_BRACE: "}",
	COMMA:       ",",
	SEMICOLON:   ";",
	EQUAL:       "=",
	COLON:       ":",
	STRING:      "string",
	NUMBER:      "number",
	SYMBOL:      "symbol",
	ARITHMETIC:  "arithmetic",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Token is a (kind, text) pair. Punctuation tokens carry no text.
type Token struct {
	Kind Kind
	Text string
}

func (t Token) String() string {
	if t.Text == "" {
		return fmt.Sprintf("'%s'", t.Kind)
	}
	return fmt.Sprintf("%s '%s'", t.Kind, t.Text)
}

type Error struct {
	Message string
}

func (e *Error) Error() string  { return e.String() }
func (e *Error) String() string { return e.Message }

// Lexer turns a stream of characters into tokens on demand. Once it has
// returned an error (including io.EOF) it keeps returning that error.
type Lexer struct {
	source  io.RuneReader
	next    rune  // the lookahead character
	hasNext bool  // false once source is exhausted
	readErr error // a non-EOF failure from source
	err     error // sticky error returned by Next
}

func New(source io.RuneReader) *Lexer {
	l := &Lexer{source: source}
	l.fill()
	return l
}

func NewString(source string) *Lexer { return New(strings.NewReader(source)) }

// utils

func (l *Lexer) fill() {
	r, _, err := l.source.ReadRune()
	if err != nil {
		l.hasNext = false
		if err != io.EOF {
			l.readErr = err
		}
		return
	}
	l.next = r
	l.hasNext = true
}

// advance consumes one character and returns it.
func (l *Lexer) advance() rune {
	r := l.next
	l.fill()
	return r
}

// peek returns the lookahead character without consuming it.
func (l *Lexer) peek() (rune, bool) { return l.next, l.hasNext }

func (l *Lexer) error(s string, args ...interface{}) error {
	return &Error{Message: fmt.Sprintf(s, args...)}
}

// public api

// Next returns the next token, or io.EOF when the input is exhausted.
func (l *Lexer) Next() (Token, error) {
	if l.err != nil {
		return Token{}, l.err
	}
	tok, err := l.scanToken()
	if err != nil {
		l.err = err
	}
	return tok, err
}

// All drains the lexer.
func (l *Lexer) All() ([]Token, error) {
	tokens := []Token{}
	for {
		tok, err := l.Next()
		if err == io.EOF {
			return tokens, nil
		}
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
	}
}

func (l *Lexer) scanToken() (Token, error) {
	for l.hasNext {
		ch := l.advance()
		switch ch {
		// Ignore whitespace
		case ' ', '\n', '\r':
			continue
		case '(':
			return l.emit(LEFT_PAREN), nil
		case ')':
			return l.emit(RIGHT_PAREN), nil
		case '{':
			return l.emit(LEFT_BRACE), nil
		case '}':
			return l.emit(RIGHT_BRACE), nil
		case ',':
			return l.emit(COMMA), nil
		case ';':
			return l.emit(SEMICOLON), nil
		case '=':
			return l.emit(EQUAL), nil
		case ':':
			return l.emit(COLON), nil
		case '\'', '"':
			return l.lexString(ch)
		case '+', '-', '*', '/':
			return Token{ARITHMETIC, string(ch)}, nil
		case '\t':
			return Token{}, l.error("Tab characters are not allowed in Cell")
		default:
			if isNumeric(ch) {
				return Token{NUMBER, l.scan(ch, isNumeric)}, nil
			} else if isAlpha(ch) {
				return Token{SYMBOL, l.scan(ch, isIdentifier)}, nil
			}
			return Token{}, l.error("Unrecognised character: '%c'.", ch)
		}
	}
	if l.readErr != nil {
		return Token{}, l.readErr
	}
	return Token{}, io.EOF
}

// scan greedily consumes characters accepted by allowed.
func (l *Lexer) scan(first rune, allowed func(rune) bool) string {
	var buf strings.Builder
	buf.WriteRune(first)
	for {
		ch, ok := l.peek()
		if !ok || !allowed(ch) {
			return buf.String()
		}
		buf.WriteRune(l.advance())
	}
}

func (l *Lexer) lexString(delim rune) (Token, error) {
	// the opening delimiter is already consumed; there are no escapes.
	var buf strings.Builder
	for {
		ch, ok := l.peek()
		if !ok {
			return Token{}, l.error("A string ran off the end of the program!")
		}
		l.advance()
		if ch == delim {
			return Token{STRING, buf.String()}, nil
		}
		buf.WriteRune(ch)
	}
}

func (l *Lexer) emit(kind Kind) Token { return Token{Kind: kind} }

func isNumeric(ch rune) bool    { return ch == '.' || isDigit(ch) }
func isIdentifier(ch rune) bool { return isAlpha(ch) || isDigit(ch) }
func isAlpha(ch rune) bool      { return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') }
func isDigit(ch rune) bool      { return '0' <= ch && ch <= '9' }
