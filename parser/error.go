package parser

import (
	"fmt"
)

// ParserError reports a malformed program. Parsing cannot continue after
// one: we panic with it and recover in the public entry points.
type ParserError struct {
	Message string
}

func (e *ParserError) Error() string  { return e.String() }
func (e *ParserError) String() string { return e.Message }

// tokenFailure carries an error from the token source through a panic.
type tokenFailure struct{ err error }

func (p *Parser) error(s string, args ...interface{}) {
	panic(&ParserError{Message: fmt.Sprintf(s, args...)})
}

// recoverError converts a panic raised by error() or fill() into err, and
// lets anything else continue unwinding.
func recoverError(err *error) {
	if rv := recover(); rv != nil {
		switch rv := rv.(type) {
		case *ParserError:
			*err = rv
		case tokenFailure:
			*err = rv.err
		default:
			panic(rv)
		}
	}
}
