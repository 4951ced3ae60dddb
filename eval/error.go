package eval

import (
	"bytes"
	"fmt"
)

// Error is a fatal evaluation error. Cell has no way to catch one, so it
// always ends the program. Trace lists the calls it unwound through,
// innermost first.
type Error struct {
	Message string
	Trace   []string
	elided  int // calls dropped once Trace is full
}

const maxTrace = 16

func newError(s string, args ...interface{}) *Error {
	return &Error{Message: fmt.Sprintf(s, args...)}
}

func (e *Error) Error() string { return e.Message }

func (e *Error) String() string {
	var buf bytes.Buffer
	buf.WriteString("Error: ")
	buf.WriteString(e.Message)
	for _, call := range e.Trace {
		buf.WriteString("\n  in ")
		buf.WriteString(call)
	}
	if e.elided > 0 {
		buf.WriteString(fmt.Sprintf("\n  ... and %d more", e.elided))
	}
	return buf.String()
}

// addTrace records call; it is only rendered while the trace has room.
func (e *Error) addTrace(call fmt.Stringer) {
	if len(e.Trace) >= maxTrace {
		e.elided++
		return
	}
	e.Trace = append(e.Trace, call.String())
}

func arityError(passed, required int) *Error {
	return newError("%d arguments passed to function, but it requires %d arguments.", passed, required)
}
