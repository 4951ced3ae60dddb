package eval

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Display renders a value the way print() shows it.
func Display(v Value) string {
	switch v := v.(type) {
	case String:
		return string(v)
	case *Pair:
		return v.render(Display)
	}
	return Inspect(v)
}

// Inspect renders a value unambiguously; strings are quoted. Error messages
// embed values in this form.
func Inspect(v Value) string {
	switch v := v.(type) {
	case None:
		return "None"
	case Number:
		return formatNumber(float64(v))
	case String:
		return strconv.Quote(string(v))
	case *Function:
		return v.String()
	case *Native:
		return fmt.Sprintf("<native %s>", v.Name)
	case *Pair:
		return v.render(Inspect)
	case nil:
		return "<nil>"
	}
	return fmt.Sprintf("%#v", v)
}

// formatNumber writes whole and fractional parts in full, switching to
// exponent form only for very large or very small magnitudes, as
// JavaScript's console.log does.
func formatNumber(f float64) string {
	abs := math.Abs(f)
	if abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (v *Function) String() string {
	params := []string{}
	for _, p := range v.Params {
		params = append(params, p.Name)
	}
	return fmt.Sprintf("<function :(%s)>", strings.Join(params, ", "))
}

// render prints a chain of pairs ending in None as a list, and anything
// else as a plain pair.
func (v *Pair) render(f func(Value) string) string {
	var buf bytes.Buffer
	items := []string{}
	var rest Value = v
	for {
		p, ok := rest.(*Pair)
		if !ok {
			break
		}
		items = append(items, f(p.First))
		rest = p.Second
	}
	if _, ok := rest.(None); ok {
		buf.WriteString("[")
		buf.WriteString(strings.Join(items, ", "))
		buf.WriteString("]")
		return buf.String()
	}
	buf.WriteString("pair(")
	buf.WriteString(f(v.First))
	buf.WriteString(", ")
	buf.WriteString(f(v.Second))
	buf.WriteString(")")
	return buf.String()
}
