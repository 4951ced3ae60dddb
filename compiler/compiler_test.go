package compiler_test

import (
	"testing"

	"cell/compiler"
	"cell/parser"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiler(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"", ""},
		{"3;", "3;\n"},
		{"3.1;", "3.1;\n"},
		{"010;", "10;\n"},
		{"x = 010; print(x);", "var x = 10;\nconsole.log(x);\n"},
		{".5;", "0.5;\n"},
		{"2.50;", "2.5;\n"},
		{"1000000;", "1000000;\n"},
		{"'foo';", "'foo';\n"},
		{`"foo";`, "'foo';\n"},
		{`"'foo";`, "'\\'foo';\n"},
		{`"a\b";`, "'a\\\\b';\n"},
		{"'a\nb';", "'a\\nb';\n"},
		{"foo;", "foo;\n"},
		{"4 + 5;", "4 + 5;\n"},
		{"a - b - c;", "a - (b - c);\n"},
		{"{};", "(function() {\n});\n"},
		{"{3; 4;};", "(function() {\n    3;\n    return 4;\n});\n"},
		{"{:(foo, bar) foo+bar;};", "(function(foo, bar) {\n    return foo + bar;\n});\n"},
		{"foo = 3;", "var foo = 3;\n"},
		{"x = y = 3;", "var x = (y = 3);\n"},
		{"{x = 3;};", "(function() {\n    var x = 3;\n    return x;\n});\n"},
		{"{x = 3; x;};", "(function() {\n    var x = 3;\n    return x;\n});\n"},
		{"foo = {}; foo();", "var foo = (function() {\n});\nfoo();\n"},
		{"foo = {:(x, y)}; foo(3, 'a');", "var foo = (function(x, y) {\n});\nfoo(3, 'a');\n"},
		{"f()();", "f()();\n"},
		{"{:(x) x;}(1);", "(function(x) {\n    return x;\n})(1);\n"},
		{"equals(4, 5);", "(4===5 ? 1 : 0);\n"},
		{"equals(4);", "equals(4);\n"},
		{"if(1, {'true'}, {'false'});", `(function() {
    if( 1 !== 0 ) {
        return 'true';
    } else {
        return 'false';
    }
})();
`},
		{"if(x, t, {});", `(function() {
    if( x !== 0 ) {
        return t();
    } else {
    }
})();
`},
		{"at = {if(1, {{'t'}}, {'f'})};", `var at = (function() {
    return (function() {
        if( 1 !== 0 ) {
            return (function() {
                return 't';
            });
        } else {
            return 'f';
        }
    })();
});
`},
		{"print(1);", "console.log(1);\n"},
		{"set('xyz', 1);", "(xyz = 1);\n"},
		{"set('for', 1);", "(for__ = 1);\n"},
		{"set(name, 1);", "set(name, 1);\n"},
		{"for = {7 + 3;}; for();", `var for__ = (function() {
    return 7 + 3;
});
for__();
`},
		{"{:(new, x) new;};", "(function(new__, x) {\n    return new__;\n});\n"},
	}
	for i, test := range tests {
		out, err := compiler.CompileString(test.input)
		if !assert.NoError(t, err, "tests[%d] (%q) failed", i, test.input) {
			continue
		}
		assert.Equal(t, test.expected, out, "tests[%d] (%q) failed", i, test.input)
	}
}

func TestCompilerErrors(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"2.4.3;", "Can't compile number '2.4.3'."},
		{"f(1, .);", "Can't compile number '.'."},
		{"3 = x;", "You can't assign to anything except a symbol."},
		{"x\t;", "Tab characters are not allowed in Cell"},
	}
	for i, test := range tests {
		_, err := compiler.CompileString(test.input)
		if assert.Error(t, err, "tests[%d] (%q) failed", i, test.input) {
			assert.Equal(t, test.message, err.Error(), "tests[%d] (%q) failed", i, test.input)
		}
	}
}

func TestCompileExpression(t *testing.T) {
	stmts, err := parser.ParseString("x = {:(a) a * 2;};")
	require.NoError(t, err)
	// outside statement position an assignment is an expression
	out, err := compiler.Compile(stmts[0])
	require.NoError(t, err)
	assert.Equal(t, "(x = (function(a) {\n    return a * 2;\n}))", out)
}
