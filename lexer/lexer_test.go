package lexer_test

import (
	"errors"
	"io"
	"testing"

	"cell/lexer"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tok(kind lexer.Kind, text string) lexer.Token { return lexer.Token{Kind: kind, Text: text} }

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []lexer.Token
	}{
		{"", []lexer.Token{}},
		{"  \n ", []lexer.Token{}},
		{"(", []lexer.Token{tok(lexer.LEFT_PAREN, "")}},
		{"(){},;=:", []lexer.Token{
			tok(lexer.LEFT_PAREN, ""),
			tok(lexer.RIGHT_PAREN, ""),
			tok(lexer.LEFT_BRACE, ""),
			tok(lexer.RIGHT_BRACE, ""),
			tok(lexer.COMMA, ""),
			tok(lexer.SEMICOLON, ""),
			tok(lexer.EQUAL, ""),
			tok(lexer.COLON, ""),
		}},
		{"+-*/", []lexer.Token{
			tok(lexer.ARITHMETIC, "+"),
			tok(lexer.ARITHMETIC, "-"),
			tok(lexer.ARITHMETIC, "*"),
			tok(lexer.ARITHMETIC, "/"),
		}},
		{"'foo'", []lexer.Token{tok(lexer.STRING, "foo")}},
		{`"foo"`, []lexer.Token{tok(lexer.STRING, "foo")}},
		{`"f'oo"`, []lexer.Token{tok(lexer.STRING, "f'oo")}},
		{"''", []lexer.Token{tok(lexer.STRING, "")}},
		{"243", []lexer.Token{tok(lexer.NUMBER, "243")}},
		{"2.4.3", []lexer.Token{tok(lexer.NUMBER, "2.4.3")}},
		{".5", []lexer.Token{tok(lexer.NUMBER, ".5")}},
		{"foo", []lexer.Token{tok(lexer.SYMBOL, "foo")}},
		{"_bar_2 x9", []lexer.Token{tok(lexer.SYMBOL, "_bar_2"), tok(lexer.SYMBOL, "x9")}},
		{"2x", []lexer.Token{tok(lexer.NUMBER, "2"), tok(lexer.SYMBOL, "x")}},
		{"pi = 3.1415;\r\n", []lexer.Token{
			tok(lexer.SYMBOL, "pi"),
			tok(lexer.EQUAL, ""),
			tok(lexer.NUMBER, "3.1415"),
			tok(lexer.SEMICOLON, ""),
		}},
		{"print(x + 2);", []lexer.Token{
			tok(lexer.SYMBOL, "print"),
			tok(lexer.LEFT_PAREN, ""),
			tok(lexer.SYMBOL, "x"),
			tok(lexer.ARITHMETIC, "+"),
			tok(lexer.NUMBER, "2"),
			tok(lexer.RIGHT_PAREN, ""),
			tok(lexer.SEMICOLON, ""),
		}},
		{"{:(a) a;}", []lexer.Token{
			tok(lexer.LEFT_BRACE, ""),
			tok(lexer.COLON, ""),
			tok(lexer.LEFT_PAREN, ""),
			tok(lexer.SYMBOL, "a"),
			tok(lexer.RIGHT_PAREN, ""),
			tok(lexer.SYMBOL, "a"),
			tok(lexer.SEMICOLON, ""),
			tok(lexer.RIGHT_BRACE, ""),
		}},
	}
	for i, test := range tests {
		tokens, err := lexer.NewString(test.input).All()
		require.NoError(t, err, "tests[%d] (%q) failed", i, test.input)
		assert.Equal(t, test.expected, tokens, "tests[%d] (%q) failed", i, test.input)
	}
}

func TestLexerBad(t *testing.T) {
	tests := []struct {
		input   string
		message string
	}{
		{"'abc", "A string ran off the end of the program!"},
		{`x = "abc;`, "A string ran off the end of the program!"},
		{"\tx", "Tab characters are not allowed in Cell"},
		{"x;\t", "Tab characters are not allowed in Cell"},
		{"x & y", "Unrecognised character: '&'."},
		{"阿福", "Unrecognised character: '阿'."},
	}
	for i, test := range tests {
		_, err := lexer.NewString(test.input).All()
		require.Error(t, err, "tests[%d] (%q) failed", i, test.input)
		var lexErr *lexer.Error
		require.True(t, errors.As(err, &lexErr), "tests[%d]: expected a *lexer.Error, got %T", i, err)
		assert.Equal(t, test.message, err.Error(), "tests[%d] (%q) failed", i, test.input)
	}
}

func TestLexerIsLazy(t *testing.T) {
	l := lexer.NewString("x; &")
	first, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, tok(lexer.SYMBOL, "x"), first)
	second, err := l.Next()
	require.NoError(t, err)
	assert.Equal(t, tok(lexer.SEMICOLON, ""), second)
	_, err = l.Next()
	assert.EqualError(t, err, "Unrecognised character: '&'.")
	// errors are sticky
	_, again := l.Next()
	assert.Equal(t, err, again)
}

func TestLexerEOFIsSticky(t *testing.T) {
	l := lexer.NewString("a")
	_, err := l.Next()
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		_, err = l.Next()
		assert.Equal(t, io.EOF, err)
	}
}

func TestTokenString(t *testing.T) {
	assert.Equal(t, "number '3'", tok(lexer.NUMBER, "3").String())
	assert.Equal(t, "'('", tok(lexer.LEFT_PAREN, "").String())
}
