package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cell/eval"
)

func init() {
	color.NoColor = true
}

func writeProgram(t *testing.T, source string) string {
	t.Helper()
	name := filepath.Join(t.TempDir(), "prog.cell")
	require.NoError(t, os.WriteFile(name, []byte(source), 0o644))
	return name
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun(t *testing.T) {
	prog := writeProgram(t, `
square = {:(x) x * x;};
print(square(4));
for(list3(1, 2, 3), {:(n) print(n + 1);});
`)
	stdout, _, err := execute(t, "run", prog)
	require.NoError(t, err)
	assert.Equal(t, "16\n2\n3\n4\n", stdout)
}

func TestRunSharesEnvironment(t *testing.T) {
	first := writeProgram(t, "greeting = 'hello';")
	second := writeProgram(t, "print(greeting);")
	stdout, _, err := execute(t, "run", first, second)
	require.NoError(t, err)
	assert.Equal(t, "hello\n", stdout)
}

func TestRunError(t *testing.T) {
	prog := writeProgram(t, "f = {:(x) x + 'a';}; f(1);")
	_, _, err := execute(t, "run", prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Arithmetic is only allowed on numbers")
}

func TestRunStopsAtParseError(t *testing.T) {
	prog := writeProgram(t, "print(1); print(2)")
	stdout, _, err := execute(t, "run", prog)
	require.Error(t, err)
	assert.Equal(t, "1\n", stdout)
	assert.Contains(t, err.Error(), "A statement ran off the end of the program.")
}

func TestRunWithCheck(t *testing.T) {
	prog := writeProgram(t, "print(1); print(nope);")
	stdout, stderr, err := execute(t, "run", "--check", prog)
	require.Error(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Unknown symbol 'nope'.")
}

func TestRunWithoutPrologue(t *testing.T) {
	prog := writeProgram(t, "list2(1, 2);")
	_, _, err := execute(t, "run", "--no-prologue", prog)
	require.Error(t, err)
	assert.Equal(t, "Unknown symbol 'list2'.", err.Error())
}

func TestRunMaxDepth(t *testing.T) {
	prog := writeProgram(t, "f = {f();}; f();")
	_, _, err := execute(t, "run", "--max-depth", "50", prog)
	require.Error(t, err)
	assert.Equal(t, "Maximum call depth of 50 exceeded.", err.Error())
}

func TestNegativeMaxDepth(t *testing.T) {
	prog := writeProgram(t, "print(1);")
	stdout, _, err := execute(t, "run", "--max-depth=-1", prog)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--max-depth")
	assert.Empty(t, stdout)
}

func TestCompile(t *testing.T) {
	prog := writeProgram(t, "x = 3; print(x);")
	stdout, _, err := execute(t, "compile", prog)
	require.NoError(t, err)
	assert.Equal(t, "var x = 3;\nconsole.log(x);\n", stdout)
}

func TestCompileToFile(t *testing.T) {
	prog := writeProgram(t, "x = 3;")
	out := filepath.Join(t.TempDir(), "prog.js")
	_, _, err := execute(t, "compile", "-o", out, prog)
	require.NoError(t, err)
	js, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "var x = 3;\n", string(js))
}

func TestCheck(t *testing.T) {
	clean := writeProgram(t, "x = list2(1, 2); print(first(x));")
	_, _, err := execute(t, "check", clean)
	assert.NoError(t, err)

	dirty := writeProgram(t, "f = {:(a) a + b;};")
	stdout, _, err := execute(t, "check", dirty)
	require.Error(t, err)
	assert.Contains(t, stdout, "in f: Unknown symbol 'b'.")
}

func TestMissingFile(t *testing.T) {
	_, _, err := execute(t, "run", filepath.Join(t.TempDir(), "nothing.cell"))
	assert.Error(t, err)
}

func TestEvalLine(t *testing.T) {
	var stdout, stderr bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	ic, err := eval.NewInteractiveContext(eval.NewContext(), eval.WithStdout(&stdout))
	require.NoError(t, err)

	evalLine(cmd, ic, "x = 'a'")
	evalLine(cmd, ic, "x")
	evalLine(cmd, ic, "print(x)")
	evalLine(cmd, ic, "")
	evalLine(cmd, ic, "y")
	assert.Equal(t, "\"a\"\n\"a\"\na\n", stdout.String())
	assert.Equal(t, "Error: Unknown symbol 'y'.\n", stderr.String())
}

func TestCompleter(t *testing.T) {
	env := eval.NewEnvironment(nil)
	eval.Install(env)
	env.SetLocal("printer", eval.Number(1))
	c := completer{env: env}

	line := []rune("x = pri")
	got, length := c.Do(line, len(line))
	assert.Equal(t, 3, length)
	suffixes := []string{}
	for _, s := range got {
		suffixes = append(suffixes, string(s))
	}
	assert.Equal(t, []string{"nt", "nter"}, suffixes)

	got, length = c.Do([]rune("x = "), 4)
	assert.Nil(t, got)
	assert.Equal(t, 0, length)
}

func TestLogo(t *testing.T) {
	assert.True(t, strings.Contains(logo(), "cell language"))
}
