package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"cell/eval"
)

// completer offers the names bound in the session's global environment.
type completer struct {
	env *eval.Environment
}

func isSymbolRune(ch rune) bool {
	return ch == '_' || ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z') || ('0' <= ch && ch <= '9')
}

func (c completer) Do(line []rune, pos int) ([][]rune, int) {
	start := pos
	for start > 0 && isSymbolRune(line[start-1]) {
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}
	names := c.env.Names()
	sort.Strings(names)
	var out [][]rune
	for _, name := range names {
		if strings.HasPrefix(name, prefix) && name != prefix {
			out = append(out, []rune(name[len(prefix):]))
		}
	}
	return out, pos - start
}

// evalLine runs one line and writes its value, if it has one worth
// showing, to the command's output.
func evalLine(cmd *cobra.Command, ic *eval.InteractiveContext, line string) {
	v, err := ic.Run(line)
	if err != nil {
		reportError(cmd.ErrOrStderr(), err)
		return
	}
	if v == nil || v == eval.NONE {
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), eval.Inspect(v))
}

func repl(cmd *cobra.Command, o *options) error {
	ic, err := eval.NewInteractiveContext(o.context(), eval.WithStdout(cmd.OutOrStdout()))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), logo())
	rl, err := readline.NewEx(&readline.Config{
		Prompt:       "> ",
		HistoryFile:  o.cfg.History,
		AutoComplete: completer{env: ic.Env()},
		Stdin:        readline.NewCancelableStdin(cmd.InOrStdin()),
		Stdout:       cmd.OutOrStdout(),
		Stderr:       cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	for {
		line, err := rl.Readline()
		if err != nil {
			// io.EOF on ^D, readline.ErrInterrupt on ^C
			break
		}
		evalLine(cmd, ic, line)
	}
	return nil
}
