// Package terminal hosts a local two-player game on the command line.
package terminal

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"golang.org/x/term"
)

// Run plays a game on the process terminal until quit or EOF
func Run() error {
	color := term.IsTerminal(int(os.Stdout.Fd()))
	prompt := Prompt("chessgate", color)

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt,
		HistoryFile:     ".chessgate_history",
		InterruptPrompt: "^C",
		EOFPrompt:       "quit",
	})
	if err != nil {
		return fmt.Errorf("readline: %w", err)
	}
	defer rl.Close()

	out := rl.Stdout()
	screen := NewScreen(out, color, func(p string) (string, error) {
		rl.SetPrompt(p)
		defer rl.SetPrompt(prompt)
		return rl.Readline()
	})
	s := NewSession(screen, out)

	fmt.Fprintln(out, "type 'help' for commands")
	s.Execute("board")
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}
		if s.Execute(line) {
			return nil
		}
	}
}
