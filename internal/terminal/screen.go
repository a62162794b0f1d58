package terminal

import (
	"fmt"
	"io"
	"strings"

	"chessgate/internal/engine"
)

// Screen is a text view of a game. It only knows what the controller tells it
// through PutPiece and RemovePiece.
type Screen struct {
	out   io.Writer
	color bool
	ask   func(prompt string) (string, error)
	grid  [8][8]*engine.Piece
}

// NewScreen returns a screen writing to out. ask reads one line of input and
// is used for promotion prompts.
func NewScreen(out io.Writer, color bool, ask func(prompt string) (string, error)) *Screen {
	return &Screen{out: out, color: color, ask: ask}
}

func (s *Screen) PutPiece(kind engine.PieceKind, color engine.Color, x, y int) {
	s.grid[y][x] = &engine.Piece{Kind: kind, Color: color}
}

func (s *Screen) RemovePiece(x, y int) {
	s.grid[y][x] = nil
}

// Clear empties the mirror grid before a full resync
func (s *Screen) Clear() {
	s.grid = [8][8]*engine.Piece{}
}

// Choose lists the options and reads until one of them is picked. A read
// error answers with a pawn, which is never offered, so the move is dropped.
func (s *Screen) Choose(title, message string, options []engine.PieceChoice) engine.PieceChoice {
	fmt.Fprintf(s.out, "%s\n%s\n", title, message)
	labels := make([]string, 0, len(options))
	for _, o := range options {
		labels = append(labels, fmt.Sprintf("%s) %s", o.Kind.Letter(), o.Kind))
	}
	fmt.Fprintln(s.out, strings.Join(labels, "  "))

	for {
		line, err := s.ask(Prompt("promote to", s.color))
		if err != nil {
			return engine.PieceChoice{Kind: engine.Pawn}
		}
		kind, err := engine.ParsePieceKind(line)
		if err == nil {
			for _, o := range options {
				if o.Kind == kind {
					return o
				}
			}
		}
		fmt.Fprintf(s.out, "pick one of: %s\n", strings.Join(labels, "  "))
	}
}

// Render draws the grid with rank 8 on top
func (s *Screen) Render(w io.Writer) {
	files := "  a b c d e f g h"
	fmt.Fprintln(w, s.paint(Cyan, files))
	for y := 7; y >= 0; y-- {
		var b strings.Builder
		b.WriteString(s.paint(Cyan, fmt.Sprint(y+1)))
		for x := 0; x < 8; x++ {
			b.WriteByte(' ')
			p := s.grid[y][x]
			switch {
			case p == nil:
				b.WriteByte('.')
			case p.Color == engine.Light:
				b.WriteString(s.paint(Blue, strings.ToUpper(p.Kind.Letter())))
			default:
				b.WriteString(s.paint(Red, p.Kind.Letter()))
			}
		}
		b.WriteByte(' ')
		b.WriteString(s.paint(Cyan, fmt.Sprint(y+1)))
		fmt.Fprintln(w, b.String())
	}
	fmt.Fprintln(w, s.paint(Cyan, files))
}

func (s *Screen) paint(code, text string) string {
	if !s.color {
		return text
	}
	return code + text + Reset
}
