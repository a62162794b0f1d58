package terminal

import (
	"fmt"
	"io"
	"strings"

	"chessgate/internal/board"
	"chessgate/internal/engine"
)

// Session drives one local game from typed commands
type Session struct {
	ctl    *engine.Controller
	screen *Screen
	out    io.Writer
}

// NewSession starts a game in the standard position on screen
func NewSession(screen *Screen, out io.Writer) *Session {
	ctl := engine.New(func() engine.Board { return board.New() })
	ctl.Start(screen)
	return &Session{ctl: ctl, screen: screen, out: out}
}

const help = `commands:
  e2e4, e2 e4     move a piece (append q, r, b or n to skip the promotion prompt)
  board           show the board
  fen             print the position as FEN
  pgn             print the game record
  load <fen>      set up a position
  new             start a new game
  help            show this text
  quit            leave`

// Execute runs one command line and reports whether the session should end
func (s *Session) Execute(line string) bool {
	fields := strings.Fields(strings.ToLower(strings.TrimSpace(line)))
	if len(fields) == 0 {
		return false
	}
	switch fields[0] {
	case "quit", "exit", "x":
		return true
	case "help", "?":
		fmt.Fprintln(s.out, help)
	case "board":
		s.show()
	case "new":
		s.screen.Clear()
		s.ctl.NewGame()
		fmt.Fprintln(s.out, "new game")
		s.show()
	case "fen":
		fmt.Fprintln(s.out, s.record().FEN())
	case "pgn":
		fmt.Fprintln(s.out, s.record().PGN())
	case "load":
		// FEN is case sensitive, take it from the raw line
		fen := strings.TrimSpace(strings.TrimSpace(line)[len("load"):])
		s.load(fen)
	default:
		s.move(fields)
	}
	return false
}

func (s *Session) load(fen string) {
	b, err := board.FromFEN(fen)
	if err != nil {
		fmt.Fprintf(s.out, "cannot load position: %v\n", err)
		return
	}
	s.screen.Clear()
	s.ctl.Load(b, b.Turn())
	s.show()
}

func (s *Session) move(fields []string) {
	text := strings.Join(fields, "")
	if len(text) != 4 && len(text) != 5 {
		s.unknown(fields)
		return
	}
	from, err := engine.ParseCoord(text[:2])
	if err != nil {
		s.unknown(fields)
		return
	}
	to, err := engine.ParseCoord(text[2:4])
	if err != nil {
		s.unknown(fields)
		return
	}
	var chooser engine.Chooser = s.screen
	if len(text) == 5 {
		kind, err := engine.ParsePieceKind(text[4:])
		if err != nil {
			fmt.Fprintln(s.out, err)
			return
		}
		chooser = engine.Fixed(kind)
	}

	res, ok := s.ctl.Attempt(from, to, chooser)
	if !ok {
		fmt.Fprintf(s.out, "%s cannot play %s\n", s.ctl.Turn(), text)
		return
	}
	if res.Kind == engine.Ordinary {
		fmt.Fprintf(s.out, "%s %s %s\n", res.Color, res.Piece, res.UCI())
	} else {
		fmt.Fprintf(s.out, "%s %s %s (%s)\n", res.Color, res.Piece, res.UCI(), res.Kind)
	}
	s.show()
}

func (s *Session) unknown(fields []string) {
	fmt.Fprintf(s.out, "unknown command %q, type help\n", strings.Join(fields, " "))
}

func (s *Session) show() {
	s.screen.Render(s.out)
	if outcome := s.record().Outcome(); outcome != "" {
		fmt.Fprintln(s.out, outcome)
		return
	}
	fmt.Fprintf(s.out, "%s to move\n", s.ctl.Turn())
}

type record interface {
	FEN() string
	PGN() string
	Outcome() string
}

func (s *Session) record() record {
	return s.ctl.Board().(record)
}
