package terminal

import (
	"bytes"
	"strings"
	"testing"

	"chessgate/internal/board"
)

func newTestSession(answers ...string) (*Session, *bytes.Buffer, *script) {
	var out bytes.Buffer
	sc := &script{answers: answers}
	return NewSession(NewScreen(&out, false, sc.ask), &out), &out, sc
}

func lastFEN(t *testing.T, s *Session) string {
	t.Helper()
	return s.record().FEN()
}

func TestSessionMoveFormats(t *testing.T) {
	s, out, _ := newTestSession()
	s.Execute("e2e4")
	s.Execute("e7 e5")
	if !strings.Contains(out.String(), "light pawn e2e4") {
		t.Fatalf("missing light move report:\n%s", out.String())
	}
	if !strings.Contains(out.String(), "dark pawn e7e5") {
		t.Fatalf("missing dark move report:\n%s", out.String())
	}
	if s.ctl.Turn().String() != "light" {
		t.Fatalf("expected light to move")
	}
}

func TestSessionRejectsOutOfTurn(t *testing.T) {
	s, out, _ := newTestSession()
	s.Execute("e7e5")
	if !strings.Contains(out.String(), "light cannot play e7e5") {
		t.Fatalf("expected rejection, got:\n%s", out.String())
	}
	if lastFEN(t, s) != board.StartingFEN {
		t.Fatalf("position changed: %s", lastFEN(t, s))
	}
}

func TestSessionPromotionPrompt(t *testing.T) {
	s, out, sc := newTestSession("r")
	s.Execute("load 8/P7/8/8/8/8/8/k6K w - - 0 1")
	s.Execute("a7a8")
	if sc.prompts != 1 {
		t.Fatalf("expected one prompt, got %d", sc.prompts)
	}
	if !strings.Contains(out.String(), "light pawn a7a8r (promotion)") {
		t.Fatalf("missing promotion report:\n%s", out.String())
	}
	if p := s.screen.grid[7][0]; p == nil || p.Kind.Letter() != "r" {
		t.Fatalf("expected rook on a8, got %+v", p)
	}
	if s.screen.grid[6][0] != nil {
		t.Fatalf("a7 should be empty")
	}
}

func TestSessionPromotionSuffixSkipsPrompt(t *testing.T) {
	s, _, sc := newTestSession()
	s.Execute("load 8/P7/8/8/8/8/8/k6K w - - 0 1")
	s.Execute("a7a8n")
	if sc.prompts != 0 {
		t.Fatalf("expected no prompt, got %d", sc.prompts)
	}
	if p := s.screen.grid[7][0]; p == nil || p.Kind.Letter() != "n" {
		t.Fatalf("expected knight on a8, got %+v", p)
	}
}

func TestSessionNewGame(t *testing.T) {
	s, _, _ := newTestSession()
	s.Execute("e2e4")
	s.Execute("new")
	if lastFEN(t, s) != board.StartingFEN {
		t.Fatalf("expected starting position, got %s", lastFEN(t, s))
	}
	if s.screen.grid[3][4] != nil || s.screen.grid[1][4] == nil {
		t.Fatalf("screen not resynced after new game")
	}
}

func TestSessionCommands(t *testing.T) {
	s, out, _ := newTestSession()
	if s.Execute("help") {
		t.Fatalf("help should not end the session")
	}
	if !strings.Contains(out.String(), "load <fen>") {
		t.Fatalf("help text missing")
	}
	s.Execute("load not a fen")
	if !strings.Contains(out.String(), "cannot load position") {
		t.Fatalf("expected load error")
	}
	s.Execute("bogus")
	if !strings.Contains(out.String(), `unknown command "bogus"`) {
		t.Fatalf("expected unknown command")
	}
	s.Execute("hello")
	if !strings.Contains(out.String(), `unknown command "hello"`) {
		t.Fatalf("five letter word should be an unknown command")
	}
	if !s.Execute("quit") {
		t.Fatalf("quit should end the session")
	}
}

func TestSessionBadPromotionLetter(t *testing.T) {
	s, out, sc := newTestSession()
	s.Execute("load 8/P7/8/8/8/8/8/k6K w - - 0 1")
	before := lastFEN(t, s)
	s.Execute("a7a8x")
	if !strings.Contains(out.String(), `unknown piece kind "x"`) {
		t.Fatalf("expected piece kind error, got:\n%s", out.String())
	}
	if sc.prompts != 0 {
		t.Fatalf("bad letter should not prompt")
	}
	if p := s.screen.grid[6][0]; p == nil || p.Kind.Letter() != "p" {
		t.Fatalf("pawn should still be on a7, got %+v", p)
	}
	if lastFEN(t, s) != before {
		t.Fatalf("position changed: %s", lastFEN(t, s))
	}
}
