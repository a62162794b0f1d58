package board

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"chessgate/internal/engine"
)

const (
	enPassantFEN = "rnbqkbnr/ppp1pppp/8/3pP3/8/8/PPPP1PPP/RNBQKBNR w KQkq d6 0 3"
	promotionFEN = "8/P7/8/8/8/8/8/k6K w - - 0 1"
	castlingFEN  = "r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1"
)

func sq(t *testing.T, s string) engine.Coord {
	t.Helper()
	c, err := engine.ParseCoord(s)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func mustFEN(t *testing.T, fen string) *Board {
	t.Helper()
	b, err := FromFEN(fen)
	if err != nil {
		t.Fatalf("FromFEN: %v", err)
	}
	return b
}

func TestNewBoardLayout(t *testing.T) {
	b := New()
	if got := len(b.Occupied()); got != 32 {
		t.Fatalf("expected 32 pieces, got %d", got)
	}
	p, ok := b.PieceAt(sq(t, "e1"))
	if !ok || p.Kind != engine.King || p.Color != engine.Light || p.Moved {
		t.Fatalf("unexpected piece on e1: %+v %v", p, ok)
	}
	p, ok = b.PieceAt(sq(t, "d8"))
	if !ok || p.Kind != engine.Queen || p.Color != engine.Dark {
		t.Fatalf("unexpected piece on d8: %+v %v", p, ok)
	}
	if _, ok := b.PieceAt(sq(t, "e4")); ok {
		t.Fatalf("expected e4 to be empty")
	}
	if b.FEN() != StartingFEN {
		t.Fatalf("unexpected FEN %q", b.FEN())
	}
}

func TestLegal(t *testing.T) {
	b := New()
	if !b.Legal(sq(t, "e2"), sq(t, "e4")) {
		t.Fatalf("expected e2e4 to be legal")
	}
	if b.Legal(sq(t, "e2"), sq(t, "e5")) {
		t.Fatalf("expected e2e5 to be illegal")
	}
	if b.Legal(sq(t, "e7"), sq(t, "e5")) {
		t.Fatalf("expected dark move to be illegal on light's turn")
	}
	if b.Legal(engine.Coord{X: 9, Y: 0}, sq(t, "e4")) {
		t.Fatalf("expected off-board origin to be illegal")
	}
}

func TestEnPassantClassification(t *testing.T) {
	b := mustFEN(t, enPassantFEN)
	captured, ok := b.EnPassant(sq(t, "e5"), sq(t, "d6"))
	if !ok || captured != sq(t, "d5") {
		t.Fatalf("expected en passant capturing d5, got %v %v", captured, ok)
	}
	if _, ok := b.EnPassant(sq(t, "e5"), sq(t, "e6")); ok {
		t.Fatalf("plain push must not classify as en passant")
	}
}

func TestPromotionClassification(t *testing.T) {
	b := mustFEN(t, promotionFEN)
	if !b.Promotion(sq(t, "a7"), sq(t, "a8")) {
		t.Fatalf("expected a7a8 to be a promotion")
	}
	if b.Promotion(sq(t, "h1"), sq(t, "h2")) {
		t.Fatalf("king step is not a promotion")
	}
}

func TestCastlingClassification(t *testing.T) {
	b := mustFEN(t, castlingFEN)
	rook, ok := b.Castling(sq(t, "e1"), sq(t, "g1"))
	if !ok || rook != sq(t, "h1") {
		t.Fatalf("expected kingside castling with h1, got %v %v", rook, ok)
	}
	rook, ok = b.Castling(sq(t, "e1"), sq(t, "c1"))
	if !ok || rook != sq(t, "a1") {
		t.Fatalf("expected queenside castling with a1, got %v %v", rook, ok)
	}
	if _, ok := b.Castling(sq(t, "e1"), sq(t, "f1")); ok {
		t.Fatalf("king step is not castling")
	}
}

func TestApplyCarriesMovedFlags(t *testing.T) {
	b := mustFEN(t, castlingFEN)
	if err := b.Apply(sq(t, "e1"), sq(t, "g1")); err != nil {
		t.Fatalf("Apply: %v", err)
	}
	rook, ok := b.PieceAt(sq(t, "f1"))
	if !ok || rook.Kind != engine.Rook || !rook.Moved {
		t.Fatalf("expected moved rook on f1, got %+v %v", rook, ok)
	}
	if _, ok := b.PieceAt(sq(t, "h1")); ok {
		t.Fatalf("expected h1 to be empty")
	}
	if b.Turn() != engine.Dark {
		t.Fatalf("expected dark to move after castling")
	}
	if err := b.Apply(sq(t, "e8"), sq(t, "e1")); err == nil {
		t.Fatalf("expected illegal move to be refused")
	}
}

func TestPromote(t *testing.T) {
	b := mustFEN(t, promotionFEN)
	if err := b.Promote(sq(t, "a7"), sq(t, "a8"), engine.King, engine.Light); err == nil {
		t.Fatalf("expected promotion to king to be refused")
	}
	if err := b.Promote(sq(t, "a7"), sq(t, "a8"), engine.Knight, engine.Dark); err == nil {
		t.Fatalf("expected promotion with the wrong color to be refused")
	}
	if err := b.Promote(sq(t, "a7"), sq(t, "a8"), engine.Knight, engine.Light); err != nil {
		t.Fatalf("Promote: %v", err)
	}
	p, ok := b.PieceAt(sq(t, "a8"))
	if !ok || p.Kind != engine.Knight || p.Color != engine.Light {
		t.Fatalf("expected light knight on a8, got %+v %v", p, ok)
	}
	if got := b.MovesUCI(); len(got) != 1 || got[0] != "a7a8n" {
		t.Fatalf("unexpected move list %v", got)
	}
}

func TestOutcome(t *testing.T) {
	b := New()
	for _, m := range []string{"f2f3", "e7e5", "g2g4"} {
		if err := b.Apply(sq(t, m[:2]), sq(t, m[2:])); err != nil {
			t.Fatalf("Apply %s: %v", m, err)
		}
	}
	if b.Outcome() != "" {
		t.Fatalf("game should still be ongoing")
	}
	if err := b.Apply(sq(t, "d8"), sq(t, "h4")); err != nil {
		t.Fatalf("Apply d8h4: %v", err)
	}
	if !strings.Contains(b.Outcome(), "Checkmate") {
		t.Fatalf("expected checkmate, got %q", b.Outcome())
	}
}

type recorder struct {
	engine.Recorder
	offered []engine.PieceChoice
}

func (r *recorder) Choose(_, _ string, options []engine.PieceChoice) engine.PieceChoice {
	r.offered = options
	return engine.PieceChoice{Kind: engine.Queen}
}

func place(kind engine.PieceKind, color engine.Color, at engine.Coord) engine.Notification {
	return engine.Notification{Op: engine.OpPlace, Kind: kind, Color: color, X: at.X, Y: at.Y}
}

func remove(at engine.Coord) engine.Notification {
	return engine.Notification{Op: engine.OpRemove, X: at.X, Y: at.Y}
}

func TestControllerOverRealBoard(t *testing.T) {
	tests := []struct {
		name     string
		fen      string
		from, to string
		want     func(t *testing.T) []engine.Notification
	}{
		{
			name: "en passant",
			fen:  enPassantFEN,
			from: "e5", to: "d6",
			want: func(t *testing.T) []engine.Notification {
				return []engine.Notification{
					remove(sq(t, "d5")),
					remove(sq(t, "e5")),
					place(engine.Pawn, engine.Light, sq(t, "d6")),
				}
			},
		},
		{
			name: "promotion",
			fen:  promotionFEN,
			from: "a7", to: "a8",
			want: func(t *testing.T) []engine.Notification {
				return []engine.Notification{
					place(engine.Queen, engine.Light, sq(t, "a8")),
					remove(sq(t, "a7")),
				}
			},
		},
		{
			name: "castling",
			fen:  castlingFEN,
			from: "e1", to: "c1",
			want: func(t *testing.T) []engine.Notification {
				return []engine.Notification{
					remove(sq(t, "a1")),
					place(engine.Rook, engine.Light, sq(t, "d1")),
					remove(sq(t, "e1")),
					place(engine.King, engine.Light, sq(t, "c1")),
				}
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := mustFEN(t, tt.fen)
			c := engine.New(func() engine.Board { return New() })
			r := &recorder{}
			c.Start(r)
			c.Load(b, b.Turn())
			r.Drain()

			from, to := sq(t, tt.from), sq(t, tt.to)
			if !c.Move(from.X, from.Y, to.X, to.Y) {
				t.Fatalf("expected %s%s to succeed", tt.from, tt.to)
			}
			if diff := cmp.Diff(tt.want(t), r.Drain()); diff != "" {
				t.Fatalf("notifications mismatch (-want +got):\n%s", diff)
			}
			if c.Turn() != b.Turn() {
				t.Fatalf("controller turn %s disagrees with board turn %s", c.Turn(), b.Turn())
			}
		})
	}
}

func TestControllerRejectsIllegalOnRealBoard(t *testing.T) {
	c := engine.New(func() engine.Board { return New() })
	r := &recorder{}
	c.Start(r)
	r.Drain()

	if c.Move(4, 1, 4, 4) {
		t.Fatalf("expected e2e5 to fail")
	}
	if c.Move(4, 6, 4, 4) {
		t.Fatalf("expected dark e7e5 to fail on light's turn")
	}
	if len(r.Events) != 0 || c.Turn() != engine.Light {
		t.Fatalf("failed attempts must not change state")
	}
	if !c.Move(4, 1, 4, 3) {
		t.Fatalf("expected e2e4 to succeed")
	}
	c.NewGame()
	if got := len(r.Drain()); got != 2+32 {
		t.Fatalf("expected move plus full resync notifications, got %d", got)
	}
	if c.Turn() != engine.Light {
		t.Fatalf("expected light to open the new game")
	}
}
