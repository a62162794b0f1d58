// Package board implements engine.Board on top of corentings/chess, which owns
// move generation, check detection and the game record.
package board

import (
	"fmt"

	"github.com/corentings/chess/v2"

	"chessgate/internal/engine"
)

// StartingFEN is the standard initial position
const StartingFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// Board tracks one game plus a per-square "has moved" flag
type Board struct {
	g     *chess.Game
	moved [64]bool
}

// New returns a board in the starting position
func New() *Board {
	return &Board{g: chess.NewGame()}
}

// FromFEN returns a board set up from a FEN record. Pieces off their home
// squares start out marked as moved.
func FromFEN(fen string) (*Board, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("parse fen: %w", err)
	}
	b := &Board{g: chess.NewGame(opt)}
	start := chess.StartingPosition().Board()
	cur := b.g.Position().Board()
	for i := 0; i < 64; i++ {
		sq := chess.Square(i)
		if p := cur.Piece(sq); p != chess.NoPiece {
			b.moved[sq] = start.Piece(sq) != p
		}
	}
	return b, nil
}

func square(c engine.Coord) chess.Square {
	return chess.Square(c.Y*8 + c.X)
}

func coord(sq chess.Square) engine.Coord {
	return engine.Coord{X: int(sq) % 8, Y: int(sq) / 8}
}

// PieceAt returns the piece on c, if any
func (b *Board) PieceAt(c engine.Coord) (engine.Piece, bool) {
	if !c.Valid() {
		return engine.Piece{}, false
	}
	sq := square(c)
	p := b.g.Position().Board().Piece(sq)
	if p == chess.NoPiece {
		return engine.Piece{}, false
	}
	kind, ok := fromType(p.Type())
	if !ok {
		return engine.Piece{}, false
	}
	return engine.Piece{Kind: kind, Color: fromColor(p.Color()), Moved: b.moved[sq]}, true
}

// Occupied lists every piece on the board, rank 1 first
func (b *Board) Occupied() []engine.Placement {
	var out []engine.Placement
	for i := 0; i < 64; i++ {
		c := coord(chess.Square(i))
		if p, ok := b.PieceAt(c); ok {
			out = append(out, engine.Placement{Piece: p, At: c})
		}
	}
	return out
}

// candidates returns the legal moves from one square to another; there are
// four when the move is a promotion
func (b *Board) candidates(from, to engine.Coord) []chess.Move {
	if !from.Valid() || !to.Valid() {
		return nil
	}
	s1, s2 := square(from), square(to)
	var out []chess.Move
	for _, m := range b.g.ValidMoves() {
		if m.S1() == s1 && m.S2() == s2 {
			out = append(out, m)
		}
	}
	return out
}

// EnPassant returns the captured pawn's square when from→to is an en passant capture
func (b *Board) EnPassant(from, to engine.Coord) (engine.Coord, bool) {
	for _, m := range b.candidates(from, to) {
		if m.HasTag(chess.EnPassant) {
			return engine.Coord{X: to.X, Y: from.Y}, true
		}
	}
	return engine.Coord{}, false
}

// Promotion reports whether from→to is a legal pawn move onto the last rank
func (b *Board) Promotion(from, to engine.Coord) bool {
	for _, m := range b.candidates(from, to) {
		if m.Promo() != chess.NoPieceType {
			return true
		}
	}
	return false
}

// Castling returns the companion rook's square when from→to castles
func (b *Board) Castling(from, to engine.Coord) (engine.Coord, bool) {
	for _, m := range b.candidates(from, to) {
		switch {
		case m.HasTag(chess.KingSideCastle):
			return engine.Coord{X: 7, Y: from.Y}, true
		case m.HasTag(chess.QueenSideCastle):
			return engine.Coord{X: 0, Y: from.Y}, true
		}
	}
	return engine.Coord{}, false
}

// Legal reports whether any legal move goes from→to
func (b *Board) Legal(from, to engine.Coord) bool {
	return len(b.candidates(from, to)) > 0
}

// Apply plays a non-promotion move, carrying the moved flags along
func (b *Board) Apply(from, to engine.Coord) error {
	for _, m := range b.candidates(from, to) {
		if m.Promo() != chess.NoPieceType {
			continue
		}
		return b.play(m)
	}
	return fmt.Errorf("no legal move %s%s", from, to)
}

// Promote plays a promotion move with the chosen kind
func (b *Board) Promote(from, to engine.Coord, kind engine.PieceKind, color engine.Color) error {
	pt, ok := toType(kind)
	if !ok {
		return fmt.Errorf("cannot promote to %s", kind)
	}
	if p, ok := b.PieceAt(from); !ok || p.Color != color {
		return fmt.Errorf("no %s pawn on %s", color, from)
	}
	for _, m := range b.candidates(from, to) {
		if m.Promo() == pt {
			return b.play(m)
		}
	}
	return fmt.Errorf("no legal promotion %s%s%s", from, to, kind.Letter())
}

func (b *Board) play(m chess.Move) error {
	s1, s2 := m.S1(), m.S2()
	if err := b.g.Move(&m, nil); err != nil {
		return err
	}
	b.moved[s2] = b.moved[s1]
	b.moved[s1] = false
	switch {
	case m.HasTag(chess.EnPassant):
		b.moved[chess.Square(int(s1)/8*8+int(s2)%8)] = false
	case m.HasTag(chess.KingSideCastle):
		rank := int(s1) / 8 * 8
		b.moved[rank+5] = true
		b.moved[rank+7] = false
	case m.HasTag(chess.QueenSideCastle):
		rank := int(s1) / 8 * 8
		b.moved[rank+3] = true
		b.moved[rank] = false
	}
	return nil
}

// MarkMoved flags the piece on c as having moved
func (b *Board) MarkMoved(c engine.Coord) {
	if c.Valid() {
		b.moved[square(c)] = true
	}
}

// FEN returns the current position
func (b *Board) FEN() string {
	return b.g.Position().String()
}

// Turn returns the side to move according to the position
func (b *Board) Turn() engine.Color {
	return fromColor(b.g.Position().Turn())
}

// Outcome returns a description of the finished game, or "" while it is ongoing
func (b *Board) Outcome() string {
	if b.g.Outcome() == chess.NoOutcome {
		return ""
	}
	return fmt.Sprintf("%s by %s", b.g.Outcome().String(), b.g.Method().String())
}

// PGN returns the game record
func (b *Board) PGN() string {
	return b.g.String()
}

// MovesUCI returns the played moves in UCI notation
func (b *Board) MovesUCI() []string {
	ms := b.g.Moves()
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.String())
	}
	return out
}

func fromColor(c chess.Color) engine.Color {
	if c == chess.Black {
		return engine.Dark
	}
	return engine.Light
}

func fromType(t chess.PieceType) (engine.PieceKind, bool) {
	switch t {
	case chess.Pawn:
		return engine.Pawn, true
	case chess.Knight:
		return engine.Knight, true
	case chess.Bishop:
		return engine.Bishop, true
	case chess.Rook:
		return engine.Rook, true
	case chess.Queen:
		return engine.Queen, true
	case chess.King:
		return engine.King, true
	}
	return 0, false
}

func toType(k engine.PieceKind) (chess.PieceType, bool) {
	switch k {
	case engine.Knight:
		return chess.Knight, true
	case engine.Bishop:
		return chess.Bishop, true
	case engine.Rook:
		return chess.Rook, true
	case engine.Queen:
		return chess.Queen, true
	}
	return chess.NoPieceType, false
}
