package engine

import (
	"errors"
	"sort"
)

type span struct{ from, to Coord }

// fakeBoard answers classifications from tables and moves pieces in a map
type fakeBoard struct {
	pieces     map[Coord]Piece
	enPassant  map[span]Coord
	promotions map[span]bool
	castles    map[span]Coord
	legal      map[span]bool
	failApply  bool

	applied  []span
	promoted []Piece
}

func newFakeBoard() *fakeBoard {
	return &fakeBoard{
		pieces:     make(map[Coord]Piece),
		enPassant:  make(map[span]Coord),
		promotions: make(map[span]bool),
		castles:    make(map[span]Coord),
		legal:      make(map[span]bool),
	}
}

func (b *fakeBoard) put(x, y int, kind PieceKind, color Color) *fakeBoard {
	b.pieces[Coord{x, y}] = Piece{Kind: kind, Color: color}
	return b
}

func (b *fakeBoard) PieceAt(c Coord) (Piece, bool) {
	p, ok := b.pieces[c]
	return p, ok
}

func (b *fakeBoard) Occupied() []Placement {
	out := make([]Placement, 0, len(b.pieces))
	for c, p := range b.pieces {
		out = append(out, Placement{Piece: p, At: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].At.Y != out[j].At.Y {
			return out[i].At.Y < out[j].At.Y
		}
		return out[i].At.X < out[j].At.X
	})
	return out
}

func (b *fakeBoard) EnPassant(from, to Coord) (Coord, bool) {
	c, ok := b.enPassant[span{from, to}]
	return c, ok
}

func (b *fakeBoard) Promotion(from, to Coord) bool { return b.promotions[span{from, to}] }

func (b *fakeBoard) Castling(from, to Coord) (Coord, bool) {
	c, ok := b.castles[span{from, to}]
	return c, ok
}

func (b *fakeBoard) Legal(from, to Coord) bool { return b.legal[span{from, to}] }

func (b *fakeBoard) Apply(from, to Coord) error {
	if b.failApply {
		return errors.New("apply refused")
	}
	b.applied = append(b.applied, span{from, to})
	if victim, ok := b.enPassant[span{from, to}]; ok {
		delete(b.pieces, victim)
	}
	if rook, ok := b.castles[span{from, to}]; ok {
		target := Coord{X: 5, Y: rook.Y}
		if rook.X == 0 {
			target.X = 3
		}
		b.pieces[target] = b.pieces[rook]
		delete(b.pieces, rook)
	}
	b.pieces[to] = b.pieces[from]
	delete(b.pieces, from)
	return nil
}

func (b *fakeBoard) Promote(from, to Coord, kind PieceKind, color Color) error {
	p := Piece{Kind: kind, Color: color}
	b.promoted = append(b.promoted, p)
	b.pieces[to] = p
	delete(b.pieces, from)
	return nil
}

func (b *fakeBoard) MarkMoved(c Coord) {
	p := b.pieces[c]
	p.Moved = true
	b.pieces[c] = p
}

// view records notifications and answers promotion prompts with a fixed kind
type view struct {
	Recorder
	answer  PieceKind
	prompts [][]PieceChoice
}

func (v *view) Choose(title, message string, options []PieceChoice) PieceChoice {
	v.prompts = append(v.prompts, options)
	return PieceChoice{Kind: v.answer}
}
