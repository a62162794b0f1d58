package engine

import (
	"chessgate/internal/logging"
)

const (
	promotionTitle   = "Pawn promotion"
	promotionMessage = "Your pawn can be promoted, which piece should it become?"
)

// step is one pending display notification
type step struct {
	op    Op
	kind  PieceKind
	color Color
	at    Coord
}

// plan is the full effect set of an attempt, computed before anything is touched
type plan struct {
	result Result
	commit func() error
	marks  []Coord
	steps  []step
}

func (p *plan) relocate(piece Piece, from, to Coord) {
	p.steps = append(p.steps,
		step{op: OpRemove, at: from},
		step{op: OpPlace, kind: piece.Kind, color: piece.Color, at: to},
	)
}

// resolver runs a single move attempt against a board and two players
type resolver struct {
	board   Board
	gate    turnGate
	display Display
}

// resolve classifies the move and commits it when legal. A false result leaves
// the board, the turn flags and the display untouched.
func (r resolver) resolve(from, to Coord, chooser Chooser) (Result, bool) {
	if !from.Valid() || !to.Valid() {
		return Result{}, false
	}
	piece, ok := r.board.PieceAt(from)
	if !ok {
		return Result{}, false
	}
	if !r.gate.allowed(piece) {
		logging.Debugf("rejected %s%s: %s piece on %s's turn", from, to, piece.Color, r.gate.mover())
		return Result{}, false
	}

	p, ok := r.classify(piece, from, to, chooser)
	if !ok {
		logging.Debugf("rejected %s%s: illegal %s move", from, to, piece.Kind)
		return Result{}, false
	}
	if err := p.commit(); err != nil {
		logging.Debugf("rejected %s%s: board refused commit: %v", from, to, err)
		return Result{}, false
	}

	r.gate.flip()
	for _, c := range p.marks {
		r.board.MarkMoved(c)
	}
	for _, s := range p.steps {
		switch s.op {
		case OpRemove:
			r.display.RemovePiece(s.at.X, s.at.Y)
		case OpPlace:
			r.display.PutPiece(s.kind, s.color, s.at.X, s.at.Y)
		}
	}
	logging.Debugf("committed %s %s", p.result.Kind, p.result.UCI())
	return p.result, true
}

func (r resolver) classify(piece Piece, from, to Coord, chooser Chooser) (*plan, bool) {
	switch piece.Kind {
	case Pawn:
		if captured, ok := r.board.EnPassant(from, to); ok {
			return r.enPassant(piece, from, to, captured), true
		}
		if r.board.Promotion(from, to) {
			return r.promotion(piece, from, to, chooser)
		}
	case King:
		if rook, ok := r.board.Castling(from, to); ok {
			return r.castling(piece, from, to, rook)
		}
	}
	return r.ordinary(piece, from, to)
}

func (r resolver) enPassant(piece Piece, from, to, captured Coord) *plan {
	p := &plan{
		result: Result{Kind: EnPassant, Piece: piece.Kind, Color: piece.Color, From: from, To: to, Captured: &captured},
		commit: func() error { return r.board.Apply(from, to) },
		marks:  []Coord{to},
	}
	p.steps = append(p.steps, step{op: OpRemove, at: captured})
	p.relocate(piece, from, to)
	return p
}

func (r resolver) promotion(piece Piece, from, to Coord, chooser Chooser) (*plan, bool) {
	if chooser == nil {
		return nil, false
	}
	options := PromotionChoices()
	choice := chooser.Choose(promotionTitle, promotionMessage, options)
	if !offered(choice, options) {
		return nil, false
	}
	color := r.gate.mover()
	p := &plan{
		result: Result{Kind: Promotion, Piece: piece.Kind, Color: color, From: from, To: to, Promotion: choice.Kind},
		commit: func() error { return r.board.Promote(from, to, choice.Kind, color) },
	}
	p.steps = append(p.steps,
		step{op: OpPlace, kind: choice.Kind, color: color, at: to},
		step{op: OpRemove, at: from},
	)
	return p, true
}

func (r resolver) castling(king Piece, from, to, rookAt Coord) (*plan, bool) {
	rook, ok := r.board.PieceAt(rookAt)
	if !ok {
		return nil, false
	}
	target := Coord{X: 5, Y: 7}
	if rookAt.X == 0 {
		target.X = 3
	}
	if rookAt.Y == 0 {
		target.Y = 0
	}
	p := &plan{
		result: Result{Kind: Castling, Piece: king.Kind, Color: king.Color, From: from, To: to, RookFrom: rookAt, RookTo: target},
		commit: func() error { return r.board.Apply(from, to) },
	}
	p.relocate(rook, rookAt, target)
	p.relocate(king, from, to)
	return p, true
}

func (r resolver) ordinary(piece Piece, from, to Coord) (*plan, bool) {
	if !r.board.Legal(from, to) {
		return nil, false
	}
	p := &plan{
		result: Result{Kind: Ordinary, Piece: piece.Kind, Color: piece.Color, From: from, To: to},
		commit: func() error { return r.board.Apply(from, to) },
		marks:  []Coord{to},
	}
	p.relocate(piece, from, to)
	return p, true
}

func offered(choice PieceChoice, options []PieceChoice) bool {
	for _, o := range options {
		if o == choice {
			return true
		}
	}
	return false
}
