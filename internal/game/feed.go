package game

import (
	"chessgate/internal/engine"
)

// Feed is the display surface of a hosted game. It buffers notifications until
// the owning Game broadcasts them, and promotes to a queen when no explicit
// choice accompanies a move.
type Feed struct {
	engine.Recorder
}

func (f *Feed) Choose(_, _ string, _ []engine.PieceChoice) engine.PieceChoice {
	return engine.PieceChoice{Kind: engine.Queen}
}

func eventInfos(ns []engine.Notification) []EventInfo {
	out := make([]EventInfo, 0, len(ns))
	for _, n := range ns {
		e := EventInfo{Op: string(n.Op), X: n.X, Y: n.Y}
		if n.Op == engine.OpPlace {
			e.Piece = n.Kind.String()
			e.Color = n.Color.String()
		}
		out = append(out, e)
	}
	return out
}

func moveInfo(r engine.Result) *MoveInfo {
	m := &MoveInfo{
		UCI:   r.UCI(),
		Kind:  r.Kind.String(),
		Piece: r.Piece.String(),
		Color: r.Color.String(),
	}
	if r.Kind == engine.Promotion {
		m.Promotion = r.Promotion.String()
	}
	if r.Captured != nil {
		m.Captured = r.Captured.String()
	}
	return m
}
