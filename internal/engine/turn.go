package engine

// turnGate decides whether a piece may be moved by the player whose turn it is.
// first is the player who opens every game.
type turnGate struct {
	first, second *Player
}

// allowed reports whether piece belongs to the player holding the turn
func (g turnGate) allowed(piece Piece) bool {
	if g.first.IsTurn() {
		return piece.Color == g.first.Color()
	}
	return piece.Color != g.first.Color()
}

// mover returns the color of the player holding the turn
func (g turnGate) mover() Color {
	if g.first.IsTurn() {
		return g.first.Color()
	}
	return g.second.Color()
}

func (g turnGate) flip() {
	g.first.ChangeTurn()
	g.second.ChangeTurn()
}
