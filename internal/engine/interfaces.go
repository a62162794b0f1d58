package engine

// Board owns the grid and answers classification and legality queries.
// Classifications are only affirmative for moves that are genuinely legal.
type Board interface {
	PieceAt(c Coord) (Piece, bool)
	Occupied() []Placement

	// EnPassant returns the square of the pawn captured by an en passant move.
	EnPassant(from, to Coord) (Coord, bool)
	Promotion(from, to Coord) bool
	// Castling returns the current square of the companion rook.
	Castling(from, to Coord) (Coord, bool)
	Legal(from, to Coord) bool

	// Apply commits an ordinary, en passant or castling move.
	Apply(from, to Coord) error
	Promote(from, to Coord, kind PieceKind, color Color) error
	MarkMoved(c Coord)
}

// Display receives placement and removal notifications
type Display interface {
	PutPiece(kind PieceKind, color Color, x, y int)
	RemovePiece(x, y int)
}

// Chooser blocks until the user picks one of the offered options
type Chooser interface {
	Choose(title, message string, options []PieceChoice) PieceChoice
}

// View is the full interaction surface bound at session start
type View interface {
	Display
	Chooser
}

// ChooserFunc adapts a function to the Chooser interface
type ChooserFunc func(title, message string, options []PieceChoice) PieceChoice

func (f ChooserFunc) Choose(title, message string, options []PieceChoice) PieceChoice {
	return f(title, message, options)
}

// Fixed returns a chooser that always answers kind
func Fixed(kind PieceKind) Chooser {
	return ChooserFunc(func(string, string, []PieceChoice) PieceChoice {
		return PieceChoice{Kind: kind}
	})
}
