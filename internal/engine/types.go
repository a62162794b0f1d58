package engine

import (
	"fmt"
	"strings"
)

// Color identifies the owner of a piece or player
type Color int

const (
	Light Color = iota
	Dark
)

// Opposite returns the other color
func (c Color) Opposite() Color {
	if c == Light {
		return Dark
	}
	return Light
}

func (c Color) String() string {
	if c == Light {
		return "light"
	}
	return "dark"
}

// PieceKind is the role of a piece on the board
type PieceKind int

const (
	Pawn PieceKind = iota
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindNames = [...]string{"pawn", "knight", "bishop", "rook", "queen", "king"}

func (k PieceKind) String() string {
	if k < Pawn || k > King {
		return "unknown"
	}
	return kindNames[k]
}

// Letter returns the lowercase UCI letter for the kind
func (k PieceKind) Letter() string {
	switch k {
	case Pawn:
		return "p"
	case Knight:
		return "n"
	case Bishop:
		return "b"
	case Rook:
		return "r"
	case Queen:
		return "q"
	case King:
		return "k"
	}
	return ""
}

// ParsePieceKind accepts a UCI letter or a full kind name
func ParsePieceKind(s string) (PieceKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for k := Pawn; k <= King; k++ {
		if s == k.Letter() || s == k.String() {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown piece kind %q", s)
}

// Coord is a square position, X is the file and Y the rank, both in [0,7]
type Coord struct {
	X, Y int
}

// Valid reports whether the coordinate lies on the board
func (c Coord) Valid() bool {
	return c.X >= 0 && c.X < 8 && c.Y >= 0 && c.Y < 8
}

func (c Coord) String() string {
	if !c.Valid() {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+c.X, '1'+c.Y)
}

// ParseCoord parses an algebraic square such as "e2"
func ParseCoord(s string) (Coord, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if len(s) != 2 || s[0] < 'a' || s[0] > 'h' || s[1] < '1' || s[1] > '8' {
		return Coord{}, fmt.Errorf("invalid square %q", s)
	}
	return Coord{X: int(s[0] - 'a'), Y: int(s[1] - '1')}, nil
}

// Piece is the occupant of a square
type Piece struct {
	Kind  PieceKind
	Color Color
	Moved bool
}

// Placement pairs a piece with the square it occupies
type Placement struct {
	Piece Piece
	At    Coord
}

// PieceChoice carries the user's promotion selection
type PieceChoice struct {
	Kind PieceKind
}

func (c PieceChoice) String() string { return c.Kind.String() }

// PromotionChoices returns the four kinds a pawn may promote to
func PromotionChoices() []PieceChoice {
	return []PieceChoice{{Bishop}, {Knight}, {Queen}, {Rook}}
}

// MoveKind classifies a committed move
type MoveKind int

const (
	Ordinary MoveKind = iota
	EnPassant
	Promotion
	Castling
)

func (k MoveKind) String() string {
	switch k {
	case EnPassant:
		return "en-passant"
	case Promotion:
		return "promotion"
	case Castling:
		return "castling"
	default:
		return "ordinary"
	}
}

// Result describes a move that was committed
type Result struct {
	Kind      MoveKind
	Piece     PieceKind
	Color     Color
	From      Coord
	To        Coord
	Captured  *Coord    // en passant victim square
	Promotion PieceKind // only meaningful for Promotion
	RookFrom  Coord     // only meaningful for Castling
	RookTo    Coord
}

// UCI renders the move in UCI notation
func (r Result) UCI() string {
	s := r.From.String() + r.To.String()
	if r.Kind == Promotion {
		s += r.Promotion.Letter()
	}
	return s
}
