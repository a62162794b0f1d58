package engine

// Player holds a fixed color and whether it is currently that player's move
type Player struct {
	color Color
	turn  bool
}

// NewPlayer creates a player record
func NewPlayer(color Color, turn bool) *Player {
	return &Player{color: color, turn: turn}
}

func (p *Player) Color() Color { return p.color }

func (p *Player) IsTurn() bool { return p.turn }

// ChangeTurn flips the turn flag
func (p *Player) ChangeTurn() { p.turn = !p.turn }
