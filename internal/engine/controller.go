// Package engine resolves proposed moves, enforces turn order and reports the
// resulting piece placements to a display.
//
// A Controller is not safe for concurrent use. Hosts that share one between
// goroutines must serialize whole move attempts.
package engine

// Controller is the surface exposed to a host: start a session, attempt moves
// and reset to a new game.
type Controller struct {
	newBoard func() Board
	board    Board
	first    *Player
	second   *Player
	view     View
}

// New creates a controller whose boards come from newBoard. Light opens every game.
func New(newBoard func() Board) *Controller {
	return &Controller{
		newBoard: newBoard,
		board:    newBoard(),
		first:    NewPlayer(Light, true),
		second:   NewPlayer(Dark, false),
	}
}

// Start binds the view and sends it every piece currently on the board
func (c *Controller) Start(view View) {
	c.view = view
	d := c.display()
	for _, pl := range c.board.Occupied() {
		d.PutPiece(pl.Piece.Kind, pl.Piece.Color, pl.At.X, pl.At.Y)
	}
}

// Move attempts to move the piece at (fromX, fromY) to (toX, toY). Promotion
// choices are asked of the bound view.
func (c *Controller) Move(fromX, fromY, toX, toY int) bool {
	var chooser Chooser
	if c.view != nil {
		chooser = c.view
	}
	_, ok := c.Attempt(Coord{X: fromX, Y: fromY}, Coord{X: toX, Y: toY}, chooser)
	return ok
}

// Attempt is Move with an explicit promotion chooser and a description of the
// committed move.
func (c *Controller) Attempt(from, to Coord, chooser Chooser) (Result, bool) {
	r := resolver{
		board:   c.board,
		gate:    turnGate{first: c.first, second: c.second},
		display: c.display(),
	}
	return r.resolve(from, to, chooser)
}

// NewGame replaces the board, gives the turn back to the first player and
// re-syncs the view
func (c *Controller) NewGame() {
	c.board = c.newBoard()
	if c.second.IsTurn() {
		c.second.ChangeTurn()
		c.first.ChangeTurn()
	}
	c.Start(c.view)
}

// Load replaces the board with a prepared position where turn is to move and
// re-syncs the view
func (c *Controller) Load(board Board, turn Color) {
	c.board = board
	if c.Turn() != turn {
		c.first.ChangeTurn()
		c.second.ChangeTurn()
	}
	c.Start(c.view)
}

// Turn returns the color of the player to move
func (c *Controller) Turn() Color {
	return turnGate{first: c.first, second: c.second}.mover()
}

func (c *Controller) Board() Board { return c.board }

func (c *Controller) display() Display {
	if c.view == nil {
		return discard{}
	}
	return c.view
}
