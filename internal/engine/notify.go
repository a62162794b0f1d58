package engine

// Op is a display operation
type Op string

const (
	OpPlace  Op = "place"
	OpRemove Op = "remove"
)

// Notification is one display event, Kind and Color are unset for removals
type Notification struct {
	Op    Op
	Kind  PieceKind
	Color Color
	X, Y  int
}

// Recorder is a Display that keeps every notification in order
type Recorder struct {
	Events []Notification
}

func (r *Recorder) PutPiece(kind PieceKind, color Color, x, y int) {
	r.Events = append(r.Events, Notification{Op: OpPlace, Kind: kind, Color: color, X: x, Y: y})
}

func (r *Recorder) RemovePiece(x, y int) {
	r.Events = append(r.Events, Notification{Op: OpRemove, X: x, Y: y})
}

// Drain returns the recorded events and clears the buffer
func (r *Recorder) Drain() []Notification {
	out := r.Events
	r.Events = nil
	return out
}

type discard struct{}

func (discard) PutPiece(PieceKind, Color, int, int) {}
func (discard) RemovePiece(int, int)                {}
