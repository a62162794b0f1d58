package game

import (
	"errors"
	"sync"
	"time"

	"chessgate/internal/board"
	"chessgate/internal/engine"
	"chessgate/internal/storage"
)

var (
	ErrIllegalMove   = errors.New("illegal move")
	ErrNotYourPiece  = errors.New("wrong color")
	ErrNotYourTurn   = errors.New("not your turn")
	ErrUnknownClient = errors.New("unknown client")
	ErrNotOwner      = errors.New("only the owner can release seats")
	ErrBadPromotion  = errors.New("bad promotion piece")
)

// Hub manages all active chess games
type Hub struct {
	Mu    sync.Mutex
	Games map[string]*Game
	Store *storage.Store // nil when persistence is disabled
}

// Game represents a single chess game with its state and watchers.
// Mu is held for the whole of a move attempt.
type Game struct {
	Mu         sync.Mutex
	ID         string
	ctl        *engine.Controller
	feed       *Feed
	store      *storage.Store
	Watchers   map[chan []byte]struct{}
	LastReact  map[string]time.Time
	LastSeen   time.Time
	OwnerID    string
	OwnerColor engine.Color
	Clients    map[string]engine.Color // clientId -> color
}

// MoveRequest represents a move request from a client
type MoveRequest struct {
	From      string `json:"from" validate:"required,len=2"`
	To        string `json:"to" validate:"required,len=2"`
	Promotion string `json:"promotion,omitempty" validate:"omitempty,oneof=q r b n"`
	ClientID  string `json:"clientId" validate:"required,max=64"`
}

// ReactionRequest represents a reaction request from a client
type ReactionRequest struct {
	Emoji  string `json:"emoji" validate:"required,max=16"`
	Sender string `json:"sender" validate:"required,max=64"`
}

// ReleaseRequest asks the owner to free another client's seat
type ReleaseRequest struct {
	ClientID string `json:"clientId" validate:"required"`
	TargetID string `json:"targetId" validate:"required"`
}

// GameState represents the current state of a game
type GameState struct {
	Kind     string   `json:"kind"`
	FEN      string   `json:"fen"`
	Turn     string   `json:"turn"`
	Status   string   `json:"status"`
	PGN      string   `json:"pgn"`
	UCI      []string `json:"uci"`
	LastSeen int64    `json:"lastSeen"`
	Watchers int      `json:"watchers"`
}

// ClientState represents the state sent to a specific client, including their color
type ClientState struct {
	GameState
	Color    *string `json:"color"`
	Role     string  `json:"role"`
	ClientID string  `json:"clientId"`
}

// MoveInfo describes a committed move
type MoveInfo struct {
	UCI       string `json:"uci"`
	Kind      string `json:"kind"`
	Piece     string `json:"piece"`
	Color     string `json:"color"`
	Promotion string `json:"promotion,omitempty"`
	Captured  string `json:"captured,omitempty"`
}

// UpdatePayload carries the display notifications produced by one move or reset
type UpdatePayload struct {
	Kind   string      `json:"kind"`
	Events []EventInfo `json:"events"`
	Move   *MoveInfo   `json:"move,omitempty"`
}

// EventInfo is a display notification in wire form
type EventInfo struct {
	Op    string `json:"op"`
	Piece string `json:"piece,omitempty"`
	Color string `json:"color,omitempty"`
	X     int    `json:"x"`
	Y     int    `json:"y"`
}

// ReactionPayload represents a reaction broadcast
type ReactionPayload struct {
	Kind   string `json:"kind"`
	Emoji  string `json:"emoji"`
	At     int64  `json:"at"`
	Sender string `json:"sender"`
}

func newGame(id string, store *storage.Store) *Game {
	feed := &Feed{}
	ctl := engine.New(func() engine.Board { return board.New() })
	ctl.Start(feed)
	feed.Drain()
	return &Game{
		ID:        id,
		ctl:       ctl,
		feed:      feed,
		store:     store,
		Watchers:  make(map[chan []byte]struct{}),
		LastReact: make(map[string]time.Time),
		Clients:   make(map[string]engine.Color),
		LastSeen:  time.Now(),
	}
}
