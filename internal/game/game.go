package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"chessgate/internal/engine"
	"chessgate/internal/logging"
	"chessgate/internal/storage"
)

// record is the part of the board the game reports to clients
type record interface {
	FEN() string
	PGN() string
	Outcome() string
	MovesUCI() []string
}

// Touch updates the last seen timestamp for a game
func (g *Game) Touch() {
	g.Mu.Lock()
	g.LastSeen = time.Now()
	g.Mu.Unlock()
}

// StoreID maps the game id onto the uuid used for persistence
func (g *Game) StoreID() uuid.UUID {
	if id, err := uuid.Parse(g.ID); err == nil {
		return id
	}
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(g.ID))
}

// StateLocked returns the current game state (must be called with lock held)
func (g *Game) StateLocked() GameState {
	state := GameState{
		Kind:     "state",
		Turn:     g.ctl.Turn().String(),
		LastSeen: g.LastSeen.UnixMilli(),
		Watchers: len(g.Watchers),
	}
	if rec, ok := g.ctl.Board().(record); ok {
		state.FEN = rec.FEN()
		state.PGN = rec.PGN()
		state.Status = rec.Outcome()
		state.UCI = rec.MovesUCI()
	}
	return state
}

// TurnLocked returns the color to move (must be called with lock held)
func (g *Game) TurnLocked() engine.Color {
	return g.ctl.Turn()
}

// Play validates the client's seat and attempts the move. promo is a UCI
// letter and is only consulted when the move turns out to be a promotion; an
// empty promo promotes to a queen.
func (g *Game) Play(clientID string, from, to engine.Coord, promo string) (*UpdatePayload, error) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	color, ok := g.Clients[clientID]
	if !ok {
		return nil, ErrUnknownClient
	}
	piece, ok := g.ctl.Board().PieceAt(from)
	if !ok || piece.Color != color {
		return nil, ErrNotYourPiece
	}
	if g.ctl.Turn() != color {
		return nil, ErrNotYourTurn
	}
	chooser, err := g.chooser(promo)
	if err != nil {
		return nil, err
	}
	return g.moveLocked(from, to, chooser)
}

// chooser answers promotion prompts with promo, or with the feed's queen
// when promo is empty
func (g *Game) chooser(promo string) (engine.Chooser, error) {
	if promo == "" {
		return g.feed, nil
	}
	kind, err := engine.ParsePieceKind(promo)
	if err != nil {
		return nil, ErrBadPromotion
	}
	return engine.Fixed(kind), nil
}

func (g *Game) moveLocked(from, to engine.Coord, chooser engine.Chooser) (*UpdatePayload, error) {
	res, ok := g.ctl.Attempt(from, to, chooser)
	if !ok {
		return nil, ErrIllegalMove
	}
	g.LastSeen = time.Now()
	update := &UpdatePayload{
		Kind:   "update",
		Events: eventInfos(g.feed.Drain()),
		Move:   moveInfo(res),
	}
	g.persistMoveLocked(res)
	return update, nil
}

func (g *Game) persistMoveLocked(res engine.Result) {
	if g.store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	id := g.StoreID()
	state := g.StateLocked()
	promo := ""
	if res.Kind == engine.Promotion {
		promo = res.Promotion.Letter()
	}
	if err := g.store.RecordMove(ctx, id, len(state.UCI), res.From.String(), res.To.String(),
		res.Kind.String(), promo, res.Color.String()); err != nil {
		logging.Warnf("record move for %s: %v", g.ID, err)
	}
	upd := storageUpdate(state, g.LastSeen)
	if err := g.store.SaveGameState(ctx, id, upd); err != nil {
		logging.Warnf("save state for %s: %v", g.ID, err)
	}
}

// replayLocked plays journaled moves on the current board without persisting
// or broadcasting them. It stops at the first move that no longer applies and
// returns how many were replayed.
func (g *Game) replayLocked(moves []storage.Move) int {
	defer g.feed.Drain()
	for i, m := range moves {
		from, err := engine.ParseCoord(m.From)
		if err != nil {
			return i
		}
		to, err := engine.ParseCoord(m.To)
		if err != nil {
			return i
		}
		chooser, err := g.chooser(m.Promotion)
		if err != nil {
			return i
		}
		if _, ok := g.ctl.Attempt(from, to, chooser); !ok {
			return i
		}
	}
	return len(moves)
}

// Reset resets the game to the starting position
func (g *Game) Reset() *UpdatePayload {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	g.ctl.NewGame()
	update := &UpdatePayload{Kind: "reset", Events: eventInfos(g.feed.Drain())}
	state := g.StateLocked()
	logging.Debugf("Game reset - FEN: %s, turn: %s", state.FEN, state.Turn)

	if g.store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := g.store.ResetGame(ctx, g.StoreID(), state.FEN); err != nil {
			logging.Warnf("reset stored game %s: %v", g.ID, err)
		}
	}
	return update
}

// Snapshot returns a full placement sync for a newly connected watcher
func (g *Game) Snapshot() *UpdatePayload {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	var events []engine.Notification
	for _, pl := range g.ctl.Board().Occupied() {
		events = append(events, engine.Notification{
			Op: engine.OpPlace, Kind: pl.Piece.Kind, Color: pl.Piece.Color, X: pl.At.X, Y: pl.At.Y,
		})
	}
	return &UpdatePayload{Kind: "sync", Events: eventInfos(events)}
}

// Broadcast sends the current game state to all watchers
func (g *Game) Broadcast() {
	g.Mu.Lock()
	state := g.StateLocked()
	data, _ := json.Marshal(state)
	g.sendLocked(data)
	g.Mu.Unlock()
}

// BroadcastUpdate sends a set of placement notifications to all watchers
func (g *Game) BroadcastUpdate(update *UpdatePayload) {
	g.Mu.Lock()
	data, _ := json.Marshal(update)
	g.sendLocked(data)
	g.Mu.Unlock()
}

func (g *Game) sendLocked(data []byte) {
	for ch := range g.Watchers {
		select {
		case ch <- data:
		default:
		}
	}
}

// AddWatcher adds a new watcher channel
func (g *Game) AddWatcher(ch chan []byte) {
	g.Mu.Lock()
	g.Watchers[ch] = struct{}{}
	g.Mu.Unlock()
}

// RemoveWatcher removes a watcher channel
func (g *Game) RemoveWatcher(ch chan []byte) {
	g.Mu.Lock()
	delete(g.Watchers, ch)
	g.Mu.Unlock()
}

// RemoveClient frees the seat held by clientID
func (g *Game) RemoveClient(clientID string) {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	delete(g.Clients, clientID)
	if g.OwnerID == clientID {
		g.OwnerID = ""
	}
}

// Release frees targetID's seat on behalf of the game owner
func (g *Game) Release(ownerID, targetID string) error {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	if g.OwnerID == "" || g.OwnerID != ownerID {
		return ErrNotOwner
	}
	if _, ok := g.Clients[targetID]; !ok {
		return ErrUnknownClient
	}
	delete(g.Clients, targetID)
	if targetID == g.OwnerID {
		g.OwnerID = ""
	}
	return nil
}

// CanReact checks if a sender can send a reaction (cooldown check)
func (g *Game) CanReact(sender string) (bool, int) {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	now := time.Now()
	if t, ok := g.LastReact[sender]; ok && now.Sub(t) < 5*time.Second {
		wait := int(5 - now.Sub(t).Seconds())
		return false, wait
	}

	g.LastReact[sender] = now
	return true, 0
}

// BroadcastReaction sends a reaction to all watchers
func (g *Game) BroadcastReaction(payload ReactionPayload) {
	g.Mu.Lock()
	data, _ := json.Marshal(payload)
	g.sendLocked(data)
	g.Mu.Unlock()
}

func storageUpdate(state GameState, lastSeen time.Time) storage.GameStateUpdate {
	upd := storage.GameStateUpdate{FEN: &state.FEN, PGN: &state.PGN, LastSeen: &lastSeen}
	if state.Status != "" {
		active := false
		upd.Status = &state.Status
		upd.Active = &active
		upd.CompletedAt = &lastSeen
	}
	return upd
}
