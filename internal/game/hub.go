package game

import (
	"context"
	"errors"
	"time"

	"chessgate/internal/engine"
	"chessgate/internal/logging"
	"chessgate/internal/storage"
)

// IdleTimeout is how long a game may go unseen before the hub forgets it
const IdleTimeout = 24 * time.Hour

// NewHub creates a new game hub with cleanup goroutine. store may be nil.
func NewHub(store *storage.Store) *Hub {
	h := &Hub{Games: make(map[string]*Game), Store: store}
	// cleanup goroutine
	go func() {
		for {
			time.Sleep(5 * time.Minute)
			h.Sweep(IdleTimeout)
		}
	}()
	return h
}

// Sweep drops games idle for longer than maxIdle
func (h *Hub) Sweep(maxIdle time.Duration) {
	h.Mu.Lock()
	defer h.Mu.Unlock()
	for id, g := range h.Games {
		g.Mu.Lock()
		idle := time.Since(g.LastSeen) > maxIdle
		g.Mu.Unlock()
		if idle {
			logging.Debugf("evicting idle game %s", id)
			delete(h.Games, id)
		}
	}
}

// Get retrieves an existing game or creates a new one, and seats clientID.
// The first client owns the light pieces, the second plays dark, everyone
// else watches and gets a nil color.
func (h *Hub) Get(id, clientID string) (*Game, *engine.Color) {
	h.Mu.Lock()
	g, ok := h.Games[id]
	if !ok {
		g = newGame(id, h.Store)
		h.Games[id] = g
		h.restore(g)
	}
	h.Mu.Unlock()

	if clientID == "" {
		return g, nil
	}
	return g, g.seat(clientID)
}

// restore replays a journaled game into g, or registers g with the store
// when nothing was journaled yet
func (h *Hub) restore(g *Game) {
	if h.Store == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	saved, err := h.Store.LoadGame(ctx, g.StoreID())
	if err == nil {
		g.Mu.Lock()
		n := g.replayLocked(saved.Moves)
		state := g.StateLocked()
		g.Mu.Unlock()
		logging.Debugf("restored game %s with %d of %d moves", g.ID, n, len(saved.Moves))
		if n < len(saved.Moves) {
			// journal numbers follow the replayed position, drop the rest
			if err := h.Store.TruncateMoves(ctx, g.StoreID(), n); err != nil {
				logging.Warnf("truncate stored game %s: %v", g.ID, err)
			}
			if err := h.Store.SaveGameState(ctx, g.StoreID(), storageUpdate(state, g.LastSeen)); err != nil {
				logging.Warnf("save state for %s: %v", g.ID, err)
			}
		}
		return
	}
	if !errors.Is(err, storage.ErrNotFound) {
		logging.Warnf("load stored game %s: %v", g.ID, err)
	}
	if err := h.Store.CreateGame(ctx, g.StoreID(), g.ID, g.LastSeen); err != nil {
		logging.Warnf("create stored game %s: %v", g.ID, err)
	}
}

func (g *Game) seat(clientID string) *engine.Color {
	g.Mu.Lock()
	defer g.Mu.Unlock()

	if c, ok := g.Clients[clientID]; ok {
		return &c
	}
	var c engine.Color
	switch {
	case g.OwnerID == "" && len(g.Clients) == 0:
		g.OwnerID = clientID
		g.OwnerColor = engine.Light
		c = g.OwnerColor
	case len(g.Clients) == 1:
		for _, taken := range g.Clients {
			c = taken.Opposite()
		}
		if g.OwnerID == "" {
			g.OwnerID = clientID
			g.OwnerColor = c
		}
	default:
		return nil
	}
	g.Clients[clientID] = c
	return &c
}
