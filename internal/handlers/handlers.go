package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"chessgate/internal/engine"
	"chessgate/internal/game"
	"chessgate/internal/logging"
	"chessgate/internal/templates"
	"chessgate/pkg/utils"
)

// Handler contains dependencies for HTTP handlers
type Handler struct {
	Hub     *game.Hub
	Version string
}

// NewHandler creates a new handler instance
func NewHandler(hub *game.Hub) *Handler {
	return &Handler{Hub: hub}
}

// Routes registers every endpoint on a new mux
func (h *Handler) Routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/new", h.HandleNew)
	mux.HandleFunc("/healthz", h.HandleHealth)
	mux.HandleFunc("/sse/", h.HandleSSE)
	mux.HandleFunc("/move/", h.HandleMove)
	mux.HandleFunc("/react/", h.HandleReact)
	mux.HandleFunc("/reset/", h.HandleReset)
	mux.HandleFunc("/release/", h.HandleRelease)
	mux.HandleFunc("/", h.HandlePage)
	return mux
}

// HandleNew creates a new game and redirects to it
func (h *Handler) HandleNew(w http.ResponseWriter, r *http.Request) {
	id := uuid.NewString()
	http.Redirect(w, r, "/"+id, http.StatusFound)
}

// HandlePage serves the home page or game page
func (h *Handler) HandlePage(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	if path == "" || path == "index.html" {
		stats, err := h.Hub.Store.FetchStats(r.Context())
		if err != nil {
			logging.Debugf("fetch stats: %v", err)
		}
		templates.WriteHomeHTML(w, stats)
		return
	}
	if strings.Contains(path, "/") {
		http.NotFound(w, r)
		return
	}
	h.Hub.Get(path, "")
	templates.WriteGameHTML(w, path)
}

// HandleSSE handles Server-Sent Events for real-time game updates
func (h *Handler) HandleSSE(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/sse/")
	clientID := strings.TrimSpace(r.URL.Query().Get("clientId"))
	if clientID == "" {
		clientID = utils.NewClientID()
	}
	g, color := h.Hub.Get(id, clientID)

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	ch := make(chan []byte, 16)
	g.AddWatcher(ch)
	defer g.RemoveWatcher(ch)

	g.Mu.Lock()
	cs := game.ClientState{GameState: g.StateLocked(), ClientID: clientID, Role: "spectator"}
	g.Mu.Unlock()
	if color != nil {
		name := color.String()
		cs.Color = &name
		cs.Role = "player"
	}
	initial, _ := json.Marshal(cs)
	sync, _ := json.Marshal(g.Snapshot())

	_, _ = fmt.Fprintf(w, "data: %s\n\n", initial)
	_, _ = fmt.Fprintf(w, "data: %s\n\n", sync)
	flusher.Flush()

	g.Touch()

	ticker := time.NewTicker(15 * time.Second)
	defer ticker.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// heartbeat
			_, _ = w.Write([]byte("data: {}\n\n"))
			flusher.Flush()
		case msg := <-ch:
			_, _ = w.Write([]byte("data: "))
			_, _ = w.Write(msg)
			_, _ = w.Write([]byte("\n\n"))
			flusher.Flush()
		}
	}
}

// HandleMove validates and plays a move for a seated client
func (h *Handler) HandleMove(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		WriteJSON(w, http.StatusMethodNotAllowed, map[string]any{"ok": false, "error": "method not allowed"})
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/move/")

	var m game.MoveRequest
	if err := decode(r, &m); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	from, err := engine.ParseCoord(m.From)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	to, err := engine.ParseCoord(m.To)
	if err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	g, _ := h.Hub.Get(id, "")
	g.Touch()

	update, err := g.Play(strings.TrimSpace(m.ClientID), from, to, m.Promotion)
	if err != nil {
		logging.Debugf("move %s%s in %s rejected: %v", m.From, m.To, id, err)
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": err.Error(), "state": state(g)})
		return
	}

	g.BroadcastUpdate(update)
	g.Broadcast()

	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": state(g), "move": update.Move})
}

// HandleReact processes a reaction/emoji
func (h *Handler) HandleReact(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/react/")

	var body game.ReactionRequest
	if err := decode(r, &body); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	if !isAllowedEmoji(body.Emoji) {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": "unsupported emoji"})
		return
	}

	g, _ := h.Hub.Get(id, "")
	canReact, wait := g.CanReact(body.Sender)
	if !canReact {
		WriteJSON(w, http.StatusOK, map[string]any{"ok": false, "error": fmt.Sprintf("cooldown %ds", wait)})
		return
	}

	g.BroadcastReaction(game.ReactionPayload{
		Kind:   "emoji",
		Emoji:  body.Emoji,
		At:     time.Now().UnixMilli(),
		Sender: body.Sender,
	})
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleReset resets a game to the starting position
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/reset/")
	g, _ := h.Hub.Get(id, "")

	update := g.Reset()
	g.BroadcastUpdate(update)
	g.Broadcast()

	WriteJSON(w, http.StatusOK, map[string]any{"ok": true, "state": state(g)})
}

// HandleRelease lets the owner of a game free another client's seat
func (h *Handler) HandleRelease(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/release/")

	var body game.ReleaseRequest
	if err := decode(r, &body); err != nil {
		WriteJSON(w, http.StatusBadRequest, map[string]any{"ok": false, "error": err.Error()})
		return
	}

	g, _ := h.Hub.Get(id, "")
	if err := g.Release(body.ClientID, body.TargetID); err != nil {
		status := http.StatusOK
		if errors.Is(err, game.ErrNotOwner) {
			status = http.StatusForbidden
		}
		WriteJSON(w, status, map[string]any{"ok": false, "error": err.Error()})
		return
	}
	g.Broadcast()
	WriteJSON(w, http.StatusOK, map[string]any{"ok": true})
}

// HandleHealth reports whether the server and its database are reachable
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	h.Hub.Mu.Lock()
	games := len(h.Hub.Games)
	h.Hub.Mu.Unlock()

	body := map[string]any{"ok": true, "version": h.Version, "games": games}
	if err := h.Hub.Store.Healthy(ctx); err != nil {
		body["ok"] = false
		body["error"] = err.Error()
		WriteJSON(w, http.StatusServiceUnavailable, body)
		return
	}
	WriteJSON(w, http.StatusOK, body)
}

func state(g *game.Game) game.GameState {
	g.Mu.Lock()
	defer g.Mu.Unlock()
	return g.StateLocked()
}

// ClientIP extracts the client IP from the request
func ClientIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		return strings.TrimSpace(parts[0])
	}
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
