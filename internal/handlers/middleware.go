package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"runtime/debug"
	"time"

	"chessgate/internal/logging"
)

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

var allowedEmoji = map[string]struct{}{
	"👍": {}, "👎": {}, "❤️": {}, "😠": {}, "😢": {}, "🎉": {}, "👏": {},
	"😂": {}, "🤔": {}, "😎": {}, "🙃": {}, "😴": {}, "🤯": {}, "🤡": {},
	"♟️": {}, "♞": {}, "♝": {}, "♜": {}, "♛": {}, "♚": {}, "⏱️": {}, "🏳️": {}, "🏆": {},
	"🔥": {}, "💀": {}, "⚡": {}, "🚀": {}, "🎯": {}, "💥": {}, "🧠": {},
	"🍿": {}, "☕": {}, "🐢": {}, "🐇": {}, "🤝": {},
}

// isAllowedEmoji checks if an emoji is in the allowed list
func isAllowedEmoji(emoji string) bool {
	_, ok := allowedEmoji[emoji]
	return ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

// Flush keeps SSE streaming working through the wrapper
func (s *statusRecorder) Flush() {
	if f, ok := s.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

// Logging logs each request when debug logging is on
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !logging.Debug {
			next.ServeHTTP(w, r)
			return
		}
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logging.Debugf("%s %s %d %s from %s", r.Method, r.URL.Path, rec.status, time.Since(start).Round(time.Millisecond), ClientIP(r))
	})
}

// Recover turns a panicking handler into a 500
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				if v == http.ErrAbortHandler {
					panic(v)
				}
				log.Printf("panic serving %s: %v\n%s", r.URL.Path, v, debug.Stack())
				WriteJSON(w, http.StatusInternalServerError, map[string]any{"ok": false, "error": "internal error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
