package templates

import (
	"embed"
	"html/template"
	"net/http"

	"chessgate/internal/logging"
	"chessgate/internal/storage"
)

//go:embed *.html
var files embed.FS

var pages = template.Must(template.ParseFS(files, "*.html"))

var commit = "dev"

// SetCommit sets the build revision shown in page footers
func SetCommit(c string) {
	if c != "" {
		commit = c
	}
}

type homeData struct {
	Commit string
	Stats  storage.Stats
}

type gameData struct {
	Commit string
	GameID string
}

// WriteHomeHTML serves the home page template
func WriteHomeHTML(w http.ResponseWriter, stats storage.Stats) {
	render(w, "home.html", homeData{Commit: commit, Stats: stats})
}

// WriteGameHTML serves the game page for gameID
func WriteGameHTML(w http.ResponseWriter, gameID string) {
	render(w, "game.html", gameData{Commit: commit, GameID: gameID})
}

func render(w http.ResponseWriter, name string, data any) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := pages.ExecuteTemplate(w, name, data); err != nil {
		logging.Debugf("render %s: %v", name, err)
	}
}
