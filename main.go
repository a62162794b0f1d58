package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"chessgate/internal/game"
	"chessgate/internal/handlers"
	"chessgate/internal/logging"
	"chessgate/internal/storage"
	"chessgate/internal/templates"
	"chessgate/internal/terminal"
)

func main() {
	debug := flag.Bool("debug", false, "enable debug logging")
	addr := flag.String("addr", ":8080", "listen address")
	dsn := flag.String("dsn", os.Getenv("DATABASE_URL"), "postgres:// URL or sqlite file path; empty disables persistence")
	term := flag.Bool("term", false, "play a local game in this terminal instead of serving")
	flag.Parse()
	logging.Debug = *debug

	if *term {
		if err := terminal.Run(); err != nil {
			log.Fatal(err)
		}
		return
	}

	templates.SetCommit(commit)

	var store *storage.Store
	if *dsn != "" {
		db, err := storage.Open(*dsn)
		if err != nil {
			log.Fatalf("storage: %v", err)
		}
		store = storage.NewStore(db)
		defer store.Close()
		log.Printf("persisting games")
	}

	// Initialize game hub
	hub := game.NewHub(store)

	h := handlers.NewHandler(hub)
	h.Version = versionString()

	srv := &http.Server{
		Addr:              *addr,
		Handler:           handlers.Recover(handlers.Logging(h.Routes())),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdown)
	}()

	log.Printf("chessgate %s listening on %s", versionString(), *addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
}
