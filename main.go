package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/FahryJean/Mapso/backend"
	"github.com/FahryJean/Mapso/cliparse"
	"github.com/FahryJean/Mapso/db"
	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/router"
	"github.com/FahryJean/Mapso/rpc"
	"github.com/FahryJean/Mapso/worldstate"
)

func main() {
	// Load .env if present; real env variables win
	if err := godotenv.Load(); err == nil {
		slog.Info("loaded .env file")
	}

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Fail fast on a broken world state document
	if _, err := (worldstate.Loader{Path: cfg.StateFile}).Load(); err != nil {
		slog.Error("world state document unusable", "path", cfg.StateFile, "error", err)
		os.Exit(1)
	}

	// Pick the game backend: embedded over a database, or a remote one
	var svc rpc.Service
	if cfg.Embedded() {
		conn, err := db.Open(db.Dialect(cfg.DatabaseType), cfg.DatabaseURL)
		if err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		defer conn.Close()

		if err := db.CreateSchema(conn); err != nil {
			slog.Error("schema creation failed", "error", err)
			os.Exit(1)
		}
		slog.Info("Database schema ready")

		embedded := backend.New(conn, db.Dialect(cfg.DatabaseType), cfg.Passcode,
			backend.WithTurnLength(time.Duration(cfg.TurnHours)*time.Hour))
		if err := embedded.EnsureSeeded(context.Background()); err != nil {
			slog.Error("backend seeding failed", "error", err)
			os.Exit(1)
		}
		svc = embedded
		slog.Info("Running embedded backend")
	} else {
		svc = rpc.NewClient(cfg.BackendURL)
		slog.Info("Using remote backend", "url", cfg.BackendURL)
	}

	// Create router
	mux := router.NewRouter(svc, cfg)

	// Create server
	server := http.Server{
		Handler: middleware.CORS(mux),
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
