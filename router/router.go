// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/FahryJean/Mapso/backend"
	"github.com/FahryJean/Mapso/cliparse"
	"github.com/FahryJean/Mapso/handlers"
	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/rpc"
	"github.com/FahryJean/Mapso/worldstate"
)

func NewRouter(svc rpc.Service, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	loader := worldstate.Loader{Path: cfg.StateFile}

	// Initialize handlers
	statusHandler := handlers.NewStatusHandler(svc)
	ordersHandler := handlers.NewOrdersHandler(svc)
	adminHandler := handlers.NewAdminHandler(svc)
	worldHandler := handlers.NewWorldHandler(loader)
	skirmishHandler := handlers.NewSkirmishHandler(loader)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Turn status and reference data (public)
	mux.HandleFunc("GET /api/turn-status", middleware.WithLogging(statusHandler.GetTurnStatus))
	mux.HandleFunc("GET /api/factions", middleware.WithLogging(statusHandler.ListFactions))
	mux.HandleFunc("GET /api/turn-log", middleware.WithLogging(statusHandler.GetTurnLog))

	// Submission form (shared passcode in the body)
	mux.HandleFunc("POST /api/orders", middleware.WithLogging(ordersHandler.SubmitOrders))
	mux.HandleFunc("POST /api/orders/preview", middleware.WithLogging(ordersHandler.PreviewOrders))

	// Admin console (requires X-Admin-Passcode)
	mux.HandleFunc("GET /api/admin/submissions", middleware.WithLogging(adminHandler.ListSubmissions))
	mux.HandleFunc("GET /api/admin/resolutions", middleware.WithLogging(adminHandler.ListResolutions))
	mux.HandleFunc("POST /api/admin/resolutions", middleware.WithLogging(adminHandler.SaveResolution))
	mux.HandleFunc("POST /api/admin/lock", middleware.WithLogging(adminHandler.LockTurn))
	mux.HandleFunc("POST /api/admin/publish", middleware.WithLogging(adminHandler.PublishTurn))
	mux.HandleFunc("GET /api/admin/overview", middleware.WithLogging(adminHandler.Overview))

	// World snapshot pages (public)
	mux.HandleFunc("GET /api/state", middleware.WithLogging(worldHandler.GetState))
	mux.HandleFunc("GET /api/leaderboard", middleware.WithLogging(worldHandler.GetLeaderboard))
	mux.HandleFunc("GET /api/capitals/{id}", middleware.WithLogging(worldHandler.GetCapital))

	// Skirmish calculator (public, advisory only)
	mux.HandleFunc("POST /api/skirmish", middleware.WithLogging(skirmishHandler.Resolve))

	// When the backend runs embedded, expose its RPC surface so other Mapso
	// instances can use this one as their remote backend
	if embedded, ok := svc.(*backend.Service); ok {
		mux.Handle("POST /rpc/", backend.Handler(embedded))
	}

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("mapso API v1"))
	})

	return mux
}
