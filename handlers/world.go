// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FahryJean/Mapso/leaderboard"
	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/worldstate"
)

type WorldHandler struct {
	loader worldstate.Loader
}

func NewWorldHandler(loader worldstate.Loader) *WorldHandler {
	return &WorldHandler{loader: loader}
}

// StateResponse is the map page's snapshot: the map widget configuration plus
// markers joined with their provinces.
type StateResponse struct {
	Turn    int                     `json:"turn"`
	Map     worldstate.MapConfig    `json:"map"`
	Markers []worldstate.MarkerView `json:"markers"`
	Events  []worldstate.Event      `json:"events"`
}

func (h *WorldHandler) load(w http.ResponseWriter) (*worldstate.WorldState, bool) {
	state, err := h.loader.Load()
	if err != nil {
		slog.Error("failed to load world state", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "World state unavailable")
		return nil, false
	}
	return state, true
}

// GetState handles GET /api/state
// The document is re-read from disk on every request and the response is
// marked no-store, so edits show up on the next page load.
func (h *WorldHandler) GetState(w http.ResponseWriter, r *http.Request) {
	state, ok := h.load(w)
	if !ok {
		return
	}

	events := state.Events
	if events == nil {
		events = []worldstate.Event{}
	}

	w.Header().Set("Cache-Control", "no-store")
	middleware.JSONResponse(w, http.StatusOK, StateResponse{
		Turn:    state.Turn,
		Map:     state.Map,
		Markers: state.ResolveMarkers(),
		Events:  events,
	})
}

// GetLeaderboard handles GET /api/leaderboard
func (h *WorldHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	state, ok := h.load(w)
	if !ok {
		return
	}

	w.Header().Set("Cache-Control", "no-store")
	middleware.JSONResponse(w, http.StatusOK, leaderboard.Compute(state))
}

// GetCapital handles GET /api/capitals/{id}
func (h *WorldHandler) GetCapital(w http.ResponseWriter, r *http.Request) {
	provinceID := r.PathValue("id")
	if provinceID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "province id is required")
		return
	}

	state, ok := h.load(w)
	if !ok {
		return
	}

	capital, err := state.Capital(provinceID)
	if errors.Is(err, worldstate.ErrUnknownProvince) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Province not found")
		return
	}
	if err != nil {
		slog.Error("failed to build capital view", "province_id", provinceID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to build capital view")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, capital)
}
