// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/skirmish"
	"github.com/FahryJean/Mapso/worldstate"
)

type SkirmishHandler struct {
	loader worldstate.Loader
	seed   func() int64
}

func NewSkirmishHandler(loader worldstate.Loader) *SkirmishHandler {
	return &SkirmishHandler{
		loader: loader,
		seed:   func() int64 { return time.Now().UnixNano() },
	}
}

// Resolve handles POST /api/skirmish
// Rolls the three dice using the faction's gold and levies from the world
// state. Nothing is persisted; the result is purely advisory.
func (h *SkirmishHandler) Resolve(w http.ResponseWriter, r *http.Request) {
	var req models.SkirmishRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.FactionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "faction_id is required")
		return
	}

	state, err := h.loader.Load()
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "World state unavailable")
		return
	}

	player, ok := findPlayer(state, req.FactionID)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Faction not found")
		return
	}

	result, err := skirmish.Resolve(skirmish.Request{
		Gold:   player.Gold,
		Levies: player.Levies,
		Threat: req.Threat,
		Seed:   h.seed(),
	})
	if errors.Is(err, skirmish.ErrInvalidThreat) {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to resolve skirmish")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, result)
}

// findPlayer resolves a faction id to its player record, matching the player
// key first and the faction field second.
func findPlayer(state *worldstate.WorldState, factionID string) (worldstate.Player, bool) {
	if player, ok := state.Players[factionID]; ok {
		return player, true
	}
	for _, player := range state.Players {
		if player.Faction == factionID {
			return player, true
		}
	}
	return worldstate.Player{}, false
}
