// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"

	"github.com/FahryJean/Mapso/factions"
	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/rpc"
	"github.com/FahryJean/Mapso/viewstate"
)

type StatusHandler struct {
	svc rpc.Service
}

func NewStatusHandler(svc rpc.Service) *StatusHandler {
	return &StatusHandler{svc: svc}
}

// TurnStatusResponse pairs the raw status with its formatted panel view.
type TurnStatusResponse struct {
	Status models.TurnStatus    `json:"status"`
	View   viewstate.StatusView `json:"view"`
}

// GetTurnStatus handles GET /api/turn-status
func (h *StatusHandler) GetTurnStatus(w http.ResponseWriter, r *http.Request) {
	status, err := h.svc.TurnStatus(r.Context())
	if err != nil {
		serviceError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, TurnStatusResponse{
		Status: status,
		View:   viewstate.FormatStatus(status),
	})
}

// ListFactions handles GET /api/factions
// Falls back to the compiled-in faction set when the backend is unreachable,
// so the submission form always has options.
func (h *StatusHandler) ListFactions(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, factions.Resolve(r.Context(), h.svc))
}

// GetTurnLog handles GET /api/turn-log?turns=N
func (h *StatusHandler) GetTurnLog(w http.ResponseWriter, r *http.Request) {
	turns := 0
	if raw := r.URL.Query().Get("turns"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "turns must be a number")
			return
		}
		turns = n
	}

	entries, err := h.svc.PublicTurnLog(r.Context(), turns)
	if err != nil {
		serviceError(w, err)
		return
	}
	if entries == nil {
		entries = []models.TurnLogEntry{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.TurnLogResponse{Entries: entries})
}
