// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"errors"
	"net/http"

	"github.com/FahryJean/Mapso/auth"
	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/rpc"
)

// Wire parameter shapes for the /rpc endpoints. These mirror the request
// types in rpc.Client.
type passcodeParams struct {
	Passcode string `json:"passcode"`
}

type submitTurnParams struct {
	FactionID string                   `json:"faction_id"`
	Passcode  string                   `json:"passcode"`
	Payload   models.SubmissionPayload `json:"payload"`
}

type saveResolutionParams struct {
	Passcode   string            `json:"passcode"`
	FactionID  string            `json:"faction_id"`
	Resolution models.Resolution `json:"resolution"`
}

type turnLogParams struct {
	LimitTurns int `json:"limit_turns"`
}

type ackResponse struct {
	OK bool `json:"ok"`
}

// Handler serves the backend RPC surface over HTTP, so this process can act
// as the remote backend for other Mapso pages.
func Handler(svc rpc.Service) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /rpc/turn_status", func(w http.ResponseWriter, r *http.Request) {
		status, err := svc.TurnStatus(r.Context())
		if err != nil {
			writeRPCError(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, status)
	})

	mux.HandleFunc("POST /rpc/submit_turn", func(w http.ResponseWriter, r *http.Request) {
		var params submitTurnParams
		if err := middleware.ParseJSONBody(r, &params); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := svc.SubmitTurn(r.Context(), params.FactionID, params.Passcode, params.Payload); err != nil {
			writeRPCError(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, ackResponse{OK: true})
	})

	mux.HandleFunc("POST /rpc/admin_list_submissions", func(w http.ResponseWriter, r *http.Request) {
		var params passcodeParams
		if err := middleware.ParseJSONBody(r, &params); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		subs, err := svc.AdminListSubmissions(r.Context(), params.Passcode)
		if err != nil {
			writeRPCError(w, err)
			return
		}
		if subs == nil {
			subs = []models.Submission{}
		}
		middleware.JSONResponse(w, http.StatusOK, subs)
	})

	mux.HandleFunc("POST /rpc/admin_list_resolutions", func(w http.ResponseWriter, r *http.Request) {
		var params passcodeParams
		if err := middleware.ParseJSONBody(r, &params); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		resolutions, err := svc.AdminListResolutions(r.Context(), params.Passcode)
		if err != nil {
			writeRPCError(w, err)
			return
		}
		if resolutions == nil {
			resolutions = []models.FactionResolution{}
		}
		middleware.JSONResponse(w, http.StatusOK, resolutions)
	})

	mux.HandleFunc("POST /rpc/admin_save_resolution", func(w http.ResponseWriter, r *http.Request) {
		var params saveResolutionParams
		if err := middleware.ParseJSONBody(r, &params); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := svc.AdminSaveResolution(r.Context(), params.Passcode, params.FactionID, params.Resolution); err != nil {
			writeRPCError(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, ackResponse{OK: true})
	})

	mux.HandleFunc("POST /rpc/admin_lock_turn", func(w http.ResponseWriter, r *http.Request) {
		var params passcodeParams
		if err := middleware.ParseJSONBody(r, &params); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := svc.AdminLockTurn(r.Context(), params.Passcode); err != nil {
			writeRPCError(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, ackResponse{OK: true})
	})

	mux.HandleFunc("POST /rpc/admin_publish_next_turn", func(w http.ResponseWriter, r *http.Request) {
		var params passcodeParams
		if err := middleware.ParseJSONBody(r, &params); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if err := svc.AdminPublishNextTurn(r.Context(), params.Passcode); err != nil {
			writeRPCError(w, err)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, ackResponse{OK: true})
	})

	mux.HandleFunc("POST /rpc/public_turn_log", func(w http.ResponseWriter, r *http.Request) {
		var params turnLogParams
		if err := middleware.ParseJSONBody(r, &params); err != nil {
			middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		entries, err := svc.PublicTurnLog(r.Context(), params.LimitTurns)
		if err != nil {
			writeRPCError(w, err)
			return
		}
		if entries == nil {
			entries = []models.TurnLogEntry{}
		}
		middleware.JSONResponse(w, http.StatusOK, entries)
	})

	mux.HandleFunc("POST /rpc/list_factions", func(w http.ResponseWriter, r *http.Request) {
		factions, err := svc.ListFactions(r.Context())
		if err != nil {
			writeRPCError(w, err)
			return
		}
		if factions == nil {
			factions = []models.Faction{}
		}
		middleware.JSONResponse(w, http.StatusOK, factions)
	})

	return mux
}

// writeRPCError maps backend failures to HTTP statuses. The error text goes
// out verbatim; clients show it to the user unaltered.
func writeRPCError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrInvalidPasscode):
		status = http.StatusForbidden
	case errors.Is(err, ErrTurnNotOpen), errors.Is(err, ErrTurnNotLockable):
		status = http.StatusConflict
	case errors.Is(err, ErrUnknownFaction), errors.Is(err, ErrIncompleteSubmission):
		status = http.StatusBadRequest
	case errors.Is(err, ErrNoCurrentTurn):
		status = http.StatusNotFound
	}
	middleware.ErrorResponse(w, status, err.Error())
}
