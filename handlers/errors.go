// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/FahryJean/Mapso/auth"
	"github.com/FahryJean/Mapso/backend"
	"github.com/FahryJean/Mapso/middleware"
	"github.com/FahryJean/Mapso/rpc"
)

// serviceError writes a backend failure as an HTTP error. A remote backend
// already carries a status code; an embedded one is mapped from its sentinel
// errors. The message reaches the user verbatim either way.
func serviceError(w http.ResponseWriter, err error) {
	var rpcErr *rpc.Error
	if errors.As(err, &rpcErr) {
		middleware.ErrorResponse(w, rpcErr.StatusCode, rpcErr.Message)
		return
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, auth.ErrInvalidPasscode):
		status = http.StatusForbidden
	case errors.Is(err, backend.ErrTurnNotOpen), errors.Is(err, backend.ErrTurnNotLockable):
		status = http.StatusConflict
	case errors.Is(err, backend.ErrUnknownFaction), errors.Is(err, backend.ErrIncompleteSubmission):
		status = http.StatusBadRequest
	case errors.Is(err, backend.ErrNoCurrentTurn):
		status = http.StatusNotFound
	}

	if status == http.StatusInternalServerError {
		slog.Error("backend call failed", "error", err)
	}
	middleware.ErrorResponse(w, status, err.Error())
}
