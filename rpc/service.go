// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rpc

import (
	"context"

	"github.com/FahryJean/Mapso/models"
)

// Service is the backend RPC surface every page talks through. Passcodes are
// forwarded verbatim and validated only by the backend; callers never check
// them locally.
//
// Two implementations exist: Client (remote backend over HTTP) and
// backend.Service (embedded, storage-backed).
type Service interface {
	// TurnStatus returns the current turn snapshot.
	TurnStatus(ctx context.Context) (models.TurnStatus, error)

	// SubmitTurn records a faction's orders for the current turn.
	SubmitTurn(ctx context.Context, factionID, passcode string, payload models.SubmissionPayload) error

	// AdminListSubmissions returns the current turn's submissions,
	// newest-first per faction.
	AdminListSubmissions(ctx context.Context, passcode string) ([]models.Submission, error)

	// AdminListResolutions returns the current turn's resolutions.
	AdminListResolutions(ctx context.Context, passcode string) ([]models.FactionResolution, error)

	// AdminSaveResolution upserts the resolution for one faction in the
	// current turn.
	AdminSaveResolution(ctx context.Context, passcode, factionID string, resolution models.Resolution) error

	// AdminLockTurn transitions the current turn to LOCKED.
	AdminLockTurn(ctx context.Context, passcode string) error

	// AdminPublishNextTurn resolves the current turn and opens the next one.
	AdminPublishNextTurn(ctx context.Context, passcode string) error

	// PublicTurnLog returns resolutions for up to limitTurns past turns.
	PublicTurnLog(ctx context.Context, limitTurns int) ([]models.TurnLogEntry, error)

	// ListFactions returns the faction reference list sorted by display
	// name. Callable without a passcode.
	ListFactions(ctx context.Context) ([]models.Faction, error)
}
