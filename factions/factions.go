// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package factions

import (
	"context"
	"log/slog"
	"sort"

	"github.com/FahryJean/Mapso/models"
)

// Default is the compiled-in fallback set. The ids are the durable keys
// shared with province owners in the world state.
var Default = []models.Faction{
	{ID: "imperial_core", DisplayName: "Imperial Core"},
	{ID: "southport", DisplayName: "Southport"},
	{ID: "flatland_tribes", DisplayName: "Flatland Tribes"},
}

// Lister is the slice of the backend surface this package needs. rpc.Service
// satisfies it.
type Lister interface {
	ListFactions(ctx context.Context) ([]models.Faction, error)
}

// Resolve returns the faction list, sorted by display name. A failing or
// empty remote source yields the Default set instead of an error.
func Resolve(ctx context.Context, lister Lister) []models.Faction {
	remote, err := lister.ListFactions(ctx)
	if err != nil {
		slog.Warn("faction source unreachable, using fallback set", "error", err)
		return sorted(Default)
	}
	if len(remote) == 0 {
		slog.Warn("faction source returned no factions, using fallback set")
		return sorted(Default)
	}
	return sorted(remote)
}

func sorted(factions []models.Faction) []models.Faction {
	out := make([]models.Faction, len(factions))
	copy(out, factions)
	for i := range out {
		if out[i].DisplayName == "" {
			out[i].DisplayName = out[i].ID
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out
}
