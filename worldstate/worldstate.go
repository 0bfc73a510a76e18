// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package worldstate

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
)

var (
	ErrMissingMapImage  = errors.New("world state is missing map.image")
	ErrInvalidMapBounds = errors.New("world state map.width/height must be positive")
	ErrUnknownProvince  = errors.New("unknown province id")
	errEmptyDocument    = errors.New("world state document is empty")
)

// OwnerUnclaimed is rendered when a province owner does not resolve to a
// player.
const OwnerUnclaimed = "Unclaimed"

// WorldState is the shared read-only snapshot document. It is re-read on
// every load and never cached, so edits to the document are visible
// immediately.
type WorldState struct {
	Turn      int                 `json:"turn"`
	Players   map[string]Player   `json:"players"`
	Provinces map[string]Province `json:"provinces"`
	Map       MapConfig           `json:"map"`
	Markers   []Marker            `json:"markers"`
	Events    []Event             `json:"events"`
}

type Player struct {
	Name    string `json:"name"`
	Gold    int    `json:"gold"`
	Capital string `json:"capital"`
	Levies  int    `json:"levies"`
	Colour  string `json:"colour"`
	Faction string `json:"faction"`
}

type Province struct {
	Name      string   `json:"name"`
	Type      string   `json:"type"`
	Owner     string   `json:"owner"`
	Income    int      `json:"income"`
	Buildings []string `json:"buildings"`
}

// MapConfig drives the map widget: an image overlay stretched over
// [0,0]..[height,width] bounds.
type MapConfig struct {
	Image  string `json:"image"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type Marker struct {
	ProvinceID string `json:"provinceId"`
	X          int    `json:"x"`
	Y          int    `json:"y"`
}

type Event struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Type        string `json:"type"`
	X           int    `json:"x"`
	Y           int    `json:"y"`
}

// Parse decodes and validates a world-state document. Map configuration is
// checked at the boundary so a broken document is rejected before any page
// renders from it; referential problems (dangling markers, unknown owners)
// are left to the render helpers, which degrade instead of failing.
func Parse(data []byte) (*WorldState, error) {
	if len(data) == 0 {
		return nil, errEmptyDocument
	}

	var state WorldState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("invalid world state document: %w", err)
	}

	if state.Map.Image == "" {
		return nil, ErrMissingMapImage
	}
	if state.Map.Width <= 0 || state.Map.Height <= 0 {
		return nil, ErrInvalidMapBounds
	}

	return &state, nil
}

// Loader reads the world-state document from disk.
type Loader struct {
	Path string
}

// Load re-reads and parses the document. Every call hits the filesystem;
// nothing is cached between loads.
func (l Loader) Load() (*WorldState, error) {
	data, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read world state: %w", err)
	}
	return Parse(data)
}

// OwnerName resolves a province owner to a display name, falling back to the
// raw owner key and then to OwnerUnclaimed.
func (s *WorldState) OwnerName(provinceID string) string {
	prov, ok := s.Provinces[provinceID]
	if !ok {
		return OwnerUnclaimed
	}
	if player, ok := s.Players[prov.Owner]; ok && player.Name != "" {
		return player.Name
	}
	if prov.Owner != "" {
		return prov.Owner
	}
	return OwnerUnclaimed
}

// MarkerView is a marker joined with its province for rendering.
type MarkerView struct {
	ProvinceID string   `json:"province_id"`
	Name       string   `json:"name"`
	Owner      string   `json:"owner"`
	Income     int      `json:"income"`
	Buildings  []string `json:"buildings"`
	X          int      `json:"x"`
	Y          int      `json:"y"`
}

// ResolveMarkers joins markers with their provinces. Markers referencing an
// unknown province are skipped with a warning rather than breaking the page.
func (s *WorldState) ResolveMarkers() []MarkerView {
	views := make([]MarkerView, 0, len(s.Markers))
	for _, m := range s.Markers {
		prov, ok := s.Provinces[m.ProvinceID]
		if !ok {
			slog.Warn("marker references unknown province", "province_id", m.ProvinceID)
			continue
		}
		name := prov.Name
		if name == "" {
			name = m.ProvinceID
		}
		views = append(views, MarkerView{
			ProvinceID: m.ProvinceID,
			Name:       name,
			Owner:      s.OwnerName(m.ProvinceID),
			Income:     prov.Income,
			Buildings:  prov.Buildings,
			X:          m.X,
			Y:          m.Y,
		})
	}
	return views
}

// OwnedProvinces returns the ids of provinces owned by the given faction key.
func (s *WorldState) OwnedProvinces(factionKey string) []string {
	var owned []string
	for id, prov := range s.Provinces {
		if prov.Owner == factionKey {
			owned = append(owned, id)
		}
	}
	return owned
}
