// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Turn phase constants
const (
	PhaseOpen     = "OPEN"
	PhaseLocked   = "LOCKED"
	PhaseResolved = "RESOLVED"
)

// Improvement result categories
const (
	ImprovementSuccess = "success"
	ImprovementPartial = "partial"
	ImprovementFailure = "failure"
)

// Domain types

// TurnStatus is a read-only snapshot of the current turn. It is produced by
// the backend and re-fetched on demand; the client never mutates or caches it
// across actions that change it.
type TurnStatus struct {
	TurnNumber     int       `json:"turn_number"`
	Phase          string    `json:"phase"`
	SubmittedCount int       `json:"submitted_count"`
	FactionCount   int       `json:"faction_count"`
	ClosesAt       time.Time `json:"closes_at"`
}

// Faction is a player-controlled political entity. ID is the durable key
// shared with province owner fields in the world state.
type Faction struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// EventResponse is a faction's answer to the current turn event.
// Both fields are required when the record is present.
type EventResponse struct {
	EventID string `json:"event_id"`
	Choice  string `json:"choice"`
}

// Improvement orders a building in a settlement.
// Both fields are required when the record is present.
type Improvement struct {
	SettlementID string `json:"settlement_id"`
	Building     string `json:"building"`
}

// Campaign targets a settlement for military action. Note is optional.
type Campaign struct {
	TargetSettlementID string `json:"target_settlement_id"`
	Note               string `json:"note,omitempty"`
}

// SubmissionPayload bundles a faction's actions for one turn. Each sub-record
// is either fully populated on its required fields or nil, never partially
// filled.
type SubmissionPayload struct {
	EventResponse *EventResponse `json:"event_response,omitempty"`
	Improvement   *Improvement   `json:"improvement,omitempty"`
	Campaign      *Campaign      `json:"campaign,omitempty"`
}

// Submission wraps a payload with its faction and backend-owned timestamps.
// The backend returns submissions newest-first per faction; clients keep only
// the most recent as "latest".
type Submission struct {
	ID          string            `json:"id"`
	TurnNumber  int               `json:"turn_number"`
	FactionID   string            `json:"faction_id"`
	Payload     SubmissionPayload `json:"payload"`
	SubmittedAt time.Time         `json:"submitted_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// Resolution is the admin-authored outcome for one faction in one turn.
// One logical resolution exists per (turn, faction); re-saving overwrites.
type Resolution struct {
	EventOutcome      string `json:"event_outcome"`
	ImprovementResult string `json:"improvement_result"`
	ImprovementNotes  string `json:"improvement_notes"`
	CampaignOutcome   string `json:"campaign_outcome"`
}

// IsZero reports whether no field of the resolution is set.
func (r Resolution) IsZero() bool {
	return r == Resolution{}
}

// FactionResolution pairs a resolution with its faction for list responses.
type FactionResolution struct {
	FactionID  string     `json:"faction_id"`
	Resolution Resolution `json:"resolution"`
}

// TurnLogEntry is one row of the public read-only audit view.
type TurnLogEntry struct {
	TurnNumber int        `json:"turn_number"`
	FactionID  string     `json:"faction_id"`
	Resolution Resolution `json:"resolution"`
}

// Request types

// SubmitOrdersRequest carries the raw submission form fields. The server
// trims and assembles them into a SubmissionPayload before validation.
type SubmitOrdersRequest struct {
	FactionID           string `json:"faction_id"`
	Passcode            string `json:"passcode"`
	EventID             string `json:"event_id"`
	EventChoice         string `json:"event_choice"`
	ImprovementTarget   string `json:"improvement_settlement_id"`
	ImprovementBuilding string `json:"improvement_building"`
	CampaignTarget      string `json:"campaign_target_settlement_id"`
	CampaignNote        string `json:"campaign_note"`
}

type SaveResolutionRequest struct {
	FactionID  string     `json:"faction_id"`
	Resolution Resolution `json:"resolution"`
}

type SkirmishRequest struct {
	FactionID string `json:"faction_id"`
	Threat    int    `json:"threat"`
}

// Response types

type SubmitOrdersResponse struct {
	Message string     `json:"message"`
	Status  TurnStatus `json:"status"`
}

// ValidationErrorResponse lists every violated submission rule in order.
type ValidationErrorResponse struct {
	Error    string   `json:"error"`
	Messages []string `json:"messages"`
}

type AdminSubmissionsResponse struct {
	Submissions []Submission `json:"submissions"`
}

type AdminResolutionsResponse struct {
	Resolutions []FactionResolution `json:"resolutions"`
}

type TurnLogResponse struct {
	Entries []TurnLogEntry `json:"entries"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
