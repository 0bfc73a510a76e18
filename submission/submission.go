// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package submission

import (
	"strings"

	"github.com/FahryJean/Mapso/models"
)

// Validation messages shown to the player, in checklist order.
const (
	MsgEventRequired       = "Event response is required."
	MsgImprovementRequired = "Improvement is required."
	MsgCampaignTarget      = "Campaign requires a target settlement."
)

// Improvement success chance labels. Choosing a campaign halves the
// improvement odds; the value is display-only and never sent to the backend.
const (
	ChanceFull   = "100%"
	ChanceHalved = "50%"
)

// Fields holds the six raw submission form values before trimming.
type Fields struct {
	EventID             string
	EventChoice         string
	ImprovementTarget   string
	ImprovementBuilding string
	CampaignTarget      string
	CampaignNote        string
}

// Build trims the form fields and assembles a SubmissionPayload. A sub-record
// whose source fields are all empty becomes nil; a sub-record with any field
// set keeps every trimmed field so Validate can report what is missing.
func Build(f Fields) models.SubmissionPayload {
	var p models.SubmissionPayload

	eventID := strings.TrimSpace(f.EventID)
	choice := strings.TrimSpace(f.EventChoice)
	if eventID != "" || choice != "" {
		p.EventResponse = &models.EventResponse{EventID: eventID, Choice: choice}
	}

	settlement := strings.TrimSpace(f.ImprovementTarget)
	building := strings.TrimSpace(f.ImprovementBuilding)
	if settlement != "" || building != "" {
		p.Improvement = &models.Improvement{SettlementID: settlement, Building: building}
	}

	target := strings.TrimSpace(f.CampaignTarget)
	note := strings.TrimSpace(f.CampaignNote)
	if target != "" || note != "" {
		p.Campaign = &models.Campaign{TargetSettlementID: target, Note: note}
	}

	return p
}

// Validate checks the payload completeness rules and returns every violated
// rule in order. It never short-circuits; submission is blocked while the
// returned list is non-empty.
func Validate(p models.SubmissionPayload) []string {
	var errs []string

	if p.EventResponse == nil || p.EventResponse.EventID == "" || p.EventResponse.Choice == "" {
		errs = append(errs, MsgEventRequired)
	}
	if p.Improvement == nil || p.Improvement.SettlementID == "" || p.Improvement.Building == "" {
		errs = append(errs, MsgImprovementRequired)
	}
	if p.Campaign != nil && p.Campaign.TargetSettlementID == "" {
		errs = append(errs, MsgCampaignTarget)
	}

	return errs
}

// Normalize drops sub-records that are missing required fields, leaving a
// payload that holds the completeness invariant. Used before transmitting a
// payload that passed validation, so a campaign note without a target can
// never reach the wire.
func Normalize(p models.SubmissionPayload) models.SubmissionPayload {
	if p.EventResponse != nil && (p.EventResponse.EventID == "" || p.EventResponse.Choice == "") {
		p.EventResponse = nil
	}
	if p.Improvement != nil && (p.Improvement.SettlementID == "" || p.Improvement.Building == "") {
		p.Improvement = nil
	}
	if p.Campaign != nil && p.Campaign.TargetSettlementID == "" {
		p.Campaign = nil
	}
	return p
}

// HasCampaign reports whether the payload includes a campaign with a target.
func HasCampaign(p models.SubmissionPayload) bool {
	return p.Campaign != nil && p.Campaign.TargetSettlementID != ""
}

// Checklist counts how many of the three sub-records are fully populated.
func Checklist(p models.SubmissionPayload) int {
	n := 0
	if p.EventResponse != nil && p.EventResponse.EventID != "" && p.EventResponse.Choice != "" {
		n++
	}
	if p.Improvement != nil && p.Improvement.SettlementID != "" && p.Improvement.Building != "" {
		n++
	}
	if HasCampaign(p) {
		n++
	}
	return n
}

// ImprovementChance returns the displayed improvement success chance:
// ChanceHalved when a campaign is chosen, otherwise ChanceFull.
func ImprovementChance(p models.SubmissionPayload) string {
	if HasCampaign(p) {
		return ChanceHalved
	}
	return ChanceFull
}

// Latest groups submissions by faction and keeps the newest per faction,
// relying on the backend's newest-first ordering within each faction.
// Overall slice order follows first appearance, matching the admin view.
func Latest(subs []models.Submission) []models.Submission {
	seen := make(map[string]bool, len(subs))
	latest := make([]models.Submission, 0, len(subs))
	for _, s := range subs {
		if seen[s.FactionID] {
			continue
		}
		seen[s.FactionID] = true
		latest = append(latest, s)
	}
	return latest
}
