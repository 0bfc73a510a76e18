// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package viewstate

import (
	"fmt"
	"sync"

	"github.com/FahryJean/Mapso/models"
)

// closesAtFormat matches the UTC format the status panel has always shown.
const closesAtFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// StatusView is the formatted status panel content.
type StatusView struct {
	Turn        string `json:"turn"`
	Phase       string `json:"phase"`
	Submissions string `json:"submissions"`
	Closes      string `json:"closes"`
}

// FormatStatus renders a TurnStatus for display.
func FormatStatus(s models.TurnStatus) StatusView {
	return StatusView{
		Turn:        fmt.Sprintf("Turn: %d", s.TurnNumber),
		Phase:       fmt.Sprintf("Phase: %s", s.Phase),
		Submissions: fmt.Sprintf("%d / %d", s.SubmittedCount, s.FactionCount),
		Closes:      s.ClosesAt.UTC().Format(closesAtFormat),
	}
}

// ResolutionForm holds the admin editor's field values.
type ResolutionForm struct {
	EventOutcome      string `json:"event_outcome"`
	ImprovementResult string `json:"improvement_result"`
	ImprovementNotes  string `json:"improvement_notes"`
	CampaignOutcome   string `json:"campaign_outcome"`
}

// AdminView is the admin console's view state. It is an immutable value:
// every event produces a new view via the With/Select methods, never an
// in-place mutation, so stale state can simply be replaced wholesale.
type AdminView struct {
	Status          models.TurnStatus
	Submissions     []models.Submission
	Resolutions     []models.FactionResolution
	SelectedFaction string
	Form            ResolutionForm
}

// WithStatus replaces the turn status.
func (v AdminView) WithStatus(status models.TurnStatus) AdminView {
	v.Status = status
	return v
}

// WithSubmissions replaces the submission list.
func (v AdminView) WithSubmissions(subs []models.Submission) AdminView {
	v.Submissions = subs
	return v
}

// WithResolutions replaces the resolution list and refills the form for the
// selected faction from the new data.
func (v AdminView) WithResolutions(resolutions []models.FactionResolution) AdminView {
	v.Resolutions = resolutions
	return v.SelectFaction(v.SelectedFaction)
}

// SelectFaction switches the editor to a faction, populating the form from
// that faction's saved resolution if one exists and blanking it otherwise.
// In-progress edits for the previous faction are never carried over.
func (v AdminView) SelectFaction(factionID string) AdminView {
	v.SelectedFaction = factionID
	v.Form = ResolutionForm{}
	for _, r := range v.Resolutions {
		if r.FactionID == factionID {
			v.Form = ResolutionForm{
				EventOutcome:      r.Resolution.EventOutcome,
				ImprovementResult: r.Resolution.ImprovementResult,
				ImprovementNotes:  r.Resolution.ImprovementNotes,
				CampaignOutcome:   r.Resolution.CampaignOutcome,
			}
			break
		}
	}
	return v
}

// IsResolved reports whether a resolution record exists for the faction.
func (v AdminView) IsResolved(factionID string) bool {
	for _, r := range v.Resolutions {
		if r.FactionID == factionID {
			return true
		}
	}
	return false
}

// ResolvedCount counts factions with a saved resolution this turn.
func (v AdminView) ResolvedCount() int {
	seen := make(map[string]bool, len(v.Resolutions))
	for _, r := range v.Resolutions {
		seen[r.FactionID] = true
	}
	return len(seen)
}

// Progress renders the "Resolved: x / y" and "Submitted: x / y" lines.
func (v AdminView) Progress() (resolved, submitted string) {
	resolved = fmt.Sprintf("Resolved: %d / %d", v.ResolvedCount(), v.Status.FactionCount)
	submitted = fmt.Sprintf("Submitted: %d / %d", v.Status.SubmittedCount, v.Status.FactionCount)
	return resolved, submitted
}

// Sequencer orders overlapping refreshes of the same view, for API
// consumers that fetch concurrently. Each request takes an id from Next; a
// response is applied only if Accept approves it, so a slow response that
// arrives after a newer request was issued is discarded instead of
// overwriting fresher state.
type Sequencer struct {
	mu      sync.Mutex
	issued  uint64
	applied uint64
}

// Next issues a new request id.
func (s *Sequencer) Next() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued++
	return s.issued
}

// Accept reports whether the response for id should be applied. Only the
// latest issued request is accepted, and only once.
func (s *Sequencer) Accept(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.issued || id <= s.applied {
		return false
	}
	s.applied = id
	return true
}
