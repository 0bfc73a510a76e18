// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/FahryJean/Mapso/auth"
	"github.com/FahryJean/Mapso/db"
	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/submission"
)

const testPasscode = "test-passcode"

func newTestService(t *testing.T) *Service {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	svc := New(conn, db.DialectSQLite, testPasscode)
	if err := svc.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	return svc
}

func validPayload() models.SubmissionPayload {
	return models.SubmissionPayload{
		EventResponse: &models.EventResponse{EventID: "harvest_festival", Choice: "Open the granaries"},
		Improvement:   &models.Improvement{SettlementID: "highgarden", Building: "Granary"},
	}
}

func TestEnsureSeeded(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	status, err := svc.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if status.TurnNumber != 1 {
		t.Errorf("Expected turn 1, got %d", status.TurnNumber)
	}
	if status.Phase != models.PhaseOpen {
		t.Errorf("Expected phase OPEN, got %s", status.Phase)
	}
	if status.SubmittedCount != 0 {
		t.Errorf("Expected 0 submissions, got %d", status.SubmittedCount)
	}
	if status.FactionCount != 3 {
		t.Errorf("Expected 3 factions, got %d", status.FactionCount)
	}

	// Seeding again must not duplicate anything
	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("Second EnsureSeeded failed: %v", err)
	}
	again, err := svc.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if again.TurnNumber != 1 || again.FactionCount != 3 {
		t.Errorf("Seeding was not idempotent: turn %d, factions %d", again.TurnNumber, again.FactionCount)
	}
}

func TestSubmitTurn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SubmitTurn(ctx, "southport", testPasscode, validPayload()); err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}

	status, err := svc.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if status.SubmittedCount != 1 {
		t.Errorf("Expected 1 submission, got %d", status.SubmittedCount)
	}
}

func TestSubmitTurn_ResubmissionCountsOnce(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SubmitTurn(ctx, "southport", testPasscode, validPayload()); err != nil {
		t.Fatalf("First SubmitTurn failed: %v", err)
	}
	second := validPayload()
	second.Campaign = &models.Campaign{TargetSettlementID: "millbrook"}
	if err := svc.SubmitTurn(ctx, "southport", testPasscode, second); err != nil {
		t.Fatalf("Second SubmitTurn failed: %v", err)
	}

	status, err := svc.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if status.SubmittedCount != 1 {
		t.Errorf("Expected resubmission to count once, got %d", status.SubmittedCount)
	}

	// Both rows are kept; the newest comes first for its faction
	subs, err := svc.AdminListSubmissions(ctx, testPasscode)
	if err != nil {
		t.Fatalf("AdminListSubmissions failed: %v", err)
	}
	if len(subs) != 2 {
		t.Fatalf("Expected 2 stored submissions, got %d", len(subs))
	}
	if subs[0].Payload.Campaign == nil {
		t.Error("Expected newest submission first")
	}

	latest := submission.Latest(subs)
	if len(latest) != 1 {
		t.Fatalf("Expected 1 latest submission, got %d", len(latest))
	}
	if latest[0].Payload.Campaign == nil || latest[0].Payload.Campaign.TargetSettlementID != "millbrook" {
		t.Error("Expected the resubmission to win")
	}
}

func TestSubmitTurn_ResubmissionWinsWithSameTimestamp(t *testing.T) {
	// A frozen clock gives every row the same submitted_at; ordering
	// must still follow insertion order, not the random row id
	frozen := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)

	conn, err := db.Open(db.DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	svc := New(conn, db.DialectSQLite, testPasscode,
		WithClock(func() time.Time { return frozen }),
	)
	ctx := context.Background()
	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	targets := []string{"millbrook", "stonewatch", "eastvale", "riverrun", "duskmoor"}
	for _, target := range targets {
		payload := validPayload()
		payload.Campaign = &models.Campaign{TargetSettlementID: target}
		if err := svc.SubmitTurn(ctx, "southport", testPasscode, payload); err != nil {
			t.Fatalf("SubmitTurn for %s failed: %v", target, err)
		}
	}

	subs, err := svc.AdminListSubmissions(ctx, testPasscode)
	if err != nil {
		t.Fatalf("AdminListSubmissions failed: %v", err)
	}
	if len(subs) != len(targets) {
		t.Fatalf("Expected %d stored submissions, got %d", len(targets), len(subs))
	}
	for i, sub := range subs {
		want := targets[len(targets)-1-i]
		if sub.Payload.Campaign == nil || sub.Payload.Campaign.TargetSettlementID != want {
			t.Errorf("Position %d: expected campaign target %q", i, want)
		}
	}

	latest := submission.Latest(subs)
	if len(latest) != 1 || latest[0].Payload.Campaign.TargetSettlementID != "duskmoor" {
		t.Error("Expected the final resubmission to win")
	}
}

func TestSubmitTurn_InvalidPasscode(t *testing.T) {
	svc := newTestService(t)

	err := svc.SubmitTurn(context.Background(), "southport", "wrong", validPayload())
	if !errors.Is(err, auth.ErrInvalidPasscode) {
		t.Errorf("Expected ErrInvalidPasscode, got %v", err)
	}
}

func TestSubmitTurn_UnknownFaction(t *testing.T) {
	svc := newTestService(t)

	err := svc.SubmitTurn(context.Background(), "atlantis", testPasscode, validPayload())
	if !errors.Is(err, ErrUnknownFaction) {
		t.Errorf("Expected ErrUnknownFaction, got %v", err)
	}
}

func TestSubmitTurn_IncompletePayload(t *testing.T) {
	svc := newTestService(t)

	// Missing everything, plus a campaign note without a target
	payload := models.SubmissionPayload{
		Campaign: &models.Campaign{Note: "march at dawn"},
	}
	err := svc.SubmitTurn(context.Background(), "southport", testPasscode, payload)
	if !errors.Is(err, ErrIncompleteSubmission) {
		t.Fatalf("Expected ErrIncompleteSubmission, got %v", err)
	}

	// All violated rules appear in the message
	for _, msg := range []string{
		submission.MsgEventRequired,
		submission.MsgImprovementRequired,
		submission.MsgCampaignTarget,
	} {
		if !strings.Contains(err.Error(), msg) {
			t.Errorf("Expected error to contain %q, got %q", msg, err.Error())
		}
	}
}

func TestSubmitTurn_LockedTurn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AdminLockTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminLockTurn failed: %v", err)
	}

	err := svc.SubmitTurn(ctx, "southport", testPasscode, validPayload())
	if !errors.Is(err, ErrTurnNotOpen) {
		t.Errorf("Expected ErrTurnNotOpen, got %v", err)
	}
}

func TestAdminSaveResolution_Upsert(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	first := models.Resolution{
		EventOutcome:      "The granaries held.",
		ImprovementResult: models.ImprovementPartial,
	}
	if err := svc.AdminSaveResolution(ctx, testPasscode, "southport", first); err != nil {
		t.Fatalf("First save failed: %v", err)
	}

	second := models.Resolution{
		EventOutcome:      "The granaries held.",
		ImprovementResult: models.ImprovementSuccess,
		ImprovementNotes:  "Finished ahead of the frost.",
		CampaignOutcome:   "Millbrook taken.",
	}
	if err := svc.AdminSaveResolution(ctx, testPasscode, "southport", second); err != nil {
		t.Fatalf("Second save failed: %v", err)
	}

	resolutions, err := svc.AdminListResolutions(ctx, testPasscode)
	if err != nil {
		t.Fatalf("AdminListResolutions failed: %v", err)
	}
	if len(resolutions) != 1 {
		t.Fatalf("Expected 1 resolution after upsert, got %d", len(resolutions))
	}
	if resolutions[0].FactionID != "southport" {
		t.Errorf("Expected faction southport, got %s", resolutions[0].FactionID)
	}
	if resolutions[0].Resolution != second {
		t.Errorf("Expected latest save to win, got %+v", resolutions[0].Resolution)
	}
}

func TestAdminSaveResolution_UnknownFaction(t *testing.T) {
	svc := newTestService(t)

	err := svc.AdminSaveResolution(context.Background(), testPasscode, "atlantis", models.Resolution{
		EventOutcome: "nothing",
	})
	if !errors.Is(err, ErrUnknownFaction) {
		t.Errorf("Expected ErrUnknownFaction, got %v", err)
	}
}

func TestAdminLockTurn_Transitions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.AdminLockTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminLockTurn failed: %v", err)
	}

	status, err := svc.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if status.Phase != models.PhaseLocked {
		t.Errorf("Expected phase LOCKED, got %s", status.Phase)
	}

	// Locking twice is a conflict
	if err := svc.AdminLockTurn(ctx, testPasscode); !errors.Is(err, ErrTurnNotLockable) {
		t.Errorf("Expected ErrTurnNotLockable, got %v", err)
	}
}

func TestAdminLockTurn_InvalidPasscode(t *testing.T) {
	svc := newTestService(t)

	if err := svc.AdminLockTurn(context.Background(), "wrong"); !errors.Is(err, auth.ErrInvalidPasscode) {
		t.Errorf("Expected ErrInvalidPasscode, got %v", err)
	}
}

func TestAdminPublishNextTurn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if err := svc.SubmitTurn(ctx, "southport", testPasscode, validPayload()); err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}
	if err := svc.AdminLockTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminLockTurn failed: %v", err)
	}
	if err := svc.AdminPublishNextTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminPublishNextTurn failed: %v", err)
	}

	status, err := svc.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if status.TurnNumber != 2 {
		t.Errorf("Expected turn 2, got %d", status.TurnNumber)
	}
	if status.Phase != models.PhaseOpen {
		t.Errorf("Expected phase OPEN, got %s", status.Phase)
	}
	if status.SubmittedCount != 0 {
		t.Errorf("Expected submission count reset to 0, got %d", status.SubmittedCount)
	}

	// Last turn's submissions are no longer on the admin view
	subs, err := svc.AdminListSubmissions(ctx, testPasscode)
	if err != nil {
		t.Fatalf("AdminListSubmissions failed: %v", err)
	}
	if len(subs) != 0 {
		t.Errorf("Expected no submissions on the new turn, got %d", len(subs))
	}
}

func TestAdminPublishNextTurn_ClosesAtAdvances(t *testing.T) {
	base := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	conn, err := db.Open(db.DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open database: %v", err)
	}
	defer conn.Close()
	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	svc := New(conn, db.DialectSQLite, testPasscode,
		WithClock(func() time.Time { return base }),
		WithTurnLength(48*time.Hour),
	)
	ctx := context.Background()
	if err := svc.EnsureSeeded(ctx); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}

	if err := svc.AdminPublishNextTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminPublishNextTurn failed: %v", err)
	}

	status, err := svc.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	want := base.Add(48 * time.Hour)
	if !status.ClosesAt.Equal(want) {
		t.Errorf("Expected closes_at %v, got %v", want, status.ClosesAt)
	}
}

func TestPublicTurnLog(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Resolve three turns, each with one faction resolution
	for turn := 1; turn <= 3; turn++ {
		err := svc.AdminSaveResolution(ctx, testPasscode, "southport", models.Resolution{
			EventOutcome: "outcome",
		})
		if err != nil {
			t.Fatalf("Save on turn %d failed: %v", turn, err)
		}
		if err := svc.AdminPublishNextTurn(ctx, testPasscode); err != nil {
			t.Fatalf("Publish on turn %d failed: %v", turn, err)
		}
	}

	entries, err := svc.PublicTurnLog(ctx, 0)
	if err != nil {
		t.Fatalf("PublicTurnLog failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Expected 3 entries, got %d", len(entries))
	}
	// Newest first
	if entries[0].TurnNumber != 3 || entries[2].TurnNumber != 1 {
		t.Errorf("Expected entries ordered 3..1, got %d..%d", entries[0].TurnNumber, entries[2].TurnNumber)
	}

	// A limit keeps only the most recent turns
	limited, err := svc.PublicTurnLog(ctx, 2)
	if err != nil {
		t.Fatalf("PublicTurnLog with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Fatalf("Expected 2 limited entries, got %d", len(limited))
	}
	if limited[0].TurnNumber != 3 || limited[1].TurnNumber != 2 {
		t.Errorf("Expected turns 3 and 2, got %d and %d", limited[0].TurnNumber, limited[1].TurnNumber)
	}
}

func TestPublicTurnLog_ExcludesCurrentTurn(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// A resolution drafted on the still-open turn is not public yet
	err := svc.AdminSaveResolution(ctx, testPasscode, "southport", models.Resolution{
		EventOutcome: "draft",
	})
	if err != nil {
		t.Fatalf("AdminSaveResolution failed: %v", err)
	}

	entries, err := svc.PublicTurnLog(ctx, 0)
	if err != nil {
		t.Fatalf("PublicTurnLog failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Expected no public entries before publishing, got %d", len(entries))
	}
}

func TestListFactions(t *testing.T) {
	svc := newTestService(t)

	factions, err := svc.ListFactions(context.Background())
	if err != nil {
		t.Fatalf("ListFactions failed: %v", err)
	}
	if len(factions) != 3 {
		t.Fatalf("Expected 3 factions, got %d", len(factions))
	}

	// Sorted by display name
	want := []string{"Flatland Tribes", "Imperial Core", "Southport"}
	for i, name := range want {
		if factions[i].DisplayName != name {
			t.Errorf("Expected faction %d to be %s, got %s", i, name, factions[i].DisplayName)
		}
	}
}

func TestAdminListSubmissions_InvalidPasscode(t *testing.T) {
	svc := newTestService(t)

	if _, err := svc.AdminListSubmissions(context.Background(), "wrong"); !errors.Is(err, auth.ErrInvalidPasscode) {
		t.Errorf("Expected ErrInvalidPasscode, got %v", err)
	}
}
