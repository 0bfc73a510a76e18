// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package backend

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/FahryJean/Mapso/models"
	"github.com/FahryJean/Mapso/rpc"
	"github.com/FahryJean/Mapso/submission"
)

// newRemoteClient serves the backend over HTTP and returns a client talking
// to it, exercising the same path a split deployment uses.
func newRemoteClient(t *testing.T) rpc.Service {
	t.Helper()

	svc := newTestService(t)
	server := httptest.NewServer(Handler(svc))
	t.Cleanup(server.Close)
	return rpc.NewClient(server.URL)
}

func TestHandler_TurnStatusRoundTrip(t *testing.T) {
	client := newRemoteClient(t)

	status, err := client.TurnStatus(context.Background())
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if status.TurnNumber != 1 {
		t.Errorf("Expected turn 1, got %d", status.TurnNumber)
	}
	if status.Phase != models.PhaseOpen {
		t.Errorf("Expected phase OPEN, got %s", status.Phase)
	}
	if status.FactionCount != 3 {
		t.Errorf("Expected 3 factions, got %d", status.FactionCount)
	}
}

func TestHandler_SubmitAndListRoundTrip(t *testing.T) {
	client := newRemoteClient(t)
	ctx := context.Background()

	payload := validPayload()
	payload.Campaign = &models.Campaign{TargetSettlementID: "millbrook", Note: "march at dawn"}
	if err := client.SubmitTurn(ctx, "southport", testPasscode, payload); err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}

	subs, err := client.AdminListSubmissions(ctx, testPasscode)
	if err != nil {
		t.Fatalf("AdminListSubmissions failed: %v", err)
	}
	if len(subs) != 1 {
		t.Fatalf("Expected 1 submission, got %d", len(subs))
	}
	got := subs[0]
	if got.FactionID != "southport" {
		t.Errorf("Expected faction southport, got %s", got.FactionID)
	}
	if got.Payload.Campaign == nil || got.Payload.Campaign.Note != "march at dawn" {
		t.Errorf("Expected campaign note to survive the wire, got %+v", got.Payload.Campaign)
	}
}

func TestHandler_ErrorStatusCodes(t *testing.T) {
	client := newRemoteClient(t)
	ctx := context.Background()

	testCases := []struct {
		name       string
		call       func() error
		wantStatus int
	}{
		{
			name:       "invalid passcode is forbidden",
			call:       func() error { return client.AdminLockTurn(ctx, "wrong") },
			wantStatus: http.StatusForbidden,
		},
		{
			name: "unknown faction is a bad request",
			call: func() error {
				return client.SubmitTurn(ctx, "atlantis", testPasscode, validPayload())
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "incomplete payload is a bad request",
			call: func() error {
				return client.SubmitTurn(ctx, "southport", testPasscode, models.SubmissionPayload{})
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.call()
			if err == nil {
				t.Fatal("Expected an error")
			}
			var rpcErr *rpc.Error
			if !errors.As(err, &rpcErr) {
				t.Fatalf("Expected *rpc.Error, got %T: %v", err, err)
			}
			if rpcErr.StatusCode != tc.wantStatus {
				t.Errorf("Expected status %d, got %d", tc.wantStatus, rpcErr.StatusCode)
			}
		})
	}
}

func TestHandler_ConflictAfterLock(t *testing.T) {
	client := newRemoteClient(t)
	ctx := context.Background()

	if err := client.AdminLockTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminLockTurn failed: %v", err)
	}

	// Submitting against a locked turn conflicts
	err := client.SubmitTurn(ctx, "southport", testPasscode, validPayload())
	var rpcErr *rpc.Error
	if !errors.As(err, &rpcErr) || rpcErr.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 conflict, got %v", err)
	}

	// So does locking twice
	err = client.AdminLockTurn(ctx, testPasscode)
	if !errors.As(err, &rpcErr) || rpcErr.StatusCode != http.StatusConflict {
		t.Errorf("Expected 409 conflict, got %v", err)
	}
}

func TestHandler_ValidationMessageSurvivesWire(t *testing.T) {
	client := newRemoteClient(t)

	err := client.SubmitTurn(context.Background(), "southport", testPasscode, models.SubmissionPayload{})
	if err == nil {
		t.Fatal("Expected an error")
	}
	if !strings.Contains(err.Error(), submission.MsgEventRequired) {
		t.Errorf("Expected %q in error, got %q", submission.MsgEventRequired, err.Error())
	}
	if !strings.Contains(err.Error(), submission.MsgImprovementRequired) {
		t.Errorf("Expected %q in error, got %q", submission.MsgImprovementRequired, err.Error())
	}
}

func TestHandler_FullAdminCycle(t *testing.T) {
	client := newRemoteClient(t)
	ctx := context.Background()

	if err := client.SubmitTurn(ctx, "imperial_core", testPasscode, validPayload()); err != nil {
		t.Fatalf("SubmitTurn failed: %v", err)
	}
	if err := client.AdminLockTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminLockTurn failed: %v", err)
	}

	resolution := models.Resolution{
		EventOutcome:      "The festival went well.",
		ImprovementResult: models.ImprovementSuccess,
	}
	if err := client.AdminSaveResolution(ctx, testPasscode, "imperial_core", resolution); err != nil {
		t.Fatalf("AdminSaveResolution failed: %v", err)
	}

	resolutions, err := client.AdminListResolutions(ctx, testPasscode)
	if err != nil {
		t.Fatalf("AdminListResolutions failed: %v", err)
	}
	if len(resolutions) != 1 || resolutions[0].Resolution != resolution {
		t.Fatalf("Expected the saved resolution back, got %+v", resolutions)
	}

	if err := client.AdminPublishNextTurn(ctx, testPasscode); err != nil {
		t.Fatalf("AdminPublishNextTurn failed: %v", err)
	}

	status, err := client.TurnStatus(ctx)
	if err != nil {
		t.Fatalf("TurnStatus failed: %v", err)
	}
	if status.TurnNumber != 2 || status.Phase != models.PhaseOpen {
		t.Errorf("Expected open turn 2, got turn %d phase %s", status.TurnNumber, status.Phase)
	}

	entries, err := client.PublicTurnLog(ctx, 0)
	if err != nil {
		t.Fatalf("PublicTurnLog failed: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}
	if entries[0].TurnNumber != 1 || entries[0].Resolution != resolution {
		t.Errorf("Expected turn 1 resolution in the log, got %+v", entries[0])
	}
}

func TestHandler_ListFactions(t *testing.T) {
	client := newRemoteClient(t)

	factions, err := client.ListFactions(context.Background())
	if err != nil {
		t.Fatalf("ListFactions failed: %v", err)
	}
	if len(factions) != 3 {
		t.Fatalf("Expected 3 factions, got %d", len(factions))
	}
	if factions[0].DisplayName != "Flatland Tribes" {
		t.Errorf("Expected Flatland Tribes first, got %s", factions[0].DisplayName)
	}
}
