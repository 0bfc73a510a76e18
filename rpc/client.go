// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/FahryJean/Mapso/models"
)

// Error carries a backend failure. Message is shown to the user verbatim and
// the call is never retried automatically.
type Error struct {
	StatusCode int
	Message    string
}

func (e *Error) Error() string {
	return e.Message
}

// Client calls a remote backend's /rpc endpoints.
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient returns a client for the backend at baseURL.
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 8 * time.Second},
	}
}

var _ Service = (*Client)(nil)

// Wire request shapes. Field names follow the backend's RPC parameters.
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

func (c *Client) call(ctx context.Context, op string, in, out interface{}) error {
	var body bytes.Buffer
	if in != nil {
		if err := json.NewEncoder(&body).Encode(in); err != nil {
			return fmt.Errorf("encode %s request: %w", op, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/rpc/"+op, &body)
	if err != nil {
		return fmt.Errorf("build %s request: %w", op, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("call %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp models.ErrorResponse
		if decodeErr := json.NewDecoder(resp.Body).Decode(&errResp); decodeErr == nil && errResp.Message != "" {
			return &Error{StatusCode: resp.StatusCode, Message: errResp.Message}
		}
		return &Error{StatusCode: resp.StatusCode, Message: fmt.Sprintf("backend status %d", resp.StatusCode)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode %s response: %w", op, err)
	}
	return nil
}

func (c *Client) TurnStatus(ctx context.Context) (models.TurnStatus, error) {
	var status models.TurnStatus
	err := c.call(ctx, "turn_status", nil, &status)
	return status, err
}

func (c *Client) SubmitTurn(ctx context.Context, factionID, passcode string, payload models.SubmissionPayload) error {
	return c.call(ctx, "submit_turn", submitTurnParams{
		FactionID: factionID,
		Passcode:  passcode,
		Payload:   payload,
	}, nil)
}

func (c *Client) AdminListSubmissions(ctx context.Context, passcode string) ([]models.Submission, error) {
	var subs []models.Submission
	err := c.call(ctx, "admin_list_submissions", passcodeParams{Passcode: passcode}, &subs)
	return subs, err
}

func (c *Client) AdminListResolutions(ctx context.Context, passcode string) ([]models.FactionResolution, error) {
	var resolutions []models.FactionResolution
	err := c.call(ctx, "admin_list_resolutions", passcodeParams{Passcode: passcode}, &resolutions)
	return resolutions, err
}

func (c *Client) AdminSaveResolution(ctx context.Context, passcode, factionID string, resolution models.Resolution) error {
	return c.call(ctx, "admin_save_resolution", saveResolutionParams{
		Passcode:   passcode,
		FactionID:  factionID,
		Resolution: resolution,
	}, nil)
}

func (c *Client) AdminLockTurn(ctx context.Context, passcode string) error {
	return c.call(ctx, "admin_lock_turn", passcodeParams{Passcode: passcode}, nil)
}

func (c *Client) AdminPublishNextTurn(ctx context.Context, passcode string) error {
	return c.call(ctx, "admin_publish_next_turn", passcodeParams{Passcode: passcode}, nil)
}

func (c *Client) PublicTurnLog(ctx context.Context, limitTurns int) ([]models.TurnLogEntry, error) {
	var entries []models.TurnLogEntry
	err := c.call(ctx, "public_turn_log", turnLogParams{LimitTurns: limitTurns}, &entries)
	return entries, err
}

func (c *Client) ListFactions(ctx context.Context) ([]models.Faction, error) {
	var factions []models.Faction
	err := c.call(ctx, "list_factions", nil, &factions)
	return factions, err
}
