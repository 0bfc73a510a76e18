// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/FahryJean/Mapso/backend"
	"github.com/FahryJean/Mapso/cliparse"
	"github.com/FahryJean/Mapso/db"
)

// TestPasscode is the shared game passcode used by all test fixtures.
const TestPasscode = "test-passcode"

// SampleWorldState is a small but complete world-state document: two players,
// three provinces, one dangling marker, one event.
const SampleWorldState = `{
  "turn": 5,
  "players": {
    "imperial_core": {"name": "Imperial Core", "gold": 1200, "capital": "goldfort", "levies": 250, "colour": "#7a1f1f", "faction": "imperial_core"},
    "southport": {"name": "Southport", "gold": 400, "capital": "southport_city", "levies": 120, "colour": "#1f3d7a", "faction": "southport"}
  },
  "provinces": {
    "goldfort": {"name": "Goldfort", "type": "city", "owner": "imperial_core", "income": 60, "buildings": ["Imperial Jewel (X)", "Blacksmith"]},
    "southport_city": {"name": "Southport City", "type": "port", "owner": "southport", "income": 45, "buildings": ["Marketplace (V)"]},
    "borderlands": {"name": "Borderlands", "type": "rural", "owner": "", "income": 10, "buildings": []}
  },
  "map": {"image": "map.jpg", "width": 1400, "height": 900},
  "markers": [
    {"provinceId": "goldfort", "x": 300, "y": 200},
    {"provinceId": "southport_city", "x": 800, "y": 650},
    {"provinceId": "ghost_town", "x": 10, "y": 10}
  ],
  "events": [
    {"id": "harvest_festival", "title": "Harvest Festival", "description": "The granaries are full.", "type": "boon", "x": 500, "y": 400}
  ]
}`

// SetupTestDB creates a fresh sqlite database with the full schema
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	conn, err := db.Open(db.DialectSQLite, filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestBackend creates a seeded embedded backend over a fresh database
func SetupTestBackend(t *testing.T) *backend.Service {
	t.Helper()

	svc := backend.New(SetupTestDB(t), db.DialectSQLite, TestPasscode)
	if err := svc.EnsureSeeded(context.Background()); err != nil {
		t.Fatalf("Failed to seed backend: %v", err)
	}
	return svc
}

// WriteStateFile writes a world-state document to a temp file and returns
// its path
func WriteStateFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write state file: %v", err)
	}
	return path
}

// GetTestConfig returns a standard test configuration
func GetTestConfig(t *testing.T) cliparse.Config {
	return cliparse.Config{
		Port:         3414,
		DatabaseURL:  filepath.Join(t.TempDir(), "test.db"),
		DatabaseType: "sqlite",
		StateFile:    WriteStateFile(t, SampleWorldState),
		Passcode:     TestPasscode,
		TurnHours:    72,
	}
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
