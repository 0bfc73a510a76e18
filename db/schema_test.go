// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"path/filepath"
	"testing"
)

func TestRebind(t *testing.T) {
	tests := []struct {
		name    string
		dialect Dialect
		query   string
		want    string
	}{
		{"sqlite untouched", DialectSQLite, "SELECT * FROM faction WHERE id = ?", "SELECT * FROM faction WHERE id = ?"},
		{"postgres numbered", DialectPostgres, "INSERT INTO faction (id, display_name) VALUES (?, ?)", "INSERT INTO faction (id, display_name) VALUES ($1, $2)"},
		{"postgres no placeholders", DialectPostgres, "SELECT 1", "SELECT 1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Rebind(tt.dialect, tt.query); got != tt.want {
				t.Errorf("Rebind(%q) = %q, want %q", tt.query, got, tt.want)
			}
		})
	}
}

func TestOpenAndCreateSchema(t *testing.T) {
	conn, err := Open(DialectSQLite, filepath.Join(t.TempDir(), "mapso.sqlite"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer conn.Close()

	if err := CreateSchema(conn); err != nil {
		t.Fatalf("CreateSchema failed: %v", err)
	}
	// Idempotent.
	if err := CreateSchema(conn); err != nil {
		t.Fatalf("second CreateSchema failed: %v", err)
	}

	if _, err := conn.Exec(`INSERT INTO faction (id, display_name) VALUES ('southport', 'Southport')`); err != nil {
		t.Fatalf("insert failed: %v", err)
	}

	var count int
	if err := conn.QueryRow(`SELECT COUNT(*) FROM faction`).Scan(&count); err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("expected 1 faction, got %d", count)
	}
}

func TestOpenRejectsUnknownDialect(t *testing.T) {
	if _, err := Open(Dialect("oracle"), "dsn"); err == nil {
		t.Error("expected error for unsupported dialect")
	}
}
