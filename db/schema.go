// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"
)

// Dialect selects the SQL flavour the store runs on.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// Open opens a database connection for the dialect and verifies it.
func Open(dialect Dialect, dsn string) (*sql.DB, error) {
	var driver string
	switch dialect {
	case DialectSQLite:
		driver = "sqlite"
	case DialectPostgres:
		driver = "postgres"
	default:
		return nil, fmt.Errorf("unsupported database type %q", dialect)
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", dialect, err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping %s database: %w", dialect, err)
	}
	return conn, nil
}

// Rebind rewrites ? placeholders to $1, $2, ... for postgres. Queries in this
// repository are written with ? and contain no literal question marks.
func Rebind(dialect Dialect, query string) string {
	if dialect != DialectPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CreateSchema creates all tables needed by the game backend.
// Safe to call multiple times - uses IF NOT EXISTS.
func CreateSchema(conn *sql.DB) error {
	if _, err := conn.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const schema = `
-- Turns
CREATE TABLE IF NOT EXISTS game_turn (
    turn_number INTEGER PRIMARY KEY,
    phase TEXT NOT NULL DEFAULT 'OPEN' CHECK (phase IN ('OPEN', 'LOCKED', 'RESOLVED')),
    closes_at TIMESTAMP NOT NULL,
    created_at TIMESTAMP NOT NULL
);

-- Factions
CREATE TABLE IF NOT EXISTS faction (
    id TEXT PRIMARY KEY,
    display_name TEXT NOT NULL
);

-- Submissions (append-only; latest per faction wins, seq orders rows
-- that share a submitted_at)
CREATE TABLE IF NOT EXISTS submission (
    id TEXT PRIMARY KEY,
    seq INTEGER NOT NULL,
    turn_number INTEGER NOT NULL REFERENCES game_turn(turn_number),
    faction_id TEXT NOT NULL REFERENCES faction(id),
    payload TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL,
    updated_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_submission_turn_faction ON submission(turn_number, faction_id);

-- Resolutions (one per turn and faction; re-saving overwrites)
CREATE TABLE IF NOT EXISTS resolution (
    turn_number INTEGER NOT NULL REFERENCES game_turn(turn_number),
    faction_id TEXT NOT NULL REFERENCES faction(id),
    event_outcome TEXT NOT NULL DEFAULT '',
    improvement_result TEXT NOT NULL DEFAULT '',
    improvement_notes TEXT NOT NULL DEFAULT '',
    campaign_outcome TEXT NOT NULL DEFAULT '',
    resolved_at TIMESTAMP NOT NULL,
    PRIMARY KEY (turn_number, faction_id)
);
`
