// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db owns the game backend's schema and database plumbing.

Open connects with the right driver for the configured dialect (modernc
sqlite or lib/pq postgres). CreateSchema is idempotent. Queries elsewhere
are written with ? placeholders and passed through Rebind, which rewrites
them to $n for postgres.

Tables:

  - game_turn: one row per turn; the highest turn_number is current
  - faction: reference list of faction ids and display names
  - submission: append-only order payloads, latest per faction wins
  - resolution: one admin-authored outcome per (turn, faction)
*/
package db
