// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: server listen port (default: 3414)
  - BackendURL: remote backend URL; empty runs the embedded backend
  - DatabaseURL: database connection string (required when embedded)
  - DatabaseType: sqlite or postgres (default: sqlite)
  - StateFile: world state document path (required)
  - Passcode: shared game passcode (required when embedded)
  - TurnHours: hours a freshly published turn stays open (default: 72)

# CLI Flags

	-p           Server port
	-b           Remote backend URL
	-d           Database URL
	-t           Database type
	-s           World state document path
	-passcode    Game passcode
	-turn-hours  Turn length in hours

# Environment Variables

Flags fall back to environment variables:

	PORT          → -p
	BACKEND_URL   → -b
	DATABASE_URL  → -d
	DATABASE_TYPE → -t
	STATE_FILE    → -s
	GAME_PASSCODE → -passcode
	TURN_HOURS    → -turn-hours

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if required values are missing:

  - STATE_FILE must always be provided
  - DATABASE_URL and GAME_PASSCODE must be provided when no BACKEND_URL is set

# Example

	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	conn, err := db.Open(db.Dialect(cfg.DatabaseType), cfg.DatabaseURL)
	// ...
	mux := router.NewRouter(svc, cfg)
*/
package cliparse
