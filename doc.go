// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Mapso API server.

Mapso is a turn-based play-by-web strategy game. The server drives the
submission form, admin console, map, leaderboard, capital pages, and the
skirmish calculator for one campaign.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=mapso.db GAME_PASSCODE=... STATE_FILE=state.json go run main.go

Or with flags:

	go run main.go -p 3414 -d mapso.db -s state.json -passcode ...

# Configuration

Required settings:

  - STATE_FILE (-s): world state document path
  - DATABASE_URL (-d): database connection string (embedded backend)
  - GAME_PASSCODE (-passcode): shared submission and admin passcode

Optional settings:

  - PORT (-p): server port (default: 3414)
  - BACKEND_URL (-b): remote backend URL; set to skip the embedded backend
  - DATABASE_TYPE (-t): sqlite or postgres (default: sqlite)
  - TURN_HOURS (-turn-hours): hours a new turn stays open (default: 72)

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (status, orders, admin, world, skirmish)
  - router: route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: domain and request/response types
  - rpc: the backend interface and its HTTP client
  - backend: the embedded storage-backed backend and its RPC surface
  - submission: submission assembly, validation, and normalization
  - worldstate: the shared snapshot document and capital views
  - leaderboard: rankings derived from the world state
  - skirmish: the dice calculator
  - viewstate: formatted panel views and the admin console view state
  - factions: faction list resolution with a compiled-in fallback
  - auth: passcode validation
  - db: connection handling and schema creation
  - cliparse: configuration parsing

See package documentation for each component.
*/
package main
