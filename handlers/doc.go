// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Mapso API.

# Handler Types

Each handler is a struct created via a constructor:

  - StatusHandler: turn status, faction list, public turn log
  - OrdersHandler: submission form (validate, preview, submit)
  - AdminHandler: admin console (submissions, resolutions, lock, publish)
  - WorldHandler: world-state snapshot, leaderboard, capital pages
  - SkirmishHandler: the skirmish dice calculator

Backend-facing handlers accept an rpc.Service, so they work identically
against the embedded backend or a remote one:

	statusHandler := handlers.NewStatusHandler(svc)

World-facing handlers read the snapshot document through worldstate.Loader:

	worldHandler := handlers.NewWorldHandler(worldstate.Loader{Path: cfg.StateFile})

# Turn Lifecycle

The current turn moves OPEN → LOCKED → RESOLVED:

	GET  /api/turn-status        → GetTurnStatus
	POST /api/orders             → SubmitOrders (OPEN only)
	POST /api/admin/lock         → LockTurn
	POST /api/admin/resolutions  → SaveResolution
	POST /api/admin/publish      → PublishTurn (opens the next turn)

Admin operations require the X-Admin-Passcode header; player submissions
carry the shared passcode in the request body.

# Validation

Submissions are validated before they reach the backend. Incomplete orders
get a 422 with every violated rule listed, in checklist order.
*/
package handlers
