// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Mapso API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(svc, cfg)

# Endpoints

Health:

	GET /health

Turn status and reference data (public):

	GET /api/turn-status - Current turn snapshot with formatted view
	GET /api/factions    - Faction list (falls back to compiled-in set)
	GET /api/turn-log    - Published resolutions, newest first

Submission form (shared passcode in the body):

	POST /api/orders         - Validate and submit orders
	POST /api/orders/preview - Checklist and improvement chance for a draft

Admin console (requires X-Admin-Passcode):

	GET  /api/admin/submissions - Stored submissions for the current turn
	GET  /api/admin/resolutions - Saved resolutions for the current turn
	POST /api/admin/resolutions - Save or overwrite a faction's resolution
	POST /api/admin/lock        - Lock the current turn
	POST /api/admin/publish     - Resolve the turn and open the next
	GET  /api/admin/overview    - Console view state in one fetch

World snapshot pages (public):

	GET /api/state         - Map configuration, markers, events
	GET /api/leaderboard   - Income, levies, and gold rankings
	GET /api/capitals/{id} - Capital detail page

Skirmish calculator (public):

	POST /api/skirmish - Roll the three dice for a faction

Backend RPC (only when the backend runs embedded):

	POST /rpc/{operation}

# Handler Initialization

The router creates handler instances with dependency injection:

	statusHandler := handlers.NewStatusHandler(svc)
	worldHandler := handlers.NewWorldHandler(loader)

Backend-facing handlers receive the rpc.Service; world-facing handlers
receive the state document loader.
*/
package router
