// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package backend implements the storage-backed game backend.

Service satisfies rpc.Service, so the presentation handlers work identically
against an embedded backend or a remote one reached through rpc.Client:

	conn, _ := db.Open(db.DialectSQLite, "mapso.db")
	db.CreateSchema(conn)
	svc := backend.New(conn, db.DialectSQLite, passcode)
	svc.EnsureSeeded(ctx)

Handler exposes the same operations over HTTP for remote clients:

	mux.Handle("/rpc/", backend.Handler(svc))

# Turn Lifecycle

A turn is OPEN while factions submit, LOCKED while the admin resolves, and
RESOLVED once the next turn is published. Exactly one turn is current at any
time: the one with the highest number. Publishing marks the current turn
RESOLVED and opens turn N+1 in a single transaction.

Submissions are append-only; resubmitting inserts a new row and the newest row
per faction is the one that counts. Resolutions upsert on (turn, faction).
*/
package backend
