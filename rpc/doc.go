// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rpc defines the backend RPC surface and its HTTP client.

# Service

Service mirrors the backend operations one-for-one: turn_status,
submit_turn, the passcode-gated admin operations, public_turn_log, and the
faction reference read. Handlers depend on this interface, so the embedded
storage-backed backend and a remote one are interchangeable.

# Client

Client posts JSON to /rpc/<operation> on a remote backend:

	client := rpc.NewClient("https://backend.example")
	status, err := client.TurnStatus(ctx)

Backend failures come back as *Error with the backend's human-readable
message, which is always surfaced to the user verbatim and never retried.
*/
package rpc
