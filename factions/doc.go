// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package factions resolves the faction reference list.

Resolve tries the remote source first and falls back to a compiled-in
default set when the source is unreachable, so pages always have a usable
list. The result is sorted by display name either way:

	list := factions.Resolve(ctx, svc)

The fallback set mirrors the seeded factions: Flatland Tribes, Imperial
Core, Southport.
*/
package factions
