// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package worldstate loads and validates the shared world-map snapshot.

The snapshot is a single JSON document with the turn number, players,
provinces, map configuration, markers, and events. Loader re-reads it from
disk on every call so edits are visible immediately; nothing is cached.

# Boundary Validation

Parse rejects documents with a missing map image or non-positive map
dimensions. Referential problems degrade instead of failing:

  - a marker whose provinceId does not resolve is skipped
  - a province whose owner does not resolve renders as "Unclaimed"

# Capital View

Capital assembles the per-province detail page: owner, income, flavour text
tiered by building tags ("X" legendary, "V" thriving, struggling default),
built and possible buildings with icon paths, and the capital image file
(<provinceId>.jpg unless overridden).
*/
package worldstate
