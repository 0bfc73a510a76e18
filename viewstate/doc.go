// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package viewstate models page state as explicit immutable values.

FormatStatus turns a TurnStatus into the status panel's display strings.

AdminView is the admin console state; every event (status refresh, new
resolution list, faction switch) produces a new value. SelectFaction
repopulates the form from the chosen faction's saved resolution, or blanks
it, so edits never leak between factions.

Sequencer guards against stale in-flight refreshes: responses carrying an
id older than the latest issued request are discarded.
*/
package viewstate
