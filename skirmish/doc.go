// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package skirmish implements the ad hoc dice-roll combat calculator.

A skirmish multiplies three d6 rolls (training, manpower, surprise) and
succeeds when the product meets a player-supplied threat value:

	result, err := skirmish.Resolve(skirmish.Request{
		Gold:   1200,
		Levies: 250,
		Threat: 40,
		Seed:   seed,
	})

Gold above 1000 floors the training die at 3. Levies at 200 or more floor
the manpower die at 3; above 200 the manpower die is rolled twice and the
higher roll kept (see ManpowerAdvantageRollsTwice).

Resolve is pure and deterministic for a given Seed. Nothing is persisted.
*/
package skirmish
