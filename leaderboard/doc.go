// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package leaderboard derives faction rankings from the world state.

Compute produces income, levy, and gold standings in one pass. All
computations are stateless views over the snapshot; ties share the lead
rather than being broken arbitrarily, and the levies leader gets a bonus
preview of LevyBonusPerProvince per owned province.
*/
package leaderboard
