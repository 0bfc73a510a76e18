// Copyright (c) 2025 Fahry Jean.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package leaderboard

import (
	"sort"

	"github.com/FahryJean/Mapso/worldstate"
)

// LevyBonusPerProvince scales the non-authoritative bonus preview shown for
// the levies leader.
const LevyBonusPerProvince = 20

// Leaders is the set of faction keys tied for the maximum of one ranking.
type Leaders struct {
	Factions []string `json:"factions"`
	Value    int      `json:"value"`
}

// Board bundles the three independent rankings plus the levy bonus preview
// for each levies leader.
type Board struct {
	Income    Leaders        `json:"income"`
	Levies    Leaders        `json:"levies"`
	Gold      Leaders        `json:"gold"`
	LevyBonus map[string]int `json:"levy_bonus"`
}

func leadersFrom(values map[string]int) Leaders {
	if len(values) == 0 {
		return Leaders{Factions: []string{}}
	}

	first := true
	max := 0
	for _, v := range values {
		if first || v > max {
			max = v
			first = false
		}
	}

	var keys []string
	for k, v := range values {
		if v == max {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return Leaders{Factions: keys, Value: max}
}

// Income ranks factions by total income over their owned provinces.
func Income(s *worldstate.WorldState) Leaders {
	totals := make(map[string]int, len(s.Players))
	for key := range s.Players {
		totals[key] = 0
	}
	for _, prov := range s.Provinces {
		if _, ok := totals[prov.Owner]; ok {
			totals[prov.Owner] += prov.Income
		}
	}
	return leadersFrom(totals)
}

// Levies ranks factions by standing levies.
func Levies(s *worldstate.WorldState) Leaders {
	values := make(map[string]int, len(s.Players))
	for key, p := range s.Players {
		values[key] = p.Levies
	}
	return leadersFrom(values)
}

// Gold ranks factions by treasury.
func Gold(s *worldstate.WorldState) Leaders {
	values := make(map[string]int, len(s.Players))
	for key, p := range s.Players {
		values[key] = p.Gold
	}
	return leadersFrom(values)
}

// LevyBonusPreview estimates the levies leader's bonus from province count.
// The estimate is display-only; the backend owns the real number.
func LevyBonusPreview(s *worldstate.WorldState, factionKey string) int {
	return len(s.OwnedProvinces(factionKey)) * LevyBonusPerProvince
}

// Compute assembles the full leaderboard view.
func Compute(s *worldstate.WorldState) Board {
	levies := Levies(s)
	bonus := make(map[string]int, len(levies.Factions))
	for _, key := range levies.Factions {
		bonus[key] = LevyBonusPreview(s, key)
	}
	return Board{
		Income:    Income(s),
		Levies:    levies,
		Gold:      Gold(s),
		LevyBonus: bonus,
	}
}
