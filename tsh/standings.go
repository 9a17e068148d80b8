/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"sort"
)

// Standing is a player's 1-based place within a division.
type Standing struct {
	Number int
	Stats  PlayerStats
}

// Rank orders a division's players by wins (desc), ties (desc), losses
// (asc) and spread (desc). Players equal on all four keep their pairing
// order, and each is given its own standing number. The Bye sentinel is
// never ranked.
func Rank(ds *DivisionStats) []Standing {
	if len(ds.Players) <= 1 {
		return []Standing{}
	}

	players := make([]PlayerStats, len(ds.Players)-1)
	copy(players, ds.Players[1:])
	sort.SliceStable(players, func(i, j int) bool {
		return standingLess(&players[i], &players[j])
	})

	standings := make([]Standing, len(players))
	for idx, p := range players {
		standings[idx] = Standing{
			Number: idx + 1,
			Stats:  p,
		}
	}

	return standings
}

func standingLess(a *PlayerStats, b *PlayerStats) bool {
	if a.Wins != b.Wins {
		return a.Wins > b.Wins
	}
	if a.Ties != b.Ties {
		return a.Ties > b.Ties
	}
	if a.Losses != b.Losses {
		return a.Losses < b.Losses
	}
	return a.Spread > b.Spread
}
