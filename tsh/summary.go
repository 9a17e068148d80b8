/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

// DivisionSummary aggregates every game played in a division. Each pairing
// is counted once; byes and forfeits are not games.
type DivisionSummary struct {
	GamesPlayed  int
	PointsScored int
	// per player per game, 2 decimal places
	AverageScore        float64
	AverageWinningScore int
	AverageLosingScore  int
	// percentages of GamesPlayed, 1 decimal place
	HigherSeedWinPercentage float64
	GoingFirstWinPercentage float64
}

func summarizeDivision(ds *DivisionStats) DivisionSummary {
	var sum DivisionSummary
	var winTotal, winCount, loseTotal, loseCount int
	var higherSeedWins, goingFirstWins int

	for idx, ps := range ds.Players {
		for _, g := range ps.Games {
			if g.Kind == GameBye || g.Kind == GameForfeit ||
				g.OpponentIndex <= idx {
				continue
			}
			sum.GamesPlayed++
			sum.PointsScored += g.PlayerScore + g.OpponentScore

			switch g.Kind {
			case GameWin:
				winTotal += g.PlayerScore
				loseTotal += g.OpponentScore
			case GameLoss:
				winTotal += g.OpponentScore
				loseTotal += g.PlayerScore
			}
			if g.Kind != GameTie {
				winCount++
				loseCount++
			}

			playerIsHigherSeed := higherSeed(ds, idx, g.OpponentIndex)
			if (g.Kind == GameWin && playerIsHigherSeed) ||
				(g.Kind == GameLoss && !playerIsHigherSeed) {
				higherSeedWins++
			}
			order := g.Order
			if order == OrderUnknown {
				order = opponentOrder(ds, g)
			}
			if (order == OrderFirst && g.Kind == GameWin) ||
				(order == OrderSecond && g.Kind == GameLoss) {
				goingFirstWins++
			}
		}
	}

	sum.AverageScore = roundHundredths(sum.PointsScored, 2*sum.GamesPlayed)
	sum.AverageWinningScore = int(roundRatio(winTotal, winCount, 1))
	sum.AverageLosingScore = int(roundRatio(loseTotal, loseCount, 1))
	sum.HigherSeedWinPercentage = roundRatio(100*higherSeedWins,
		sum.GamesPlayed, 10)
	sum.GoingFirstWinPercentage = roundRatio(100*goingFirstWins,
		sum.GamesPlayed, 10)

	return sum
}

// higherSeed reports whether the player at pairing index a outseeds the one
// at b. Ids are compared only when both players have one; otherwise an id
// from one side and a pairing index from the other would be mixed, so
// pairing order decides.
func higherSeed(ds *DivisionStats, a int, b int) bool {
	idA := ds.Division.Players[a].ID
	idB := ds.Division.Players[b].ID
	if idA > 0 && idB > 0 {
		return idA < idB
	}
	return a < b
}

// opponentOrder infers a player's order from the opponent's side of the game
func opponentOrder(ds *DivisionStats, g GameResult) Order {
	oppGames := ds.Players[g.OpponentIndex].Games
	if g.Round > len(oppGames) {
		return OrderUnknown
	}
	switch oppGames[g.Round-1].Order {
	case OrderFirst:
		return OrderSecond
	case OrderSecond:
		return OrderFirst
	default:
		return OrderUnknown
	}
}
