/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// GameKind classifies a single round from one player's perspective.
type GameKind int

const (
	GameWin GameKind = iota
	GameLoss
	GameTie
	GameBye
	GameForfeit
)

func (k GameKind) String() string {
	switch k {
	case GameWin:
		return "win"
	case GameLoss:
		return "loss"
	case GameTie:
		return "tie"
	case GameBye:
		return "bye"
	case GameForfeit:
		return "forfeit"
	default:
		return "?"
	}
}

// Order records whether a player went first or second in a game.
type Order int

const (
	OrderUnknown Order = iota
	OrderFirst
	OrderSecond
)

// GameResult is one round of a player's record.
type GameResult struct {
	// 1-based
	Round         int
	Kind          GameKind
	OpponentIndex int
	OpponentName  string
	PlayerScore   int
	OpponentScore int
	Spread        int
	Order         Order
}

// PlayerStats are the aggregate statistics for one player in a division.
type PlayerStats struct {
	Player *RawPlayer

	Wins   int
	Losses int
	Ties   int
	Spread int
	// rounded to 2 decimal places; 0 when no games have been played
	AverageScore float64
	HighScore    int

	// byes and forfeits are not games played
	GamesPlayed          int
	AverageOpponentScore float64
	CurrentRating        int
	RatingChange         int
	Games                []GameResult
}

// DivisionStats holds the statistics of every player in a division,
// including the Bye sentinel at index 0.
type DivisionStats struct {
	Division *RawDivision
	Players  []PlayerStats
	Summary  DivisionSummary
}

// CalculatePlayerStats walks p's rounds against the division's full player
// list (Bye sentinel included) and returns p's aggregate statistics.
func CalculatePlayerStats(p *RawPlayer, all []RawPlayer) (PlayerStats, error) {
	stats := PlayerStats{
		Player: p,
		Games:  make([]GameResult, 0, len(p.Pairings)),
	}

	if len(p.Pairings) != len(p.Scores) {
		return stats, fmt.Errorf("%v has %v pairings but %v scores: %w",
			p.Name, len(p.Pairings), len(p.Scores), ErrIndexOutOfRange)
	}

	totalScore := 0
	totalOppScore := 0
	for i, oppIdx := range p.Pairings {
		score := p.Scores[i]
		game := GameResult{
			Round:         i + 1,
			OpponentIndex: oppIdx,
			PlayerScore:   score,
			Order:         orderForRound(p, i),
		}

		if oppIdx == 0 {
			// bye or forfeit; spread moves but no game was played
			stats.Spread += score
			game.Spread = score
			game.OpponentName = ByeName
			if score > 0 {
				stats.Wins++
				game.Kind = GameBye
			} else {
				stats.Losses++
				game.Kind = GameForfeit
			}
			stats.Games = append(stats.Games, game)
			continue
		}

		if oppIdx < 0 || oppIdx >= len(all) {
			return stats, fmt.Errorf("%v round %v: opponent %v not in division of %v: %w",
				p.Name, i+1, oppIdx, len(all)-1, ErrIndexOutOfRange)
		}
		opp := &all[oppIdx]
		if i >= len(opp.Scores) {
			return stats, fmt.Errorf("%v round %v: opponent %v has only %v scores: %w",
				p.Name, i+1, opp.Name, len(opp.Scores), ErrIndexOutOfRange)
		}

		oppScore := opp.Scores[i]
		game.OpponentName = opp.Name
		game.OpponentScore = oppScore
		game.Spread = score - oppScore
		stats.Spread += game.Spread

		if score > oppScore {
			stats.Wins++
			game.Kind = GameWin
		} else if score < oppScore {
			stats.Losses++
			game.Kind = GameLoss
		} else {
			stats.Ties++
			game.Kind = GameTie
		}

		totalScore += score
		totalOppScore += oppScore
		if score > stats.HighScore {
			stats.HighScore = score
		}
		stats.GamesPlayed++
		stats.Games = append(stats.Games, game)
	}

	stats.AverageScore = roundHundredths(totalScore, stats.GamesPlayed)
	stats.AverageOpponentScore = roundHundredths(totalOppScore,
		stats.GamesPlayed)

	stats.CurrentRating = p.Rating
	if n := len(p.Etc.NewRatings); n > 0 {
		stats.CurrentRating = p.Etc.NewRatings[n-1]
		stats.RatingChange = stats.CurrentRating - p.Rating
	}

	return stats, nil
}

func orderForRound(p *RawPlayer, round int) Order {
	if round >= len(p.Etc.P12) {
		return OrderUnknown
	}
	switch p.Etc.P12[round] {
	case 1:
		return OrderFirst
	case 2:
		return OrderSecond
	default:
		return OrderUnknown
	}
}

// roundHundredths returns num/den rounded half away from zero to 2 decimal
// places, or 0 when den is 0. Integer arithmetic keeps boundary cases such
// as 3201/8 (400.125 -> 400.13) exact.
func roundHundredths(num int, den int) float64 {
	return roundRatio(num, den, 100)
}

func roundRatio(num int, den int, scale int) float64 {
	if den == 0 {
		return 0
	}
	neg := (num < 0) != (den < 0)
	if num < 0 {
		num = -num
	}
	if den < 0 {
		den = -den
	}
	scaled := (2*scale*num + den) / (2 * den)
	if neg {
		scaled = -scaled
	}

	return float64(scaled) / float64(scale)
}

// CalculateDivisionStats computes statistics for every player of d,
// the Bye sentinel included, plus the division summary.
func CalculateDivisionStats(d *RawDivision) (*DivisionStats, error) {
	ds := &DivisionStats{
		Division: d,
		Players:  make([]PlayerStats, 0, len(d.Players)),
	}
	for idx := range d.Players {
		stats, err := CalculatePlayerStats(&d.Players[idx], d.Players)
		if err != nil {
			return nil, fmt.Errorf("tsh.stats: division %v: %w", d.Name, err)
		}
		ds.Players = append(ds.Players, stats)
	}
	ds.Summary = summarizeDivision(ds)

	return ds, nil
}

// CalculateTournamentStats computes every division of t concurrently. The
// returned slice is in the same order as t.Divisions.
func CalculateTournamentStats(ctx context.Context,
	t *Tournament) ([]*DivisionStats, error) {

	results := make([]*DivisionStats, len(t.Divisions))
	g, gctx := errgroup.WithContext(ctx)
	for idx := range t.Divisions {
		idx := idx
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ds, err := CalculateDivisionStats(&t.Divisions[idx])
			if err != nil {
				return err
			}
			results[idx] = ds
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
