/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"fmt"
	"sort"
	"strings"
)

type LeaderCategory int

const (
	LeaderHighScore LeaderCategory = iota
	LeaderAverageScore
	LeaderRatingGain
)

func (c LeaderCategory) String() string {
	switch c {
	case LeaderHighScore:
		return "high score"
	case LeaderAverageScore:
		return "average score"
	case LeaderRatingGain:
		return "rating gain"
	default:
		return "?"
	}
}

// ParseLeaderCategory accepts "high", "average"/"avg" and "rating"/"gain".
func ParseLeaderCategory(s string) (LeaderCategory, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "high", "highscore", "high-score":
		return LeaderHighScore, nil
	case "average", "avg", "averagescore", "average-score":
		return LeaderAverageScore, nil
	case "rating", "gain", "ratinggain", "rating-gain":
		return LeaderRatingGain, nil
	default:
		return LeaderHighScore, fmt.Errorf("unknown leader category %q", s)
	}
}

// Leaders returns up to n players of a division ordered best first in the
// given category. Players without a game played are left out of the score
// categories. n <= 0 means no limit.
func Leaders(ds *DivisionStats, category LeaderCategory, n int) []PlayerStats {
	var players []PlayerStats
	for idx, p := range ds.Players {
		if idx == 0 {
			continue
		}
		if category != LeaderRatingGain && p.GamesPlayed == 0 {
			continue
		}
		players = append(players, p)
	}

	sort.SliceStable(players, func(i, j int) bool {
		switch category {
		case LeaderAverageScore:
			return players[i].AverageScore > players[j].AverageScore
		case LeaderRatingGain:
			return players[i].RatingChange > players[j].RatingChange
		default:
			return players[i].HighScore > players[j].HighScore
		}
	})

	if n > 0 && len(players) > n {
		players = players[:n]
	}

	return players
}
