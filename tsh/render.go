/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"fmt"
	"strings"
)

// BuildStandingsOutput formats every division's standings as aligned text
func BuildStandingsOutput(r *Results) string {
	var sb strings.Builder
	writeEventHeader(&sb, r)

	if len(r.Divisions) == 0 {
		sb.WriteString("No divisions found\n")
		return sb.String()
	}

	for _, ds := range r.Divisions {
		if len(r.Divisions) > 1 {
			sb.WriteString(fmt.Sprintf("Division %v\n", divisionLabel(ds)))
		}

		headers := []string{"Place", "Name", "W", "L", "T", "Spread", "Avg",
			"High"}
		var rows [][]string
		for _, s := range Rank(ds) {
			p := s.Stats
			rows = append(rows, []string{
				fmt.Sprintf("%v.", s.Number),
				FormatName(p.Player.Name),
				fmt.Sprintf("%d", p.Wins),
				fmt.Sprintf("%d", p.Losses),
				fmt.Sprintf("%d", p.Ties),
				fmt.Sprintf("%+d", p.Spread),
				fmt.Sprintf("%.2f", p.AverageScore),
				fmt.Sprintf("%d", p.HighScore),
			})
		}
		writeTable(&sb, headers, rows)
		sb.WriteString("\n")
	}

	return sb.String()
}

// BuildCrossTableOutput formats a division's round by round results, one row
// per player in standings order. When filterName is non-empty only the
// matching player and their opponents are shown.
func BuildCrossTableOutput(ds *DivisionStats, includeDivisionHeader bool,
	filterName string) string {

	standings := Rank(ds)

	// If filtering, determine which pairing indices to include (player +
	// opponents)
	var includeSet map[int]bool
	filteredIdx := -1
	if filterName != "" {
		includeSet = make(map[int]bool)
		needle := strings.ToLower(filterName)
		for idx, p := range ds.Players {
			if idx == 0 {
				continue
			}
			if strings.Contains(strings.ToLower(FormatName(p.Player.Name)), needle) ||
				strings.Contains(strings.ToLower(p.Player.Name), needle) {
				filteredIdx = idx
				includeSet[idx] = true
				for _, g := range p.Games {
					if g.OpponentIndex > 0 {
						includeSet[g.OpponentIndex] = true
					}
				}
				break
			}
		}
	}

	var sb strings.Builder
	if includeDivisionHeader {
		sb.WriteString(fmt.Sprintf("Division %v\n", divisionLabel(ds)))
	}

	numRounds := 0
	for _, p := range ds.Players {
		if len(p.Games) > numRounds {
			numRounds = len(p.Games)
		}
	}
	headers := []string{"No", "Name", "Rec", "Spread"}
	for i := 1; i <= numRounds; i++ {
		headers = append(headers, fmt.Sprintf("R%d", i))
	}

	byeFound := false
	var rows [][]string
	for _, s := range standings {
		idx := pairingIndex(ds, s.Stats.Player)
		if includeSet != nil && !includeSet[idx] {
			continue
		}
		name := FormatName(s.Stats.Player.Name)
		if idx == filteredIdx {
			name = fmt.Sprintf("**%v**", name)
		}

		row := []string{
			fmt.Sprintf("%d.", idx),
			name,
			fmt.Sprintf("%d-%d-%d", s.Stats.Wins, s.Stats.Losses, s.Stats.Ties),
			fmt.Sprintf("%+d", s.Stats.Spread),
		}
		for _, g := range s.Stats.Games {
			var cell string
			switch g.Kind {
			case GameWin:
				cell = fmt.Sprintf("W%d %+d", g.OpponentIndex, g.Spread)
			case GameLoss:
				cell = fmt.Sprintf("L%d %+d", g.OpponentIndex, g.Spread)
			case GameTie:
				cell = fmt.Sprintf("T%d %+d", g.OpponentIndex, g.Spread)
			case GameBye:
				byeFound = true
				cell = fmt.Sprintf("B* %+d", g.Spread)
			case GameForfeit:
				byeFound = true
				cell = fmt.Sprintf("F* %+d", g.Spread)
			default:
				cell = "?"
			}
			row = append(row, cell)
		}
		for len(row) < len(headers) {
			row = append(row, "")
		}
		rows = append(rows, row)
	}

	writeTable(&sb, headers, rows)
	if byeFound {
		sb.WriteString("* B is a bye, F is a forfeit\n")
	}
	sb.WriteString("\n")

	return sb.String()
}

// BuildLeadersOutput formats the top n players of a division in category
func BuildLeadersOutput(ds *DivisionStats, category LeaderCategory,
	n int) string {

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Division %v %v leaders\n", divisionLabel(ds),
		category))

	var valueHeader string
	switch category {
	case LeaderAverageScore:
		valueHeader = "Avg"
	case LeaderRatingGain:
		valueHeader = "Gain"
	default:
		valueHeader = "High"
	}
	headers := []string{"Rank", "Name", valueHeader}
	var rows [][]string
	for idx, p := range Leaders(ds, category, n) {
		var value string
		switch category {
		case LeaderAverageScore:
			value = fmt.Sprintf("%.2f", p.AverageScore)
		case LeaderRatingGain:
			value = fmt.Sprintf("%+d (%d->%d)", p.RatingChange, p.Player.Rating,
				p.CurrentRating)
		default:
			value = fmt.Sprintf("%d", p.HighScore)
		}
		rows = append(rows, []string{Ordinal(idx + 1),
			FormatName(p.Player.Name), value})
	}
	writeTable(&sb, headers, rows)
	sb.WriteString("\n")

	return sb.String()
}

// BuildSummaryOutput formats a division's aggregate game statistics
func BuildSummaryOutput(ds *DivisionStats) string {
	sum := ds.Summary
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Division %v\n", divisionLabel(ds)))
	sb.WriteString(fmt.Sprintf("  Games played: %d\n", sum.GamesPlayed))
	sb.WriteString(fmt.Sprintf("  Points scored: %d\n", sum.PointsScored))
	sb.WriteString(fmt.Sprintf("  Average score: %.2f\n", sum.AverageScore))
	sb.WriteString(fmt.Sprintf("  Average winning score: %d\n",
		sum.AverageWinningScore))
	sb.WriteString(fmt.Sprintf("  Average losing score: %d\n",
		sum.AverageLosingScore))
	sb.WriteString(fmt.Sprintf("  Higher seed wins: %.1f%%\n",
		sum.HigherSeedWinPercentage))
	sb.WriteString(fmt.Sprintf("  Going first wins: %.1f%%\n\n",
		sum.GoingFirstWinPercentage))

	return sb.String()
}

// BuildPlayerOutput formats each matched player's record and game history
func BuildPlayerOutput(matches []PlayerMatch) string {
	if len(matches) == 0 {
		return "No matching players found\n"
	}

	var sb strings.Builder
	for _, m := range matches {
		p := m.Standing.Stats
		sb.WriteString(fmt.Sprintf("%v: %v in Division %v\n",
			FormatName(p.Player.Name), Ordinal(m.Standing.Number),
			divisionLabel(m.Division)))
		sb.WriteString(fmt.Sprintf("  Record: %d-%d-%d  Spread: %+d\n",
			p.Wins, p.Losses, p.Ties, p.Spread))
		sb.WriteString(fmt.Sprintf("  Average: %.2f  Opp Average: %.2f  High: %d\n",
			p.AverageScore, p.AverageOpponentScore, p.HighScore))
		if p.Player.Rating != 0 || p.CurrentRating != 0 {
			sb.WriteString(fmt.Sprintf("  Rating: %d->%d (%+d)\n",
				p.Player.Rating, p.CurrentRating, p.RatingChange))
		}

		headers := []string{"Rd", "Result", "Opponent", "Score"}
		var rows [][]string
		for _, g := range p.Games {
			score := fmt.Sprintf("%d-%d", g.PlayerScore, g.OpponentScore)
			if g.Kind == GameBye || g.Kind == GameForfeit {
				score = fmt.Sprintf("%+d", g.Spread)
			}
			rows = append(rows, []string{
				fmt.Sprintf("%d", g.Round),
				g.Kind.String(),
				FormatName(g.OpponentName),
				score,
			})
		}
		writeTable(&sb, headers, rows)
		sb.WriteString("\n")
	}

	return sb.String()
}

func writeEventHeader(sb *strings.Builder, r *Results) {
	t := r.Tournament
	if t == nil || t.EventName == "" {
		return
	}
	if t.EventDate.IsZero() {
		sb.WriteString(fmt.Sprintf("%v\n\n", t.EventName))
	} else {
		sb.WriteString(fmt.Sprintf("%v (%v)\n\n", t.EventName,
			t.EventDate.Format("2006-01-02")))
	}
}

func divisionLabel(ds *DivisionStats) string {
	if ds.Division.Name == "" {
		return "UNNAMED"
	}
	return ds.Division.Name
}

func pairingIndex(ds *DivisionStats, p *RawPlayer) int {
	for idx := range ds.Division.Players {
		if &ds.Division.Players[idx] == p {
			return idx
		}
	}
	return -1
}

// writeTable writes headers and rows with each column padded to its widest
// cell.
func writeTable(sb *strings.Builder, headers []string, rows [][]string) {
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len([]rune(h))
	}
	for _, row := range rows {
		for i, cell := range row {
			if l := len([]rune(cell)); i < len(colWidths) && l > colWidths[i] {
				colWidths[i] = l
			}
		}
	}

	var fmtStrBuilder strings.Builder
	for _, w := range colWidths {
		fmtStrBuilder.WriteString(fmt.Sprintf("%%-%ds  ", w))
	}
	fmtStr := strings.TrimRight(fmtStrBuilder.String(), " ") + "\n"

	sb.WriteString(strings.TrimRight(fmt.Sprintf(fmtStr, toAnySlice(headers)...), " \n") + "\n")
	for _, row := range rows {
		sb.WriteString(strings.TrimRight(fmt.Sprintf(fmtStr, toAnySlice(row)...), " \n") + "\n")
	}
}

// toAnySlice converts a slice of any type to a slice of any (interface{}).
func toAnySlice[T any](slice []T) []any {
	result := make([]any, len(slice))
	for i, v := range slice {
		result[i] = v
	}
	return result
}
