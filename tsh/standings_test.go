/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func statsFor(name string, w, l, ti, spread int) PlayerStats {
	return PlayerStats{
		Player: &RawPlayer{Name: name},
		Wins:   w,
		Losses: l,
		Ties:   ti,
		Spread: spread,
	}
}

func rankedNames(standings []Standing) []string {
	var names []string
	for _, s := range standings {
		names = append(names, s.Stats.Player.Name)
	}
	return names
}

func TestRankOrdering(t *testing.T) {
	tests := []struct {
		name    string
		players []PlayerStats
		want    []string
	}{
		{
			name: "WinsFirst",
			players: []PlayerStats{
				statsFor("low", 1, 3, 0, 500),
				statsFor("high", 3, 1, 0, -200),
			},
			want: []string{"high", "low"},
		},
		{
			name: "TiesBreakEqualWins",
			players: []PlayerStats{
				statsFor("noTie", 2, 2, 0, 100),
				statsFor("tie", 2, 1, 1, -100),
			},
			want: []string{"tie", "noTie"},
		},
		{
			name: "FewerLossesBreakEqualWinsAndTies",
			players: []PlayerStats{
				statsFor("more", 2, 3, 0, 300),
				statsFor("fewer", 2, 2, 0, -300),
			},
			want: []string{"fewer", "more"},
		},
		{
			name: "SpreadLast",
			players: []PlayerStats{
				statsFor("minus", 2, 2, 0, -10),
				statsFor("plus", 2, 2, 0, 10),
			},
			want: []string{"plus", "minus"},
		},
		{
			name: "FullTieKeepsPairingOrder",
			players: []PlayerStats{
				statsFor("first", 2, 2, 0, 40),
				statsFor("second", 2, 2, 0, 40),
				statsFor("third", 2, 2, 0, 40),
			},
			want: []string{"first", "second", "third"},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds := &DivisionStats{
				Players: append([]PlayerStats{statsFor(ByeName, 9, 0, 0, 999)},
					tc.players...),
			}
			standings := Rank(ds)
			if diff := cmp.Diff(tc.want, rankedNames(standings)); diff != "" {
				t.Errorf("order mismatch (-want +got):\n%s", diff)
			}
			for idx, s := range standings {
				if s.Number != idx+1 {
					t.Errorf("standing %v numbered %v", idx, s.Number)
				}
			}
		})
	}
}

func TestRankExcludesBye(t *testing.T) {
	if got := Rank(&DivisionStats{}); len(got) != 0 {
		t.Errorf("expected no standings for an empty division, got %v", got)
	}
	only := &DivisionStats{Players: []PlayerStats{statsFor(ByeName, 0, 0, 0, 0)}}
	if got := Rank(only); len(got) != 0 {
		t.Errorf("expected the bye to be unranked, got %v", got)
	}
}

func TestRankSample(t *testing.T) {
	r := analyzeSample(t)

	want := []string{"Lee, Carol", "Smith, Alice", "Jones, Bob", "Kim, Dan"}
	if diff := cmp.Diff(want, rankedNames(Rank(r.Divisions[0]))); diff != "" {
		t.Errorf("division A mismatch (-want +got):\n%s", diff)
	}

	// ranking must not disturb pairing order
	if r.Divisions[0].Players[1].Player.Name != "Smith, Alice" {
		t.Errorf("Rank reordered the division's players")
	}

	want = []string{"Roe, Eve", "Poe, Finn"}
	if diff := cmp.Diff(want, rankedNames(Rank(r.Divisions[1]))); diff != "" {
		t.Errorf("division B mismatch (-want +got):\n%s", diff)
	}
}
