/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDivisionSummary(t *testing.T) {
	r := analyzeSample(t)

	want := DivisionSummary{
		GamesPlayed:             4,
		PointsScored:            3010,
		AverageScore:            376.25,
		AverageWinningScore:     398,
		AverageLosingScore:      355,
		HigherSeedWinPercentage: 75,
		GoingFirstWinPercentage: 75,
	}
	if diff := cmp.Diff(want, r.Divisions[0].Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestDivisionSummarySkipsByes(t *testing.T) {
	r := analyzeSample(t)

	sum := r.Divisions[1].Summary
	if sum.GamesPlayed != 1 || sum.PointsScored != 630 {
		t.Errorf("got %v games / %v points; want 1 / 630", sum.GamesPlayed,
			sum.PointsScored)
	}
	// no p12 data on either side
	if sum.GoingFirstWinPercentage != 0 {
		t.Errorf("going first = %v; want 0", sum.GoingFirstWinPercentage)
	}
	if sum.HigherSeedWinPercentage != 100 {
		t.Errorf("higher seed = %v; want 100", sum.HigherSeedWinPercentage)
	}
}

func TestDivisionSummaryTies(t *testing.T) {
	ds, err := CalculateDivisionStats(&RawDivision{
		Players: []RawPlayer{
			byePlayer(),
			{Name: "A", Pairings: []int{2}, Scores: []int{350}},
			{Name: "B", Pairings: []int{1}, Scores: []int{350}},
		},
	})
	if err != nil {
		t.Fatalf("CalculateDivisionStats returned error: %v", err)
	}

	want := DivisionSummary{
		GamesPlayed:  1,
		PointsScored: 700,
		AverageScore: 350,
	}
	if diff := cmp.Diff(want, ds.Summary); diff != "" {
		t.Errorf("summary mismatch (-want +got):\n%s", diff)
	}
}

func TestDivisionSummaryHigherSeed(t *testing.T) {
	tests := []struct {
		name     string
		idA, idB int
		want     float64
	}{
		// player A (pairing index 1) beats player B (index 2) in each case
		{"NoIds", 0, 0, 100},
		{"BothIds", 1, 2, 100},
		{"BothIdsReversed", 7, 3, 0},
		{"OnlyOpponentHasId", 0, 1, 100},
		{"OnlyPlayerHasId", 5, 0, 100},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ds, err := CalculateDivisionStats(&RawDivision{
				Players: []RawPlayer{
					byePlayer(),
					{ID: tc.idA, Name: "A", Pairings: []int{2},
						Scores: []int{400}},
					{ID: tc.idB, Name: "B", Pairings: []int{1},
						Scores: []int{300}},
				},
			})
			if err != nil {
				t.Fatalf("CalculateDivisionStats returned error: %v", err)
			}
			if got := ds.Summary.HigherSeedWinPercentage; got != tc.want {
				t.Errorf("higher seed = %v; want %v", got, tc.want)
			}
		})
	}
}
