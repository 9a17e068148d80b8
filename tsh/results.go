/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"context"
	"fmt"
	"strings"
)

// Results is everything derived from one tourney.js document. It is built
// per request and handed to the renderers; nothing caches it.
type Results struct {
	Tournament *Tournament
	Divisions  []*DivisionStats
}

// Analyze runs the full pipeline over text: extract the object following
// marker, normalize it and compute every division's statistics. An empty
// marker means DefaultMarker.
func Analyze(ctx context.Context, text string, marker string) (*Results, error) {
	if marker == "" {
		marker = DefaultMarker
	}

	object, _, err := ExtractObject(text, marker)
	if err != nil {
		return nil, err
	}
	tourney, err := Normalize(object)
	if err != nil {
		return nil, err
	}
	divs, err := CalculateTournamentStats(ctx, tourney)
	if err != nil {
		return nil, err
	}

	return &Results{
		Tournament: tourney,
		Divisions:  divs,
	}, nil
}

// Division returns the division whose name matches name case-insensitively.
func (r *Results) Division(name string) (*DivisionStats, error) {
	name = strings.TrimSpace(name)
	for _, ds := range r.Divisions {
		if strings.EqualFold(ds.Division.Name, name) {
			return ds, nil
		}
	}

	return nil, fmt.Errorf("no division named %q", name)
}

// Filter returns a copy of r restricted to the named division, or r itself
// when name is empty.
func (r *Results) Filter(name string) (*Results, error) {
	if name == "" {
		return r, nil
	}
	ds, err := r.Division(name)
	if err != nil {
		return nil, err
	}

	return &Results{
		Tournament: r.Tournament,
		Divisions:  []*DivisionStats{ds},
	}, nil
}

// PlayerMatch is a player found by FindPlayer along with their standing.
type PlayerMatch struct {
	Division *DivisionStats
	Standing Standing
}

// FindPlayer returns every ranked player whose raw or display name contains
// name, ignoring case.
func (r *Results) FindPlayer(name string) []PlayerMatch {
	needle := strings.ToLower(strings.TrimSpace(name))
	var matches []PlayerMatch
	if needle == "" {
		return matches
	}

	for _, ds := range r.Divisions {
		for _, s := range Rank(ds) {
			raw := strings.ToLower(s.Stats.Player.Name)
			display := strings.ToLower(FormatName(s.Stats.Player.Name))
			if strings.Contains(raw, needle) || strings.Contains(display, needle) {
				matches = append(matches, PlayerMatch{
					Division: ds,
					Standing: s,
				})
			}
		}
	}

	return matches
}
