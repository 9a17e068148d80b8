/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/mikeb26/tshstats/internal"
)

// ByeName is the name of the sentinel player at index 0 of every division
const ByeName = "Bye"

// Tournament is the normalized form of a tourney.js newt object.
type Tournament struct {
	EventName string
	EventDate time.Time
	MaxRounds int
	Divisions []RawDivision
}

// RawDivision holds a division's players in pairing order. Players[0] is
// always the Bye sentinel so that pairing indices resolve directly.
type RawDivision struct {
	Name    string
	Players []RawPlayer
}

// RawPlayer holds one player's per-round pairings and scores as published.
// Pairings[i] is 0 for a bye or forfeit, otherwise the index of the
// opponent within the division's Players.
type RawPlayer struct {
	ID       int
	Name     string
	Rating   int
	Photo    string
	Pairings []int
	Scores   []int
	Etc      PlayerEtc
}

// PlayerEtc carries the optional per-round extras tsh records for a player.
type PlayerEtc struct {
	// 1 when the player went first in a round, 2 when second; other values
	// mean unknown
	P12        []int
	NewRatings []int
	XTIDs      []int
}

func byePlayer() RawPlayer {
	return RawPlayer{
		Name:     ByeName,
		Pairings: []int{},
		Scores:   []int{},
	}
}

type tournamentJSON struct {
	Config    json.RawMessage `json:"config"`
	Divisions json.RawMessage `json:"divisions"`
}

type configJSON struct {
	EventName string `json:"event_name"`
	EventDate string `json:"event_date"`
	MaxRounds int    `json:"max_rounds"`
}

type divisionJSON struct {
	Name    string        `json:"name"`
	Players []*playerJSON `json:"players"`
}

type playerJSON struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Rating   int      `json:"rating"`
	Photo    string   `json:"photo"`
	Pairings []*int   `json:"pairings"`
	Scores   []*int   `json:"scores"`
	Etc      *etcJSON `json:"etc"`
}

type etcJSON struct {
	P12  []int `json:"p12"`
	NewR []int `json:"newr"`
	XTID []int `json:"xtid"`
}

// Normalize converts an object literal returned by ExtractObject into a
// Tournament. The JavaScript token undefined is treated as null, and null
// player slots are dropped. A missing divisions array is logged and yields a
// Tournament without divisions.
func Normalize(object string) (*Tournament, error) {
	object = strings.ReplaceAll(object, "undefined", "null")

	var raw tournamentJSON
	if err := json.Unmarshal([]byte(object), &raw); err != nil {
		return nil, fmt.Errorf("tsh.normalize: %w: %v", ErrMalformedObject, err)
	}

	tourney := &Tournament{}
	parseConfig(raw.Config, tourney)

	divs := bytes.TrimSpace(raw.Divisions)
	if len(divs) == 0 || divs[0] != '[' {
		log.Printf("tsh.normalize: warning: %v; no divisions will be reported",
			ErrMissingDivisions)
		tourney.Divisions = []RawDivision{}
		return tourney, nil
	}

	var rawDivs []divisionJSON
	if err := json.Unmarshal(divs, &rawDivs); err != nil {
		return nil, fmt.Errorf("tsh.normalize: divisions: %w: %v",
			ErrMalformedObject, err)
	}

	tourney.Divisions = make([]RawDivision, 0, len(rawDivs))
	for _, d := range rawDivs {
		div, err := toRawDivision(d)
		if err != nil {
			return nil, fmt.Errorf("tsh.normalize: division %v: %w", d.Name,
				err)
		}
		tourney.Divisions = append(tourney.Divisions, div)
	}

	return tourney, nil
}

// derefRounds rejects null entries; a null pairing or score would otherwise
// decode as 0 and pass for a bye or a zero-point game
func derefRounds(vals []*int, player string, field string) ([]int, error) {
	if vals == nil {
		return nil, nil
	}
	out := make([]int, len(vals))
	for i, v := range vals {
		if v == nil {
			return nil, fmt.Errorf("%v: %v round %v is null: %w", player,
				field, i+1, ErrMalformedObject)
		}
		out[i] = *v
	}

	return out, nil
}

func toRawDivision(d divisionJSON) (RawDivision, error) {
	div := RawDivision{
		Name:    d.Name,
		Players: []RawPlayer{byePlayer()},
	}
	for _, p := range d.Players {
		if p == nil {
			continue
		}
		pairings, err := derefRounds(p.Pairings, p.Name, "pairings")
		if err != nil {
			return div, err
		}
		scores, err := derefRounds(p.Scores, p.Name, "scores")
		if err != nil {
			return div, err
		}
		player := RawPlayer{
			ID:       p.ID,
			Name:     p.Name,
			Rating:   p.Rating,
			Photo:    p.Photo,
			Pairings: pairings,
			Scores:   scores,
		}
		if p.Etc != nil {
			player.Etc = PlayerEtc{
				P12:        p.Etc.P12,
				NewRatings: p.Etc.NewR,
				XTIDs:      p.Etc.XTID,
			}
		}
		div.Players = append(div.Players, player)
	}

	return div, nil
}

// config is informational only so problems with it are never fatal
func parseConfig(data json.RawMessage, tourney *Tournament) {
	if len(bytes.TrimSpace(data)) == 0 {
		return
	}

	var cfg configJSON
	if err := json.Unmarshal(data, &cfg); err != nil {
		log.Printf("tsh.normalize: warning: ignoring unparseable config: %v",
			err)
		return
	}
	tourney.EventName = cfg.EventName
	tourney.MaxRounds = cfg.MaxRounds

	date, err := internal.ParseDateOrZero(cfg.EventDate)
	if err != nil {
		log.Printf("tsh.normalize: warning: unable to parse event date %q: %v",
			cfg.EventDate, err)
	}
	tourney.EventDate = date
}
