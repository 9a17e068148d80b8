/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const cliTestDoc = `newt = {"divisions":[{"name":"A","players":[null,
{"id":1,"name":"Smith, Alice","pairings":[2],"scores":[400]},
{"id":2,"name":"Jones, Bob","pairings":[1],"scores":[350]}]}]};`

func writeDoc(t *testing.T) string {
	t.Helper()

	// keep the test off of S3
	t.Setenv("TSHSTATS_CACHE_BUCKET", "")

	path := filepath.Join(t.TempDir(), "tourney.js")
	if err := os.WriteFile(path, []byte(cliTestDoc), 0o600); err != nil {
		t.Fatalf("write doc: %v", err)
	}
	return path
}

func TestCommands(t *testing.T) {
	path := writeDoc(t)
	noConfig := filepath.Join(t.TempDir(), "absent.yaml")

	tests := []struct {
		args    []string
		want    []string
		notWant []string
	}{
		{[]string{"standings"},
			[]string{"Alice Smith", "Bob Jones", "+50", "400.00"}, nil},
		{[]string{"leaders", "--category", "average", "--count", "1"},
			[]string{"Division A average score leaders", "1st", "Alice Smith"},
			[]string{"Bob Jones"}},
		{[]string{"crosstable", "--player", "alice"},
			[]string{"**Alice Smith**", "Bob Jones", "W2 +50", "L1 -50"}, nil},
		{[]string{"divisions"},
			[]string{"Division A", "Games played: 1", "Points scored: 750",
				"Higher seed wins: 100.0%"}, nil},
		{[]string{"player", "jones"},
			[]string{"Bob Jones: 2nd in Division A",
				"Record: 0-1-0  Spread: -50"},
			[]string{"Alice Smith:"}},
	}
	for _, tc := range tests {
		t.Run(strings.Join(tc.args, " "), func(t *testing.T) {
			argv := append([]string{"tshstats", "--config", noConfig,
				"--file", path, "--division", "a"}, tc.args...)
			var out bytes.Buffer
			app := newApp()
			app.Writer = &out
			if err := app.Run(argv); err != nil {
				t.Fatalf("Run(%v) returned error: %v", argv, err)
			}
			got := out.String()
			for _, want := range tc.want {
				if !strings.Contains(got, want) {
					t.Errorf("missing %q in:\n%v", want, got)
				}
			}
			for _, notWant := range tc.notWant {
				if strings.Contains(got, notWant) {
					t.Errorf("unexpected %q in:\n%v", notWant, got)
				}
			}
		})
	}
}

func TestStandingsOrder(t *testing.T) {
	path := writeDoc(t)
	noConfig := filepath.Join(t.TempDir(), "absent.yaml")

	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run([]string{"tshstats", "--config", noConfig, "--file", path,
		"standings"})
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	got := out.String()
	alice := strings.Index(got, "Alice Smith")
	bob := strings.Index(got, "Bob Jones")
	if alice < 0 || bob < 0 || alice > bob {
		t.Errorf("expected Alice Smith ranked above Bob Jones:\n%v", got)
	}
}

func TestCommandErrors(t *testing.T) {
	path := writeDoc(t)
	noConfig := filepath.Join(t.TempDir(), "absent.yaml")

	tests := []struct {
		name    string
		argv    []string
		wantErr string
	}{
		{"NoSource", []string{"tshstats", "--config", noConfig, "standings"},
			"--url or --file"},
		{"UnknownDivision", []string{"tshstats", "--config", noConfig,
			"--file", path, "--division", "Z", "standings"}, "no division named"},
		{"BadCategory", []string{"tshstats", "--config", noConfig,
			"--file", path, "leaders", "--category", "lowest"},
			"unknown leader category"},
		{"PlayerWithoutName", []string{"tshstats", "--config", noConfig,
			"--file", path, "player"}, "player name"},
		{"WrongMarker", []string{"tshstats", "--config", noConfig,
			"--file", path, "--marker", "tourney=", "standings"}, "not found"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := newApp().Run(tc.argv)
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Errorf("expected error containing %q, got %v", tc.wantErr,
					err)
			}
		})
	}
}
