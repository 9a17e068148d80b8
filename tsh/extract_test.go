/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"errors"
	"testing"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name       string
		text       string
		marker     string
		wantObject string
		wantRest   string
		wantErr    error
	}{
		{
			name:       "Simple",
			text:       `newt={"a":1};`,
			marker:     DefaultMarker,
			wantObject: `{"a":1}`,
			wantRest:   ";",
		},
		{
			name:       "Nested",
			text:       `var x = 1; newt={"a":{"b":{"c":[1,2]}}}; more();`,
			marker:     DefaultMarker,
			wantObject: `{"a":{"b":{"c":[1,2]}}}`,
			wantRest:   "; more();",
		},
		{
			name:       "WhitespaceAroundEquals",
			text:       "newt = \n  {\"a\":1}\n",
			marker:     DefaultMarker,
			wantObject: `{"a":1}`,
			wantRest:   "",
		},
		{
			name:       "FirstOccurrenceWins",
			text:       `newt={"a":1}; newt={"b":2}`,
			marker:     DefaultMarker,
			wantObject: `{"a":1}`,
			wantRest:   `; newt={"b":2}`,
		},
		{
			name:       "CustomMarkerWithSpaces",
			text:       `var tourney = {"y":1};`,
			marker:     "tourney=",
			wantObject: `{"y":1}`,
			wantRest:   ";",
		},
		{
			name:       "CustomMarker",
			text:       `tourney: {"x":true}`,
			marker:     "tourney:",
			wantObject: `{"x":true}`,
			wantRest:   "",
		},
		{
			name:    "MissingMarker",
			text:    `var other={"a":1};`,
			marker:  DefaultMarker,
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "EmptyMarker",
			text:    `newt={}`,
			marker:  "",
			wantErr: ErrMarkerNotFound,
		},
		{
			name:    "NeverCloses",
			text:    `newt={"a":{"b":1}`,
			marker:  DefaultMarker,
			wantErr: ErrUnbalancedObject,
		},
		{
			name:    "NoObjectAfterMarker",
			text:    `newt=[1,2,3]`,
			marker:  DefaultMarker,
			wantErr: ErrUnbalancedObject,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			obj, rest, err := ExtractObject(tc.text, tc.marker)
			if tc.wantErr != nil {
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if obj != tc.wantObject {
				t.Errorf("object = %q; want %q", obj, tc.wantObject)
			}
			if rest != tc.wantRest {
				t.Errorf("rest = %q; want %q", rest, tc.wantRest)
			}
		})
	}
}

func TestSpacedMarkerIsCached(t *testing.T) {
	for _, name := range []string{"newt", "tourney"} {
		first := spacedMarker(name)
		if again := spacedMarker(name); again != first {
			t.Errorf("%v: pattern recompiled", name)
		}
		if !first.MatchString(name + " \t= {}") {
			t.Errorf("%v: pattern %v does not match spaced marker", name,
				first)
		}
	}
}
