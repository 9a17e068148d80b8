/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"fmt"
	"regexp"
	"strings"
	"sync"
)

// DefaultMarker precedes the tournament object in tourney.js files
const DefaultMarker = "newt="

// spaced marker patterns keyed by the name before '='
var markerPatterns sync.Map

func init() {
	name := strings.TrimSuffix(DefaultMarker, "=")
	markerPatterns.Store(name, markerPattern(name))
}

func markerPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(name) + `\s*=`)
}

// spacedMarker returns the cached pattern for name, compiling it on first
// use
func spacedMarker(name string) *regexp.Regexp {
	if re, ok := markerPatterns.Load(name); ok {
		return re.(*regexp.Regexp)
	}
	re, _ := markerPatterns.LoadOrStore(name, markerPattern(name))
	return re.(*regexp.Regexp)
}

// ExtractObject locates marker within text and returns the first balanced
// {...} object literal that follows it along with whatever text trails the
// object.
//
// Braces are counted naively; a '{' or '}' inside a quoted string will
// confuse the scan. tourney.js output has not been seen to contain either in
// player or division names.
func ExtractObject(text string, marker string) (string, string, error) {
	start, err := findMarker(text, marker)
	if err != nil {
		return "", "", err
	}

	body := strings.TrimSpace(text[start:])
	if !strings.HasPrefix(body, "{") {
		return "", "", fmt.Errorf("tsh.extract: no object after %q: %w",
			marker, ErrUnbalancedObject)
	}

	depth := 0
	for i := 0; i < len(body); i++ {
		switch body[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return body[:i+1], strings.TrimSpace(body[i+1:]), nil
			}
		}
	}

	return "", "", fmt.Errorf("tsh.extract: object after %q never closes (depth %v): %w",
		marker, depth, ErrUnbalancedObject)
}

// findMarker returns the offset just past marker. The generator behind
// some tourney.js files writes "newt = {" so a marker ending in '=' also
// matches with whitespace on either side of the '='.
func findMarker(text string, marker string) (int, error) {
	if marker == "" {
		return 0, fmt.Errorf("tsh.extract: empty marker: %w", ErrMarkerNotFound)
	}
	if idx := strings.Index(text, marker); idx != -1 {
		return idx + len(marker), nil
	}

	name, ok := strings.CutSuffix(marker, "=")
	name = strings.TrimSpace(name)
	if ok && name != "" {
		if loc := spacedMarker(name).FindStringIndex(text); loc != nil {
			return loc[1], nil
		}
	}

	return 0, fmt.Errorf("tsh.extract: %q: %w", marker, ErrMarkerNotFound)
}
