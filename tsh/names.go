/* Copyright © 2025 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tsh

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var xtSuffixRe = regexp.MustCompile(`:XT\d+$`)

// FormatName turns a tsh player name such as "Richards, Nigel:XT006003" into
// "Nigel Richards".
func FormatName(name string) string {
	name = strings.TrimSpace(xtSuffixRe.ReplaceAllString(name, ""))
	last, first, ok := strings.Cut(name, ",")
	if !ok {
		return name
	}
	first = strings.TrimSpace(first)
	last = strings.TrimSpace(last)
	if first == "" || last == "" {
		return name
	}

	return capitalize(first) + " " + capitalize(last)
}

func capitalize(s string) string {
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

// Ordinal returns n with its English ordinal suffix, e.g. 1st, 12th, 23rd.
func Ordinal(n int) string {
	abs := n
	if abs < 0 {
		abs = -abs
	}
	if lastTwo := abs % 100; lastTwo >= 11 && lastTwo <= 13 {
		return fmt.Sprintf("%dth", n)
	}
	switch abs % 10 {
	case 1:
		return fmt.Sprintf("%dst", n)
	case 2:
		return fmt.Sprintf("%dnd", n)
	case 3:
		return fmt.Sprintf("%drd", n)
	default:
		return fmt.Sprintf("%dth", n)
	}
}
