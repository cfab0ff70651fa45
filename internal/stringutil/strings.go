// Package stringutil provides common string manipulation utilities.
package stringutil

import (
	"strings"

	"golang.org/x/text/width"
)

// Fold normalizes full-width characters to their half-width form, so that
// "２０人" and "20人" compare equal.
func Fold(s string) string {
	return width.Fold.String(s)
}

// IsNumeric checks if a string contains only digits.
// Returns false for empty strings.
func IsNumeric(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ContainsAllRunes checks if s contains all runes from chars (case-insensitive for ASCII).
// Counts character occurrences: "aa" requires at least 2 'a's in s.
// Supports non-contiguous character matching: "王明" matches "王小明".
func ContainsAllRunes(s, chars string) bool {
	if chars == "" {
		return true
	}
	if s == "" {
		return false
	}

	sLower := strings.ToLower(s)
	charsLower := strings.ToLower(chars)

	runeCount := make(map[rune]int)
	for _, r := range sLower {
		runeCount[r]++
	}

	requiredCount := make(map[rune]int)
	for _, r := range charsLower {
		requiredCount[r]++
	}

	for r, required := range requiredCount {
		if runeCount[r] < required {
			return false
		}
	}
	return true
}

// CapacityHint extracts a headcount like "20人" from free text after width
// folding. Returns 0 when the text carries no headcount.
func CapacityHint(text string) int {
	folded := Fold(text)
	runes := []rune(folded)
	for i, r := range runes {
		if r != '人' {
			continue
		}
		j := i
		for j > 0 && runes[j-1] >= '0' && runes[j-1] <= '9' {
			j--
		}
		if j == i {
			continue
		}
		n := 0
		for _, d := range runes[j:i] {
			n = n*10 + int(d-'0')
			if n > 100000 {
				return 0
			}
		}
		return n
	}
	return 0
}
