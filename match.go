package main

import (
	"strings"
)

// normalizeAnswer prepares an answer for comparison: whitespace-trimmed,
// case-insensitive.
func normalizeAnswer(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// answersMatch reports whether a submitted answer counts as a hit for a
// revealed answer. A submission matches if, after normalization, it equals
// the answer text, contains it, or is contained in it. Empty submissions
// never match, since every string contains the empty string.
func answersMatch(submitted, correct string) bool {
	sub := normalizeAnswer(submitted)
	want := normalizeAnswer(correct)

	if sub == "" || want == "" {
		return false
	}
	if sub == want {
		return true
	}

	return strings.Contains(sub, want) || strings.Contains(want, sub)
}
