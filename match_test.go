package main

import (
	"testing"
)

func TestAnswersMatch(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		correct   string
		want      bool
	}{
		{name: "exact", submitted: "pizza", correct: "pizza", want: true},
		{name: "case insensitive", submitted: "PIZZA", correct: "pizza", want: true},
		{name: "whitespace trimmed", submitted: "  pizza  ", correct: "pizza", want: true},
		{name: "submission contains answer", submitted: "pineapple pizza", correct: "pizza", want: true},
		{name: "answer contains submission", submitted: "tiktok", correct: "TikTok dances", want: true},
		{name: "no overlap", submitted: "tacos", correct: "pizza", want: false},
		{name: "empty submission", submitted: "", correct: "pizza", want: false},
		{name: "whitespace-only submission", submitted: "   ", correct: "pizza", want: false},
		{name: "empty answer", submitted: "pizza", correct: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := answersMatch(tt.submitted, tt.correct); got != tt.want {
				t.Errorf("answersMatch(%q, %q) = %v, want %v", tt.submitted, tt.correct, got, tt.want)
			}
		})
	}
}

func TestNormalizeAnswer(t *testing.T) {
	if got := normalizeAnswer("  TikTok Dances "); got != "tiktok dances" {
		t.Errorf("normalizeAnswer() = %q, want %q", got, "tiktok dances")
	}
}
