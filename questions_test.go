package main

import (
	"testing"
)

func TestCatalog(t *testing.T) {
	catalog := newCatalog()

	if catalog.Len() == 0 {
		t.Fatal("catalog is empty")
	}

	ids := make(map[int]bool)
	for _, q := range catalog.Questions() {
		if ids[q.ID] {
			t.Errorf("duplicate question id %d", q.ID)
		}
		ids[q.ID] = true

		if q.Prompt == "" {
			t.Errorf("question %d has no prompt", q.ID)
		}
		if len(q.Answers) == 0 {
			t.Errorf("question %d has no answers", q.ID)
		}

		for i, a := range q.Answers {
			if a.Rank != i+1 {
				t.Errorf("question %d answer %d has rank %d, want %d", q.ID, i, a.Rank, i+1)
			}
			if a.Points <= 0 {
				t.Errorf("question %d answer %q has non-positive points", q.ID, a.Text)
			}
			if i > 0 && a.Points > q.Answers[i-1].Points {
				t.Errorf("question %d answers not ordered by points at index %d", q.ID, i)
			}
		}
	}

	t.Run("by id", func(t *testing.T) {
		first := catalog.Questions()[0]
		got, ok := catalog.ByID(first.ID)
		if !ok || got.ID != first.ID {
			t.Errorf("ByID(%d) = (%v, %v)", first.ID, got.ID, ok)
		}
		if _, ok := catalog.ByID(-1); ok {
			t.Error("ByID(-1) found a question")
		}
	})

	t.Run("by category", func(t *testing.T) {
		first := catalog.Questions()[0]
		if got := catalog.ByCategory(first.Category); len(got) == 0 {
			t.Errorf("ByCategory(%q) found nothing", first.Category)
		}
		// Case-insensitive lookup.
		if got := catalog.ByCategory("gAmInG cUlTuRe"); len(got) == 0 {
			t.Error("ByCategory is case-sensitive")
		}
		if got := catalog.ByCategory("no such category"); len(got) != 0 {
			t.Errorf("ByCategory matched %d questions for a bogus category", len(got))
		}
	})

	t.Run("random draws from the table", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			q := catalog.Random()
			if !ids[q.ID] {
				t.Fatalf("Random returned unknown question %d", q.ID)
			}
		}
	})
}

func TestPowerUpByID(t *testing.T) {
	for _, pu := range powerUpTable {
		got, ok := powerUpByID(pu.ID)
		if !ok || got.ID != pu.ID {
			t.Errorf("powerUpByID(%q) = (%q, %v)", pu.ID, got.ID, ok)
		}
	}

	if _, ok := powerUpByID("infinite_money"); ok {
		t.Error("powerUpByID matched an unknown id")
	}
}
