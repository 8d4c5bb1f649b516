package questions

import (
	"math/rand"
	"testing"
)

func TestProvider_CategoryFilter(t *testing.T) {
	p := NewProvider(rand.New(rand.NewSource(1)))

	for i := 0; i < 50; i++ {
		q := p.Next("science")
		if q.Category != "science" {
			t.Fatalf("want science question, got category %q", q.Category)
		}
	}
}

func TestProvider_UnknownCategoryFallsBackToFullPool(t *testing.T) {
	p := NewProvider(rand.New(rand.NewSource(1)))

	q := p.Next("astrology")
	if q.Prompt == "" {
		t.Fatalf("expected a question from the full pool")
	}
}

func TestProvider_QuestionsAreWellFormed(t *testing.T) {
	for _, q := range All() {
		if q.Prompt == "" || len(q.Options) < 2 {
			t.Fatalf("malformed question: %+v", q)
		}
		found := false
		for _, opt := range q.Options {
			if opt == q.Answer {
				found = true
			}
		}
		if !found {
			t.Fatalf("answer %q not among options of %q", q.Answer, q.Prompt)
		}
	}
}

func TestProvider_AssignsUniqueIDs(t *testing.T) {
	p := NewProvider(rand.New(rand.NewSource(1)))

	a := p.Next("")
	b := p.Next("")
	if a.ID == "" || a.ID == b.ID {
		t.Fatalf("expected distinct non-empty ids, got %q and %q", a.ID, b.ID)
	}
}
