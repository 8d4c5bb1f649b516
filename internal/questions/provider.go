package questions

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/triviador-game/triviador-backend/internal/engine"
)

// Provider hands out trivia questions on demand. Stateless apart from its
// randomness source; a category filter narrows the pool.
type Provider interface {
	Next(category string) engine.Question
}

type randomProvider struct {
	pool []engine.Question
	rng  *rand.Rand
}

// NewProvider returns a Provider drawing uniformly from the built-in
// banks. Pass a non-nil rng to make draws reproducible in tests.
func NewProvider(rng *rand.Rand) Provider {
	return &randomProvider{pool: All(), rng: rng}
}

func (p *randomProvider) Next(category string) engine.Question {
	pool := p.pool
	if category != "" {
		filtered := make([]engine.Question, 0, len(pool))
		for _, q := range pool {
			if q.Category == category {
				filtered = append(filtered, q)
			}
		}
		if len(filtered) > 0 {
			pool = filtered
		}
	}

	var i int
	if p.rng != nil {
		i = p.rng.Intn(len(pool))
	} else {
		i = rand.Intn(len(pool))
	}
	q := pool[i]
	q.ID = uuid.NewString()
	return q
}

// Fixed is a Provider that always returns the same question. Used by
// tests that need a known correct answer.
type Fixed struct {
	Question engine.Question
}

func (f Fixed) Next(string) engine.Question {
	q := f.Question
	if q.ID == "" {
		q.ID = uuid.NewString()
	}
	return q
}
