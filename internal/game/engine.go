package game

import (
	"math/rand"
	"time"

	"pixel_plaza/internal/domain"
)

// Engine computes action outcomes over an in-memory game state. It is
// deterministic given its random source; persistence and cooldown gating
// belong to the caller.
type Engine struct {
	rng *rand.Rand
}

// New creates an engine around the given random source.
func New(rng *rand.Rand) *Engine {
	return &Engine{rng: rng}
}

// Env carries the read-only surroundings of one action: the wall clock and
// the currently active global events.
type Env struct {
	Now    time.Time
	Events []*domain.GameEvent
}

func (env Env) multiplier(a domain.Activity) float64 {
	return EventMultiplier(env.Events, a, env.Now)
}
