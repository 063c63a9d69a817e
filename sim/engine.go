package sim

import (
	"math/rand"
	"sync"
	"time"
)

// Engine runs all probabilistic simulation: squad generation, goal counts,
// event timelines and knockout resolution. The random source is injected so
// tests can seed it; pass nil for a time-seeded source.
type Engine struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func NewEngine(rnd *rand.Rand) *Engine {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Engine{rnd: rnd}
}

// Options selects the simulation flavor. Detailed builds a full event
// timeline; Knockout forbids a drawn result.
type Options struct {
	Detailed bool
	Knockout bool
}

// intBetween draws uniformly from [low, high] inclusive.
func (e *Engine) intBetween(low, high int) int {
	return low + e.rnd.Intn(high-low+1)
}

// unit draws uniformly from [-1, 1).
func (e *Engine) unit() float64 {
	return e.rnd.Float64()*2 - 1
}
