// Package common holds shared primitives used across the influence
// maximization engine: per-call RNG construction and elapsed-time
// measurement.
package common

import (
	"time"

	"golang.org/x/exp/rand"
)

// NewRNG returns a *rand.Rand seeded deterministically from a round and
// trial index: no global RNG, each worker/sampler owns its own source
// seeded from indices known at call time. golang.org/x/exp/rand rather
// than math/rand because distuv.Beta.Src requires the former's Source
// interface (Seed(uint64), not math/rand's Seed(int64)).
func NewRNG(seed int64, round, trial int) *rand.Rand {
	mixed := seed ^ int64(round)*1000003 ^ int64(trial)*2654435761
	return rand.New(rand.NewSource(uint64(mixed)))
}

// Stopwatch measures elapsed wall-clock time for a single round.
type Stopwatch struct {
	start time.Time
}

// Start begins a new stopwatch reading.
func Start() Stopwatch {
	return Stopwatch{start: time.Now()}
}

// Elapsed returns the time since Start was called.
func (s Stopwatch) Elapsed() time.Duration {
	return time.Since(s.start)
}

// ElapsedSeconds returns the elapsed time in fractional seconds, the
// unit the CLI's per-round output line uses.
func (s Stopwatch) ElapsedSeconds() float64 {
	return s.Elapsed().Seconds()
}
