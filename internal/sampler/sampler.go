// Package sampler implements Independent-Cascade forward simulation:
// SpreadSampler aggregates spread and per-edge trial statistics across
// M trials, PathSampler produces per-trial reachable sets for
// evaluators that need them. Traversal is an explicit queue-as-slice
// frontier BFS rather than recursive DFS.
package sampler

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

// EdgeKey identifies an arc for per-edge trial/hit counting.
type EdgeKey struct {
	U, V graph.NodeID
}

// Result is the outcome of an M-trial spread sample.
type Result struct {
	AverageSpread float64
	Activated     *graph.ActivationSet
	Trials        map[EdgeKey]int
	Hits          map[EdgeKey]int
}

// SpreadSampler runs forward IC diffusions and aggregates their outcome.
type SpreadSampler struct {
	seed int64
	log  zerolog.Logger
}

// New returns a SpreadSampler seeded for reproducibility.
func New(seed int64, log zerolog.Logger) *SpreadSampler {
	return &SpreadSampler{seed: seed, log: log}
}

// Sample runs M independent IC diffusions from S, with aPrior already
// activated and contributing no new spread, under reading type typ.
// Cancellation is observable between trials, not per-edge.
func (s *SpreadSampler) Sample(ctx context.Context, g *graph.Graph, aPrior *graph.ActivationSet,
	seeds graph.SeedSet, m int, typ influence.Type, round int) (Result, error) {

	res := Result{
		Activated: graph.NewActivationSet(),
		Trials:    make(map[EdgeKey]int),
		Hits:      make(map[EdgeKey]int),
	}
	if m <= 0 {
		return res, nil
	}

	totalActivated := 0
	for trial := 0; trial < m; trial++ {
		select {
		case <-ctx.Done():
			return res, ctx.Err()
		default:
		}
		rng := common.NewRNG(s.seed, round, trial)
		activated := runTrial(g, aPrior, seeds, typ, rng, res.Trials, res.Hits)
		totalActivated += len(activated)
		res.Activated.AddAll(activated)
	}
	res.AverageSpread = float64(totalActivated) / float64(m)
	s.log.Debug().Int("round", round).Int("trials", m).
		Float64("avg_spread", res.AverageSpread).Msg("spread sample complete")
	return res, nil
}

// runTrial performs one frontier-BFS IC diffusion: each
// live node attempts each outgoing edge once, a node joins the next
// frontier iff the coin flip fires it, termination is no new activations.
func runTrial(g *graph.Graph, aPrior *graph.ActivationSet, seeds graph.SeedSet,
	typ influence.Type, rng *rand.Rand, trials, hits map[EdgeKey]int) []graph.NodeID {

	activatedSet := make(map[graph.NodeID]struct{})
	var activatedOrder []graph.NodeID
	frontier := make([]graph.NodeID, 0, len(seeds))
	for _, n := range seeds {
		if aPrior != nil && aPrior.Contains(n) {
			continue
		}
		if _, ok := activatedSet[n]; !ok {
			activatedSet[n] = struct{}{}
			activatedOrder = append(activatedOrder, n)
			frontier = append(frontier, n)
		}
	}

	for len(frontier) > 0 {
		var next []graph.NodeID
		for _, u := range frontier {
			if !g.HasNeighbours(u) {
				continue
			}
			for _, e := range g.Neighbours(u) {
				key := EdgeKey{U: u, V: e.Target}
				trials[key]++
				if aPrior != nil && aPrior.Contains(e.Target) {
					continue
				}
				if _, already := activatedSet[e.Target]; already {
					continue
				}
				dice := rng.Float64()
				p := e.Dist.Sample(typ, rng)
				if dice < p {
					hits[key]++
					activatedSet[e.Target] = struct{}{}
					activatedOrder = append(activatedOrder, e.Target)
					next = append(next, e.Target)
				}
			}
		}
		frontier = next
	}
	return activatedOrder
}

// ReachableSet is a PathSampler trial outcome: all nodes reachable from
// the full candidate set under one trial's live edges.
type ReachableSet map[graph.NodeID]struct{}

// PathSampler produces per-sample reachability. It holds no cache
// itself: samplemanager.Manager wraps a PathSampler and caches its
// per-seed trials (CELF reads them through the Manager). Sampler is kept
// decoupled from samplemanager to avoid an import cycle.
type PathSampler struct {
	seed int64
}

// NewPathSampler returns a PathSampler seeded for reproducibility.
func NewPathSampler(seed int64) *PathSampler {
	return &PathSampler{seed: seed}
}

// Trial computes the reachable set from candidates under live-edge sample
// number trialIndex, for round round, reading type typ.
func (p *PathSampler) Trial(g *graph.Graph, candidates []graph.NodeID,
	typ influence.Type, round, trialIndex int) ReachableSet {

	rng := common.NewRNG(p.seed, round, trialIndex)
	reached := make(ReachableSet)
	frontier := make([]graph.NodeID, 0, len(candidates))
	for _, n := range candidates {
		if _, ok := reached[n]; !ok {
			reached[n] = struct{}{}
			frontier = append(frontier, n)
		}
	}
	for len(frontier) > 0 {
		var next []graph.NodeID
		for _, u := range frontier {
			if !g.HasNeighbours(u) {
				continue
			}
			for _, e := range g.Neighbours(u) {
				if _, already := reached[e.Target]; already {
					continue
				}
				if rng.Float64() < e.Dist.Sample(typ, rng) {
					reached[e.Target] = struct{}{}
					next = append(next, e.Target)
				}
			}
		}
		frontier = next
	}
	return reached
}

// Sampler is the narrow interface CELF/TIM/PMC evaluators depend on, so
// production code can fan trials across workers behind
// either a SpreadSampler or a PathSampler-backed adapter.
type Sampler interface {
	Sample(ctx context.Context, g *graph.Graph, aPrior *graph.ActivationSet,
		seeds graph.SeedSet, m int, typ influence.Type, round int) (Result, error)
}

var _ Sampler = (*SpreadSampler)(nil)
