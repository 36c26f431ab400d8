// Package evaluator implements the six seed-selection evaluators used
// to pick seed sets: CELF lazy-greedy, TIM reverse-reachable sketches,
// PMC (Ohsaka) pruned Monte-Carlo, and three baselines. Evaluators keep
// no sampling state across Select calls; the one cache in play is the
// SampleManager a caller wires into CELF, which that caller resets when
// the underlying graph changes materially.
package evaluator

import (
	"context"

	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/samplemanager"
	"github.com/gilchrisn/oim/internal/sampler"
)

// Evaluator chooses up to k seeds maximizing expected spread under graph
// estimate g, excluding already-activated nodes.
type Evaluator interface {
	// Select returns S with |S| <= k and S ∩ a = ∅. typ selects which
	// distribution reading (MEAN/LOW/HIGH/...) the evaluator's internal
	// sampling uses — exploration vs exploitation share this one code
	// path. round seeds per-trial RNGs deterministically.
	Select(ctx context.Context, g *graph.Graph, s sampler.Sampler,
		a *graph.ActivationSet, k int, m int, typ influence.Type, round int) (graph.SeedSet, error)

	// Name identifies the evaluator for CLI output and logging.
	Name() string
}

// ManagerAware is implemented by evaluators that can reuse a
// SampleManager's per-seed reachable-set cache instead of resampling
// whole candidate sets on every Select call. CELF is the only evaluator
// that currently implements it; callers that own a Manager (strategy.base)
// wire it in through a type assertion before calling Select.
type ManagerAware interface {
	UseManager(mgr *samplemanager.Manager)
}

// candidates returns g's nodes not yet activated, in g's stable iteration
// order.
func candidates(g *graph.Graph, a *graph.ActivationSet) []graph.NodeID {
	nodes := g.Nodes()
	out := make([]graph.NodeID, 0, len(nodes))
	for _, n := range nodes {
		if a == nil || !a.Contains(n) {
			out = append(out, n)
		}
	}
	return out
}

// spreadOf runs an M-sample spread measurement of seed set s against
// already-activated nodes a, returning the average activated count.
func spreadOf(ctx context.Context, g *graph.Graph, smp sampler.Sampler, a *graph.ActivationSet,
	s graph.SeedSet, m int, typ influence.Type, round int) (float64, error) {

	if len(s) == 0 {
		return 0, nil
	}
	res, err := smp.Sample(ctx, g, a, s, m, typ, round)
	if err != nil {
		return res.AverageSpread, err
	}
	return res.AverageSpread, nil
}
