// Package strategy implements the online arbitration loop: each of T
// rounds chooses an evaluator, selects k seeds, replays them on the
// ground-truth graph, and folds the observed trial/hit counts back into
// the model graph's Beta posteriors. The outer loop produces one log
// entry per round and stops early after a round whose seed set is
// smaller than k.
package strategy

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/samplemanager"
	"github.com/gilchrisn/oim/internal/sampler"
)

// RoundLog is one round's output, formatted by the CLI as: round index,
// evaluator name, chosen seeds, observed spread, elapsed seconds, and
// whether a posterior update was applied.
type RoundLog struct {
	Round            int
	Evaluator        string
	Seeds            graph.SeedSet
	Spread           float64
	ElapsedSeconds   float64
	PosteriorUpdated bool
}

// Strategy runs T rounds of seed selection against a model graph,
// replaying outcomes on a ground-truth graph.
type Strategy interface {
	Perform(ctx context.Context, budget, k int) ([]RoundLog, error)
}

// base holds the state every strategy shares: the model graph evaluators
// read (mutated by posterior updates), the ground-truth graph replay
// observes against, the running activation set, and the explicitly
// owned SampleManager.
type base struct {
	model       *graph.Graph
	groundTruth *graph.Graph
	activation  *graph.ActivationSet
	spreadS     *sampler.SpreadSampler
	mgr         *samplemanager.Manager
	samples     int
	update      bool
	maxStep     float64
	log         zerolog.Logger
}

func newBase(model, groundTruth *graph.Graph, seed int64, samples int, update bool, log zerolog.Logger) *base {
	ps := sampler.NewPathSampler(seed)
	return &base{
		model:       model,
		groundTruth: groundTruth,
		activation:  graph.NewActivationSet(),
		spreadS:     sampler.New(seed, log),
		mgr:         samplemanager.New(model, ps, 1024),
		samples:     samples,
		update:      update,
		maxStep:     1e9,
		log:         log,
	}
}

// replay runs the chosen seeds against the ground-truth Point graph,
// growing the running activation set with whatever newly activated.
func (b *base) replay(ctx context.Context, seeds graph.SeedSet, round int) (sampler.Result, error) {
	res, err := b.spreadS.Sample(ctx, b.groundTruth, b.activation, seeds, b.samples, influence.MEAN, round)
	if err != nil {
		return res, fmt.Errorf("replay round %d: %w", round, err)
	}
	b.activation.AddAll(seeds)
	b.activation.Merge(res.Activated)
	return res, nil
}

// applyPosterior folds trial/hit counts into the model graph's Beta
// posteriors, then invalidates the SampleManager cache since posteriors
// have shifted materially.
func (b *base) applyPosterior(res sampler.Result) bool {
	if !b.update {
		return false
	}
	applied := false
	for key, trials := range res.Trials {
		if trials == 0 {
			continue
		}
		hits := res.Hits[key]
		dist, ok := b.model.EdgeDist(key.U, key.V)
		if !ok {
			continue
		}
		updated := dist.Update(float64(hits), float64(trials-hits), b.maxStep)
		b.model.MutateEdgeDist(key.U, key.V, updated)
		applied = true
	}
	if applied {
		b.mgr.Reset()
	}
	return applied
}

// teardown explicitly releases the SampleManager's cache.
func (b *base) teardown() {
	b.mgr.Reset()
}

// selectWithTiming runs one evaluator's Select call and returns its seeds
// with the call's elapsed seconds, timed with common.Stopwatch. mgr is wired into
// e first when e implements evaluator.ManagerAware, so reachability-based
// evaluators (CELF) answer marginal-gain queries from the SampleManager's
// per-seed cache rather than resampling from scratch every call.
func selectWithTiming(ctx context.Context, e evaluator.Evaluator, g *graph.Graph, s sampler.Sampler,
	a *graph.ActivationSet, k, m int, typ influence.Type, round int, mgr *samplemanager.Manager) (graph.SeedSet, float64, error) {

	if ma, ok := e.(evaluator.ManagerAware); ok {
		ma.UseManager(mgr)
	}
	sw := common.Start()
	seeds, err := e.Select(ctx, g, s, a, k, m, typ, round)
	return seeds, sw.ElapsedSeconds(), err
}
