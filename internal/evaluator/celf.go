package evaluator

import (
	"container/heap"
	"context"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/samplemanager"
	"github.com/gilchrisn/oim/internal/sampler"
)

// celfItem is one entry of CELF's lazy-greedy priority queue: a candidate
// node, its most recently computed marginal gain, and the staleness
// token (the seed-set size at which that gain was computed).
type celfItem struct {
	node    graph.NodeID
	gain    float64
	token   int
	heapIdx int
}

type celfHeap []*celfItem

func (h celfHeap) Len() int { return len(h) }

// Less orders by descending gain; ties broken by ascending node id so
// runs are reproducible.
func (h celfHeap) Less(i, j int) bool {
	if h[i].gain != h[j].gain {
		return h[i].gain > h[j].gain
	}
	return h[i].node < h[j].node
}

func (h celfHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].heapIdx, h[j].heapIdx = i, j
}

func (h *celfHeap) Push(x interface{}) {
	item := x.(*celfItem)
	item.heapIdx = len(*h)
	*h = append(*h, item)
}

func (h *celfHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

// CELFEvaluator is the Cost-Effective Lazy Forward lazy-greedy submodular
// maximizer, grounded on Leskovec et al.'s acceleration
// of the classic greedy (1 - 1/e) algorithm.
type CELFEvaluator struct {
	log zerolog.Logger
	mgr *samplemanager.Manager
}

// NewCELF constructs a CELFEvaluator.
func NewCELF(log zerolog.Logger) *CELFEvaluator {
	return &CELFEvaluator{log: log}
}

func (e *CELFEvaluator) Name() string { return "celf" }

// UseManager wires a SampleManager into CELF's gain computation: every
// subsequent Select call answers "which nodes does S reach?" from the
// manager's per-seed cache, which CELF's lazy re-evaluation of
// overlapping candidate sets reuses across the greedy loop, instead of
// resampling each candidate set from scratch.
func (e *CELFEvaluator) UseManager(mgr *samplemanager.Manager) { e.mgr = mgr }

// spread computes the average activation count of seeds, through the
// SampleManager when one has been wired in, otherwise by sampling s
// directly.
func (e *CELFEvaluator) spread(ctx context.Context, g *graph.Graph, s sampler.Sampler,
	a *graph.ActivationSet, seeds graph.SeedSet, m int, typ influence.Type, round int) (float64, error) {

	if e.mgr != nil {
		return e.mgr.Spread(seeds, typ, round, m), nil
	}
	return spreadOf(ctx, g, s, a, seeds, m, typ, round)
}

// Select runs the lazy-greedy loop: the submodularity
// guarantee (diminishing returns) ensures a stale top element's
// re-evaluated gain upper-bounds all elements still below it, so lazy
// recomputation preserves the standard approximation in expectation.
func (e *CELFEvaluator) Select(ctx context.Context, g *graph.Graph, s sampler.Sampler,
	a *graph.ActivationSet, k int, m int, typ influence.Type, round int) (graph.SeedSet, error) {

	cands := candidates(g, a)
	if len(cands) == 0 || k <= 0 {
		return graph.SeedSet{}, nil
	}

	h := make(celfHeap, 0, len(cands))
	for _, v := range cands {
		select {
		case <-ctx.Done():
			return graph.SeedSet{}, ctx.Err()
		default:
		}
		gain, err := e.spread(ctx, g, s, a, graph.SeedSet{v}, m, typ, round)
		if err != nil {
			return graph.SeedSet{}, err
		}
		heap.Push(&h, &celfItem{node: v, gain: gain, token: 0})
	}

	var seeds graph.SeedSet
	currentSpread := 0.0
	for len(seeds) < k && h.Len() > 0 {
		select {
		case <-ctx.Done():
			return seeds, ctx.Err()
		default:
		}
		top := heap.Pop(&h).(*celfItem)
		if top.token == len(seeds) {
			seeds = append(seeds, top.node)
			currentSpread += top.gain
			e.log.Debug().Int("round", round).Uint64("node", uint64(top.node)).
				Float64("marginal_gain", top.gain).Msg("celf accepted seed")
			continue
		}
		candidateSet := append(append(graph.SeedSet{}, seeds...), top.node)
		newSpread, err := e.spread(ctx, g, s, a, candidateSet, m, typ, round)
		if err != nil {
			return seeds, err
		}
		top.gain = newSpread - currentSpread
		top.token = len(seeds)
		heap.Push(&h, top)
	}

	return seeds, nil
}
