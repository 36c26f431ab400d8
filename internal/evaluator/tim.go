package evaluator

import (
	"context"
	"math"

	"golang.org/x/exp/rand"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/sampler"
)

// TIMEvaluator implements the two-phase Tang-Xiao-Shi reverse-reachable
// sketch algorithm: generate θ RR-sets, then greedily
// pick the node covering the most uncovered sketches, k times.
type TIMEvaluator struct {
	Epsilon float64 // approximation slack ε; NewTIM sets 0.2
	Ell     float64 // confidence parameter ℓ; NewTIM sets 1.0
	seed    int64
	log     zerolog.Logger
}

// NewTIM constructs a TIMEvaluator seeded for reproducible sketch draws.
func NewTIM(seed int64, log zerolog.Logger) *TIMEvaluator {
	return &TIMEvaluator{Epsilon: 0.2, Ell: 1.0, seed: seed, log: log}
}

func (e *TIMEvaluator) Name() string { return "tim" }

// theta computes θ per the standard Tang-Xiao-Shi formula so that the
// maximum-coverage solution over θ sketches is, with probability
// ≥ 1 - n^(-ℓ), a (1 - 1/e - ε)-approximation.
func theta(n, k int, eps, ell float64) int {
	if n <= 0 {
		return 0
	}
	logNChooseK := logBinomial(n, k)
	lambda := (8 + 2*eps) * float64(n) *
		(ell*math.Log(float64(n)) + logNChooseK + math.Log(2)) / (eps * eps)
	v := int(math.Ceil(lambda))
	if v < 1 {
		v = 1
	}
	return v
}

func logBinomial(n, k int) float64 {
	if k <= 0 || k > n {
		return 0
	}
	logFact := func(x int) float64 {
		v, _ := math.Lgamma(float64(x + 1))
		return v
	}
	return logFact(n) - logFact(k) - logFact(n-k)
}

// rrSet samples one reverse-reachable set rooted at root: reverse BFS
// where each in-edge (u, v) is traversed with probability
// dist.Sample(typ).
func rrSet(g *graph.Graph, root graph.NodeID, typ influence.Type, rng *rand.Rand) map[graph.NodeID]struct{} {
	visited := map[graph.NodeID]struct{}{root: {}}
	frontier := []graph.NodeID{root}
	for len(frontier) > 0 {
		var next []graph.NodeID
		for _, v := range frontier {
			for _, in := range g.InEdges(v) {
				if _, ok := visited[in.Source]; ok {
					continue
				}
				p := in.Dist.Sample(typ, rng)
				if rng.Float64() < p {
					visited[in.Source] = struct{}{}
					next = append(next, in.Source)
				}
			}
		}
		frontier = next
	}
	return visited
}

// Select generates RR-set sketches and runs greedy maximum coverage
// over them. Activated nodes are excluded from selection but not from
// RR-set membership.
func (e *TIMEvaluator) Select(ctx context.Context, g *graph.Graph, s sampler.Sampler,
	a *graph.ActivationSet, k int, m int, typ influence.Type, round int) (graph.SeedSet, error) {

	allNodes := g.Nodes()
	n := len(allNodes)
	if n == 0 || k <= 0 {
		return graph.SeedSet{}, nil
	}

	numSketches := theta(n, k, e.Epsilon, e.Ell)
	if m > 0 && m < numSketches {
		// m caps the Monte-Carlo budget available this call, set by the
		// caller's `samples` CLI parameter.
		numSketches = m
	}

	rrSets := make([]map[graph.NodeID]struct{}, 0, numSketches)
	coverage := make(map[graph.NodeID][]int) // node -> indices of RR-sets containing it
	for i := 0; i < numSketches; i++ {
		select {
		case <-ctx.Done():
			return graph.SeedSet{}, ctx.Err()
		default:
		}
		rng := common.NewRNG(e.seed, round, i)
		root := allNodes[rng.Intn(n)]
		rs := rrSet(g, root, typ, rng)
		idx := len(rrSets)
		rrSets = append(rrSets, rs)
		for node := range rs {
			coverage[node] = append(coverage[node], idx)
		}
	}

	covered := make([]bool, len(rrSets))
	var seeds graph.SeedSet
	for len(seeds) < k {
		var best graph.NodeID
		bestCount := -1
		found := false
		for _, v := range allNodes {
			if a != nil && a.Contains(v) {
				continue
			}
			count := 0
			for _, idx := range coverage[v] {
				if !covered[idx] {
					count++
				}
			}
			if count > bestCount || (count == bestCount && found && v < best) {
				bestCount = count
				best = v
				found = true
			}
		}
		if !found || bestCount <= 0 {
			break
		}
		seeds = append(seeds, best)
		for _, idx := range coverage[best] {
			covered[idx] = true
		}
	}

	e.log.Debug().Int("round", round).Int("sketches", numSketches).
		Int("seeds", len(seeds)).Msg("tim selection complete")
	return seeds, nil
}
