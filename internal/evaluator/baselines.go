package evaluator

import (
	"context"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/sampler"
)

// RandomEvaluator picks k candidates uniformly at random via a
// rand.Perm-based shuffle. It exists as a cheap control arm for the
// bandit strategies.
type RandomEvaluator struct {
	seed int64
}

// NewRandom constructs a RandomEvaluator.
func NewRandom(seed int64) *RandomEvaluator {
	return &RandomEvaluator{seed: seed}
}

func (e *RandomEvaluator) Name() string { return "random" }

func (e *RandomEvaluator) Select(ctx context.Context, g *graph.Graph, _ sampler.Sampler,
	a *graph.ActivationSet, k int, _ int, _ influence.Type, round int) (graph.SeedSet, error) {

	cands := candidates(g, a)
	if len(cands) == 0 || k <= 0 {
		return graph.SeedSet{}, nil
	}
	select {
	case <-ctx.Done():
		return graph.SeedSet{}, ctx.Err()
	default:
	}

	rng := common.NewRNG(e.seed, round, 0)
	perm := rng.Perm(len(cands))
	if k > len(cands) {
		k = len(cands)
	}
	seeds := make(graph.SeedSet, k)
	for i := 0; i < k; i++ {
		seeds[i] = cands[perm[i]]
	}
	return seeds, nil
}

// HighestDegreeEvaluator picks the k candidates with the largest out-degree,
// reading degree off the gonum projection so the domain-stack dependency is exercised here
// rather than left idle.
type HighestDegreeEvaluator struct{}

// NewHighestDegree constructs a HighestDegreeEvaluator.
func NewHighestDegree() *HighestDegreeEvaluator { return &HighestDegreeEvaluator{} }

func (e *HighestDegreeEvaluator) Name() string { return "highest_degree" }

func (e *HighestDegreeEvaluator) Select(ctx context.Context, g *graph.Graph, _ sampler.Sampler,
	a *graph.ActivationSet, k int, _ int, _ influence.Type, _ int) (graph.SeedSet, error) {

	cands := candidates(g, a)
	if len(cands) == 0 || k <= 0 {
		return graph.SeedSet{}, nil
	}
	select {
	case <-ctx.Done():
		return graph.SeedSet{}, ctx.Err()
	default:
	}

	wg := g.ToGonum()
	degree := make(map[graph.NodeID]int, len(cands))
	for _, v := range cands {
		degree[v] = wg.From(int64(v)).Len()
	}
	ordered := sortByDegreeDesc(cands, degree)
	if k > len(ordered) {
		k = len(ordered)
	}
	return graph.SeedSet(ordered[:k]), nil
}

func sortByDegreeDesc(nodes []graph.NodeID, degree map[graph.NodeID]int) []graph.NodeID {
	out := make([]graph.NodeID, len(nodes))
	copy(out, nodes)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0; j-- {
			a, b := out[j-1], out[j]
			if degree[a] > degree[b] || (degree[a] == degree[b] && a <= b) {
				break
			}
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// DiscountDegreeEvaluator implements the Chen-Wang-Yang single discount
// heuristic: pick the highest remaining out-degree node,
// then discount each of its out-neighbours' degree by one before picking
// again, approximating that already-covered neighbours contribute less
// marginal spread.
type DiscountDegreeEvaluator struct{}

// NewDiscountDegree constructs a DiscountDegreeEvaluator.
func NewDiscountDegree() *DiscountDegreeEvaluator { return &DiscountDegreeEvaluator{} }

func (e *DiscountDegreeEvaluator) Name() string { return "discount_degree" }

func (e *DiscountDegreeEvaluator) Select(ctx context.Context, g *graph.Graph, _ sampler.Sampler,
	a *graph.ActivationSet, k int, _ int, _ influence.Type, _ int) (graph.SeedSet, error) {

	cands := candidates(g, a)
	if len(cands) == 0 || k <= 0 {
		return graph.SeedSet{}, nil
	}

	degree := make(map[graph.NodeID]int, len(cands))
	eligible := make(map[graph.NodeID]bool, len(cands))
	for _, v := range cands {
		degree[v] = g.OutDegree(v)
		eligible[v] = true
	}

	var seeds graph.SeedSet
	for len(seeds) < k {
		select {
		case <-ctx.Done():
			return seeds, ctx.Err()
		default:
		}
		var best graph.NodeID
		bestDeg := -1
		found := false
		for _, v := range cands {
			if !eligible[v] {
				continue
			}
			d := degree[v]
			if d > bestDeg || (d == bestDeg && found && v < best) {
				bestDeg = d
				best = v
				found = true
			}
		}
		if !found {
			break
		}
		seeds = append(seeds, best)
		eligible[best] = false
		for _, edge := range g.Neighbours(best) {
			if _, ok := degree[edge.Target]; ok {
				degree[edge.Target]--
			}
		}
	}
	return seeds, nil
}
