package evaluator

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

func bipartiteGraph(t *testing.T, left, right int) *graph.Graph {
	t.Helper()
	g := graph.New()
	for l := 0; l < left; l++ {
		for r := 0; r < right; r++ {
			g.AddEdge(graph.NodeID(l), graph.NodeID(left+r), influence.NewPoint(0.9))
		}
	}
	return g
}

func TestThetaGrowsWithTighterEpsilon(t *testing.T) {
	loose := theta(1000, 5, 0.5, 1.0)
	tight := theta(1000, 5, 0.05, 1.0)
	if tight <= loose {
		t.Fatalf("expected tighter epsilon to require more sketches: loose=%d tight=%d", loose, tight)
	}
}

func TestThetaZeroNodesIsZero(t *testing.T) {
	if v := theta(0, 5, 0.2, 1.0); v != 0 {
		t.Fatalf("expected 0 for empty graph, got %d", v)
	}
}

// TestTIMCoverageApproximatesOptimal checks TIM's coverage-driven pick:
// on a small synthetic bipartite instance where every left node reaches
// every right node with high probability, a single-seed selection must
// be a left-side node, since those cover the most RR-sets.
func TestTIMCoverageApproximatesOptimal(t *testing.T) {
	g := bipartiteGraph(t, 3, 6)
	log := zerolog.Nop()
	e := NewTIM(7, log)
	e.Epsilon = 0.3
	a := graph.NewActivationSet()

	seeds, err := e.Select(context.Background(), g, nil, a, 1, 2000, influence.MEAN, 0)
	if err != nil {
		t.Fatalf("select: %v", err)
	}
	if len(seeds) != 1 {
		t.Fatalf("expected 1 seed, got %d", len(seeds))
	}
	if seeds[0] >= 3 {
		t.Fatalf("expected a left-side node (highest fan-out) selected, got %d", seeds[0])
	}
}

func TestRRSetIncludesRootAlways(t *testing.T) {
	g := graph.New()
	g.AddEdge(0, 1, influence.NewPoint(0.0))
	rng := common.NewRNG(1, 0, 0)
	rs := rrSet(g, 1, influence.MEAN, rng)
	if _, ok := rs[1]; !ok {
		t.Fatalf("expected root always present in its own RR-set")
	}
	if _, ok := rs[0]; ok {
		t.Fatalf("expected zero-probability edge to never be traversed")
	}
}
