package strategy

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

func triangleGraph() *graph.Graph {
	g := graph.New()
	g.AddEdge(0, 1, influence.NewPoint(1.0))
	g.AddEdge(1, 2, influence.NewPoint(1.0))
	g.AddEdge(2, 0, influence.NewPoint(1.0))
	return g
}

// TestOriginalGraphStrategyTriangleSpread checks full propagation: on
// the point-probability triangle, CELF with a single round and k=1
// should report spread 3.
func TestOriginalGraphStrategyTriangleSpread(t *testing.T) {
	g := triangleGraph()
	log := zerolog.Nop()
	celf := evaluator.NewCELF(log)
	s := NewOriginalGraph(g, celf, 1, 10, log)

	logs, err := s.Perform(context.Background(), 1, 1)
	if err != nil {
		t.Fatalf("perform: %v", err)
	}
	if len(logs) != 1 {
		t.Fatalf("expected 1 round, got %d", len(logs))
	}
	if logs[0].Spread != 3.0 {
		t.Fatalf("expected spread 3.0, got %f", logs[0].Spread)
	}
}

func starBetaGraph() *graph.Graph {
	g := graph.New()
	for i := graph.NodeID(1); i <= 10; i++ {
		g.AddEdge(0, i, influence.NewBeta(1, 1, 0.5))
	}
	return g
}

func starPointGraph() *graph.Graph {
	g := graph.New()
	for i := graph.NodeID(1); i <= 10; i++ {
		g.AddEdge(0, i, influence.NewPoint(0.5))
	}
	return g
}

// TestEpsilonGreedyPosteriorStaysProbability checks posterior stability:
// with update on, the posterior mean of a hub->leaf arc starts at the
// arcs' true rate of 0.5, so instead of a direction of movement the test
// asserts it stays a legitimate probability. Activated nodes are never
// reselected and a round with fewer than k seeds ends the run, so on this
// 11-node star the budget of 20 is not reached: with seed 7 the hub is
// seeded in the second round, its 200 replay trials activate every leaf,
// and the third round finds no candidates left, so the run has 3 rounds.
func TestEpsilonGreedyPosteriorStaysProbability(t *testing.T) {
	model := starBetaGraph()
	truth := starPointGraph()
	log := zerolog.Nop()
	exploit := evaluator.NewHighestDegree()
	explore := evaluator.NewRandom(2)

	s := NewEpsilonGreedy(model, truth, exploit, explore, 0.3, influence.MEAN, influence.HIGH, 7, 200, true, log)
	logs, err := s.Perform(context.Background(), 20, 1)
	if err != nil {
		t.Fatalf("perform: %v", err)
	}
	if len(logs) != 3 {
		t.Fatalf("expected 3 rounds before the graph is exhausted, got %d", len(logs))
	}
	dist, ok := model.EdgeDist(0, 1)
	if !ok {
		t.Fatalf("expected edge (0,1) present in model")
	}
	mean := dist.Alpha() / (dist.Alpha() + dist.Beta())
	if mean < 0 || mean > 1 {
		t.Fatalf("expected posterior mean to remain a probability, got %f", mean)
	}
}

// TestEpsilonGreedyUpdateOffKeepsPriorFixed checks that update=false
// really is a no-op: posterior means remain exactly at their prior
// value across rounds.
func TestEpsilonGreedyUpdateOffKeepsPriorFixed(t *testing.T) {
	model := starBetaGraph()
	truth := starPointGraph()
	log := zerolog.Nop()
	exploit := evaluator.NewHighestDegree()
	explore := evaluator.NewRandom(2)

	s := NewEpsilonGreedy(model, truth, exploit, explore, 0.3, influence.MEAN, influence.HIGH, 7, 50, false, log)
	_, err := s.Perform(context.Background(), 10, 1)
	if err != nil {
		t.Fatalf("perform: %v", err)
	}
	dist, _ := model.EdgeDist(0, 1)
	if dist.Alpha() != 1 || dist.Beta() != 1 {
		t.Fatalf("expected prior untouched with update=false, got alpha=%f beta=%f", dist.Alpha(), dist.Beta())
	}
}
