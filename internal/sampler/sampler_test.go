package sampler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

func buildTriangle() *graph.Graph {
	g := graph.New()
	g.AddEdge(0, 1, influence.NewPoint(1.0))
	g.AddEdge(1, 2, influence.NewPoint(1.0))
	g.AddEdge(2, 0, influence.NewPoint(1.0))
	return g
}

// TestTriangleFullSpread checks full-certainty propagation: a 3-cycle
// of certainty-1.0 edges starting from any single seed must activate
// all 3 nodes every trial.
func TestTriangleFullSpread(t *testing.T) {
	g := buildTriangle()
	s := New(1, zerolog.Nop())
	res, err := s.Sample(context.Background(), g, graph.NewActivationSet(),
		graph.SeedSet{0}, 10, influence.MEAN, 0)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	if res.AverageSpread != 3.0 {
		t.Fatalf("AverageSpread = %v, want 3.0", res.AverageSpread)
	}
	if res.Activated.Len() != 3 {
		t.Fatalf("Activated.Len() = %d, want 3", res.Activated.Len())
	}
}

func TestZeroProbabilityNeverSpreads(t *testing.T) {
	g := graph.New()
	g.AddEdge(0, 1, influence.NewPoint(0.0))
	s := New(1, zerolog.Nop())
	res, err := s.Sample(context.Background(), g, graph.NewActivationSet(),
		graph.SeedSet{0}, 50, influence.MEAN, 0)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	if res.AverageSpread != 1.0 {
		t.Fatalf("AverageSpread = %v, want 1.0 (seed only)", res.AverageSpread)
	}
}

func TestActivationPriorExcludedFromNewSpread(t *testing.T) {
	g := buildTriangle()
	prior := graph.NewActivationSet()
	prior.Add(1)
	prior.Add(2)
	s := New(1, zerolog.Nop())
	res, err := s.Sample(context.Background(), g, prior, graph.SeedSet{0}, 5, influence.MEAN, 0)
	if err != nil {
		t.Fatalf("Sample returned error: %v", err)
	}
	if res.AverageSpread != 1.0 {
		t.Fatalf("AverageSpread = %v, want 1.0 (only seed, rest already activated)", res.AverageSpread)
	}
}

func TestCancellationObservedBetweenTrials(t *testing.T) {
	g := buildTriangle()
	s := New(1, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Sample(ctx, g, graph.NewActivationSet(), graph.SeedSet{0}, 10, influence.MEAN, 0)
	if err == nil {
		t.Fatalf("expected context error, got nil")
	}
}

func TestPathSamplerReachabilityIncludesSeeds(t *testing.T) {
	g := buildTriangle()
	p := NewPathSampler(1)
	reached := p.Trial(g, []graph.NodeID{0}, influence.MEAN, 0, 0)
	if len(reached) != 3 {
		t.Fatalf("len(reached) = %d, want 3", len(reached))
	}
}
