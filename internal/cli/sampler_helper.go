package cli

import (
	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/sampler"
)

func newBenchmarkSampler(seed int64, log zerolog.Logger) *sampler.SpreadSampler {
	return sampler.New(seed, log)
}

func spreadOf(smp *sampler.SpreadSampler, g *graph.Graph, a *graph.ActivationSet,
	seeds graph.SeedSet, samples int) (float64, error) {

	res, err := smp.Sample(ctxBackground(), g, a, seeds, samples, influence.MEAN, 0)
	if err != nil {
		return 0, err
	}
	return res.AverageSpread, nil
}
