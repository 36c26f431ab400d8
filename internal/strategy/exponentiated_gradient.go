package strategy

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

// egTypes is the fixed arm set this strategy arbitrates over.
var egTypes = []influence.Type{influence.MEAN, influence.LOW, influence.HIGH, influence.SAMPLE}

// ExponentiatedGradientStrategy is a Hedge/multiplicative-weights bandit
// over edge-weight types: draw a type proportional to its
// weight, run the evaluator with that type, observe spread, and multiply
// the drawn arm's weight by exp(η·σ/σ_max) where σ_max is a running
// normalizer.
type ExponentiatedGradientStrategy struct {
	*base
	eval     evaluator.Evaluator
	weights  []float64
	eta      float64
	sigmaMax float64
	seed     int64
}

// NewExponentiatedGradient constructs the EG strategy with uniform
// initial weights over {MEAN, LOW, HIGH, SAMPLE}.
func NewExponentiatedGradient(model, groundTruth *graph.Graph, eval evaluator.Evaluator,
	eta float64, seed int64, samples int, update bool, log zerolog.Logger) *ExponentiatedGradientStrategy {

	w := make([]float64, len(egTypes))
	for i := range w {
		w[i] = 1.0
	}
	return &ExponentiatedGradientStrategy{
		base: newBase(model, groundTruth, seed, samples, update, log),
		eval: eval, weights: w, eta: eta, sigmaMax: 1e-9, seed: seed,
	}
}

func (s *ExponentiatedGradientStrategy) drawType(round int) (influence.Type, int) {
	total := 0.0
	for _, w := range s.weights {
		total += w
	}
	rng := common.NewRNG(s.seed, round, -1)
	r := rng.Float64() * total
	acc := 0.0
	for i, w := range s.weights {
		acc += w
		if r <= acc {
			return egTypes[i], i
		}
	}
	return egTypes[len(egTypes)-1], len(egTypes) - 1
}

func (s *ExponentiatedGradientStrategy) Perform(ctx context.Context, budget, k int) ([]RoundLog, error) {
	defer s.teardown()
	logs := make([]RoundLog, 0, budget)
	for round := 0; round < budget; round++ {
		select {
		case <-ctx.Done():
			return logs, ctx.Err()
		default:
		}
		typ, armIdx := s.drawType(round)

		seeds, elapsed, err := selectWithTiming(ctx, s.eval, s.model, s.spreadS, s.activation, k, s.samples, typ, round, s.mgr)
		if err != nil {
			return logs, err
		}
		res, err := s.replay(ctx, seeds, round)
		if err != nil {
			return logs, err
		}
		updated := s.applyPosterior(res)

		if res.AverageSpread > s.sigmaMax {
			s.sigmaMax = res.AverageSpread
		}
		s.weights[armIdx] *= math.Exp(s.eta * res.AverageSpread / s.sigmaMax)
		normalizeWeights(s.weights)

		logs = append(logs, RoundLog{
			Round: round, Evaluator: s.eval.Name(), Seeds: seeds,
			Spread: res.AverageSpread, ElapsedSeconds: elapsed, PosteriorUpdated: updated,
		})
		if len(seeds) < k {
			s.log.Warn().Int("round", round).Msg("graph exhausted, partial seed set returned")
			break
		}
	}
	return logs, nil
}

func normalizeWeights(w []float64) {
	total := 0.0
	for _, v := range w {
		total += v
	}
	if total <= 0 {
		return
	}
	for i := range w {
		w[i] /= total
	}
}
