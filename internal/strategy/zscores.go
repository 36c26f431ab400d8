package strategy

import (
	"context"
	"math"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

// armHistory tracks one evaluator's observed spreads for computing its
// z-score bound against the pool.
type armHistory struct {
	eval    evaluator.Evaluator
	spreads []float64
}

func (h *armHistory) mean() float64 {
	if len(h.spreads) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range h.spreads {
		sum += v
	}
	return sum / float64(len(h.spreads))
}

func (h *armHistory) stddev() float64 {
	if len(h.spreads) < 2 {
		return 0
	}
	m := h.mean()
	sq := 0.0
	for _, v := range h.spreads {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(h.spreads)-1))
}

// ZScoresStrategy picks, each round, the evaluator whose z-score upper
// bound against the pool's mean spread is highest,
// round-robining through every evaluator once first so each has a sample.
type ZScoresStrategy struct {
	*base
	arms []*armHistory
}

// NewZScores constructs a z-score bandit over the given evaluators.
func NewZScores(model, groundTruth *graph.Graph, evals []evaluator.Evaluator,
	seed int64, samples int, update bool, log zerolog.Logger) *ZScoresStrategy {

	arms := make([]*armHistory, len(evals))
	for i, e := range evals {
		arms[i] = &armHistory{eval: e}
	}
	return &ZScoresStrategy{
		base: newBase(model, groundTruth, seed, samples, update, log),
		arms: arms,
	}
}

// poolStats returns the mean and standard deviation of every arm's most
// recent observed spread across the full pool.
func (s *ZScoresStrategy) poolStats() (float64, float64) {
	var vals []float64
	for _, a := range s.arms {
		if len(a.spreads) > 0 {
			vals = append(vals, a.spreads[len(a.spreads)-1])
		}
	}
	if len(vals) == 0 {
		return 0, 0
	}
	sum := 0.0
	for _, v := range vals {
		sum += v
	}
	mean := sum / float64(len(vals))
	if len(vals) < 2 {
		return mean, 0
	}
	sq := 0.0
	for _, v := range vals {
		d := v - mean
		sq += d * d
	}
	return mean, math.Sqrt(sq / float64(len(vals)-1))
}

func (s *ZScoresStrategy) pickArm(round int) int {
	for i, a := range s.arms {
		if len(a.spreads) == 0 {
			return i
		}
	}
	poolMean, poolStd := s.poolStats()
	best := 0
	bestBound := math.Inf(-1)
	for i, a := range s.arms {
		z := 0.0
		if poolStd > 0 {
			z = (a.mean() - poolMean) / poolStd
		}
		bound := a.mean() + z*a.stddev()
		if bound > bestBound {
			bestBound = bound
			best = i
		}
	}
	_ = round
	return best
}

func (s *ZScoresStrategy) Perform(ctx context.Context, budget, k int) ([]RoundLog, error) {
	defer s.teardown()
	logs := make([]RoundLog, 0, budget)
	for round := 0; round < budget; round++ {
		select {
		case <-ctx.Done():
			return logs, ctx.Err()
		default:
		}
		armIdx := s.pickArm(round)
		arm := s.arms[armIdx]

		seeds, elapsed, err := selectWithTiming(ctx, arm.eval, s.model, s.spreadS, s.activation, k, s.samples, influence.MEAN, round, s.mgr)
		if err != nil {
			return logs, err
		}
		res, err := s.replay(ctx, seeds, round)
		if err != nil {
			return logs, err
		}
		updated := s.applyPosterior(res)
		arm.spreads = append(arm.spreads, res.AverageSpread)

		logs = append(logs, RoundLog{
			Round: round, Evaluator: arm.eval.Name(), Seeds: seeds,
			Spread: res.AverageSpread, ElapsedSeconds: elapsed, PosteriorUpdated: updated,
		})
		if len(seeds) < k {
			s.log.Warn().Int("round", round).Msg("graph exhausted, partial seed set returned")
			break
		}
	}
	return logs, nil
}
