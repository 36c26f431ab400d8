package strategy

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

// EpsilonGreedyStrategy alternates between an exploit evaluator (read
// under exploitType, conventionally MEAN) and an explore evaluator (read
// under exploreType, conventionally HIGH), folding every outcome back
// into the Beta posteriors when update is on.
type EpsilonGreedyStrategy struct {
	*base
	exploit     evaluator.Evaluator
	explore     evaluator.Evaluator
	epsilon     float64
	exploitType influence.Type
	exploreType influence.Type
	seed        int64
}

// NewEpsilonGreedy constructs the ε-greedy strategy. Callers pass the
// resolved exploitType/exploreType directly; MEAN/HIGH are the
// conventional defaults when the caller has no stronger preference.
func NewEpsilonGreedy(model, groundTruth *graph.Graph, exploit, explore evaluator.Evaluator,
	epsilon float64, exploitType, exploreType influence.Type, seed int64, samples int, update bool,
	log zerolog.Logger) *EpsilonGreedyStrategy {

	return &EpsilonGreedyStrategy{
		base:        newBase(model, groundTruth, seed, samples, update, log),
		exploit:     exploit,
		explore:     explore,
		epsilon:     epsilon,
		exploitType: exploitType,
		exploreType: exploreType,
		seed:        seed,
	}
}

func (s *EpsilonGreedyStrategy) Perform(ctx context.Context, budget, k int) ([]RoundLog, error) {
	defer s.teardown()
	logs := make([]RoundLog, 0, budget)
	for round := 0; round < budget; round++ {
		select {
		case <-ctx.Done():
			return logs, ctx.Err()
		default:
		}
		rng := common.NewRNG(s.seed, round, -1)
		eval := s.exploit
		typ := s.exploitType
		if rng.Float64() < s.epsilon {
			eval = s.explore
			typ = s.exploreType
		}

		seeds, elapsed, err := selectWithTiming(ctx, eval, s.model, s.spreadS, s.activation, k, s.samples, typ, round, s.mgr)
		if err != nil {
			return logs, err
		}
		res, err := s.replay(ctx, seeds, round)
		if err != nil {
			return logs, err
		}
		updated := s.applyPosterior(res)
		logs = append(logs, RoundLog{
			Round: round, Evaluator: eval.Name(), Seeds: seeds,
			Spread: res.AverageSpread, ElapsedSeconds: elapsed, PosteriorUpdated: updated,
		})
		if len(seeds) < k {
			s.log.Warn().Int("round", round).Msg("graph exhausted, partial seed set returned")
			break
		}
	}
	return logs, nil
}
