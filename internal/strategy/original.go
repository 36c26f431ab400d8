package strategy

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

// OriginalGraphStrategy uses a single evaluator against the model graph
// with no posterior updating — the model graph *is* the ground truth,
// the offline baseline every online strategy is compared against.
type OriginalGraphStrategy struct {
	*base
	eval evaluator.Evaluator
}

// NewOriginalGraph constructs the offline baseline strategy. Since there
// is no separate ground truth here, model and ground truth are the same
// graph and posterior updating is always off regardless of the update
// flag.
func NewOriginalGraph(g *graph.Graph, eval evaluator.Evaluator, seed int64, samples int, log zerolog.Logger) *OriginalGraphStrategy {
	return &OriginalGraphStrategy{
		base: newBase(g, g, seed, samples, false, log),
		eval: eval,
	}
}

func (s *OriginalGraphStrategy) Perform(ctx context.Context, budget, k int) ([]RoundLog, error) {
	defer s.teardown()
	logs := make([]RoundLog, 0, budget)
	for round := 0; round < budget; round++ {
		select {
		case <-ctx.Done():
			return logs, ctx.Err()
		default:
		}
		seeds, elapsed, err := selectWithTiming(ctx, s.eval, s.model, s.spreadS, s.activation, k, s.samples, influence.MEAN, round, s.mgr)
		if err != nil {
			return logs, err
		}
		res, err := s.replay(ctx, seeds, round)
		if err != nil {
			return logs, err
		}
		logs = append(logs, RoundLog{
			Round: round, Evaluator: s.eval.Name(), Seeds: seeds,
			Spread: res.AverageSpread, ElapsedSeconds: elapsed,
		})
		if len(seeds) < k {
			s.log.Warn().Int("round", round).Msg("graph exhausted, partial seed set returned")
			break
		}
	}
	return logs, nil
}
