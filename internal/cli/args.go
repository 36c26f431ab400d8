package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/parser"
	"github.com/gilchrisn/oim/internal/strategy"
)

func atoi(s, field string) (int, error) {
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: expected integer, got %q", field, s)
	}
	return v, nil
}

func atof(s, field string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%s: expected number, got %q", field, s)
	}
	return v, nil
}

func requireArgs(args []string, n int, usage string) error {
	if len(args) < n {
		return fmt.Errorf("expected at least %d arguments: %s", n, usage)
	}
	return nil
}

func validateBudgetK(budget, k int) error {
	if budget <= 0 {
		return fmt.Errorf("budget must be > 0, got %d", budget)
	}
	if k <= 0 {
		return fmt.Errorf("k must be > 0, got %d", k)
	}
	return nil
}

func loadPointGraph(path string) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()
	return parser.ParseEdgeList(f, parser.ModePoint, 1, 1)
}

func loadBetaGraph(path string, alpha, beta float64) (*graph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph file: %w", err)
	}
	defer f.Close()
	return parser.ParseEdgeList(f, parser.ModeBeta, alpha, beta)
}

// typeByIndex maps the small integers the CLI's [int_exploit]/
// [int_explore] arguments use onto influence.Type readings:
// 0=MEAN, 1=LOW, 2=HIGH, 3=SAMPLE, 4=PRIOR.
func typeByIndex(idx int) influence.Type {
	switch idx {
	case 1:
		return influence.LOW
	case 2:
		return influence.HIGH
	case 3:
		return influence.SAMPLE
	case 4:
		return influence.PRIOR
	default:
		return influence.MEAN
	}
}

// printRounds writes the per-round output format: round index, evaluator
// name, chosen seeds, observed spread, elapsed seconds, and a
// posterior-updated flag.
func printRounds(logs []strategy.RoundLog) {
	for _, rl := range logs {
		fmt.Printf("%d %s %s %.6f %.6f %v\n",
			rl.Round, rl.Evaluator, rl.Seeds.String(), rl.Spread, rl.ElapsedSeconds, rl.PosteriorUpdated)
	}
}
