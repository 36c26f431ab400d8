package cli

import (
	"github.com/gilchrisn/oim/internal/strategy"
)

// runReal implements mode "real": graph, exploit, budget, k, [inc],
// [samples] — a Point-prob graph with a single evaluator across budget
// rounds.
func runReal(args []string) error {
	if err := requireArgs(args, 4, "graph exploit budget k [inc] [samples]"); err != nil {
		return err
	}
	exploitIdx, err := atoi(args[1], "exploit")
	if err != nil {
		return err
	}
	budget, err := atoi(args[2], "budget")
	if err != nil {
		return err
	}
	k, err := atoi(args[3], "k")
	if err != nil {
		return err
	}
	samples := 100
	if len(args) >= 6 {
		samples, err = atoi(args[5], "samples")
		if err != nil {
			return err
		}
	}
	if err := validateBudgetK(budget, k); err != nil {
		return err
	}

	g, err := loadPointGraph(args[0])
	if err != nil {
		return err
	}
	log := defaultLogger()
	eval, err := evaluatorByIndex(exploitIdx, 1, log)
	if err != nil {
		return err
	}

	s := strategy.NewOriginalGraph(g, eval, 1, samples, log)
	logs, err := s.Perform(ctxBackground(), budget, k)
	if err != nil {
		return err
	}
	printRounds(logs)
	return nil
}

// runPrior implements mode "prior": graph, α, β, exploit, budget, k,
// [update], [samples] — a Beta graph with a single evaluator, posterior
// updating optionally on.
func runPrior(args []string) error {
	if err := requireArgs(args, 6, "graph alpha beta exploit budget k [update] [samples]"); err != nil {
		return err
	}
	alpha, err := atof(args[1], "alpha")
	if err != nil {
		return err
	}
	beta, err := atof(args[2], "beta")
	if err != nil {
		return err
	}
	exploitIdx, err := atoi(args[3], "exploit")
	if err != nil {
		return err
	}
	budget, err := atoi(args[4], "budget")
	if err != nil {
		return err
	}
	k, err := atoi(args[5], "k")
	if err != nil {
		return err
	}
	update := true
	if len(args) >= 7 {
		v, err := atoi(args[6], "update")
		if err != nil {
			return err
		}
		update = v != 0
	}
	samples := 100
	if len(args) >= 8 {
		samples, err = atoi(args[7], "samples")
		if err != nil {
			return err
		}
	}
	if err := validateBudgetK(budget, k); err != nil {
		return err
	}

	model, err := loadBetaGraph(args[0], alpha, beta)
	if err != nil {
		return err
	}
	groundTruth, err := loadPointGraph(args[0])
	if err != nil {
		return err
	}
	log := defaultLogger()
	eval, err := evaluatorByIndex(exploitIdx, 1, log)
	if err != nil {
		return err
	}

	s := strategy.NewEpsilonGreedy(model, groundTruth, eval, eval, 0, 0, 0, 1, samples, update, log)
	logs, err := s.Perform(ctxBackground(), budget, k)
	if err != nil {
		return err
	}
	printRounds(logs)
	return nil
}

// runExplore implements mode "explore": graph, α, β, explore, budget, k,
// [int_explore], [learn] — a pure exploration sanity run, i.e. ε-greedy
// pinned at ε=1 so the "explore" evaluator is always chosen.
func runExplore(args []string) error {
	if err := requireArgs(args, 6, "graph alpha beta explore budget k [int_explore] [learn]"); err != nil {
		return err
	}
	alpha, err := atof(args[1], "alpha")
	if err != nil {
		return err
	}
	beta, err := atof(args[2], "beta")
	if err != nil {
		return err
	}
	exploreIdx, err := atoi(args[3], "explore")
	if err != nil {
		return err
	}
	budget, err := atoi(args[4], "budget")
	if err != nil {
		return err
	}
	k, err := atoi(args[5], "k")
	if err != nil {
		return err
	}
	exploreType := 2 // HIGH is the default exploration reading
	if len(args) >= 7 {
		exploreType, err = atoi(args[6], "int_explore")
		if err != nil {
			return err
		}
	}
	learn := true
	if len(args) >= 8 {
		v, err := atoi(args[7], "learn")
		if err != nil {
			return err
		}
		learn = v != 0
	}
	if err := validateBudgetK(budget, k); err != nil {
		return err
	}

	model, err := loadBetaGraph(args[0], alpha, beta)
	if err != nil {
		return err
	}
	groundTruth, err := loadPointGraph(args[0])
	if err != nil {
		return err
	}
	log := defaultLogger()
	eval, err := evaluatorByIndex(exploreIdx, 1, log)
	if err != nil {
		return err
	}

	s := strategy.NewEpsilonGreedy(model, groundTruth, eval, eval, 1.0, typeByIndex(exploreType), typeByIndex(exploreType), 1, 100, learn, log)
	logs, err := s.Perform(ctxBackground(), budget, k)
	if err != nil {
		return err
	}
	printRounds(logs)
	return nil
}
