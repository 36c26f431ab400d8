package cli

import (
	"fmt"

	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/strategy"
)

// runEGreedy implements mode "egreedy": graph, α, β, exploit, explore,
// budget, k, ε, [update], [learn], [int_exploit], [int_explore], [inc],
// [samples].
func runEGreedy(args []string) error {
	if err := requireArgs(args, 8, "graph alpha beta exploit explore budget k epsilon [update] [learn] [int_exploit] [int_explore] [inc] [samples]"); err != nil {
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
	exploreIdx, err := atoi(args[4], "explore")
	if err != nil {
		return err
	}
	budget, err := atoi(args[5], "budget")
	if err != nil {
		return err
	}
	k, err := atoi(args[6], "k")
	if err != nil {
		return err
	}
	epsilon, err := atof(args[7], "epsilon")
	if err != nil {
		return err
	}
	update := true
	if len(args) >= 9 {
		v, err := atoi(args[8], "update")
		if err != nil {
			return err
		}
		update = v != 0
	}
	samples := 100
	if len(args) >= 14 {
		samples, err = atoi(args[13], "samples")
		if err != nil {
			return err
		}
	}
	intExploit := 0 // MEAN
	if len(args) >= 11 {
		intExploit, err = atoi(args[10], "int_exploit")
		if err != nil {
			return err
		}
	}
	intExplore := 2 // HIGH is the default exploration reading
	if len(args) >= 12 {
		intExplore, err = atoi(args[11], "int_explore")
		if err != nil {
			return err
		}
	}
	if err := validateBudgetK(budget, k); err != nil {
		return err
	}
	if epsilon < 0 || epsilon > 1 {
		return fmt.Errorf("epsilon must be in [0,1], got %f", epsilon)
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
	exploit, err := evaluatorByIndex(exploitIdx, 1, log)
	if err != nil {
		return err
	}
	explore, err := evaluatorByIndex(exploreIdx, 2, log)
	if err != nil {
		return err
	}

	s := strategy.NewEpsilonGreedy(model, groundTruth, exploit, explore, epsilon,
		typeByIndex(intExploit), typeByIndex(intExplore), 1, samples, update, log)
	logs, err := s.Perform(ctxBackground(), budget, k)
	if err != nil {
		return err
	}
	printRounds(logs)
	return nil
}

// runEG implements mode "eg": graph, α, β, exploit, budget, k, [update],
// [learn], [inc] — the Exponentiated-Gradient strategy.
func runEG(args []string) error {
	if err := requireArgs(args, 6, "graph alpha beta exploit budget k [update] [learn] [inc]"); err != nil {
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

	const eta = 0.5
	s := strategy.NewExponentiatedGradient(model, groundTruth, eval, eta, 1, 100, update, log)
	logs, err := s.Perform(ctxBackground(), budget, k)
	if err != nil {
		return err
	}
	printRounds(logs)
	return nil
}

// runZsc implements mode "zsc": graph, α, β, exploit, budget, k,
// [update], [learn] — the z-score evaluator-arbitration strategy over the
// full evaluator pool.
func runZsc(args []string) error {
	if err := requireArgs(args, 6, "graph alpha beta exploit budget k [update] [learn]"); err != nil {
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
	pool := []evaluator.Evaluator{
		evaluator.NewCELF(log),
		evaluator.NewRandom(1),
		evaluator.NewDiscountDegree(),
		evaluator.NewTIM(1, log),
		evaluator.NewHighestDegree(),
		evaluator.NewOhsaka(1, log),
	}

	s := strategy.NewZScores(model, groundTruth, pool, 1, 100, update, log)
	logs, err := s.Perform(ctxBackground(), budget, k)
	if err != nil {
		return err
	}
	printRounds(logs)
	return nil
}
