// Package cli implements the eight operating modes of the online
// influence-maximization engine, dispatched by name from args[0] in the
// style of a thin main->RunX(args) handoff. The round-based modes print
// one line per round to stdout; benchmark and spread print a single
// summary line. Every mode returns 0 on success, 1 on an error.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/evaluator"
)

// RunCLI dispatches to the mode named by args[0]. It never panics:
// every recoverable condition is converted to a one-line diagnostic on
// stderr and exit code 1.
func RunCLI(args []string) int {
	if len(args) < 1 {
		printUsage()
		return 1
	}
	mode := args[0]
	rest := args[1:]

	var err error
	switch mode {
	case "real":
		err = runReal(rest)
	case "prior":
		err = runPrior(rest)
	case "explore":
		err = runExplore(rest)
	case "egreedy":
		err = runEGreedy(rest)
	case "eg":
		err = runEG(rest)
	case "zsc":
		err = runZsc(rest)
	case "benchmark":
		err = runBenchmark(rest)
	case "spread":
		err = runSpread(rest)
	default:
		fmt.Fprintf(os.Stderr, "unknown mode: %s\n", mode)
		printUsage()
		return 1
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", mode, err)
		return 1
	}
	return 0
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "usage: oim <real|prior|explore|egreedy|eg|zsc|benchmark|spread> [args...]")
}

// evaluatorByIndex maps the small integers the CLI uses for
// exploit/explore selection onto concrete Evaluator instances:
// 0=CELF, 1=Random, 2=DiscountDegree, 3=TIM, 4=HighestDegree, 5=PMC.
func evaluatorByIndex(idx int, seed int64, log zerolog.Logger) (evaluator.Evaluator, error) {
	switch idx {
	case 0:
		return evaluator.NewCELF(log), nil
	case 1:
		return evaluator.NewRandom(seed), nil
	case 2:
		return evaluator.NewDiscountDegree(), nil
	case 3:
		return evaluator.NewTIM(seed, log), nil
	case 4:
		return evaluator.NewHighestDegree(), nil
	case 5:
		return evaluator.NewOhsaka(seed, log), nil
	default:
		return nil, fmt.Errorf("evaluator index out of range: %d", idx)
	}
}
