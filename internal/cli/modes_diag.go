package cli

import (
	"fmt"

	"gonum.org/v1/gonum/graph/network"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/evaluator"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
)

// pageRankSummary reports the highest-scoring node and its score under
// gonum's PageRank over the loaded graph's weighted structure.
func pageRankSummary(g *graph.Graph) (graph.NodeID, float64) {
	wg := g.ToGonum()
	scores := network.PageRank(wg, 0.85, 1e-8)
	var best graph.NodeID
	bestScore := -1.0
	for _, n := range g.Nodes() {
		s := scores[int64(n)]
		if s > bestScore {
			bestScore = s
			best = n
		}
	}
	return best, bestScore
}

// runBenchmark implements mode "benchmark": graph, α, β, [update],
// [samples] — measures per-sample-per-node spread-sampling time and
// reports a PageRank-weighted summary of the loaded graph.
func runBenchmark(args []string) error {
	if err := requireArgs(args, 3, "graph alpha beta [update] [samples]"); err != nil {
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
	samples := 10
	if len(args) >= 5 {
		samples, err = atoi(args[4], "samples")
		if err != nil {
			return err
		}
	}

	g, err := loadBetaGraph(args[0], alpha, beta)
	if err != nil {
		return err
	}
	log := defaultLogger()
	smp := newBenchmarkSampler(1, log)

	seeds := graph.SeedSet{g.Nodes()[0]}
	sw := common.Start()
	_, err = smp.Sample(ctxBackground(), g, graph.NewActivationSet(), seeds, samples, influence.MEAN, 0)
	if err != nil {
		return err
	}
	elapsed := sw.ElapsedSeconds()
	n := g.NumNodes()
	perSamplePerNode := 0.0
	if samples > 0 && n > 0 {
		perSamplePerNode = elapsed / float64(samples) / float64(n)
	}

	topNode, topScore := pageRankSummary(g)

	fmt.Printf("nodes=%d edges=%d samples=%d time=%.6f time_per_sample_per_node=%.9f top_pagerank_node=%d top_pagerank_score=%.6f\n",
		n, g.NumEdges(), samples, elapsed, perSamplePerNode, topNode, topScore)
	return nil
}

// runSpread implements mode "spread": graph, α, β, k, [samples] —
// compares CELF vs Random runtimes at a fixed k.
func runSpread(args []string) error {
	if err := requireArgs(args, 4, "graph alpha beta k [samples]"); err != nil {
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
	k, err := atoi(args[3], "k")
	if err != nil {
		return err
	}
	if k <= 0 {
		return fmt.Errorf("k must be > 0, got %d", k)
	}
	samples := 100
	if len(args) >= 5 {
		samples, err = atoi(args[4], "samples")
		if err != nil {
			return err
		}
	}

	g, err := loadBetaGraph(args[0], alpha, beta)
	if err != nil {
		return err
	}
	log := defaultLogger()
	smp := newBenchmarkSampler(1, log)
	a := graph.NewActivationSet()

	celf := evaluator.NewCELF(log)
	swC := common.Start()
	celfSeeds, err := celf.Select(ctxBackground(), g, smp, a, k, samples, influence.MEAN, 0)
	if err != nil {
		return err
	}
	celfTime := swC.ElapsedSeconds()

	rnd := evaluator.NewRandom(1)
	swR := common.Start()
	randSeeds, err := rnd.Select(ctxBackground(), g, smp, a, k, samples, influence.MEAN, 0)
	if err != nil {
		return err
	}
	randTime := swR.ElapsedSeconds()

	celfSpread, err := spreadOf(smp, g, a, celfSeeds, samples)
	if err != nil {
		return err
	}
	randSpread, err := spreadOf(smp, g, a, randSeeds, samples)
	if err != nil {
		return err
	}

	fmt.Printf("celf_time=%.6f celf_spread=%.4f random_time=%.6f random_spread=%.4f\n",
		celfTime, celfSpread, randTime, randSpread)
	return nil
}
