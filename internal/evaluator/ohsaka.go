package evaluator

import (
	"context"

	"golang.org/x/exp/rand"

	"github.com/rs/zerolog"

	"github.com/gilchrisn/oim/internal/common"
	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/sampler"
)

// miniDAG is the per-sample SCC-contraction DAG used by PMC's pruning
// pass: nodes are SCC ids, edges follow the DFS predecessor tree
// discovered by Tarjan's algorithm — built from the `pred` map alone,
// not a full cross-SCC edge contraction.
type miniDAG struct {
	nodes map[int]struct{}
	adj   map[int][]int
}

func newMiniDAG() *miniDAG {
	return &miniDAG{nodes: make(map[int]struct{}), adj: make(map[int][]int)}
}

func (d *miniDAG) AddNode(n int) { d.nodes[n] = struct{}{} }

func (d *miniDAG) AddEdge(u, v int) {
	d.AddNode(u)
	d.AddNode(v)
	for _, x := range d.adj[u] {
		if x == v {
			return
		}
	}
	d.adj[u] = append(d.adj[u], v)
}

func (d *miniDAG) HasNode(n int) bool {
	_, ok := d.nodes[n]
	return ok
}

func (d *miniDAG) Neighbours(n int) []int { return d.adj[n] }

func (d *miniDAG) OutDegree(n int) int { return len(d.adj[n]) }

func (d *miniDAG) Nodes() []int {
	out := make([]int, 0, len(d.nodes))
	for n := range d.nodes {
		out = append(out, n)
	}
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1] > out[j]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// RemoveNode drops n and any edges pointing at it, mirroring Graph's own
// outgoing-only removal semantics.
func (d *miniDAG) RemoveNode(n int) {
	delete(d.nodes, n)
	delete(d.adj, n)
	for u, ns := range d.adj {
		filtered := ns[:0]
		for _, x := range ns {
			if x != n {
				filtered = append(filtered, x)
			}
		}
		d.adj[u] = filtered
	}
}

// bfsForwardSet returns the descendants of start (excluding start itself),
// grounded on OhsakaEvaluator.hpp's bfs(node, i, col) default form.
func bfsForwardSet(d *miniDAG, start int) map[int]struct{} {
	visited := map[int]struct{}{start: {}}
	result := make(map[int]struct{})
	queue := []int{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, w := range d.Neighbours(cur) {
			if _, seen := visited[w]; seen {
				continue
			}
			visited[w] = struct{}{}
			result[w] = struct{}{}
			queue = append(queue, w)
		}
	}
	return result
}

// canReach reports whether to is forward-reachable from from, grounded on
// OhsakaEvaluator.hpp's bfs(node, i, col, to=true, to_node) early-return
// form.
func canReach(d *miniDAG, from, to int) bool {
	if from == to {
		return true
	}
	visited := map[int]struct{}{from: {}}
	queue := []int{from}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, w := range d.Neighbours(cur) {
			if _, seen := visited[w]; seen {
				continue
			}
			if w == to {
				return true
			}
			visited[w] = struct{}{}
			queue = append(queue, w)
		}
	}
	return false
}

// tarjanLive performs iterative Tarjan SCC detection — an explicit
// work-stack of (node, iterator-state) frames in place of recursion, to
// keep large graphs off the call stack — over the live-edge sample
// induced by typ and rng, returning
// each node's SCC id, each SCC's member list, and the DFS predecessor map
// used to build the contraction DAG.
func tarjanLive(g *graph.Graph, typ influence.Type, rng *rand.Rand) (
	map[graph.NodeID]int, map[int][]graph.NodeID, map[graph.NodeID]graph.NodeID) {

	index := make(map[graph.NodeID]int)
	lowlink := make(map[graph.NodeID]int)
	onStack := make(map[graph.NodeID]bool)
	pred := make(map[graph.NodeID]graph.NodeID)
	var stack []graph.NodeID
	sccOf := make(map[graph.NodeID]int)
	members := make(map[int][]graph.NodeID)
	curIndex := 0
	sccCount := 0

	type frame struct {
		v        graph.NodeID
		children []graph.NodeID
		pos      int
	}

	liveChildren := func(v graph.NodeID) []graph.NodeID {
		var out []graph.NodeID
		for _, e := range g.Neighbours(v) {
			p := e.Dist.Sample(typ, rng)
			if rng.Float64() < p {
				out = append(out, e.Target)
			}
		}
		return out
	}

	for _, root := range g.Nodes() {
		if _, ok := index[root]; ok {
			continue
		}
		pred[root] = root
		index[root] = curIndex
		lowlink[root] = curIndex
		curIndex++
		stack = append(stack, root)
		onStack[root] = true
		frames := []*frame{{v: root, children: liveChildren(root)}}

		for len(frames) > 0 {
			top := frames[len(frames)-1]
			if top.pos < len(top.children) {
				w := top.children[top.pos]
				top.pos++
				if _, seen := index[w]; !seen {
					pred[w] = top.v
					index[w] = curIndex
					lowlink[w] = curIndex
					curIndex++
					stack = append(stack, w)
					onStack[w] = true
					frames = append(frames, &frame{v: w, children: liveChildren(w)})
					continue
				} else if onStack[w] {
					if index[w] < lowlink[top.v] {
						lowlink[top.v] = index[w]
					}
				}
			} else {
				frames = frames[:len(frames)-1]
				if len(frames) > 0 {
					parent := frames[len(frames)-1]
					if lowlink[top.v] < lowlink[parent.v] {
						lowlink[parent.v] = lowlink[top.v]
					}
				}
				if lowlink[top.v] == index[top.v] {
					sccID := sccCount
					sccCount++
					for {
						w := stack[len(stack)-1]
						stack = stack[:len(stack)-1]
						onStack[w] = false
						sccOf[w] = sccID
						members[sccID] = append(members[sccID], w)
						if w == top.v {
							break
						}
					}
				}
			}
		}
	}
	return sccOf, members, pred
}

func buildDAGFromPred(sccOf map[graph.NodeID]int, pred map[graph.NodeID]graph.NodeID) *miniDAG {
	d := newMiniDAG()
	for node, parent := range pred {
		d.AddNode(sccOf[node])
		if sccOf[parent] != sccOf[node] {
			d.AddEdge(sccOf[parent], sccOf[node])
		}
	}
	return d
}

func removeActivatedFromMembers(members map[int][]graph.NodeID, a *graph.ActivationSet) {
	if a == nil {
		return
	}
	for id, nodes := range members {
		filtered := nodes[:0]
		for _, n := range nodes {
			if !a.Contains(n) {
				filtered = append(filtered, n)
			}
		}
		members[id] = filtered
	}
}

func pickHub(d *miniDAG) int {
	maxVal := -1
	maxNode := 0
	for _, v := range d.Nodes() {
		deg := d.OutDegree(v)
		if deg >= maxVal {
			maxVal = deg
			maxNode = v
		}
	}
	return maxNode
}

// pmcSample holds one DAG-contraction round's supporting structures.
type pmcSample struct {
	sccOf   map[graph.NodeID]int
	members map[int][]graph.NodeID
	dag     *miniDAG
	hub     int
	D       map[int]struct{}
	A       map[int]struct{}
	latest  map[int]bool
	delta   map[int]float64
}

// gain computes gain(i, node, set): an ancestor-pruning short-circuit
// when the current seed set is empty, otherwise a forward BFS over the
// DAG that skips expanding through nodes that lie in D(h) ∩ A(h).
func (ps *pmcSample) gain(node graph.NodeID, setEmpty bool) float64 {
	v, ok := ps.sccOf[node]
	if !ok || !ps.dag.HasNode(v) {
		return 0
	}
	if ps.latest[v] {
		return ps.delta[v]
	}
	ps.latest[v] = true

	if _, isAncestor := ps.A[v]; isAncestor && setEmpty {
		rep, ok := representativeOf(ps.members[ps.hub])
		if !ok {
			ps.delta[v] = 0
			return 0
		}
		ps.delta[v] = ps.gain(rep, setEmpty)
		return ps.delta[v]
	}

	ps.delta[v] = 0
	visited := map[int]struct{}{v: {}}
	queue := []int{v}
	for len(queue) > 0 {
		u := queue[0]
		queue = queue[1:]
		if _, isAncestor := ps.A[v]; isAncestor {
			if _, isDescendant := ps.D[u]; isDescendant && setEmpty {
				continue
			}
		}
		ps.delta[v] += float64(len(ps.members[u]))
		for _, w := range ps.dag.Neighbours(u) {
			if _, seen := visited[w]; seen {
				continue
			}
			if !ps.dag.HasNode(w) {
				continue
			}
			visited[w] = struct{}{}
			queue = append(queue, w)
		}
	}
	return ps.delta[v]
}

func representativeOf(members []graph.NodeID) (graph.NodeID, bool) {
	if len(members) == 0 {
		return 0, false
	}
	return members[0], true
}

// updateDAG removes the descendants of the chosen node's SCC and
// invalidates every cache entry that could still reach the removed
// region, exactly per OhsakaEvaluator.hpp's update_dag.
func (ps *pmcSample) updateDAG(node graph.NodeID) {
	t, ok := ps.sccOf[node]
	if !ok {
		return
	}
	desc := bfsForwardSet(ps.dag, t)
	for _, v := range ps.dag.Nodes() {
		if !ps.latest[v] {
			continue
		}
		for u := range desc {
			if canReach(ps.dag, v, u) {
				ps.latest[v] = false
				break
			}
		}
	}
	for u := range desc {
		ps.dag.RemoveNode(u)
	}
}

// OhsakaEvaluator implements Pruned Monte-Carlo, following Ohsaka et
// al. "Fast and Accurate Influence Maximization on Large Networks with
// Pruned Monte-Carlo Simulation" (AAAI 2014).
type OhsakaEvaluator struct {
	seed int64
	log  zerolog.Logger
}

// NewOhsaka constructs a PMC evaluator.
func NewOhsaka(seed int64, log zerolog.Logger) *OhsakaEvaluator {
	return &OhsakaEvaluator{seed: seed, log: log}
}

func (e *OhsakaEvaluator) Name() string { return "pmc" }

// Select runs an R-sample precompute followed by a k-iteration greedy
// loop averaging gain() across all R DAG caches. m is read as R, the
// number of live-edge/DAG samples: the evaluator samples internally
// rather than delegating to the passed sampler.Sampler, which is unused
// here, since PMC's sampling and pruning are fused into one pass.
func (e *OhsakaEvaluator) Select(ctx context.Context, g *graph.Graph, _ sampler.Sampler,
	a *graph.ActivationSet, k int, m int, typ influence.Type, round int) (graph.SeedSet, error) {

	r := m
	if r <= 0 {
		r = 1
	}
	allNodes := g.Nodes()
	if len(allNodes) == 0 || k <= 0 {
		return graph.SeedSet{}, nil
	}

	samples := make([]*pmcSample, 0, r)
	for i := 0; i < r; i++ {
		select {
		case <-ctx.Done():
			return graph.SeedSet{}, ctx.Err()
		default:
		}
		rng := common.NewRNG(e.seed, round, i)
		sccOf, members, pred := tarjanLive(g, typ, rng)
		dag := buildDAGFromPred(sccOf, pred)
		removeActivatedFromMembers(members, a)
		hub := pickHub(dag)
		D := bfsForwardSet(dag, hub)
		A := make(map[int]struct{})
		for _, v := range dag.Nodes() {
			if v == hub {
				continue
			}
			if _, inD := D[v]; inD {
				continue
			}
			if canReach(dag, v, hub) {
				A[v] = struct{}{}
			}
		}
		samples = append(samples, &pmcSample{
			sccOf: sccOf, members: members, dag: dag, hub: hub, D: D, A: A,
			latest: make(map[int]bool), delta: make(map[int]float64),
		})
	}

	chosen := make(map[graph.NodeID]bool)
	var seeds graph.SeedSet
	for len(seeds) < k {
		select {
		case <-ctx.Done():
			return seeds, ctx.Err()
		default:
		}
		var best graph.NodeID
		bestGain := -1.0
		found := false
		setEmpty := len(seeds) == 0
		for _, v := range allNodes {
			if a != nil && a.Contains(v) {
				continue
			}
			if chosen[v] {
				continue
			}
			total := 0.0
			for _, ps := range samples {
				total += ps.gain(v, setEmpty)
			}
			avg := total / float64(len(samples))
			if avg > bestGain || (avg == bestGain && found && v < best) {
				bestGain = avg
				best = v
				found = true
			}
		}
		if !found || bestGain <= 0 {
			break
		}
		seeds = append(seeds, best)
		chosen[best] = true
		for _, ps := range samples {
			ps.updateDAG(best)
		}
	}

	e.log.Debug().Int("round", round).Int("samples", r).
		Int("seeds", len(seeds)).Msg("pmc selection complete")
	return seeds, nil
}
