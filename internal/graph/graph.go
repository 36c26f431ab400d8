// Package graph implements the adjacency store: a directed graph whose
// arcs carry an influence.Distribution handle rather than a plain
// weight, so each arc can represent either a fixed probability or a
// Beta-distributed uncertain one.
package graph

import (
	"fmt"

	"gonum.org/v1/gonum/graph/simple"

	"github.com/gilchrisn/oim/internal/influence"
)

// NodeID identifies a node: a non-negative integer.
type NodeID uint64

// Edge is a directed arc (u, v, dist).
type Edge struct {
	Target NodeID
	Dist   influence.Distribution
}

// Graph is a mapping node -> list of (target, dist), outgoing-only, with a
// lazily-built reverse index.
type Graph struct {
	adjacency map[NodeID][]Edge
	order     []NodeID // insertion order, kept for stable iteration
	seen      map[NodeID]struct{}

	reverse      map[NodeID][]NodeID
	reverseEdges map[NodeID][]InEdge
	reverseOK    bool

	priorAlpha float64
	priorBeta  float64
	rounds     int
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		adjacency: make(map[NodeID][]Edge),
		seen:      make(map[NodeID]struct{}),
	}
}

// AddEdge appends an arc; idempotency is not required, callers deduplicate.
func (g *Graph) AddEdge(u, v NodeID, dist influence.Distribution) {
	g.touch(u)
	g.touch(v)
	g.adjacency[u] = append(g.adjacency[u], Edge{Target: v, Dist: dist})
	g.reverseOK = false
}

func (g *Graph) touch(n NodeID) {
	if _, ok := g.seen[n]; !ok {
		g.seen[n] = struct{}{}
		g.order = append(g.order, n)
	}
}

// Nodes returns all node ids in stable insertion order, so evaluator
// tie-breaks reproduce under a fixed RNG seed.
func (g *Graph) Nodes() []NodeID {
	out := make([]NodeID, len(g.order))
	copy(out, g.order)
	return out
}

// HasNeighbours reports whether u has any outgoing arcs.
func (g *Graph) HasNeighbours(u NodeID) bool {
	return len(g.adjacency[u]) > 0
}

// Neighbours returns u's outgoing arcs.
func (g *Graph) Neighbours(u NodeID) []Edge {
	return g.adjacency[u]
}

// OutDegree returns the number of outgoing arcs from u.
func (g *Graph) OutDegree(u NodeID) int {
	return len(g.adjacency[u])
}

// RemoveNode drops u and all its outgoing arcs; the reverse index, if
// built, is invalidated rather than patched in place.
func (g *Graph) RemoveNode(u NodeID) {
	delete(g.adjacency, u)
	delete(g.seen, u)
	for i, n := range g.order {
		if n == u {
			g.order = append(g.order[:i], g.order[i+1:]...)
			break
		}
	}
	g.reverseOK = false
}

// InEdge is a reverse-view arc: Source has a forward edge into the node
// this InEdge list is keyed by, carrying the same influence.Distribution
// as the forward arc.
type InEdge struct {
	Source NodeID
	Dist   influence.Distribution
}

// buildReverse lazily constructs the reverse incidence view on first
// use, invalidated whenever the adjacency changes.
func (g *Graph) buildReverse() {
	if g.reverseOK {
		return
	}
	g.reverse = make(map[NodeID][]NodeID)
	g.reverseEdges = make(map[NodeID][]InEdge)
	for u, edges := range g.adjacency {
		for _, e := range edges {
			g.reverse[e.Target] = append(g.reverse[e.Target], u)
			g.reverseEdges[e.Target] = append(g.reverseEdges[e.Target], InEdge{Source: u, Dist: e.Dist})
		}
	}
	g.reverseOK = true
}

// InNeighbours returns the set of nodes with an arc into v.
func (g *Graph) InNeighbours(v NodeID) []NodeID {
	g.buildReverse()
	return g.reverse[v]
}

// InEdges returns the reverse-view arcs into v, each carrying the forward
// edge's distribution so reverse BFS can apply the same coin flip TIM's
// sketch generation requires.
func (g *Graph) InEdges(v NodeID) []InEdge {
	g.buildReverse()
	return g.reverseEdges[v]
}

// SetPrior records the prior (α, β) used for posterior-mean normalization
// bookkeeping by some evaluators.
func (g *Graph) SetPrior(alpha, beta float64) {
	g.priorAlpha, g.priorBeta = alpha, beta
}

// Prior returns the recorded prior (α, β).
func (g *Graph) Prior() (float64, float64) {
	return g.priorAlpha, g.priorBeta
}

// UpdateRounds records how many observation rounds have elapsed.
func (g *Graph) UpdateRounds(n int) {
	g.rounds = n
}

// Rounds returns the recorded round count.
func (g *Graph) Rounds() int {
	return g.rounds
}

// NumNodes returns the number of distinct nodes.
func (g *Graph) NumNodes() int {
	return len(g.order)
}

// NumEdges returns the total number of arcs.
func (g *Graph) NumEdges() int {
	n := 0
	for _, edges := range g.adjacency {
		n += len(edges)
	}
	return n
}

// Clone returns a deep, value-typed copy: distributions are cloned per
// graph rather than shared via reference counting.
func (g *Graph) Clone() *Graph {
	c := New()
	for _, u := range g.order {
		c.touch(u)
	}
	for u, edges := range g.adjacency {
		cloned := make([]Edge, len(edges))
		copy(cloned, edges)
		c.adjacency[u] = cloned
	}
	c.priorAlpha, c.priorBeta, c.rounds = g.priorAlpha, g.priorBeta, g.rounds
	return c
}

// EdgeDist returns the distribution on the arc (u, v), used by posterior
// update to read the pre-update Beta parameters before writing the new
// ones back via MutateEdgeDist.
func (g *Graph) EdgeDist(u, v NodeID) (influence.Distribution, bool) {
	for _, e := range g.adjacency[u] {
		if e.Target == v {
			return e.Dist, true
		}
	}
	return influence.Distribution{}, false
}

// MutateEdgeDist replaces the distribution on the arc (u, v), used by
// posterior updates. Returns false if
// no such arc exists.
func (g *Graph) MutateEdgeDist(u, v NodeID, dist influence.Distribution) bool {
	edges := g.adjacency[u]
	for i := range edges {
		if edges[i].Target == v {
			edges[i].Dist = dist
			return true
		}
	}
	return false
}

// ToGonum converts this graph to a gonum weighted directed graph, using
// the MEAN reading of each edge's distribution as the weight. Exercised
// by HighestDegreeEvaluator and the benchmark CLI mode's PageRank
// summary.
func (g *Graph) ToGonum() *simple.WeightedDirectedGraph {
	wg := simple.NewWeightedDirectedGraph(0, 0)
	for _, u := range g.order {
		wg.AddNode(simple.Node(u))
	}
	for u, edges := range g.adjacency {
		for _, e := range edges {
			if !wg.HasEdgeFromTo(int64(u), int64(e.Target)) {
				w := e.Dist.Sample(influence.MEAN, nil)
				wg.SetWeightedEdge(wg.NewWeightedEdge(
					simple.Node(u), simple.Node(e.Target), w))
			}
		}
	}
	return wg
}

// ActivationSet is the monotonically growing set of already-activated
// nodes A ⊆ V.
type ActivationSet struct {
	m map[NodeID]struct{}
}

// NewActivationSet returns an empty activation set.
func NewActivationSet() *ActivationSet {
	return &ActivationSet{m: make(map[NodeID]struct{})}
}

// Add marks n as activated.
func (a *ActivationSet) Add(n NodeID) {
	a.m[n] = struct{}{}
}

// AddAll marks every node in ns as activated.
func (a *ActivationSet) AddAll(ns []NodeID) {
	for _, n := range ns {
		a.m[n] = struct{}{}
	}
}

// Contains reports whether n has been activated.
func (a *ActivationSet) Contains(n NodeID) bool {
	_, ok := a.m[n]
	return ok
}

// Len reports the number of activated nodes.
func (a *ActivationSet) Len() int {
	return len(a.m)
}

// Merge adds every node activated in other to a.
func (a *ActivationSet) Merge(other *ActivationSet) {
	if other == nil {
		return
	}
	for n := range other.m {
		a.m[n] = struct{}{}
	}
}

// Clone returns an independent copy.
func (a *ActivationSet) Clone() *ActivationSet {
	c := NewActivationSet()
	for n := range a.m {
		c.m[n] = struct{}{}
	}
	return c
}

// SeedSet is the output of a single round's evaluator selection, S ⊆ V\A
// with |S| = k. A partial seed set has length < k.
type SeedSet []NodeID

// String renders the seed set as a compact, whitespace-separated line
// suitable for the CLI's per-round output format.
func (s SeedSet) String() string {
	out := ""
	for i, n := range s {
		if i > 0 {
			out += " "
		}
		out += fmt.Sprintf("%d", n)
	}
	return out
}
