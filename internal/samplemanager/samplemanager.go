// Package samplemanager implements a seed -> []ReachableSet cache of
// PathSampler outputs, explicitly constructed and owned by a Strategy
// rather than a global singleton. Eviction is LRU per-seed, the
// standard container/list + map shape.
package samplemanager

import (
	"container/list"
	"sync"

	"github.com/gilchrisn/oim/internal/graph"
	"github.com/gilchrisn/oim/internal/influence"
	"github.com/gilchrisn/oim/internal/sampler"
)

type entry struct {
	seed    graph.NodeID
	samples []sampler.ReachableSet
}

// Manager is a bounded, thread-safe LRU cache of PathSampler outputs
// keyed by seed node. Thread-safety is required because
// evaluators may parallelize Monte-Carlo trials.
type Manager struct {
	mu       sync.Mutex
	capacity int
	ll       *list.List
	index    map[graph.NodeID]*list.Element
	sampler  *sampler.PathSampler
	g        *graph.Graph
}

// New constructs a Manager bound to the given graph and path sampler, with
// the given LRU capacity (number of distinct seeds cached).
func New(g *graph.Graph, ps *sampler.PathSampler, capacity int) *Manager {
	if capacity <= 0 {
		capacity = 1
	}
	return &Manager{
		capacity: capacity,
		ll:       list.New(),
		index:    make(map[graph.NodeID]*list.Element),
		sampler:  ps,
		g:        g,
	}
}

// Get returns the cached reachable-set trials for seed, creating a fresh
// single-trial entry on miss by running one forward IC trial.
func (m *Manager) Get(seed graph.NodeID, typ influence.Type, round int) []sampler.ReachableSet {
	m.mu.Lock()
	defer m.mu.Unlock()

	if el, ok := m.index[seed]; ok {
		m.ll.MoveToFront(el)
		return el.Value.(*entry).samples
	}

	trial := m.sampler.Trial(m.g, []graph.NodeID{seed}, typ, round, 0)
	e := &entry{seed: seed, samples: []sampler.ReachableSet{trial}}
	el := m.ll.PushFront(e)
	m.index[seed] = el
	m.evictIfNeeded()
	return e.samples
}

// Extend appends an additional trial's reachable set to seed's cached
// entry, used by evaluators accumulating more samples across a round.
func (m *Manager) Extend(seed graph.NodeID, rs sampler.ReachableSet) {
	m.mu.Lock()
	defer m.mu.Unlock()

	el, ok := m.index[seed]
	if !ok {
		e := &entry{seed: seed, samples: []sampler.ReachableSet{rs}}
		el = m.ll.PushFront(e)
		m.index[seed] = el
		m.evictIfNeeded()
		return
	}
	m.ll.MoveToFront(el)
	e := el.Value.(*entry)
	e.samples = append(e.samples, rs)
}

func (m *Manager) evictIfNeeded() {
	for len(m.index) > m.capacity {
		back := m.ll.Back()
		if back == nil {
			return
		}
		m.ll.Remove(back)
		delete(m.index, back.Value.(*entry).seed)
	}
}

// Spread estimates the expected activation count of seeds by unioning
// each seed's independently cached reachable set across trials draws,
// one draw per trial index. Per-seed reachable sets are fetched through
// Get/Extend, so candidate sets that share a seed across calls (as
// CELF's lazy-greedy re-evaluation does) reuse the cached trials instead
// of resampling the whole seed set from scratch.
func (m *Manager) Spread(seeds []graph.NodeID, typ influence.Type, round, trials int) float64 {
	if len(seeds) == 0 || trials <= 0 {
		return 0
	}
	unions := make([]map[graph.NodeID]struct{}, trials)
	for i := range unions {
		unions[i] = make(map[graph.NodeID]struct{})
	}
	for _, seed := range seeds {
		sets := m.ensureTrials(seed, typ, round, trials)
		for i := 0; i < trials && i < len(sets); i++ {
			for n := range sets[i] {
				unions[i][n] = struct{}{}
			}
		}
	}
	total := 0
	for _, u := range unions {
		total += len(u)
	}
	return float64(total) / float64(trials)
}

// ensureTrials returns at least `need` cached reachable-set trials for
// seed, running additional PathSampler trials beyond the single trial
// Get seeds a cold entry with.
func (m *Manager) ensureTrials(seed graph.NodeID, typ influence.Type, round, need int) []sampler.ReachableSet {
	sets := m.Get(seed, typ, round)
	for len(sets) < need {
		rs := m.sampler.Trial(m.g, []graph.NodeID{seed}, typ, round, len(sets))
		m.Extend(seed, rs)
		sets = m.Get(seed, typ, round)
	}
	return sets
}

// Reset clears the cache. Strategies call this explicitly whenever
// posteriors have shifted materially.
func (m *Manager) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ll.Init()
	m.index = make(map[graph.NodeID]*list.Element)
}

// Len reports how many seeds are currently cached.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.index)
}
