// Package influence implements the per-edge influence distributions: a
// closed tagged variant {Point, Beta} rather than a runtime-polymorphic
// handle, so dispatch on Type is a switch the compiler inlines for both
// arms.
package influence

import (
	"math"

	"golang.org/x/exp/rand"

	"gonum.org/v1/gonum/stat/distuv"
)

// Type selects which statistic a Distribution.Sample call reads, threaded
// through by the caller (sampler or evaluator) so exploration and
// exploitation share the same code path.
type Type int

const (
	MEAN Type = iota
	LOW
	HIGH
	SAMPLE
	PRIOR
)

// clampEpsilon bounds Beta parameters away from zero; probabilities are
// only clamped to [0,1] inclusive. gonum's distuv.Beta.Rand panics on non-positive Alpha/Beta,
// so every Beta construction clamps through this constant first rather
// than risk a panic on a degenerate posterior.
const clampEpsilon = 1e-6

func clamp01(p float64) float64 {
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}

func clampPositive(v float64) float64 {
	if v < clampEpsilon {
		return clampEpsilon
	}
	return v
}

// Kind discriminates the tagged variant.
type Kind int

const (
	KindPoint Kind = iota
	KindBeta
)

// Distribution is the value-typed, per-graph influence handle: cloned
// per graph rather than reference-counted, since a clone is a few
// float64s wide.
type Distribution struct {
	kind   Kind
	p      float64 // KindPoint: constant probability
	alpha  float64 // KindBeta
	beta   float64 // KindBeta
	priorP float64 // KindBeta: prior point estimate, used for PRIOR reads
	rounds float64 // number of Update calls absorbed
}

// NewPoint constructs a constant-probability distribution.
func NewPoint(p float64) Distribution {
	return Distribution{kind: KindPoint, p: clamp01(p)}
}

// NewBeta constructs a Beta(α, β) distribution with a prior point
// estimate. p_prior seeds the PRIOR reading and is otherwise inert.
func NewBeta(alpha, beta, priorP float64) Distribution {
	return Distribution{
		kind:   KindBeta,
		alpha:  clampPositive(alpha),
		beta:   clampPositive(beta),
		priorP: clamp01(priorP),
	}
}

// Kind reports which variant this distribution holds.
func (d Distribution) Kind() Kind { return d.kind }

// Alpha returns the current α parameter (KindBeta only; 0 for KindPoint).
func (d Distribution) Alpha() float64 { return d.alpha }

// Beta returns the current β parameter (KindBeta only; 0 for KindPoint).
func (d Distribution) Beta() float64 { return d.beta }

// Sample returns a reading of the given Type. Point returns p for every
// Type; Beta returns the corresponding statistic. rng backs
// the SAMPLE draw; it may be nil for MEAN/LOW/HIGH/PRIOR reads.
func (d Distribution) Sample(t Type, rng *rand.Rand) float64 {
	switch d.kind {
	case KindPoint:
		return d.p
	case KindBeta:
		return d.sampleBeta(t, rng)
	default:
		return 0
	}
}

func (d Distribution) sampleBeta(t Type, rng *rand.Rand) float64 {
	mean := d.alpha / (d.alpha + d.beta)
	switch t {
	case MEAN:
		return mean
	case PRIOR:
		return d.priorP
	case LOW, HIGH:
		variance := (d.alpha * d.beta) /
			((d.alpha + d.beta) * (d.alpha + d.beta) * (d.alpha + d.beta + 1))
		sd := math.Sqrt(variance)
		if t == LOW {
			return math.Max(0, mean-sd)
		}
		return math.Min(1, mean+sd)
	case SAMPLE:
		b := distuv.Beta{Alpha: d.alpha, Beta: d.beta, Src: rng}
		return clamp01(b.Rand())
	default:
		return mean
	}
}

// Update applies an observed trial to a Beta distribution: α += successes,
// β += failures, bounded so neither grows without limit within a single
// round. Point distributions are never written to — the
// ground-truth graph is immutable.
func (d Distribution) Update(successes, failures float64, maxStep float64) Distribution {
	if d.kind != KindBeta {
		return d
	}
	if maxStep > 0 {
		if successes > maxStep {
			successes = maxStep
		}
		if failures > maxStep {
			failures = maxStep
		}
	}
	d.alpha = clampPositive(d.alpha + successes)
	d.beta = clampPositive(d.beta + failures)
	d.rounds++
	return d
}

// Rounds reports how many posterior updates this distribution has
// absorbed.
func (d Distribution) Rounds() float64 { return d.rounds }
