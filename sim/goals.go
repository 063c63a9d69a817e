package sim

import "math"

const (
	maxRegulationGoals = 7
	maxExtraTimeGoals  = 3

	// Extra time runs at 30% of the regulation expectation, floored so the
	// Poisson approximation keeps a usable tail.
	extraTimeScale          = 0.3
	extraTimeMinExpectation = 0.2

	baseExpectedGoals = 1.5
	minExpectedGoals  = 0.5
	ratingDiffScale   = 20.0
)

// poissonApprox draws an approximate Poisson variate via the normal
// approximation (mean λ, stddev √λ), rounded and floored at zero. The
// approximation trades accuracy in the low-λ tail for a dependency-free
// draw; decent for λ ≥ ~1.
func (e *Engine) poissonApprox(lambda float64) int {
	if lambda <= 0 {
		return 0
	}
	n := math.Round(e.rnd.NormFloat64()*math.Sqrt(lambda) + lambda)
	if n < 0 {
		return 0
	}
	return int(n)
}

// regulationGoals converts two team ratings into capped goal counts for the
// first 90 minutes, returning the base expectations for later extra-time use.
func (e *Engine) regulationGoals(rating1, rating2 float64) (goals1, goals2 int, base1, base2 float64) {
	diff := (rating1 - rating2) / ratingDiffScale
	base1 = math.Max(minExpectedGoals, baseExpectedGoals+diff+e.unit())
	base2 = math.Max(minExpectedGoals, baseExpectedGoals-diff+e.unit())

	goals1 = min(maxRegulationGoals, e.poissonApprox(base1))
	goals2 = min(maxRegulationGoals, e.poissonApprox(base2))
	return goals1, goals2, base1, base2
}

// extraTimeGoals reuses the goal model with the expectation scaled down for
// the 30 extra minutes, capped at 3 per team.
func (e *Engine) extraTimeGoals(base float64) int {
	lambda := math.Max(extraTimeMinExpectation, base*extraTimeScale)
	return min(maxExtraTimeGoals, e.poissonApprox(lambda))
}
