package sim

const (
	penaltyBaseProb   = 0.75
	penaltyMinProb    = 0.6
	penaltyMaxProb    = 0.9
	penaltyRatingDiv  = 100.0
	penaltyInitialSet = 5
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// penaltyShootout simulates five attempts per side, then sudden-death rounds
// until the tallies differ. Both success probabilities are strictly inside
// (0, 1), so termination is probabilistically guaranteed.
func (e *Engine) penaltyShootout(rating1, rating2 float64) (tally1, tally2 int) {
	diff := (rating1 - rating2) / penaltyRatingDiv
	p1 := clamp(penaltyBaseProb+diff, penaltyMinProb, penaltyMaxProb)
	p2 := clamp(penaltyBaseProb-diff, penaltyMinProb, penaltyMaxProb)

	for i := 0; i < penaltyInitialSet; i++ {
		if e.rnd.Float64() < p1 {
			tally1++
		}
		if e.rnd.Float64() < p2 {
			tally2++
		}
	}

	for tally1 == tally2 {
		if e.rnd.Float64() < p1 {
			tally1++
		}
		if e.rnd.Float64() < p2 {
			tally2++
		}
	}
	return tally1, tally2
}
