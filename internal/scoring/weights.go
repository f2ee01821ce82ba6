package scoring

// Factor identifies one of the ten scored components.
type Factor string

const (
	FactorRecentPerformance Factor = "recent_performance"
	FactorVenueAptitude     Factor = "venue_aptitude"
	FactorDistanceAptitude  Factor = "distance_aptitude"
	FactorLast3FAbility     Factor = "last_3f_ability"
	FactorG1Achievement     Factor = "g1_achievement"
	FactorRotationAptitude  Factor = "rotation_aptitude"
	FactorJockeyAbility     Factor = "jockey_ability"
	FactorTrackCondition    Factor = "track_condition_aptitude"
	FactorPostPosition      Factor = "post_position_effect"
	FactorTrainerAbility    Factor = "trainer_ability"
)

// Factors is the canonical ordering of the ten factors. Feature vectors
// handed to the calibrator and the external classifier follow this order.
var Factors = []Factor{
	FactorRecentPerformance,
	FactorVenueAptitude,
	FactorDistanceAptitude,
	FactorLast3FAbility,
	FactorG1Achievement,
	FactorRotationAptitude,
	FactorJockeyAbility,
	FactorTrackCondition,
	FactorPostPosition,
	FactorTrainerAbility,
}

// Weights maps each factor to its share of the total score.
// A valid weight vector sums to 1.0.
type Weights map[Factor]float64

// DefaultWeights returns the fixed production weight vector.
func DefaultWeights() Weights {
	return Weights{
		FactorRecentPerformance: 0.22,
		FactorVenueAptitude:     0.15,
		FactorDistanceAptitude:  0.12,
		FactorLast3FAbility:     0.10,
		FactorG1Achievement:     0.05,
		FactorRotationAptitude:  0.10,
		FactorJockeyAbility:     0.08,
		FactorTrackCondition:    0.05,
		FactorPostPosition:      0.05,
		FactorTrainerAbility:    0.08,
	}
}

// Sum returns the total of all weights.
func (w Weights) Sum() float64 {
	total := 0.0
	for _, f := range Factors {
		total += w[f]
	}
	return total
}

// Normalize returns a copy with negative weights clamped to zero and the
// remainder rescaled to sum to 1.0. If every weight is non-positive the
// default vector is returned instead.
func (w Weights) Normalize() Weights {
	clamped := make(Weights, len(Factors))
	total := 0.0
	for _, f := range Factors {
		v := w[f]
		if v < 0 {
			v = 0
		}
		clamped[f] = v
		total += v
	}
	if total == 0 {
		return DefaultWeights()
	}
	for _, f := range Factors {
		clamped[f] /= total
	}
	return clamped
}

// Clone returns an independent copy of the weight vector.
func (w Weights) Clone() Weights {
	out := make(Weights, len(w))
	for f, v := range w {
		out[f] = v
	}
	return out
}
