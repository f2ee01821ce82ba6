// Package scoring implements the per-factor scoring algorithms and the
// weighted aggregation model for race entrants.
package scoring

// Components holds the ten sub-scores for one entrant. Each value is in
// [0,100]; the weighted total is derived, never stored.
type Components struct {
	RecentPerformance float64 `json:"recent_performance"`
	VenueAptitude     float64 `json:"venue_aptitude"`
	DistanceAptitude  float64 `json:"distance_aptitude"`
	Last3FAbility     float64 `json:"last_3f_ability"`
	G1Achievement     float64 `json:"g1_achievement"`
	RotationAptitude  float64 `json:"rotation_aptitude"`
	JockeyAbility     float64 `json:"jockey_ability"`
	TrackCondition    float64 `json:"track_condition_aptitude"`
	PostPosition      float64 `json:"post_position_effect"`
	TrainerAbility    float64 `json:"trainer_ability"`
}

// Get returns the sub-score for a factor.
func (c Components) Get(f Factor) float64 {
	switch f {
	case FactorRecentPerformance:
		return c.RecentPerformance
	case FactorVenueAptitude:
		return c.VenueAptitude
	case FactorDistanceAptitude:
		return c.DistanceAptitude
	case FactorLast3FAbility:
		return c.Last3FAbility
	case FactorG1Achievement:
		return c.G1Achievement
	case FactorRotationAptitude:
		return c.RotationAptitude
	case FactorJockeyAbility:
		return c.JockeyAbility
	case FactorTrackCondition:
		return c.TrackCondition
	case FactorPostPosition:
		return c.PostPosition
	case FactorTrainerAbility:
		return c.TrainerAbility
	}
	return 0
}

// Vector returns the sub-scores in canonical factor order.
func (c Components) Vector() []float64 {
	out := make([]float64, len(Factors))
	for i, f := range Factors {
		out[i] = c.Get(f)
	}
	return out
}

// FeatureVector returns the sub-scores normalized to [0,1] in canonical
// factor order. This is the convention shared with the weight calibrator and
// the external classifier service.
func (c Components) FeatureVector() []float64 {
	out := c.Vector()
	for i := range out {
		out[i] /= 100.0
	}
	return out
}

// Total computes the weighted sum of the sub-scores. Given components in
// [0,100] and weights summing to 1.0, the result is in [0,100].
func (c Components) Total(w Weights) float64 {
	total := 0.0
	for _, f := range Factors {
		total += c.Get(f) * w[f]
	}
	return total
}

func clampScore(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
