package scoring

import (
	"math"
	"testing"
)

// TestDefaultWeightsSumToOne verifies the production weight vector is a
// proper convex combination.
func TestDefaultWeightsSumToOne(t *testing.T) {
	w := DefaultWeights()

	if len(w) != len(Factors) {
		t.Fatalf("expected %d weights, got %d", len(Factors), len(w))
	}
	if math.Abs(w.Sum()-1.0) > 1e-5 {
		t.Errorf("expected weights to sum to 1.0, got %f", w.Sum())
	}
	for _, f := range Factors {
		if w[f] <= 0 {
			t.Errorf("factor %s has non-positive weight %f", f, w[f])
		}
	}
}

// TestTotalBounds verifies the weighted total stays in [0,100] for component
// vectors at and inside the extremes.
func TestTotalBounds(t *testing.T) {
	w := DefaultWeights()

	all100 := Components{
		RecentPerformance: 100, VenueAptitude: 100, DistanceAptitude: 100,
		Last3FAbility: 100, G1Achievement: 100, RotationAptitude: 100,
		JockeyAbility: 100, TrackCondition: 100, PostPosition: 100, TrainerAbility: 100,
	}
	if total := all100.Total(w); math.Abs(total-100) > 1e-9 {
		t.Errorf("expected total 100 for max components, got %f", total)
	}

	var zero Components
	if total := zero.Total(w); total != 0 {
		t.Errorf("expected total 0 for zero components, got %f", total)
	}

	mixed := Components{
		RecentPerformance: 73.5, VenueAptitude: 50, DistanceAptitude: 12,
		Last3FAbility: 88, G1Achievement: 30, RotationAptitude: 0,
		JockeyAbility: 41.2, TrackCondition: 50, PostPosition: 92, TrainerAbility: 21,
	}
	total := mixed.Total(w)
	if total < 0 || total > 100 {
		t.Errorf("expected total in [0,100], got %f", total)
	}
}

// TestNormalizeClampsNegatives verifies negative weights are zeroed before
// rescaling.
func TestNormalizeClampsNegatives(t *testing.T) {
	w := Weights{}
	for _, f := range Factors {
		w[f] = -1
	}
	w[FactorRecentPerformance] = 3
	w[FactorJockeyAbility] = 1

	n := w.Normalize()
	if math.Abs(n.Sum()-1.0) > 1e-9 {
		t.Fatalf("expected normalized sum 1.0, got %f", n.Sum())
	}
	if math.Abs(n[FactorRecentPerformance]-0.75) > 1e-9 {
		t.Errorf("expected 0.75 for dominant factor, got %f", n[FactorRecentPerformance])
	}
	if n[FactorVenueAptitude] != 0 {
		t.Errorf("expected clamped factor to be 0, got %f", n[FactorVenueAptitude])
	}
}

// TestNormalizeAllNonPositiveFallsBack verifies a degenerate vector falls
// back to the defaults rather than dividing by zero.
func TestNormalizeAllNonPositiveFallsBack(t *testing.T) {
	w := Weights{}
	for _, f := range Factors {
		w[f] = 0
	}

	n := w.Normalize()
	d := DefaultWeights()
	for _, f := range Factors {
		if n[f] != d[f] {
			t.Fatalf("expected default weight for %s, got %f", f, n[f])
		}
	}
}

// TestFeatureVectorOrder verifies the calibrator-facing vector follows the
// canonical factor order at 1/100 scale.
func TestFeatureVectorOrder(t *testing.T) {
	c := Components{RecentPerformance: 80, TrainerAbility: 40}

	v := c.FeatureVector()
	if len(v) != len(Factors) {
		t.Fatalf("expected %d features, got %d", len(Factors), len(v))
	}
	if v[0] != 0.8 {
		t.Errorf("expected first feature 0.8, got %f", v[0])
	}
	if v[len(v)-1] != 0.4 {
		t.Errorf("expected last feature 0.4, got %f", v[len(v)-1])
	}
}
