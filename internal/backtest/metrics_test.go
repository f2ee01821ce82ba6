package backtest

import (
	"math"
	"testing"
)

// TestSpearmanPerfectAgreement verifies monotonic agreement yields +1.
func TestSpearmanPerfectAgreement(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{10, 20, 30, 40, 50}

	if got := spearmanCorrelation(a, b); math.Abs(got-1) > 1e-9 {
		t.Errorf("expected 1.0, got %f", got)
	}
}

// TestSpearmanPerfectDisagreement verifies reversed order yields -1.
func TestSpearmanPerfectDisagreement(t *testing.T) {
	a := []float64{1, 2, 3, 4, 5}
	b := []float64{5, 4, 3, 2, 1}

	if got := spearmanCorrelation(a, b); math.Abs(got+1) > 1e-9 {
		t.Errorf("expected -1.0, got %f", got)
	}
}

// TestSpearmanBounds fuzzes a few permutations and asserts the result stays
// in [-1, 1].
func TestSpearmanBounds(t *testing.T) {
	cases := [][]float64{
		{3, 1, 4, 1, 5, 9, 2, 6},
		{2, 7, 1, 8, 2, 8, 1, 8},
		{1, 1, 1, 2, 2, 3, 4, 4},
	}
	ref := []float64{1, 2, 3, 4, 5, 6, 7, 8}

	for _, c := range cases {
		got := spearmanCorrelation(c, ref)
		if got < -1 || got > 1 {
			t.Errorf("correlation out of range for %v: %f", c, got)
		}
	}
}

// TestSpearmanTooFewPairs verifies fewer than three pairs reports 0.
func TestSpearmanTooFewPairs(t *testing.T) {
	if got := spearmanCorrelation([]float64{1, 2}, []float64{2, 1}); got != 0 {
		t.Errorf("expected 0 for two pairs, got %f", got)
	}
}

// TestSpearmanConstantSide verifies a constant series reports 0 rather than
// dividing by zero.
func TestSpearmanConstantSide(t *testing.T) {
	if got := spearmanCorrelation([]float64{5, 5, 5, 5}, []float64{1, 2, 3, 4}); got != 0 {
		t.Errorf("expected 0 for constant input, got %f", got)
	}
}

// TestAverageRanksTies verifies tied values share the mean of the ranks they
// span.
func TestAverageRanksTies(t *testing.T) {
	ranks := averageRanks([]float64{10, 20, 20, 30})

	want := []float64{1, 2.5, 2.5, 4}
	for i := range want {
		if ranks[i] != want[i] {
			t.Errorf("rank[%d]: expected %f, got %f", i, want[i], ranks[i])
		}
	}
}

// TestOverlapCount verifies the windowed intersection count and its cap at
// field size.
func TestOverlapCount(t *testing.T) {
	predicted := []int64{1, 2, 3, 4, 5}
	actual := []int64{3, 1, 9, 8, 7}

	if got := overlapCount(predicted, actual, 3); got != 2 {
		t.Errorf("expected overlap 2, got %d", got)
	}
	if got := overlapCount(predicted[:2], actual[:2], 5); got != 1 {
		t.Errorf("expected capped overlap 1, got %d", got)
	}
}
