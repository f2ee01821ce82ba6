package backtest

import (
	"github.com/yourusername/turf-oracle/internal/scoring"
)

// Thresholds for factor contribution reporting and weight suggestions.
const (
	// minContributionPairs is the floor below which a factor's contribution
	// is reported as 0.
	minContributionPairs = 10

	suggestIncreaseContribution = 0.15
	suggestIncreaseMaxWeight    = 0.20
	suggestDecreaseContribution = 0.05
	suggestDecreaseMinWeight    = 0.08
)

// contributionTracker collects (component score, finish position) pairs per
// factor across all evaluated entrants.
type contributionTracker struct {
	scores   map[scoring.Factor][]float64
	finishes map[scoring.Factor][]float64
}

func newContributionTracker() *contributionTracker {
	t := &contributionTracker{
		scores:   make(map[scoring.Factor][]float64, len(scoring.Factors)),
		finishes: make(map[scoring.Factor][]float64, len(scoring.Factors)),
	}
	return t
}

func (t *contributionTracker) record(components scoring.Components, finishPosition int) {
	for _, f := range scoring.Factors {
		t.scores[f] = append(t.scores[f], components.Get(f))
		t.finishes[f] = append(t.finishes[f], float64(finishPosition))
	}
}

// contributions computes the negated correlation between each factor's raw
// score and the actual finish position (lower position is better, so a
// useful factor correlates negatively and reports positive).
func (t *contributionTracker) contributions() []FactorContribution {
	out := make([]FactorContribution, 0, len(scoring.Factors))
	for _, f := range scoring.Factors {
		n := len(t.scores[f])
		corr := 0.0
		if n >= minContributionPairs {
			corr = -pearson(t.scores[f], t.finishes[f])
		}
		out = append(out, FactorContribution{Factor: f, Correlation: corr, Samples: n})
	}
	return out
}

// suggestWeights proposes weight changes: raise factors that predict well but
// are under-weighted, lower factors that predict poorly but are
// over-weighted.
func suggestWeights(contributions []FactorContribution, weights scoring.Weights) []WeightSuggestion {
	var suggestions []WeightSuggestion
	for _, c := range contributions {
		w := weights[c.Factor]
		switch {
		case c.Correlation > suggestIncreaseContribution && w < suggestIncreaseMaxWeight:
			suggestions = append(suggestions, WeightSuggestion{
				Factor:        c.Factor,
				Direction:     SuggestIncrease,
				CurrentWeight: w,
				Contribution:  c.Correlation,
			})
		case c.Correlation < suggestDecreaseContribution && w > suggestDecreaseMinWeight:
			suggestions = append(suggestions, WeightSuggestion{
				Factor:        c.Factor,
				Direction:     SuggestDecrease,
				CurrentWeight: w,
				Contribution:  c.Correlation,
			})
		}
	}
	return suggestions
}
