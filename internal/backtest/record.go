// Package backtest replays the scoring model over historical races and
// measures its predictive accuracy.
package backtest

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/yourusername/turf-oracle/internal/scoring"
)

// RaceEval holds the per-race comparison of predicted ranking against the
// actual finishing order. Constructed once per evaluated race, never mutated
// afterwards.
type RaceEval struct {
	RaceID         int64   `json:"race_id"`
	FieldSize      int     `json:"field_size"`
	PredictedOrder []int64 `json:"predicted_order"` // entry ids, best first
	ActualOrder    []int64 `json:"actual_order"`    // entry ids, winner first
	Top1Hit        bool    `json:"top1_hit"`
	Top3Overlap    int     `json:"top3_overlap"`
	Top5Overlap    int     `json:"top5_overlap"`
	Correlation    float64 `json:"correlation"`
}

// SimulatedROI reports return-on-investment for the three illustrative bet
// types, computed at constant odds. This is an approximation for comparing
// model variants, not a market simulation.
type SimulatedROI struct {
	Win       decimal.Decimal `json:"win"`
	Show      decimal.Decimal `json:"show"`
	ExactaBox decimal.Decimal `json:"exacta_box"`
}

// FactorContribution is the predictive signal of one scoring factor across
// all entrant-race pairs.
type FactorContribution struct {
	Factor      scoring.Factor `json:"factor"`
	Correlation float64        `json:"correlation"`
	Samples     int            `json:"samples"`
}

// SuggestionDirection indicates which way a weight should move.
type SuggestionDirection string

const (
	SuggestIncrease SuggestionDirection = "increase"
	SuggestDecrease SuggestionDirection = "decrease"
)

// WeightSuggestion recommends adjusting one factor weight based on its
// measured contribution.
type WeightSuggestion struct {
	Factor        scoring.Factor      `json:"factor"`
	Direction     SuggestionDirection `json:"direction"`
	CurrentWeight float64             `json:"current_weight"`
	Contribution  float64             `json:"contribution"`
}

// Summary aggregates a full backtest run. Produced fresh on each run, never
// persisted by the engine.
type Summary struct {
	RunID          uuid.UUID            `json:"run_id"`
	StartDate      time.Time            `json:"start_date"`
	EndDate        time.Time            `json:"end_date"`
	TotalRaces     int                  `json:"total_races"`
	SkippedRaces   int                  `json:"skipped_races"`
	Top1Rate       float64              `json:"top1_rate"`
	Top3Rate       float64              `json:"top3_rate"`
	Top5Rate       float64              `json:"top5_rate"`
	AvgCorrelation float64              `json:"avg_correlation"`
	ROI            SimulatedROI         `json:"simulated_roi"`
	Contributions  []FactorContribution `json:"factor_contributions"`
	Suggestions    []WeightSuggestion   `json:"weight_suggestions"`
	Races          []RaceEval           `json:"races,omitempty"`
}
