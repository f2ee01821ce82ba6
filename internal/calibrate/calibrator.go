// Package calibrate fits an alternative scoring weight vector against
// historical finishing outcomes using ridge regression.
package calibrate

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/metrics"
	"github.com/yourusername/turf-oracle/internal/models"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

const (
	// DefaultLambda is the default L2 regularization strength.
	DefaultLambda = 0.1

	// DefaultMinSamples is the floor below which calibration is a no-op:
	// the fit would be dominated by noise.
	DefaultMinSamples = 20

	// Finish positions are mapped to a linear quality target: 1st -> 1.0,
	// 18th (a full field) -> 0.0.
	maxFieldSpread = 17.0
)

// Sample is one labeled entrant-race observation.
type Sample struct {
	Features       []float64 // ten sub-scores normalized to [0,1]
	FinishPosition int
}

// Result is the immutable outcome of one calibration fit. Callers hold and
// pass it forward; the calibrator keeps no trained state.
type Result struct {
	RunID              uuid.UUID       `json:"run_id"`
	Weights            scoring.Weights `json:"weights"`
	ImprovementPercent float64         `json:"improvement_percent"`
	SampleCount        int             `json:"sample_count"`
	Lambda             float64         `json:"lambda"`
	Calibrated         bool            `json:"calibrated"`
	FittedAt           time.Time       `json:"fitted_at"`
}

// Calibrator fits scoring weights against historical outcomes.
type Calibrator struct {
	history    repository.HistoryRepository
	logger     *logrus.Logger
	minSamples int
}

// NewCalibrator creates a new weight calibrator
func NewCalibrator(history repository.HistoryRepository, logger *logrus.Logger) *Calibrator {
	if logger == nil {
		logger = logrus.New()
	}
	return &Calibrator{history: history, logger: logger, minSamples: DefaultMinSamples}
}

// SetMinSamples overrides the sample floor. Non-positive values are ignored.
func (c *Calibrator) SetMinSamples(n int) {
	if n > 0 {
		c.minSamples = n
	}
}

// Run loads labeled races for the date range, derives samples, and fits.
func (c *Calibrator) Run(ctx context.Context, start, end time.Time, current scoring.Weights, lambda float64) (Result, error) {
	races, err := c.history.GetLabeledRaces(ctx, start, end)
	if err != nil {
		return Result{}, err
	}
	samples := CollectSamples(races)
	return c.Fit(samples, current, lambda), nil
}

// CollectSamples scores every entrant of every labeled race and pairs the
// feature vector with the actual finish position.
func CollectSamples(races []*models.HistoricalRace) []Sample {
	var samples []Sample
	for _, race := range races {
		if !race.Valid() {
			continue
		}
		for i := range race.Entrants {
			components := scoring.ScoreHistorical(&race.Race, &race.Entrants[i])
			samples = append(samples, Sample{
				Features:       components.FeatureVector(),
				FinishPosition: race.Entrants[i].FinishPosition,
			})
		}
	}
	return samples
}

// Fit solves the ridge system over the samples. With fewer observations than
// the sample floor it returns the current weights unchanged and zero
// improvement.
func (c *Calibrator) Fit(samples []Sample, current scoring.Weights, lambda float64) Result {
	metrics.CalibrationRunsTotal.Inc()

	if current == nil {
		current = scoring.DefaultWeights()
	}
	if lambda <= 0 {
		lambda = DefaultLambda
	}
	result := Result{
		RunID:       uuid.New(),
		Weights:     current.Clone(),
		SampleCount: len(samples),
		Lambda:      lambda,
		FittedAt:    time.Now().UTC(),
	}
	if len(samples) < c.minSamples {
		c.logger.WithFields(logrus.Fields{
			"samples": len(samples),
			"minimum": c.minSamples,
		}).Warn("Insufficient samples, keeping current weights")
		return result
	}

	x := make([][]float64, len(samples))
	y := make([]float64, len(samples))
	for i, s := range samples {
		x[i] = s.Features
		y[i] = finishQuality(s.FinishPosition)
	}

	solved, err := solveRidge(x, y, lambda)
	if err != nil {
		c.logger.WithError(err).Warn("Ridge solve failed, keeping current weights")
		return result
	}

	fitted := make(scoring.Weights, len(scoring.Factors))
	for i, f := range scoring.Factors {
		fitted[f] = solved[i]
	}
	fitted = fitted.Normalize()

	currentErr := squaredError(x, y, current)
	fittedErr := squaredError(x, y, fitted)
	improvement := 0.0
	if currentErr > 0 {
		improvement = (currentErr - fittedErr) / currentErr * 100
	}

	result.Weights = fitted
	result.ImprovementPercent = improvement
	result.Calibrated = true

	metrics.CalibrationImprovement.Set(improvement)
	c.logger.WithFields(logrus.Fields{
		"run_id":      result.RunID,
		"samples":     len(samples),
		"improvement": improvement,
	}).Info("Calibration complete")

	return result
}

// finishQuality maps a finish position to a continuous [0,1] target.
func finishQuality(position int) float64 {
	q := 1.0 - float64(position-1)/maxFieldSpread
	if q < 0 {
		return 0
	}
	return q
}

func squaredError(x [][]float64, y []float64, w scoring.Weights) float64 {
	total := 0.0
	for i, row := range x {
		pred := 0.0
		for j, f := range scoring.Factors {
			pred += row[j] * w[f]
		}
		diff := pred - y[i]
		total += diff * diff
	}
	return total
}
