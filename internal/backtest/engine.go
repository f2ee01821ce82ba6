package backtest

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/metrics"
	"github.com/yourusername/turf-oracle/internal/models"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

// Engine replays the scoring model over historical races sequentially.
// Historical race counts are small, so there is no streaming requirement.
type Engine struct {
	history repository.HistoryRepository
	weights scoring.Weights
	logger  *logrus.Logger
}

// NewEngine creates a new backtest engine
func NewEngine(history repository.HistoryRepository, weights scoring.Weights, logger *logrus.Logger) (*Engine, error) {
	if history == nil {
		return nil, fmt.Errorf("history repository is required")
	}
	if weights == nil {
		weights = scoring.DefaultWeights()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Engine{history: history, weights: weights, logger: logger}, nil
}

// Run evaluates every labeled race in the date range. Malformed races are
// skipped and counted, never fatal.
func (e *Engine) Run(ctx context.Context, start, end time.Time) (*Summary, error) {
	e.logger.WithFields(logrus.Fields{"start": start, "end": end}).Info("Starting backtest run")
	metrics.BacktestRunsTotal.Inc()
	runStart := time.Now()
	defer func() {
		metrics.BacktestDuration.Observe(time.Since(runStart).Seconds())
	}()

	races, err := e.history.GetLabeledRaces(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load labeled races: %w", err)
	}

	summary := &Summary{
		RunID:     uuid.New(),
		StartDate: start,
		EndDate:   end,
	}
	roi := newROITracker()
	contrib := newContributionTracker()

	top3Sum, top5Sum, corrSum := 0.0, 0.0, 0.0
	top1Hits := 0
	for _, race := range races {
		eval, err := e.evaluateRace(race, contrib)
		if err != nil {
			summary.SkippedRaces++
			e.logger.WithError(err).WithField("race_id", race.Race.ID).Warn("Skipping race")
			continue
		}
		summary.TotalRaces++
		summary.Races = append(summary.Races, eval)
		metrics.RacesEvaluatedTotal.Inc()

		if eval.Top1Hit {
			top1Hits++
		}
		top3Sum += normalizedOverlap(eval.Top3Overlap, eval.FieldSize, 3)
		top5Sum += normalizedOverlap(eval.Top5Overlap, eval.FieldSize, 5)
		corrSum += eval.Correlation
		roi.record(eval)
	}

	if summary.TotalRaces > 0 {
		n := float64(summary.TotalRaces)
		summary.Top1Rate = float64(top1Hits) / n
		summary.Top3Rate = top3Sum / n
		summary.Top5Rate = top5Sum / n
		summary.AvgCorrelation = corrSum / n
	}
	summary.ROI = roi.summary()
	summary.Contributions = contrib.contributions()
	summary.Suggestions = suggestWeights(summary.Contributions, e.weights)

	e.logger.WithFields(logrus.Fields{
		"run_id":    summary.RunID,
		"evaluated": summary.TotalRaces,
		"skipped":   summary.SkippedRaces,
		"top1_rate": summary.Top1Rate,
	}).Info("Backtest run complete")

	return summary, nil
}

// evaluateRace ranks the race's entrants by total score and compares against
// the actual finishing order.
func (e *Engine) evaluateRace(race *models.HistoricalRace, contrib *contributionTracker) (RaceEval, error) {
	if !race.Valid() {
		return RaceEval{}, models.ErrMalformedHistory
	}

	type scoredEntrant struct {
		entryID int64
		finish  int
		total   float64
	}

	scored := make([]scoredEntrant, 0, len(race.Entrants))
	for i := range race.Entrants {
		entrant := &race.Entrants[i]
		components := scoring.ScoreHistorical(&race.Race, entrant)
		contrib.record(components, entrant.FinishPosition)
		scored = append(scored, scoredEntrant{
			entryID: entrant.Entry.ID,
			finish:  entrant.FinishPosition,
			total:   components.Total(e.weights),
		})
	}

	// Predicted ranking: total descending, ties kept in entry order.
	predicted := make([]scoredEntrant, len(scored))
	copy(predicted, scored)
	sort.SliceStable(predicted, func(i, j int) bool {
		return predicted[i].total > predicted[j].total
	})

	actual := make([]scoredEntrant, len(scored))
	copy(actual, scored)
	sort.SliceStable(actual, func(i, j int) bool {
		return actual[i].finish < actual[j].finish
	})

	eval := RaceEval{
		RaceID:    race.Race.ID,
		FieldSize: len(scored),
	}
	predictedRank := make(map[int64]float64, len(predicted))
	for i, s := range predicted {
		eval.PredictedOrder = append(eval.PredictedOrder, s.entryID)
		predictedRank[s.entryID] = float64(i + 1)
	}
	for _, s := range actual {
		eval.ActualOrder = append(eval.ActualOrder, s.entryID)
	}

	eval.Top1Hit = predicted[0].entryID == actual[0].entryID
	eval.Top3Overlap = overlapCount(eval.PredictedOrder, eval.ActualOrder, 3)
	eval.Top5Overlap = overlapCount(eval.PredictedOrder, eval.ActualOrder, 5)

	ranks := make([]float64, 0, len(scored))
	finishes := make([]float64, 0, len(scored))
	for _, s := range scored {
		ranks = append(ranks, predictedRank[s.entryID])
		finishes = append(finishes, float64(s.finish))
	}
	eval.Correlation = spearmanCorrelation(ranks, finishes)

	return eval, nil
}

// normalizedOverlap converts an overlap count into a rate over the window
// size, capped by field size so small fields are not penalized.
func normalizedOverlap(overlap, fieldSize, window int) float64 {
	if window > fieldSize {
		window = fieldSize
	}
	if window == 0 {
		return 0
	}
	return float64(overlap) / float64(window)
}
