// Package service provides the scoring orchestration layer that assembles
// entity profiles from bulk-fetched repository data.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/metrics"
	"github.com/yourusername/turf-oracle/internal/models"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

// EntryScore is the scored output for one race entrant.
type EntryScore struct {
	EntryID    int64              `json:"entry_id"`
	HorseID    int64              `json:"horse_id"`
	HorseName  string             `json:"horse_name"`
	GateNumber *int               `json:"gate_number,omitempty"`
	Components scoring.Components `json:"components"`
	Total      float64            `json:"total"`
}

// ScoringService assembles entity profiles and produces one score per
// confirmed entrant. Profiles are owned by the invocation that built them;
// the service holds no mutable state and is safe for concurrent use.
type ScoringService struct {
	repos   *repository.Repositories
	weights scoring.Weights
	logger  *logrus.Logger
}

// NewScoringService creates a new scoring service
func NewScoringService(repos *repository.Repositories, weights scoring.Weights, logger *logrus.Logger) (*ScoringService, error) {
	if repos == nil {
		return nil, fmt.Errorf("repositories are required")
	}
	if weights == nil {
		weights = scoring.DefaultWeights()
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &ScoringService{repos: repos, weights: weights, logger: logger}, nil
}

// Weights returns the weight vector the service scores with.
func (s *ScoringService) Weights() scoring.Weights {
	return s.weights
}

// ScoreRace scores every confirmed entrant of a race. It fails with
// models.ErrRaceNotFound when the race id does not resolve; a race with zero
// entrants yields an empty result. Horse data is fetched with exactly four
// batched lookups regardless of field size.
func (s *ScoringService) ScoreRace(ctx context.Context, raceID int64) ([]EntryScore, error) {
	start := time.Now()
	defer func() {
		metrics.ScoringLatency.Observe(time.Since(start).Seconds())
	}()

	race, err := s.repos.Race.GetByID(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve race %d: %w", raceID, err)
	}

	entries, err := s.repos.Race.GetEntries(ctx, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to load entries: %w", err)
	}
	if len(entries) == 0 {
		s.logger.WithField("race_id", raceID).Info("Race has no confirmed entrants")
		return []EntryScore{}, nil
	}

	bulk, err := s.fetchBulkData(ctx, race, entries)
	if err != nil {
		return nil, err
	}

	scores := make([]EntryScore, 0, len(entries))
	for _, entry := range entries {
		horse := scoring.NewHorseProfile(
			bulk.details[entry.HorseID],
			bulk.records[entry.HorseID],
			bulk.venueStats[entry.HorseID],
			bulk.conditionStats[entry.HorseID],
		)
		components := scoring.Score(race, horse, bulk.jockeyProfile(entry), bulk.trainerProfile(entry), entry.GateNumber)
		scores = append(scores, EntryScore{
			EntryID:    entry.ID,
			HorseID:    entry.HorseID,
			HorseName:  entry.HorseName,
			GateNumber: entry.GateNumber,
			Components: components,
			Total:      components.Total(s.weights),
		})
	}

	metrics.ScoresComputedTotal.Add(float64(len(scores)))
	s.logger.WithFields(logrus.Fields{
		"race_id":  raceID,
		"venue":    race.Venue,
		"entrants": len(scores),
	}).Info("Race scored")

	return scores, nil
}

// bulkData holds the batched repository results for one scoring pass.
type bulkData struct {
	details        map[int64]models.HorseDetails
	records        map[int64][]models.RaceRecord
	venueStats     map[int64][]models.VenueStat
	conditionStats map[int64][]models.TrackConditionStat
	jockeyVenue    map[int64]models.JockeyVenueStat
	jockeyOverall  map[int64]models.JockeyOverallStat
	combos         map[repository.JockeyTrainerPair]models.JockeyTrainerComboStat
	trainers       map[int64]models.TrainerStats
}

// fetchBulkData issues the four horse batch lookups plus the jockey and
// trainer stat batches, all keyed by the entrant id set. This keeps the query
// count constant instead of growing with field size.
func (s *ScoringService) fetchBulkData(ctx context.Context, race *models.Race, entries []models.RaceEntry) (*bulkData, error) {
	horseIDs := make([]int64, 0, len(entries))
	jockeyIDs := make([]int64, 0, len(entries))
	trainerIDs := make([]int64, 0, len(entries))
	pairs := make([]repository.JockeyTrainerPair, 0, len(entries))
	for _, e := range entries {
		horseIDs = append(horseIDs, e.HorseID)
		if e.JockeyID != nil {
			jockeyIDs = append(jockeyIDs, *e.JockeyID)
		}
		if e.TrainerID != nil {
			trainerIDs = append(trainerIDs, *e.TrainerID)
		}
		if e.JockeyID != nil && e.TrainerID != nil {
			pairs = append(pairs, repository.JockeyTrainerPair{JockeyID: *e.JockeyID, TrainerID: *e.TrainerID})
		}
	}

	bulk := &bulkData{}
	var err error
	if bulk.details, err = s.repos.Horse.BatchGetDetails(ctx, horseIDs); err != nil {
		return nil, fmt.Errorf("failed to batch horse details: %w", err)
	}
	if bulk.records, err = s.repos.Horse.BatchGetRaceRecords(ctx, horseIDs); err != nil {
		return nil, fmt.Errorf("failed to batch race records: %w", err)
	}
	if bulk.venueStats, err = s.repos.Horse.BatchGetVenueStats(ctx, horseIDs); err != nil {
		return nil, fmt.Errorf("failed to batch venue stats: %w", err)
	}
	if bulk.conditionStats, err = s.repos.Horse.BatchGetConditionStats(ctx, horseIDs); err != nil {
		return nil, fmt.Errorf("failed to batch condition stats: %w", err)
	}
	if bulk.jockeyVenue, err = s.repos.Jockey.BatchGetVenueStats(ctx, jockeyIDs, race.Venue); err != nil {
		return nil, fmt.Errorf("failed to batch jockey venue stats: %w", err)
	}
	if bulk.jockeyOverall, err = s.repos.Jockey.BatchGetOverallStats(ctx, jockeyIDs); err != nil {
		return nil, fmt.Errorf("failed to batch jockey overall stats: %w", err)
	}
	if bulk.combos, err = s.repos.Jockey.BatchGetTrainerComboStats(ctx, pairs); err != nil {
		return nil, fmt.Errorf("failed to batch jockey trainer stats: %w", err)
	}
	if bulk.trainers, err = s.repos.Trainer.BatchGetStats(ctx, trainerIDs); err != nil {
		return nil, fmt.Errorf("failed to batch trainer stats: %w", err)
	}
	return bulk, nil
}

func (b *bulkData) jockeyProfile(entry models.RaceEntry) scoring.JockeyProfile {
	profile := scoring.JockeyProfile{}
	if entry.JockeyID == nil {
		return profile
	}
	if vs, ok := b.jockeyVenue[*entry.JockeyID]; ok {
		profile.Venue = &vs
	}
	if os, ok := b.jockeyOverall[*entry.JockeyID]; ok {
		profile.Overall = &os
	}
	if entry.TrainerID != nil {
		key := repository.JockeyTrainerPair{JockeyID: *entry.JockeyID, TrainerID: *entry.TrainerID}
		if cs, ok := b.combos[key]; ok {
			profile.Combo = &cs
		}
	}
	return profile
}

func (b *bulkData) trainerProfile(entry models.RaceEntry) scoring.TrainerProfile {
	profile := scoring.TrainerProfile{}
	if entry.TrainerID == nil {
		return profile
	}
	if ts, ok := b.trainers[*entry.TrainerID]; ok {
		profile.Stats = &ts
	}
	return profile
}
