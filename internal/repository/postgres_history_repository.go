package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/models"
)

// PostgresHistoryRepository assembles labeled historical races. It composes
// the batched horse/jockey/trainer lookups so the query count stays bounded
// by the number of venues in the range, not the number of entrants.
type PostgresHistoryRepository struct {
	db      *database.DB
	race    RaceRepository
	horse   HorseRepository
	jockey  JockeyRepository
	trainer TrainerRepository
}

// NewPostgresHistoryRepository creates a new history repository
func NewPostgresHistoryRepository(db *database.DB) HistoryRepository {
	return &PostgresHistoryRepository{
		db:      db,
		race:    NewPostgresRaceRepository(db),
		horse:   NewPostgresHorseRepository(db),
		jockey:  NewPostgresJockeyRepository(db),
		trainer: NewPostgresTrainerRepository(db),
	}
}

type labeledEntry struct {
	entry  models.RaceEntry
	finish int
}

// GetLabeledRaces returns every race in the range that has a recorded
// finishing order, with all the inputs needed to rebuild entrant profiles.
func (r *PostgresHistoryRepository) GetLabeledRaces(ctx context.Context, start, end time.Time) ([]*models.HistoricalRace, error) {
	races, err := r.race.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to load races: %w", err)
	}
	if len(races) == 0 {
		return nil, nil
	}

	raceIDs := make([]int64, len(races))
	for i, race := range races {
		raceIDs[i] = race.ID
	}

	entriesByRace, err := r.loadLabeledEntries(ctx, raceIDs)
	if err != nil {
		return nil, err
	}

	horseIDs := make([]int64, 0)
	jockeyIDs := make([]int64, 0)
	trainerIDs := make([]int64, 0)
	pairs := make([]JockeyTrainerPair, 0)
	for _, entries := range entriesByRace {
		for _, le := range entries {
			horseIDs = append(horseIDs, le.entry.HorseID)
			if le.entry.JockeyID != nil {
				jockeyIDs = append(jockeyIDs, *le.entry.JockeyID)
			}
			if le.entry.TrainerID != nil {
				trainerIDs = append(trainerIDs, *le.entry.TrainerID)
			}
			if le.entry.JockeyID != nil && le.entry.TrainerID != nil {
				pairs = append(pairs, JockeyTrainerPair{JockeyID: *le.entry.JockeyID, TrainerID: *le.entry.TrainerID})
			}
		}
	}

	details, err := r.horse.BatchGetDetails(ctx, horseIDs)
	if err != nil {
		return nil, err
	}
	records, err := r.horse.BatchGetRaceRecords(ctx, horseIDs)
	if err != nil {
		return nil, err
	}
	venueStats, err := r.horse.BatchGetVenueStats(ctx, horseIDs)
	if err != nil {
		return nil, err
	}
	conditionStats, err := r.horse.BatchGetConditionStats(ctx, horseIDs)
	if err != nil {
		return nil, err
	}
	overall, err := r.jockey.BatchGetOverallStats(ctx, jockeyIDs)
	if err != nil {
		return nil, err
	}
	combos, err := r.jockey.BatchGetTrainerComboStats(ctx, pairs)
	if err != nil {
		return nil, err
	}
	trainers, err := r.trainer.BatchGetStats(ctx, trainerIDs)
	if err != nil {
		return nil, err
	}

	// Jockey venue stats are venue-keyed, so batch once per distinct venue.
	jockeyVenue := make(map[string]map[int64]models.JockeyVenueStat)
	for _, race := range races {
		if _, done := jockeyVenue[race.Venue]; done {
			continue
		}
		stats, err := r.jockey.BatchGetVenueStats(ctx, jockeyIDs, race.Venue)
		if err != nil {
			return nil, err
		}
		jockeyVenue[race.Venue] = stats
	}

	result := make([]*models.HistoricalRace, 0, len(races))
	for _, race := range races {
		entries := entriesByRace[race.ID]
		if len(entries) == 0 {
			continue
		}
		hr := &models.HistoricalRace{Race: *race}
		for _, le := range entries {
			entrant := models.HistoricalEntrant{
				Entry:          le.entry,
				Details:        details[le.entry.HorseID],
				Records:        records[le.entry.HorseID],
				VenueStats:     venueStats[le.entry.HorseID],
				ConditionStats: conditionStats[le.entry.HorseID],
				FinishPosition: le.finish,
			}
			if le.entry.JockeyID != nil {
				if vs, ok := jockeyVenue[race.Venue][*le.entry.JockeyID]; ok {
					entrant.JockeyVenue = &vs
				}
				if os, ok := overall[*le.entry.JockeyID]; ok {
					entrant.JockeyOverall = &os
				}
				if le.entry.TrainerID != nil {
					key := JockeyTrainerPair{JockeyID: *le.entry.JockeyID, TrainerID: *le.entry.TrainerID}
					if cs, ok := combos[key]; ok {
						entrant.JockeyCombo = &cs
					}
				}
			}
			if le.entry.TrainerID != nil {
				if ts, ok := trainers[*le.entry.TrainerID]; ok {
					entrant.Trainer = &ts
				}
			}
			hr.Entrants = append(hr.Entrants, entrant)
		}
		result = append(result, hr)
	}

	return result, nil
}

func (r *PostgresHistoryRepository) loadLabeledEntries(ctx context.Context, raceIDs []int64) (map[int64][]labeledEntry, error) {
	query := `
		SELECT e.id, e.race_id, e.horse_id, e.horse_name, e.gate_number,
		       e.jockey_id, e.trainer_id, e.popularity, res.finish_position
		FROM race_entries e
		JOIN race_results res ON res.entry_id = e.id
		WHERE e.race_id = ANY($1)
		ORDER BY e.race_id, e.gate_number NULLS LAST, e.id
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query labeled entries: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]labeledEntry, len(raceIDs))
	for rows.Next() {
		var le labeledEntry
		err := rows.Scan(
			&le.entry.ID, &le.entry.RaceID, &le.entry.HorseID, &le.entry.HorseName,
			&le.entry.GateNumber, &le.entry.JockeyID, &le.entry.TrainerID,
			&le.entry.Popularity, &le.finish,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan labeled entry: %w", err)
		}
		result[le.entry.RaceID] = append(result[le.entry.RaceID], le)
	}

	return result, rows.Err()
}
