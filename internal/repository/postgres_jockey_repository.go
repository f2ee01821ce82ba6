package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/models"
)

// PostgresJockeyRepository implements JockeyRepository for PostgreSQL
type PostgresJockeyRepository struct {
	db *database.DB
}

// NewPostgresJockeyRepository creates a new jockey repository
func NewPostgresJockeyRepository(db *database.DB) JockeyRepository {
	return &PostgresJockeyRepository{db: db}
}

// BatchGetVenueStats retrieves venue aggregates for a set of jockeys. Ids
// with no rows at the venue are absent from the result; callers treat absence
// as the no-venue-data fallback.
func (r *PostgresJockeyRepository) BatchGetVenueStats(ctx context.Context, ids []int64, venue string) (map[int64]models.JockeyVenueStat, error) {
	result := make(map[int64]models.JockeyVenueStat, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT jockey_id, venue, runs, wins, g1_runs, g1_wins
		FROM jockey_venue_stats
		WHERE jockey_id = ANY($1) AND venue = $2
	`

	rows, err := r.db.GetPool().Query(ctx, query, ids, venue)
	if err != nil {
		return nil, fmt.Errorf("failed to query jockey venue stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vs models.JockeyVenueStat
		if err := rows.Scan(&vs.JockeyID, &vs.Venue, &vs.Runs, &vs.Wins, &vs.G1Runs, &vs.G1Wins); err != nil {
			return nil, fmt.Errorf("failed to scan jockey venue stat: %w", err)
		}
		result[vs.JockeyID] = vs
	}

	return result, rows.Err()
}

// BatchGetOverallStats retrieves career aggregates for a set of jockeys
func (r *PostgresJockeyRepository) BatchGetOverallStats(ctx context.Context, ids []int64) (map[int64]models.JockeyOverallStat, error) {
	result := make(map[int64]models.JockeyOverallStat, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT jockey_id, name, runs, wins
		FROM jockey_overall_stats
		WHERE jockey_id = ANY($1)
	`

	rows, err := r.db.GetPool().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query jockey overall stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var os models.JockeyOverallStat
		if err := rows.Scan(&os.JockeyID, &os.Name, &os.Runs, &os.Wins); err != nil {
			return nil, fmt.Errorf("failed to scan jockey overall stat: %w", err)
		}
		result[os.JockeyID] = os
	}

	return result, rows.Err()
}

// BatchGetTrainerComboStats retrieves joint records for jockey/trainer pairs
func (r *PostgresJockeyRepository) BatchGetTrainerComboStats(ctx context.Context, pairs []JockeyTrainerPair) (map[JockeyTrainerPair]models.JockeyTrainerComboStat, error) {
	result := make(map[JockeyTrainerPair]models.JockeyTrainerComboStat, len(pairs))
	if len(pairs) == 0 {
		return result, nil
	}

	jockeyIDs := make([]int64, 0, len(pairs))
	trainerIDs := make([]int64, 0, len(pairs))
	wanted := make(map[JockeyTrainerPair]struct{}, len(pairs))
	for _, p := range pairs {
		jockeyIDs = append(jockeyIDs, p.JockeyID)
		trainerIDs = append(trainerIDs, p.TrainerID)
		wanted[p] = struct{}{}
	}

	// One query over the cross product, filtered back to the requested pairs.
	query := `
		SELECT jockey_id, trainer_id, runs, wins
		FROM jockey_trainer_stats
		WHERE jockey_id = ANY($1) AND trainer_id = ANY($2)
	`

	rows, err := r.db.GetPool().Query(ctx, query, jockeyIDs, trainerIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query jockey trainer stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs models.JockeyTrainerComboStat
		if err := rows.Scan(&cs.JockeyID, &cs.TrainerID, &cs.Runs, &cs.Wins); err != nil {
			return nil, fmt.Errorf("failed to scan jockey trainer stat: %w", err)
		}
		key := JockeyTrainerPair{JockeyID: cs.JockeyID, TrainerID: cs.TrainerID}
		if _, ok := wanted[key]; ok {
			result[key] = cs
		}
	}

	return result, rows.Err()
}
