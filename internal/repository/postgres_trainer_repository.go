package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/models"
)

// PostgresTrainerRepository implements TrainerRepository for PostgreSQL
type PostgresTrainerRepository struct {
	db *database.DB
}

// NewPostgresTrainerRepository creates a new trainer repository
func NewPostgresTrainerRepository(db *database.DB) TrainerRepository {
	return &PostgresTrainerRepository{db: db}
}

// BatchGetStats retrieves graded-race aggregates for a set of trainers
func (r *PostgresTrainerRepository) BatchGetStats(ctx context.Context, ids []int64) (map[int64]models.TrainerStats, error) {
	result := make(map[int64]models.TrainerStats, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT trainer_id, name, g1_runs, g1_wins, graded_runs, graded_wins
		FROM trainer_stats
		WHERE trainer_id = ANY($1)
	`

	rows, err := r.db.GetPool().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query trainer stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ts models.TrainerStats
		if err := rows.Scan(&ts.TrainerID, &ts.Name, &ts.G1Runs, &ts.G1Wins, &ts.GradedRuns, &ts.GradedWins); err != nil {
			return nil, fmt.Errorf("failed to scan trainer stat: %w", err)
		}
		result[ts.TrainerID] = ts
	}

	return result, rows.Err()
}
