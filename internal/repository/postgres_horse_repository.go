package repository

import (
	"context"
	"fmt"

	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/models"
)

// PostgresHorseRepository implements HorseRepository for PostgreSQL. All
// batch methods issue a single query over the id set and seed the result map
// with an empty default for every requested id, so missing rows never read as
// missing keys.
type PostgresHorseRepository struct {
	db *database.DB
}

// NewPostgresHorseRepository creates a new horse repository
func NewPostgresHorseRepository(db *database.DB) HorseRepository {
	return &PostgresHorseRepository{db: db}
}

// BatchGetDetails retrieves horse details for a set of ids in one query
func (r *PostgresHorseRepository) BatchGetDetails(ctx context.Context, ids []int64) (map[int64]models.HorseDetails, error) {
	result := make(map[int64]models.HorseDetails, len(ids))
	for _, id := range ids {
		result[id] = models.HorseDetails{ID: id}
	}
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT id, name, birth_year, sex, trainer_id, created_at, updated_at
		FROM horses
		WHERE id = ANY($1)
	`

	rows, err := r.db.GetPool().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query horse details: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var d models.HorseDetails
		err := rows.Scan(&d.ID, &d.Name, &d.BirthYear, &d.Sex, &d.TrainerID, &d.CreatedAt, &d.UpdatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan horse details: %w", err)
		}
		result[d.ID] = d
	}

	return result, rows.Err()
}

// BatchGetRaceRecords retrieves past starts for a set of horses, most recent
// first per horse
func (r *PostgresHorseRepository) BatchGetRaceRecords(ctx context.Context, ids []int64) (map[int64][]models.RaceRecord, error) {
	result := make(map[int64][]models.RaceRecord, len(ids))
	for _, id := range ids {
		result[id] = []models.RaceRecord{}
	}
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT horse_id, date, race_name, venue, distance, surface, grade,
		       track_condition, jockey_id, popularity, finish_position, last_3f
		FROM race_records
		WHERE horse_id = ANY($1)
		ORDER BY horse_id, date DESC
	`

	rows, err := r.db.GetPool().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query race records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rec models.RaceRecord
		err := rows.Scan(
			&rec.HorseID, &rec.Date, &rec.RaceName, &rec.Venue, &rec.Distance,
			&rec.Surface, &rec.Grade, &rec.TrackCondition, &rec.JockeyID,
			&rec.Popularity, &rec.FinishPosition, &rec.Last3F,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan race record: %w", err)
		}
		result[rec.HorseID] = append(result[rec.HorseID], rec)
	}

	return result, rows.Err()
}

// BatchGetVenueStats retrieves per-venue aggregates for a set of horses
func (r *PostgresHorseRepository) BatchGetVenueStats(ctx context.Context, ids []int64) (map[int64][]models.VenueStat, error) {
	result := make(map[int64][]models.VenueStat, len(ids))
	for _, id := range ids {
		result[id] = []models.VenueStat{}
	}
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT horse_id, venue, runs, wins, places, shows
		FROM horse_venue_stats
		WHERE horse_id = ANY($1)
	`

	rows, err := r.db.GetPool().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query venue stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var vs models.VenueStat
		if err := rows.Scan(&vs.HorseID, &vs.Venue, &vs.Runs, &vs.Wins, &vs.Places, &vs.Shows); err != nil {
			return nil, fmt.Errorf("failed to scan venue stat: %w", err)
		}
		result[vs.HorseID] = append(result[vs.HorseID], vs)
	}

	return result, rows.Err()
}

// BatchGetConditionStats retrieves per-going aggregates for a set of horses
func (r *PostgresHorseRepository) BatchGetConditionStats(ctx context.Context, ids []int64) (map[int64][]models.TrackConditionStat, error) {
	result := make(map[int64][]models.TrackConditionStat, len(ids))
	for _, id := range ids {
		result[id] = []models.TrackConditionStat{}
	}
	if len(ids) == 0 {
		return result, nil
	}

	query := `
		SELECT horse_id, condition, runs, wins, places
		FROM horse_condition_stats
		WHERE horse_id = ANY($1)
	`

	rows, err := r.db.GetPool().Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to query condition stats: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var cs models.TrackConditionStat
		if err := rows.Scan(&cs.HorseID, &cs.Condition, &cs.Runs, &cs.Wins, &cs.Places); err != nil {
			return nil, fmt.Errorf("failed to scan condition stat: %w", err)
		}
		result[cs.HorseID] = append(result[cs.HorseID], cs)
	}

	return result, rows.Err()
}
