package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/models"
)

const errScanRace = "failed to scan race: %w"

// PostgresRaceRepository implements RaceRepository for PostgreSQL
type PostgresRaceRepository struct {
	db *database.DB
}

// NewPostgresRaceRepository creates a new race repository
func NewPostgresRaceRepository(db *database.DB) RaceRepository {
	return &PostgresRaceRepository{db: db}
}

// GetByID retrieves a race by ID
func (r *PostgresRaceRepository) GetByID(ctx context.Context, id int64) (*models.Race, error) {
	query := `
		SELECT id, name, venue, distance, surface, grade, track_condition, date,
		       created_at, updated_at
		FROM races WHERE id = $1
	`

	race := &models.Race{}
	err := r.db.GetPool().QueryRow(ctx, query, id).Scan(
		&race.ID, &race.Name, &race.Venue, &race.Distance, &race.Surface,
		&race.Grade, &race.TrackCondition, &race.Date, &race.CreatedAt, &race.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrRaceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get race: %w", err)
	}

	return race, nil
}

// GetEntries retrieves the confirmed entrants of a race ordered by gate number
func (r *PostgresRaceRepository) GetEntries(ctx context.Context, raceID int64) ([]models.RaceEntry, error) {
	query := `
		SELECT id, race_id, horse_id, horse_name, gate_number, jockey_id, trainer_id, popularity
		FROM race_entries
		WHERE race_id = $1
		ORDER BY gate_number NULLS LAST, id
	`

	rows, err := r.db.GetPool().Query(ctx, query, raceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query race entries: %w", err)
	}
	defer rows.Close()

	var entries []models.RaceEntry
	for rows.Next() {
		var entry models.RaceEntry
		err := rows.Scan(
			&entry.ID, &entry.RaceID, &entry.HorseID, &entry.HorseName,
			&entry.GateNumber, &entry.JockeyID, &entry.TrainerID, &entry.Popularity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan race entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetByDateRange retrieves races within a date range
func (r *PostgresRaceRepository) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Race, error) {
	query := `
		SELECT id, name, venue, distance, surface, grade, track_condition, date,
		       created_at, updated_at
		FROM races
		WHERE date >= $1 AND date <= $2
		ORDER BY date ASC
	`

	rows, err := r.db.GetPool().Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query races by date range: %w", err)
	}
	defer rows.Close()

	var races []*models.Race
	for rows.Next() {
		race := &models.Race{}
		err := rows.Scan(
			&race.ID, &race.Name, &race.Venue, &race.Distance, &race.Surface,
			&race.Grade, &race.TrackCondition, &race.Date, &race.CreatedAt, &race.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(errScanRace, err)
		}
		races = append(races, race)
	}

	return races, rows.Err()
}
