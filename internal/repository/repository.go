package repository

import (
	"fmt"

	"github.com/yourusername/turf-oracle/internal/database"
)

// Repositories holds all repository implementations
type Repositories struct {
	Race    RaceRepository
	Horse   HorseRepository
	Jockey  JockeyRepository
	Trainer TrainerRepository
	History HistoryRepository
}

// NewRepositories creates and returns all repository implementations
func NewRepositories(db *database.DB) (*Repositories, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is required")
	}

	return &Repositories{
		Race:    NewPostgresRaceRepository(db),
		Horse:   NewPostgresHorseRepository(db),
		Jockey:  NewPostgresJockeyRepository(db),
		Trainer: NewPostgresTrainerRepository(db),
		History: NewPostgresHistoryRepository(db),
	}, nil
}
