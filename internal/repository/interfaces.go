package repository

import (
	"context"
	"time"

	"github.com/yourusername/turf-oracle/internal/models"
)

// RaceRepository defines the interface for race card data access
type RaceRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Race, error)
	GetEntries(ctx context.Context, raceID int64) ([]models.RaceEntry, error)
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Race, error)
}

// HorseRepository defines batched access to horse profile data. Every batch
// method returns a map keyed by horse id with an empty value for ids that
// have no rows, so callers can distinguish "no data" from "no score".
type HorseRepository interface {
	BatchGetDetails(ctx context.Context, ids []int64) (map[int64]models.HorseDetails, error)
	BatchGetRaceRecords(ctx context.Context, ids []int64) (map[int64][]models.RaceRecord, error)
	BatchGetVenueStats(ctx context.Context, ids []int64) (map[int64][]models.VenueStat, error)
	BatchGetConditionStats(ctx context.Context, ids []int64) (map[int64][]models.TrackConditionStat, error)
}

// JockeyRepository defines access to jockey statistics
type JockeyRepository interface {
	BatchGetVenueStats(ctx context.Context, ids []int64, venue string) (map[int64]models.JockeyVenueStat, error)
	BatchGetOverallStats(ctx context.Context, ids []int64) (map[int64]models.JockeyOverallStat, error)
	BatchGetTrainerComboStats(ctx context.Context, pairs []JockeyTrainerPair) (map[JockeyTrainerPair]models.JockeyTrainerComboStat, error)
}

// JockeyTrainerPair keys a jockey/trainer combination lookup.
type JockeyTrainerPair struct {
	JockeyID  int64
	TrainerID int64
}

// TrainerRepository defines access to trainer statistics
type TrainerRepository interface {
	BatchGetStats(ctx context.Context, ids []int64) (map[int64]models.TrainerStats, error)
}

// HistoryRepository supplies fully labeled historical races for backtesting
// and weight calibration.
type HistoryRepository interface {
	GetLabeledRaces(ctx context.Context, start, end time.Time) ([]*models.HistoricalRace, error)
}
