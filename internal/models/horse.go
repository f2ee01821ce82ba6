package models

import (
	"time"
)

// HorseDetails holds the static profile attributes of a horse.
type HorseDetails struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	BirthYear int       `db:"birth_year" json:"birth_year"`
	Sex       string    `db:"sex" json:"sex"`
	TrainerID *int64    `db:"trainer_id" json:"trainer_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// RaceRecord is one past start of a horse. Collections of records are always
// ordered date-descending (most recent first).
type RaceRecord struct {
	HorseID        int64          `db:"horse_id" json:"horse_id"`
	Date           time.Time      `db:"date" json:"date"`
	RaceName       string         `db:"race_name" json:"race_name"`
	Venue          string         `db:"venue" json:"venue"`
	Distance       int            `db:"distance" json:"distance"`
	Surface        Surface        `db:"surface" json:"surface"`
	Grade          string         `db:"grade" json:"grade"`
	TrackCondition TrackCondition `db:"track_condition" json:"track_condition"`
	JockeyID       *int64         `db:"jockey_id" json:"jockey_id"`
	Popularity     *int           `db:"popularity" json:"popularity"`
	FinishPosition int            `db:"finish_position" json:"finish_position"`
	Last3F         *float64       `db:"last_3f" json:"last_3f"`
}

// IsWin reports whether the record is a first-place finish.
func (r *RaceRecord) IsWin() bool {
	return r.FinishPosition == 1
}

// IsTop3 reports whether the record is a top-three finish.
func (r *RaceRecord) IsTop3() bool {
	return r.FinishPosition >= 1 && r.FinishPosition <= 3
}

// VenueStat aggregates a horse's starts at one venue.
// Invariant: Wins+Places+Shows <= Runs, all non-negative.
type VenueStat struct {
	HorseID int64  `db:"horse_id" json:"horse_id"`
	Venue   string `db:"venue" json:"venue"`
	Runs    int    `db:"runs" json:"runs"`
	Wins    int    `db:"wins" json:"wins"`
	Places  int    `db:"places" json:"places"`
	Shows   int    `db:"shows" json:"shows"`
}

// TrackConditionStat aggregates a horse's starts per going category.
type TrackConditionStat struct {
	HorseID   int64          `db:"horse_id" json:"horse_id"`
	Condition TrackCondition `db:"condition" json:"condition"`
	Runs      int            `db:"runs" json:"runs"`
	Wins      int            `db:"wins" json:"wins"`
	Places    int            `db:"places" json:"places"`
}
