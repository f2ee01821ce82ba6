package models

import (
	"time"
)

// Surface identifies the racing surface of a course.
type Surface string

const (
	SurfaceTurf Surface = "turf"
	SurfaceDirt Surface = "dirt"
	SurfaceJump Surface = "jump"
)

// TrackCondition categorizes the going on race day.
type TrackCondition string

const (
	ConditionGood     TrackCondition = "good"
	ConditionYielding TrackCondition = "yielding"
	ConditionSoft     TrackCondition = "soft"
	ConditionHeavy    TrackCondition = "heavy"
)

// Race represents the context of a single race card. It is immutable once
// constructed for a scoring pass.
type Race struct {
	ID             int64          `db:"id" json:"id" validate:"required"`
	Name           string         `db:"name" json:"name" validate:"required"`
	Venue          string         `db:"venue" json:"venue" validate:"required"`
	Distance       int            `db:"distance" json:"distance" validate:"required,gt=0"`
	Surface        Surface        `db:"surface" json:"surface" validate:"required,oneof=turf dirt jump"`
	Grade          string         `db:"grade" json:"grade"`
	TrackCondition TrackCondition `db:"track_condition" json:"track_condition"`
	Date           time.Time      `db:"date" json:"date" validate:"required"`
	CreatedAt      time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time      `db:"updated_at" json:"updated_at"`
}

// IsG1 reports whether the race carries the top grade tag.
func (r *Race) IsG1() bool {
	return r.Grade == "G1"
}

// RaceEntry represents a confirmed entrant on a race card.
type RaceEntry struct {
	ID         int64  `db:"id" json:"id" validate:"required"`
	RaceID     int64  `db:"race_id" json:"race_id" validate:"required"`
	HorseID    int64  `db:"horse_id" json:"horse_id" validate:"required"`
	HorseName  string `db:"horse_name" json:"horse_name"`
	GateNumber *int   `db:"gate_number" json:"gate_number"`
	JockeyID   *int64 `db:"jockey_id" json:"jockey_id"`
	TrainerID  *int64 `db:"trainer_id" json:"trainer_id"`
	Popularity *int   `db:"popularity" json:"popularity"`
}
