package models

// TrainerStats aggregates a trainer's record in top-grade and graded races.
type TrainerStats struct {
	TrainerID  int64  `db:"trainer_id" json:"trainer_id"`
	Name       string `db:"name" json:"name"`
	G1Runs     int    `db:"g1_runs" json:"g1_runs"`
	G1Wins     int    `db:"g1_wins" json:"g1_wins"`
	GradedRuns int    `db:"graded_runs" json:"graded_runs"`
	GradedWins int    `db:"graded_wins" json:"graded_wins"`
}
