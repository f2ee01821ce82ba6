package models

// JockeyVenueStat aggregates a jockey's rides at one venue.
type JockeyVenueStat struct {
	JockeyID int64  `db:"jockey_id" json:"jockey_id"`
	Venue    string `db:"venue" json:"venue"`
	Runs     int    `db:"runs" json:"runs"`
	Wins     int    `db:"wins" json:"wins"`
	G1Runs   int    `db:"g1_runs" json:"g1_runs"`
	G1Wins   int    `db:"g1_wins" json:"g1_wins"`
}

// JockeyOverallStat aggregates a jockey's rides across all venues.
type JockeyOverallStat struct {
	JockeyID int64  `db:"jockey_id" json:"jockey_id"`
	Name     string `db:"name" json:"name"`
	Runs     int    `db:"runs" json:"runs"`
	Wins     int    `db:"wins" json:"wins"`
}

// JockeyTrainerComboStat aggregates the joint record of a jockey/trainer pairing.
type JockeyTrainerComboStat struct {
	JockeyID  int64 `db:"jockey_id" json:"jockey_id"`
	TrainerID int64 `db:"trainer_id" json:"trainer_id"`
	Runs      int   `db:"runs" json:"runs"`
	Wins      int   `db:"wins" json:"wins"`
}
