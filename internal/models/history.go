package models

// HistoricalEntrant bundles everything needed to rebuild one entrant's profile
// for a race that has already been run, together with the actual outcome.
type HistoricalEntrant struct {
	Entry          RaceEntry
	Details        HorseDetails
	Records        []RaceRecord
	VenueStats     []VenueStat
	ConditionStats []TrackConditionStat
	JockeyVenue    *JockeyVenueStat
	JockeyOverall  *JockeyOverallStat
	JockeyCombo    *JockeyTrainerComboStat
	Trainer        *TrainerStats
	FinishPosition int
}

// HistoricalRace is a fully labeled race used by the backtester and the
// weight calibrator.
type HistoricalRace struct {
	Race     Race
	Entrants []HistoricalEntrant
}

// Valid reports whether the record is complete enough to evaluate: every
// entrant must carry a positive finish position.
func (h *HistoricalRace) Valid() bool {
	if len(h.Entrants) == 0 {
		return false
	}
	for _, e := range h.Entrants {
		if e.FinishPosition <= 0 {
			return false
		}
	}
	return true
}
