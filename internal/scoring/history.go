package scoring

import (
	"github.com/yourusername/turf-oracle/internal/models"
)

// ScoreHistorical rebuilds an entrant's profiles from a labeled historical
// record and scores it against the race context. Used by the backtester and
// the weight calibrator, which replay races outside the orchestrator path.
func ScoreHistorical(race *models.Race, entrant *models.HistoricalEntrant) Components {
	horse := NewHorseProfile(entrant.Details, entrant.Records, entrant.VenueStats, entrant.ConditionStats)
	jockey := JockeyProfile{
		Venue:   entrant.JockeyVenue,
		Overall: entrant.JockeyOverall,
		Combo:   entrant.JockeyCombo,
	}
	trainer := TrainerProfile{Stats: entrant.Trainer}
	return Score(race, horse, jockey, trainer, entrant.Entry.GateNumber)
}
