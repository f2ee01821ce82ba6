package scoring

import (
	"github.com/yourusername/turf-oracle/internal/models"
)

// Score computes all ten components for one entrant against a race context.
// It is pure: safe for concurrent use once the profiles are built.
func Score(race *models.Race, horse *HorseProfile, jockey JockeyProfile, trainer TrainerProfile, gate *int) Components {
	return Components{
		RecentPerformance: horse.RecentPerformance(),
		VenueAptitude:     horse.VenueAptitude(race.Venue),
		DistanceAptitude:  horse.DistanceAptitude(race.Distance),
		Last3FAbility:     horse.Last3FAbility(),
		G1Achievement:     horse.G1Achievement(),
		RotationAptitude:  horse.RotationAptitude(),
		JockeyAbility:     jockey.Ability(),
		TrackCondition:    horse.TrackConditionAptitude(race.TrackCondition),
		PostPosition:      PostPositionEffect(gate),
		TrainerAbility:    trainer.Ability(),
	}
}
