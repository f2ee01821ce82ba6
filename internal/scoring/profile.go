package scoring

import (
	"github.com/yourusername/turf-oracle/internal/models"
)

// HorseProfile is a pure computation object built from a horse's historical
// records. It is owned by the scoring pass that constructed it and never
// shared between passes.
type HorseProfile struct {
	Details        models.HorseDetails
	Records        []models.RaceRecord // date-descending
	venueStats     map[string]models.VenueStat
	conditionStats map[models.TrackCondition]models.TrackConditionStat
}

// NewHorseProfile builds a profile from repository rows. Records must already
// be ordered date-descending, which is the repository contract.
func NewHorseProfile(details models.HorseDetails, records []models.RaceRecord, venueStats []models.VenueStat, conditionStats []models.TrackConditionStat) *HorseProfile {
	p := &HorseProfile{
		Details:        details,
		Records:        records,
		venueStats:     make(map[string]models.VenueStat, len(venueStats)),
		conditionStats: make(map[models.TrackCondition]models.TrackConditionStat, len(conditionStats)),
	}
	for _, vs := range venueStats {
		p.venueStats[vs.Venue] = vs
	}
	for _, cs := range conditionStats {
		p.conditionStats[cs.Condition] = cs
	}
	return p
}

// VenueStat returns the aggregate for a venue, if any.
func (p *HorseProfile) VenueStat(venue string) (models.VenueStat, bool) {
	vs, ok := p.venueStats[venue]
	return vs, ok
}

// ConditionStat returns the aggregate for a going category, if any.
func (p *HorseProfile) ConditionStat(cond models.TrackCondition) (models.TrackConditionStat, bool) {
	cs, ok := p.conditionStats[cond]
	return cs, ok
}

// JockeyProfile holds the statistics needed to score a jockey for one ride.
// Any field may be nil when the underlying data is missing; the scoring
// fallbacks in Ability handle each case.
type JockeyProfile struct {
	Venue   *models.JockeyVenueStat
	Overall *models.JockeyOverallStat
	Combo   *models.JockeyTrainerComboStat
}

// TrainerProfile holds the statistics needed to score a trainer. Stats may be
// nil for an entirely unknown trainer.
type TrainerProfile struct {
	Stats *models.TrainerStats
}
