package scoring

// Jockey sub-score weights and fallbacks.
const (
	jockeyVenueWeight   = 0.30
	jockeyVenueG1Weight = 0.30
	jockeyOverallWeight = 0.20
	jockeyComboWeight   = 0.20

	// A jockey with no rides at the venue still carries general skill; G1
	// experience is rarer, so its fallback discount is larger.
	jockeyVenueFallbackRatio   = 0.75
	jockeyVenueG1FallbackRatio = 0.50

	jockeyComboMinRuns      = 3
	jockeyComboNeutralScore = 50.0
)

// Ability returns the weighted jockey score: venue win rate 30%, venue-G1
// win rate 30%, overall win rate 20%, trainer-combo win rate 20%.
func (j JockeyProfile) Ability() float64 {
	overall := j.overallScore()
	score := j.venueScore(overall)*jockeyVenueWeight +
		j.venueG1Score(overall)*jockeyVenueG1Weight +
		overall*jockeyOverallWeight +
		j.comboScore()*jockeyComboWeight
	return clampScore(score)
}

func (j JockeyProfile) overallScore() float64 {
	if j.Overall == nil || j.Overall.Runs == 0 {
		return 0
	}
	return float64(j.Overall.Wins) / float64(j.Overall.Runs) * 100
}

func (j JockeyProfile) venueScore(overall float64) float64 {
	if j.Venue == nil || j.Venue.Runs == 0 {
		return overall * jockeyVenueFallbackRatio
	}
	winRate := float64(j.Venue.Wins) / float64(j.Venue.Runs)
	return winRate * 100 * jockeyRideReliability(j.Venue.Runs)
}

func (j JockeyProfile) venueG1Score(overall float64) float64 {
	if j.Venue == nil || j.Venue.G1Runs == 0 {
		return overall * jockeyVenueG1FallbackRatio
	}
	winRate := float64(j.Venue.G1Wins) / float64(j.Venue.G1Runs)
	return winRate * 100 * gradedRunReliability(j.Venue.G1Runs)
}

func (j JockeyProfile) comboScore() float64 {
	if j.Combo == nil || j.Combo.Runs < jockeyComboMinRuns {
		return jockeyComboNeutralScore
	}
	return float64(j.Combo.Wins) / float64(j.Combo.Runs) * 100
}

// jockeyRideReliability discounts venue win rates built on few rides. Jockeys
// accumulate starts far faster than horses, hence the higher breakpoints.
func jockeyRideReliability(runs int) float64 {
	switch {
	case runs >= 50:
		return 1.0
	case runs >= 20:
		return 0.9
	case runs >= 10:
		return 0.8
	default:
		return 0.6
	}
}

// gradedRunReliability discounts rates over small graded-race samples. Shared
// with trainer scoring.
func gradedRunReliability(runs int) float64 {
	switch {
	case runs >= 10:
		return 1.0
	case runs >= 5:
		return 0.9
	default:
		return 0.7
	}
}
