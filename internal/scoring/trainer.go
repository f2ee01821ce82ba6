package scoring

const (
	trainerG1Weight     = 0.60
	trainerGradedWeight = 0.40

	// Missing G1 data falls back to half the graded score; missing graded
	// data bottoms out at a flat 30, so an entirely unproven trainer nets
	// ~21 rather than 0. No signal is not bad signal.
	trainerG1FallbackRatio     = 0.50
	trainerGradedUnprovenScore = 30.0
)

// Ability returns the weighted trainer score: G1 win rate 60%, graded-race
// win rate 40%.
func (t TrainerProfile) Ability() float64 {
	graded := t.gradedScore()
	g1 := t.g1Score(graded)
	return clampScore(g1*trainerG1Weight + graded*trainerGradedWeight)
}

func (t TrainerProfile) gradedScore() float64 {
	if t.Stats == nil || t.Stats.GradedRuns == 0 {
		return trainerGradedUnprovenScore
	}
	winRate := float64(t.Stats.GradedWins) / float64(t.Stats.GradedRuns)
	return winRate * 100 * gradedRunReliability(t.Stats.GradedRuns)
}

func (t TrainerProfile) g1Score(graded float64) float64 {
	if t.Stats == nil || t.Stats.G1Runs == 0 {
		return graded * trainerG1FallbackRatio
	}
	winRate := float64(t.Stats.G1Wins) / float64(t.Stats.G1Runs)
	return winRate * 100 * gradedRunReliability(t.Stats.G1Runs)
}
