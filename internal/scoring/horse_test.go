package scoring

import (
	"testing"
	"time"

	"github.com/yourusername/turf-oracle/internal/models"
)

var testBase = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func intPtr(v int) *int           { return &v }
func floatPtr(v float64) *float64 { return &v }

// winRecord builds a first-place start daysAgo days before the base date.
func winRecord(daysAgo int, popularity int) models.RaceRecord {
	return models.RaceRecord{
		Date:           testBase.AddDate(0, 0, -daysAgo),
		Venue:          "Tokyo",
		Distance:       2000,
		Popularity:     intPtr(popularity),
		FinishPosition: 1,
	}
}

func emptyProfile() *HorseProfile {
	return NewHorseProfile(models.HorseDetails{ID: 1, Name: "Blank Slate"}, nil, nil, nil)
}

// TestRecentPerformanceFiveStraightWins verifies a horse winning five
// straight as the favorite scores the maximum: at popularity parity no bonus
// applies, and five 100s under weights summing to 1.0 give 100.
func TestRecentPerformanceFiveStraightWins(t *testing.T) {
	records := []models.RaceRecord{
		winRecord(10, 1), winRecord(45, 1), winRecord(80, 1), winRecord(115, 1), winRecord(150, 1),
	}
	p := NewHorseProfile(models.HorseDetails{ID: 1}, records, nil, nil)

	got := p.RecentPerformance()
	if got < 99.9 || got > 100 {
		t.Errorf("expected ~100 for five straight favorite wins, got %f", got)
	}
}

// TestRecentPerformanceUnderperformancePenalty verifies finishing 5th as the
// favorite scores strictly lower than finishing 5th as the fifth pick.
func TestRecentPerformanceUnderperformancePenalty(t *testing.T) {
	asFavorite := models.RaceRecord{
		Date: testBase, Popularity: intPtr(1), FinishPosition: 5,
	}
	asOutsider := models.RaceRecord{
		Date: testBase, Popularity: intPtr(5), FinishPosition: 5,
	}

	favScore := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{asFavorite}, nil, nil).RecentPerformance()
	outScore := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{asOutsider}, nil, nil).RecentPerformance()

	if favScore >= outScore {
		t.Errorf("expected beaten favorite (%f) to score below matched expectation (%f)", favScore, outScore)
	}
}

// TestRecentPerformanceOverperformanceBonus verifies beating the market
// expectation raises the score.
func TestRecentPerformanceOverperformanceBonus(t *testing.T) {
	expected := models.RaceRecord{Date: testBase, Popularity: intPtr(2), FinishPosition: 2}
	upset := models.RaceRecord{Date: testBase, Popularity: intPtr(8), FinishPosition: 2}

	expectedScore := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{expected}, nil, nil).RecentPerformance()
	upsetScore := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{upset}, nil, nil).RecentPerformance()

	if upsetScore <= expectedScore {
		t.Errorf("expected upset runner-up (%f) to outscore expected runner-up (%f)", upsetScore, expectedScore)
	}
}

// TestNoHistoryFallbackAsymmetry pins the load-bearing split: no history is
// zero for recent performance and distance aptitude but neutral 50 for venue
// and track condition aptitude.
func TestNoHistoryFallbackAsymmetry(t *testing.T) {
	p := emptyProfile()

	if got := p.RecentPerformance(); got != 0 {
		t.Errorf("expected recent performance 0 with no history, got %f", got)
	}
	if got := p.DistanceAptitude(2000); got != 0 {
		t.Errorf("expected distance aptitude 0 with no history, got %f", got)
	}
	if got := p.VenueAptitude("Tokyo"); got != 50 {
		t.Errorf("expected venue aptitude 50 with no history, got %f", got)
	}
	if got := p.TrackConditionAptitude(models.ConditionGood); got != 50 {
		t.Errorf("expected track condition aptitude 50 with no history, got %f", got)
	}
}

// TestVenueAptitudeReliabilityDiscount verifies identical rates score lower
// on a thinner sample.
func TestVenueAptitudeReliabilityDiscount(t *testing.T) {
	seasoned := NewHorseProfile(models.HorseDetails{}, nil, []models.VenueStat{
		{Venue: "Tokyo", Runs: 5, Wins: 2, Places: 1},
	}, nil)
	green := NewHorseProfile(models.HorseDetails{}, nil, []models.VenueStat{
		{Venue: "Tokyo", Runs: 2, Wins: 1, Places: 0},
	}, nil)

	seasonedScore := seasoned.VenueAptitude("Tokyo")
	greenScore := green.VenueAptitude("Tokyo")

	// Same formula at full reliability would put the green horse ahead
	// (0.5 win rate vs 0.4); the 0.8 discount must narrow that.
	fullRateGreen := (0.5*60 + 0.5*40)
	if greenScore >= fullRateGreen {
		t.Errorf("expected discounted score below %f, got %f", fullRateGreen, greenScore)
	}
	if seasonedScore <= 0 || seasonedScore > 100 {
		t.Errorf("expected seasoned score in (0,100], got %f", seasonedScore)
	}
}

// TestDistanceAptitudeTightBandBonus verifies a win at exactly the target
// distance beats an otherwise-identical profile whose win sits at the edge
// of the ±300m band.
func TestDistanceAptitudeTightBandBonus(t *testing.T) {
	filler := models.RaceRecord{Date: testBase.AddDate(0, 0, -40), Distance: 2000, FinishPosition: 6}

	exact := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, Distance: 2000, FinishPosition: 1},
		filler,
	}, nil, nil)
	edge := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, Distance: 2300, FinishPosition: 1},
		filler,
	}, nil, nil)

	exactScore := exact.DistanceAptitude(2000)
	edgeScore := edge.DistanceAptitude(2000)

	if exactScore <= edgeScore {
		t.Errorf("expected exact-distance win (%f) to beat band-edge win (%f)", exactScore, edgeScore)
	}
}

// TestDistanceAptitudeIgnoresOutOfBandStarts verifies starts beyond ±300m do
// not count at all.
func TestDistanceAptitudeIgnoresOutOfBandStarts(t *testing.T) {
	p := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, Distance: 1200, FinishPosition: 1},
	}, nil, nil)

	if got := p.DistanceAptitude(2000); got != 0 {
		t.Errorf("expected 0 when all starts are out of band, got %f", got)
	}
}

// TestLast3FAbility verifies the closing-speed formula: (37 - avg) / 4 * 100.
func TestLast3FAbility(t *testing.T) {
	p := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, FinishPosition: 4, Last3F: floatPtr(34.0)},
		{Date: testBase.AddDate(0, 0, -30), FinishPosition: 2, Last3F: floatPtr(35.0)},
	}, nil, nil)

	// avg 34.5 -> (37-34.5)/4*100 = 62.5
	if got := p.Last3FAbility(); got != 62.5 {
		t.Errorf("expected 62.5, got %f", got)
	}
}

// TestLast3FAbilityFallsBackToTop3Rate verifies the fallback when no closing
// times were captured.
func TestLast3FAbilityFallsBackToTop3Rate(t *testing.T) {
	p := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, FinishPosition: 1},
		{Date: testBase.AddDate(0, 0, -30), FinishPosition: 9},
	}, nil, nil)

	// top3 rate 0.5 -> 0.5*80 + 20 = 60
	if got := p.Last3FAbility(); got != 60 {
		t.Errorf("expected 60, got %f", got)
	}
}

// TestG1AchievementUnproven verifies a horse with no G1 starts scores the
// flat 30 rather than 0.
func TestG1AchievementUnproven(t *testing.T) {
	p := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, Grade: "G3", FinishPosition: 1},
	}, nil, nil)

	if got := p.G1Achievement(); got != 30 {
		t.Errorf("expected unproven score 30, got %f", got)
	}
}

// TestG1AchievementAccumulates verifies G1 placings add up and recognize the
// named top races even without a grade tag.
func TestG1AchievementAccumulates(t *testing.T) {
	p := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, Grade: "G1", FinishPosition: 1},                              // 40
		{Date: testBase.AddDate(0, 0, -60), RaceName: "Japan Cup", FinishPosition: 3}, // 18
	}, nil, nil)

	if got := p.G1Achievement(); got != 58 {
		t.Errorf("expected 58, got %f", got)
	}
}

// TestRotationAptitudeOptimalInterval verifies a 21-day gap counts the
// earlier race's top-3 finish while a 150-day gap contributes nothing.
func TestRotationAptitudeOptimalInterval(t *testing.T) {
	optimal := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, FinishPosition: 7},
		{Date: testBase.AddDate(0, 0, -21), FinishPosition: 2},
	}, nil, nil)
	if got := optimal.RotationAptitude(); got != 100 {
		t.Errorf("expected 100 for a top-3 start before an optimal rest, got %f", got)
	}

	layoff := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, FinishPosition: 1},
		{Date: testBase.AddDate(0, 0, -150), FinishPosition: 1},
	}, nil, nil)
	if got := layoff.RotationAptitude(); got != 0 {
		t.Errorf("expected 0 for a long layoff, got %f", got)
	}
}

// TestRotationAptitudeSingleStart verifies one lifetime start can't form an
// interval.
func TestRotationAptitudeSingleStart(t *testing.T) {
	p := NewHorseProfile(models.HorseDetails{}, []models.RaceRecord{
		{Date: testBase, FinishPosition: 1},
	}, nil, nil)

	if got := p.RotationAptitude(); got != 0 {
		t.Errorf("expected 0 with a single start, got %f", got)
	}
}

// TestPostPositionEffect pins the gate table endpoints and the missing-gate
// fallback.
func TestPostPositionEffect(t *testing.T) {
	if got := PostPositionEffect(intPtr(1)); got != 100 {
		t.Errorf("expected gate 1 to score 100, got %f", got)
	}
	if got := PostPositionEffect(intPtr(8)); got != 55 {
		t.Errorf("expected gate 8 to score 55, got %f", got)
	}
	if got := PostPositionEffect(nil); got != 50 {
		t.Errorf("expected missing gate to score 50, got %f", got)
	}
	if got := PostPositionEffect(intPtr(14)); got != 50 {
		t.Errorf("expected unknown gate to score 50, got %f", got)
	}
}

// TestScoreComponentsWithinRange runs the full component computation on a
// dense profile and asserts every sub-score lands in [0,100].
func TestScoreComponentsWithinRange(t *testing.T) {
	race := &models.Race{
		ID: 9, Venue: "Tokyo", Distance: 2000,
		Surface: models.SurfaceTurf, TrackCondition: models.ConditionGood,
	}
	records := []models.RaceRecord{
		{Date: testBase, Venue: "Tokyo", Distance: 2000, Grade: "G1", Popularity: intPtr(3), FinishPosition: 1, Last3F: floatPtr(33.8)},
		{Date: testBase.AddDate(0, 0, -35), Venue: "Hanshin", Distance: 1800, Popularity: intPtr(1), FinishPosition: 4, Last3F: floatPtr(35.1)},
		{Date: testBase.AddDate(0, 0, -200), Venue: "Tokyo", Distance: 2400, FinishPosition: 2},
	}
	horse := NewHorseProfile(models.HorseDetails{ID: 5, Name: "Dense Profile"}, records,
		[]models.VenueStat{{Venue: "Tokyo", Runs: 6, Wins: 2, Places: 2}},
		[]models.TrackConditionStat{{Condition: models.ConditionGood, Runs: 8, Wins: 3, Places: 2}},
	)
	jockey := JockeyProfile{
		Venue:   &models.JockeyVenueStat{Venue: "Tokyo", Runs: 120, Wins: 18, G1Runs: 12, G1Wins: 2},
		Overall: &models.JockeyOverallStat{Runs: 800, Wins: 96},
		Combo:   &models.JockeyTrainerComboStat{Runs: 14, Wins: 3},
	}
	trainer := TrainerProfile{Stats: &models.TrainerStats{GradedRuns: 40, GradedWins: 6, G1Runs: 11, G1Wins: 2}}

	c := Score(race, horse, jockey, trainer, intPtr(3))

	for _, f := range Factors {
		v := c.Get(f)
		if v < 0 || v > 100 {
			t.Errorf("component %s out of range: %f", f, v)
		}
	}
	if c.PostPosition != 85 {
		t.Errorf("expected gate 3 to score 85, got %f", c.PostPosition)
	}
}
