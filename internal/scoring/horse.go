package scoring

import (
	"math"

	"github.com/yourusername/turf-oracle/internal/models"
)

// Tunable constants. The coefficients and reliability breakpoints below are
// empirically chosen; treat them as configuration, not structure.
const (
	recentResultWindow = 5

	// Popularity-vs-finish adjustment: outperforming the market earns more
	// than underperforming it costs.
	overperformBonusPerRank    = 3.0
	underperformPenaltyPerRank = 1.5

	distanceBandMeters      = 300
	distanceTightBandMeters = 100
	distanceWinBonus        = 10.0

	last3FBaseline = 37.0
	last3FScale    = 4.0

	optimalRotationMinDays = 21
	optimalRotationMaxDays = 70

	noDataFallbackScore = 50.0
	g1UnprovenScore     = 30.0
)

// recentFormWeights weight the five most recent starts, newest first.
var recentFormWeights = []float64{0.35, 0.25, 0.20, 0.12, 0.08}

// postPositionScores is the inside-rail advantage table for the configured
// course and distance, keyed by gate number.
var postPositionScores = map[int]float64{
	1: 100,
	2: 92,
	3: 85,
	4: 79,
	5: 73,
	6: 67,
	7: 61,
	8: 55,
}

// majorG1Races covers top-grade races whose grade tag is sometimes absent
// upstream; membership here counts as a G1 start.
var majorG1Races = map[string]struct{}{
	"Japan Cup":                {},
	"Arima Kinen":              {},
	"Tokyo Yushun":             {},
	"Satsuki Sho":              {},
	"Kikuka Sho":               {},
	"Oka Sho":                  {},
	"Yushun Himba":             {},
	"Shuka Sho":                {},
	"Tenno Sho (Spring)":       {},
	"Tenno Sho (Autumn)":       {},
	"Yasuda Kinen":             {},
	"Takarazuka Kinen":         {},
	"Sprinters Stakes":         {},
	"Mile Championship":        {},
	"Champions Cup":            {},
	"February Stakes":          {},
	"Hopeful Stakes":           {},
	"Asahi Hai Futurity":       {},
	"Hanshin Juvenile Fillies": {},
	"NHK Mile Cup":             {},
	"Victoria Mile":            {},
	"Osaka Hai":                {},
	"Takamatsunomiya Kinen":    {},
}

// RecentPerformance scores the five most recent starts, weighted newest to
// oldest, with a popularity-vs-finish adjustment per start. A horse with no
// race history scores 0.
func (p *HorseProfile) RecentPerformance() float64 {
	if len(p.Records) == 0 {
		return 0
	}
	n := len(p.Records)
	if n > recentResultWindow {
		n = recentResultWindow
	}
	total := 0.0
	for i := 0; i < n; i++ {
		rec := p.Records[i]
		raw := finishPositionScore(rec.FinishPosition)
		if rec.Popularity != nil {
			diff := float64(*rec.Popularity - rec.FinishPosition)
			if diff > 0 {
				raw = math.Min(100, raw+diff*overperformBonusPerRank)
			} else if diff < 0 {
				raw = math.Max(0, raw+diff*underperformPenaltyPerRank)
			}
		}
		total += raw * recentFormWeights[i]
	}
	return clampScore(total)
}

func finishPositionScore(pos int) float64 {
	switch {
	case pos == 1:
		return 100
	case pos == 2:
		return 80
	case pos == 3:
		return 65
	case pos == 4 || pos == 5:
		return 45
	case pos >= 6 && pos <= 8:
		return 25
	default:
		return 10
	}
}

// VenueAptitude scores the horse's record at the given venue. A horse with no
// starts there gets the neutral 50: venue inexperience is not evidence of
// venue weakness.
func (p *HorseProfile) VenueAptitude(venue string) float64 {
	stat, ok := p.VenueStat(venue)
	if !ok || stat.Runs == 0 {
		return noDataFallbackScore
	}
	winRate := float64(stat.Wins) / float64(stat.Runs)
	placeRate := float64(stat.Wins+stat.Places) / float64(stat.Runs)
	score := (winRate*60 + placeRate*40) * runCountReliability(stat.Runs)
	return clampScore(score)
}

// DistanceAptitude scores starts within 300 m of the target distance, with a
// flat bonus per win inside the tighter 100 m band. Unlike venue aptitude,
// distance inexperience scores 0: asking a horse to run an untried trip is
// a real risk.
func (p *HorseProfile) DistanceAptitude(distance int) float64 {
	runs, wins, places := 0, 0, 0
	tightWins := 0
	for _, rec := range p.Records {
		delta := rec.Distance - distance
		if delta < 0 {
			delta = -delta
		}
		if delta > distanceBandMeters {
			continue
		}
		runs++
		switch rec.FinishPosition {
		case 1:
			wins++
			if delta <= distanceTightBandMeters {
				tightWins++
			}
		case 2, 3:
			places++
		}
	}
	if runs == 0 {
		return 0
	}
	winRate := float64(wins) / float64(runs)
	placeRate := float64(wins+places) / float64(runs)
	score := winRate*60 + placeRate*40 + float64(tightWins)*distanceWinBonus
	return clampScore(score)
}

// Last3FAbility scores closing speed from recorded last-3-furlong times,
// falling back to overall top-3 rate when no closing times were captured.
func (p *HorseProfile) Last3FAbility() float64 {
	if len(p.Records) == 0 {
		return 0
	}
	sum, count := 0.0, 0
	for _, rec := range p.Records {
		if rec.Last3F != nil {
			sum += *rec.Last3F
			count++
		}
	}
	if count > 0 {
		avg := sum / float64(count)
		return clampScore(math.Max(0, (last3FBaseline-avg)/last3FScale*100))
	}
	top3 := 0
	for _, rec := range p.Records {
		if rec.IsTop3() {
			top3++
		}
	}
	top3Rate := float64(top3) / float64(len(p.Records))
	return clampScore(top3Rate*80 + 20)
}

// G1Achievement scores top-grade results. A horse with no G1 starts gets 30:
// unproven at the level, not weak.
func (p *HorseProfile) G1Achievement() float64 {
	score := 0.0
	found := false
	for _, rec := range p.Records {
		if !isG1Record(rec) {
			continue
		}
		found = true
		score += g1FinishScore(rec.FinishPosition)
	}
	if !found {
		return g1UnprovenScore
	}
	return clampScore(score)
}

func isG1Record(rec models.RaceRecord) bool {
	if rec.Grade == "G1" {
		return true
	}
	_, ok := majorG1Races[rec.RaceName]
	return ok
}

func g1FinishScore(pos int) float64 {
	switch {
	case pos == 1:
		return 40
	case pos == 2:
		return 25
	case pos == 3:
		return 18
	case pos == 4 || pos == 5:
		return 10
	default:
		return 3
	}
}

// RotationAptitude measures how the horse performs when raced on an optimal
// 21-70 day interval. The finish considered is the start that preceded the
// rest, i.e. the earlier race of each consecutive pair.
func (p *HorseProfile) RotationAptitude() float64 {
	if len(p.Records) < 2 {
		return 0
	}
	optimal, top3 := 0, 0
	for i := 0; i < len(p.Records)-1; i++ {
		newer := p.Records[i]
		older := p.Records[i+1]
		days := int(newer.Date.Sub(older.Date).Hours() / 24)
		if days < optimalRotationMinDays || days > optimalRotationMaxDays {
			continue
		}
		optimal++
		if older.IsTop3() {
			top3++
		}
	}
	if optimal == 0 {
		return 0
	}
	return clampScore(float64(top3) / float64(optimal) * 100)
}

// TrackConditionAptitude scores the horse's record under the given going,
// with the same neutral-50 fallback as venue aptitude.
func (p *HorseProfile) TrackConditionAptitude(cond models.TrackCondition) float64 {
	stat, ok := p.ConditionStat(cond)
	if !ok || stat.Runs == 0 {
		return noDataFallbackScore
	}
	winRate := float64(stat.Wins) / float64(stat.Runs)
	placeRate := float64(stat.Wins+stat.Places) / float64(stat.Runs)
	score := (winRate*60 + placeRate*40) * runCountReliability(stat.Runs)
	return clampScore(score)
}

// PostPositionEffect looks up the static gate advantage table. An unknown or
// missing gate scores the neutral 50.
func PostPositionEffect(gate *int) float64 {
	if gate == nil {
		return noDataFallbackScore
	}
	if score, ok := postPositionScores[*gate]; ok {
		return score
	}
	return noDataFallbackScore
}

// runCountReliability discounts rate-based scores computed from small
// samples.
func runCountReliability(runs int) float64 {
	switch {
	case runs >= 5:
		return 1.0
	case runs >= 3:
		return 0.9
	case runs >= 2:
		return 0.8
	default:
		return 0.6
	}
}
