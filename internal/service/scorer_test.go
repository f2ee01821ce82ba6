package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/yourusername/turf-oracle/internal/models"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

// Fake repositories honoring the default-empty map contract of the batch
// interfaces.

type fakeRaceRepo struct {
	race    *models.Race
	entries []models.RaceEntry
}

func (f *fakeRaceRepo) GetByID(ctx context.Context, id int64) (*models.Race, error) {
	if f.race == nil || f.race.ID != id {
		return nil, models.ErrRaceNotFound
	}
	return f.race, nil
}

func (f *fakeRaceRepo) GetEntries(ctx context.Context, raceID int64) ([]models.RaceEntry, error) {
	return f.entries, nil
}

func (f *fakeRaceRepo) GetByDateRange(ctx context.Context, start, end time.Time) ([]*models.Race, error) {
	if f.race == nil {
		return nil, nil
	}
	return []*models.Race{f.race}, nil
}

type fakeHorseRepo struct {
	details map[int64]models.HorseDetails
	records map[int64][]models.RaceRecord
	calls   int
}

func (f *fakeHorseRepo) BatchGetDetails(ctx context.Context, ids []int64) (map[int64]models.HorseDetails, error) {
	f.calls++
	out := make(map[int64]models.HorseDetails, len(ids))
	for _, id := range ids {
		out[id] = f.details[id]
	}
	return out, nil
}

func (f *fakeHorseRepo) BatchGetRaceRecords(ctx context.Context, ids []int64) (map[int64][]models.RaceRecord, error) {
	f.calls++
	out := make(map[int64][]models.RaceRecord, len(ids))
	for _, id := range ids {
		out[id] = f.records[id]
	}
	return out, nil
}

func (f *fakeHorseRepo) BatchGetVenueStats(ctx context.Context, ids []int64) (map[int64][]models.VenueStat, error) {
	f.calls++
	out := make(map[int64][]models.VenueStat, len(ids))
	for _, id := range ids {
		out[id] = nil
	}
	return out, nil
}

func (f *fakeHorseRepo) BatchGetConditionStats(ctx context.Context, ids []int64) (map[int64][]models.TrackConditionStat, error) {
	f.calls++
	out := make(map[int64][]models.TrackConditionStat, len(ids))
	for _, id := range ids {
		out[id] = nil
	}
	return out, nil
}

type fakeJockeyRepo struct{}

func (f *fakeJockeyRepo) BatchGetVenueStats(ctx context.Context, ids []int64, venue string) (map[int64]models.JockeyVenueStat, error) {
	return map[int64]models.JockeyVenueStat{}, nil
}

func (f *fakeJockeyRepo) BatchGetOverallStats(ctx context.Context, ids []int64) (map[int64]models.JockeyOverallStat, error) {
	return map[int64]models.JockeyOverallStat{}, nil
}

func (f *fakeJockeyRepo) BatchGetTrainerComboStats(ctx context.Context, pairs []repository.JockeyTrainerPair) (map[repository.JockeyTrainerPair]models.JockeyTrainerComboStat, error) {
	return map[repository.JockeyTrainerPair]models.JockeyTrainerComboStat{}, nil
}

type fakeTrainerRepo struct{}

func (f *fakeTrainerRepo) BatchGetStats(ctx context.Context, ids []int64) (map[int64]models.TrainerStats, error) {
	return map[int64]models.TrainerStats{}, nil
}

type fakeHistoryRepo struct{}

func (f *fakeHistoryRepo) GetLabeledRaces(ctx context.Context, start, end time.Time) ([]*models.HistoricalRace, error) {
	return nil, nil
}

func intPtr(v int) *int { return &v }

func testRepos(race *models.Race, entries []models.RaceEntry, horses *fakeHorseRepo) *repository.Repositories {
	return &repository.Repositories{
		Race:    &fakeRaceRepo{race: race, entries: entries},
		Horse:   horses,
		Jockey:  &fakeJockeyRepo{},
		Trainer: &fakeTrainerRepo{},
		History: &fakeHistoryRepo{},
	}
}

// TestScoreRaceNotFound verifies an unknown race id fails loudly with
// ErrRaceNotFound rather than returning an empty result.
func TestScoreRaceNotFound(t *testing.T) {
	svc, err := NewScoringService(testRepos(nil, nil, &fakeHorseRepo{}), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = svc.ScoreRace(context.Background(), 42)
	if !errors.Is(err, models.ErrRaceNotFound) {
		t.Fatalf("expected ErrRaceNotFound, got %v", err)
	}
}

// TestScoreRaceZeroEntrants verifies a known race with no confirmed entrants
// yields an empty slice and no error.
func TestScoreRaceZeroEntrants(t *testing.T) {
	race := &models.Race{ID: 7, Name: "Empty Card", Venue: "Kyoto", Distance: 1600, Surface: models.SurfaceTurf}
	svc, err := NewScoringService(testRepos(race, nil, &fakeHorseRepo{}), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores, err := svc.ScoreRace(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if scores == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(scores) != 0 {
		t.Fatalf("expected no scores, got %d", len(scores))
	}
}

// TestScoreRaceNoHistoryEntrants runs the end-to-end path with three
// debutantes and pins the no-history fallback split: venue and track
// condition aptitude 50, recent performance 0.
func TestScoreRaceNoHistoryEntrants(t *testing.T) {
	race := &models.Race{
		ID: 9, Name: "Maiden Stakes", Venue: "Nakayama", Distance: 1800,
		Surface: models.SurfaceTurf, TrackCondition: models.ConditionGood,
	}
	entries := []models.RaceEntry{
		{ID: 1, RaceID: 9, HorseID: 21, HorseName: "First Timer", GateNumber: intPtr(1), Popularity: intPtr(1)},
		{ID: 2, RaceID: 9, HorseID: 22, HorseName: "Second Timer", GateNumber: intPtr(2), Popularity: intPtr(2)},
		{ID: 3, RaceID: 9, HorseID: 23, HorseName: "Third Timer", GateNumber: intPtr(3), Popularity: intPtr(3)},
	}

	svc, err := NewScoringService(testRepos(race, entries, &fakeHorseRepo{}), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	scores, err := svc.ScoreRace(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(scores) != 3 {
		t.Fatalf("expected 3 scores, got %d", len(scores))
	}

	for _, s := range scores {
		if s.Components.RecentPerformance != 0 {
			t.Errorf("horse %d: expected recent performance 0, got %f", s.HorseID, s.Components.RecentPerformance)
		}
		if s.Components.VenueAptitude != 50 {
			t.Errorf("horse %d: expected venue aptitude 50, got %f", s.HorseID, s.Components.VenueAptitude)
		}
		if s.Components.TrackCondition != 50 {
			t.Errorf("horse %d: expected track condition 50, got %f", s.HorseID, s.Components.TrackCondition)
		}
		if s.Components.DistanceAptitude != 0 {
			t.Errorf("horse %d: expected distance aptitude 0, got %f", s.HorseID, s.Components.DistanceAptitude)
		}
		if s.Total < 0 || s.Total > 100 {
			t.Errorf("horse %d: total out of range: %f", s.HorseID, s.Total)
		}
	}

	// Identical profiles differ only by gate; the inside draw must rank first.
	if !(scores[0].Total > scores[1].Total && scores[1].Total > scores[2].Total) {
		t.Errorf("expected totals to decrease with gate number: %f, %f, %f",
			scores[0].Total, scores[1].Total, scores[2].Total)
	}
}

// TestScoreRaceBatchedLookups verifies horse data is fetched with exactly
// four batch calls regardless of field size.
func TestScoreRaceBatchedLookups(t *testing.T) {
	race := &models.Race{ID: 3, Name: "Big Field", Venue: "Hanshin", Distance: 2200, Surface: models.SurfaceTurf}
	entries := make([]models.RaceEntry, 18)
	for i := range entries {
		entries[i] = models.RaceEntry{ID: int64(i + 1), RaceID: 3, HorseID: int64(100 + i)}
	}
	horses := &fakeHorseRepo{}

	svc, err := NewScoringService(testRepos(race, entries, horses), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.ScoreRace(context.Background(), 3); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if horses.calls != 4 {
		t.Errorf("expected exactly 4 horse batch calls for 18 entrants, got %d", horses.calls)
	}
}

// TestScoreRaceDeterministic verifies repeated scoring of the same inputs
// yields identical totals.
func TestScoreRaceDeterministic(t *testing.T) {
	race := &models.Race{ID: 5, Name: "Repeat Stakes", Venue: "Tokyo", Distance: 2000, Surface: models.SurfaceTurf}
	entries := []models.RaceEntry{
		{ID: 1, RaceID: 5, HorseID: 31, GateNumber: intPtr(2)},
		{ID: 2, RaceID: 5, HorseID: 32, GateNumber: intPtr(5)},
	}
	horses := &fakeHorseRepo{
		records: map[int64][]models.RaceRecord{
			31: {{Date: time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), Distance: 2000, FinishPosition: 1, Popularity: intPtr(2)}},
			32: {{Date: time.Date(2025, 4, 8, 0, 0, 0, 0, time.UTC), Distance: 1800, FinishPosition: 6, Popularity: intPtr(4)}},
		},
	}

	svc, err := NewScoringService(testRepos(race, entries, horses), scoring.DefaultWeights(), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	first, err := svc.ScoreRace(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := svc.ScoreRace(context.Background(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := range first {
		if first[i].Total != second[i].Total {
			t.Errorf("entry %d: totals differ between runs: %f vs %f", first[i].EntryID, first[i].Total, second[i].Total)
		}
	}
}
