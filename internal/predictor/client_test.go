package predictor

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/scoring"
)

func testComponents() scoring.Components {
	return scoring.Components{
		RecentPerformance: 70,
		VenueAptitude:     55,
		DistanceAptitude:  60,
		Last3FAbility:     65,
		G1Achievement:     30,
		RotationAptitude:  100,
		JockeyAbility:     40,
		TrackCondition:    50,
		PostPosition:      85,
		TrainerAbility:    35,
	}
}

func TestPredictReturnsProbability(t *testing.T) {
	var gotReq predictRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/predict" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		json.NewEncoder(w).Encode(Prediction{
			RaceID:         gotReq.RaceID,
			HorseID:        gotReq.HorseID,
			WinProbability: 0.42,
			ModelVersion:   "v3",
			PredictedAt:    time.Now(),
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil, logrus.New())

	pred, err := client.Predict(context.Background(), 10, 200, testComponents())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pred.WinProbability != 0.42 {
		t.Errorf("expected probability 0.42, got %f", pred.WinProbability)
	}
	if len(gotReq.Features) != 10 {
		t.Fatalf("expected 10 features, got %d", len(gotReq.Features))
	}
	if gotReq.Features[0] != 0.7 {
		t.Errorf("expected first feature 0.7, got %f", gotReq.Features[0])
	}
}

func TestPredictRejectsOutOfRangeProbability(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(Prediction{RaceID: 1, HorseID: 2, WinProbability: 1.7})
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil, logrus.New())

	_, err := client.Predict(context.Background(), 1, 2, testComponents())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestPredictErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second, nil, logrus.New())

	_, err := client.Predict(context.Background(), 1, 2, testComponents())
	if !errors.Is(err, ErrInvalidResponse) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestPredictUsesCache(t *testing.T) {
	var requests int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		json.NewEncoder(w).Encode(Prediction{RaceID: 5, HorseID: 9, WinProbability: 0.25})
	}))
	defer server.Close()

	cache := NewPredictionCache(time.Minute)
	client := NewClient(server.URL, 5*time.Second, cache, logrus.New())

	for i := 0; i < 3; i++ {
		if _, err := client.Predict(context.Background(), 5, 9, testComponents()); err != nil {
			t.Fatalf("call %d: unexpected error: %v", i, err)
		}
	}
	if requests != 1 {
		t.Errorf("expected 1 upstream request, got %d", requests)
	}

	hits, misses, ratio := cache.Stats()
	if hits != 2 || misses != 1 {
		t.Errorf("expected 2 hits / 1 miss, got %d / %d", hits, misses)
	}
	if ratio < 0.66 || ratio > 0.67 {
		t.Errorf("unexpected hit ratio: %f", ratio)
	}
}

func TestCacheClear(t *testing.T) {
	cache := NewPredictionCache(time.Minute)
	key := CacheKey{RaceID: 1, HorseID: 2}
	cache.Set(key, &Prediction{RaceID: 1, HorseID: 2, WinProbability: 0.5})

	if cache.Get(key) == nil {
		t.Fatal("expected cached prediction")
	}
	if cache.ItemCount() != 1 {
		t.Errorf("expected 1 item, got %d", cache.ItemCount())
	}

	cache.Clear()

	if cache.Get(key) != nil {
		t.Error("expected cache to be empty after clear")
	}
	hits, misses, _ := cache.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("expected stats reset then 1 miss, got %d hits / %d misses", hits, misses)
	}
}

func TestCacheKeyString(t *testing.T) {
	key := CacheKey{RaceID: 202501, HorseID: 77}
	if key.String() != "202501:77" {
		t.Errorf("unexpected key: %s", key.String())
	}
}
