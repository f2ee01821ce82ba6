package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/config"
	"github.com/yourusername/turf-oracle/internal/predictor"
	"github.com/yourusername/turf-oracle/internal/scoring"
	"github.com/yourusername/turf-oracle/internal/service"
)

func testScores() []service.EntryScore {
	return []service.EntryScore{
		{EntryID: 1, HorseID: 11, HorseName: "Alpha", Components: scoring.Components{RecentPerformance: 80}, Total: 70},
		{EntryID: 2, HorseID: 12, HorseName: "Beta", Components: scoring.Components{RecentPerformance: 40}, Total: 45},
	}
}

func TestClassifierProbabilitiesDisabled(t *testing.T) {
	cfg := &config.Config{}

	probs := classifierProbabilities(context.Background(), cfg, logrus.New(), 1, testScores())
	if probs != nil {
		t.Fatalf("expected nil probabilities when disabled, got %v", probs)
	}
}

func TestClassifierProbabilitiesEnabled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			RaceID  int64 `json:"race_id"`
			HorseID int64 `json:"horse_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("failed to decode request: %v", err)
		}
		prob := 0.6
		if req.HorseID == 12 {
			prob = 0.3
		}
		json.NewEncoder(w).Encode(predictor.Prediction{
			RaceID: req.RaceID, HorseID: req.HorseID, WinProbability: prob,
		})
	}))
	defer server.Close()

	cfg := &config.Config{
		Predictor: config.PredictorConfig{
			URL:             server.URL,
			TimeoutSeconds:  5,
			CacheTTLSeconds: 60,
			Enabled:         true,
		},
	}

	probs := classifierProbabilities(context.Background(), cfg, logrus.New(), 9, testScores())
	if len(probs) != 2 {
		t.Fatalf("expected 2 probabilities, got %d", len(probs))
	}
	if probs[11] != 0.6 {
		t.Errorf("expected 0.6 for horse 11, got %f", probs[11])
	}
	if probs[12] != 0.3 {
		t.Errorf("expected 0.3 for horse 12, got %f", probs[12])
	}
}

func TestClassifierProbabilitiesSkipsFailures(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			HorseID int64 `json:"horse_id"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.HorseID == 12 {
			http.Error(w, "model error", http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(predictor.Prediction{RaceID: 9, HorseID: req.HorseID, WinProbability: 0.5})
	}))
	defer server.Close()

	cfg := &config.Config{
		Predictor: config.PredictorConfig{
			URL:             server.URL,
			TimeoutSeconds:  5,
			CacheTTLSeconds: 60,
			Enabled:         true,
		},
	}

	probs := classifierProbabilities(context.Background(), cfg, logrus.New(), 9, testScores())
	if len(probs) != 1 {
		t.Fatalf("expected 1 probability after a failed prediction, got %d", len(probs))
	}
	if _, ok := probs[12]; ok {
		t.Error("expected no probability for the failed horse")
	}
}
