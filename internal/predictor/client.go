// Package predictor provides a client for the external win-probability classifier service.
package predictor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/metrics"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

// Prediction holds a win probability from the classifier for one entry.
type Prediction struct {
	RaceID         int64     `json:"race_id"`
	HorseID        int64     `json:"horse_id"`
	WinProbability float64   `json:"win_probability"`
	ModelVersion   string    `json:"model_version"`
	PredictedAt    time.Time `json:"predicted_at"`
}

// predictRequest is the JSON payload sent to the classifier.
type predictRequest struct {
	RaceID   int64     `json:"race_id"`
	HorseID  int64     `json:"horse_id"`
	Features []float64 `json:"features"`
}

// Client calls the classifier service over HTTP.
type Client struct {
	client  *http.Client
	baseURL string
	cache   *PredictionCache
	logger  *logrus.Logger
}

// NewClient creates a classifier client. The cache may be nil to disable caching.
func NewClient(baseURL string, timeout time.Duration, cache *PredictionCache, logger *logrus.Logger) *Client {
	return &Client{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
		cache:   cache,
		logger:  logger,
	}
}

// Predict returns the classifier's win probability for an entry. The feature
// vector is the normalized ten-component score vector for the horse.
func (c *Client) Predict(ctx context.Context, raceID, horseID int64, comps scoring.Components) (*Prediction, error) {
	key := CacheKey{RaceID: raceID, HorseID: horseID}
	if c.cache != nil {
		if cached := c.cache.Get(key); cached != nil {
			metrics.PredictionCacheHitsTotal.Inc()
			return cached, nil
		}
	}

	start := time.Now()

	reqBody := predictRequest{
		RaceID:   raceID,
		HorseID:  horseID,
		Features: comps.FeatureVector(),
	}
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/v1/predict", bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: status %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	var pred Prediction
	if err := json.NewDecoder(resp.Body).Decode(&pred); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	if pred.WinProbability < 0 || pred.WinProbability > 1 {
		return nil, fmt.Errorf("%w: win probability %f out of range", ErrInvalidResponse, pred.WinProbability)
	}

	metrics.RecordPrediction(time.Since(start).Seconds())

	c.logger.WithFields(logrus.Fields{
		"race_id":  raceID,
		"horse_id": horseID,
		"prob":     pred.WinProbability,
	}).Debug("Classifier prediction received")

	if c.cache != nil {
		c.cache.Set(key, &pred)
	}

	return &pred, nil
}
