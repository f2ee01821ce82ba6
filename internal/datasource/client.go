// Package datasource fetches race cards and results from the upstream racing data API.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/metrics"
)

// Common datasource errors
var (
	ErrNotFound             = errors.New("data not found")
	ErrAuthenticationFailed = errors.New("authentication failed")
	ErrServerError          = errors.New("server error")
)

// RaceCard represents an upstream race card payload
type RaceCard struct {
	SourceID   string      `json:"source_id"`
	Venue      string      `json:"venue"`
	RaceNumber int         `json:"race_number"`
	Date       time.Time   `json:"date"`
	Distance   int         `json:"distance"`
	Surface    string      `json:"surface"`
	Condition  string      `json:"condition"`
	Grade      *string     `json:"grade"`
	Entries    []CardEntry `json:"entries"`
}

// CardEntry represents a single runner on an upstream race card
type CardEntry struct {
	HorseSourceID   string  `json:"horse_source_id"`
	HorseName       string  `json:"horse_name"`
	GateNumber      *int    `json:"gate_number"`
	JockeySourceID  *string `json:"jockey_source_id"`
	TrainerSourceID *string `json:"trainer_source_id"`
	Popularity      *int    `json:"popularity"`
}

// RaceResult represents an upstream race result payload
type RaceResult struct {
	SourceID string        `json:"source_id"`
	Finishes []FinishEntry `json:"finishes"`
}

// FinishEntry is one runner's finishing record within a result payload
type FinishEntry struct {
	HorseSourceID  string   `json:"horse_source_id"`
	FinishPosition int      `json:"finish_position"`
	Last3F         *float64 `json:"last_3f"`
	Popularity     *int     `json:"popularity"`
}

// Client fetches racing data over HTTP
type Client struct {
	http    *RateLimitedHTTPClient
	baseURL string
	apiKey  string
	logger  *logrus.Logger
}

// NewClient creates a racing data API client
func NewClient(baseURL, apiKey string, httpCfg HTTPClientConfig, logger *logrus.Logger) *Client {
	return &Client{
		http:    NewRateLimitedHTTPClient(httpCfg, logger),
		baseURL: baseURL,
		apiKey:  apiKey,
		logger:  logger,
	}
}

// FetchRaceCards retrieves all race cards for a given date
func (c *Client) FetchRaceCards(ctx context.Context, date time.Time) ([]RaceCard, error) {
	url := fmt.Sprintf("%s/v1/cards?date=%s", c.baseURL, date.Format("2006-01-02"))

	var cards []RaceCard
	if err := c.getJSON(ctx, "race_cards", url, &cards); err != nil {
		return nil, err
	}

	c.logger.WithFields(logrus.Fields{
		"date":  date.Format("2006-01-02"),
		"cards": len(cards),
	}).Debug("Fetched race cards")

	return cards, nil
}

// FetchRaceResult retrieves the result for a single race
func (c *Client) FetchRaceResult(ctx context.Context, sourceID string) (*RaceResult, error) {
	url := fmt.Sprintf("%s/v1/results/%s", c.baseURL, sourceID)

	var result RaceResult
	if err := c.getJSON(ctx, "race_result", url, &result); err != nil {
		return nil, err
	}

	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, resource, url string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		metrics.RecordDataFetch(resource, "error")
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		metrics.RecordDataFetch(resource, "not_found")
		return ErrNotFound
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		metrics.RecordDataFetch(resource, "error")
		return ErrAuthenticationFailed
	case resp.StatusCode >= 500:
		metrics.RecordDataFetch(resource, "error")
		return fmt.Errorf("%w: status %d", ErrServerError, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		metrics.RecordDataFetch(resource, "error")
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		metrics.RecordDataFetch(resource, "error")
		return fmt.Errorf("failed to decode response: %w", err)
	}

	metrics.RecordDataFetch(resource, "ok")
	return nil
}

// Close releases the underlying HTTP client resources
func (c *Client) Close() error {
	return c.http.Close()
}
