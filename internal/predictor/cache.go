// Package predictor provides a client for the external win-probability classifier service.
package predictor

import (
	"fmt"
	"sync"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// CacheKey identifies a cached prediction.
type CacheKey struct {
	RaceID  int64
	HorseID int64
}

// String returns the string representation of the cache key.
func (k CacheKey) String() string {
	return fmt.Sprintf("%d:%d", k.RaceID, k.HorseID)
}

// PredictionCache provides in-memory caching for classifier predictions.
type PredictionCache struct {
	cache     *cache.Cache
	ttl       time.Duration
	mu        sync.RWMutex
	hitCount  uint64
	missCount uint64
}

// NewPredictionCache creates a new prediction cache.
func NewPredictionCache(ttl time.Duration) *PredictionCache {
	return &PredictionCache{
		cache: cache.New(ttl, ttl*2),
		ttl:   ttl,
	}
}

// Get retrieves a cached prediction, or nil when absent.
func (pc *PredictionCache) Get(key CacheKey) *Prediction {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	if result, found := pc.cache.Get(key.String()); found {
		if pred, ok := result.(*Prediction); ok {
			pc.hitCount++
			return pred
		}
	}

	pc.missCount++
	return nil
}

// Set stores a prediction in the cache.
func (pc *PredictionCache) Set(key CacheKey, prediction *Prediction) {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Set(key.String(), prediction, pc.ttl)
}

// Clear flushes the entire cache.
func (pc *PredictionCache) Clear() {
	pc.mu.Lock()
	defer pc.mu.Unlock()

	pc.cache.Flush()
	pc.hitCount = 0
	pc.missCount = 0
}

// Stats returns cache hit statistics.
func (pc *PredictionCache) Stats() (hits, misses uint64, ratio float64) {
	pc.mu.RLock()
	defer pc.mu.RUnlock()

	hits = pc.hitCount
	misses = pc.missCount
	total := hits + misses
	if total > 0 {
		ratio = float64(hits) / float64(total)
	}
	return
}

// ItemCount returns the number of items in the cache.
func (pc *PredictionCache) ItemCount() int {
	return pc.cache.ItemCount()
}
