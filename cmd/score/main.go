// Package main provides the entry point for the race scoring CLI tool.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/config"
	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/logger"
	"github.com/yourusername/turf-oracle/internal/models"
	"github.com/yourusername/turf-oracle/internal/predictor"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scoring"
	"github.com/yourusername/turf-oracle/internal/service"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		raceID     = flag.Int64("race-id", 0, "Race ID to score")
	)
	flag.Parse()

	if *raceID == 0 {
		fmt.Fprintln(os.Stderr, "usage: score -race-id <id> [-config <path>]")
		os.Exit(2)
	}

	ctx := context.Background()

	cfg := loadConfigWithSecrets(ctx, *configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	db, err := database.NewDB(ctx, &cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	repos, err := repository.NewRepositories(db)
	if err != nil {
		log.Fatalf("Failed to initialize repositories: %v", err)
	}

	weights := resolveWeights(cfg, log)

	svc, err := service.NewScoringService(repos, weights, log)
	if err != nil {
		log.Fatalf("Failed to create scoring service: %v", err)
	}

	scores, err := svc.ScoreRace(ctx, *raceID)
	if err != nil {
		if errors.Is(err, models.ErrRaceNotFound) {
			log.Fatalf("Race %d not found", *raceID)
		}
		log.Fatalf("Scoring failed: %v", err)
	}

	probs := classifierProbabilities(ctx, cfg, log, *raceID, scores)

	printScores(*raceID, scores, probs)
}

// classifierProbabilities fetches win probabilities from the external
// classifier for each scored entry. Returns nil when the classifier is
// disabled; individual failures are logged and leave a gap in the output.
func classifierProbabilities(ctx context.Context, cfg *config.Config, log *logrus.Logger, raceID int64, scores []service.EntryScore) map[int64]float64 {
	if !cfg.Predictor.Enabled {
		return nil
	}

	cache := predictor.NewPredictionCache(time.Duration(cfg.Predictor.CacheTTLSeconds) * time.Second)
	client := predictor.NewClient(cfg.Predictor.URL, time.Duration(cfg.Predictor.TimeoutSeconds)*time.Second, cache, log)

	probs := make(map[int64]float64, len(scores))
	for _, s := range scores {
		pred, err := client.Predict(ctx, raceID, s.HorseID, s.Components)
		if err != nil {
			log.WithError(err).WithField("horse_id", s.HorseID).Warn("Classifier prediction failed")
			continue
		}
		probs[s.HorseID] = pred.WinProbability
	}
	return probs
}

func loadConfigWithSecrets(ctx context.Context, path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	if os.Getenv("AWS_SECRETS_ENABLED") == "true" {
		region := os.Getenv("AWS_REGION")
		secretName := os.Getenv("AWS_SECRET_NAME")
		if region == "" || secretName == "" {
			logrus.Fatal("AWS_REGION and AWS_SECRET_NAME must be set when AWS_SECRETS_ENABLED is true")
		}
		if err := config.LoadSecretsFromAWS(ctx, cfg, region, secretName); err != nil {
			logrus.Fatalf("Failed to load secrets: %v", err)
		}
	}
	if err := config.Validate(cfg); err != nil {
		logrus.Fatalf("Invalid configuration: %v", err)
	}
	return cfg
}

func resolveWeights(cfg *config.Config, log *logrus.Logger) scoring.Weights {
	if cfg.Scoring.WeightsPath == "" {
		return scoring.DefaultWeights()
	}
	w, err := scoring.LoadWeights(cfg.Scoring.WeightsPath)
	if err != nil {
		log.WithError(err).Warn("Falling back to default weights")
		return scoring.DefaultWeights()
	}
	log.WithField("path", cfg.Scoring.WeightsPath).Info("Loaded calibrated weights")
	return w
}

func printScores(raceID int64, scores []service.EntryScore, probs map[int64]float64) {
	sort.SliceStable(scores, func(i, j int) bool {
		return scores[i].Total > scores[j].Total
	})

	fmt.Printf("Race %d scored entries (%d):\n\n", raceID, len(scores))
	if probs == nil {
		fmt.Printf("%-4s %-6s %-24s %-6s %s\n", "Rank", "Gate", "Horse", "Score", "Top factors")
	} else {
		fmt.Printf("%-4s %-6s %-24s %-6s %-6s %s\n", "Rank", "Gate", "Horse", "Score", "Win%", "Top factors")
	}
	for i, s := range scores {
		gate := "-"
		if s.GateNumber != nil {
			gate = fmt.Sprintf("%d", *s.GateNumber)
		}
		if probs == nil {
			fmt.Printf("%-4d %-6s %-24s %-6.1f %s\n", i+1, gate, s.HorseName, s.Total, topFactors(s.Components))
			continue
		}
		winPct := "-"
		if p, ok := probs[s.HorseID]; ok {
			winPct = fmt.Sprintf("%.1f", p*100)
		}
		fmt.Printf("%-4d %-6s %-24s %-6.1f %-6s %s\n", i+1, gate, s.HorseName, s.Total, winPct, topFactors(s.Components))
	}
}

// topFactors lists the two strongest raw components for quick inspection.
func topFactors(c scoring.Components) string {
	best, second := scoring.Factor(""), scoring.Factor("")
	for _, f := range scoring.Factors {
		v := c.Get(f)
		if best == "" || v > c.Get(best) {
			second = best
			best = f
		} else if second == "" || v > c.Get(second) {
			second = f
		}
	}
	return fmt.Sprintf("%s %.0f, %s %.0f", best, c.Get(best), second, c.Get(second))
}
