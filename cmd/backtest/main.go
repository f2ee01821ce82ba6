// Package main provides the entry point for the backtesting CLI tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/backtest"
	"github.com/yourusername/turf-oracle/internal/config"
	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/logger"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		startDate  = flag.String("start-date", "", "Override start date (YYYY-MM-DD)")
		endDate    = flag.String("end-date", "", "Override end date (YYYY-MM-DD)")
		output     = flag.String("output", "", "Output path for JSON results (empty disables export)")
	)
	flag.Parse()

	ctx := context.Background()

	cfg := loadConfigWithSecrets(ctx, *configPath)
	log := logger.NewLogger(cfg.App.LogLevel)

	start, end := resolveDateRange(cfg, *startDate, *endDate, log)

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

	engine, err := backtest.NewEngine(repos.History, weights, log)
	if err != nil {
		log.Fatalf("Failed to create backtest engine: %v", err)
	}

	log.WithFields(logrus.Fields{
		"start": start.Format("2006-01-02"),
		"end":   end.Format("2006-01-02"),
	}).Info("Starting backtest")

	summary, err := engine.Run(ctx, start, end)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	fmt.Print(backtest.GenerateConsoleReport(summary))

	outputPath := *output
	if outputPath == "" {
		outputPath = cfg.Backtest.OutputPath
	}
	if outputPath != "" {
		if err := backtest.ExportToJSON(summary, outputPath); err != nil {
			log.Fatalf("Failed to export results: %v", err)
		}
		log.WithField("path", outputPath).Info("Results exported")
	}
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

func resolveDateRange(cfg *config.Config, startOverride, endOverride string, log *logrus.Logger) (time.Time, time.Time) {
	start, err := time.Parse("2006-01-02", cfg.Backtest.StartDate)
	if err != nil {
		log.Fatalf("Invalid configured start date: %v", err)
	}
	end, err := time.Parse("2006-01-02", cfg.Backtest.EndDate)
	if err != nil {
		log.Fatalf("Invalid configured end date: %v", err)
	}

	if startOverride != "" {
		start, err = time.Parse("2006-01-02", startOverride)
		if err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
	}
	if endOverride != "" {
		end, err = time.Parse("2006-01-02", endOverride)
		if err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
	}

	if !start.Before(end) {
		log.Fatalf("Start date %s must be before end date %s", start.Format("2006-01-02"), end.Format("2006-01-02"))
	}

	return start, end
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
