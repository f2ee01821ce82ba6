// Package main provides the long-running sync daemon: scheduled data pulls,
// scheduled backtests, and the health/metrics HTTP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/turf-oracle/internal/backtest"
	"github.com/yourusername/turf-oracle/internal/config"
	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/datasource"
	"github.com/yourusername/turf-oracle/internal/health"
	"github.com/yourusername/turf-oracle/internal/logger"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scheduler"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

func main() {
	configPath := flag.String("config", "config/config.yaml", "Path to config file")
	flag.Parse()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

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

	httpCfg := datasource.DefaultHTTPClientConfig()
	httpCfg.Timeout = time.Duration(cfg.Datasource.TimeoutSeconds) * time.Second
	httpCfg.MaxRetries = cfg.Datasource.RetryAttempts
	httpCfg.RateLimit = cfg.Datasource.RequestsPerSecond
	dataClient := datasource.NewClient(cfg.Datasource.BaseURL, cfg.Datasource.APIKey, httpCfg, log)
	defer dataClient.Close()

	weights := resolveWeights(cfg, log)

	engine, err := backtest.NewEngine(repos.History, weights, log)
	if err != nil {
		log.Fatalf("Failed to create backtest engine: %v", err)
	}

	sched := scheduler.NewScheduler(log)
	if cfg.Scheduler.Enabled {
		if err := sched.ScheduleHistoricalSync(cfg.Scheduler.HistoricalSync, syncJob(dataClient, log)); err != nil {
			log.Fatalf("Failed to schedule historical sync: %v", err)
		}
		if err := sched.ScheduleBacktest(cfg.Scheduler.NightlyBacktest, backtestJob(engine, cfg.Backtest.OutputPath, log)); err != nil {
			log.Fatalf("Failed to schedule backtest: %v", err)
		}
		if err := sched.Start(); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		defer sched.Stop()
	}

	healthServer := health.NewServer(health.Config{
		ServiceName: cfg.App.Name,
		Version:     Version,
		Port:        fmt.Sprintf("%d", cfg.Metrics.Port),
		MetricsPath: cfg.Metrics.Path,
		Logger:      log,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		log.Fatalf("Failed to start health server: %v", err)
	}
	healthServer.SetReady(true)

	log.WithFields(logrus.Fields{
		"environment": cfg.App.Environment,
		"jobs":        sched.JobCount(),
	}).Info("Sync daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	sig := <-sigChan

	log.WithField("signal", sig).Info("Shutdown signal received")
	healthServer.SetReady(false)
	cancel()
}

func syncJob(client *datasource.Client, log *logrus.Logger) scheduler.SyncFunc {
	return func(ctx context.Context, startDate, endDate time.Time) error {
		total := 0
		for day := startDate; !day.After(endDate); day = day.AddDate(0, 0, 1) {
			cards, err := client.FetchRaceCards(ctx, day)
			if err != nil {
				return fmt.Errorf("fetch cards for %s: %w", day.Format("2006-01-02"), err)
			}
			total += len(cards)
		}
		log.WithField("cards", total).Info("Data sync pulled race cards")
		return nil
	}
}

func backtestJob(engine *backtest.Engine, outputPath string, log *logrus.Logger) scheduler.BacktestFunc {
	return func(ctx context.Context, startDate, endDate time.Time) error {
		summary, err := engine.Run(ctx, startDate, endDate)
		if err != nil {
			return err
		}
		if outputPath != "" {
			if err := backtest.ExportToJSON(summary, outputPath); err != nil {
				return err
			}
		}
		log.WithFields(logrus.Fields{
			"races":    summary.TotalRaces,
			"top1":     summary.Top1Rate,
			"spearman": summary.AvgCorrelation,
		}).Info("Scheduled backtest summary")
		return nil
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

func resolveWeights(cfg *config.Config, log *logrus.Logger) scoring.Weights {
	if cfg.Scoring.WeightsPath == "" {
		return scoring.DefaultWeights()
	}
	w, err := scoring.LoadWeights(cfg.Scoring.WeightsPath)
	if err != nil {
		log.WithError(err).Warn("Falling back to default weights")
		return scoring.DefaultWeights()
	}
	return w
}
