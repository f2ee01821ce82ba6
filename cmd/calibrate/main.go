// Package main provides the weight calibration CLI.
package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/turf-oracle/internal/calibrate"
	"github.com/yourusername/turf-oracle/internal/config"
	"github.com/yourusername/turf-oracle/internal/database"
	"github.com/yourusername/turf-oracle/internal/logger"
	"github.com/yourusername/turf-oracle/internal/repository"
	"github.com/yourusername/turf-oracle/internal/scoring"
)

// Build information - set via ldflags
var (
	Version = "dev"
)

var (
	configFile string
	startFlag  string
	endFlag    string
	lambdaFlag float64
	weightsOut string
	appLogger  *logrus.Logger
	cfg        *config.Config
	db         *database.DB
	repos      *repository.Repositories
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "config/config.yaml", "Path to configuration file")

	runCmd.Flags().StringVar(&startFlag, "start-date", "", "Override start date (YYYY-MM-DD)")
	runCmd.Flags().StringVar(&endFlag, "end-date", "", "Override end date (YYYY-MM-DD)")
	runCmd.Flags().Float64Var(&lambdaFlag, "lambda", 0, "Override ridge regularization strength")
	runCmd.Flags().StringVar(&weightsOut, "out", "", "Write fitted weights to this JSON file")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(showCmd)
}

var rootCmd = &cobra.Command{
	Use:     "calibrate",
	Short:   "Fit scoring weights against historical race results",
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := config.Validate(cfg); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		appLogger = logger.NewLogger(cfg.App.LogLevel)
		return nil
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Collect labeled samples and fit a new weight vector",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		if err := setupDatabase(ctx); err != nil {
			return err
		}
		defer db.Close()

		start, end, err := dateRange()
		if err != nil {
			return err
		}

		lambda := cfg.Calibration.Lambda
		if lambdaFlag > 0 {
			lambda = lambdaFlag
		}

		current := currentWeights()

		calibrator := calibrate.NewCalibrator(repos.History, appLogger)
		calibrator.SetMinSamples(cfg.Calibration.MinSamples)
		result, err := calibrator.Run(ctx, start, end, current, lambda)
		if err != nil {
			return fmt.Errorf("calibration failed: %w", err)
		}

		printResult(result)

		if weightsOut != "" && result.Calibrated {
			if err := scoring.SaveWeights(weightsOut, result.Weights); err != nil {
				return err
			}
			fmt.Printf("\nFitted weights written to %s\n", weightsOut)
		}

		return nil
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the weight vector the engine currently scores with",
	RunE: func(cmd *cobra.Command, args []string) error {
		printWeights(currentWeights())
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func setupDatabase(ctx context.Context) error {
	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	repos, err = repository.NewRepositories(db)
	if err != nil {
		return fmt.Errorf("failed to initialize repositories: %w", err)
	}
	return nil
}

func dateRange() (time.Time, time.Time, error) {
	startStr := cfg.Calibration.StartDate
	endStr := cfg.Calibration.EndDate
	if startFlag != "" {
		startStr = startFlag
	}
	if endFlag != "" {
		endStr = endFlag
	}

	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid start date: %w", err)
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("invalid end date: %w", err)
	}
	if !start.Before(end) {
		return time.Time{}, time.Time{}, fmt.Errorf("start date must be before end date")
	}
	return start, end, nil
}

func currentWeights() scoring.Weights {
	if cfg.Scoring.WeightsPath == "" {
		return scoring.DefaultWeights()
	}
	w, err := scoring.LoadWeights(cfg.Scoring.WeightsPath)
	if err != nil {
		appLogger.WithError(err).Warn("Falling back to default weights")
		return scoring.DefaultWeights()
	}
	return w
}

func printResult(result calibrate.Result) {
	fmt.Printf("Calibration run %s\n", result.RunID)
	fmt.Printf("  samples:     %d\n", result.SampleCount)
	fmt.Printf("  lambda:      %.3f\n", result.Lambda)

	if !result.Calibrated {
		fmt.Println("  status:      skipped (not enough samples, keeping current weights)")
		return
	}

	fmt.Printf("  improvement: %.2f%%\n", result.ImprovementPercent)
	fmt.Println()
	printWeights(result.Weights)
}

func printWeights(w scoring.Weights) {
	fmt.Println("Factor weights:")
	for _, f := range scoring.Factors {
		fmt.Printf("  %-26s %.4f\n", f, w[f])
	}
	fmt.Printf("  %-26s %.4f\n", "sum", w.Sum())
}
