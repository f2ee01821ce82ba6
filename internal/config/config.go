// Package config provides configuration management for the Turf Oracle application.
package config

import (
	"fmt"
)

// Config represents the complete application configuration
type Config struct {
	App         AppConfig         `mapstructure:"app" validate:"required"`
	Database    DatabaseConfig    `mapstructure:"database" validate:"required"`
	Scoring     ScoringConfig     `mapstructure:"scoring" validate:"required"`
	Calibration CalibrationConfig `mapstructure:"calibration" validate:"required"`
	Backtest    BacktestConfig    `mapstructure:"backtest" validate:"required"`
	Datasource  DatasourceConfig  `mapstructure:"datasource" validate:"required"`
	Predictor   PredictorConfig   `mapstructure:"predictor"`
	Scheduler   SchedulerConfig   `mapstructure:"scheduler" validate:"required"`
	Metrics     MetricsConfig     `mapstructure:"metrics" validate:"required"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration
type DatabaseConfig struct {
	Host               string `mapstructure:"host" validate:"required"`
	Port               int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Name               string `mapstructure:"name" validate:"required"`
	User               string `mapstructure:"user" validate:"required"`
	Password           string `mapstructure:"password" validate:"required"`
	SSLMode            string `mapstructure:"ssl_mode" validate:"required,oneof=disable require verify-full"`
	MaxConnections     int    `mapstructure:"max_connections" validate:"required,gt=0"`
	MaxIdleConnections int    `mapstructure:"max_idle_connections" validate:"required,gt=0"`
}

// ScoringConfig represents scoring engine configuration
type ScoringConfig struct {
	// WeightsPath optionally points at a JSON file of calibrated weights.
	// Empty means the built-in defaults are used.
	WeightsPath string `mapstructure:"weights_path"`
}

// CalibrationConfig represents weight calibration configuration
type CalibrationConfig struct {
	Lambda     float64 `mapstructure:"lambda" validate:"required,gt=0"`
	MinSamples int     `mapstructure:"min_samples" validate:"required,gt=0"`
	StartDate  string  `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string  `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate  string `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate    string `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	OutputPath string `mapstructure:"output_path" validate:"required"`
}

// DatasourceConfig represents the upstream racing data API configuration
type DatasourceConfig struct {
	BaseURL           string  `mapstructure:"base_url" validate:"required,url"`
	APIKey            string  `mapstructure:"api_key"`
	TimeoutSeconds    int     `mapstructure:"timeout_seconds" validate:"required,gt=0"`
	RetryAttempts     int     `mapstructure:"retry_attempts" validate:"required,gte=0"`
	RequestsPerSecond float64 `mapstructure:"requests_per_second" validate:"required,gt=0"`
}

// PredictorConfig represents the external classifier service configuration.
// The url and timing fields are only enforced when the classifier is enabled.
type PredictorConfig struct {
	URL             string `mapstructure:"url" validate:"omitempty,url"`
	TimeoutSeconds  int    `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	CacheTTLSeconds int    `mapstructure:"cache_ttl_seconds" validate:"omitempty,gt=0"`
	Enabled         bool   `mapstructure:"enabled"`
}

// SchedulerConfig represents scheduled job configuration
type SchedulerConfig struct {
	HistoricalSync  string `mapstructure:"historical_sync" validate:"required"`
	NightlyBacktest string `mapstructure:"nightly_backtest" validate:"required"`
	Enabled         bool   `mapstructure:"enabled"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Port    int    `mapstructure:"port" validate:"required,min=1,max=65535"`
	Path    string `mapstructure:"path" validate:"required"`
}

// IsDevelopment checks if the application is running in development mode
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development"
}

// IsProduction checks if the application is running in production mode
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// GetDatabaseDSN returns a PostgreSQL DSN string
func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}
