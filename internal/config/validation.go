// Package config provides configuration management for the Turf Oracle application.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// CustomValidator wraps the validator with custom validation rules
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates a new validator with custom validation functions
func NewValidator() (*CustomValidator, error) {
	v := validator.New()

	if err := v.RegisterValidation("environment", validateEnvironment); err != nil {
		return nil, fmt.Errorf("failed to register environment validator: %w", err)
	}
	if err := v.RegisterValidation("loglevel", validateLogLevel); err != nil {
		return nil, fmt.Errorf("failed to register loglevel validator: %w", err)
	}

	return &CustomValidator{validator: v}, nil
}

// Validate validates the entire configuration
func Validate(cfg *Config) error {
	cv, err := NewValidator()
	if err != nil {
		return err
	}
	return cv.Validate(cfg)
}

// Validate validates the configuration using registered validation rules
func (cv *CustomValidator) Validate(cfg *Config) error {
	err := cv.validator.Struct(cfg)
	if err != nil {
		if validationErrors, ok := err.(validator.ValidationErrors); ok {
			return formatValidationErrors(validationErrors)
		}
		return fmt.Errorf("validation failed: %w", err)
	}

	return validateCrossField(cfg)
}

// validateEnvironment validates the environment field
func validateEnvironment(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "development", "staging", "production":
		return true
	default:
		return false
	}
}

// validateLogLevel validates the log level field
func validateLogLevel(fl validator.FieldLevel) bool {
	switch fl.Field().String() {
	case "debug", "info", "warn", "error":
		return true
	default:
		return false
	}
}

// validateCrossField performs cross-field validations
func validateCrossField(cfg *Config) error {
	if err := validateDateRange("backtest", cfg.Backtest.StartDate, cfg.Backtest.EndDate); err != nil {
		return err
	}
	if err := validateDateRange("calibration", cfg.Calibration.StartDate, cfg.Calibration.EndDate); err != nil {
		return err
	}

	if cfg.IsProduction() && cfg.Database.SSLMode == "disable" {
		return fmt.Errorf("production environment requires SSL mode to be 'require' or 'verify-full'")
	}

	if cfg.Database.MaxIdleConnections > cfg.Database.MaxConnections {
		return fmt.Errorf("max_idle_connections cannot exceed max_connections")
	}

	if cfg.Predictor.Enabled {
		if cfg.Predictor.URL == "" {
			return fmt.Errorf("predictor url is required when the predictor is enabled")
		}
		if cfg.Predictor.TimeoutSeconds <= 0 {
			return fmt.Errorf("predictor timeout_seconds must be positive when the predictor is enabled")
		}
		if cfg.Predictor.CacheTTLSeconds <= 0 {
			return fmt.Errorf("predictor cache_ttl_seconds must be positive when the predictor is enabled")
		}
	}

	return nil
}

func validateDateRange(section, start, end string) error {
	startDate, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("invalid %s start_date format: %w", section, err)
	}

	endDate, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("invalid %s end_date format: %w", section, err)
	}

	if !startDate.Before(endDate) {
		return fmt.Errorf("%s start_date must be before end_date", section)
	}

	return nil
}

// formatValidationErrors formats validation errors into a readable string
func formatValidationErrors(validationErrors validator.ValidationErrors) error {
	var errMsg string
	for _, fieldError := range validationErrors {
		if errMsg != "" {
			errMsg += "; "
		}
		errMsg += fmt.Sprintf("field %s failed validation %q (value: %v)",
			fieldError.StructNamespace(), fieldError.Tag(), fieldError.Value())
	}
	return fmt.Errorf("configuration validation failed: %s", errMsg)
}
