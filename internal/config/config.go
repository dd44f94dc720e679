// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"contract-compliance/internal/compliance"
	"contract-compliance/internal/notifyconfig"
)

// Config holds the service configuration. Every field has an environment variable.
type Config struct {
	Port              int           `validate:"min=1,max=65535"`             // PORT
	DatabaseURL       string        // DATABASE_URL, optional
	Jurisdiction      string        `validate:"required"`                    // JURISDICTION
	JurisdictionsFile string        `validate:"omitempty,file"`              // JURISDICTIONS_FILE
	LogLevel          string        `validate:"oneof=debug info warn error"` // LOG_LEVEL
	NotifyConfigTTL   time.Duration `validate:"gt=0"`                        // NOTIFY_CONFIG_TTL

	// NotifyDays pins the notification lead times when set; nil means read them from the database.
	NotifyDays []int `validate:"omitempty,dive,min=0"` // NOTIFY_DAYS_BEFORE_EXPIRATION
}

// Defaults returns the configuration used when no variable is set.
func Defaults() Config {
	return Config{
		Port:            8080,
		Jurisdiction:    compliance.DefaultJurisdiction,
		LogLevel:        "info",
		NotifyConfigTTL: notifyconfig.DefaultTTL,
	}
}

// Load reads the configuration from the environment on top of Defaults.
func Load() (*Config, error) {
	cfg := Defaults()

	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("config error: PORT %q is not a number", v)
		}
		cfg.Port = port
	}
	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if v := os.Getenv("JURISDICTION"); v != "" {
		cfg.Jurisdiction = strings.ToUpper(strings.TrimSpace(v))
	}
	cfg.JurisdictionsFile = os.Getenv("JURISDICTIONS_FILE")
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("NOTIFY_CONFIG_TTL"); v != "" {
		ttl, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("config error: NOTIFY_CONFIG_TTL: %w", err)
		}
		cfg.NotifyConfigTTL = ttl
	}
	if v, ok := os.LookupEnv("NOTIFY_DAYS_BEFORE_EXPIRATION"); ok {
		days, err := ParseDays(v)
		if err != nil {
			return nil, fmt.Errorf("config error: NOTIFY_DAYS_BEFORE_EXPIRATION: %w", err)
		}
		cfg.NotifyDays = days
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ParseDays parses a comma separated list of lead times. An empty string is an
// empty, non-nil list.
func ParseDays(s string) ([]int, error) {
	days := []int{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		d, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("%q is not a whole number of days", part)
		}
		days = append(days, d)
	}
	return days, nil
}

// Validate checks that the configuration has valid values.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// Limits resolves the configured jurisdiction's renewal limits.
func (c *Config) Limits() (compliance.Limits, error) {
	limits, err := compliance.LimitsFor(c.Jurisdiction, c.JurisdictionsFile)
	if err != nil {
		return compliance.Limits{}, fmt.Errorf("config error: %w", err)
	}
	return limits, nil
}
