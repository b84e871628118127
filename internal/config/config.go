package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

// Config holds the runtime configuration. Every value can be set through an
// environment variable and has a sensible default for local development.
type Config struct {
	// DBPath is the path of the sqlite database file.
	DBPath string

	// SystemCap is the hard upper bound any monthly maximum can be raised to.
	SystemCap decimal.Decimal

	// DefaultMonthlyMaximum seeds the threshold of a month that has no
	// predecessor to inherit from.
	DefaultMonthlyMaximum decimal.Decimal

	// MaxDebtServiceRatio is the highest acceptable installment share of
	// monthly income.
	MaxDebtServiceRatio decimal.Decimal

	// ExistingDebtFactor approximates the monthly service of outstanding debt
	// when no schedule is known for it.
	ExistingDebtFactor decimal.Decimal

	// RolloverPolicy selects how the next month's maximum is seeded on
	// rollover. Allowed values are "reset" and "carry-over".
	RolloverPolicy string

	// RolloverSchedule is the cron expression for the automatic month-end
	// rollover. An empty value disables the scheduler.
	RolloverSchedule string
}

const (
	defaultDBPath           = "data/ledger.db"
	defaultRolloverPolicy   = "reset"
	defaultRolloverSchedule = "5 0 1 * *"
)

// FromEnv builds the configuration from the environment.
func FromEnv() (Config, error) {
	cfg := Config{
		DBPath:           envOrDefault("DB_PATH", defaultDBPath),
		RolloverPolicy:   envOrDefault("ROLLOVER_POLICY", defaultRolloverPolicy),
		RolloverSchedule: envOrDefault("ROLLOVER_SCHEDULE", defaultRolloverSchedule),
	}

	if !slices.Contains([]string{"reset", "carry-over"}, cfg.RolloverPolicy) {
		return Config{}, fmt.Errorf("ROLLOVER_POLICY must be \"reset\" or \"carry-over\", got %q", cfg.RolloverPolicy)
	}

	var err error

	cfg.SystemCap, err = decimalFromEnv("SYSTEM_CAP", decimal.NewFromInt(10000000))
	if err != nil {
		return Config{}, err
	}

	cfg.DefaultMonthlyMaximum, err = decimalFromEnv("DEFAULT_MONTHLY_MAXIMUM", decimal.NewFromInt(3000000))
	if err != nil {
		return Config{}, err
	}

	cfg.MaxDebtServiceRatio, err = decimalFromEnv("MAX_DEBT_SERVICE_RATIO", decimal.NewFromFloat(0.5))
	if err != nil {
		return Config{}, err
	}

	cfg.ExistingDebtFactor, err = decimalFromEnv("EXISTING_DEBT_FACTOR", decimal.NewFromFloat(0.1))
	if err != nil {
		return Config{}, err
	}

	if !cfg.SystemCap.IsPositive() {
		return Config{}, fmt.Errorf("SYSTEM_CAP must be positive, got %s", cfg.SystemCap)
	}

	if cfg.DefaultMonthlyMaximum.GreaterThan(cfg.SystemCap) {
		return Config{}, fmt.Errorf("DEFAULT_MONTHLY_MAXIMUM (%s) must not exceed SYSTEM_CAP (%s)", cfg.DefaultMonthlyMaximum, cfg.SystemCap)
	}

	return cfg, nil
}

func envOrDefault(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}

	return fallback
}

func decimalFromEnv(key string, fallback decimal.Decimal) (decimal.Decimal, error) {
	value, ok := os.LookupEnv(key)
	if !ok || value == "" {
		return fallback, nil
	}

	parsed, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%s is not a valid number: %q", key, value)
	}

	return parsed, nil
}
