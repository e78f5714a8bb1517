// Package config loads server and payroll rule settings from the
// environment, optionally seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Payroll   PayrollConfig
	Scheduler SchedulerConfig
}

// AppConfig holds HTTP server settings
type AppConfig struct {
	Port           int
	Env            string
	LogLevel       slog.Level
	AllowedOrigins []string
}

type DatabaseConfig struct {
	Path string
}

// PayrollConfig holds the calculation rules and run settings
type PayrollConfig struct {
	Rules       payroll.Rules
	Concurrency int
}

type SchedulerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// Load reads .env files (missing files are fine) then the environment.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	cfg := &Config{}
	var err error

	if cfg.App.Port, err = getEnvInt("APP_PORT", 8080); err != nil {
		return nil, err
	}
	cfg.App.Env = getEnv("APP_ENV", "development")
	if err := cfg.App.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
	}
	cfg.App.AllowedOrigins = strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,http://localhost:8080"), ",")

	cfg.Database.Path = getEnv("DB_PATH", "payroll.db")

	rules := payroll.DefaultRules()
	if rules.StandardDayHours, err = getEnvInt("PAYROLL_STANDARD_DAY_HOURS", rules.StandardDayHours); err != nil {
		return nil, err
	}
	if rules.WorkingDaysPerMonth, err = getEnvInt("PAYROLL_WORKING_DAYS_PER_MONTH", rules.WorkingDaysPerMonth); err != nil {
		return nil, err
	}
	if rules.OvertimePremium, err = getEnvDecimal("PAYROLL_OVERTIME_PREMIUM", rules.OvertimePremium); err != nil {
		return nil, err
	}
	scale, err := getEnvInt("PAYROLL_AMOUNT_SCALE", int(rules.AmountScale))
	if err != nil {
		return nil, err
	}
	rules.AmountScale = int32(scale)
	if err := rules.Validate(); err != nil {
		return nil, fmt.Errorf("invalid payroll rules: %w", err)
	}
	cfg.Payroll.Rules = rules

	if cfg.Payroll.Concurrency, err = getEnvInt("PAYROLL_CONCURRENCY", 1); err != nil {
		return nil, err
	}

	if cfg.Scheduler.Enabled, err = getEnvBool("SCHEDULER_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.Scheduler.Interval, err = getEnvDuration("SCHEDULER_INTERVAL", time.Hour); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvBool(key string, defaultValue bool) (bool, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDuration(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}

func getEnvDecimal(key string, defaultValue decimal.Decimal) (decimal.Decimal, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid %s: %w", key, err)
	}
	return v, nil
}
