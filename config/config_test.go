package config_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/config"
	"github.com/warp/payroll-engine/payroll"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.Port)
	assert.Equal(t, slog.LevelInfo, cfg.App.LogLevel)
	assert.Equal(t, "payroll.db", cfg.Database.Path)
	assert.Equal(t, payroll.DefaultRules().StandardDayHours, cfg.Payroll.Rules.StandardDayHours)
	assert.True(t, cfg.Payroll.Rules.OvertimePremium.Equal(payroll.DefaultOvertimePremium))
	assert.Equal(t, 22, cfg.Payroll.Rules.WorkingDaysPerMonth)
	assert.Equal(t, 1, cfg.Payroll.Concurrency)
	assert.True(t, cfg.Scheduler.Enabled)
	assert.Equal(t, time.Hour, cfg.Scheduler.Interval)
}

func TestLoad_FromEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	content := "APP_PORT=9090\nPAYROLL_OVERTIME_PREMIUM=2\nPAYROLL_WORKING_DAYS_PER_MONTH=21\nLOG_LEVEL=debug\nSCHEDULER_INTERVAL=5m\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	// godotenv.Load does not override variables that are already set
	for _, key := range []string{"APP_PORT", "PAYROLL_OVERTIME_PREMIUM", "PAYROLL_WORKING_DAYS_PER_MONTH", "LOG_LEVEL", "SCHEDULER_INTERVAL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.App.Port)
	assert.Equal(t, slog.LevelDebug, cfg.App.LogLevel)
	assert.Equal(t, "2", cfg.Payroll.Rules.OvertimePremium.String())
	assert.Equal(t, 21, cfg.Payroll.Rules.WorkingDaysPerMonth)
	assert.Equal(t, 5*time.Minute, cfg.Scheduler.Interval)
}

func TestLoad_InvalidValues(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	t.Setenv("APP_PORT", "eighty")
	_, err := config.Load(missing)
	assert.Error(t, err)

	t.Setenv("APP_PORT", "8080")
	t.Setenv("PAYROLL_OVERTIME_PREMIUM", "0.5")
	_, err = config.Load(missing)
	assert.Error(t, err, "premium below 1 is rejected")

	t.Setenv("PAYROLL_OVERTIME_PREMIUM", "1.5")
	t.Setenv("PAYROLL_WORKING_DAYS_PER_MONTH", "0")
	_, err = config.Load(missing)
	assert.Error(t, err)
}
