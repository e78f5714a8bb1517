package api

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

func fixedClock(year int, month time.Month, day int) func() time.Time {
	return func() time.Time { return time.Date(year, month, day, 9, 30, 0, 0, time.UTC) }
}

func TestScheduler_DuePeriodIsPreviousMonth(t *testing.T) {
	h, _ := setupTestServer(t)
	ps := NewPayrollScheduler(h)

	ps.Now = fixedClock(2025, time.April, 15)
	assert.Equal(t, payroll.MonthPeriod(2025, time.March), ps.DuePeriod())

	ps.Now = fixedClock(2025, time.January, 1)
	assert.Equal(t, payroll.MonthPeriod(2024, time.December), ps.DuePeriod())
}

func TestScheduler_RunsMissingCategoriesOnce(t *testing.T) {
	// GIVEN: The mixed workforce in March and a clock in April
	h, router := setupTestServer(t)
	mustLoadScenario(t, router, "mixed-workforce")
	ps := NewPayrollScheduler(h)
	ps.Now = fixedClock(2025, time.April, 2)
	ctx := context.Background()

	// WHEN: The scheduler checks
	result := ps.RunNow(ctx)

	// THEN: Both categories are run for March
	assert.Equal(t, CheckResult{Processed: 2}, result)

	runs, err := h.Store.ListRuns(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	totals := map[payroll.Category]string{}
	for _, run := range runs {
		assert.Equal(t, payroll.MonthPeriod(2025, time.March), run.Period)
		totals[run.Category] = run.Total().StringFixed(2)
	}
	assert.Equal(t, "8950.00", totals[payroll.CategoryHourly])
	assert.Equal(t, "9090.91", totals[payroll.CategorySalaried])

	// AND: A second check does nothing
	assert.Equal(t, CheckResult{Skipped: 2}, ps.RunNow(ctx))
}

func TestScheduler_ManualRunIsSkipped(t *testing.T) {
	h, router := setupTestServer(t)
	mustLoadScenario(t, router, "mixed-workforce")
	runPayroll(t, router, payroll.CategoryHourly, march)

	ps := NewPayrollScheduler(h)
	ps.Now = fixedClock(2025, time.April, 2)

	assert.Equal(t, CheckResult{Processed: 1, Skipped: 1}, ps.RunNow(context.Background()))
}

func TestScheduler_FailureIsCounted(t *testing.T) {
	h, _ := setupTestServer(t)
	require.NoError(t, h.Store.Close())

	ps := NewPayrollScheduler(h)
	ps.Now = fixedClock(2025, time.April, 2)

	assert.Equal(t, CheckResult{Failed: 2}, ps.RunNow(context.Background()))
}

func TestScheduler_StartStop(t *testing.T) {
	// GIVEN: A scheduler with a long interval
	h, router := setupTestServer(t)
	mustLoadScenario(t, router, "unpaid-leave")
	ps := NewPayrollScheduler(h)
	ps.Now = fixedClock(2025, time.April, 2)
	ps.CheckInterval = time.Hour

	// WHEN: Started
	ps.Start()
	defer ps.Stop()

	// THEN: The first check runs immediately
	require.Eventually(t, func() bool {
		done, err := h.Store.HasRun(context.Background(), payroll.CategorySalaried, payroll.MonthPeriod(2025, time.March))
		return err == nil && done
	}, 2*time.Second, 10*time.Millisecond)

	ps.Stop()
	ps.Stop()
}

func TestScheduler_Disabled(t *testing.T) {
	h, _ := setupTestServer(t)
	ps := NewPayrollScheduler(h)
	ps.Enabled = false

	ps.Start()
	ps.Stop()

	runs, err := h.Store.ListRuns(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}
