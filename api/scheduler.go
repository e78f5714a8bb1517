/*
scheduler.go - Automated monthly payroll scheduler

PURPOSE:
  Periodically checks whether last month's payroll has been run for each
  employee category and runs it when missing.

DESIGN:
  - Runs a background goroutine with configurable check interval
  - The settlement period is always the previous calendar month
  - Skips categories that already have a run for that month
  - Runs are recorded by Handler.ExecuteRun like manual ones

CONFIGURATION:
  - CheckInterval: How often to check (default: 1 hour)
  - Enabled: Whether scheduler is active (default: true)

USAGE:
  scheduler := NewPayrollScheduler(handler)
  scheduler.Start()
  // ... later
  scheduler.Stop()

SEE ALSO:
  - handlers.go: RunPayroll endpoint (manual runs)
  - payroll/calculator.go: Calculator
*/
package api

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/warp/payroll-engine/payroll"
)

// scheduledCategories are run in this order on every check.
var scheduledCategories = []payroll.Category{payroll.CategoryHourly, payroll.CategorySalaried}

// PayrollScheduler runs the previous month's payroll automatically.
type PayrollScheduler struct {
	Handler       *Handler
	CheckInterval time.Duration
	Enabled       bool

	// Now returns the current time; replaced in tests.
	Now func() time.Time

	ticker *time.Ticker
	stop   chan struct{}
	wg     sync.WaitGroup
	mu     sync.Mutex
}

// CheckResult counts the outcome of one scheduler check.
type CheckResult struct {
	Processed int
	Skipped   int
	Failed    int
}

// NewPayrollScheduler creates a new scheduler.
func NewPayrollScheduler(handler *Handler) *PayrollScheduler {
	return &PayrollScheduler{
		Handler:       handler,
		CheckInterval: 1 * time.Hour,
		Enabled:       true,
		Now:           time.Now,
	}
}

// Start begins the scheduler.
func (ps *PayrollScheduler) Start() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	logger := ps.Handler.Logger
	if !ps.Enabled {
		logger.Info("scheduler disabled, not starting")
		return
	}
	if ps.ticker != nil {
		return
	}

	ps.ticker = time.NewTicker(ps.CheckInterval)
	ps.stop = make(chan struct{})
	ps.wg.Add(1)

	go ps.run()

	logger.Info("scheduler started", slog.Duration("interval", ps.CheckInterval))
}

// Stop stops the scheduler and waits for a running check to finish.
func (ps *PayrollScheduler) Stop() {
	ps.mu.Lock()
	defer ps.mu.Unlock()

	if ps.ticker != nil {
		ps.ticker.Stop()
		close(ps.stop)
		ps.wg.Wait()
		ps.ticker = nil
		ps.Handler.Logger.Info("scheduler stopped")
	}
}

func (ps *PayrollScheduler) run() {
	defer ps.wg.Done()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		<-ps.stop
		cancel()
	}()

	// Run immediately on start
	ps.checkAndProcess(ctx)

	for {
		select {
		case <-ps.ticker.C:
			ps.checkAndProcess(ctx)
		case <-ps.stop:
			return
		}
	}
}

// RunNow triggers an immediate check (for testing/admin).
func (ps *PayrollScheduler) RunNow(ctx context.Context) CheckResult {
	return ps.checkAndProcess(ctx)
}

// DuePeriod returns the period the scheduler settles at the current time.
func (ps *PayrollScheduler) DuePeriod() payroll.Period {
	today := payroll.DateOf(ps.Now())
	return payroll.MonthPeriod(today.Year(), today.Month()).Previous()
}

// NextRunTime returns when the next scheduled check will occur.
func (ps *PayrollScheduler) NextRunTime() time.Time {
	return ps.Now().Add(ps.CheckInterval)
}

func (ps *PayrollScheduler) checkAndProcess(ctx context.Context) CheckResult {
	logger := ps.Handler.Logger
	period := ps.DuePeriod()

	logger.Debug("scheduler checking payroll runs", slog.String("period", period.String()))

	var result CheckResult
	for _, category := range scheduledCategories {
		done, err := ps.Handler.Store.HasRun(ctx, category, period)
		if err != nil {
			logger.Error("scheduler failed to check run status",
				slog.String("category", string(category)),
				slog.Any("error", err),
			)
			result.Failed++
			continue
		}
		if done {
			result.Skipped++
			continue
		}

		if _, err := ps.Handler.ExecuteRun(ctx, category, period); err != nil {
			result.Failed++
			continue
		}
		result.Processed++
	}

	if result.Processed > 0 || result.Failed > 0 {
		logger.Info("scheduler check completed",
			slog.String("period", period.String()),
			slog.Int("processed", result.Processed),
			slog.Int("skipped", result.Skipped),
			slog.Int("failed", result.Failed),
		)
	}
	return result
}
