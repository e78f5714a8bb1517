package payroll

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// =============================================================================
// CALCULATOR - Payroll run for one category over one period
// =============================================================================

// Calculator runs payroll for every employee of one category.
//
// A run is all-or-nothing: a directory failure is returned unchanged, and the
// first employee that cannot be calculated aborts the run. Results keep the
// order the directory returned employees in.
type Calculator struct {
	directory   Directory
	category    Category
	rules       Rules
	concurrency int
	logger      *slog.Logger
}

// Option configures a Calculator.
type Option func(*Calculator)

// WithRules replaces DefaultRules.
func WithRules(rules Rules) Option {
	return func(c *Calculator) { c.rules = rules }
}

// WithConcurrency computes up to n employees at once. n <= 1 is sequential,
// the default.
func WithConcurrency(n int) Option {
	return func(c *Calculator) { c.concurrency = n }
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Calculator) { c.logger = logger }
}

func NewCalculator(directory Directory, category Category, opts ...Option) *Calculator {
	c := &Calculator{
		directory: directory,
		category:  category,
		rules:     DefaultRules(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func NewHourlyCalculator(directory Directory, opts ...Option) *Calculator {
	return NewCalculator(directory, CategoryHourly, opts...)
}

func NewSalariedCalculator(directory Directory, opts ...Option) *Calculator {
	return NewCalculator(directory, CategorySalaried, opts...)
}

func (c *Calculator) Category() Category { return c.category }
func (c *Calculator) Rules() Rules       { return c.rules }

// Execute calculates the payroll of every employee of the calculator's
// category active in period.
func (c *Calculator) Execute(ctx context.Context, period Period) ([]Payroll, error) {
	if err := c.rules.Validate(); err != nil {
		return nil, err
	}
	if _, err := NewPeriod(period.Start, period.End); err != nil {
		return nil, err
	}

	employees, err := c.directory.AllEmployeesOf(ctx, c.category, period)
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "payroll run started",
		slog.String("category", string(c.category)),
		slog.String("period", period.String()),
		slog.Int("employees", len(employees)),
	)

	var results []Payroll
	if c.concurrency > 1 {
		results, err = c.executeConcurrent(ctx, employees, period)
	} else {
		results, err = c.executeSequential(ctx, employees, period)
	}
	if err != nil {
		c.logger.WarnContext(ctx, "payroll run failed",
			slog.String("category", string(c.category)),
			slog.String("period", period.String()),
			slog.Any("err", err),
		)
		return nil, err
	}
	return results, nil
}

func (c *Calculator) executeSequential(ctx context.Context, employees []Employee, period Period) ([]Payroll, error) {
	results := make([]Payroll, 0, len(employees))
	for _, e := range employees {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		p, err := c.calculate(e, period)
		if err != nil {
			return nil, err
		}
		results = append(results, p)
	}
	return results, nil
}

func (c *Calculator) executeConcurrent(ctx context.Context, employees []Employee, period Period) ([]Payroll, error) {
	results := make([]Payroll, len(employees))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)
	for i, e := range employees {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := c.calculate(e, period)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (c *Calculator) calculate(e Employee, period Period) (Payroll, error) {
	if isNilEmployee(e) {
		return Payroll{}, &EmployeeError{Err: fmt.Errorf("%w: directory returned a nil employee", ErrInvalidRecord)}
	}
	if e.Category() != c.category {
		return Payroll{}, &EmployeeError{
			EmployeeID: e.ID(),
			Err:        fmt.Errorf("%w: %s in %s run", ErrCategoryMismatch, e.Category(), c.category),
		}
	}
	p, err := e.Payroll(period, c.rules)
	if err != nil {
		return Payroll{}, &EmployeeError{EmployeeID: e.ID(), Err: err}
	}
	return p, nil
}

func isNilEmployee(e Employee) bool {
	switch v := e.(type) {
	case nil:
		return true
	case *HourlyEmployee:
		return v == nil
	case *SalariedEmployee:
		return v == nil
	}
	return false
}
