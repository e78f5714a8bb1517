/*
Package payroll provides the payroll calculation engine.

PURPOSE:

	Turns attendance records (time cards, absences) and a settlement period
	into a gross pay amount per employee, and calculates payroll for a whole
	category of the workforce over a period.

KEY CONCEPTS IN THIS FILE (types.go):
  - EmployeeID / Category: identity and compensation scheme of an employee
  - Employee: the capability both compensation schemes implement
  - Payroll: the result of one calculation
  - Directory: the lookup the calculator needs from the outside world

COMPENSATION SCHEMES:
 1. Hourly:   rate x regular hours + rate x premium x overtime hours
 2. Salaried: monthly rate - daily rate x unpaid absence days (never < 0)

DESIGN PRINCIPLES:
 1. Precision: money is decimal.Decimal, rounded once at the end
 2. Ownership: records belong to exactly one employee and are never shared
 3. Purity: a calculation reads only in-memory data; the directory is the
    single I/O point and is injected

USAGE:

	calc := payroll.NewHourlyCalculator(directory)
	results, err := calc.Execute(ctx, payroll.MonthPeriod(2025, time.March))

SEE ALSO:
  - hourly.go, salaried.go: The two compensation schemes
  - calculator.go: Orchestration over a directory
  - rules.go: Standard day, overtime premium, working days per month
*/
package payroll

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// IDENTIFIERS
// =============================================================================

type EmployeeID string

// Category is the compensation scheme of an employee.
type Category string

const (
	CategoryHourly   Category = "hourly"
	CategorySalaried Category = "salaried"
)

func ParseCategory(s string) (Category, error) {
	switch c := Category(s); c {
	case CategoryHourly, CategorySalaried:
		return c, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, s)
	}
}

// RateUnit returns the salary unit employees of this category are paid in.
func (c Category) RateUnit() Unit {
	if c == CategoryHourly {
		return UnitHour
	}
	return UnitMonth
}

// =============================================================================
// EMPLOYEE - Capability shared by both compensation schemes
// =============================================================================

// Employee computes its own payroll for a settlement period.
type Employee interface {
	ID() EmployeeID
	Category() Category

	// Payroll computes the pay for period under rules. Calling it twice with
	// the same arguments yields the same result.
	Payroll(period Period, rules Rules) (Payroll, error)
}

// Compile-time checks
var (
	_ Employee = (*HourlyEmployee)(nil)
	_ Employee = (*SalariedEmployee)(nil)
)

// =============================================================================
// PAYROLL - Calculation result
// =============================================================================

// Payroll is the computed pay of one employee for one period.
type Payroll struct {
	EmployeeID EmployeeID
	Period     Period
	Amount     decimal.Decimal
}

func (p Payroll) String() string {
	return fmt.Sprintf("%s %s: %s", p.EmployeeID, p.Period, p.Amount.StringFixed(2))
}

// =============================================================================
// DIRECTORY - Where employees come from
// =============================================================================

// Directory returns the employees of a category that take part in the
// payroll run for a period, with their time cards or absences attached.
// The calculator never issues secondary lookups.
type Directory interface {
	AllEmployeesOf(ctx context.Context, category Category, period Period) ([]Employee, error)
}

// DirectoryFunc adapts a function to the Directory interface.
type DirectoryFunc func(ctx context.Context, category Category, period Period) ([]Employee, error)

func (f DirectoryFunc) AllEmployeesOf(ctx context.Context, category Category, period Period) ([]Employee, error) {
	return f(ctx, category, period)
}
