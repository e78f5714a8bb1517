package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SALARY - Monetary rate per time unit
// =============================================================================

type Unit string

const (
	UnitHour  Unit = "hour"
	UnitMonth Unit = "month"
)

func (u Unit) Valid() bool { return u == UnitHour || u == UnitMonth }

// Salary is a non-negative rate. Two salaries are equal when their numeric
// amounts and units are equal, however they were constructed:
// 100, 100.0 and 100.00 per hour are the same salary.
type Salary struct {
	Amount decimal.Decimal
	Unit   Unit
}

// NewSalary validates and builds a salary.
func NewSalary(amount decimal.Decimal, unit Unit) (Salary, error) {
	if !unit.Valid() {
		return Salary{}, fmt.Errorf("%w: unknown unit %q", ErrInvalidSalary, unit)
	}
	if amount.IsNegative() {
		return Salary{}, fmt.Errorf("%w: negative amount %s", ErrInvalidSalary, amount)
	}
	return Salary{Amount: amount, Unit: unit}, nil
}

// ParseSalary builds a salary from a decimal string such as "100.00".
func ParseSalary(amount string, unit Unit) (Salary, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Salary{}, fmt.Errorf("%w: %v", ErrInvalidSalary, err)
	}
	return NewSalary(d, unit)
}

// HourlySalary and MonthlySalary are shorthands for literal rates.
// They panic on a negative amount.
func HourlySalary(amount float64) Salary { return mustSalary(decimal.NewFromFloat(amount), UnitHour) }
func MonthlySalary(amount float64) Salary {
	return mustSalary(decimal.NewFromFloat(amount), UnitMonth)
}

func mustSalary(amount decimal.Decimal, unit Unit) Salary {
	s, err := NewSalary(amount, unit)
	if err != nil {
		panic(err)
	}
	return s
}

// Multiply returns the pay for the given number of hours.
func (s Salary) Multiply(hours int) (decimal.Decimal, error) {
	if s.Unit != UnitHour {
		return decimal.Zero, fmt.Errorf("%w: multiply by hours on a %s rate", ErrUnitMismatch, s.Unit)
	}
	return s.Amount.Mul(decimal.NewFromInt(int64(hours))), nil
}

// DailyRate divides a monthly rate by the number of working days in a month.
// The result keeps full decimal precision.
func (s Salary) DailyRate(workingDays int) (decimal.Decimal, error) {
	if s.Unit != UnitMonth {
		return decimal.Zero, fmt.Errorf("%w: daily rate of a %s rate", ErrUnitMismatch, s.Unit)
	}
	if workingDays <= 0 {
		return decimal.Zero, fmt.Errorf("working days must be positive, got %d", workingDays)
	}
	return s.Amount.Div(decimal.NewFromInt(int64(workingDays))), nil
}

func (s Salary) Equal(other Salary) bool {
	return s.Unit == other.Unit && s.Amount.Equal(other.Amount)
}

// Key is a canonical comparable form of the salary, equal for equal
// salaries. Use it as a map key.
func (s Salary) Key() string {
	return s.Amount.String() + "/" + string(s.Unit)
}

func (s Salary) String() string {
	return s.Amount.StringFixed(2) + "/" + string(s.Unit)
}
