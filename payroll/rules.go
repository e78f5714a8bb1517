package payroll

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Default rule values. They are the business constants of the calculation
// and are overridable through Rules (see config.Load for the env names).
const (
	DefaultStandardDayHours    = 8
	DefaultWorkingDaysPerMonth = 22
	DefaultAmountScale         = 2
)

// DefaultOvertimePremium is the multiplier applied to the hourly rate for
// hours beyond the standard day.
var DefaultOvertimePremium = decimal.RequireFromString("1.5")

// Rules holds the named constants of the payroll calculation.
//
// Rounding: intermediate values (daily rate, overtime rate) keep full decimal
// precision; only the final payroll amount is rounded to AmountScale places,
// half away from zero (decimal.Round).
type Rules struct {
	// StandardDayHours is the threshold between regular and overtime hours.
	StandardDayHours int

	// OvertimePremium multiplies the hourly rate for overtime hours.
	OvertimePremium decimal.Decimal

	// WorkingDaysPerMonth divides a monthly rate into a daily rate.
	WorkingDaysPerMonth int

	// AmountScale is the number of decimal places of a payroll amount.
	AmountScale int32
}

func DefaultRules() Rules {
	return Rules{
		StandardDayHours:    DefaultStandardDayHours,
		OvertimePremium:     DefaultOvertimePremium,
		WorkingDaysPerMonth: DefaultWorkingDaysPerMonth,
		AmountScale:         DefaultAmountScale,
	}
}

// Validate rejects rules no calculation can run with.
func (r Rules) Validate() error {
	if r.StandardDayHours <= 0 {
		return fmt.Errorf("standard day hours must be positive, got %d", r.StandardDayHours)
	}
	if r.OvertimePremium.LessThan(decimal.NewFromInt(1)) {
		return fmt.Errorf("overtime premium must be at least 1, got %s", r.OvertimePremium)
	}
	if r.WorkingDaysPerMonth <= 0 {
		return fmt.Errorf("working days per month must be positive, got %d", r.WorkingDaysPerMonth)
	}
	if r.AmountScale < 0 {
		return fmt.Errorf("amount scale must not be negative, got %d", r.AmountScale)
	}
	return nil
}

func (r Rules) round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(r.AmountScale)
}
