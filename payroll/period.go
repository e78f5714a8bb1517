package payroll

import (
	"fmt"
	"time"
)

// =============================================================================
// PERIOD - Settlement window for a payroll run
// =============================================================================

// Period is the settlement window a payroll is computed for.
// Both ends are inclusive. Periods are values: compare them with == or
// Equal, and use them as map keys.
//
// Examples:
//   - Calendar month March 2025: Mar 1 - Mar 31
//   - Custom window: Mar 16 - Apr 15
type Period struct {
	Start Date
	End   Date
}

// NewPeriod validates and builds a period.
func NewPeriod(start, end Date) (Period, error) {
	if start.IsZero() || end.IsZero() {
		return Period{}, fmt.Errorf("%w: missing start or end date", ErrInvalidPeriod)
	}
	if start.After(end) {
		return Period{}, fmt.Errorf("%w: %s after %s", ErrInvalidPeriod, start, end)
	}
	return Period{Start: start, End: end}, nil
}

// ParsePeriod builds a period from two dates in DateLayout.
func ParsePeriod(start, end string) (Period, error) {
	s, err := ParseDate(start)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	e, err := ParseDate(end)
	if err != nil {
		return Period{}, fmt.Errorf("%w: %v", ErrInvalidPeriod, err)
	}
	return NewPeriod(s, e)
}

// MonthPeriod returns the calendar month as a period.
func MonthPeriod(year int, month time.Month) Period {
	return Period{Start: StartOfMonth(year, month), End: EndOfMonth(year, month)}
}

// Contains returns true if the date is within [Start, End].
func (p Period) Contains(d Date) bool {
	return d.AfterOrEqual(p.Start) && d.BeforeOrEqual(p.End)
}

func (p Period) Equal(other Period) bool {
	return p.Start.Equal(other.Start) && p.End.Equal(other.End)
}

// Days returns all days in the period.
func (p Period) Days() []Date {
	var days []Date
	for current := p.Start; current.BeforeOrEqual(p.End); current = current.AddDays(1) {
		days = append(days, current)
	}
	return days
}

// Next returns the period of the same length that follows this one.
// Whole calendar months map to the next calendar month.
func (p Period) Next() Period {
	if p.isCalendarMonth() {
		start := p.Start.AddMonths(1)
		return MonthPeriod(start.Year(), start.Month())
	}
	start := p.End.AddDays(1)
	return Period{Start: start, End: start.AddDays(DaysBetween(p.Start, p.End))}
}

// Previous returns the period of the same length that precedes this one.
func (p Period) Previous() Period {
	if p.isCalendarMonth() {
		start := p.Start.AddMonths(-1)
		return MonthPeriod(start.Year(), start.Month())
	}
	end := p.Start.AddDays(-1)
	return Period{Start: end.AddDays(-DaysBetween(p.Start, p.End)), End: end}
}

func (p Period) isCalendarMonth() bool {
	return p == MonthPeriod(p.Start.Year(), p.Start.Month())
}

func (p Period) String() string {
	return "[" + p.Start.String() + ", " + p.End.String() + "]"
}
