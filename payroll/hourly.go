package payroll

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURLY EMPLOYEE - Paid per worked hour, overtime at a premium
// =============================================================================

// HourlyEmployee owns its time cards. Cards are kept in date order and a day
// can be recorded only once.
type HourlyEmployee struct {
	id         EmployeeID
	hourlyRate Salary
	timeCards  []TimeCard
}

// NewHourlyEmployee builds an hourly employee from its rate and time cards.
func NewHourlyEmployee(id EmployeeID, hourlyRate Salary, timeCards ...TimeCard) (*HourlyEmployee, error) {
	if hourlyRate.Unit != UnitHour {
		return nil, fmt.Errorf("%w: hourly employee %s paid per %s", ErrUnitMismatch, id, hourlyRate.Unit)
	}
	e := &HourlyEmployee{id: id, hourlyRate: hourlyRate}
	for _, tc := range timeCards {
		if err := e.AddTimeCard(tc); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *HourlyEmployee) ID() EmployeeID     { return e.id }
func (e *HourlyEmployee) Category() Category { return CategoryHourly }
func (e *HourlyEmployee) HourlyRate() Salary { return e.hourlyRate }

// TimeCards returns a copy of the owned time cards in date order.
func (e *HourlyEmployee) TimeCards() []TimeCard {
	return append([]TimeCard(nil), e.timeCards...)
}

// AddTimeCard appends a time card. A second card for the same day is rejected.
func (e *HourlyEmployee) AddTimeCard(tc TimeCard) error {
	if tc.Date().IsZero() {
		return &RecordError{EmployeeID: e.id, Reason: "time card without date", Err: ErrInvalidRecord}
	}
	i := sort.Search(len(e.timeCards), func(i int) bool {
		return !e.timeCards[i].Date().Before(tc.Date())
	})
	if i < len(e.timeCards) && e.timeCards[i].Date() == tc.Date() {
		return &RecordError{EmployeeID: e.id, Date: tc.Date(), Reason: "time card already recorded", Err: ErrDuplicateRecord}
	}
	e.timeCards = append(e.timeCards, TimeCard{})
	copy(e.timeCards[i+1:], e.timeCards[i:])
	e.timeCards[i] = tc
	return nil
}

// Payroll sums regular and overtime pay over the time cards in period.
// No time cards in the period is a zero payroll, not an error.
func (e *HourlyEmployee) Payroll(period Period, rules Rules) (Payroll, error) {
	if e == nil {
		return Payroll{}, fmt.Errorf("%w: nil hourly employee", ErrInvalidRecord)
	}
	if err := rules.Validate(); err != nil {
		return Payroll{}, err
	}
	overtimeRate := e.hourlyRate.Amount.Mul(rules.OvertimePremium)

	total := decimal.Zero
	for _, tc := range e.timeCards {
		if !period.Contains(tc.Date()) {
			continue
		}
		regular, overtime := tc.SplitHours(rules.StandardDayHours)
		regularPay, err := e.hourlyRate.Multiply(regular)
		if err != nil {
			return Payroll{}, err
		}
		total = total.Add(regularPay).Add(overtimeRate.Mul(decimal.NewFromInt(int64(overtime))))
	}

	return Payroll{EmployeeID: e.id, Period: period, Amount: rules.round(total)}, nil
}
