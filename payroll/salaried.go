package payroll

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// =============================================================================
// SALARIED EMPLOYEE - Fixed monthly pay, reduced for unpaid absences
// =============================================================================

// SalariedEmployee owns its absences, kept in date order, one per day.
type SalariedEmployee struct {
	id          EmployeeID
	monthlyRate Salary
	absences    []Absence
}

// NewSalariedEmployee builds a salaried employee from its rate and absences.
func NewSalariedEmployee(id EmployeeID, monthlyRate Salary, absences ...Absence) (*SalariedEmployee, error) {
	if monthlyRate.Unit != UnitMonth {
		return nil, fmt.Errorf("%w: salaried employee %s paid per %s", ErrUnitMismatch, id, monthlyRate.Unit)
	}
	e := &SalariedEmployee{id: id, monthlyRate: monthlyRate}
	for _, a := range absences {
		if err := e.AddAbsence(a); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func (e *SalariedEmployee) ID() EmployeeID      { return e.id }
func (e *SalariedEmployee) Category() Category  { return CategorySalaried }
func (e *SalariedEmployee) MonthlyRate() Salary { return e.monthlyRate }

// Absences returns a copy of the owned absences in date order.
func (e *SalariedEmployee) Absences() []Absence {
	return append([]Absence(nil), e.absences...)
}

// AddAbsence appends an absence. A second absence on the same day is rejected.
func (e *SalariedEmployee) AddAbsence(a Absence) error {
	if a.Date().IsZero() {
		return &RecordError{EmployeeID: e.id, Reason: "absence without date", Err: ErrInvalidRecord}
	}
	i := sort.Search(len(e.absences), func(i int) bool {
		return !e.absences[i].Date().Before(a.Date())
	})
	if i < len(e.absences) && e.absences[i].Date() == a.Date() {
		return &RecordError{EmployeeID: e.id, Date: a.Date(), Reason: "absence already recorded", Err: ErrDuplicateRecord}
	}
	e.absences = append(e.absences, Absence{})
	copy(e.absences[i+1:], e.absences[i:])
	e.absences[i] = a
	return nil
}

// UnpaidAbsencesIn counts the unpaid absence days inside period.
func (e *SalariedEmployee) UnpaidAbsencesIn(period Period) int {
	n := 0
	for _, a := range e.absences {
		if period.Contains(a.Date()) && !a.IsPaidLeave() {
			n++
		}
	}
	return n
}

// Payroll deducts a daily rate per unpaid absence from the monthly rate.
// The period is treated as one month whatever its length. Pay never goes
// below zero.
func (e *SalariedEmployee) Payroll(period Period, rules Rules) (Payroll, error) {
	if e == nil {
		return Payroll{}, fmt.Errorf("%w: nil salaried employee", ErrInvalidRecord)
	}
	if err := rules.Validate(); err != nil {
		return Payroll{}, err
	}
	amount := e.monthlyRate.Amount

	if unpaid := e.UnpaidAbsencesIn(period); unpaid > 0 {
		dailyRate, err := e.monthlyRate.DailyRate(rules.WorkingDaysPerMonth)
		if err != nil {
			return Payroll{}, err
		}
		amount = amount.Sub(dailyRate.Mul(decimal.NewFromInt(int64(unpaid))))
	}

	if amount.IsNegative() {
		amount = decimal.Zero
	}
	return Payroll{EmployeeID: e.id, Period: period, Amount: rules.round(amount)}, nil
}
