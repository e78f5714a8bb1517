/*
Package factory provides JSON to Go employee conversion.

PURPOSE:

	Converts JSON employee definitions into payroll.Employee aggregates and
	their records. The API uses it for imports and the demo scenarios use it
	to describe their workforce.

JSON SCHEMA:

	{
	  "id": "emp200109101000001",
	  "name": "Bruce",
	  "email": "bruce@payroll.com",
	  "category": "hourly",
	  "rate": "100.00",
	  "hire_date": "2001-09-10",
	  "time_cards": [
	    {"date": "2025-03-03", "work_hours": 8},
	    {"date": "2025-03-04", "work_hours": 10}
	  ]
	}

	Salaried employees carry "absences" instead:
	    {"date": "2025-03-10", "kind": "unpaid_leave"}

	Rates are decimal strings (a JSON number is accepted too). The rate unit
	follows the category: per hour for hourly, per month for salaried.

KEY FEATURES:
  - Validates every record through the payroll constructors
  - Rejects time cards on salaried employees and vice versa
  - Round-trips: ToJSON(Build(x)) describes the same employee

SEE ALSO:
  - payroll/hourly.go, payroll/salaried.go: Aggregates built here
  - api/scenarios.go: Demo workforce defined with this factory
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// EmployeeJSON is the JSON representation of an employee.
type EmployeeJSON struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Email     string          `json:"email,omitempty"`
	Category  string          `json:"category"`
	Rate      decimal.Decimal `json:"rate"`
	HireDate  string          `json:"hire_date"`
	TimeCards []TimeCardJSON  `json:"time_cards,omitempty"`
	Absences  []AbsenceJSON   `json:"absences,omitempty"`
}

// TimeCardJSON represents one worked day.
type TimeCardJSON struct {
	Date      string `json:"date"`
	WorkHours int    `json:"work_hours"`
}

// AbsenceJSON represents one day off.
type AbsenceJSON struct {
	Date string `json:"date"`
	Kind string `json:"kind"` // paid_leave, unpaid_leave
}

// =============================================================================
// DEFINITION - Validated employee with its records
// =============================================================================

// Definition is a validated employee definition.
type Definition struct {
	ID        payroll.EmployeeID
	Name      string
	Email     string
	Category  payroll.Category
	Rate      payroll.Salary
	HireDate  payroll.Date
	TimeCards []payroll.TimeCard
	Absences  []payroll.Absence
}

// Employee builds the payroll aggregate with all records attached.
func (d *Definition) Employee() (payroll.Employee, error) {
	switch d.Category {
	case payroll.CategoryHourly:
		return payroll.NewHourlyEmployee(d.ID, d.Rate, d.TimeCards...)
	case payroll.CategorySalaried:
		return payroll.NewSalariedEmployee(d.ID, d.Rate, d.Absences...)
	default:
		return nil, fmt.Errorf("%w: %q", payroll.ErrInvalidCategory, d.Category)
	}
}

// =============================================================================
// EMPLOYEE FACTORY
// =============================================================================

// EmployeeFactory converts JSON employees to payroll definitions.
type EmployeeFactory struct{}

// NewEmployeeFactory creates a new employee factory.
func NewEmployeeFactory() *EmployeeFactory {
	return &EmployeeFactory{}
}

// ParseEmployee parses a JSON string into a Definition.
func (f *EmployeeFactory) ParseEmployee(jsonStr string) (*Definition, error) {
	var ej EmployeeJSON
	if err := json.Unmarshal([]byte(jsonStr), &ej); err != nil {
		return nil, fmt.Errorf("failed to parse employee JSON: %w", err)
	}
	return f.FromJSON(ej)
}

// ParseEmployees parses a JSON array of employees.
func (f *EmployeeFactory) ParseEmployees(jsonStr string) ([]*Definition, error) {
	var ejs []EmployeeJSON
	if err := json.Unmarshal([]byte(jsonStr), &ejs); err != nil {
		return nil, fmt.Errorf("failed to parse employees JSON: %w", err)
	}

	defs := make([]*Definition, 0, len(ejs))
	for _, ej := range ejs {
		d, err := f.FromJSON(ej)
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return defs, nil
}

// FromJSON validates EmployeeJSON and converts it to a Definition.
func (f *EmployeeFactory) FromJSON(ej EmployeeJSON) (*Definition, error) {
	if ej.ID == "" {
		return nil, fmt.Errorf("%w: employee without id", payroll.ErrInvalidRecord)
	}
	category, err := payroll.ParseCategory(ej.Category)
	if err != nil {
		return nil, err
	}
	rate, err := payroll.NewSalary(ej.Rate, category.RateUnit())
	if err != nil {
		return nil, err
	}
	hireDate, err := payroll.ParseDate(ej.HireDate)
	if err != nil {
		return nil, fmt.Errorf("%w: employee %s: %v", payroll.ErrInvalidRecord, ej.ID, err)
	}

	d := &Definition{
		ID:       payroll.EmployeeID(ej.ID),
		Name:     ej.Name,
		Email:    ej.Email,
		Category: category,
		Rate:     rate,
		HireDate: hireDate,
	}

	if category == payroll.CategorySalaried && len(ej.TimeCards) > 0 {
		return nil, fmt.Errorf("%w: salaried employee %s has time cards", payroll.ErrCategoryMismatch, ej.ID)
	}
	if category == payroll.CategoryHourly && len(ej.Absences) > 0 {
		return nil, fmt.Errorf("%w: hourly employee %s has absences", payroll.ErrCategoryMismatch, ej.ID)
	}

	for _, tj := range ej.TimeCards {
		tc, err := ParseTimeCard(tj)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", ej.ID, err)
		}
		d.TimeCards = append(d.TimeCards, tc)
	}
	for _, aj := range ej.Absences {
		a, err := ParseAbsence(aj)
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", ej.ID, err)
		}
		d.Absences = append(d.Absences, a)
	}

	// Surfaces duplicate days before anything is persisted.
	if _, err := d.Employee(); err != nil {
		return nil, err
	}
	return d, nil
}

// ParseTimeCard validates a JSON time card.
func ParseTimeCard(tj TimeCardJSON) (payroll.TimeCard, error) {
	date, err := payroll.ParseDate(tj.Date)
	if err != nil {
		return payroll.TimeCard{}, fmt.Errorf("%w: %v", payroll.ErrInvalidRecord, err)
	}
	return payroll.NewTimeCard(date, tj.WorkHours)
}

// ParseAbsence validates a JSON absence.
func ParseAbsence(aj AbsenceJSON) (payroll.Absence, error) {
	date, err := payroll.ParseDate(aj.Date)
	if err != nil {
		return payroll.Absence{}, fmt.Errorf("%w: %v", payroll.ErrInvalidRecord, err)
	}
	return payroll.NewAbsence(date, payroll.AbsenceKind(aj.Kind))
}

// ToJSON converts a Definition back to EmployeeJSON.
func (f *EmployeeFactory) ToJSON(d *Definition) EmployeeJSON {
	ej := EmployeeJSON{
		ID:       string(d.ID),
		Name:     d.Name,
		Email:    d.Email,
		Category: string(d.Category),
		Rate:     d.Rate.Amount,
		HireDate: d.HireDate.String(),
	}
	for _, tc := range d.TimeCards {
		ej.TimeCards = append(ej.TimeCards, TimeCardJSON{Date: tc.Date().String(), WorkHours: tc.WorkHours()})
	}
	for _, a := range d.Absences {
		ej.Absences = append(ej.Absences, AbsenceJSON{Date: a.Date().String(), Kind: string(a.Kind())})
	}
	return ej
}
