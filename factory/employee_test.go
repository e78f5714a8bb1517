package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

const bruceJSON = `{
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
}`

func TestParseEmployee_Hourly(t *testing.T) {
	f := factory.NewEmployeeFactory()

	d, err := f.ParseEmployee(bruceJSON)
	require.NoError(t, err)

	assert.Equal(t, payroll.EmployeeID("emp200109101000001"), d.ID)
	assert.Equal(t, payroll.CategoryHourly, d.Category)
	assert.True(t, d.Rate.Equal(payroll.HourlySalary(100)))
	assert.Len(t, d.TimeCards, 2)

	e, err := d.Employee()
	require.NoError(t, err)
	p, err := e.Payroll(payroll.MonthPeriod(2025, 3), payroll.DefaultRules())
	require.NoError(t, err)
	assert.Equal(t, "1900.00", p.Amount.StringFixed(2))
}

func TestParseEmployee_SalariedWithNumericRate(t *testing.T) {
	f := factory.NewEmployeeFactory()

	d, err := f.ParseEmployee(`{
		"id": "emp201110101000003",
		"name": "Steve",
		"category": "salaried",
		"rate": 10000,
		"hire_date": "2011-10-10",
		"absences": [{"date": "2025-03-10", "kind": "unpaid_leave"}]
	}`)
	require.NoError(t, err)

	assert.Equal(t, payroll.UnitMonth, d.Rate.Unit)
	require.Len(t, d.Absences, 1)
	assert.False(t, d.Absences[0].IsPaidLeave())
}

func TestParseEmployee_Invalid(t *testing.T) {
	f := factory.NewEmployeeFactory()

	tests := []struct {
		name string
		json string
		want error
	}{
		{"unknown category", `{"id":"e","category":"contractor","rate":"1","hire_date":"2025-01-01"}`, payroll.ErrInvalidCategory},
		{"negative rate", `{"id":"e","category":"hourly","rate":"-1","hire_date":"2025-01-01"}`, payroll.ErrInvalidSalary},
		{"missing id", `{"category":"hourly","rate":"1","hire_date":"2025-01-01"}`, payroll.ErrInvalidRecord},
		{"bad hire date", `{"id":"e","category":"hourly","rate":"1","hire_date":"soon"}`, payroll.ErrInvalidRecord},
		{"negative hours", `{"id":"e","category":"hourly","rate":"1","hire_date":"2025-01-01","time_cards":[{"date":"2025-03-03","work_hours":-2}]}`, payroll.ErrInvalidRecord},
		{"duplicate day", `{"id":"e","category":"hourly","rate":"1","hire_date":"2025-01-01","time_cards":[{"date":"2025-03-03","work_hours":2},{"date":"2025-03-03","work_hours":3}]}`, payroll.ErrDuplicateRecord},
		{"absence kind", `{"id":"e","category":"salaried","rate":"1","hire_date":"2025-01-01","absences":[{"date":"2025-03-03","kind":"holiday"}]}`, payroll.ErrInvalidRecord},
		{"cards on salaried", `{"id":"e","category":"salaried","rate":"1","hire_date":"2025-01-01","time_cards":[{"date":"2025-03-03","work_hours":2}]}`, payroll.ErrCategoryMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.ParseEmployee(tt.json)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseEmployee_MalformedJSON(t *testing.T) {
	_, err := factory.NewEmployeeFactory().ParseEmployee(`{"id":`)
	assert.Error(t, err)
}

func TestToJSON_RoundTrip(t *testing.T) {
	f := factory.NewEmployeeFactory()
	d, err := f.ParseEmployee(bruceJSON)
	require.NoError(t, err)

	again, err := f.FromJSON(f.ToJSON(d))
	require.NoError(t, err)

	assert.Equal(t, d.ID, again.ID)
	assert.True(t, d.Rate.Equal(again.Rate))
	assert.Equal(t, d.HireDate, again.HireDate)
	assert.Equal(t, d.TimeCards, again.TimeCards)
}

func TestParseEmployees_Array(t *testing.T) {
	defs, err := factory.NewEmployeeFactory().ParseEmployees("[" + bruceJSON + "]")
	require.NoError(t, err)
	assert.Len(t, defs, 1)
}
