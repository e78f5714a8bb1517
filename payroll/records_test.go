package payroll_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

func timeCard(t *testing.T, d payroll.Date, hours int) payroll.TimeCard {
	t.Helper()
	tc, err := payroll.NewTimeCard(d, hours)
	require.NoError(t, err)
	return tc
}

func absence(t *testing.T, d payroll.Date, kind payroll.AbsenceKind) payroll.Absence {
	t.Helper()
	a, err := payroll.NewAbsence(d, kind)
	require.NoError(t, err)
	return a
}

// =============================================================================
// TIME CARD TESTS
// =============================================================================

func TestTimeCard_UpToStandardDay_NoOvertime(t *testing.T) {
	for hours := 0; hours <= 8; hours++ {
		tc := timeCard(t, day(3), hours)

		assert.Equal(t, hours, tc.RegularWorkHours())
		assert.Equal(t, 0, tc.OvertimeWorkHours())
		assert.False(t, tc.IsOvertime())
	}
}

func TestTimeCard_BeyondStandardDay_Overtime(t *testing.T) {
	for hours := 9; hours <= 24; hours++ {
		tc := timeCard(t, day(3), hours)

		assert.Equal(t, 8, tc.RegularWorkHours())
		assert.Equal(t, hours-8, tc.OvertimeWorkHours())
		assert.True(t, tc.IsOvertime())
	}
}

func TestTimeCard_SplitHours_CustomThreshold(t *testing.T) {
	tc := timeCard(t, day(3), 9)

	regular, overtime := tc.SplitHours(7)
	assert.Equal(t, 7, regular)
	assert.Equal(t, 2, overtime)
}

func TestTimeCard_InvalidRecords(t *testing.T) {
	_, err := payroll.NewTimeCard(day(3), -1)
	assert.ErrorIs(t, err, payroll.ErrInvalidRecord)

	var recErr *payroll.RecordError
	require.ErrorAs(t, err, &recErr)
	assert.Equal(t, day(3), recErr.Date)

	_, err = payroll.NewTimeCard(payroll.Date{}, 8)
	assert.ErrorIs(t, err, payroll.ErrInvalidRecord)
}

// =============================================================================
// ABSENCE TESTS
// =============================================================================

func TestAbsence_PaidLeave(t *testing.T) {
	assert.True(t, absence(t, day(4), payroll.PaidLeave).IsPaidLeave())
	assert.False(t, absence(t, day(4), payroll.UnpaidLeave).IsPaidLeave())
}

func TestAbsence_InvalidRecords(t *testing.T) {
	_, err := payroll.NewAbsence(payroll.Date{}, payroll.PaidLeave)
	assert.ErrorIs(t, err, payroll.ErrInvalidRecord)

	_, err = payroll.NewAbsence(day(4), "sabbatical")
	assert.ErrorIs(t, err, payroll.ErrInvalidRecord)
}

// =============================================================================
// SALARY TESTS
// =============================================================================

func TestSalary_EqualityByNumericValue(t *testing.T) {
	a := payroll.HourlySalary(100.00)
	b, err := payroll.ParseSalary("100.00", payroll.UnitHour)
	require.NoError(t, err)
	c, err := payroll.NewSalary(decimal.New(1000, -1), payroll.UnitHour)
	require.NoError(t, err)

	assert.True(t, a.Equal(b))
	assert.True(t, b.Equal(c))
	assert.Equal(t, a.Key(), b.Key())
	assert.Equal(t, b.Key(), c.Key())

	rates := map[string]payroll.Salary{a.Key(): a}
	_, found := rates[c.Key()]
	assert.True(t, found, "equal salaries hash identically")
}

func TestSalary_DifferentAmountsOrUnits_NotEqual(t *testing.T) {
	assert.False(t, payroll.HourlySalary(100).Equal(payroll.HourlySalary(100.01)))
	assert.False(t, payroll.HourlySalary(100).Equal(payroll.MonthlySalary(100)))
}

func TestSalary_NegativeAmount_Rejected(t *testing.T) {
	_, err := payroll.ParseSalary("-1", payroll.UnitHour)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalary)

	_, err = payroll.ParseSalary("abc", payroll.UnitHour)
	assert.ErrorIs(t, err, payroll.ErrInvalidSalary)

	_, err = payroll.NewSalary(decimal.NewFromInt(1), "week")
	assert.ErrorIs(t, err, payroll.ErrInvalidSalary)
}

func TestSalary_Multiply(t *testing.T) {
	pay, err := payroll.HourlySalary(100).Multiply(8)
	require.NoError(t, err)
	assert.True(t, pay.Equal(decimal.NewFromInt(800)), "got %s", pay)

	_, err = payroll.MonthlySalary(10000).Multiply(8)
	assert.ErrorIs(t, err, payroll.ErrUnitMismatch)
}

func TestSalary_DailyRate(t *testing.T) {
	rate, err := payroll.MonthlySalary(10000).DailyRate(22)
	require.NoError(t, err)
	assert.Equal(t, "454.545", rate.StringFixed(3))

	_, err = payroll.HourlySalary(100).DailyRate(22)
	assert.ErrorIs(t, err, payroll.ErrUnitMismatch)
}
