package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/payroll/store"
)

func TestMemory_FiltersByCategoryAndHireDate(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	early, err := payroll.NewHourlyEmployee("emp-early", payroll.HourlySalary(100))
	require.NoError(t, err)
	late, err := payroll.NewHourlyEmployee("emp-late", payroll.HourlySalary(100))
	require.NoError(t, err)
	salaried, err := payroll.NewSalariedEmployee("emp-s", payroll.MonthlySalary(10000))
	require.NoError(t, err)

	m.AddHired(early, payroll.NewDate(2025, time.January, 6))
	m.AddHired(late, payroll.NewDate(2025, time.April, 1))
	m.Add(salaried)

	march := payroll.MonthPeriod(2025, time.March)
	hourly, err := m.AllEmployeesOf(ctx, payroll.CategoryHourly, march)
	require.NoError(t, err)
	require.Len(t, hourly, 1)
	assert.Equal(t, payroll.EmployeeID("emp-early"), hourly[0].ID())

	april := payroll.MonthPeriod(2025, time.April)
	hourly, err = m.AllEmployeesOf(ctx, payroll.CategoryHourly, april)
	require.NoError(t, err)
	assert.Len(t, hourly, 2)

	all, err := m.AllEmployeesOf(ctx, payroll.CategorySalaried, march)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestMemory_GetAndReplace(t *testing.T) {
	ctx := context.Background()
	m := store.NewMemory()

	_, err := m.Get(ctx, "missing")
	assert.ErrorIs(t, err, payroll.ErrEmployeeNotFound)

	first, _ := payroll.NewHourlyEmployee("emp-1", payroll.HourlySalary(100))
	second, _ := payroll.NewHourlyEmployee("emp-1", payroll.HourlySalary(120))
	m.Add(first)
	m.Add(second)

	got, err := m.Get(ctx, "emp-1")
	require.NoError(t, err)
	assert.True(t, got.(*payroll.HourlyEmployee).HourlyRate().Equal(payroll.HourlySalary(120)))

	all, err := m.AllEmployeesOf(ctx, payroll.CategoryHourly, payroll.MonthPeriod(2025, time.March))
	require.NoError(t, err)
	assert.Len(t, all, 1, "replaced in place")
}
