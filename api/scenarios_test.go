/*
scenarios_test.go - Tests for demo scenarios

Each scenario is loaded for a fixed month and run through the payroll
endpoints; the totals are the ones documented in scenarios.go.
*/
package api

import (
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/warp/payroll-engine/payroll"
)

var march = RunPayrollRequest{Start: "2025-03-01", End: "2025-03-31"}

func mustLoadScenario(t *testing.T, router http.Handler, id string) {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: id, Month: "2025-03"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func runPayroll(t *testing.T, router http.Handler, category payroll.Category, period RunPayrollRequest) RunDTO {
	t.Helper()
	rec := do(t, router, http.MethodPost, "/api/payrolls/"+string(category), period)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[RunDTO](t, rec)
}

func TestScenario_MixedWorkforce(t *testing.T) {
	// GIVEN: The mixed workforce loaded for March 2025
	_, router := setupTestServer(t)
	mustLoadScenario(t, router, "mixed-workforce")

	rec := do(t, router, http.MethodGet, "/api/employees", nil)
	assert.Len(t, decode[[]EmployeeDTO](t, rec), 3)

	// WHEN: Running both categories
	hourly := runPayroll(t, router, payroll.CategoryHourly, march)
	salaried := runPayroll(t, router, payroll.CategorySalaried, march)

	// THEN: Hourly employees in hire date order
	require.Len(t, hourly.Payrolls, 2)
	assert.Equal(t, PayrollDTO{EmployeeID: "emp200109101000001", Amount: "4900.00"}, hourly.Payrolls[0])
	assert.Equal(t, PayrollDTO{EmployeeID: "emp200910101000002", Amount: "4050.00"}, hourly.Payrolls[1])
	assert.Equal(t, "8950.00", hourly.Total)

	// AND: Two unpaid days deducted, paid leave ignored
	require.Len(t, salaried.Payrolls, 1)
	assert.Equal(t, "9090.91", salaried.Payrolls[0].Amount)
}

func TestScenario_MixedWorkforce_OtherMonthIsEmpty(t *testing.T) {
	_, router := setupTestServer(t)
	mustLoadScenario(t, router, "mixed-workforce")

	run := runPayroll(t, router, payroll.CategoryHourly, RunPayrollRequest{Start: "2025-04-01", End: "2025-04-30"})

	assert.Equal(t, 2, run.Employees, "active employees without time cards are paid zero")
	assert.Equal(t, "0.00", run.Total)
}

func TestScenario_OvertimeDay(t *testing.T) {
	_, router := setupTestServer(t)
	mustLoadScenario(t, router, "overtime-day")

	run := runPayroll(t, router, payroll.CategoryHourly, march)

	require.Len(t, run.Payrolls, 1)
	assert.Equal(t, "1100.00", run.Payrolls[0].Amount)
}

func TestScenario_UnpaidLeave(t *testing.T) {
	_, router := setupTestServer(t)
	mustLoadScenario(t, router, "unpaid-leave")

	run := runPayroll(t, router, payroll.CategorySalaried, march)

	require.Len(t, run.Payrolls, 1)
	assert.Equal(t, "9545.45", run.Payrolls[0].Amount)
}

func TestScenario_LoadReplacesPreviousData(t *testing.T) {
	// GIVEN: A scenario and a manual employee
	_, router := setupTestServer(t)
	mustLoadScenario(t, router, "mixed-workforce")
	do(t, router, http.MethodPost, "/api/employees", dianaJSON)

	// WHEN: Loading another scenario
	mustLoadScenario(t, router, "overtime-day")

	// THEN: Only the new workforce remains
	rec := do(t, router, http.MethodGet, "/api/employees", nil)
	list := decode[[]EmployeeDTO](t, rec)
	require.Len(t, list, 1)
	assert.Equal(t, "emp202001011000010", list[0].ID)

	rec = do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.Equal(t, "overtime-day", decode[ScenarioDTO](t, rec).ID)
}

func TestScenario_ListAndErrors(t *testing.T) {
	_, router := setupTestServer(t)

	rec := do(t, router, http.MethodGet, "/api/scenarios", nil)
	assert.Len(t, decode[[]ScenarioDTO](t, rec), len(scenarios))

	rec = do(t, router, http.MethodPost, "/api/scenarios/load", LoadScenarioRequest{ScenarioID: "nope"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, router, http.MethodPost, "/api/scenarios/load",
		LoadScenarioRequest{ScenarioID: "overtime-day", Month: "March"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestScenario_Reset(t *testing.T) {
	_, router := setupTestServer(t)
	mustLoadScenario(t, router, "unpaid-leave")
	runPayroll(t, router, payroll.CategorySalaried, march)

	rec := do(t, router, http.MethodPost, "/api/scenarios/reset", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, router, http.MethodGet, "/api/employees", nil)
	assert.Empty(t, decode[[]EmployeeDTO](t, rec))
	rec = do(t, router, http.MethodGet, "/api/payrolls/runs", nil)
	assert.Empty(t, decode[[]RunDTO](t, rec))
	rec = do(t, router, http.MethodGet, "/api/scenarios/current", nil)
	assert.JSONEq(t, "null", rec.Body.String())
}

func TestScenario_ResetAndLoadConcurrently_StayConsistent(t *testing.T) {
	// GIVEN: A server with a scenario loaded
	h, router := setupTestServer(t)
	mustLoadScenario(t, router, "overtime-day")

	// WHEN: Resets and loads race each other
	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			do(t, router, http.MethodPost, "/api/scenarios/reset", nil)
		}()
		go func() {
			defer wg.Done()
			do(t, router, http.MethodPost, "/api/scenarios/load",
				LoadScenarioRequest{ScenarioID: "unpaid-leave", Month: "2025-03"})
		}()
	}
	wg.Wait()

	// THEN: The current scenario matches what is stored
	rec := do(t, router, http.MethodGet, "/api/employees", nil)
	employees := decode[[]EmployeeDTO](t, rec)

	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	switch current {
	case "":
		assert.Empty(t, employees)
	case "unpaid-leave":
		require.Len(t, employees, 1)
		assert.Equal(t, "Barry", employees[0].Name)
	default:
		t.Fatalf("unexpected current scenario %q", current)
	}
}

func TestScenarioEmployees_AllValid(t *testing.T) {
	h, _ := setupTestServer(t)
	month := payroll.NewDate(2024, 2, 1)

	for _, s := range scenarios {
		employees, ok := scenarioEmployees(s.ID, month)
		require.True(t, ok, s.ID)
		for _, ej := range employees {
			_, err := h.Factory.FromJSON(ej)
			assert.NoError(t, err, "%s/%s", s.ID, ej.ID)
		}
	}
}
