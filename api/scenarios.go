/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built workforces that populate the database with realistic
	data for demos. Each scenario is a list of factory employee definitions
	whose records fall in one chosen month.

AVAILABLE SCENARIOS:

	mixed-workforce:  Two hourly employees with a week of time cards and a
	                  salaried employee with paid and unpaid leave
	overtime-day:     One hourly employee working a single 10 hour day
	unpaid-leave:     One salaried employee with a single unpaid day off

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Build employee JSON for the requested month
 3. Validate through the employee factory
 4. Save employees and their records

USAGE VIA API:

	POST /api/scenarios/load
	{"scenario_id": "mixed-workforce", "month": "2025-03"}

	Then run the month:
	POST /api/payrolls/hourly
	{"start": "2025-03-01", "end": "2025-03-31"}

EXPECTED PAYROLLS (default rules):

	mixed-workforce:  Bruce 4900.00, Clark 4050.00, Diana 9090.91
	overtime-day:     1100.00
	unpaid-leave:     9545.45

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Payroll run endpoints
  - factory/employee.go: Employee JSON definitions
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

var scenarios = []ScenarioDTO{
	{
		ID:          "mixed-workforce",
		Name:        "Mixed Workforce",
		Description: "Two hourly employees with overtime and a salaried employee with paid and unpaid leave",
	},
	{
		ID:          "overtime-day",
		Name:        "Overtime Day",
		Description: "Hourly employee at 100.00/hour working one 10 hour day",
	},
	{
		ID:          "unpaid-leave",
		Name:        "Unpaid Leave",
		Description: "Salaried employee at 10000.00/month with one unpaid day off",
	},
}

// scenarioMonthLayout is the format of LoadScenarioRequest.Month.
const scenarioMonthLayout = "2006-01"

// ListScenarios returns available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// GetCurrentScenario returns the currently loaded scenario, if any.
func (h *Handler) GetCurrentScenario(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	current := h.currentScenario
	h.mu.Unlock()

	for _, s := range scenarios {
		if s.ID == current {
			writeJSON(w, http.StatusOK, s)
			return
		}
	}
	writeJSON(w, http.StatusOK, nil)
}

// LoadScenario resets the database and loads a predefined scenario.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	today := payroll.Today()
	month := payroll.StartOfMonth(today.Year(), today.Month()).AddMonths(-1)
	if req.Month != "" {
		t, err := time.Parse(scenarioMonthLayout, req.Month)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid month format (use YYYY-MM)", err)
			return
		}
		month = payroll.DateOf(t)
	}

	employees, ok := scenarioEmployees(req.ScenarioID, month)
	if !ok {
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}

	if err := h.loadScenario(r.Context(), req.ScenarioID, employees); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to load scenario: %v", err), err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "loaded",
		"scenario": req.ScenarioID,
		"month":    month.Time().Format(scenarioMonthLayout),
	})
}

// ResetDatabase clears all data.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	err := h.Store.Reset(r.Context())
	if err == nil {
		h.currentScenario = ""
	}
	h.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "reset"})
}

func (h *Handler) loadScenario(ctx context.Context, id string, employees []factory.EmployeeJSON) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.Store.Reset(ctx); err != nil {
		return err
	}
	h.currentScenario = ""

	for _, ej := range employees {
		def, err := h.Factory.FromJSON(ej)
		if err != nil {
			return err
		}
		if err := h.saveDefinition(ctx, def); err != nil {
			return err
		}
	}

	h.currentScenario = id
	h.Logger.Info("scenario loaded", "scenario", id, "employees", len(employees))
	return nil
}

// =============================================================================
// SCENARIO WORKFORCES
// =============================================================================

// scenarioEmployees returns the workforce of scenario id with records dated
// in the month starting at month.
func scenarioEmployees(id string, month payroll.Date) ([]factory.EmployeeJSON, bool) {
	day := func(n int) string { return month.AddDays(n - 1).String() }

	switch id {
	case "mixed-workforce":
		return []factory.EmployeeJSON{
			{
				ID:       "emp200109101000001",
				Name:     "Bruce",
				Email:    "bruce@payroll.com",
				Category: string(payroll.CategoryHourly),
				Rate:     decimal.RequireFromString("100.00"),
				HireDate: "2001-09-10",
				TimeCards: []factory.TimeCardJSON{
					{Date: day(1), WorkHours: 8},
					{Date: day(2), WorkHours: 8},
					{Date: day(3), WorkHours: 10},
					{Date: day(4), WorkHours: 12},
					{Date: day(5), WorkHours: 8},
				},
			},
			{
				ID:       "emp200910101000002",
				Name:     "Clark",
				Email:    "clark@payroll.com",
				Category: string(payroll.CategoryHourly),
				Rate:     decimal.RequireFromString("100.00"),
				HireDate: "2009-10-10",
				TimeCards: []factory.TimeCardJSON{
					{Date: day(1), WorkHours: 8},
					{Date: day(2), WorkHours: 9},
					{Date: day(3), WorkHours: 8},
					{Date: day(4), WorkHours: 8},
					{Date: day(5), WorkHours: 7},
				},
			},
			{
				ID:       "emp201110101000003",
				Name:     "Diana",
				Email:    "diana@payroll.com",
				Category: string(payroll.CategorySalaried),
				Rate:     decimal.RequireFromString("10000.00"),
				HireDate: "2011-10-10",
				Absences: []factory.AbsenceJSON{
					{Date: day(1), Kind: string(payroll.UnpaidLeave)},
					{Date: day(2), Kind: string(payroll.PaidLeave)},
					{Date: day(8), Kind: string(payroll.UnpaidLeave)},
					{Date: day(9), Kind: string(payroll.PaidLeave)},
				},
			},
		}, true

	case "overtime-day":
		return []factory.EmployeeJSON{
			{
				ID:        "emp202001011000010",
				Name:      "Hal",
				Email:     "hal@payroll.com",
				Category:  string(payroll.CategoryHourly),
				Rate:      decimal.RequireFromString("100.00"),
				HireDate:  "2020-01-01",
				TimeCards: []factory.TimeCardJSON{{Date: day(2), WorkHours: 10}},
			},
		}, true

	case "unpaid-leave":
		return []factory.EmployeeJSON{
			{
				ID:       "emp202001011000020",
				Name:     "Barry",
				Email:    "barry@payroll.com",
				Category: string(payroll.CategorySalaried),
				Rate:     decimal.RequireFromString("10000.00"),
				HireDate: "2020-01-01",
				Absences: []factory.AbsenceJSON{{Date: day(10), Kind: string(payroll.UnpaidLeave)}},
			},
		}, true
	}
	return nil, false
}
