/*
handlers.go - HTTP API handlers for the payroll engine

PURPOSE:
  Exposes employees, attendance records and payroll runs via REST API.
  Handles HTTP request/response, JSON serialization, and delegates to the
  payroll calculators and the SQLite store.

ENDPOINTS:
  Employees:
    GET    /api/employees?category=       List employees
    POST   /api/employees                 Create or update employee
    GET    /api/employees/{id}            Employee with all records
    DELETE /api/employees/{id}            Remove employee and records

  Records:
    POST   /api/employees/{id}/timecards  Record a worked day (hourly)
    POST   /api/employees/{id}/absences   Record a day off (salaried)

  Payroll:
    POST   /api/payrolls/{category}       Run payroll for a period
    GET    /api/payrolls/runs             Run history
    GET    /api/payrolls/runs/{id}        One run with its payrolls

  Scenarios:
    GET    /api/scenarios                 List demo scenarios
    GET    /api/scenarios/current         Currently loaded scenario
    POST   /api/scenarios/load            Load a demo scenario
    POST   /api/scenarios/reset           Clear all data

  Health:
    GET    /healthz                       Database ping

ARCHITECTURE:
  Handler struct holds all dependencies:
  - Store: Database access and payroll.Directory
  - Factory: JSON to employee conversion
  - Rules/Concurrency: Calculator settings from config

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Employee or run not found
  - 409: Duplicate record for a day
  - 503: Employee directory unavailable during a run
  - 500: Internal errors

SECURITY NOTE:
  No authentication or authorization. All endpoints are public.

SEE ALSO:
  - dto.go: Request/response data structures
  - scenarios.go: Demo scenario loaders
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/payroll"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store   *sqlite.Store
	Factory *factory.EmployeeFactory
	Logger  *slog.Logger

	// Calculator settings
	Rules       payroll.Rules
	Concurrency int

	// CORS origins accepted by the router
	AllowedOrigins []string

	mu              sync.Mutex
	currentScenario string
}

// NewHandler creates a new handler with default rules. A nil logger
// discards output.
func NewHandler(store *sqlite.Store, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Handler{
		Store:          store,
		Factory:        factory.NewEmployeeFactory(),
		Logger:         logger,
		Rules:          payroll.DefaultRules(),
		Concurrency:    1,
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
	}
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees, optionally filtered by category.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	var category payroll.Category
	if raw := r.URL.Query().Get("category"); raw != "" {
		c, err := payroll.ParseCategory(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid category", err)
			return
		}
		category = c
	}

	employees, err := h.Store.ListEmployees(r.Context(), category)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetEmployee returns a single employee with its time cards or absences.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	emp, err := h.Store.GetEmployee(ctx, id)
	if err != nil {
		writeDomainError(w, "Failed to get employee", err)
		return
	}
	aggregate, err := h.Store.LoadEmployee(ctx, id)
	if err != nil {
		writeDomainError(w, "Failed to load employee records", err)
		return
	}

	dto := toEmployeeDTO(*emp)
	switch e := aggregate.(type) {
	case *payroll.HourlyEmployee:
		for _, tc := range e.TimeCards() {
			dto.TimeCards = append(dto.TimeCards, factory.TimeCardJSON{Date: tc.Date().String(), WorkHours: tc.WorkHours()})
		}
	case *payroll.SalariedEmployee:
		for _, a := range e.Absences() {
			dto.Absences = append(dto.Absences, factory.AbsenceJSON{Date: a.Date().String(), Kind: string(a.Kind())})
		}
	}
	writeJSON(w, http.StatusOK, dto)
}

// CreateEmployee creates or updates an employee. Records in the body are
// added to the employee's existing ones; a duplicate day or a category
// change rejects the whole request.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req factory.EmployeeJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	def, err := h.Factory.FromJSON(req)
	if err != nil {
		writeDomainError(w, "Invalid employee", err)
		return
	}
	if err := h.saveDefinition(r.Context(), def); err != nil {
		writeDomainError(w, "Failed to create employee", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), string(def.ID))
	if err != nil {
		writeDomainError(w, "Failed to get employee", err)
		return
	}
	dto := toEmployeeDTO(*emp)
	dto.TimeCards = req.TimeCards
	dto.Absences = req.Absences
	writeJSON(w, http.StatusCreated, dto)
}

// DeleteEmployee removes an employee together with its records.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		writeDomainError(w, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// saveDefinition persists an employee and its records in one transaction.
func (h *Handler) saveDefinition(ctx context.Context, def *factory.Definition) error {
	emp := sqlite.Employee{
		ID:       string(def.ID),
		Name:     def.Name,
		Email:    def.Email,
		Category: def.Category,
		Rate:     def.Rate.Amount,
		HireDate: def.HireDate,
	}
	return h.Store.SaveDefinition(ctx, emp, def.TimeCards, def.Absences)
}

// =============================================================================
// RECORD HANDLERS
// =============================================================================

// AddTimeCard records a worked day for an hourly employee.
// POST /api/employees/{id}/timecards
func (h *Handler) AddTimeCard(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req factory.TimeCardJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	tc, err := factory.ParseTimeCard(req)
	if err != nil {
		writeDomainError(w, "Invalid time card", err)
		return
	}
	if err := h.Store.AddTimeCard(r.Context(), id, tc); err != nil {
		writeDomainError(w, "Failed to add time card", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// AddAbsence records a day off for a salaried employee.
// POST /api/employees/{id}/absences
func (h *Handler) AddAbsence(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req factory.AbsenceJSON
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	a, err := factory.ParseAbsence(req)
	if err != nil {
		writeDomainError(w, "Invalid absence", err)
		return
	}
	if err := h.Store.AddAbsence(r.Context(), id, a); err != nil {
		writeDomainError(w, "Failed to add absence", err)
		return
	}
	writeJSON(w, http.StatusCreated, req)
}

// =============================================================================
// PAYROLL HANDLERS
// =============================================================================

// RunPayroll calculates and stores the payroll of one category.
// POST /api/payrolls/{category}
func (h *Handler) RunPayroll(w http.ResponseWriter, r *http.Request) {
	category, err := payroll.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid category", err)
		return
	}

	var req RunPayrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	period, err := payroll.ParsePeriod(req.Start, req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid period (use YYYY-MM-DD, start <= end)", err)
		return
	}

	run, err := h.ExecuteRun(r.Context(), category, period)
	if err != nil {
		writeDomainError(w, "Payroll run failed", err)
		return
	}
	writeJSON(w, http.StatusCreated, toRunDTO(*run, h.Rules.AmountScale, true))
}

// ListRuns returns the payroll run history, newest first.
// GET /api/payrolls/runs
func (h *Handler) ListRuns(w http.ResponseWriter, r *http.Request) {
	runs, err := h.Store.ListRuns(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list payroll runs", err)
		return
	}

	dtos := make([]RunDTO, len(runs))
	for i, run := range runs {
		dtos[i] = toRunDTO(run, h.Rules.AmountScale, false)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetRun returns one payroll run with its payrolls.
// GET /api/payrolls/runs/{id}
func (h *Handler) GetRun(w http.ResponseWriter, r *http.Request) {
	run, err := h.Store.GetRun(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get payroll run", err)
		return
	}
	if run == nil {
		writeError(w, http.StatusNotFound, "Payroll run not found", nil)
		return
	}
	writeJSON(w, http.StatusOK, toRunDTO(*run, h.Rules.AmountScale, true))
}

// ExecuteRun calculates the payroll of category for period and records
// the run. Nothing is recorded when the calculation fails.
func (h *Handler) ExecuteRun(ctx context.Context, category payroll.Category, period payroll.Period) (*sqlite.Run, error) {
	calc := payroll.NewCalculator(h.Store, category,
		payroll.WithRules(h.Rules),
		payroll.WithConcurrency(h.Concurrency),
		payroll.WithLogger(h.Logger),
	)

	payrolls, err := calc.Execute(ctx, period)
	if err != nil {
		h.Logger.Error("payroll run failed",
			slog.String("category", string(category)),
			slog.String("period", period.String()),
			slog.Any("error", err),
		)
		return nil, err
	}

	run := sqlite.Run{
		ID:        uuid.NewString(),
		Category:  category,
		Period:    period,
		Payrolls:  payrolls,
		CreatedAt: time.Now().UTC(),
	}
	if err := h.Store.SaveRun(ctx, run); err != nil {
		return nil, err
	}

	h.Logger.Info("payroll run completed",
		slog.String("run_id", run.ID),
		slog.String("category", string(category)),
		slog.String("period", period.String()),
		slog.Int("employees", len(payrolls)),
		slog.String("total", run.Total().StringFixed(h.Rules.AmountScale)),
	)
	return &run, nil
}

// =============================================================================
// HEALTH
// =============================================================================

// Health reports whether the database answers.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if err := h.Store.Ping(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "Database unavailable", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// =============================================================================
// HELPERS
// =============================================================================

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

// writeDomainError picks the status from the payroll error classification.
func writeDomainError(w http.ResponseWriter, message string, err error) {
	writeError(w, statusFor(err), message, err)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, payroll.ErrDirectoryUnavailable):
		return http.StatusServiceUnavailable
	case payroll.IsNotFound(err):
		return http.StatusNotFound
	case errors.Is(err, payroll.ErrDuplicateRecord):
		return http.StatusConflict
	case payroll.IsClientError(err), errors.Is(err, payroll.ErrCategoryMismatch):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
