/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. Employee bodies reuse
  the factory schema so the same document can be posted, stored and read
  back.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients

TYPES:
  Employee:
    EmployeeDTO (wraps factory.EmployeeJSON)

  Records:
    factory.TimeCardJSON, factory.AbsenceJSON (request bodies)

  Payroll:
    RunPayrollRequest, RunDTO, PayrollDTO

  Scenarios:
    ScenarioDTO, LoadScenarioRequest

MONEY:
  Amounts are rendered as fixed-scale decimal strings ("1100.00") so clients
  never round through floats.

SEE ALSO:
  - handlers.go: Uses these types
  - factory/employee.go: EmployeeJSON type
*/
package api

import (
	"time"

	"github.com/warp/payroll-engine/factory"
	"github.com/warp/payroll-engine/store/sqlite"
)

// =============================================================================
// REQUEST/RESPONSE TYPES
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	factory.EmployeeJSON
	CreatedAt string `json:"created_at,omitempty"`
}

// RunPayrollRequest is the settlement period of a payroll run.
type RunPayrollRequest struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// PayrollDTO is one employee's pay within a run.
type PayrollDTO struct {
	EmployeeID string `json:"employee_id"`
	Amount     string `json:"amount"`
}

// RunDTO represents a payroll run. Payrolls is omitted in listings.
type RunDTO struct {
	ID          string       `json:"id"`
	Category    string       `json:"category"`
	PeriodStart string       `json:"period_start"`
	PeriodEnd   string       `json:"period_end"`
	Employees   int          `json:"employees"`
	Total       string       `json:"total"`
	Payrolls    []PayrollDTO `json:"payrolls,omitempty"`
	CreatedAt   string       `json:"created_at"`
}

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario and the month its records fall in
// (YYYY-MM). Month defaults to the previous calendar month.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
	Month      string `json:"month,omitempty"`
}

// ErrorResponse is returned for all errors.
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

// =============================================================================
// CONVERSIONS
// =============================================================================

func toEmployeeDTO(emp sqlite.Employee) EmployeeDTO {
	dto := EmployeeDTO{
		EmployeeJSON: factory.EmployeeJSON{
			ID:       emp.ID,
			Name:     emp.Name,
			Email:    emp.Email,
			Category: string(emp.Category),
			Rate:     emp.Rate,
			HireDate: emp.HireDate.String(),
		},
	}
	if !emp.CreatedAt.IsZero() {
		dto.CreatedAt = emp.CreatedAt.Format(time.RFC3339)
	}
	return dto
}

// toRunDTO renders amounts with scale places. Payrolls are included only
// when withPayrolls is set.
func toRunDTO(run sqlite.Run, scale int32, withPayrolls bool) RunDTO {
	dto := RunDTO{
		ID:          run.ID,
		Category:    string(run.Category),
		PeriodStart: run.Period.Start.String(),
		PeriodEnd:   run.Period.End.String(),
		Employees:   len(run.Payrolls),
		Total:       run.Total().StringFixed(scale),
		CreatedAt:   run.CreatedAt.Format(time.RFC3339),
	}
	if withPayrolls {
		dto.Payrolls = make([]PayrollDTO, len(run.Payrolls))
		for i, p := range run.Payrolls {
			dto.Payrolls[i] = PayrollDTO{
				EmployeeID: string(p.EmployeeID),
				Amount:     p.Amount.StringFixed(scale),
			}
		}
	}
	return dto
}
