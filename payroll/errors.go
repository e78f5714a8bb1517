/*
errors.go - Error types for the payroll engine

ERROR CATEGORIES:
 1. Validation errors - rejected when a value or record is constructed
 2. Orchestration errors - directory failures that abort a whole run
 3. Calculation errors - a single employee's payroll could not be computed

Validation fails fast at the smallest scope (record construction). A run is
all-or-nothing per category and period: the calculator never returns a
partial result.

SEE ALSO:
  - calculator.go: Propagation of directory and employee errors
  - store/sqlite/sqlite.go: Wraps driver failures in ErrDirectoryUnavailable
*/
package payroll

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidPeriod is returned when a period is malformed (start after end).
	ErrInvalidPeriod = errors.New("invalid period")

	// ErrInvalidRecord is returned for a time card or absence that cannot exist:
	// missing date, negative hours, unknown absence kind.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrDuplicateRecord is returned when an employee already owns a record
	// for the same day. It is also an ErrInvalidRecord.
	ErrDuplicateRecord = fmt.Errorf("%w: duplicate day", ErrInvalidRecord)

	// ErrInvalidSalary is returned for a negative or unparsable rate.
	ErrInvalidSalary = errors.New("invalid salary")

	// ErrUnitMismatch is returned when salary arithmetic is applied to the
	// wrong unit (hours on a monthly rate, daily rate of an hourly rate).
	ErrUnitMismatch = errors.New("salary unit mismatch")

	// ErrDirectoryUnavailable is returned by directories that cannot load
	// employees. Calculators pass it through unchanged.
	ErrDirectoryUnavailable = errors.New("employee directory unavailable")

	// ErrCategoryMismatch is returned when a directory hands a calculator an
	// employee of another category.
	ErrCategoryMismatch = errors.New("employee category mismatch")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrInvalidCategory is returned for an unknown category name.
	ErrInvalidCategory = errors.New("invalid employee category")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// RecordError describes a rejected time card or absence.
type RecordError struct {
	EmployeeID EmployeeID
	Date       Date
	Reason     string
	Err        error
}

func (e *RecordError) Error() string {
	if e.EmployeeID == "" {
		return fmt.Sprintf("%v on %s: %s", e.Err, e.Date, e.Reason)
	}
	return fmt.Sprintf("%v for %s on %s: %s", e.Err, e.EmployeeID, e.Date, e.Reason)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// EmployeeError ties a calculation failure to the employee that caused it.
type EmployeeError struct {
	EmployeeID EmployeeID
	Err        error
}

func (e *EmployeeError) Error() string {
	return fmt.Sprintf("payroll for %s: %v", e.EmployeeID, e.Err)
}

func (e *EmployeeError) Unwrap() error {
	return e.Err
}

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid client input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidPeriod) ||
		errors.Is(err, ErrInvalidRecord) ||
		errors.Is(err, ErrInvalidSalary) ||
		errors.Is(err, ErrUnitMismatch) ||
		errors.Is(err, ErrInvalidCategory)
}

// IsNotFound returns true if the error indicates a missing employee.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound)
}
