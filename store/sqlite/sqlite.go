/*
Package sqlite provides a SQLite-backed employee directory and payroll history.

PURPOSE:

	Persists employees with their rates, time cards and absences, and hands
	them to payroll calculators fully loaded for a settlement period. Also
	records completed payroll runs.

INTERFACES IMPLEMENTED:

	payroll.Directory: Employees of a category active in a period

KEY TABLES:

	employees:        Master data and pay rate (category decides the unit)
	time_cards:       One row per hourly employee per worked day
	absences:         One row per salaried employee per day off
	payroll_runs:     One row per completed calculator run
	payroll_entries:  The payrolls of a run, in calculator order

INVARIANTS:
  - idx_time_cards_day / idx_absences_day: one record per employee per day
  - Records are deleted with their employee (ON DELETE CASCADE)
  - Dates are stored as YYYY-MM-DD so range queries compare lexically
  - Money is stored as decimal strings, never floats

ERRORS:

	Directory reads wrap driver failures in payroll.ErrDirectoryUnavailable.
	Unique violations on records map to payroll.ErrDuplicateRecord.

USAGE:

	store, err := sqlite.New("./data/payroll.db")
	if err != nil {
	    log.Fatal(err)
	}
	defer store.Close()

	calc := payroll.NewHourlyCalculator(store)

SEE ALSO:
  - payroll/types.go: Directory interface
  - payroll/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/payroll-engine/payroll"
)

// Store implements payroll.Directory and payroll run history using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if strings.HasPrefix(dbPath, ":memory:") {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Ping verifies the database connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		email TEXT,
		category TEXT NOT NULL CHECK (category IN ('hourly', 'salaried')),
		rate TEXT NOT NULL,
		hire_date TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_employees_category
		ON employees(category, hire_date);

	CREATE TABLE IF NOT EXISTS time_cards (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		work_date TEXT NOT NULL,
		work_hours INTEGER NOT NULL CHECK (work_hours >= 0)
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_time_cards_day
		ON time_cards(employee_id, work_date);

	CREATE TABLE IF NOT EXISTS absences (
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		absence_date TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('paid_leave', 'unpaid_leave'))
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_absences_day
		ON absences(employee_id, absence_date);

	CREATE TABLE IF NOT EXISTS payroll_runs (
		id TEXT PRIMARY KEY,
		category TEXT NOT NULL,
		period_start TEXT NOT NULL,
		period_end TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_payroll_runs_period
		ON payroll_runs(category, period_start, period_end);

	CREATE TABLE IF NOT EXISTS payroll_entries (
		run_id TEXT NOT NULL REFERENCES payroll_runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		employee_id TEXT NOT NULL,
		amount TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	`

	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// EMPLOYEE STORE
// =============================================================================

// Employee is an employee master record.
type Employee struct {
	ID        string
	Name      string
	Email     string
	Category  payroll.Category
	Rate      decimal.Decimal
	HireDate  payroll.Date
	CreatedAt time.Time
}

// Salary returns the employee's rate in the unit of its category.
func (e Employee) Salary() (payroll.Salary, error) {
	return payroll.NewSalary(e.Rate, e.Category.RateUnit())
}

// SaveEmployee inserts or updates an employee. The category of an
// existing employee cannot change.
func (s *Store) SaveEmployee(ctx context.Context, emp Employee) error {
	return s.SaveDefinition(ctx, emp, nil, nil)
}

// SaveDefinition upserts an employee and adds its records atomically. On
// any error nothing is written.
func (s *Store) SaveDefinition(ctx context.Context, emp Employee, timeCards []payroll.TimeCard, absences []payroll.Absence) error {
	if _, err := payroll.ParseCategory(string(emp.Category)); err != nil {
		return err
	}
	if _, err := emp.Salary(); err != nil {
		return err
	}
	if emp.HireDate.IsZero() {
		return fmt.Errorf("%w: employee %s without hire date", payroll.ErrInvalidRecord, emp.ID)
	}
	if len(timeCards) > 0 && emp.Category != payroll.CategoryHourly {
		return fmt.Errorf("%w: %s employee %s has time cards", payroll.ErrCategoryMismatch, emp.Category, emp.ID)
	}
	if len(absences) > 0 && emp.Category != payroll.CategorySalaried {
		return fmt.Errorf("%w: %s employee %s has absences", payroll.ErrCategoryMismatch, emp.Category, emp.ID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT category FROM employees WHERE id = ?", emp.ID).Scan(&existing)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return fmt.Errorf("failed to check employee: %w", err)
	case payroll.Category(existing) != emp.Category:
		return fmt.Errorf("%w: employee %s is %s, cannot become %s",
			payroll.ErrCategoryMismatch, emp.ID, existing, emp.Category)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO employees (id, name, email, category, rate, hire_date, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			email = excluded.email,
			rate = excluded.rate,
			hire_date = excluded.hire_date
	`,
		emp.ID, emp.Name, nullString(emp.Email), emp.Category,
		emp.Rate.String(),
		emp.HireDate.String(),
		time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to save employee: %w", err)
	}

	for _, tc := range timeCards {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO time_cards (employee_id, work_date, work_hours) VALUES (?, ?, ?)",
			emp.ID, tc.Date().String(), tc.WorkHours(),
		)
		if isUniqueConstraintError(err) {
			return &payroll.RecordError{
				EmployeeID: payroll.EmployeeID(emp.ID),
				Date:       tc.Date(),
				Reason:     "time card already recorded",
				Err:        payroll.ErrDuplicateRecord,
			}
		}
		if err != nil {
			return fmt.Errorf("failed to add time card: %w", err)
		}
	}
	for _, a := range absences {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO absences (employee_id, absence_date, kind) VALUES (?, ?, ?)",
			emp.ID, a.Date().String(), a.Kind(),
		)
		if isUniqueConstraintError(err) {
			return &payroll.RecordError{
				EmployeeID: payroll.EmployeeID(emp.ID),
				Date:       a.Date(),
				Reason:     "absence already recorded",
				Err:        payroll.ErrDuplicateRecord,
			}
		}
		if err != nil {
			return fmt.Errorf("failed to add absence: %w", err)
		}
	}

	return tx.Commit()
}

// GetEmployee retrieves an employee by ID.
func (s *Store) GetEmployee(ctx context.Context, id string) (*Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx,
		"SELECT id, name, email, category, rate, hire_date, created_at FROM employees WHERE id = ?",
		id,
	)
	emp, err := scanEmployee(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", payroll.ErrEmployeeNotFound, id)
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

// ListEmployees returns all employees, or those of one category when
// category is not empty.
func (s *Store) ListEmployees(ctx context.Context, category payroll.Category) ([]Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := "SELECT id, name, email, category, rate, hire_date, created_at FROM employees"
	var args []any
	if category != "" {
		query += " WHERE category = ?"
		args = append(args, category)
	}
	query += " ORDER BY hire_date, id"

	return s.queryEmployees(ctx, query, args...)
}

// DeleteEmployee removes an employee and its records.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", payroll.ErrEmployeeNotFound, id)
	}
	return nil
}

func (s *Store) queryEmployees(ctx context.Context, query string, args ...any) ([]Employee, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []Employee
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEmployee(row scanner) (Employee, error) {
	var (
		emp       Employee
		email     sql.NullString
		category  string
		rate      string
		hireDate  string
		createdAt string
	)

	if err := row.Scan(&emp.ID, &emp.Name, &email, &category, &rate, &hireDate, &createdAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return emp, err
		}
		return emp, fmt.Errorf("failed to scan employee: %w", err)
	}

	var err error
	emp.Email = email.String
	emp.Category = payroll.Category(category)
	if emp.Rate, err = decimal.NewFromString(rate); err != nil {
		return emp, fmt.Errorf("employee %s: invalid rate %q: %w", emp.ID, rate, err)
	}
	if emp.HireDate, err = payroll.ParseDate(hireDate); err != nil {
		return emp, fmt.Errorf("employee %s: %w", emp.ID, err)
	}
	emp.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	return emp, nil
}

// =============================================================================
// ATTENDANCE RECORDS
// =============================================================================

// AddTimeCard records a worked day for an hourly employee.
func (s *Store) AddTimeCard(ctx context.Context, employeeID string, tc payroll.TimeCard) error {
	if err := s.requireCategory(ctx, employeeID, payroll.CategoryHourly); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO time_cards (employee_id, work_date, work_hours) VALUES (?, ?, ?)",
		employeeID, tc.Date().String(), tc.WorkHours(),
	)
	if isUniqueConstraintError(err) {
		return &payroll.RecordError{
			EmployeeID: payroll.EmployeeID(employeeID),
			Date:       tc.Date(),
			Reason:     "time card already recorded",
			Err:        payroll.ErrDuplicateRecord,
		}
	}
	if err != nil {
		return fmt.Errorf("failed to add time card: %w", err)
	}
	return nil
}

// AddAbsence records a day off for a salaried employee.
func (s *Store) AddAbsence(ctx context.Context, employeeID string, a payroll.Absence) error {
	if err := s.requireCategory(ctx, employeeID, payroll.CategorySalaried); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO absences (employee_id, absence_date, kind) VALUES (?, ?, ?)",
		employeeID, a.Date().String(), a.Kind(),
	)
	if isUniqueConstraintError(err) {
		return &payroll.RecordError{
			EmployeeID: payroll.EmployeeID(employeeID),
			Date:       a.Date(),
			Reason:     "absence already recorded",
			Err:        payroll.ErrDuplicateRecord,
		}
	}
	if err != nil {
		return fmt.Errorf("failed to add absence: %w", err)
	}
	return nil
}

func (s *Store) requireCategory(ctx context.Context, employeeID string, category payroll.Category) error {
	emp, err := s.GetEmployee(ctx, employeeID)
	if err != nil {
		return err
	}
	if emp.Category != category {
		return fmt.Errorf("%w: %s is %s, not %s", payroll.ErrCategoryMismatch, employeeID, emp.Category, category)
	}
	return nil
}

// =============================================================================
// DIRECTORY (payroll.Directory interface)
// =============================================================================

// LoadEmployee returns the employee aggregate with all of its records.
func (s *Store) LoadEmployee(ctx context.Context, id string) (payroll.Employee, error) {
	emp, err := s.GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	employees, err := s.assemble(ctx, []Employee{*emp},
		scope{where: "e.id = ?", args: []any{id}}, "0001-01-01", "9999-12-31")
	if err != nil {
		return nil, err
	}
	return employees[0], nil
}

// AllEmployeesOf returns the employees of category hired on or before the
// end of period, ordered by hire date then id, with the records that fall
// inside period attached.
func (s *Store) AllEmployeesOf(ctx context.Context, category payroll.Category, period payroll.Period) ([]payroll.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, err := s.queryEmployees(ctx, `
		SELECT id, name, email, category, rate, hire_date, created_at
		FROM employees
		WHERE category = ? AND hire_date <= ?
		ORDER BY hire_date, id
	`, category, period.End.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", payroll.ErrDirectoryUnavailable, err)
	}

	employees, err := s.assemble(ctx, records,
		scope{where: "e.category = ? AND e.hire_date <= ?", args: []any{category, period.End.String()}},
		period.Start.String(), period.End.String())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", payroll.ErrDirectoryUnavailable, err)
	}
	return employees, nil
}

// scope selects the employees whose records are loaded, as a condition on
// the employees table aliased e.
type scope struct {
	where string
	args  []any
}

// assemble builds aggregates for records with the time cards and absences
// dated within [from, to]. sc must select the same employees as records.
func (s *Store) assemble(ctx context.Context, records []Employee, sc scope, from, to string) ([]payroll.Employee, error) {
	if len(records) == 0 {
		return []payroll.Employee{}, nil
	}

	timeCards, err := s.loadTimeCards(ctx, sc, from, to)
	if err != nil {
		return nil, err
	}
	absences, err := s.loadAbsences(ctx, sc, from, to)
	if err != nil {
		return nil, err
	}

	employees := make([]payroll.Employee, 0, len(records))
	for _, r := range records {
		rate, err := r.Salary()
		if err != nil {
			return nil, fmt.Errorf("employee %s: %w", r.ID, err)
		}

		var e payroll.Employee
		switch r.Category {
		case payroll.CategoryHourly:
			e, err = payroll.NewHourlyEmployee(payroll.EmployeeID(r.ID), rate, timeCards[r.ID]...)
		case payroll.CategorySalaried:
			e, err = payroll.NewSalariedEmployee(payroll.EmployeeID(r.ID), rate, absences[r.ID]...)
		default:
			err = fmt.Errorf("%w: %q", payroll.ErrInvalidCategory, r.Category)
		}
		if err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	return employees, nil
}

func (s *Store) loadTimeCards(ctx context.Context, sc scope, from, to string) (map[string][]payroll.TimeCard, error) {
	query := `
		SELECT t.employee_id, t.work_date, t.work_hours
		FROM time_cards t
		JOIN employees e ON e.id = t.employee_id
		WHERE ` + sc.where + `
		  AND t.work_date >= ? AND t.work_date <= ?
		ORDER BY t.employee_id, t.work_date
	`
	args := append(append([]any{}, sc.args...), from, to)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query time cards: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]payroll.TimeCard)
	for rows.Next() {
		var (
			employeeID, workDate string
			hours                int
		)
		if err := rows.Scan(&employeeID, &workDate, &hours); err != nil {
			return nil, fmt.Errorf("failed to scan time card: %w", err)
		}
		date, err := payroll.ParseDate(workDate)
		if err != nil {
			return nil, err
		}
		tc, err := payroll.NewTimeCard(date, hours)
		if err != nil {
			return nil, err
		}
		result[employeeID] = append(result[employeeID], tc)
	}
	return result, rows.Err()
}

func (s *Store) loadAbsences(ctx context.Context, sc scope, from, to string) (map[string][]payroll.Absence, error) {
	query := `
		SELECT a.employee_id, a.absence_date, a.kind
		FROM absences a
		JOIN employees e ON e.id = a.employee_id
		WHERE ` + sc.where + `
		  AND a.absence_date >= ? AND a.absence_date <= ?
		ORDER BY a.employee_id, a.absence_date
	`
	args := append(append([]any{}, sc.args...), from, to)
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query absences: %w", err)
	}
	defer rows.Close()

	result := make(map[string][]payroll.Absence)
	for rows.Next() {
		var employeeID, absenceDate, kind string
		if err := rows.Scan(&employeeID, &absenceDate, &kind); err != nil {
			return nil, fmt.Errorf("failed to scan absence: %w", err)
		}
		date, err := payroll.ParseDate(absenceDate)
		if err != nil {
			return nil, err
		}
		a, err := payroll.NewAbsence(date, payroll.AbsenceKind(kind))
		if err != nil {
			return nil, err
		}
		result[employeeID] = append(result[employeeID], a)
	}
	return result, rows.Err()
}

// Compile-time check
var _ payroll.Directory = (*Store)(nil)

// =============================================================================
// PAYROLL RUNS
// =============================================================================

// Run is a completed payroll calculation for one category and period.
type Run struct {
	ID        string
	Category  payroll.Category
	Period    payroll.Period
	Payrolls  []payroll.Payroll
	CreatedAt time.Time
}

// Total sums the run's payroll amounts.
func (r Run) Total() decimal.Decimal {
	total := decimal.Zero
	for _, p := range r.Payrolls {
		total = total.Add(p.Amount)
	}
	return total
}

// SaveRun stores a run and its payrolls atomically.
func (s *Store) SaveRun(ctx context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO payroll_runs (id, category, period_start, period_end, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, run.ID, run.Category, run.Period.Start.String(), run.Period.End.String(),
		run.CreatedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save payroll run: %w", err)
	}

	for i, p := range run.Payrolls {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO payroll_entries (run_id, position, employee_id, amount)
			VALUES (?, ?, ?, ?)
		`, run.ID, i, p.EmployeeID, p.Amount.String())
		if err != nil {
			return fmt.Errorf("failed to save payroll entry: %w", err)
		}
	}

	return tx.Commit()
}

// GetRun retrieves a run with its payrolls. Returns nil if not found.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs, err := s.queryRuns(ctx,
		"SELECT id, category, period_start, period_end, created_at FROM payroll_runs WHERE id = ?", id)
	if err != nil || len(runs) == 0 {
		return nil, err
	}

	run := runs[0]
	if err := s.loadEntries(ctx, &run); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListRuns returns all runs with their payrolls, newest first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	runs, err := s.queryRuns(ctx,
		"SELECT id, category, period_start, period_end, created_at FROM payroll_runs ORDER BY created_at DESC, id")
	if err != nil {
		return nil, err
	}
	for i := range runs {
		if err := s.loadEntries(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) loadEntries(ctx context.Context, run *Run) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT employee_id, amount FROM payroll_entries WHERE run_id = ? ORDER BY position", run.ID)
	if err != nil {
		return fmt.Errorf("failed to query payroll entries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var employeeID, amount string
		if err := rows.Scan(&employeeID, &amount); err != nil {
			return fmt.Errorf("failed to scan payroll entry: %w", err)
		}
		value, err := decimal.NewFromString(amount)
		if err != nil {
			return fmt.Errorf("run %s: invalid amount %q: %w", run.ID, amount, err)
		}
		run.Payrolls = append(run.Payrolls, payroll.Payroll{
			EmployeeID: payroll.EmployeeID(employeeID),
			Period:     run.Period,
			Amount:     value,
		})
	}
	return rows.Err()
}

// HasRun reports whether a run exists for category and period.
func (s *Store) HasRun(ctx context.Context, category payroll.Category, period payroll.Period) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM payroll_runs WHERE category = ? AND period_start = ? AND period_end = ?",
		category, period.Start.String(), period.End.String(),
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payroll runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run                 Run
			category            string
			start, end, created string
		)
		if err := rows.Scan(&run.ID, &category, &start, &end, &created); err != nil {
			return nil, fmt.Errorf("failed to scan payroll run: %w", err)
		}
		run.Category = payroll.Category(category)
		if run.Period, err = payroll.ParsePeriod(start, end); err != nil {
			return nil, fmt.Errorf("run %s: %w", run.ID, err)
		}
		run.CreatedAt, _ = time.Parse(time.RFC3339, created)
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// =============================================================================
// ADMIN
// =============================================================================

// Reset deletes all data. Development and demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"payroll_entries", "payroll_runs", "time_cards", "absences", "employees"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to reset %s: %w", table, err)
		}
	}
	return nil
}

// Helper functions

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}

func isUniqueConstraintError(err error) bool {
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}
	return false
}
