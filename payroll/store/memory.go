// Package store provides Directory implementations.
package store

import (
	"context"
	"sync"

	"github.com/warp/payroll-engine/payroll"
)

// =============================================================================
// MEMORY DIRECTORY - In-memory implementation (for testing/dev)
// =============================================================================

type Memory struct {
	mu        sync.RWMutex
	employees []entry
	index     map[payroll.EmployeeID]int
}

type entry struct {
	employee payroll.Employee
	hiredOn  payroll.Date
}

func NewMemory() *Memory {
	return &Memory{index: make(map[payroll.EmployeeID]int)}
}

// Add registers employees active from the beginning of time.
// Adding an existing id replaces it in place.
func (m *Memory) Add(employees ...payroll.Employee) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range employees {
		m.putLocked(entry{employee: e})
	}
}

// AddHired registers an employee who takes part in runs whose period ends on
// or after hiredOn.
func (m *Memory) AddHired(e payroll.Employee, hiredOn payroll.Date) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putLocked(entry{employee: e, hiredOn: hiredOn})
}

func (m *Memory) putLocked(en entry) {
	if i, ok := m.index[en.employee.ID()]; ok {
		m.employees[i] = en
		return
	}
	m.index[en.employee.ID()] = len(m.employees)
	m.employees = append(m.employees, en)
}

// Get returns an employee by id.
func (m *Memory) Get(_ context.Context, id payroll.EmployeeID) (payroll.Employee, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	i, ok := m.index[id]
	if !ok {
		return nil, payroll.ErrEmployeeNotFound
	}
	return m.employees[i].employee, nil
}

// AllEmployeesOf returns employees of category hired by the end of period,
// in insertion order.
func (m *Memory) AllEmployeesOf(ctx context.Context, category payroll.Category, period payroll.Period) ([]payroll.Employee, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	var result []payroll.Employee
	for _, en := range m.employees {
		if en.employee.Category() != category {
			continue
		}
		if !en.hiredOn.IsZero() && en.hiredOn.After(period.End) {
			continue
		}
		result = append(result, en.employee)
	}
	return result, nil
}

// Compile-time check
var _ payroll.Directory = (*Memory)(nil)
