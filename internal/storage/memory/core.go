package memory

import (
	"context"
	"sync"

	"hrportal/internal/domain/core"
)

type employeeTable struct {
	mu     sync.RWMutex
	lastID int64
	rows   []core.Employee
}

type departmentTable struct {
	mu     sync.RWMutex
	lastID int64
	rows   []core.Department
}

func (s *Store) ListEmployees(_ context.Context) ([]core.Employee, error) {
	s.employees.mu.RLock()
	defer s.employees.mu.RUnlock()
	out := make([]core.Employee, len(s.employees.rows))
	copy(out, s.employees.rows)
	return out, nil
}

func (s *Store) CreateEmployee(_ context.Context, emp core.Employee) (core.Employee, error) {
	s.employees.mu.Lock()
	defer s.employees.mu.Unlock()
	s.employees.lastID++
	emp.ID = s.employees.lastID
	s.employees.rows = append(s.employees.rows, emp)
	return emp, nil
}

func (s *Store) UpdateEmployee(_ context.Context, id int64, fn func(*core.Employee)) (core.Employee, error) {
	s.employees.mu.Lock()
	defer s.employees.mu.Unlock()
	for i := range s.employees.rows {
		if s.employees.rows[i].ID != id {
			continue
		}
		updated := s.employees.rows[i]
		fn(&updated)
		updated.ID = id
		s.employees.rows[i] = updated
		return updated, nil
	}
	return core.Employee{}, core.ErrEmployeeNotFound
}

func (s *Store) DeleteEmployee(_ context.Context, id int64) error {
	s.employees.mu.Lock()
	defer s.employees.mu.Unlock()
	for i, emp := range s.employees.rows {
		if emp.ID == id {
			s.employees.rows = append(s.employees.rows[:i], s.employees.rows[i+1:]...)
			return nil
		}
	}
	return core.ErrEmployeeNotFound
}

func (s *Store) ListDepartments(_ context.Context) ([]core.Department, error) {
	s.departments.mu.RLock()
	defer s.departments.mu.RUnlock()
	out := make([]core.Department, len(s.departments.rows))
	copy(out, s.departments.rows)
	return out, nil
}

func (s *Store) CreateDepartment(_ context.Context, dep core.Department) (core.Department, error) {
	s.departments.mu.Lock()
	defer s.departments.mu.Unlock()
	s.departments.lastID++
	dep.ID = s.departments.lastID
	s.departments.rows = append(s.departments.rows, dep)
	return dep, nil
}

func (s *Store) UpdateDepartment(_ context.Context, id int64, fn func(*core.Department)) (core.Department, error) {
	s.departments.mu.Lock()
	defer s.departments.mu.Unlock()
	for i := range s.departments.rows {
		if s.departments.rows[i].ID != id {
			continue
		}
		updated := s.departments.rows[i]
		fn(&updated)
		updated.ID = id
		s.departments.rows[i] = updated
		return updated, nil
	}
	return core.Department{}, core.ErrDepartmentNotFound
}

func (s *Store) DeleteDepartment(_ context.Context, id int64) error {
	s.departments.mu.Lock()
	defer s.departments.mu.Unlock()
	for i, dep := range s.departments.rows {
		if dep.ID == id {
			s.departments.rows = append(s.departments.rows[:i], s.departments.rows[i+1:]...)
			return nil
		}
	}
	return core.ErrDepartmentNotFound
}
