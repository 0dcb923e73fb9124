package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/domain/core"
)

const employeeColumns = "id, employee_id, user_email, position, department, hire_date"

func scanEmployee(row pgx.Row) (core.Employee, error) {
	var emp core.Employee
	err := row.Scan(&emp.ID, &emp.EmployeeID, &emp.UserEmail, &emp.Position, &emp.Department, &emp.HireDate)
	return emp, err
}

func (s *Store) ListEmployees(ctx context.Context) ([]core.Employee, error) {
	rows, err := s.DB.Query(ctx, "SELECT "+employeeColumns+" FROM employees ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer rows.Close()

	out := make([]core.Employee, 0)
	for rows.Next() {
		emp, err := scanEmployee(rows)
		if err != nil {
			return nil, fmt.Errorf("list employees: %w", err)
		}
		out = append(out, emp)
	}
	return out, rows.Err()
}

func (s *Store) CreateEmployee(ctx context.Context, emp core.Employee) (core.Employee, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO employees (employee_id, user_email, position, department, hire_date)
    VALUES ($1, $2, $3, $4, $5)
    RETURNING id
  `, emp.EmployeeID, emp.UserEmail, emp.Position, emp.Department, emp.HireDate).Scan(&emp.ID)
	if err != nil {
		return core.Employee{}, fmt.Errorf("create employee: %w", err)
	}
	return emp, nil
}

func (s *Store) UpdateEmployee(ctx context.Context, id int64, fn func(*core.Employee)) (core.Employee, error) {
	var out core.Employee
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		emp, err := scanEmployee(tx.QueryRow(ctx, "SELECT "+employeeColumns+" FROM employees WHERE id = $1 FOR UPDATE", id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return core.ErrEmployeeNotFound
			}
			return fmt.Errorf("load employee: %w", err)
		}
		fn(&emp)
		emp.ID = id
		if _, err := tx.Exec(ctx, `
      UPDATE employees
      SET employee_id = $1, user_email = $2, position = $3, department = $4, hire_date = $5
      WHERE id = $6
    `, emp.EmployeeID, emp.UserEmail, emp.Position, emp.Department, emp.HireDate, id); err != nil {
			return fmt.Errorf("update employee: %w", err)
		}
		out = emp
		return nil
	})
	if err != nil {
		return core.Employee{}, err
	}
	return out, nil
}

func (s *Store) DeleteEmployee(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM employees WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrEmployeeNotFound
	}
	return nil
}

func (s *Store) ListDepartments(ctx context.Context) ([]core.Department, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, name, description FROM departments ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list departments: %w", err)
	}
	defer rows.Close()

	out := make([]core.Department, 0)
	for rows.Next() {
		var dep core.Department
		if err := rows.Scan(&dep.ID, &dep.Name, &dep.Description); err != nil {
			return nil, fmt.Errorf("list departments: %w", err)
		}
		out = append(out, dep)
	}
	return out, rows.Err()
}

func (s *Store) CreateDepartment(ctx context.Context, dep core.Department) (core.Department, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO departments (name, description)
    VALUES ($1, $2)
    RETURNING id
  `, dep.Name, dep.Description).Scan(&dep.ID)
	if err != nil {
		return core.Department{}, fmt.Errorf("create department: %w", err)
	}
	return dep, nil
}

func (s *Store) UpdateDepartment(ctx context.Context, id int64, fn func(*core.Department)) (core.Department, error) {
	var out core.Department
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		var dep core.Department
		err := tx.QueryRow(ctx, "SELECT id, name, description FROM departments WHERE id = $1 FOR UPDATE", id).
			Scan(&dep.ID, &dep.Name, &dep.Description)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return core.ErrDepartmentNotFound
			}
			return fmt.Errorf("load department: %w", err)
		}
		fn(&dep)
		dep.ID = id
		if _, err := tx.Exec(ctx, "UPDATE departments SET name = $1, description = $2 WHERE id = $3", dep.Name, dep.Description, id); err != nil {
			return fmt.Errorf("update department: %w", err)
		}
		out = dep
		return nil
	})
	if err != nil {
		return core.Department{}, err
	}
	return out, nil
}

func (s *Store) DeleteDepartment(ctx context.Context, id int64) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM departments WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("delete department: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return core.ErrDepartmentNotFound
	}
	return nil
}
