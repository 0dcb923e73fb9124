package core

import "context"

type StoreAPI interface {
	ListEmployees(ctx context.Context) ([]Employee, error)
	CreateEmployee(ctx context.Context, emp Employee) (Employee, error)
	// UpdateEmployee applies fn to the stored record under the store's write lock.
	UpdateEmployee(ctx context.Context, id int64, fn func(*Employee)) (Employee, error)
	DeleteEmployee(ctx context.Context, id int64) error

	ListDepartments(ctx context.Context) ([]Department, error)
	CreateDepartment(ctx context.Context, dep Department) (Department, error)
	UpdateDepartment(ctx context.Context, id int64, fn func(*Department)) (Department, error)
	DeleteDepartment(ctx context.Context, id int64) error
}
