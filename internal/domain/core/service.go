package core

import "context"

type Service struct {
	store StoreAPI
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store}
}

func (s *Service) ListEmployees(ctx context.Context) ([]Employee, error) {
	return s.store.ListEmployees(ctx)
}

func (s *Service) CreateEmployee(ctx context.Context, emp Employee) (Employee, error) {
	emp.ID = 0
	return s.store.CreateEmployee(ctx, emp)
}

func (s *Service) UpdateEmployee(ctx context.Context, id int64, patch EmployeePatch) (Employee, error) {
	return s.store.UpdateEmployee(ctx, id, patch.Apply)
}

func (s *Service) DeleteEmployee(ctx context.Context, id int64) error {
	return s.store.DeleteEmployee(ctx, id)
}

func (s *Service) ListDepartments(ctx context.Context) ([]Department, error) {
	return s.store.ListDepartments(ctx)
}

func (s *Service) CreateDepartment(ctx context.Context, dep Department) (Department, error) {
	dep.ID = 0
	return s.store.CreateDepartment(ctx, dep)
}

func (s *Service) UpdateDepartment(ctx context.Context, id int64, patch DepartmentPatch) (Department, error) {
	return s.store.UpdateDepartment(ctx, id, patch.Apply)
}

func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	return s.store.DeleteDepartment(ctx, id)
}
