package reports

import (
	"context"

	"hrportal/internal/domain/core"
)

type Directory interface {
	ListEmployees(ctx context.Context) ([]core.Employee, error)
	ListDepartments(ctx context.Context) ([]core.Department, error)
}

type UserCounter interface {
	CountUsers(ctx context.Context) (int, error)
}

type RequestSummarizer interface {
	Summary(ctx context.Context) (map[string]int, error)
}

type Service struct {
	directory Directory
	users     UserCounter
	requests  RequestSummarizer
}

func NewService(directory Directory, users UserCounter, requests RequestSummarizer) *Service {
	return &Service{directory: directory, users: users, requests: requests}
}

type Dashboard struct {
	Employees   int            `json:"employees"`
	Departments int            `json:"departments"`
	Users       int            `json:"users"`
	Requests    map[string]int `json:"requests"`
}

func (s *Service) Dashboard(ctx context.Context) (Dashboard, error) {
	employees, err := s.directory.ListEmployees(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	departments, err := s.directory.ListDepartments(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	users, err := s.users.CountUsers(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	summary, err := s.requests.Summary(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return Dashboard{
		Employees:   len(employees),
		Departments: len(departments),
		Users:       users,
		Requests:    summary,
	}, nil
}

// Roster loads everything needed to render an employee roster export.
func (s *Service) Roster(ctx context.Context) (Roster, error) {
	employees, err := s.directory.ListEmployees(ctx)
	if err != nil {
		return Roster{}, err
	}
	departments, err := s.directory.ListDepartments(ctx)
	if err != nil {
		return Roster{}, err
	}
	return Roster{Employees: employees, Headcounts: DepartmentHeadcounts(employees, departments)}, nil
}
