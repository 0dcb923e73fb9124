// Package memory keeps every collection in process memory. Each collection
// has its own lock and a monotonic id counter, so ids are never reused after
// a delete.
package memory

import (
	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/core"
	"hrportal/internal/domain/requests"
)

type Store struct {
	users       userTable
	employees   employeeTable
	departments departmentTable
	requests    requestTable
}

func New() *Store {
	return &Store{}
}

var (
	_ auth.StoreAPI     = (*Store)(nil)
	_ core.StoreAPI     = (*Store)(nil)
	_ requests.StoreAPI = (*Store)(nil)
)
