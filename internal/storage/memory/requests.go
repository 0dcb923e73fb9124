package memory

import (
	"context"
	"sync"

	"hrportal/internal/domain/requests"
)

type requestTable struct {
	mu     sync.RWMutex
	lastID int64
	rows   []requests.Request
}

func (s *Store) ListRequestsByOwner(_ context.Context, owner string) ([]requests.Request, error) {
	s.requests.mu.RLock()
	defer s.requests.mu.RUnlock()
	out := make([]requests.Request, 0)
	for _, req := range s.requests.rows {
		if req.EmployeeEmail == owner {
			out = append(out, cloneRequest(req))
		}
	}
	return out, nil
}

func (s *Store) CreateRequest(_ context.Context, req requests.Request) (requests.Request, error) {
	s.requests.mu.Lock()
	defer s.requests.mu.Unlock()
	s.requests.lastID++
	req.ID = s.requests.lastID
	req = cloneRequest(req)
	s.requests.rows = append(s.requests.rows, req)
	return cloneRequest(req), nil
}

func (s *Store) DeleteOwnedRequest(_ context.Context, id int64, owner string) error {
	s.requests.mu.Lock()
	defer s.requests.mu.Unlock()
	for i, req := range s.requests.rows {
		if req.ID == id && req.EmployeeEmail == owner {
			s.requests.rows = append(s.requests.rows[:i], s.requests.rows[i+1:]...)
			return nil
		}
	}
	return requests.ErrRequestNotFound
}

func (s *Store) CountRequestsByStatus(_ context.Context) (map[string]int, error) {
	s.requests.mu.RLock()
	defer s.requests.mu.RUnlock()
	counts := map[string]int{}
	for _, req := range s.requests.rows {
		counts[req.Status]++
	}
	return counts, nil
}

// cloneRequest detaches the items slice so callers cannot mutate stored rows.
func cloneRequest(req requests.Request) requests.Request {
	items := make([]requests.Item, len(req.Items))
	copy(items, req.Items)
	req.Items = items
	return req
}
