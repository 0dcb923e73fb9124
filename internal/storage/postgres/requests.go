package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"hrportal/internal/domain/requests"
)

func (s *Store) ListRequestsByOwner(ctx context.Context, owner string) ([]requests.Request, error) {
	rows, err := s.DB.Query(ctx, `
    SELECT id, type, items, employee_email, to_char(request_date, 'YYYY-MM-DD'), status
    FROM requests
    WHERE employee_email = $1
    ORDER BY id
  `, owner)
	if err != nil {
		return nil, fmt.Errorf("list requests: %w", err)
	}
	defer rows.Close()

	out := make([]requests.Request, 0)
	for rows.Next() {
		var req requests.Request
		var items []byte
		if err := rows.Scan(&req.ID, &req.Type, &items, &req.EmployeeEmail, &req.Date, &req.Status); err != nil {
			return nil, fmt.Errorf("list requests: %w", err)
		}
		if err := json.Unmarshal(items, &req.Items); err != nil {
			return nil, fmt.Errorf("decode request %d items: %w", req.ID, err)
		}
		if req.Items == nil {
			req.Items = []requests.Item{}
		}
		out = append(out, req)
	}
	return out, rows.Err()
}

func (s *Store) CreateRequest(ctx context.Context, req requests.Request) (requests.Request, error) {
	if req.Items == nil {
		req.Items = []requests.Item{}
	}
	items, err := json.Marshal(req.Items)
	if err != nil {
		return requests.Request{}, fmt.Errorf("encode request items: %w", err)
	}
	err = s.DB.QueryRow(ctx, `
    INSERT INTO requests (type, items, employee_email, request_date, status)
    VALUES ($1, $2::jsonb, $3, $4::date, $5)
    RETURNING id
  `, req.Type, string(items), req.EmployeeEmail, req.Date, req.Status).Scan(&req.ID)
	if err != nil {
		return requests.Request{}, fmt.Errorf("create request: %w", err)
	}
	return req, nil
}

func (s *Store) DeleteOwnedRequest(ctx context.Context, id int64, owner string) error {
	tag, err := s.DB.Exec(ctx, "DELETE FROM requests WHERE id = $1 AND employee_email = $2", id, owner)
	if err != nil {
		return fmt.Errorf("delete request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return requests.ErrRequestNotFound
	}
	return nil
}

func (s *Store) CountRequestsByStatus(ctx context.Context) (map[string]int, error) {
	rows, err := s.DB.Query(ctx, "SELECT status, COUNT(1) FROM requests GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("count requests: %w", err)
	}
	defer rows.Close()

	counts := map[string]int{}
	for rows.Next() {
		var status string
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return nil, fmt.Errorf("count requests: %w", err)
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
