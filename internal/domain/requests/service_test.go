package requests

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeStore struct {
	created []Request
	deleted []int64
	counts  map[string]int
}

func (f *fakeStore) ListRequestsByOwner(_ context.Context, owner string) ([]Request, error) {
	var out []Request
	for _, req := range f.created {
		if req.EmployeeEmail == owner {
			out = append(out, req)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateRequest(_ context.Context, req Request) (Request, error) {
	req.ID = int64(len(f.created) + 1)
	f.created = append(f.created, req)
	return req, nil
}

func (f *fakeStore) DeleteOwnedRequest(_ context.Context, id int64, _ string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeStore) CountRequestsByStatus(context.Context) (map[string]int, error) {
	return f.counts, nil
}

func TestCreateAssignsDateAndPendingStatus(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)
	svc.now = func() time.Time { return time.Date(2026, 3, 4, 23, 30, 0, 0, time.FixedZone("x", -5*3600)) }

	req, err := svc.Create(context.Background(), "me@example.com", NewRequest{
		Type:  " Equipment ",
		Items: []Item{{Name: "Laptop", Qty: 1}},
	})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if req.Status != StatusPending {
		t.Fatalf("expected Pending, got %q", req.Status)
	}
	if req.Date != "2026-03-05" {
		t.Fatalf("expected UTC date 2026-03-05, got %q", req.Date)
	}
	if req.EmployeeEmail != "me@example.com" || req.Type != "Equipment" {
		t.Fatalf("unexpected request: %+v", req)
	}
}

func TestCreateDefaultsItemsToEmpty(t *testing.T) {
	req, err := NewService(&fakeStore{}).Create(context.Background(), "me", NewRequest{Type: "Leave"})
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if req.Items == nil || len(req.Items) != 0 {
		t.Fatalf("expected empty non-nil items, got %#v", req.Items)
	}
}

func TestCreateValidation(t *testing.T) {
	tests := []struct {
		name string
		in   NewRequest
		want error
	}{
		{name: "missing type", in: NewRequest{}, want: ErrTypeRequired},
		{name: "unnamed item", in: NewRequest{Type: "Equipment", Items: []Item{{Qty: 1}}}, want: ErrInvalidItem},
		{name: "zero qty", in: NewRequest{Type: "Equipment", Items: []Item{{Name: "Pen"}}}, want: ErrInvalidItem},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewService(&fakeStore{}).Create(context.Background(), "me", tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestSummaryIncludesEveryStatus(t *testing.T) {
	svc := NewService(&fakeStore{counts: map[string]int{StatusPending: 2}})
	summary, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary error: %v", err)
	}
	if summary[StatusPending] != 2 || summary[StatusApproved] != 0 || summary[StatusRejected] != 0 || len(summary) != 3 {
		t.Fatalf("unexpected summary: %v", summary)
	}
}
