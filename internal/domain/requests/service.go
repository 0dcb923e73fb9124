package requests

import (
	"context"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

type Service struct {
	store StoreAPI
	now   func() time.Time
}

func NewService(store StoreAPI) *Service {
	return &Service{store: store, now: time.Now}
}

func (s *Service) ListForOwner(ctx context.Context, owner string) ([]Request, error) {
	return s.store.ListRequestsByOwner(ctx, owner)
}

// Create files a request for owner. Date and status are always server-assigned.
func (s *Service) Create(ctx context.Context, owner string, in NewRequest) (Request, error) {
	reqType := strings.TrimSpace(in.Type)
	if reqType == "" {
		return Request{}, ErrTypeRequired
	}
	items := make([]Item, 0, len(in.Items))
	for _, item := range in.Items {
		name := strings.TrimSpace(item.Name)
		if name == "" || item.Qty < 1 {
			return Request{}, ErrInvalidItem
		}
		items = append(items, Item{Name: name, Qty: item.Qty})
	}

	return s.store.CreateRequest(ctx, Request{
		Type:          reqType,
		Items:         items,
		EmployeeEmail: owner,
		Date:          s.now().UTC().Format(dateLayout),
		Status:        StatusPending,
	})
}

func (s *Service) Delete(ctx context.Context, owner string, id int64) error {
	return s.store.DeleteOwnedRequest(ctx, id, owner)
}

// Summary counts requests of every owner per status.
func (s *Service) Summary(ctx context.Context) (map[string]int, error) {
	counts, err := s.store.CountRequestsByStatus(ctx)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(Statuses))
	for _, status := range Statuses {
		out[status] = counts[status]
	}
	return out, nil
}
