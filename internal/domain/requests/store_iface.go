package requests

import "context"

type StoreAPI interface {
	ListRequestsByOwner(ctx context.Context, owner string) ([]Request, error)
	CreateRequest(ctx context.Context, req Request) (Request, error)
	// DeleteOwnedRequest reports ErrRequestNotFound for missing rows and rows owned by someone else.
	DeleteOwnedRequest(ctx context.Context, id int64, owner string) error
	CountRequestsByStatus(ctx context.Context) (map[string]int, error)
}
