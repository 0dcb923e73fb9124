package auth

import "context"

type StoreAPI interface {
	FindUserByUsername(ctx context.Context, username string) (User, error)
	GetUser(ctx context.Context, id int64) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	// UpdateUser fails with ErrLastAdmin when the change would demote the only admin.
	UpdateUser(ctx context.Context, id int64, update UserUpdate) (User, error)
	// DeleteUser fails with ErrLastAdmin when the target is the only admin.
	DeleteUser(ctx context.Context, id int64) error
	CountUsers(ctx context.Context) (int, error)
}
