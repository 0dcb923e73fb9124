package auth

import (
	"context"
	"errors"
	"strings"
	"time"
)

type Service struct {
	store            StoreAPI
	Secret           string
	TokenTTL         time.Duration
	AllowAdminSignup bool
}

func NewService(store StoreAPI, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{store: store, Secret: secret, TokenTTL: ttl, AllowAdminSignup: true}
}

// Register creates a self-service account. Role defaults to user.
func (s *Service) Register(ctx context.Context, in Credentials) (User, error) {
	role := normalizeRole(in.Role)
	if role == RoleAdmin && !s.AllowAdminSignup {
		return User{}, ErrAdminSignupDisabled
	}
	return s.createAccount(ctx, in.Username, in.Password, role)
}

// Login verifies the password and issues a signed token for the account.
func (s *Service) Login(ctx context.Context, username, password string) (string, User, error) {
	user, err := s.store.FindUserByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return "", User{}, ErrInvalidCredentials
		}
		return "", User{}, err
	}
	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateToken(s.Secret, Claims{UserID: user.ID, Username: user.Username, Role: user.Role}, s.TokenTTL)
	if err != nil {
		return "", User{}, err
	}
	return token, user, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]User, error) {
	return s.store.ListUsers(ctx)
}

func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.store.CountUsers(ctx)
}

// CreateUser is the admin path for adding accounts; any valid role is allowed.
func (s *Service) CreateUser(ctx context.Context, in Credentials) (User, error) {
	return s.createAccount(ctx, in.Username, in.Password, normalizeRole(in.Role))
}

// UpdateUser merges the non-empty fields of changes. The password is
// re-hashed only when a new one is supplied.
func (s *Service) UpdateUser(ctx context.Context, id int64, changes AccountChanges) (User, error) {
	var update UserUpdate
	if username := strings.TrimSpace(changes.Username); username != "" {
		update.Username = &username
	}
	if role := strings.TrimSpace(changes.Role); role != "" {
		if !ValidRole(role) {
			return User{}, ErrInvalidRole
		}
		update.Role = &role
	}
	if changes.Password != "" {
		hash, err := HashPassword(changes.Password)
		if err != nil {
			return User{}, err
		}
		update.PasswordHash = &hash
	}
	return s.store.UpdateUser(ctx, id, update)
}

func (s *Service) DeleteUser(ctx context.Context, actor UserContext, id int64) error {
	if _, err := s.store.GetUser(ctx, id); err != nil {
		return err
	}
	if actor.UserID == id {
		return ErrSelfDelete
	}
	return s.store.DeleteUser(ctx, id)
}

func (s *Service) createAccount(ctx context.Context, username, password, role string) (User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return User{}, ErrCredentialsRequired
	}
	if !ValidRole(role) {
		return User{}, ErrInvalidRole
	}
	if _, err := s.store.FindUserByUsername(ctx, username); err == nil {
		return User{}, ErrUserExists
	} else if !errors.Is(err, ErrUserNotFound) {
		return User{}, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return User{}, err
	}
	return s.store.CreateUser(ctx, User{Username: username, PasswordHash: hash, Role: role})
}

func normalizeRole(role string) string {
	role = strings.TrimSpace(role)
	if role == "" {
		return RoleUser
	}
	return role
}
