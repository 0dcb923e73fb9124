package memory

import (
	"context"
	"sync"

	"hrportal/internal/domain/auth"
)

type userTable struct {
	mu     sync.RWMutex
	lastID int64
	rows   []auth.User
}

func (s *Store) FindUserByUsername(_ context.Context, username string) (auth.User, error) {
	s.users.mu.RLock()
	defer s.users.mu.RUnlock()
	for _, u := range s.users.rows {
		if u.Username == username {
			return u, nil
		}
	}
	return auth.User{}, auth.ErrUserNotFound
}

func (s *Store) GetUser(_ context.Context, id int64) (auth.User, error) {
	s.users.mu.RLock()
	defer s.users.mu.RUnlock()
	if i := s.users.indexOf(id); i >= 0 {
		return s.users.rows[i], nil
	}
	return auth.User{}, auth.ErrUserNotFound
}

func (s *Store) ListUsers(_ context.Context) ([]auth.User, error) {
	s.users.mu.RLock()
	defer s.users.mu.RUnlock()
	out := make([]auth.User, len(s.users.rows))
	copy(out, s.users.rows)
	return out, nil
}

func (s *Store) CountUsers(_ context.Context) (int, error) {
	s.users.mu.RLock()
	defer s.users.mu.RUnlock()
	return len(s.users.rows), nil
}

func (s *Store) CreateUser(_ context.Context, user auth.User) (auth.User, error) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	if s.users.usernameTaken(user.Username, 0) {
		return auth.User{}, auth.ErrUserExists
	}
	s.users.lastID++
	user.ID = s.users.lastID
	s.users.rows = append(s.users.rows, user)
	return user, nil
}

func (s *Store) UpdateUser(_ context.Context, id int64, update auth.UserUpdate) (auth.User, error) {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	i := s.users.indexOf(id)
	if i < 0 {
		return auth.User{}, auth.ErrUserNotFound
	}
	user := s.users.rows[i]
	if update.Username != nil && *update.Username != user.Username {
		if s.users.usernameTaken(*update.Username, id) {
			return auth.User{}, auth.ErrUserExists
		}
		user.Username = *update.Username
	}
	if update.Role != nil {
		if user.Role == auth.RoleAdmin && *update.Role != auth.RoleAdmin && s.users.adminCount() <= 1 {
			return auth.User{}, auth.ErrLastAdmin
		}
		user.Role = *update.Role
	}
	if update.PasswordHash != nil {
		user.PasswordHash = *update.PasswordHash
	}
	s.users.rows[i] = user
	return user, nil
}

func (s *Store) DeleteUser(_ context.Context, id int64) error {
	s.users.mu.Lock()
	defer s.users.mu.Unlock()
	i := s.users.indexOf(id)
	if i < 0 {
		return auth.ErrUserNotFound
	}
	if s.users.rows[i].Role == auth.RoleAdmin && s.users.adminCount() <= 1 {
		return auth.ErrLastAdmin
	}
	s.users.rows = append(s.users.rows[:i], s.users.rows[i+1:]...)
	return nil
}

func (t *userTable) indexOf(id int64) int {
	for i, u := range t.rows {
		if u.ID == id {
			return i
		}
	}
	return -1
}

func (t *userTable) usernameTaken(username string, exceptID int64) bool {
	for _, u := range t.rows {
		if u.Username == username && u.ID != exceptID {
			return true
		}
	}
	return false
}

func (t *userTable) adminCount() int {
	count := 0
	for _, u := range t.rows {
		if u.Role == auth.RoleAdmin {
			count++
		}
	}
	return count
}
