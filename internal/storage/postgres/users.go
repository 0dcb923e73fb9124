package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"hrportal/internal/domain/auth"
	"hrportal/internal/platform/querier"
)

func scanUser(row pgx.Row) (auth.User, error) {
	var u auth.User
	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return auth.User{}, auth.ErrUserNotFound
		}
		return auth.User{}, err
	}
	return u, nil
}

func (s *Store) FindUserByUsername(ctx context.Context, username string) (auth.User, error) {
	return scanUser(s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role
    FROM users
    WHERE username = $1
  `, username))
}

func (s *Store) GetUser(ctx context.Context, id int64) (auth.User, error) {
	return scanUser(s.DB.QueryRow(ctx, `
    SELECT id, username, password_hash, role
    FROM users
    WHERE id = $1
  `, id))
}

func (s *Store) ListUsers(ctx context.Context) ([]auth.User, error) {
	rows, err := s.DB.Query(ctx, "SELECT id, username, password_hash, role FROM users ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	out := make([]auth.User, 0)
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return nil, fmt.Errorf("list users: %w", err)
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (s *Store) CountUsers(ctx context.Context) (int, error) {
	var count int
	if err := s.DB.QueryRow(ctx, "SELECT COUNT(1) FROM users").Scan(&count); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (s *Store) CreateUser(ctx context.Context, user auth.User) (auth.User, error) {
	err := s.DB.QueryRow(ctx, `
    INSERT INTO users (username, password_hash, role)
    VALUES ($1, $2, $3)
    RETURNING id
  `, user.Username, user.PasswordHash, user.Role).Scan(&user.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return auth.User{}, auth.ErrUserExists
		}
		return auth.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (s *Store) UpdateUser(ctx context.Context, id int64, update auth.UserUpdate) (auth.User, error) {
	var out auth.User
	err := s.inTx(ctx, func(tx pgx.Tx) error {
		current, admins, err := lockTarget(ctx, tx, id)
		if err != nil {
			return err
		}

		if update.Role != nil && current.Role == auth.RoleAdmin && *update.Role != auth.RoleAdmin && admins <= 1 {
			return auth.ErrLastAdmin
		}

		next := current
		if update.Username != nil {
			next.Username = *update.Username
		}
		if update.Role != nil {
			next.Role = *update.Role
		}
		if update.PasswordHash != nil {
			next.PasswordHash = *update.PasswordHash
		}

		if _, err := tx.Exec(ctx, `
      UPDATE users
      SET username = $1, password_hash = $2, role = $3
      WHERE id = $4
    `, next.Username, next.PasswordHash, next.Role, id); err != nil {
			if isUniqueViolation(err) {
				return auth.ErrUserExists
			}
			return fmt.Errorf("update user: %w", err)
		}
		out = next
		return nil
	})
	if err != nil {
		return auth.User{}, err
	}
	return out, nil
}

func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	return s.inTx(ctx, func(tx pgx.Tx) error {
		target, admins, err := lockTarget(ctx, tx, id)
		if err != nil {
			return err
		}
		if target.Role == auth.RoleAdmin && admins <= 1 {
			return auth.ErrLastAdmin
		}
		if _, err := tx.Exec(ctx, "DELETE FROM users WHERE id = $1", id); err != nil {
			return fmt.Errorf("delete user: %w", err)
		}
		return nil
	})
}

// lockTarget locks the target row together with every admin row in id order,
// so concurrent demotions and deletes queue behind each other instead of
// deadlocking. It returns the target and the number of admins it saw.
func lockTarget(ctx context.Context, q querier.Querier, id int64) (auth.User, int, error) {
	rows, err := q.Query(ctx, `
    SELECT id, username, password_hash, role
    FROM users
    WHERE id = $1 OR role = $2
    ORDER BY id
    FOR UPDATE
  `, id, auth.RoleAdmin)
	if err != nil {
		return auth.User{}, 0, fmt.Errorf("lock users: %w", err)
	}
	defer rows.Close()

	var target auth.User
	found := false
	admins := 0
	for rows.Next() {
		var u auth.User
		if err := rows.Scan(&u.ID, &u.Username, &u.PasswordHash, &u.Role); err != nil {
			return auth.User{}, 0, fmt.Errorf("lock users: %w", err)
		}
		if u.Role == auth.RoleAdmin {
			admins++
		}
		if u.ID == id {
			target = u
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return auth.User{}, 0, fmt.Errorf("lock users: %w", err)
	}
	if !found {
		return auth.User{}, 0, auth.ErrUserNotFound
	}
	return target, admins, nil
}
