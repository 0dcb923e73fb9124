package auth_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/storage/memory"
)

func newService(t *testing.T) *auth.Service {
	t.Helper()
	return auth.NewService(memory.New(), "test-secret", time.Hour)
}

func TestRegisterDuplicateConflicts(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)

	user, err := svc.Register(ctx, auth.Credentials{Username: "a@b.com", Password: "secret1"})
	if err != nil {
		t.Fatalf("register error: %v", err)
	}
	if user.Role != auth.RoleUser {
		t.Fatalf("expected default role user, got %q", user.Role)
	}
	if user.PasswordHash == "secret1" || user.PasswordHash == "" {
		t.Fatal("expected password to be stored hashed")
	}

	if _, err := svc.Register(ctx, auth.Credentials{Username: "a@b.com", Password: "other"}); !errors.Is(err, auth.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestRegisterValidation(t *testing.T) {
	tests := []struct {
		name  string
		creds auth.Credentials
		want  error
	}{
		{name: "missing username", creds: auth.Credentials{Password: "x"}, want: auth.ErrCredentialsRequired},
		{name: "missing password", creds: auth.Credentials{Username: "x"}, want: auth.ErrCredentialsRequired},
		{name: "blank username", creds: auth.Credentials{Username: "   ", Password: "x"}, want: auth.ErrCredentialsRequired},
		{name: "unknown role", creds: auth.Credentials{Username: "x", Password: "y", Role: "root"}, want: auth.ErrInvalidRole},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := newService(t).Register(context.Background(), tc.creds)
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestRegisterAdminRespectsSignupFlag(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	svc.AllowAdminSignup = false

	if _, err := svc.Register(ctx, auth.Credentials{Username: "boss", Password: "pw", Role: auth.RoleAdmin}); !errors.Is(err, auth.ErrAdminSignupDisabled) {
		t.Fatalf("expected ErrAdminSignupDisabled, got %v", err)
	}
	if _, err := svc.CreateUser(ctx, auth.Credentials{Username: "boss", Password: "pw", Role: auth.RoleAdmin}); err != nil {
		t.Fatalf("admin-created admin should be allowed, got %v", err)
	}
}

func TestLoginFailures(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	if _, err := svc.Register(ctx, auth.Credentials{Username: "a@b.com", Password: "secret1"}); err != nil {
		t.Fatalf("register error: %v", err)
	}

	if _, _, err := svc.Login(ctx, "a@b.com", "wrong"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody@b.com", "secret1"); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", err)
	}
}

func TestLoginIssuesTokenWithClaims(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	registered, _ := svc.Register(ctx, auth.Credentials{Username: "a@b.com", Password: "secret1"})

	token, user, err := svc.Login(ctx, "a@b.com", "secret1")
	if err != nil {
		t.Fatalf("login error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("expected user %d, got %d", registered.ID, user.ID)
	}

	claims, err := auth.ParseToken("test-secret", token)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if claims.UserID != registered.ID || claims.Username != "a@b.com" || claims.Role != auth.RoleUser {
		t.Fatalf("unexpected claims: %+v", claims)
	}
}

func TestUpdateUserRehashesOnlyWhenPasswordGiven(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	user, _ := svc.CreateUser(ctx, auth.Credentials{Username: "u", Password: "first", Role: auth.RoleUser})

	renamed, err := svc.UpdateUser(ctx, user.ID, auth.AccountChanges{Username: "u2"})
	if err != nil {
		t.Fatalf("update error: %v", err)
	}
	if renamed.PasswordHash != user.PasswordHash {
		t.Fatal("expected password hash to be untouched")
	}
	if _, _, err := svc.Login(ctx, "u2", "first"); err != nil {
		t.Fatalf("expected old password to still work, got %v", err)
	}

	if _, err := svc.UpdateUser(ctx, user.ID, auth.AccountChanges{Password: "second"}); err != nil {
		t.Fatalf("update error: %v", err)
	}
	if _, _, err := svc.Login(ctx, "u2", "second"); err != nil {
		t.Fatalf("expected new password to work, got %v", err)
	}
	if _, err := svc.UpdateUser(ctx, 404, auth.AccountChanges{Role: auth.RoleAdmin}); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if _, err := svc.UpdateUser(ctx, user.ID, auth.AccountChanges{Role: "owner"}); !errors.Is(err, auth.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestDeleteUserGuards(t *testing.T) {
	ctx := context.Background()
	svc := newService(t)
	first, _ := svc.CreateUser(ctx, auth.Credentials{Username: "admin1", Password: "pw", Role: auth.RoleAdmin})
	second, _ := svc.CreateUser(ctx, auth.Credentials{Username: "admin2", Password: "pw", Role: auth.RoleAdmin})
	actor := auth.UserContext{UserID: first.ID, Username: first.Username, Role: auth.RoleAdmin}

	if err := svc.DeleteUser(ctx, actor, first.ID); !errors.Is(err, auth.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
	if err := svc.DeleteUser(ctx, actor, 999); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
	if err := svc.DeleteUser(ctx, actor, second.ID); err != nil {
		t.Fatalf("expected non-last admin delete to succeed, got %v", err)
	}

	// A token may outlive its account; the remaining admin is still protected.
	ghost := auth.UserContext{UserID: second.ID, Role: auth.RoleAdmin}
	if err := svc.DeleteUser(ctx, ghost, first.ID); !errors.Is(err, auth.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}
