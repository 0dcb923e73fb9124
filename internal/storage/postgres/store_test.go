package postgres

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/core"
	"hrportal/internal/domain/requests"
	"hrportal/internal/platform/config"
	"hrportal/internal/platform/db"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	ctx := context.Background()
	pool, err := db.Connect(ctx, config.Config{DatabaseURL: dbURL})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := db.Migrate(ctx, pool, db.Migrations()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if _, err := pool.Exec(ctx, "TRUNCATE users, employees, departments, requests RESTART IDENTITY"); err != nil {
		t.Fatalf("truncate: %v", err)
	}
	return NewStore(pool)
}

func TestUserLifecycle(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	admin, err := store.CreateUser(ctx, auth.User{Username: "root", PasswordHash: "x", Role: auth.RoleAdmin})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateUser(ctx, auth.User{Username: "root", PasswordHash: "x", Role: auth.RoleUser}); !errors.Is(err, auth.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	found, err := store.FindUserByUsername(ctx, "root")
	if err != nil || found.ID != admin.ID {
		t.Fatalf("find: %+v %v", found, err)
	}
	if _, err := store.GetUser(ctx, admin.ID+100); !errors.Is(err, auth.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if err := store.DeleteUser(ctx, admin.ID); !errors.Is(err, auth.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	demote := auth.RoleUser
	if _, err := store.UpdateUser(ctx, admin.ID, auth.UserUpdate{Role: &demote}); !errors.Is(err, auth.ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin on demotion, got %v", err)
	}

	other, _ := store.CreateUser(ctx, auth.User{Username: "second", PasswordHash: "x", Role: auth.RoleAdmin})
	taken := "root"
	if _, err := store.UpdateUser(ctx, other.ID, auth.UserUpdate{Username: &taken}); !errors.Is(err, auth.ErrUserExists) {
		t.Fatalf("expected ErrUserExists on rename, got %v", err)
	}
	if err := store.DeleteUser(ctx, admin.ID); err != nil {
		t.Fatalf("delete non-last admin: %v", err)
	}
	count, _ := store.CountUsers(ctx)
	if count != 1 {
		t.Fatalf("expected 1 user left, got %d", count)
	}
}

func TestConcurrentAdminDemotionsKeepOneAdmin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var ids []int64
	for _, name := range []string{"alpha", "beta"} {
		u, err := store.CreateUser(ctx, auth.User{Username: name, PasswordHash: "x", Role: auth.RoleAdmin})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, u.ID)
	}

	for round := 0; round < 10; round++ {
		errs := make([]error, len(ids))
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id int64) {
				defer wg.Done()
				demote := auth.RoleUser
				_, errs[i] = store.UpdateUser(ctx, id, auth.UserUpdate{Role: &demote})
			}(i, id)
		}
		wg.Wait()

		refused := 0
		for _, err := range errs {
			switch {
			case err == nil:
			case errors.Is(err, auth.ErrLastAdmin):
				refused++
			default:
				t.Fatalf("round %d: unexpected error %v", round, err)
			}
		}
		if refused != 1 {
			t.Fatalf("round %d: expected exactly one refusal, got %d", round, refused)
		}

		promote := auth.RoleAdmin
		for _, id := range ids {
			if _, err := store.UpdateUser(ctx, id, auth.UserUpdate{Role: &promote}); err != nil {
				t.Fatalf("round %d: promote: %v", round, err)
			}
		}
	}
}

func TestConcurrentAdminDeletesKeepOneAdmin(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	var ids []int64
	for _, name := range []string{"alpha", "beta", "gamma"} {
		u, err := store.CreateUser(ctx, auth.User{Username: name, PasswordHash: "x", Role: auth.RoleAdmin})
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		ids = append(ids, u.ID)
	}

	errs := make([]error, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id int64) {
			defer wg.Done()
			errs[i] = store.DeleteUser(ctx, id)
		}(i, id)
	}
	wg.Wait()

	refused := 0
	for _, err := range errs {
		switch {
		case err == nil:
		case errors.Is(err, auth.ErrLastAdmin):
			refused++
		default:
			t.Fatalf("unexpected error %v", err)
		}
	}
	if refused != 1 {
		t.Fatalf("expected exactly one refusal, got %d", refused)
	}
	if count, _ := store.CountUsers(ctx); count != 1 {
		t.Fatalf("expected 1 admin left, got %d", count)
	}
}

func TestDirectoryUpdateMergesUnderLock(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	emp, err := store.CreateEmployee(ctx, core.Employee{EmployeeID: "E-1", UserEmail: "a@example.com", HireDate: "2024-01-15"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	position := "Lead"
	updated, err := store.UpdateEmployee(ctx, emp.ID, core.EmployeePatch{Position: &position}.Apply)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.EmployeeID != "E-1" || updated.Position != "Lead" {
		t.Fatalf("unexpected merge: %+v", updated)
	}
	if _, err := store.UpdateDepartment(ctx, 999, func(*core.Department) {}); !errors.Is(err, core.ErrDepartmentNotFound) {
		t.Fatalf("expected ErrDepartmentNotFound, got %v", err)
	}
	if err := store.DeleteEmployee(ctx, emp.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := store.DeleteEmployee(ctx, emp.ID); !errors.Is(err, core.ErrEmployeeNotFound) {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestRequestsRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)
	today := time.Now().UTC().Format("2006-01-02")

	created, err := store.CreateRequest(ctx, requests.Request{
		Type:          "Equipment",
		Items:         []requests.Item{{Name: "Laptop", Qty: 1}},
		EmployeeEmail: "me@example.com",
		Date:          today,
		Status:        requests.StatusPending,
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := store.ListRequestsByOwner(ctx, "me@example.com")
	if err != nil || len(list) != 1 {
		t.Fatalf("list: %+v %v", list, err)
	}
	if got := list[0]; got.Date != today || len(got.Items) != 1 || got.Items[0].Name != "Laptop" {
		t.Fatalf("unexpected row: %+v", got)
	}

	if err := store.DeleteOwnedRequest(ctx, created.ID, "you@example.com"); !errors.Is(err, requests.ErrRequestNotFound) {
		t.Fatalf("expected ErrRequestNotFound, got %v", err)
	}
	counts, _ := store.CountRequestsByStatus(ctx)
	if counts[requests.StatusPending] != 1 {
		t.Fatalf("unexpected counts: %v", counts)
	}
	if err := store.DeleteOwnedRequest(ctx, created.ID, "me@example.com"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if list, _ := store.ListRequestsByOwner(ctx, "me@example.com"); len(list) != 0 {
		t.Fatalf("expected empty list, got %s", fmt.Sprint(list))
	}
}
