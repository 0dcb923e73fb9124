package db

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"hrportal/internal/domain/auth"
	"hrportal/internal/domain/core"
	"hrportal/internal/platform/config"
)

type seedAccount struct {
	username string
	password string
	role     string
}

// Demo accounts, created outside production on an empty user table.
var demoAccounts = []seedAccount{
	{username: "admin", password: "admin123", role: auth.RoleAdmin},
	{username: "admin@admin.com", password: "admin123", role: auth.RoleAdmin},
	{username: "user1", password: "user123", role: auth.RoleUser},
}

var defaultDepartments = []core.Department{
	{Name: "Engineering", Description: "Software team"},
	{Name: "HR", Description: "Human Resources"},
}

// Seed fills an empty store with the initial accounts and departments.
// Stores that already hold users or departments are left untouched.
func Seed(ctx context.Context, users auth.StoreAPI, directory core.StoreAPI, cfg config.Config) error {
	if err := ensureAccounts(ctx, users, cfg); err != nil {
		return err
	}
	return ensureDepartments(ctx, directory)
}

func ensureAccounts(ctx context.Context, users auth.StoreAPI, cfg config.Config) error {
	count, err := users.CountUsers(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	var accounts []seedAccount
	if strings.TrimSpace(cfg.SeedAdminUsername) != "" && strings.TrimSpace(cfg.SeedAdminPassword) != "" {
		accounts = append(accounts, seedAccount{username: cfg.SeedAdminUsername, password: cfg.SeedAdminPassword, role: auth.RoleAdmin})
	}
	if !cfg.IsProduction() {
		accounts = append(accounts, demoAccounts...)
	}

	for _, acct := range accounts {
		if err := ensureAccount(ctx, users, acct); err != nil {
			return err
		}
	}
	return nil
}

func ensureAccount(ctx context.Context, users auth.StoreAPI, acct seedAccount) error {
	if _, err := users.FindUserByUsername(ctx, acct.username); err == nil {
		return nil
	} else if !errors.Is(err, auth.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(acct.password)
	if err != nil {
		return err
	}
	if _, err := users.CreateUser(ctx, auth.User{Username: acct.username, PasswordHash: hash, Role: acct.role}); err != nil {
		return err
	}
	slog.Info("seeded account", "username", acct.username, "role", acct.role)
	return nil
}

func ensureDepartments(ctx context.Context, directory core.StoreAPI) error {
	existing, err := directory.ListDepartments(ctx)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}
	for _, dep := range defaultDepartments {
		if _, err := directory.CreateDepartment(ctx, dep); err != nil {
			return err
		}
	}
	return nil
}
