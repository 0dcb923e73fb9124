package auth

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrUserExists          = errors.New("user already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrCredentialsRequired = errors.New("username and password required")
	ErrInvalidRole         = errors.New("role must be admin or user")
	ErrAdminSignupDisabled = errors.New("admin self-registration is disabled")
	ErrSelfDelete          = errors.New("cannot delete your own account")
	ErrLastAdmin           = errors.New("cannot remove the last admin")
)
