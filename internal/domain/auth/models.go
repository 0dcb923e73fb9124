package auth

// User is an account able to sign in. Username doubles as the account email.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	Role         string `json:"role"`
}

// UserContext is the authenticated caller attached to a request.
type UserContext struct {
	UserID   int64
	Username string
	Role     string
}

// UserUpdate carries the fields to change; nil means keep.
type UserUpdate struct {
	Username     *string
	Role         *string
	PasswordHash *string
}

type Credentials struct {
	Username string
	Password string
	Role     string
}

type AccountChanges struct {
	Username string
	Password string
	Role     string
}
