package domain

import (
	"context"
	"time"
)

// User represents a registered user. Users are created by the registration
// flow and are read-only for booking.
// swagger:model User
type User struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Password string `json:"-"`
}

// NewUser returns a new User with the given fields.
func NewUser(id, email, password string) *User {
	return &User{ID: id, Email: email, Password: password}
}

// PasswordHasher hashes and verifies user passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}

// TokenIssuer issues tokens (e.g. JWT) for an authenticated user.
type TokenIssuer interface {
	Issue(userID, email string, expiry time.Duration) (string, error)
}

// TokenVerifier verifies a token and returns the authenticated user ID.
type TokenVerifier interface {
	Verify(token string) (userID string, err error)
}

// UserRepository defines the interface for user lookup
type UserRepository interface {
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
}

// AuthService authenticates users and issues access tokens.
type AuthService interface {
	Login(ctx context.Context, email, password string) (token string, user *User, err error)
}
