// Package memory provides slice-backed repositories for local runs and tests.
// Lookups are linear scans.
package memory

import (
	"context"
	"strings"
	"sync"

	"webinars/internal/domain"
)

type userRepository struct {
	mu    sync.RWMutex
	users []*domain.User
}

// NewUserRepository returns a UserRepository holding the given users.
func NewUserRepository(users ...*domain.User) domain.UserRepository {
	return &userRepository{users: users}
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}
