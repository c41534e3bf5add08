package memory

import (
	"context"
	"sync"

	"webinars/internal/domain"
)

type webinarRepository struct {
	mu       sync.RWMutex
	webinars []*domain.Webinar
}

// NewWebinarRepository returns a WebinarRepository holding the given webinars.
func NewWebinarRepository(webinars ...*domain.Webinar) domain.WebinarRepository {
	return &webinarRepository{webinars: webinars}
}

func (r *webinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.webinars {
		if w.ID == id {
			return w, nil
		}
	}
	return nil, domain.ErrNotFound
}
