package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"webinars/internal/domain"
)

// ParticipationRepository is an in-memory domain.ParticipationRepository.
// It performs no uniqueness checks; those belong to the booking use case.
type ParticipationRepository struct {
	mu             sync.RWMutex
	participations []*domain.Participation
}

// NewParticipationRepository returns an empty ParticipationRepository.
func NewParticipationRepository() *ParticipationRepository {
	return &ParticipationRepository{}
}

func (r *ParticipationRepository) FindByWebinarID(ctx context.Context, webinarID string) ([]*domain.Participation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := []*domain.Participation{}
	for _, p := range r.participations {
		if p.WebinarID == webinarID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *ParticipationRepository) Save(ctx context.Context, participation *domain.Participation) error {
	if participation.ID == "" {
		participation.ID = uuid.NewString()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.participations = append(r.participations, participation)
	return nil
}

// Count returns the number of stored participations across all webinars.
func (r *ParticipationRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.participations)
}
