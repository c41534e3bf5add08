package domain

import (
	"context"
	"time"
)

// Participation is one seat claimed by one user in one webinar.
// swagger:model Participation
type Participation struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	WebinarID string    `json:"webinar_id"`
	CreatedAt time.Time `json:"created_at"`
}

// NewParticipation creates a new Participation. ID is typically set by the repository on save.
func NewParticipation(userID, webinarID string, createdAt time.Time) *Participation {
	return &Participation{
		UserID:    userID,
		WebinarID: webinarID,
		CreatedAt: createdAt,
	}
}

// ParticipationRepository defines storage operations for participations.
// Order of FindByWebinarID results carries no meaning.
type ParticipationRepository interface {
	FindByWebinarID(ctx context.Context, webinarID string) ([]*Participation, error)
	Save(ctx context.Context, participation *Participation) error
}

// BookSeatRequest is the input of the BookSeat use case.
type BookSeatRequest struct {
	WebinarID string
	User      *User
}

// BookSeatUseCase books a seat for a user in a webinar.
type BookSeatUseCase interface {
	// Execute validates the booking rules, persists the participation and
	// notifies the organizer. It returns ErrWebinarNotFound,
	// ErrAlreadyParticipating or ErrNoSeatsAvailable on rule violations,
	// in which case nothing is persisted.
	Execute(ctx context.Context, req BookSeatRequest) error
	// ListParticipants returns the participations of an existing webinar.
	ListParticipants(ctx context.Context, webinarID string) ([]*Participation, error)
}
