package domain

import (
	"context"
	"time"
)

// Webinar is an online event with a fixed seat capacity and a single organizer.
// swagger:model Webinar
type Webinar struct {
	ID          string    `json:"id"`
	OrganizerID string    `json:"organizer_id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	Seats       int       `json:"seats"`
}

// NewWebinar returns a new Webinar with the given fields.
func NewWebinar(id, organizerID, title string, startDate, endDate time.Time, seats int) *Webinar {
	return &Webinar{
		ID:          id,
		OrganizerID: organizerID,
		Title:       title,
		StartDate:   startDate,
		EndDate:     endDate,
		Seats:       seats,
	}
}

// WebinarRepository defines the interface for webinar lookup
type WebinarRepository interface {
	FindByID(ctx context.Context, id string) (*Webinar, error)
}
