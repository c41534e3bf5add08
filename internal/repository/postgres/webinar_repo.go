package postgres

import (
	"context"
	"database/sql"
	"errors"

	"webinars/internal/domain"
)

type webinarRepository struct {
	DB *sql.DB
}

func NewWebinarRepository(db *sql.DB) domain.WebinarRepository {
	return &webinarRepository{DB: db}
}

func (r *webinarRepository) FindByID(ctx context.Context, id string) (*domain.Webinar, error) {
	query := `
		SELECT id, organizer_id, title, start_date, end_date, seats
		FROM webinars
		WHERE id = $1
	`
	w := &domain.Webinar{}
	err := r.DB.QueryRowContext(ctx, query, id).
		Scan(&w.ID, &w.OrganizerID, &w.Title, &w.StartDate, &w.EndDate, &w.Seats)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return w, nil
}
