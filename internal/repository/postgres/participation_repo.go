package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"webinars/internal/domain"
)

type participationRepository struct {
	DB *sql.DB
}

func NewParticipationRepository(db *sql.DB) domain.ParticipationRepository {
	return &participationRepository{DB: db}
}

// Save inserts the participation while holding a row lock on its webinar, so
// concurrent bookings from any process see each other's seats. The duplicate
// and capacity rules are re-checked under the lock and reported as
// domain.ErrAlreadyParticipating and domain.ErrNoSeatsAvailable.
func (r *participationRepository) Save(ctx context.Context, p *domain.Participation) error {
	return withTx(ctx, r.DB, func(tx *sql.Tx) error {
		var seats int
		err := tx.QueryRowContext(ctx, `SELECT seats FROM webinars WHERE id = $1 FOR UPDATE`, p.WebinarID).Scan(&seats)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return fmt.Errorf("lock webinar %s: %w", p.WebinarID, domain.ErrNotFound)
			}
			return fmt.Errorf("lock webinar: %w", err)
		}

		var taken int
		var participating bool
		err = tx.QueryRowContext(ctx, `
			SELECT count(*), count(*) FILTER (WHERE user_id = $2) > 0
			FROM participations
			WHERE webinar_id = $1
		`, p.WebinarID, p.UserID).Scan(&taken, &participating)
		if err != nil {
			return fmt.Errorf("count participations: %w", err)
		}
		if participating {
			return domain.ErrAlreadyParticipating
		}
		if taken >= seats {
			return domain.ErrNoSeatsAvailable
		}

		query := `
			INSERT INTO participations (user_id, webinar_id, created_at)
			VALUES ($1, $2, $3)
			RETURNING id
		`
		err = tx.QueryRowContext(ctx, query, p.UserID, p.WebinarID, p.CreatedAt).Scan(&p.ID)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert participation: %w", domain.ErrAlreadyParticipating)
			}
			return err
		}
		return nil
	})
}

func (r *participationRepository) FindByWebinarID(ctx context.Context, webinarID string) ([]*domain.Participation, error) {
	query := `
		SELECT id, user_id, webinar_id, created_at
		FROM participations
		WHERE webinar_id = $1
		ORDER BY created_at
	`
	rows, err := r.DB.QueryContext(ctx, query, webinarID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var participations []*domain.Participation
	for rows.Next() {
		p := &domain.Participation{}
		if err := rows.Scan(&p.ID, &p.UserID, &p.WebinarID, &p.CreatedAt); err != nil {
			return nil, err
		}
		participations = append(participations, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if participations == nil {
		participations = []*domain.Participation{}
	}
	return participations, nil
}
