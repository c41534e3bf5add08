package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"webinars/internal/domain"
)

type bookSeatUseCase struct {
	participationRepo domain.ParticipationRepository
	webinarRepo       domain.WebinarRepository
	notifier          domain.NotificationService
	logger            *slog.Logger
	locks             *keyedMutex
	contextTimeout    time.Duration
	now               func() time.Time
}

// NewBookSeatUseCase returns a BookSeatUseCase over the given ports. Bookings
// for the same webinar are serialised within this process.
func NewBookSeatUseCase(
	participationRepo domain.ParticipationRepository,
	webinarRepo domain.WebinarRepository,
	notifier domain.NotificationService,
	logger *slog.Logger,
	timeout time.Duration,
) domain.BookSeatUseCase {
	return &bookSeatUseCase{
		participationRepo: participationRepo,
		webinarRepo:       webinarRepo,
		notifier:          notifier,
		logger:            logger,
		locks:             newKeyedMutex(),
		contextTimeout:    timeout,
		now:               time.Now,
	}
}

func (uc *bookSeatUseCase) Execute(ctx context.Context, req domain.BookSeatRequest) error {
	if req.User == nil {
		return fmt.Errorf("book seat: user is required")
	}
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	unlock := uc.locks.Lock(req.WebinarID)
	webinar, err := uc.book(ctx, req)
	unlock()
	if err != nil {
		return err
	}

	// A failed notification does not undo the booking.
	if err := uc.notifier.NotifyNewParticipant(ctx, webinar, req.User); err != nil {
		uc.logger.WarnContext(ctx, "notify organizer failed",
			"webinar_id", webinar.ID, "user_id", req.User.ID, "err", err)
		return fmt.Errorf("%w: %w", domain.ErrNotificationFailed, err)
	}
	return nil
}

func (uc *bookSeatUseCase) book(ctx context.Context, req domain.BookSeatRequest) (*domain.Webinar, error) {
	webinar, err := uc.getWebinar(ctx, req.WebinarID)
	if err != nil {
		return nil, err
	}

	existing, err := uc.participationRepo.FindByWebinarID(ctx, webinar.ID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	if isParticipating(existing, req.User.ID) {
		return nil, domain.ErrAlreadyParticipating
	}
	if len(existing) >= webinar.Seats {
		return nil, domain.ErrNoSeatsAvailable
	}

	participation := domain.NewParticipation(req.User.ID, webinar.ID, uc.now())
	if err := uc.participationRepo.Save(ctx, participation); err != nil {
		switch {
		case errors.Is(err, domain.ErrAlreadyParticipating):
			return nil, domain.ErrAlreadyParticipating
		case errors.Is(err, domain.ErrNoSeatsAvailable):
			return nil, domain.ErrNoSeatsAvailable
		case errors.Is(err, domain.ErrNotFound):
			return nil, domain.ErrWebinarNotFound
		}
		return nil, fmt.Errorf("save participation: %w", err)
	}
	uc.logger.InfoContext(ctx, "seat booked",
		"webinar_id", webinar.ID, "user_id", req.User.ID, "booked", len(existing)+1, "seats", webinar.Seats)
	return webinar, nil
}

func (uc *bookSeatUseCase) ListParticipants(ctx context.Context, webinarID string) ([]*domain.Participation, error) {
	ctx, cancel := context.WithTimeout(ctx, uc.contextTimeout)
	defer cancel()

	if _, err := uc.getWebinar(ctx, webinarID); err != nil {
		return nil, err
	}
	participations, err := uc.participationRepo.FindByWebinarID(ctx, webinarID)
	if err != nil {
		return nil, fmt.Errorf("list participations: %w", err)
	}
	if participations == nil {
		participations = []*domain.Participation{}
	}
	return participations, nil
}

func (uc *bookSeatUseCase) getWebinar(ctx context.Context, webinarID string) (*domain.Webinar, error) {
	webinar, err := uc.webinarRepo.FindByID(ctx, webinarID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrWebinarNotFound
		}
		return nil, fmt.Errorf("get webinar: %w", err)
	}
	if webinar == nil {
		return nil, domain.ErrWebinarNotFound
	}
	return webinar, nil
}

func isParticipating(participations []*domain.Participation, userID string) bool {
	for _, p := range participations {
		if p.UserID == userID {
			return true
		}
	}
	return false
}
