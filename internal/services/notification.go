package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"webinars/internal/domain"
)

const newParticipantTemplate = "new_participant"

type emailNotificationService struct {
	userRepo domain.UserRepository
	mailer   domain.Mailer
	renderer domain.EmailTemplateRenderer
	logger   *slog.Logger
}

// NewEmailNotificationService returns a NotificationService that emails the
// webinar organizer. A webinar whose organizer cannot be found is skipped
// without error.
func NewEmailNotificationService(
	userRepo domain.UserRepository,
	mailer domain.Mailer,
	renderer domain.EmailTemplateRenderer,
	logger *slog.Logger,
) domain.NotificationService {
	return &emailNotificationService{
		userRepo: userRepo,
		mailer:   mailer,
		renderer: renderer,
		logger:   logger,
	}
}

func (s *emailNotificationService) NotifyNewParticipant(ctx context.Context, webinar *domain.Webinar, participant *domain.User) error {
	organizer, err := s.userRepo.FindByID(ctx, webinar.OrganizerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			s.logger.DebugContext(ctx, "organizer not found, skipping notification",
				"webinar_id", webinar.ID, "organizer_id", webinar.OrganizerID)
			return nil
		}
		return fmt.Errorf("get organizer: %w", err)
	}

	data := &domain.NewParticipantEmailData{
		WebinarTitle:     webinar.Title,
		ParticipantEmail: participant.Email,
		OrganizerEmail:   organizer.Email,
	}
	subject, htmlBody, textBody, err := s.renderer.Render(newParticipantTemplate, data)
	if err != nil {
		return fmt.Errorf("failed to render %s template: %w", newParticipantTemplate, err)
	}
	if err := s.mailer.Send(ctx, domain.Email{
		To:      organizer.Email,
		Subject: subject,
		Body:    textBody,
		HTML:    htmlBody,
	}); err != nil {
		return fmt.Errorf("failed to send new participant email: %w", err)
	}
	s.logger.InfoContext(ctx, "new participant email sent", "webinar_id", webinar.ID, "to", organizer.Email)
	return nil
}
