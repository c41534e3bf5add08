package domain

import "context"

// Email is a single outgoing message. HTML is optional.
type Email struct {
	To      string
	Subject string
	Body    string
	HTML    string
}

// Mailer defines the contract for sending emails (infrastructure port).
type Mailer interface {
	Send(ctx context.Context, email Email) error
}

// EmailTemplateRenderer renders email content from a named template with the given data.
type EmailTemplateRenderer interface {
	Render(templateName string, data any) (subject, htmlBody, textBody string, err error)
}

// NewParticipantEmailData holds data for the organizer's new participant email.
type NewParticipantEmailData struct {
	WebinarTitle     string
	ParticipantEmail string
	OrganizerEmail   string
}

// NotificationService informs the organizer of a webinar about new participants.
type NotificationService interface {
	NotifyNewParticipant(ctx context.Context, webinar *Webinar, participant *User) error
}
