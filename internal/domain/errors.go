package domain

import "errors"

// ErrNotFound is returned by repositories when the requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidCredentials is returned when an email/password pair does not match a user.
var ErrInvalidCredentials = errors.New("invalid credentials")

// Booking rule violations. Callers branch on these with errors.Is; the
// messages are returned verbatim to API clients.
var (
	ErrWebinarNotFound      = errors.New("Webinar not found")
	ErrAlreadyParticipating = errors.New("User is already participating in this webinar")
	ErrNoSeatsAvailable     = errors.New("No seats available for this webinar")
)

// ErrNotificationFailed marks a booking that was stored but whose organizer
// notification could not be delivered.
var ErrNotificationFailed = errors.New("organizer notification failed")
