package memory

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"webinars/internal/domain"
)

// Seed is the JSON document used to preload the in-memory repositories.
type Seed struct {
	Users []struct {
		ID       string `json:"id"`
		Email    string `json:"email"`
		Password string `json:"password"`
	} `json:"users"`
	Webinars []struct {
		ID          string    `json:"id"`
		OrganizerID string    `json:"organizer_id"`
		Title       string    `json:"title"`
		StartDate   time.Time `json:"start_date"`
		EndDate     time.Time `json:"end_date"`
		Seats       int       `json:"seats"`
	} `json:"webinars"`
}

// LoadSeed decodes a seed document. Passwords are hashed with hasher so that
// login works against the seeded users.
func LoadSeed(r io.Reader, hasher domain.PasswordHasher) ([]*domain.User, []*domain.Webinar, error) {
	var seed Seed
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&seed); err != nil {
		return nil, nil, fmt.Errorf("decode seed: %w", err)
	}

	users := make([]*domain.User, 0, len(seed.Users))
	for _, u := range seed.Users {
		hash, err := hasher.Hash(u.Password)
		if err != nil {
			return nil, nil, fmt.Errorf("hash password for %s: %w", u.ID, err)
		}
		users = append(users, domain.NewUser(u.ID, u.Email, hash))
	}

	webinars := make([]*domain.Webinar, 0, len(seed.Webinars))
	for _, w := range seed.Webinars {
		if w.Seats <= 0 {
			return nil, nil, fmt.Errorf("webinar %s: seats must be positive", w.ID)
		}
		webinars = append(webinars, domain.NewWebinar(w.ID, w.OrganizerID, w.Title, w.StartDate, w.EndDate, w.Seats))
	}
	return users, webinars, nil
}
