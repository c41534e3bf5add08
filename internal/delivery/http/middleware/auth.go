package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	h "webinars/internal/delivery/http/helpers"
	"webinars/internal/domain"
)

type participantKey struct{}

// WithParticipant stores the ID of the user booking seats on this request.
func WithParticipant(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, participantKey{}, userID)
}

// ParticipantID returns the user ID set by RequireAuth.
func ParticipantID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(participantKey{}).(string)
	return id, ok && id != ""
}

// bearerToken extracts the token from an Authorization header. On failure it
// returns the message sent back to the client.
func bearerToken(header string) (token, problem string) {
	if header == "" {
		return "", "missing authorization header"
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || scheme != "Bearer" {
		return "", "invalid authorization format"
	}
	if token = strings.TrimSpace(token); token == "" {
		return "", "missing token"
	}
	return token, ""
}

// RequireAuth resolves the participant from the Bearer token before the
// booking handlers run. Requests without a valid token get 401.
func RequireAuth(verifier domain.TokenVerifier, logger *slog.Logger) func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			token, problem := bearerToken(r.Header.Get("Authorization"))
			if problem != "" {
				unauthorized(w, problem)
				return
			}
			userID, err := verifier.Verify(token)
			if err != nil {
				logger.DebugContext(r.Context(), "token rejected", "path", r.URL.Path, "err", err)
				unauthorized(w, "invalid or expired token")
				return
			}
			next(w, r.WithContext(WithParticipant(r.Context(), userID)))
		}
	}
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="webinars"`)
	h.WriteJSONError(w, http.StatusUnauthorized, h.ErrCodeUnauthorized, message)
}
