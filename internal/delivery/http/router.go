package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"webinars/internal/delivery/http/controllers"
)

// NewRouter initializes the HTTP router with all application routes.
// requireAuth guards the routes that act on behalf of a logged-in user.
func NewRouter(
	participationController *controllers.ParticipationController,
	authController *controllers.AuthController,
	healthController *controllers.HealthController,
	requireAuth func(http.HandlerFunc) http.HandlerFunc,
) *http.ServeMux {
	mux := http.NewServeMux()

	// Webinars
	mux.HandleFunc("POST /webinars/{webinarID}/participations", requireAuth(participationController.BookSeatHandler))
	mux.HandleFunc("GET /webinars/{webinarID}/participations", participationController.ListParticipations)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	mux.HandleFunc("GET /health", healthController.Health)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
