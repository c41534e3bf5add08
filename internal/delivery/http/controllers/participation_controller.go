package controllers

import (
	"errors"
	"log/slog"
	"net/http"

	"webinars/internal/delivery/http/helpers"
	"webinars/internal/delivery/http/middleware"
	"webinars/internal/domain"
)

type ParticipationController struct {
	Logger   *slog.Logger
	BookSeat domain.BookSeatUseCase
	Users    domain.UserRepository
}

func NewParticipationController(logger *slog.Logger, bookSeat domain.BookSeatUseCase, users domain.UserRepository) *ParticipationController {
	return &ParticipationController{
		Logger:   logger,
		BookSeat: bookSeat,
		Users:    users,
	}
}

// BookSeatResponse is the data returned by POST /webinars/{webinarID}/participations.
type BookSeatResponse struct {
	WebinarID    string `json:"webinar_id"`
	UserID       string `json:"user_id"`
	Notification string `json:"notification"`
}

// Organizer notification outcomes reported in BookSeatResponse.
const (
	NotificationSent   = "sent"
	NotificationFailed = "failed"
)

// BookSeatSuccessResponse is the success response envelope for POST /webinars/{webinarID}/participations (201).
type BookSeatSuccessResponse struct {
	Data  *BookSeatResponse `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// BookSeat godoc
// @Summary Book a seat in a webinar
// @Description Books a seat for the authenticated user and notifies the webinar organizer. Fails when the user already holds a seat or the webinar is full. A booking whose notification could not be sent still returns 201 with notification "failed".
// @Tags participations
// @Produce json
// @Security BearerAuth
// @Param webinarID path string true "Webinar ID"
// @Success 201 {object} controllers.BookSeatSuccessResponse "Seat booked"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (already participating or no seats available)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webinars/{webinarID}/participations [post]
func (c *ParticipationController) BookSeatHandler(w http.ResponseWriter, r *http.Request) {
	webinarID := r.PathValue("webinarID")
	if webinarID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing webinarID")
		return
	}

	userID, ok := middleware.ParticipantID(r.Context())
	if !ok {
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unauthorized")
		return
	}
	user, err := c.Users.FindByID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "unknown user")
			return
		}
		c.fail(w, r, err)
		return
	}

	err = c.BookSeat.Execute(r.Context(), domain.BookSeatRequest{WebinarID: webinarID, User: user})
	switch {
	case err == nil:
		helpers.WriteJSONSuccess(w, http.StatusCreated, &BookSeatResponse{WebinarID: webinarID, UserID: user.ID, Notification: NotificationSent})
	case errors.Is(err, domain.ErrNotificationFailed):
		c.Logger.WarnContext(r.Context(), "seat booked without organizer notification",
			"webinar_id", webinarID, "user_id", user.ID, "err", err)
		helpers.WriteJSONSuccess(w, http.StatusCreated, &BookSeatResponse{WebinarID: webinarID, UserID: user.ID, Notification: NotificationFailed})
	case errors.Is(err, domain.ErrWebinarNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
	case errors.Is(err, domain.ErrAlreadyParticipating), errors.Is(err, domain.ErrNoSeatsAvailable):
		helpers.WriteJSONError(w, http.StatusConflict, helpers.ErrCodeConflict, err.Error())
	default:
		c.fail(w, r, err)
	}
}

// ListParticipationsResponse is one page of a webinar's participations.
type ListParticipationsResponse struct {
	Items      []*domain.Participation `json:"items"`
	Pagination helpers.PaginationMeta  `json:"pagination"`
}

// ListParticipationsSuccessResponse is the success response envelope for GET /webinars/{webinarID}/participations (200).
type ListParticipationsSuccessResponse struct {
	Data  *ListParticipationsResponse `json:"data"`
	Error *helpers.APIError           `json:"error"`
}

// ListParticipations godoc
// @Summary List the participations of a webinar
// @Description Returns the seats booked in the webinar, paginated.
// @Tags participations
// @Produce json
// @Param webinarID path string true "Webinar ID"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 20, max 100)"
// @Success 200 {object} controllers.ListParticipationsSuccessResponse
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /webinars/{webinarID}/participations [get]
func (c *ParticipationController) ListParticipations(w http.ResponseWriter, r *http.Request) {
	webinarID := r.PathValue("webinarID")
	if webinarID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing webinarID")
		return
	}

	participations, err := c.BookSeat.ListParticipants(r.Context(), webinarID)
	if err != nil {
		if errors.Is(err, domain.ErrWebinarNotFound) {
			helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, err.Error())
			return
		}
		c.fail(w, r, err)
		return
	}

	p := helpers.ParsePagination(r)
	helpers.WriteJSONSuccess(w, http.StatusOK, &ListParticipationsResponse{
		Items:      helpers.Paginate(participations, p),
		Pagination: helpers.NewPaginationMeta(p.Page, p.PageSize, len(participations)),
	})
}

func (c *ParticipationController) fail(w http.ResponseWriter, r *http.Request, err error) {
	c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
	helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, "internal error")
}
