package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webinars/internal/delivery/http/helpers"
	"webinars/internal/delivery/http/middleware"
	"webinars/internal/domain"
	"webinars/internal/repository/memory"
)

type mockBookSeat struct {
	err            error
	listErr        error
	participations []*domain.Participation
	requests       []domain.BookSeatRequest
}

func (m *mockBookSeat) Execute(ctx context.Context, req domain.BookSeatRequest) error {
	m.requests = append(m.requests, req)
	return m.err
}

func (m *mockBookSeat) ListParticipants(ctx context.Context, webinarID string) ([]*domain.Participation, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.participations, nil
}

type mockAuthService struct {
	token string
	user  *domain.User
	err   error
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	return m.token, m.user, m.err
}

type fixedPinger struct{ err error }

func (p fixedPinger) PingContext(ctx context.Context) error { return p.err }

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))
}

func decode(t *testing.T, w *httptest.ResponseRecorder) helpers.APIResponse {
	t.Helper()
	var resp helpers.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func bookRequest(webinarID, userID string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/webinars/"+webinarID+"/participations", nil)
	req.SetPathValue("webinarID", webinarID)
	if userID != "" {
		req = req.WithContext(middleware.WithParticipant(req.Context(), userID))
	}
	return req
}

func TestParticipationController_BookSeat(t *testing.T) {
	user := domain.NewUser("user-1", "user@test.com", "hash")
	users := memory.NewUserRepository(user)

	tests := []struct {
		name       string
		userID     string
		webinarID  string
		svcErr     error
		wantStatus int
		wantCode   string
		wantMsg    string
		wantNotify string
	}{
		{name: "booked", userID: "user-1", webinarID: "webinar-1", wantStatus: http.StatusCreated, wantNotify: NotificationSent},
		{
			name: "booked but organizer not notified", userID: "user-1", webinarID: "webinar-1",
			svcErr:     fmt.Errorf("%w: %w", domain.ErrNotificationFailed, errors.New("ses throttled")),
			wantStatus: http.StatusCreated, wantNotify: NotificationFailed,
		},
		{name: "unauthenticated", webinarID: "webinar-1", wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "unknown user", userID: "ghost", webinarID: "webinar-1", wantStatus: http.StatusUnauthorized, wantCode: helpers.ErrCodeUnauthorized},
		{name: "missing webinar id", userID: "user-1", webinarID: "", wantStatus: http.StatusBadRequest, wantCode: helpers.ErrCodeBadRequest},
		{
			name: "webinar not found", userID: "user-1", webinarID: "webinar-1", svcErr: domain.ErrWebinarNotFound,
			wantStatus: http.StatusNotFound, wantCode: helpers.ErrCodeNotFound, wantMsg: "Webinar not found",
		},
		{
			name: "already participating", userID: "user-1", webinarID: "webinar-1", svcErr: domain.ErrAlreadyParticipating,
			wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict, wantMsg: "User is already participating in this webinar",
		},
		{
			name: "no seats", userID: "user-1", webinarID: "webinar-1", svcErr: domain.ErrNoSeatsAvailable,
			wantStatus: http.StatusConflict, wantCode: helpers.ErrCodeConflict, wantMsg: "No seats available for this webinar",
		},
		{
			name: "unexpected error", userID: "user-1", webinarID: "webinar-1", svcErr: errors.New("db down"),
			wantStatus: http.StatusInternalServerError, wantCode: helpers.ErrCodeInternalError, wantMsg: "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockBookSeat{err: tt.svcErr}
			ctrl := NewParticipationController(testLogger(), svc, users)
			w := httptest.NewRecorder()

			ctrl.BookSeatHandler(w, bookRequest(tt.webinarID, tt.userID))

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantCode == "" {
				var resp BookSeatSuccessResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				require.Nil(t, resp.Error)
				assert.Equal(t, &BookSeatResponse{WebinarID: "webinar-1", UserID: "user-1", Notification: tt.wantNotify}, resp.Data)
				require.Len(t, svc.requests, 1)
				assert.Equal(t, "webinar-1", svc.requests[0].WebinarID)
				assert.Same(t, user, svc.requests[0].User)
				return
			}
			resp := decode(t, w)
			require.NotNil(t, resp.Error)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			if tt.wantMsg != "" {
				assert.Equal(t, tt.wantMsg, resp.Error.Message)
			}
		})
	}
}

func TestParticipationController_ListParticipations(t *testing.T) {
	ps := []*domain.Participation{
		{ID: "p1", UserID: "u1", WebinarID: "webinar-1"},
		{ID: "p2", UserID: "u2", WebinarID: "webinar-1"},
		{ID: "p3", UserID: "u3", WebinarID: "webinar-1"},
	}

	t.Run("paginated", func(t *testing.T) {
		ctrl := NewParticipationController(testLogger(), &mockBookSeat{participations: ps}, memory.NewUserRepository())
		req := httptest.NewRequest(http.MethodGet, "/webinars/webinar-1/participations?page=2&page_size=2", nil)
		req.SetPathValue("webinarID", "webinar-1")
		w := httptest.NewRecorder()

		ctrl.ListParticipations(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		var resp ListParticipationsSuccessResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		require.Nil(t, resp.Error)
		require.Len(t, resp.Data.Items, 1)
		assert.Equal(t, "p3", resp.Data.Items[0].ID)
		assert.Equal(t, helpers.PaginationMeta{Page: 2, PageSize: 2, Total: 3, TotalPages: 2}, resp.Data.Pagination)
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := NewParticipationController(testLogger(), &mockBookSeat{listErr: domain.ErrWebinarNotFound}, memory.NewUserRepository())
		req := httptest.NewRequest(http.MethodGet, "/webinars/missing/participations", nil)
		req.SetPathValue("webinarID", "missing")
		w := httptest.NewRecorder()

		ctrl.ListParticipations(w, req)

		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("error", func(t *testing.T) {
		ctrl := NewParticipationController(testLogger(), &mockBookSeat{listErr: errors.New("db down")}, memory.NewUserRepository())
		req := httptest.NewRequest(http.MethodGet, "/webinars/webinar-1/participations", nil)
		req.SetPathValue("webinarID", "webinar-1")
		w := httptest.NewRecorder()

		ctrl.ListParticipations(w, req)

		require.Equal(t, http.StatusInternalServerError, w.Code)
	})
}

func TestAuthController_Login(t *testing.T) {
	user := domain.NewUser("user-1", "user@test.com", "hash")

	tests := []struct {
		name       string
		body       string
		svc        *mockAuthService
		wantStatus int
	}{
		{"success", `{"email":"user@test.com","password":"secret"}`, &mockAuthService{token: "tok", user: user}, http.StatusOK},
		{"missing password", `{"email":"user@test.com"}`, &mockAuthService{}, http.StatusBadRequest},
		{"invalid credentials", `{"email":"user@test.com","password":"x"}`, &mockAuthService{err: domain.ErrInvalidCredentials}, http.StatusUnauthorized},
		{"service error", `{"email":"user@test.com","password":"x"}`, &mockAuthService{err: errors.New("db down")}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := NewAuthController(testLogger(), tt.svc)
			req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			ctrl.Login(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var resp struct {
					Data LoginResponse `json:"data"`
				}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "tok", resp.Data.Token)
				assert.Equal(t, "Bearer", resp.Data.TokenType)
				assert.Equal(t, "user-1", resp.Data.User.ID)
				assert.NotContains(t, w.Body.String(), "hash")
			}
		})
	}
}

func TestHealthController(t *testing.T) {
	tests := []struct {
		name       string
		checks     map[string]Pinger
		wantStatus int
	}{
		{"no dependencies", nil, http.StatusOK},
		{"all up", map[string]Pinger{"postgres": fixedPinger{}}, http.StatusOK},
		{"one down", map[string]Pinger{"postgres": fixedPinger{}, "redis": PingFunc(func(ctx context.Context) error {
			return errors.New("refused")
		})}, http.StatusServiceUnavailable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			NewHealthController(tt.checks).Health(w, httptest.NewRequest(http.MethodGet, "/health", nil))
			require.Equal(t, tt.wantStatus, w.Code)
		})
	}
}
