package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"webinars/internal/domain"
	"webinars/internal/repository/memory"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "h:" + password, nil }

func (plainHasher) Compare(hash, password string) error {
	if hash != "h:"+password {
		return errors.New("mismatch")
	}
	return nil
}

type stubIssuer struct {
	err    error
	expiry time.Duration
}

func (s *stubIssuer) Issue(userID, email string, expiry time.Duration) (string, error) {
	s.expiry = expiry
	if s.err != nil {
		return "", s.err
	}
	return "token-for-" + userID, nil
}

func TestAuthService_Login(t *testing.T) {
	users := memory.NewUserRepository(domain.NewUser("user-1", "alice@test.com", "h:secret"))
	boom := errors.New("boom")

	tests := []struct {
		name      string
		users     domain.UserRepository
		issuer    *stubIssuer
		email     string
		password  string
		wantToken string
		errIs     error
	}{
		{name: "success", users: users, issuer: &stubIssuer{}, email: " alice@test.com ", password: "secret", wantToken: "token-for-user-1"},
		{name: "wrong password", users: users, issuer: &stubIssuer{}, email: "alice@test.com", password: "nope", errIs: domain.ErrInvalidCredentials},
		{name: "unknown email", users: users, issuer: &stubIssuer{}, email: "bob@test.com", password: "secret", errIs: domain.ErrInvalidCredentials},
		{name: "empty input", users: users, issuer: &stubIssuer{}, email: "", password: "", errIs: domain.ErrInvalidCredentials},
		{name: "repository error", users: failingUserRepo{err: boom}, issuer: &stubIssuer{}, email: "alice@test.com", password: "secret", errIs: boom},
		{name: "issuer error", users: users, issuer: &stubIssuer{err: boom}, email: "alice@test.com", password: "secret", errIs: boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewAuthService(tt.users, plainHasher{}, tt.issuer, time.Hour)
			token, user, err := svc.Login(context.Background(), tt.email, tt.password)
			if tt.errIs != nil {
				require.ErrorIs(t, err, tt.errIs)
				assert.Empty(t, token)
				assert.Nil(t, user)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantToken, token)
			assert.Equal(t, "user-1", user.ID)
			assert.Equal(t, time.Hour, tt.issuer.expiry)
		})
	}
}
