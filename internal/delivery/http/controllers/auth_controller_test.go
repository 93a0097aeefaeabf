package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"giftcertificates/internal/delivery/http/helpers"
	"giftcertificates/internal/delivery/http/middleware"
	"giftcertificates/internal/domain"
)

// fakeAuthService implements domain.AuthService for handler tests.
type fakeAuthService struct {
	signUpUser *domain.User
	signUpErr  error
	loginToken string
	loginUser  *domain.User
	loginErr   error
	getUser    *domain.User
	getErr     error
}

func (f *fakeAuthService) SignUp(ctx context.Context, email, password, name string) (*domain.User, error) {
	if f.signUpErr != nil {
		return nil, f.signUpErr
	}
	return f.signUpUser, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	if f.loginErr != nil {
		return "", nil, f.loginErr
	}
	return f.loginToken, f.loginUser, nil
}

func (f *fakeAuthService) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getUser, nil
}

func TestAuthController_Me(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success returns the authenticated user's profile", func(t *testing.T) {
		svc := &fakeAuthService{
			getUser: &domain.User{ID: 123, Email: "a@b.com", Name: "Alice", CreatedAt: now, UpdatedAt: now},
		}
		controller := NewAuthController(testLogger(), svc)
		req := httptest.NewRequest(http.MethodGet, "http://test/users/me", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), 123))
		rr := httptest.NewRecorder()

		controller.Me(rr, req)

		require.Equal(t, http.StatusOK, rr.Code)
		envelope := decodeEnvelope(t, rr.Body)
		require.Nil(t, envelope.Error)
	})

	t.Run("no user in context", func(t *testing.T) {
		controller := NewAuthController(testLogger(), &fakeAuthService{})
		req := httptest.NewRequest(http.MethodGet, "http://test/users/me", nil)
		rr := httptest.NewRecorder()

		controller.Me(rr, req)

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		envelope := decodeEnvelope(t, rr.Body)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeUnauthorized, envelope.Error.Code)
	})

	t.Run("user not found", func(t *testing.T) {
		controller := NewAuthController(testLogger(), &fakeAuthService{getErr: domain.ErrUserNotFound})
		req := httptest.NewRequest(http.MethodGet, "http://test/users/me", nil)
		req = req.WithContext(middleware.SetUserID(req.Context(), 123))
		rr := httptest.NewRecorder()

		controller.Me(rr, req)

		require.Equal(t, http.StatusNotFound, rr.Code)
		envelope := decodeEnvelope(t, rr.Body)
		require.NotNil(t, envelope.Error)
		assert.Equal(t, helpers.ErrCodeNotFound, envelope.Error.Code)
	})
}
