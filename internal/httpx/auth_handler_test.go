package httpx

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"retailhub-be/internal/user"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(ctx context.Context, params user.RegisterParams) (*user.AuthResult, error) {
	args := m.Called(ctx, params)
	if res, ok := args.Get(0).(*user.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) Login(ctx context.Context, email, password string) (*user.AuthResult, error) {
	args := m.Called(ctx, email, password)
	if res, ok := args.Get(0).(*user.AuthResult); ok {
		return res, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserService) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*user.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func authRouter(svc user.Service) *chi.Mux {
	r := chi.NewRouter()
	h := &AuthHandler{Svc: svc}
	h.Register(r)
	return r
}

func TestAuthHandler_Register(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		svc := new(MockUserService)
		router := authRouter(svc)

		svc.On("Register", mock.Anything, user.RegisterParams{
			Email:     "jo@example.com",
			Password:  "s3cret",
			Username:  "jo",
			FirstName: "Jo",
			LastName:  "Doe",
		}).Return(&user.AuthResult{
			UserID:   42,
			Token:    "jwt-token",
			Email:    "jo@example.com",
			Username: "jo",
		}, nil)

		body := `{"email":"jo@example.com","password":"s3cret","username":"jo","firstName":"Jo","lastName":"Doe"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp AuthResp
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, uint(42), resp.UserID)
		assert.Equal(t, "jwt-token", resp.Token)
		svc.AssertExpectations(t)
	})

	t.Run("Missing Fields", func(t *testing.T) {
		svc := new(MockUserService)
		router := authRouter(svc)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/register",
			strings.NewReader(`{"email":"jo@example.com"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		svc.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		svc := new(MockUserService)
		router := authRouter(svc)

		svc.On("Register", mock.Anything, mock.Anything).Return(nil, user.ErrEmailExists)

		body := `{"email":"jo@example.com","password":"s3cret","username":"jo"}`
		req := httptest.NewRequest(http.MethodPost, "/api/auth/register", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusConflict, rec.Code)
	})
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("Success", func(t *testing.T) {
		svc := new(MockUserService)
		router := authRouter(svc)

		svc.On("Login", mock.Anything, "jo@example.com", "s3cret").
			Return(&user.AuthResult{UserID: 42, Token: "jwt-token", Email: "jo@example.com"}, nil)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"jo@example.com","password":"s3cret"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp AuthResp
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		assert.Equal(t, "jwt-token", resp.Token)
	})

	t.Run("Bad Credentials", func(t *testing.T) {
		svc := new(MockUserService)
		router := authRouter(svc)

		svc.On("Login", mock.Anything, "jo@example.com", "wrong").
			Return(nil, user.ErrInvalidCredentials)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"jo@example.com","password":"wrong"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("Disabled Account", func(t *testing.T) {
		svc := new(MockUserService)
		router := authRouter(svc)

		svc.On("Login", mock.Anything, "jo@example.com", "s3cret").
			Return(nil, user.ErrAccountDisabled)

		req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
			strings.NewReader(`{"email":"jo@example.com","password":"s3cret"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusForbidden, rec.Code)
	})
}
