package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mbchat/handlers"
	"github.com/akinalp/mbchat/middleware"
	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
)

// stubAuthService, sabit token → claims eşlemesi yapar.
type stubAuthService struct{}

func (stubAuthService) Register(context.Context, *models.CreateUserRequest) (*models.AuthTokens, error) {
	return nil, nil
}

func (stubAuthService) Login(context.Context, *models.LoginRequest) (*models.AuthTokens, error) {
	return nil, nil
}

func (stubAuthService) ValidateAccessToken(token string) (*models.TokenClaims, error) {
	switch token {
	case "good":
		return &models.TokenClaims{UserID: 1}, nil
	case "ghost":
		return &models.TokenClaims{UserID: 99}, nil
	default:
		return nil, pkg.ErrUnauthorized
	}
}

func (stubAuthService) GetUser(context.Context, int64) (*models.User, error) { return nil, nil }

type stubUserRepo struct{}

func (stubUserRepo) Create(context.Context, *models.User) error { return nil }

func (stubUserRepo) GetByID(_ context.Context, id int64) (*models.User, error) {
	if id == 1 {
		return &models.User{ID: 1, Username: "ayse", PasswordHash: "secret"}, nil
	}
	return nil, pkg.ErrNotFound
}

func (stubUserRepo) GetByUsername(context.Context, string) (*models.User, error) {
	return nil, pkg.ErrNotFound
}

// echoAuth, context'teki AuthContext'i header'lara yazar.
var echoAuth = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	auth := handlers.AuthFromContext(r.Context())
	if auth.IsAuthenticated {
		w.Header().Set("X-Auth", "user")
	} else {
		w.Header().Set("X-Auth", "anonymous")
	}
	if user, ok := handlers.UserFromContext(r.Context()); ok && user.PasswordHash != "" {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
})

func TestAuthMiddleware(t *testing.T) {
	mw := middleware.NewAuthMiddleware(stubAuthService{}, stubUserRepo{})

	tests := []struct {
		name     string
		optional bool
		header   string
		status   int
		auth     string
	}{
		{"require no header", false, "", http.StatusUnauthorized, ""},
		{"require bad scheme", false, "Basic abc", http.StatusUnauthorized, ""},
		{"require invalid token", false, "Bearer nope", http.StatusUnauthorized, ""},
		{"require deleted user", false, "Bearer ghost", http.StatusUnauthorized, ""},
		{"require ok", false, "Bearer good", http.StatusNoContent, "user"},
		{"optional no header", true, "", http.StatusNoContent, "anonymous"},
		{"optional invalid token", true, "Bearer nope", http.StatusUnauthorized, ""},
		{"optional ok", true, "Bearer good", http.StatusNoContent, "user"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := mw.Require(echoAuth)
			if tt.optional {
				h = mw.Optional(echoAuth)
			}

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.status, rec.Code)
			assert.Equal(t, tt.auth, rec.Header().Get("X-Auth"))
		})
	}
}

func TestRequestLogger_RequestID(t *testing.T) {
	var seen string
	h := middleware.RequestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = handlers.RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	got := rec.Header().Get(middleware.RequestIDHeader)
	_, err := uuid.Parse(got)
	require.NoError(t, err)
	assert.Equal(t, got, seen)

	// Geçerli UUID client'tan gelirse korunur; geçersizse değiştirilir.
	given := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, given)
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, given, rec.Header().Get(middleware.RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(middleware.RequestIDHeader, "not-a-uuid\nforged")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid\nforged", rec.Header().Get(middleware.RequestIDHeader))
}
