// Package middleware, HTTP request pipeline'ına eklenen ara katmanları barındırır.
//
// Go'da middleware bir fonksiyondur: func(next http.Handler) http.Handler.
// Middleware kendi işini yapar (ör: token doğrula), sonra next'i çağırır.
// Hata varsa next çağrılmaz → request burada durur.
//
// Zincir: RequestLogger → CORS → Auth (Require/Optional) → ServerMembership → Handler
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/akinalp/mbchat/handlers"
	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/repository"
	"github.com/akinalp/mbchat/services"
)

// AuthMiddleware, JWT token doğrulama middleware'ı.
type AuthMiddleware struct {
	authService services.AuthService
	userRepo    repository.UserRepository
}

// NewAuthMiddleware, constructor.
func NewAuthMiddleware(authService services.AuthService, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
		userRepo:    userRepo,
	}
}

// Require, JWT token zorunlu kılan middleware.
// Token yoksa veya geçersizse → 401 Unauthorized.
//
// HTTP header formatı: Authorization: Bearer <token>
func (m *AuthMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "authorization header required")
			return
		}

		user, ok := m.authenticate(w, r, authHeader)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// Optional, header yoksa isteği anonim olarak geçirir.
// Header varsa Require ile aynı kurallar uygulanır: bozuk veya geçersiz token
// sessizce anonime düşmez, 401 döner.
func (m *AuthMiddleware) Optional(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			ctx := context.WithValue(r.Context(), handlers.AuthContextKey, models.Anonymous())
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		user, ok := m.authenticate(w, r, authHeader)
		if !ok {
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), user)))
	})
}

// authenticate, header'ı doğrular ve kullanıcıyı DB'den getirir.
// Başarısızsa yanıtı kendisi yazar ve false döner.
func (m *AuthMiddleware) authenticate(w http.ResponseWriter, r *http.Request, authHeader string) (*models.User, bool) {
	if !strings.HasPrefix(authHeader, "Bearer ") {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "invalid authorization format, use: Bearer <token>")
		return nil, false
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")

	claims, err := m.authService.ValidateAccessToken(tokenString)
	if err != nil {
		pkg.Error(w, err)
		return nil, false
	}

	// Token geçerli ama kullanıcı silinmiş olabilir
	user, err := m.userRepo.GetByID(r.Context(), claims.UserID)
	if err != nil {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found")
		return nil, false
	}

	// Password hash context'te taşınmamalı
	user.PasswordHash = ""
	return user, true
}

func withUser(ctx context.Context, user *models.User) context.Context {
	ctx = context.WithValue(ctx, handlers.UserContextKey, user)
	return context.WithValue(ctx, handlers.AuthContextKey, models.AuthenticatedAs(user.ID))
}
