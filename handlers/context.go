package handlers

import (
	"context"

	"github.com/akinalp/mbchat/models"
)

// contextKey — context.Value() any kabul eder; string key çakışmaya neden
// olabilir. Özel tip ile namespace ayrılır.
type contextKey string

// UserContextKey, AuthMiddleware'in eklediği *models.User için key.
const UserContextKey contextKey = "user"

// AuthContextKey, isteğin models.AuthContext'i için key.
// Optional middleware anonim isteklerde de doldurur.
const AuthContextKey contextKey = "auth"

// ServerIDContextKey, ServerMembershipMiddleware'in URL'den okuduğu
// sunucu ID'si (int64).
const ServerIDContextKey contextKey = "server_id"

// RequestIDContextKey, request logger'ın ürettiği istek kimliği.
const RequestIDContextKey contextKey = "request_id"

// AuthFromContext, isteğin kimlik bilgisini döner. Middleware yoksa anonim.
func AuthFromContext(ctx context.Context) models.AuthContext {
	if auth, ok := ctx.Value(AuthContextKey).(models.AuthContext); ok {
		return auth
	}
	return models.Anonymous()
}

// UserFromContext, AuthMiddleware.Require sonrası kullanıcıyı döner.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.User)
	return user, ok
}

// ServerIDFromContext, ServerMembershipMiddleware sonrası sunucu ID'sini döner.
func ServerIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(ServerIDContextKey).(int64)
	return id, ok
}

// RequestIDFromContext, loglama için istek kimliğini döner; yoksa "".
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(RequestIDContextKey).(string)
	return id
}
