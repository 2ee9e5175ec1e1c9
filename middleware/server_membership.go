// Package middleware — ServerMembershipMiddleware: sunucu üyelik kontrolü.
//
// URL'den {serverId} path parameter'ını alır, kullanıcının o sunucuya üye
// olup olmadığını doğrular ve serverID'yi context'e ekler.
//
// AuthMiddleware.Require'dan SONRA çalışır — context'te user zaten vardır.
// Akış: AuthMiddleware → ServerMembershipMiddleware → Handler
package middleware

import (
	"context"
	"log"
	"net/http"

	"github.com/akinalp/mbchat/handlers"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/repository"
)

// ServerMembershipMiddleware, sunucu üyelik kontrolü middleware'ı.
type ServerMembershipMiddleware struct {
	serverRepo repository.ServerRepository
}

// NewServerMembershipMiddleware, constructor.
func NewServerMembershipMiddleware(serverRepo repository.ServerRepository) *ServerMembershipMiddleware {
	return &ServerMembershipMiddleware{serverRepo: serverRepo}
}

// Require, sunucu üyeliği zorunlu kılan middleware.
// Geçersiz serverId → 400, üye değil (veya sunucu yok) → 403.
func (m *ServerMembershipMiddleware) Require(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := handlers.UserFromContext(r.Context())
		if !ok {
			pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
			return
		}

		serverID, err := handlers.ParseServerIDPath(r)
		if err != nil {
			pkg.Error(w, err)
			return
		}

		isMember, err := m.serverRepo.IsMember(r.Context(), serverID, user.ID)
		if err != nil {
			log.Printf("[middleware] membership check failed server_id=%d user_id=%d: %v", serverID, user.ID, err)
			pkg.ErrorWithMessage(w, http.StatusInternalServerError, "failed to check server membership")
			return
		}

		if !isMember {
			pkg.ErrorWithMessage(w, http.StatusForbidden, "you are not a member of this server")
			return
		}

		ctx := context.WithValue(r.Context(), handlers.ServerIDContextKey, serverID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
