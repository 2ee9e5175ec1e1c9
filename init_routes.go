// Package main — HTTP route registration.
//
// initRoutes, tüm API endpoint'lerini mux'a bağlar.
// Middleware chain helper'ları:
//   - auth: JWT zorunlu
//   - optionalAuth: header yoksa anonim, varsa doğrulanır
//   - authServer: auth + sunucu üyelik kontrolü
package main

import (
	"net/http"

	"github.com/akinalp/mbchat/middleware"
	"github.com/akinalp/mbchat/repository"
	"github.com/akinalp/mbchat/services"
)

// initRoutes, middleware chain'i kurar ve tüm endpoint'leri mux'a bağlar.
func initRoutes(
	mux *http.ServeMux,
	h *Handlers,
	authService services.AuthService,
	userRepo repository.UserRepository,
	serverRepo repository.ServerRepository,
) {
	// ─── Middleware ───
	authMw := middleware.NewAuthMiddleware(authService, userRepo)
	serverMw := middleware.NewServerMembershipMiddleware(serverRepo)

	// ─── Middleware Chain Helpers ───
	auth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(handler)
	}
	optionalAuth := func(handler http.HandlerFunc) http.Handler {
		return authMw.Optional(handler)
	}
	authServer := func(handler http.HandlerFunc) http.Handler {
		return authMw.Require(serverMw.Require(handler))
	}

	// Health
	mux.HandleFunc("GET /api/health", h.Health.Check)

	// Auth
	mux.HandleFunc("POST /api/auth/register", h.Auth.Register)
	mux.HandleFunc("POST /api/auth/login", h.Auth.Login)
	mux.Handle("GET /api/users/me", auth(h.Auth.Me))

	// Dizin
	mux.HandleFunc("GET /api/categories", h.Category.List)
	mux.Handle("GET /api/servers", optionalAuth(h.Server.List))
	mux.Handle("GET /api/server/select", optionalAuth(h.Server.List))

	// Sunucular
	mux.Handle("POST /api/servers", auth(h.Server.Create))
	mux.Handle("GET /api/servers/{serverId}", auth(h.Server.Get))
	mux.Handle("POST /api/servers/{serverId}/join", auth(h.Server.Join))
	mux.Handle("POST /api/servers/{serverId}/leave", authServer(h.Server.Leave))
	mux.Handle("GET /api/servers/{serverId}/channels", authServer(h.Channel.List))
	mux.Handle("POST /api/servers/{serverId}/channels", authServer(h.Channel.Create))
}
