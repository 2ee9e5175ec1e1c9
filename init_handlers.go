// Package main — Handler katmanı başlatma.
//
// Her handler, ihtiyaç duyduğu service interface'lerini constructor'dan alır.
package main

import (
	"database/sql"

	"github.com/akinalp/mbchat/handlers"
)

// Handlers, tüm handler instance'larını tutan container struct.
type Handlers struct {
	Auth     *handlers.AuthHandler
	Server   *handlers.ServerHandler
	Channel  *handlers.ChannelHandler
	Category *handlers.CategoryHandler
	Health   *handlers.HealthHandler
}

func initHandlers(db *sql.DB, svcs *Services, limiters *RateLimiters) *Handlers {
	return &Handlers{
		Auth:     handlers.NewAuthHandler(svcs.Auth, limiters.Login),
		Server:   handlers.NewServerHandler(svcs.Server),
		Channel:  handlers.NewChannelHandler(svcs.Channel),
		Category: handlers.NewCategoryHandler(svcs.Category),
		Health:   handlers.NewHealthHandler(db),
	}
}
