// Package main — Service katmanı başlatma.
//
// initServices, iş mantığı katmanını repository'ler ve config ile kurar.
// Rate limiter'lar da burada oluşturulur: handler'lara DI ile geçer,
// shutdown'da durdurulur.
package main

import (
	"database/sql"

	"github.com/akinalp/mbchat/config"
	"github.com/akinalp/mbchat/pkg/ratelimit"
	"github.com/akinalp/mbchat/services"
)

// Services, tüm service instance'larını tutan container struct.
type Services struct {
	Auth     services.AuthService
	Server   services.ServerService
	Channel  services.ChannelService
	Category services.CategoryService
}

// RateLimiters, arka planda temizlik goroutine'i çalıştıran limiter'lar.
type RateLimiters struct {
	Login *ratelimit.LoginRateLimiter
}

func initServices(db *sql.DB, repos *Repositories, cfg *config.Config) *Services {
	return &Services{
		Auth:     services.NewAuthService(repos.User, cfg.JWT.Secret, cfg.JWT.AccessTokenExpiry),
		Server:   services.NewServerService(db, repos.Server),
		Channel:  services.NewChannelService(repos.Channel, repos.Server),
		Category: services.NewCategoryService(repos.Category, cfg.Cache.CategoryTTL),
	}
}

func initRateLimiters(cfg *config.Config) *RateLimiters {
	return &RateLimiters{
		Login: ratelimit.NewLoginRateLimiter(cfg.RateLimit.LoginAttempts, cfg.RateLimit.LoginWindow),
	}
}
