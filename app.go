package main

import (
	"net/http"

	"github.com/rs/cors"

	"github.com/akinalp/mbchat/config"
	"github.com/akinalp/mbchat/database"
	"github.com/akinalp/mbchat/middleware"
)

// App, kurulmuş HTTP handler'ı ve kapanışta durdurulacak kaynakları taşır.
type App struct {
	Handler  http.Handler
	services *Services
	limiters *RateLimiters
}

// newApp, repository → service → handler → route zincirini kurar.
// Global değişken yok — her şey burada oluşturulup birbirine bağlanır.
func newApp(cfg *config.Config, db *database.DB) *App {
	repos := initRepositories(db.Conn)
	svcs := initServices(db.Conn, repos, cfg)
	limiters := initRateLimiters(cfg)
	h := initHandlers(db.Conn, svcs, limiters)

	mux := http.NewServeMux()
	initRoutes(mux, h, svcs.Auth, repos.User, repos.Server)

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
		ExposedHeaders:   []string{middleware.RequestIDHeader},
		AllowCredentials: true,
	})

	return &App{
		Handler:  middleware.RequestLogger(corsHandler.Handler(mux)),
		services: svcs,
		limiters: limiters,
	}
}

// Close, arka plan goroutine'lerini (cache temizliği, limiter temizliği) durdurur.
func (a *App) Close() {
	a.services.Category.Close()
	a.limiters.Login.Stop()
}
