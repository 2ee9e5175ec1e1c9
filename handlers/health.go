package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/akinalp/mbchat/pkg"
)

// Pinger, veritabanı erişilebilirliği için (*sql.DB karşılar).
type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthHandler, liveness/readiness endpoint'i.
type HealthHandler struct {
	db Pinger
}

// NewHealthHandler, constructor.
func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check godoc
// GET /api/health
// DB ping başarısızsa 503.
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		pkg.ErrorWithMessage(w, http.StatusServiceUnavailable, "database unavailable")
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
