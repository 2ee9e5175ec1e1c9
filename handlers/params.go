package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/akinalp/mbchat/pkg"
)

// ParseServerIDPath, {serverId} path parametresini int64'e çevirir.
// Middleware de aynı kuralı kullanır.
func ParseServerIDPath(r *http.Request) (int64, error) {
	raw := r.PathValue("serverId")
	if raw == "" {
		return 0, fmt.Errorf("%w: serverId is required", pkg.ErrBadRequest)
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: serverId must be a positive integer", pkg.ErrBadRequest)
	}

	return id, nil
}
