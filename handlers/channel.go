package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/services"
)

// ChannelHandler, sunucu kanalı endpoint'lerini yöneten struct.
// Her iki endpoint de ServerMembershipMiddleware arkasındadır.
type ChannelHandler struct {
	channelService services.ChannelService
}

// NewChannelHandler, constructor.
func NewChannelHandler(channelService services.ChannelService) *ChannelHandler {
	return &ChannelHandler{channelService: channelService}
}

// List godoc
// GET /api/servers/{serverId}/channels
func (h *ChannelHandler) List(w http.ResponseWriter, r *http.Request) {
	serverID, ok := ServerIDFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "serverId is required")
		return
	}

	channels, err := h.channelService.ListByServer(r.Context(), serverID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, channels)
}

// Create godoc
// POST /api/servers/{serverId}/channels
// Body: { "name": "general", "topic": "..." }
// Sadece sunucu sahibi — değilse 403.
func (h *ChannelHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	serverID, ok := ServerIDFromContext(r.Context())
	if user == nil || !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateChannelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	channel, err := h.channelService.Create(r.Context(), serverID, user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, channel)
}
