// Package handlers — ServerHandler: sunucu dizini HTTP endpoint'leri.
//
// Thin handler prensibi: Parse → Service → Response.
// Liste endpoint'i opsiyonel auth ile çalışır; yazma endpoint'leri auth ister.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/services"
)

// ServerHandler, sunucu endpoint'lerini yönetir.
type ServerHandler struct {
	serverService services.ServerService
}

// NewServerHandler, constructor.
func NewServerHandler(serverService services.ServerService) *ServerHandler {
	return &ServerHandler{serverService: serverService}
}

// List godoc
// GET /api/servers?category=&quantity=&by_user=&server_id=&with_num_members=
//
// Query parametreleri sınırda tipli sorguya çevrilir; geçersiz tam sayı → 400,
// by_user/server_id anonim → 401, server_id eşleşmezse → 404 "Server not found.".
func (h *ServerHandler) List(w http.ResponseWriter, r *http.Request) {
	params, err := services.ParseServerListQuery(r.URL.Query())
	if err != nil {
		pkg.Error(w, err)
		return
	}

	servers, err := h.serverService.ListServers(r.Context(), params, AuthFromContext(r.Context()))
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, servers)
}

// Create godoc
// POST /api/servers
// Body: { "name": "...", "category_id": 1, "description": "..." }
func (h *ServerHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	var req models.CreateServerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		pkg.ErrorWithMessage(w, http.StatusBadRequest, "invalid request body")
		return
	}

	server, err := h.serverService.CreateServer(r.Context(), user.ID, &req)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusCreated, server)
}

// Get godoc
// GET /api/servers/{serverId}
// Üyelik gerekmez; dizinden katılmadan önce detay görülebilir.
func (h *ServerHandler) Get(w http.ResponseWriter, r *http.Request) {
	serverID, err := ParseServerIDPath(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	server, err := h.serverService.GetServer(r.Context(), serverID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Join godoc
// POST /api/servers/{serverId}/join
func (h *ServerHandler) Join(w http.ResponseWriter, r *http.Request) {
	user, ok := UserFromContext(r.Context())
	if !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	serverID, err := ParseServerIDPath(r)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	server, err := h.serverService.JoinServer(r.Context(), serverID, user.ID)
	if err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, server)
}

// Leave godoc
// POST /api/servers/{serverId}/leave
// ServerMembershipMiddleware arkasında çalışır — serverID context'tedir.
func (h *ServerHandler) Leave(w http.ResponseWriter, r *http.Request) {
	user, _ := UserFromContext(r.Context())
	serverID, ok := ServerIDFromContext(r.Context())
	if user == nil || !ok {
		pkg.ErrorWithMessage(w, http.StatusUnauthorized, "user not found in context")
		return
	}

	if err := h.serverService.LeaveServer(r.Context(), serverID, user.ID); err != nil {
		pkg.Error(w, err)
		return
	}

	pkg.JSON(w, http.StatusOK, map[string]string{"message": "left server"})
}
