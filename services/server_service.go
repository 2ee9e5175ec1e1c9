// Package services — ServerService: sunucu dizini iş mantığı.
//
// Listeleme (ServerFilter'a devredilir), oluşturma, katılma ve ayrılma.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"github.com/akinalp/mbchat/database"
	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/repository"
)

// ServerService, sunucu iş mantığı interface'i.
type ServerService interface {
	// ListServers, dizin filtrelerini uygular. Bkz. ServerFilter.Resolve.
	ListServers(ctx context.Context, params models.ServerListQuery, auth models.AuthContext) ([]models.Server, error)

	GetServer(ctx context.Context, serverID int64) (*models.Server, error)

	// CreateServer, sunucuyu ve sahibinin üyeliğini tek transaction'da oluşturur.
	CreateServer(ctx context.Context, ownerID int64, req *models.CreateServerRequest) (*models.Server, error)

	// JoinServer, kullanıcıyı sunucuya üye yapar. Zaten üyeyse hata vermez.
	JoinServer(ctx context.Context, serverID, userID int64) (*models.Server, error)

	// LeaveServer, sunucudan ayrılır. Owner ayrılamaz.
	LeaveServer(ctx context.Context, serverID, userID int64) error
}

type serverService struct {
	db         *sql.DB // CreateServer'da WithTx için
	serverRepo repository.ServerRepository
	filter     *ServerFilter
}

// NewServerService, constructor.
//
// db: CreateServer'da WithTx ile atomik işlem için doğrudan *sql.DB gerekir.
// Transaction içinde tx-bound repo'lar oluşturulur.
func NewServerService(
	db *sql.DB,
	serverRepo repository.ServerRepository,
) ServerService {
	return &serverService{
		db:         db,
		serverRepo: serverRepo,
		filter:     NewServerFilter(serverRepo),
	}
}

func (s *serverService) ListServers(ctx context.Context, params models.ServerListQuery, auth models.AuthContext) ([]models.Server, error) {
	return s.filter.Resolve(ctx, params, auth)
}

func (s *serverService) GetServer(ctx context.Context, serverID int64) (*models.Server, error) {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if errors.Is(err, pkg.ErrNotFound) {
		return nil, ErrServerNotFound
	}
	return server, err
}

// CreateServer akışı:
// 1. Validate request
// 2. Transaction: Server INSERT → owner üyeliği (atomik)
// 3. Kategori adıyla birlikte tekrar oku
func (s *serverService) CreateServer(ctx context.Context, ownerID int64, req *models.CreateServerRequest) (*models.Server, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	server := &models.Server{
		Name:       req.Name,
		OwnerID:    ownerID,
		CategoryID: req.CategoryID,
	}
	if req.Description != "" {
		server.Description = &req.Description
	}

	err := database.WithTx(ctx, s.db, func(tx *sql.Tx) error {
		txServerRepo := repository.NewSQLiteServerRepo(tx)

		if err := txServerRepo.Create(ctx, server); err != nil {
			return err
		}

		if err := txServerRepo.AddMember(ctx, server.ID, ownerID); err != nil {
			return fmt.Errorf("failed to add owner as member: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Printf("[server] created server_id=%d owner_id=%d", server.ID, ownerID)

	return s.serverRepo.GetByID(ctx, server.ID)
}

func (s *serverService) JoinServer(ctx context.Context, serverID, userID int64) (*models.Server, error) {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, ErrServerNotFound
		}
		return nil, err
	}

	if err := s.serverRepo.AddMember(ctx, serverID, userID); err != nil {
		return nil, err
	}

	return server, nil
}

func (s *serverService) LeaveServer(ctx context.Context, serverID, userID int64) error {
	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return ErrServerNotFound
		}
		return err
	}

	if server.OwnerID == userID {
		return fmt.Errorf("%w: server owner cannot leave the server", pkg.ErrBadRequest)
	}

	return s.serverRepo.RemoveMember(ctx, serverID, userID)
}
