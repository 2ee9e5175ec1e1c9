package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
	"github.com/akinalp/mbchat/repository"
)

// ChannelService, sunucu kanalları iş mantığı interface'i.
type ChannelService interface {
	// ListByServer, sunucunun kanallarını id sırasıyla döner.
	ListByServer(ctx context.Context, serverID int64) ([]models.Channel, error)
	// Create, kanal oluşturur. Sadece sunucu sahibi yapabilir.
	Create(ctx context.Context, serverID, userID int64, req *models.CreateChannelRequest) (*models.Channel, error)
}

type channelService struct {
	channelRepo repository.ChannelRepository
	serverRepo  repository.ServerRepository
}

// NewChannelService, constructor — interface döner.
func NewChannelService(
	channelRepo repository.ChannelRepository,
	serverRepo repository.ServerRepository,
) ChannelService {
	return &channelService{
		channelRepo: channelRepo,
		serverRepo:  serverRepo,
	}
}

func (s *channelService) ListByServer(ctx context.Context, serverID int64) ([]models.Channel, error) {
	return s.channelRepo.ListByServer(ctx, serverID)
}

func (s *channelService) Create(ctx context.Context, serverID, userID int64, req *models.CreateChannelRequest) (*models.Channel, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", pkg.ErrBadRequest, err)
	}

	server, err := s.serverRepo.GetByID(ctx, serverID)
	if err != nil {
		if errors.Is(err, pkg.ErrNotFound) {
			return nil, ErrServerNotFound
		}
		return nil, err
	}

	if server.OwnerID != userID {
		return nil, fmt.Errorf("%w: only the server owner can create channels", pkg.ErrForbidden)
	}

	channel := &models.Channel{
		ServerID: serverID,
		OwnerID:  userID,
		Name:     req.Name,
	}
	if req.Topic != "" {
		channel.Topic = &req.Topic
	}

	if err := s.channelRepo.Create(ctx, channel); err != nil {
		return nil, err
	}

	return channel, nil
}
