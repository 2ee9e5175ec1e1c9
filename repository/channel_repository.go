package repository

import (
	"context"

	"github.com/akinalp/mbchat/models"
)

// ChannelRepository, kanal veritabanı işlemleri için interface.
type ChannelRepository interface {
	Create(ctx context.Context, channel *models.Channel) error
	ListByServer(ctx context.Context, serverID int64) ([]models.Channel, error)
	// ListByServerIDs, birden fazla sunucunun kanallarını tek sorguda döner
	// (server_id, id) sırasıyla. Boş ids → boş slice, sorgu atılmaz.
	ListByServerIDs(ctx context.Context, serverIDs []int64) ([]models.Channel, error)
}
