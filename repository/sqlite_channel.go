package repository

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/akinalp/mbchat/database"
	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
)

// sqliteChannelRepo, ChannelRepository interface'inin SQLite implementasyonu.
type sqliteChannelRepo struct {
	db database.TxQuerier
}

// NewSQLiteChannelRepo, constructor — interface döner (Dependency Inversion).
func NewSQLiteChannelRepo(db database.TxQuerier) ChannelRepository {
	return &sqliteChannelRepo{db: db}
}

var channelColumns = []string{"id", "server_id", "owner_id", "name", "topic", "created_at"}

func (r *sqliteChannelRepo) Create(ctx context.Context, channel *models.Channel) error {
	query := `
		INSERT INTO channels (server_id, owner_id, name, topic)
		VALUES (?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		channel.ServerID,
		channel.OwnerID,
		channel.Name,
		channel.Topic,
	).Scan(&channel.ID, &channel.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: server not found", pkg.ErrNotFound)
		}
		return fmt.Errorf("failed to create channel: %w", err)
	}

	return nil
}

func (r *sqliteChannelRepo) ListByServer(ctx context.Context, serverID int64) ([]models.Channel, error) {
	return r.ListByServerIDs(ctx, []int64{serverID})
}

func (r *sqliteChannelRepo) ListByServerIDs(ctx context.Context, serverIDs []int64) ([]models.Channel, error) {
	channels := []models.Channel{}
	if len(serverIDs) == 0 {
		return channels, nil
	}

	// sq.Eq slice değer alınca "server_id IN (?,?,...)" üretir.
	query, args, err := sq.Select(channelColumns...).
		From("channels").
		Where(sq.Eq{"server_id": serverIDs}).
		OrderBy("server_id ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build channel query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list channels: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ch models.Channel
		if err := rows.Scan(
			&ch.ID, &ch.ServerID, &ch.OwnerID, &ch.Name, &ch.Topic, &ch.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan channel row: %w", err)
		}
		channels = append(channels, ch)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating channel rows: %w", err)
	}

	return channels, nil
}
