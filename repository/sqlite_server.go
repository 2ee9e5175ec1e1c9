// Package repository — ServerRepository'nin SQLite implementasyonu.
//
// servers + server_members + categories tabloları. Liste sorgusu
// ServerQuery (squirrel) ile dinamik kurulur, diğer sorgular sabit SQL'dir.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/akinalp/mbchat/database"
	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg"
)

type sqliteServerRepo struct {
	db       database.TxQuerier
	channels ChannelRepository
}

// NewSQLiteServerRepo, constructor.
// Kanal yüklemesi aynı querier üzerinden yapılır — transaction içinde de tutarlı.
func NewSQLiteServerRepo(db database.TxQuerier) ServerRepository {
	return &sqliteServerRepo{
		db:       db,
		channels: NewSQLiteChannelRepo(db),
	}
}

// ─── Liste ───

func (r *sqliteServerRepo) List(ctx context.Context, q ServerQuery) ([]models.Server, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build server list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	defer rows.Close()

	servers := []models.Server{}
	for rows.Next() {
		s, err := scanServer(rows, q.HasMemberCount())
		if err != nil {
			return nil, err
		}
		servers = append(servers, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating server rows: %w", err)
	}

	if err := r.attachChannels(ctx, servers); err != nil {
		return nil, err
	}

	return servers, nil
}

// rowScanner, *sql.Row ve *sql.Rows ortak arayüzü.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanServer(row rowScanner, withNumMembers bool) (models.Server, error) {
	var s models.Server
	dest := []any{
		&s.ID, &s.Name, &s.OwnerID, &s.CategoryID, &s.Category,
		&s.Description, &s.IconURL, &s.CreatedAt,
	}

	var numMembers int
	if withNumMembers {
		dest = append(dest, &numMembers)
	}

	if err := row.Scan(dest...); err != nil {
		return models.Server{}, err
	}

	if withNumMembers {
		s.NumMembers = &numMembers
	}
	s.Channels = []models.Channel{}

	return s, nil
}

// attachChannels, listelenen sunucuların kanallarını tek sorguda yükler.
func (r *sqliteServerRepo) attachChannels(ctx context.Context, servers []models.Server) error {
	if len(servers) == 0 {
		return nil
	}

	ids := make([]int64, len(servers))
	index := make(map[int64]int, len(servers))
	for i, s := range servers {
		ids[i] = s.ID
		index[s.ID] = i
	}

	channels, err := r.channels.ListByServerIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, ch := range channels {
		i := index[ch.ServerID]
		servers[i].Channels = append(servers[i].Channels, ch)
	}

	return nil
}

// ─── Server CRUD ───

func (r *sqliteServerRepo) GetByID(ctx context.Context, id int64) (*models.Server, error) {
	query, args, err := NewServerQuery().WithID(id).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build server query: %w", err)
	}

	s, err := scanServer(r.db.QueryRowContext(ctx, query, args...), false)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, pkg.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get server: %w", err)
	}

	servers := []models.Server{s}
	if err := r.attachChannels(ctx, servers); err != nil {
		return nil, err
	}

	return &servers[0], nil
}

func (r *sqliteServerRepo) Create(ctx context.Context, server *models.Server) error {
	query := `
		INSERT INTO servers (name, owner_id, category_id, description, icon_url)
		VALUES (?, ?, ?, ?, ?)
		RETURNING id, created_at`

	err := r.db.QueryRowContext(ctx, query,
		server.Name, server.OwnerID, server.CategoryID,
		server.Description, server.IconURL,
	).Scan(&server.ID, &server.CreatedAt)

	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: unknown category", pkg.ErrBadRequest)
		}
		return fmt.Errorf("failed to create server: %w", err)
	}

	if server.Channels == nil {
		server.Channels = []models.Channel{}
	}

	return nil
}

// ─── Üyelik ───

func (r *sqliteServerRepo) AddMember(ctx context.Context, serverID, userID int64) error {
	query := `INSERT OR IGNORE INTO server_members (server_id, user_id) VALUES (?, ?)`

	if _, err := r.db.ExecContext(ctx, query, serverID, userID); err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: server not found", pkg.ErrNotFound)
		}
		return fmt.Errorf("failed to add server member: %w", err)
	}

	return nil
}

func (r *sqliteServerRepo) RemoveMember(ctx context.Context, serverID, userID int64) error {
	query := `DELETE FROM server_members WHERE server_id = ? AND user_id = ?`

	result, err := r.db.ExecContext(ctx, query, serverID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove server member: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check rows affected: %w", err)
	}
	if affected == 0 {
		return pkg.ErrNotFound
	}

	return nil
}

func (r *sqliteServerRepo) IsMember(ctx context.Context, serverID, userID int64) (bool, error) {
	query := `SELECT 1 FROM server_members WHERE server_id = ? AND user_id = ? LIMIT 1`

	var dummy int
	err := r.db.QueryRowContext(ctx, query, serverID, userID).Scan(&dummy)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check server membership: %w", err)
	}

	return true, nil
}
