// Package testutil, testlerde kullanılan ortak kurulum yardımcılarını içerir.
//
// Her test kendi geçici dizininde, gömülü migration'lar uygulanmış ayrı bir
// SQLite dosyası alır — testler paralel çalışabilir.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/akinalp/mbchat/database"
)

// NewDB, t.TempDir() altında migration'ları uygulanmış bir veritabanı açar.
// Test bitince bağlantı kapanır.
func NewDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.New(filepath.Join(t.TempDir(), "test.db"), database.Migrations())
	require.NoError(t, err, "open test database")

	t.Cleanup(func() { _ = db.Close() })
	return db
}

// InsertUser, doğrudan SQL ile kullanıcı ekler ve ID'sini döner.
// Şifre hash'i gerçek değildir — login gerektiren testler AuthService kullanmalı.
func InsertUser(t *testing.T, db *database.DB, username string) int64 {
	t.Helper()

	var id int64
	err := db.Conn.QueryRowContext(context.Background(),
		`INSERT INTO users (username, password_hash) VALUES (?, 'x') RETURNING id`, username,
	).Scan(&id)
	require.NoError(t, err, "insert user %q", username)
	return id
}

// CategoryID, seed kategorisinin ID'sini adından bulur.
func CategoryID(t *testing.T, db *database.DB, name string) int64 {
	t.Helper()

	var id int64
	err := db.Conn.QueryRowContext(context.Background(),
		`SELECT id FROM categories WHERE name = ?`, name,
	).Scan(&id)
	require.NoError(t, err, "lookup category %q", name)
	return id
}

// InsertServer, sunucuyu ve sahibinin üyeliğini ekler.
func InsertServer(t *testing.T, db *database.DB, name string, ownerID, categoryID int64) int64 {
	t.Helper()
	ctx := context.Background()

	var id int64
	err := db.Conn.QueryRowContext(ctx,
		`INSERT INTO servers (name, owner_id, category_id) VALUES (?, ?, ?) RETURNING id`,
		name, ownerID, categoryID,
	).Scan(&id)
	require.NoError(t, err, "insert server %q", name)

	AddMember(t, db, id, ownerID)
	return id
}

// AddMember, kullanıcıyı sunucuya üye yapar.
func AddMember(t *testing.T, db *database.DB, serverID, userID int64) {
	t.Helper()

	_, err := db.Conn.ExecContext(context.Background(),
		`INSERT OR IGNORE INTO server_members (server_id, user_id) VALUES (?, ?)`,
		serverID, userID,
	)
	require.NoError(t, err, "add member %d to server %d", userID, serverID)
}

// InsertChannel, sunucuya kanal ekler.
func InsertChannel(t *testing.T, db *database.DB, serverID, ownerID int64, name string) int64 {
	t.Helper()

	var id int64
	err := db.Conn.QueryRowContext(context.Background(),
		`INSERT INTO channels (server_id, owner_id, name) VALUES (?, ?, ?) RETURNING id`,
		serverID, ownerID, name,
	).Scan(&id)
	require.NoError(t, err, "insert channel %q", name)
	return id
}
