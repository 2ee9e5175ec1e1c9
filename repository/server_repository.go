// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'leri üzerinden
// çalışır. Böylece service testleri fake repository ile yazılabilir ve
// SQL tek bir katmanda toplanır.
package repository

import (
	"context"

	"github.com/akinalp/mbchat/models"
)

// ServerRepository, sunucu ve üyelik veritabanı işlemleri için interface.
type ServerRepository interface {
	// List, ServerQuery'yi çalıştırır ve her sunucunun kanallarını doldurur.
	// Eşleşme yoksa boş slice döner (nil değil).
	List(ctx context.Context, q ServerQuery) ([]models.Server, error)

	// GetByID, tek sunucuyu kanallarıyla birlikte döner.
	GetByID(ctx context.Context, id int64) (*models.Server, error)

	// Create, sunucuyu ekler; ID ve CreatedAt alanlarını doldurur.
	Create(ctx context.Context, server *models.Server) error

	// AddMember idempotenttir: zaten üye ise hata vermez.
	AddMember(ctx context.Context, serverID, userID int64) error
	RemoveMember(ctx context.Context, serverID, userID int64) error
	IsMember(ctx context.Context, serverID, userID int64) (bool, error)
}
