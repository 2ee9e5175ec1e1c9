// Package repository, veritabanı erişim katmanını tanımlar.
//
// Service katmanı doğrudan SQL yazmaz — repository interface'leri üzerinden
// çalışır. Her method context.Context alır: client bağlantıyı koparırsa
// devam eden DB sorgusu da iptal olur.
package repository

import (
	"context"

	"github.com/akinalp/mbchat/models"
)

// UserRepository, kullanıcı veritabanı işlemleri için interface.
type UserRepository interface {
	// Create, kullanıcıyı ekler; ID ve CreatedAt alanlarını doldurur.
	// Kullanıcı adı alınmışsa pkg.ErrAlreadyExists döner.
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}
