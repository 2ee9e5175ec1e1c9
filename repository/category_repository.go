package repository

import (
	"context"

	"github.com/akinalp/mbchat/models"
)

// CategoryRepository, kategori veritabanı işlemleri için interface.
// Kategoriler seed migration ile gelir — yazma işlemi yok.
type CategoryRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Category, error)
	GetAll(ctx context.Context) ([]models.Category, error)
}
