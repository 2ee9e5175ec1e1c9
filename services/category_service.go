package services

import (
	"context"
	"time"

	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/pkg/cache"
	"github.com/akinalp/mbchat/repository"
)

// CategoryService, dizin kategorileri iş mantığı interface'i.
type CategoryService interface {
	GetAll(ctx context.Context) ([]models.Category, error)
	// Close, arka plandaki cache temizleme goroutine'ini durdurur.
	Close()
}

// categoryCacheKey — tek anahtar; kategoriler tek liste olarak cache'lenir.
const categoryCacheKey = "all"

type categoryService struct {
	categoryRepo repository.CategoryRepository
	cache        *cache.TTLCache[string, []models.Category]
}

// NewCategoryService, constructor.
// Kategoriler seed migration ile gelir ve nadiren değişir; ttl süresince
// DB'ye gidilmez.
func NewCategoryService(categoryRepo repository.CategoryRepository, ttl time.Duration) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		cache:        cache.New[string, []models.Category](ttl, ttl),
	}
}

func (s *categoryService) GetAll(ctx context.Context) ([]models.Category, error) {
	return s.cache.GetOrLoad(categoryCacheKey, func() ([]models.Category, error) {
		return s.categoryRepo.GetAll(ctx)
	})
}

func (s *categoryService) Close() {
	s.cache.Close()
}
