package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akinalp/mbchat/models"
	"github.com/akinalp/mbchat/services"
)

type countingCategoryRepo struct {
	calls int
}

func (r *countingCategoryRepo) GetByID(context.Context, int64) (*models.Category, error) {
	return nil, nil
}

func (r *countingCategoryRepo) GetAll(context.Context) ([]models.Category, error) {
	r.calls++
	return []models.Category{{ID: 1, Name: "Gaming"}}, nil
}

func TestCategoryService_GetAll_Cached(t *testing.T) {
	repo := &countingCategoryRepo{}
	svc := services.NewCategoryService(repo, time.Minute)
	defer svc.Close()

	for i := 0; i < 3; i++ {
		got, err := svc.GetAll(context.Background())
		require.NoError(t, err)
		assert.Len(t, got, 1)
	}

	assert.Equal(t, 1, repo.calls)
}
