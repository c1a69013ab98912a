package tags

import (
	"context"

	"github.com/LouisLiuNova/SyncHub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tag *models.Tag) (*models.Tag, error)
	GetByID(ctx context.Context, id int64) (*models.Tag, error)
	FindByName(ctx context.Context, name string) (*models.Tag, error)
	List(ctx context.Context) ([]*models.Tag, error)
	Count(ctx context.Context) (int64, error)
	Delete(ctx context.Context, id int64) error
}
