package files

import (
	"context"

	"github.com/LouisLiuNova/SyncHub/internal/server/models"
)

// Repository stores file metadata. The content itself lives in a blob.Store
// under FileItem.StorageKey.
type Repository interface {
	Create(ctx context.Context, file *models.FileItem) (*models.FileItem, error)
	GetByID(ctx context.Context, id int64) (*models.FileItem, error)
	ListRecent(ctx context.Context, limit int) ([]*models.FileItem, error)
	Delete(ctx context.Context, id int64) error
}
