package clipboard

import (
	"context"

	"github.com/LouisLiuNova/SyncHub/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, item *models.ClipboardItem) (*models.ClipboardItem, error)
	GetByID(ctx context.Context, id int64) (*models.ClipboardItem, error)
	// ListRecent returns up to limit items, newest first, with owner names.
	ListRecent(ctx context.Context, limit int) ([]*models.ClipboardItem, error)
	Delete(ctx context.Context, id int64) error
}
