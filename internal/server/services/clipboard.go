package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/hub"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/repomanager"
)

type ClipboardService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	guard       Authorizer
	hub         Broadcaster
	logger      logging.Logger
	now         clock
}

func NewClipboardService(db *sql.DB, m repomanager.RepositoryManager, guard Authorizer, b Broadcaster, logger logging.Logger) *ClipboardService {
	return &ClipboardService{
		db:          db,
		repomanager: m,
		guard:       guard,
		hub:         b,
		logger:      logger.With("module", "clipboard"),
		now:         utcNow,
	}
}

// List returns the most recent items of all users, newest first.
func (s *ClipboardService) List(ctx context.Context) ([]*models.ClipboardItem, error) {
	return s.repomanager.Clipboard(s.db).ListRecent(ctx, common.RecentItemsLimit)
}

// Create stores a snippet owned by id. An empty tag means the default tag.
func (s *ClipboardService) Create(ctx context.Context, id models.Identity, content, tag string) (*models.ClipboardItem, error) {
	if strings.TrimSpace(content) == "" {
		return nil, fmt.Errorf("content is required: %w", common.ErrorValidation)
	}
	if tag = strings.TrimSpace(tag); tag == "" {
		tag = common.DefaultTagName
	}

	item, err := s.repomanager.Clipboard(s.db).Create(ctx, &models.ClipboardItem{
		Content:   content,
		Tag:       tag,
		CreatedAt: s.now(),
		UserID:    id.UserID,
		UserName:  id.UserName,
	})
	if err != nil {
		return nil, err
	}

	s.hub.Broadcast(hub.TopicClipboard)
	return item, nil
}

// Delete removes an item. Only its owner may delete it.
func (s *ClipboardService) Delete(ctx context.Context, id models.Identity, itemID int64) error {
	repo := s.repomanager.Clipboard(s.db)

	item, err := repo.GetByID(ctx, itemID)
	if err != nil {
		return err
	}
	if err := s.guard.AuthorizeMutation(id, item.UserID); err != nil {
		return err
	}

	if err := repo.Delete(ctx, itemID); err != nil {
		return err
	}

	s.hub.Broadcast(hub.TopicClipboard)
	return nil
}
