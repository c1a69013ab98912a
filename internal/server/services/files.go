package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/blob"
	"github.com/LouisLiuNova/SyncHub/internal/server/hub"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/repomanager"
)

// FileGuard enforces ownership and mints file-scoped download tokens.
type FileGuard interface {
	Authorizer
	IssueDownload(id models.Identity, fileID int64) (string, time.Time, error)
}

type FileService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	blobs       blob.Store
	guard       FileGuard
	hub         Broadcaster
	logger      logging.Logger
	now         clock
}

func NewFileService(db *sql.DB, m repomanager.RepositoryManager, blobs blob.Store, guard FileGuard, b Broadcaster, logger logging.Logger) *FileService {
	return &FileService{
		db:          db,
		repomanager: m,
		blobs:       blobs,
		guard:       guard,
		hub:         b,
		logger:      logger.With("module", "files"),
		now:         utcNow,
	}
}

func (s *FileService) List(ctx context.Context) ([]*models.FileItem, error) {
	return s.repomanager.Files(s.db).ListRecent(ctx, common.RecentItemsLimit)
}

// Upload stores r under a fresh storage key and records it. If the record
// cannot be written the blob is removed again.
func (s *FileService) Upload(ctx context.Context, id models.Identity, filename, tag string, r io.Reader, size int64) (*models.FileItem, error) {
	if strings.TrimSpace(filename) == "" {
		return nil, fmt.Errorf("file name is required: %w", common.ErrorValidation)
	}
	if size < 0 {
		return nil, fmt.Errorf("invalid file size %d: %w", size, common.ErrorValidation)
	}
	if tag = strings.TrimSpace(tag); tag == "" {
		tag = common.DefaultTagName
	}

	now := s.now()
	key := blob.NewKey(filename, now)

	if err := s.blobs.Put(ctx, key, r, size); err != nil {
		return nil, fmt.Errorf("store blob: %w", err)
	}

	item, err := s.repomanager.Files(s.db).Create(ctx, &models.FileItem{
		FileName:   filename,
		StorageKey: key,
		Size:       size,
		Tag:        tag,
		CreatedAt:  now,
		UserID:     id.UserID,
		UserName:   id.UserName,
	})
	if err != nil {
		if rmErr := s.blobs.Remove(ctx, key); rmErr != nil {
			s.logger.Warn(ctx, "orphaned blob", "key", key, "error", rmErr)
		}
		return nil, err
	}

	s.logger.Info(ctx, "file uploaded", "file_id", item.ID, "size", size, "user", id.UserName)
	s.hub.Broadcast(hub.TopicFiles)
	return item, nil
}

// Delete removes the blob, then the record. Only the owner may delete.
// Failing to remove the blob is logged and does not stop the record deletion.
func (s *FileService) Delete(ctx context.Context, id models.Identity, fileID int64) error {
	repo := s.repomanager.Files(s.db)

	item, err := repo.GetByID(ctx, fileID)
	if err != nil {
		return err
	}
	if err := s.guard.AuthorizeMutation(id, item.UserID); err != nil {
		return err
	}

	if err := s.blobs.Remove(ctx, item.StorageKey); err != nil && !errors.Is(err, common.ErrorNotFound) {
		s.logger.Warn(ctx, "blob removal failed", "file_id", fileID, "key", item.StorageKey, "error", err)
	}

	if err := repo.Delete(ctx, fileID); err != nil {
		return err
	}

	s.hub.Broadcast(hub.TopicFiles)
	return nil
}

// Open returns the record and its content. A missing record or blob yields
// common.ErrorNotFound. The caller closes the reader.
func (s *FileService) Open(ctx context.Context, fileID int64) (*models.FileItem, io.ReadCloser, error) {
	item, err := s.repomanager.Files(s.db).GetByID(ctx, fileID)
	if err != nil {
		return nil, nil, err
	}

	rc, err := s.blobs.Open(ctx, item.StorageKey)
	if err != nil {
		return nil, nil, err
	}
	return item, rc, nil
}

// DownloadToken issues a short-lived token valid only for fileID.
func (s *FileService) DownloadToken(ctx context.Context, id models.Identity, fileID int64) (string, time.Time, error) {
	if _, err := s.repomanager.Files(s.db).GetByID(ctx, fileID); err != nil {
		return "", time.Time{}, err
	}
	return s.guard.IssueDownload(id, fileID)
}
