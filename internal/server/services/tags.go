package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/hub"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/repomanager"
)

const (
	maxTagNameLength = 32

	defaultTagColorBg   = "#e2e8f0"
	defaultTagColorText = "#1e293b"
)

type TagService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hub         Broadcaster
	logger      logging.Logger
	now         clock
}

func NewTagService(db *sql.DB, m repomanager.RepositoryManager, b Broadcaster, logger logging.Logger) *TagService {
	return &TagService{
		db:          db,
		repomanager: m,
		hub:         b,
		logger:      logger.With("module", "tags"),
		now:         utcNow,
	}
}

// List returns all tags ordered by name.
func (s *TagService) List(ctx context.Context) ([]*models.Tag, error) {
	return s.repomanager.Tags(s.db).List(ctx)
}

// Create adds a tag. Names are compared case-insensitively; a clash yields
// common.ErrAlreadyExists whether it is caught by the lookup or by the
// storage constraint.
func (s *TagService) Create(ctx context.Context, id models.Identity, name, colorBg, colorText string) (*models.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" || utf8.RuneCountInString(name) > maxTagNameLength {
		return nil, fmt.Errorf("tag name must be 1-%d characters: %w", maxTagNameLength, common.ErrorValidation)
	}
	if colorBg == "" {
		colorBg = defaultTagColorBg
	}
	if colorText == "" {
		colorText = defaultTagColorText
	}

	repo := s.repomanager.Tags(s.db)

	_, err := repo.FindByName(ctx, name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("tag %q: %w", name, common.ErrAlreadyExists)
	case !errors.Is(err, common.ErrorNotFound):
		return nil, err
	}

	tag, err := repo.Create(ctx, &models.Tag{Name: name, ColorBg: colorBg, ColorText: colorText, CreatedAt: s.now()})
	if err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "tag created", "tag", tag.Name, "user", id.UserName)
	s.hub.Broadcast(hub.TopicTags)
	return tag, nil
}

// Delete removes a tag by id. The default tag is reserved.
func (s *TagService) Delete(ctx context.Context, id models.Identity, tagID int64) error {
	repo := s.repomanager.Tags(s.db)

	tag, err := repo.GetByID(ctx, tagID)
	if err != nil {
		return err
	}
	if strings.EqualFold(tag.Name, common.DefaultTagName) {
		return fmt.Errorf("tag %q: %w", tag.Name, common.ErrReservedTag)
	}

	if err := repo.Delete(ctx, tagID); err != nil {
		return err
	}

	s.logger.Info(ctx, "tag deleted", "tag", tag.Name, "user", id.UserName)
	s.hub.Broadcast(hub.TopicTags)
	return nil
}
