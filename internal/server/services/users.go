package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/dbx"
	"github.com/LouisLiuNova/SyncHub/internal/logging"
	"github.com/LouisLiuNova/SyncHub/internal/server/auth"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/repomanager"
)

const (
	maxUserNameLength = 64
	// bcrypt ignores input past 72 bytes.
	maxPasswordBytes = 72
)

// DefaultTags is the tag set created when the first user registers.
var DefaultTags = []models.Tag{
	{Name: common.DefaultTagName, ColorBg: "#e2e8f0", ColorText: "#1e293b"},
	{Name: "Work", ColorBg: "#dbeafe", ColorText: "#1e40af"},
	{Name: "Personal", ColorBg: "#dcfce7", ColorText: "#166534"},
	{Name: "Important", ColorBg: "#fee2e2", ColorText: "#991b1b"},
}

// LoginGuard checks credentials and mints session tokens.
type LoginGuard interface {
	AuthorizeLogin(ctx context.Context, username, password string) (models.Identity, error)
	Issue(id models.Identity) (string, error)
}

// UserService handles registration and login.
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	guard       LoginGuard
	logger      logging.Logger
	now         clock
}

func NewUserService(db *sql.DB, m repomanager.RepositoryManager, guard LoginGuard, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		guard:       guard,
		logger:      logger.With("module", "users"),
		now:         utcNow,
	}
}

func validateCredentials(username, password string) error {
	if username == "" || utf8.RuneCountInString(username) > maxUserNameLength {
		return fmt.Errorf("username must be 1-%d characters: %w", maxUserNameLength, common.ErrorValidation)
	}
	if strings.TrimSpace(username) != username {
		return fmt.Errorf("username must not start or end with spaces: %w", common.ErrorValidation)
	}
	if password == "" {
		return fmt.Errorf("password is required: %w", common.ErrorValidation)
	}
	if len(password) > maxPasswordBytes {
		return fmt.Errorf("password longer than %d bytes: %w", maxPasswordBytes, common.ErrorValidation)
	}
	return nil
}

// Register creates a user and, when no tags exist yet, the default tag set.
// A taken username yields common.ErrAlreadyExists.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if err := validateCredentials(username, password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{UserName: username, PasswordHash: hash, CreatedAt: s.now()}
	u, err := s.repomanager.Users(s.db).Create(ctx, user)
	if err != nil {
		return nil, err
	}

	if err := s.bootstrapTags(ctx); err != nil {
		return nil, err
	}

	s.logger.Info(ctx, "user registered", "user", u.UserName)
	return u, nil
}

// bootstrapTags creates DefaultTags in one transaction if the tags table is
// empty. Losing a race against a concurrent registration surfaces as a
// uniqueness violation and is not an error.
func (s *UserService) bootstrapTags(ctx context.Context) error {
	created := false
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Tags(tx)

		n, err := repo.Count(ctx)
		if err != nil {
			return err
		}
		if n > 0 {
			return nil
		}

		now := s.now()
		for _, t := range DefaultTags {
			tag := t
			tag.CreatedAt = now
			if _, err := repo.Create(ctx, &tag); err != nil {
				return err
			}
		}
		created = true
		return nil
	})

	switch {
	case errors.Is(err, common.ErrAlreadyExists):
		s.logger.Debug(ctx, "default tags created concurrently")
		return nil
	case err != nil:
		return fmt.Errorf("bootstrap tags: %w", err)
	}

	if created {
		s.logger.Info(ctx, "default tags created", "count", len(DefaultTags))
	}
	return nil
}

// Login checks credentials and returns a session token. Unknown users yield
// common.ErrorNotFound, a wrong password common.ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (string, error) {
	id, err := s.guard.AuthorizeLogin(ctx, username, password)
	if err != nil {
		return "", err
	}

	token, err := s.guard.Issue(id)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}
	return token, nil
}
