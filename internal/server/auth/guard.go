package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/LouisLiuNova/SyncHub/internal/server/repositories/users"
)

// Guard resolves tokens and credentials to an Identity and enforces
// ownership. It keeps no state between requests.
type Guard struct {
	tokens *TokenService
	users  users.Repository
}

func NewGuard(tokens *TokenService, users users.Repository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

func (g *Guard) resolve(ctx context.Context, claims *Claims) (models.Identity, error) {
	user, err := g.users.GetUserByLogin(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return models.Identity{}, fmt.Errorf("%w: unknown subject", common.ErrUnauthenticated)
		}
		return models.Identity{}, err
	}
	return models.Identity{UserID: user.ID, UserName: user.UserName}, nil
}

// Authenticate accepts session tokens only.
func (g *Guard) Authenticate(ctx context.Context, token string) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, fmt.Errorf("%w: missing token", common.ErrUnauthenticated)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}
	if claims.Scope != ScopeSession {
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrUnauthenticated, common.ErrInvalidToken)
	}

	return g.resolve(ctx, claims)
}

// AuthenticateDownload accepts a session token, or a download token issued
// for fileID. A download token for another file yields common.ErrForbidden.
func (g *Guard) AuthenticateDownload(ctx context.Context, token string, fileID int64) (models.Identity, error) {
	if token == "" {
		return models.Identity{}, fmt.Errorf("%w: missing token", common.ErrUnauthenticated)
	}

	claims, err := g.tokens.Verify(token)
	if err != nil {
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrUnauthenticated, err)
	}

	switch claims.Scope {
	case ScopeSession:
	case ScopeDownload:
		if claims.FileID != fileID {
			return models.Identity{}, fmt.Errorf("token not valid for file %d: %w", fileID, common.ErrForbidden)
		}
	default:
		return models.Identity{}, fmt.Errorf("%w: %w", common.ErrUnauthenticated, common.ErrInvalidToken)
	}

	return g.resolve(ctx, claims)
}

// AuthorizeLogin checks credentials. Unknown users yield common.ErrorNotFound,
// a wrong password common.ErrInvalidCredentials.
func (g *Guard) AuthorizeLogin(ctx context.Context, username, password string) (models.Identity, error) {
	user, err := g.users.GetUserByLogin(ctx, username)
	if err != nil {
		return models.Identity{}, err
	}

	if err := CheckPassword(user.PasswordHash, password); err != nil {
		return models.Identity{}, err
	}

	return models.Identity{UserID: user.ID, UserName: user.UserName}, nil
}

// AuthorizeMutation permits changes to a resource only by its owner.
func (g *Guard) AuthorizeMutation(id models.Identity, ownerID int64) error {
	if !id.Owns(ownerID) {
		return common.ErrForbidden
	}
	return nil
}

func (g *Guard) Issue(id models.Identity) (string, error) {
	return g.tokens.Issue(id)
}

func (g *Guard) IssueDownload(id models.Identity, fileID int64) (string, time.Time, error) {
	return g.tokens.IssueDownload(id, fileID)
}
