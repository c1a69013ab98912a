// Package auth implements the authorization guard: signed session and
// download tokens, password hashing, and ownership checks.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/LouisLiuNova/SyncHub/internal/common"
	"github.com/LouisLiuNova/SyncHub/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

const (
	ScopeSession  = "session"
	ScopeDownload = "download"
)

// Claims carries the username as subject. Download tokens are additionally
// bound to a single file.
type Claims struct {
	jwt.RegisteredClaims
	Scope  string `json:"scope"`
	FileID int64  `json:"fid,omitempty"`
}

// TokenService issues and verifies HS256 tokens.
type TokenService struct {
	secret      []byte
	accessTTL   time.Duration
	downloadTTL time.Duration
	now         func() time.Time
}

func NewTokenService(secret []byte, accessTTL, downloadTTL time.Duration) *TokenService {
	return &TokenService{
		secret:      secret,
		accessTTL:   accessTTL,
		downloadTTL: downloadTTL,
		now:         time.Now,
	}
}

func (s *TokenService) sign(claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", err
	}
	return tokenString, nil
}

// Issue returns a session token for id.
func (s *TokenService) Issue(id models.Identity) (string, error) {
	now := s.now()
	return s.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.accessTTL)),
		},
		Scope: ScopeSession,
	})
}

// IssueDownload returns a token that only authorizes downloading fileID,
// along with its expiry.
func (s *TokenService) IssueDownload(id models.Identity, fileID int64) (string, time.Time, error) {
	now := s.now()
	expiresAt := now.Add(s.downloadTTL)
	token, err := s.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.UserName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		Scope:  ScopeDownload,
		FileID: fileID,
	})
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expiresAt, nil
}

// Verify checks signature, algorithm and expiry. Expired tokens yield
// common.ErrTokenExpired; every other failure yields common.ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
