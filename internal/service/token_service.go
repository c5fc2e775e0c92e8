package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"orphanage-api/internal/domain"
	"orphanage-api/internal/repository"
)

const (
	tokenBytes = 24

	// reuseWindow keeps rapid successive logins from thrashing tokens: a
	// token still valid for more than this window is handed back unchanged.
	reuseWindow = 60 * time.Second

	// DefaultTokenTTL is the bearer token lifetime when none is configured.
	DefaultTokenTTL = time.Hour
)

// ErrInvalidToken indicates a bearer token that is unknown or expired.
var ErrInvalidToken = errors.New("invalid or expired token")

// TokenService manages the bearer token lifecycle for users.
type TokenService interface {
	Issue(ctx context.Context, user *domain.User) (string, error)
	Verify(ctx context.Context, token string) (*domain.User, error)
	Revoke(ctx context.Context, user *domain.User) error
}

type tokenService struct {
	users repository.UserRepository
	ttl   time.Duration
	now   func() time.Time
}

func NewTokenService(users repository.UserRepository, ttl time.Duration) TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &tokenService{
		users: users,
		ttl:   ttl,
		now:   time.Now,
	}
}

// Issue returns the user's current token when it is still comfortably valid,
// otherwise mints a fresh one. Expiration is fixed at issuance; there is no
// sliding renewal.
func (s *tokenService) Issue(ctx context.Context, user *domain.User) (string, error) {
	now := s.now().UTC()
	if user.Token != "" && user.TokenExpiration.After(now.Add(reuseWindow)) {
		return user.Token, nil
	}

	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate token: %w", err)
	}
	user.Token = base64.StdEncoding.EncodeToString(buf)
	user.TokenExpiration = now.Add(s.ttl)

	if err := s.users.UpdateToken(ctx, user.ID, user.Token, user.TokenExpiration); err != nil {
		return "", err
	}
	return user.Token, nil
}

// Verify resolves a bearer token to its user and refreshes last_seen. An
// unknown or expired token yields ErrInvalidToken, never a hint about which.
func (s *tokenService) Verify(ctx context.Context, token string) (*domain.User, error) {
	if token == "" {
		return nil, ErrInvalidToken
	}

	user, err := s.users.GetByToken(ctx, token)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	now := s.now().UTC()
	if !user.TokenExpiration.After(now) {
		return nil, ErrInvalidToken
	}

	if err := s.users.TouchLastSeen(ctx, user.ID, now); err != nil {
		return nil, err
	}
	user.LastSeen = now
	return user, nil
}

// Revoke expires the user's token immediately. The token value stays in place
// but can no longer verify. Revoking an absent token is a no-op.
func (s *tokenService) Revoke(ctx context.Context, user *domain.User) error {
	if user.Token == "" {
		return nil
	}
	user.TokenExpiration = s.now().UTC().Add(-time.Second)
	return s.users.UpdateToken(ctx, user.ID, user.Token, user.TokenExpiration)
}
