package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/mx-space/folio/internal/modules/auth/authn"
	"github.com/mx-space/folio/internal/pkg/apperr"
	jwtpkg "github.com/mx-space/folio/internal/pkg/jwt"
	sessionpkg "github.com/mx-space/folio/internal/pkg/session"
	"gorm.io/gorm"
)

type Service struct {
	db       *gorm.DB
	verifier authn.Verifier
	ttl      time.Duration
}

func NewService(db *gorm.DB, verifier authn.Verifier, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = sessionpkg.DefaultTTL
	}
	return &Service{db: db, verifier: verifier, ttl: ttl}
}

// Login verifies the credentials and opens a session for the principal.
func (s *Service) Login(ctx context.Context, email, password, ip, ua string) (string, *authn.Principal, error) {
	p, err := s.verifier.Verify(ctx, strings.TrimSpace(email), password)
	if err != nil {
		return "", nil, err
	}
	token, _, err := sessionpkg.Issue(ctx, s.db, jwtpkg.Identity{ID: p.ID, Email: p.Email, Name: p.Name}, ip, ua, s.ttl)
	if err != nil {
		return "", nil, apperr.Storage(err, "failed to create session")
	}
	return token, p, nil
}

// Logout revokes the session a token is bound to. Unknown, expired or
// already revoked tokens are not an error.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	claims, err := jwtpkg.Parse(token)
	if err != nil || claims.SessionID == "" {
		return nil
	}
	err = sessionpkg.Revoke(ctx, s.db, claims.UserID, claims.SessionID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.Storage(err, "failed to revoke session")
	}
	return nil
}
