package session

import (
	"context"
	"strings"
	"time"

	"github.com/mx-space/folio/internal/models"
	jwtpkg "github.com/mx-space/folio/internal/pkg/jwt"
	"gorm.io/gorm"
)

const DefaultTTL = 7 * 24 * time.Hour

// Issue creates a DB session and signs a JWT bound to that session.
func Issue(ctx context.Context, db *gorm.DB, id jwtpkg.Identity, ip, ua string, ttl time.Duration) (string, *models.AdminSession, error) {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	s := &models.AdminSession{
		PrincipalID: id.ID,
		IP:          strings.TrimSpace(ip),
		UA:          strings.TrimSpace(ua),
		ExpiresAt:   time.Now().Add(ttl),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return "", nil, err
	}

	token, err := jwtpkg.Sign(id, s.ID, ttl)
	if err != nil {
		_ = db.WithContext(ctx).Delete(s).Error
		return "", nil, err
	}
	return token, s, nil
}

// IsActive reports whether the session exists, is unrevoked and unexpired.
// Tokens without a session id are never active.
func IsActive(ctx context.Context, db *gorm.DB, principalID, sessionID string) (bool, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return false, nil
	}

	var count int64
	err := db.WithContext(ctx).Model(&models.AdminSession{}).
		Where("id = ? AND principal_id = ? AND revoked_at IS NULL AND expires_at > ?", sessionID, principalID, time.Now()).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func Revoke(ctx context.Context, db *gorm.DB, principalID, sessionID string) error {
	now := time.Now()
	res := db.WithContext(ctx).Model(&models.AdminSession{}).
		Where("id = ? AND principal_id = ? AND revoked_at IS NULL", sessionID, principalID).
		Update("revoked_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Prune removes sessions that expired or were revoked before cutoff.
func Prune(ctx context.Context, db *gorm.DB, cutoff time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at < ? OR revoked_at < ?", cutoff, cutoff).
		Delete(&models.AdminSession{})
	return res.RowsAffected, res.Error
}
