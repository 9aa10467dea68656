package models

import "time"

// AdminSession tracks issued admin JWTs so they can be revoked before expiry.
type AdminSession struct {
	Base
	PrincipalID string     `json:"principalId" gorm:"index;not null"`
	IP          string     `json:"ip"`
	UA          string     `json:"ua"          gorm:"type:text"`
	ExpiresAt   time.Time  `json:"expiresAt"   gorm:"index;not null"`
	RevokedAt   *time.Time `json:"revokedAt"   gorm:"index"`
}

func (AdminSession) TableName() string { return "admin_sessions" }
