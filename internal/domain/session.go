// Package domain defines the core persistence models for the application.
// These types are used by GORM for database schema mapping and are shared
// across the repository and service layers.
package domain

import "time"

// Session maps an opaque login token to a user for a fixed lifetime. Tokens
// are unguessable (crypto/rand) and validated against ExpiresAt on every
// lookup, so the session store itself is the single source of truth for
// authentication state. There is no in-process session map.
type Session struct {
	ID        string    `gorm:"type:char(36);primaryKey"`
	Token     string    `gorm:"type:char(64);not null;uniqueIndex:ux_sessions_token"`
	UserID    string    `gorm:"type:char(36);not null;index"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
	ExpiresAt time.Time `gorm:"not null;index"`

	// User owning the session. Sessions are cascade-deleted with the user.
	User User `gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName implements the GORM tabler interface.
func (Session) TableName() string { return "sessions" }
