// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides the session store: opaque token rows
// with a fixed expiry, validated on every lookup.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
)

// CreateSession inserts a session row binding token to userID for ttl.
// The token must be unique (DB unique index).
func CreateSession(ctx context.Context, db *gorm.DB, userID, token string, ttl time.Duration) (*domain.Session, error) {
	now := time.Now().UTC()
	s := &domain.Session{
		ID:        uuid.NewString(),
		Token:     token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
	if err := db.WithContext(ctx).Create(s).Error; err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession fetches the live session for token, treating rows that expired
// before now as absent. Returns ErrNotFound for unknown or expired tokens.
func GetSession(ctx context.Context, db *gorm.DB, token string, now time.Time) (*domain.Session, error) {
	var s domain.Session
	err := db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now.UTC()).
		First(&s).Error
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// DeleteSession invalidates token immediately. Deleting an unknown token is
// not an error (logout is idempotent).
func DeleteSession(ctx context.Context, db *gorm.DB, token string) error {
	return db.WithContext(ctx).
		Where("token = ?", token).
		Delete(&domain.Session{}).Error
}

// DeleteExpiredSessions removes rows whose expiry has passed and reports how
// many were purged. Called by the background sweep in cmd/server. The bound
// time is normalized to UTC: expiries are stored in UTC and SQLite compares
// the values naively, so a zoned now would shift the cutoff by the offset.
func DeleteExpiredSessions(ctx context.Context, db *gorm.DB, now time.Time) (int64, error) {
	res := db.WithContext(ctx).
		Where("expires_at <= ?", now.UTC()).
		Delete(&domain.Session{})
	return res.RowsAffected, res.Error
}
