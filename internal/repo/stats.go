// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides small aggregate/statistics queries used
// primarily for conditional responses (e.g., ETag generation) in the HTTP
// layer.
package repo

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
)

// RecipesStats returns aggregate metadata for a user's recipes: the total
// number of rows and the maximum UpdatedAt timestamp among them.
//
// It executes two lightweight queries against the recipes table scoped to
// the provided ownerID. When the user has no recipes, the returned count is
// 0 and maxUpdatedAt is nil.
//
// Return values:
//   - count:        total recipes for ownerID
//   - maxUpdatedAt: pointer to the greatest UpdatedAt, or nil if no rows
//   - err:          database error, if any
func RecipesStats(ctx context.Context, db *gorm.DB, ownerID string) (count int64, maxUpdatedAt *time.Time, err error) {
	q := db.WithContext(ctx).Model(&domain.Recipe{}).Where("user_id = ?", ownerID)

	// Count
	if err = q.Count(&count).Error; err != nil {
		return 0, nil, err
	}
	if count == 0 {
		return 0, nil, nil
	}

	// Get latest updated_at (avoid MAX() -> TEXT in SQLite)
	var row struct {
		UpdatedAt time.Time
	}
	if err = q.Select("updated_at").Order("updated_at DESC").Limit(1).Scan(&row).Error; err != nil {
		return 0, nil, err
	}
	return count, &row.UpdatedAt, nil
}
