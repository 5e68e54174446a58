// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Rating
// model and its derived aggregates.
//
// The repository follows a "thin" approach: it performs persistence and
// simple query composition, leaving business rules (self-rating, ownership)
// to the services package.
//
// Error semantics:
//   - Duplicate ratings (same recipe_id, user_id) rely on the database
//     unique constraint and are returned as a raw DB error. The service
//     layer translates that into a domain error (services.ErrAlreadyRated).
//   - On other DB errors (connectivity, constraints, etc.), the raw gorm
//     error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
)

// RatingAggregate is the derived (average, count) pair for one recipe.
// Average carries full precision; rounding is a display concern.
type RatingAggregate struct {
	RecipeID string
	Average  float64
	Count    int64
}

// CreateRating inserts a rating row for the given recipe and user.
//
// The combination (recipe_id, user_id) must be unique, enforced by the
// database schema. Value range validation is enforced at the service layer
// and again by the DB check constraint.
func CreateRating(ctx context.Context, db *gorm.DB, recipeID, userID string, value int) (*domain.Rating, error) {
	rt := &domain.Rating{
		ID:        uuid.NewString(),
		RecipeID:  recipeID,
		UserID:    userID,
		Value:     value,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(rt).Error; err != nil {
		return nil, err
	}
	return rt, nil
}

// AggregateRating returns the average value and count of ratings for one
// recipe. When the recipe has no ratings, average is nil (not zero) so
// callers can distinguish "never rated" from "rated minimally".
func AggregateRating(ctx context.Context, db *gorm.DB, recipeID string) (*float64, int64, error) {
	var row struct {
		Avg *float64
		Cnt int64
	}
	err := db.WithContext(ctx).
		Raw("SELECT AVG(value) AS avg, COUNT(id) AS cnt FROM ratings WHERE recipe_id = ?", recipeID).
		Scan(&row).Error
	if err != nil {
		return nil, 0, err
	}
	return row.Avg, row.Cnt, nil
}

// RatingAggregates returns the per-recipe (average, count) pairs for every
// recipe that has at least one rating. Recipes absent from the result have
// zero ratings.
func RatingAggregates(ctx context.Context, db *gorm.DB) ([]RatingAggregate, error) {
	var out []RatingAggregate
	err := db.WithContext(ctx).
		Model(&domain.Rating{}).
		Select("recipe_id, AVG(value) AS average, COUNT(id) AS count").
		Group("recipe_id").
		Scan(&out).Error
	return out, err
}
