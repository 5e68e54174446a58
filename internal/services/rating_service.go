// Package services – RatingService
//
// This file implements the RatingService, which governs how users score
// recipes (1..5). It enforces business rules (recipe existence, non-owner
// restriction, one rating per user per recipe) and persists ratings
// atomically in the database. Service-level errors (e.g. ErrInvalidRating,
// ErrRecipeNotFound, ErrSelfRating, ErrAlreadyRated) are returned for
// predictable cases so handlers can map them to HTTP results consistently.
package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
	"github.com/iksninja/503004-wongnok-recipes/internal/repo"
)

// RatingService implements the use-cases around recipe ratings. It
// validates the operation (existence, self-rating, uniqueness) and persists
// the rating using the provided GORM handle.
type RatingService struct {
	// DB is the database handle used for all rating operations.
	DB *gorm.DB
}

// NewRatingService constructs a RatingService bound to db.
func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// Submit records a rating value for recipeID on behalf of raterID.
//
// Semantics and validation:
//   - value must be in [1,5]; otherwise ErrInvalidRating.
//   - recipeID must exist; otherwise ErrRecipeNotFound.
//   - The rater must not own the recipe; otherwise ErrSelfRating.
//   - A user may rate a given recipe at most once; a second attempt yields
//     ErrAlreadyRated.
//
// Concurrency & atomicity:
//   - The operation runs inside a transaction so the existence/ownership
//     reads and the insert are atomic, and the uniqueness rule is carried
//     by the (recipe_id, user_id) DB constraint rather than a prior
//     existence query.
//
// Errors:
//   - Returns the service-level sentinel errors for the validation cases
//     above; unexpected failures propagate the underlying DB error.
func (s *RatingService) Submit(ctx context.Context, raterID, recipeID string, value int) (*domain.Rating, error) {
	if value < 1 || value > 5 {
		return nil, ErrInvalidRating
	}

	var out *domain.Rating
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 1) Load the recipe and verify it exists.
		r, err := repo.GetRecipe(ctx, tx, recipeID)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}

		// 2) Owners may not score their own recipes.
		if r.UserID == raterID {
			return ErrSelfRating
		}

		// 3) Insert with (recipe_id, user_id) uniqueness semantics.
		rt, err := repo.CreateRating(ctx, tx, recipeID, raterID, value)
		if err != nil {
			if isDuplicate(err) {
				return ErrAlreadyRated
			}
			return err
		}
		out = rt
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Aggregate returns the derived (average, count) pair for recipeID.
// Average is nil (not zero) when the recipe has no ratings.
func (s *RatingService) Aggregate(ctx context.Context, recipeID string) (*float64, int64, error) {
	return repo.AggregateRating(ctx, s.DB, recipeID)
}
