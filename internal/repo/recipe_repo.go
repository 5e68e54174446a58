// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the Recipe
// model.
//
// Read queries join the users table so listing views carry the owner's
// username without a second round trip. Mutations are always scoped by
// (id, user_id) so the ownership check travels with the statement and
// cannot race a concurrent owner change.
//
// Functions:
//
//   - CreateRecipe(ctx, db, ownerID, fields) -> *domain.Recipe, error
//     Inserts a new recipe row with UUID primary key and UTC timestamp.
//
//   - GetRecipe(ctx, db, id) -> *domain.Recipe, error
//     Fetches one recipe with owner username, or ErrNotFound.
//
//   - ListByOwner(ctx, db, ownerID) -> []domain.Recipe, error
//     Returns a user's recipes, newest first.
//
//   - SearchRecipes(ctx, db, keyword, cookTime, difficulty) -> []domain.Recipe, error
//     AND-combined filtering; keyword matches title OR ingredients.
//
//   - UpdateRecipe(ctx, db, id, ownerID, fields) -> error
//     Replaces mutable columns; ErrNotFound when the scoped row is absent.
//
//   - DeleteRecipe(ctx, db, id, ownerID) -> error
//     Hard delete; dependent ratings are removed by the FK cascade.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
)

// RecipeFields holds the mutable recipe columns shared by create and update.
type RecipeFields struct {
	Title       string
	ImageURL    string
	Ingredients string
	Steps       string
	CookTime    string
	Difficulty  string
}

// ownerJoin is the select/join pair that decorates recipe rows with the
// owner's username.
func ownerJoin(db *gorm.DB) *gorm.DB {
	return db.Model(&domain.Recipe{}).
		Select("recipes.*, users.username AS username").
		Joins("JOIN users ON users.id = recipes.user_id")
}

// CreateRecipe inserts a new recipe owned by ownerID. The recipe ID is a
// randomly generated UUID, and CreatedAt is set to UTC.
func CreateRecipe(ctx context.Context, db *gorm.DB, ownerID string, f RecipeFields) (*domain.Recipe, error) {
	r := &domain.Recipe{
		ID:          uuid.NewString(),
		UserID:      ownerID,
		Title:       f.Title,
		ImageURL:    f.ImageURL,
		Ingredients: f.Ingredients,
		Steps:       f.Steps,
		CookTime:    f.CookTime,
		Difficulty:  f.Difficulty,
		CreatedAt:   time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(r).Error; err != nil {
		return nil, err
	}
	return r, nil
}

// GetRecipe fetches a single recipe by ID together with the owner's
// username. If the record does not exist, it returns ErrNotFound.
func GetRecipe(ctx context.Context, db *gorm.DB, id string) (*domain.Recipe, error) {
	var r domain.Recipe
	err := ownerJoin(db.WithContext(ctx)).
		Where("recipes.id = ?", id).
		First(&r).Error
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListByOwner returns all recipes belonging to ownerID, ordered by creation
// time descending (most recent first). It returns an empty slice if the
// user has none.
func ListByOwner(ctx context.Context, db *gorm.DB, ownerID string) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := db.WithContext(ctx).
		Where("user_id = ?", ownerID).
		Order("created_at desc").
		Find(&out).Error
	return out, err
}

// ListRecipes returns every recipe with the owner's username, newest first.
// Used by the listing engine as the base set for ranking composition.
func ListRecipes(ctx context.Context, db *gorm.DB) ([]domain.Recipe, error) {
	var out []domain.Recipe
	err := ownerJoin(db.WithContext(ctx)).
		Order("recipes.created_at desc").
		Find(&out).Error
	return out, err
}

// SearchRecipes filters recipes for discovery views. keyword is expected to
// be pre-folded to lower case by the caller and matches as a substring
// against title OR ingredients; cookTime and difficulty are exact-match.
// All provided filters combine with AND; empty values impose no constraint.
// Results are ordered by creation recency.
func SearchRecipes(ctx context.Context, db *gorm.DB, keyword, cookTime, difficulty string) ([]domain.Recipe, error) {
	q := ownerJoin(db.WithContext(ctx))
	if keyword != "" {
		like := "%" + keyword + "%"
		q = q.Where("LOWER(recipes.title) LIKE ? OR LOWER(recipes.ingredients) LIKE ?", like, like)
	}
	if cookTime != "" {
		q = q.Where("recipes.cook_time = ?", cookTime)
	}
	if difficulty != "" {
		q = q.Where("recipes.difficulty = ?", difficulty)
	}

	var out []domain.Recipe
	err := q.Order("recipes.created_at desc").Find(&out).Error
	return out, err
}

// UpdateRecipe replaces the mutable columns of the recipe identified by id
// and owned by ownerID, bumping updated_at. If no rows are affected (recipe
// missing or not owned by ownerID), it returns ErrNotFound; callers resolve
// the missing-vs-forbidden distinction before issuing the update.
func UpdateRecipe(ctx context.Context, db *gorm.DB, id, ownerID string, f RecipeFields) error {
	res := db.WithContext(ctx).
		Model(&domain.Recipe{}).
		Where("id = ? AND user_id = ?", id, ownerID).
		Updates(map[string]any{
			"title":       f.Title,
			"image_url":   f.ImageURL,
			"ingredients": f.Ingredients,
			"steps":       f.Steps,
			"cook_time":   f.CookTime,
			"difficulty":  f.Difficulty,
			"updated_at":  time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteRecipe removes the recipe identified by id and owned by ownerID.
// Dependent ratings are deleted by the database cascade. Returns
// ErrNotFound when the scoped row does not exist.
func DeleteRecipe(ctx context.Context, db *gorm.DB, id, ownerID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, ownerID).
		Delete(&domain.Recipe{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
