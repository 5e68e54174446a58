// Package services – RecipeService
//
// This file implements the RecipeService, which manages the recipe
// lifecycle and the discovery views built on top of it. It validates and
// normalizes input fields, enforces ownership rules inside the mutation
// transaction, coordinates best-effort release of replaced image assets,
// and composes the top-rated ranking from repository aggregates.
//
// Service-level errors (e.g., ErrRecipeNotFound, ErrNotRecipeOwner) are
// returned for predictable cases so handlers can map them to HTTP results
// consistently.
package services

import (
	"context"
	"errors"
	"regexp"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/cases"
	"gorm.io/gorm"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
	"github.com/iksninja/503004-wongnok-recipes/internal/repo"
)

// AssetStore abstracts the uploaded-image store so the service can release
// replaced assets without depending on the filesystem layout.
type AssetStore interface {
	// Managed reports whether ref is an internally stored handle (as
	// opposed to an external URL).
	Managed(ref string) bool
	// Remove deletes the stored asset behind ref.
	Remove(ref string) error
}

// RecipeInput carries the caller-supplied recipe fields for create and
// update operations. ImageRef is optional: an external URL, an uploads
// handle, or empty.
type RecipeInput struct {
	Title       string
	ImageRef    string
	Ingredients string
	Steps       string
	CookTime    string
	Difficulty  string
}

// SearchFilter restricts discovery queries. Zero-valued fields impose no
// constraint; all provided fields combine with AND.
type SearchFilter struct {
	Keyword    string
	CookTime   string
	Difficulty string
}

// RatedRecipe pairs a recipe with its derived rating aggregate for the
// top-rated listing. Average is nil when the recipe has no ratings.
type RatedRecipe struct {
	Recipe  domain.Recipe
	Average *float64
	Count   int64
}

// DefaultTopRatedLimit bounds the leaderboard when the caller does not
// supply a limit.
const DefaultTopRatedLimit = 10

// RecipeService provides recipe lifecycle and listing operations. It
// enforces field validation and ownership constraints.
type RecipeService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Assets releases replaced managed images; may be nil (no release).
	Assets AssetStore
}

// NewRecipeService constructs a RecipeService bound to db and the given
// asset store.
func NewRecipeService(db *gorm.DB, assets AssetStore) *RecipeService {
	return &RecipeService{DB: db, Assets: assets}
}

// Create inserts a new recipe owned by ownerID. All fields except the image
// reference are required; blanks yield ErrMissingFields.
func (s *RecipeService) Create(ctx context.Context, ownerID string, in RecipeInput) (*domain.Recipe, error) {
	f, err := normalizeInput(in)
	if err != nil {
		return nil, err
	}
	return repo.CreateRecipe(ctx, s.DB, ownerID, f)
}

// Get fetches one recipe with its owner's username, or ErrRecipeNotFound.
func (s *RecipeService) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	r, err := repo.GetRecipe(ctx, s.DB, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return r, nil
}

// Update replaces the mutable fields of a recipe on behalf of requesterID.
//
// Semantics:
//   - The recipe must exist (ErrRecipeNotFound) and belong to requesterID
//     (ErrNotRecipeOwner).
//   - The existence/ownership reads and the update run in one transaction,
//     and the UPDATE itself is re-scoped by owner, closing the gap between
//     check and mutation.
//   - An empty ImageRef keeps the current image. When a new reference
//     replaces an internally managed one, the old asset is released after
//     the transaction commits (best effort, never failing the update).
func (s *RecipeService) Update(ctx context.Context, requesterID, id string, in RecipeInput) error {
	f, err := normalizeInput(in)
	if err != nil {
		return err
	}

	var staleImage string
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetRecipe(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if cur.UserID != requesterID {
			return ErrNotRecipeOwner
		}

		if f.ImageURL == "" {
			f.ImageURL = cur.ImageURL
		} else if f.ImageURL != cur.ImageURL && s.Assets != nil && s.Assets.Managed(cur.ImageURL) {
			staleImage = cur.ImageURL
		}

		return repo.UpdateRecipe(ctx, tx, id, requesterID, f)
	})
	if err != nil {
		return err
	}

	if staleImage != "" {
		if rmErr := s.Assets.Remove(staleImage); rmErr != nil {
			log.Warn().Err(rmErr).Str("image", staleImage).Msg("release replaced image")
		}
	}
	return nil
}

// Delete removes a recipe on behalf of requesterID, with the same
// existence/ownership semantics as Update. Dependent ratings are removed by
// the FK cascade inside the same transaction.
func (s *RecipeService) Delete(ctx context.Context, requesterID, id string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := repo.GetRecipe(ctx, tx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrRecipeNotFound
			}
			return err
		}
		if cur.UserID != requesterID {
			return ErrNotRecipeOwner
		}
		return repo.DeleteRecipe(ctx, tx, id, requesterID)
	})
}

// ListByOwner returns ownerID's recipes, newest first.
func (s *RecipeService) ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	return repo.ListByOwner(ctx, s.DB, ownerID)
}

// Search filters recipes for discovery views. The keyword is case-folded
// before matching so lookups are case-insensitive beyond ASCII.
func (s *RecipeService) Search(ctx context.Context, f SearchFilter) ([]domain.Recipe, error) {
	keyword := strings.TrimSpace(f.Keyword)
	if keyword != "" {
		keyword = cases.Fold().String(keyword)
	}
	return repo.SearchRecipes(ctx, s.DB, keyword, strings.TrimSpace(f.CookTime), strings.TrimSpace(f.Difficulty))
}

// TopRated returns up to limit recipes ordered descending by average
// rating, then by rating count. Recipes with zero ratings rank last but are
// not excluded; their Average stays nil so callers can render the
// no-ratings state distinctly from an actual zero.
func (s *RecipeService) TopRated(ctx context.Context, limit int) ([]RatedRecipe, error) {
	if limit <= 0 {
		limit = DefaultTopRatedLimit
	}

	recipes, err := repo.ListRecipes(ctx, s.DB)
	if err != nil {
		return nil, err
	}
	aggs, err := repo.RatingAggregates(ctx, s.DB)
	if err != nil {
		return nil, err
	}

	byRecipe := make(map[string]repo.RatingAggregate, len(aggs))
	for _, a := range aggs {
		byRecipe[a.RecipeID] = a
	}

	out := make([]RatedRecipe, 0, len(recipes))
	for _, r := range recipes {
		entry := RatedRecipe{Recipe: r}
		if a, ok := byRecipe[r.ID]; ok {
			avg := a.Average
			entry.Average = &avg
			entry.Count = a.Count
		}
		out = append(out, entry)
	}

	// Unrated entries keep their recency order at the tail (stable sort
	// over a recency-ordered base set).
	sort.SliceStable(out, func(i, j int) bool {
		ai, aj := rankAverage(out[i].Average), rankAverage(out[j].Average)
		if ai != aj {
			return ai > aj
		}
		return out[i].Count > out[j].Count
	})

	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// rankAverage coalesces a missing average to the lowest rank. Ratings are
// at least 1, so 0 sorts below every real average without conflating the
// display-level null.
func rankAverage(avg *float64) float64 {
	if avg == nil {
		return 0
	}
	return *avg
}

// normalizeInput trims and validates the required recipe fields, returning
// the repository column set.
func normalizeInput(in RecipeInput) (repo.RecipeFields, error) {
	f := repo.RecipeFields{
		Title:       normalizeTitle(in.Title),
		ImageURL:    strings.TrimSpace(in.ImageRef),
		Ingredients: strings.TrimSpace(in.Ingredients),
		Steps:       strings.TrimSpace(in.Steps),
		CookTime:    strings.TrimSpace(in.CookTime),
		Difficulty:  strings.TrimSpace(in.Difficulty),
	}
	if f.Title == "" || f.Ingredients == "" || f.Steps == "" || f.CookTime == "" || f.Difficulty == "" {
		return repo.RecipeFields{}, ErrMissingFields
	}
	return f, nil
}

// normalizeTitle trims whitespace and collapses multiple spaces to one.
func normalizeTitle(s string) string {
	return whitespaceRE.ReplaceAllString(strings.TrimSpace(s), " ")
}

// whitespaceRE collapses consecutive whitespace to a single space.
var whitespaceRE = regexp.MustCompile(`\s+`)
