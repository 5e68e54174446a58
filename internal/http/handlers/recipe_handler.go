// Recipe HTTP handlers.
//
// This file exposes REST endpoints for recipe resources:
//   - POST   /recipes            (create, multipart form with optional image)
//   - GET    /recipes            (search / list)
//   - GET    /recipes/top-rated  (rating leaderboard)
//   - GET    /recipes/{id}       (detail with rating summary)
//   - GET    /myrecipes          (owner's recipes, ETag support)
//   - PUT    /recipes/{id}       (update, owner only)
//   - DELETE /recipes/{id}       (delete, owner only)
//
// Handlers are transport-thin: they validate input, call application services,
// and translate results into HTTP responses (including conditional responses).
package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
	"github.com/iksninja/503004-wongnok-recipes/internal/services"
	"github.com/iksninja/503004-wongnok-recipes/internal/uploads"
	"github.com/iksninja/503004-wongnok-recipes/internal/utils"
)

//
// Service contracts (context-aware)
//

// AuthService defines account and session operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type AuthService interface {
	// Register creates a new account with a hashed password.
	Register(ctx context.Context, username, email, password string) (*domain.User, error)
	// Login verifies credentials and opens a new session, returning its token.
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	// Logout invalidates the session identified by token; unknown tokens are a no-op.
	Logout(ctx context.Context, token string) error
}

// RecipeService defines recipe lifecycle operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RecipeService interface {
	// Create stores a new recipe owned by ownerID.
	Create(ctx context.Context, ownerID string, in services.RecipeInput) (*domain.Recipe, error)
	// Get returns a single recipe with its owner's username resolved.
	Get(ctx context.Context, id string) (*domain.Recipe, error)
	// Update replaces the mutable fields of a recipe owned by requesterID.
	Update(ctx context.Context, requesterID, id string, in services.RecipeInput) error
	// Delete removes a recipe owned by requesterID along with its ratings.
	Delete(ctx context.Context, requesterID, id string) error
	// ListByOwner returns all recipes created by ownerID, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error)
	// Search returns recipes matching the given filter.
	Search(ctx context.Context, f services.SearchFilter) ([]domain.Recipe, error)
	// TopRated returns up to limit recipes ordered by rating.
	TopRated(ctx context.Context, limit int) ([]services.RatedRecipe, error)
}

// RecipeStatsFn reports the recipe count and the latest update time for an
// owner. It backs the weak ETag on the my-recipes listing; a nil fn disables
// conditional responses.
type RecipeStatsFn func(ctx context.Context, ownerID string) (int64, *time.Time, error)

// RatingService defines rating operations consumed by HTTP handlers.
//
// Implementations should be safe for concurrent use and must honor the
// provided context for cancellation and timeouts.
type RatingService interface {
	// Submit records a 1..5 rating of recipeID by raterID.
	Submit(ctx context.Context, raterID, recipeID string, value int) (*domain.Rating, error)
	// Aggregate returns the average (nil when unrated) and count for recipeID.
	Aggregate(ctx context.Context, recipeID string) (*float64, int64, error)
}

//
// Handler wiring
//

// CookieOptions describes how the session cookie is issued and cleared.
type CookieOptions struct {
	// Name is the cookie name carrying the session token.
	Name string
	// MaxAge is the cookie lifetime; it should match the server-side session TTL.
	MaxAge time.Duration
	// Secure marks the cookie as HTTPS-only.
	Secure bool
}

// Handlers groups HTTP endpoints for accounts, recipes, and ratings.
// It depends on abstract service interfaces to keep transport concerns
// separate from business logic.
type Handlers struct {
	authSvc     AuthService
	recipeSvc   RecipeService
	ratingSvc   RatingService
	recipeStats RecipeStatsFn
	assets      *uploads.Store
	cookie      CookieOptions
}

// New constructs and returns a Handlers instance bound to the given services.
// recipeStats may be nil, in which case the my-recipes listing skips ETag
// handling.
func New(authSvc AuthService, recipeSvc RecipeService, ratingSvc RatingService, recipeStats RecipeStatsFn, assets *uploads.Store, cookie CookieOptions) *Handlers {
	return &Handlers{
		authSvc:     authSvc,
		recipeSvc:   recipeSvc,
		ratingSvc:   ratingSvc,
		recipeStats: recipeStats,
		assets:      assets,
		cookie:      cookie,
	}
}

// userID extracts the authenticated user id from Gin context (set by the
// session middleware). It returns "" when the request is unauthenticated;
// protected routes never reach a handler in that state.
func userID(c *gin.Context) string {
	if v, ok := c.Get("userID"); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

//
// DTOs
//

// RecipeForm is the payload for creating or updating a recipe. It binds from
// multipart/form-data (the image travels in a separate "imageFile" part) and
// from JSON for clients that link images by URL.
type RecipeForm struct {
	// Title is the recipe name.
	Title string `form:"title" json:"title" example:"Pad Krapow Moo"`
	// ImageURL optionally links an external image; ignored when a file is uploaded.
	ImageURL string `form:"imageUrl" json:"imageUrl" example:"https://img.example.com/krapow.jpg"`
	// Ingredients is the free-text ingredient list.
	Ingredients string `form:"ingredients" json:"ingredients" example:"pork, holy basil, garlic, chili"`
	// Steps is the free-text preparation instructions.
	Steps string `form:"steps" json:"steps" example:"Stir-fry garlic and chili, add pork..."`
	// CookTime is the label shown to users, e.g. "10 - 15 mins".
	CookTime string `form:"cook_time" json:"cook_time" example:"10 - 15 mins"`
	// Difficulty is the label shown to users, e.g. "Easy".
	Difficulty string `form:"difficulty" json:"difficulty" example:"Easy"`
}

// RatingSummary carries the aggregate rating of a recipe. AvgRating is null
// when the recipe has no ratings yet.
type RatingSummary struct {
	AvgRating   *float64 `json:"avg_rating" example:"4.5"`
	CountRating int64    `json:"count_rating" example:"12"`
}

// RecipeDetailResponse wraps a recipe together with its rating summary.
type RecipeDetailResponse struct {
	Recipe domain.Recipe `json:"recipe"`
	Rating RatingSummary `json:"rating"`
}

// TopRatedEntry is a recipe flattened together with its rating aggregate,
// as returned by the top-rated listing.
type TopRatedEntry struct {
	domain.Recipe
	AvgRating   *float64 `json:"avg_rating"`
	CountRating int64    `json:"count_rating"`
}

// MessageResponse is a minimal success envelope for mutations that do not
// return a resource body.
type MessageResponse struct {
	Message string `json:"message" example:"Recipe deleted successfully"`
}

// CreateRecipeResponse confirms a recipe creation and carries the new id so
// clients can navigate to it.
type CreateRecipeResponse struct {
	Message  string `json:"message" example:"Recipe created successfully"`
	RecipeID string `json:"recipeId" example:"141add05-4415-4938-b5a1-17e0d3171aff"`
}

//
// Helpers
//

// bindRecipeForm binds a recipe payload from multipart/form-data or JSON and
// resolves the image reference: an uploaded "imageFile" part wins over the
// imageUrl field. It writes the error response itself and reports success.
func (h *Handlers) bindRecipeForm(c *gin.Context) (services.RecipeInput, bool) {
	var req RecipeForm
	if err := c.ShouldBind(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return services.RecipeInput{}, false
	}

	imageRef := strings.TrimSpace(req.ImageURL)
	if fh, err := c.FormFile("imageFile"); err == nil && fh != nil {
		ref, err := h.assets.Save(fh)
		if err != nil {
			if errors.Is(err, uploads.ErrNotImage) {
				fail(c, http.StatusBadRequest, ErrCodeBadRequest, "Only image files are allowed")
				return services.RecipeInput{}, false
			}
			fail(c, http.StatusInternalServerError, ErrCodeUploadFailed, "could not store uploaded image")
			return services.RecipeInput{}, false
		}
		imageRef = ref
	}

	return services.RecipeInput{
		Title:       req.Title,
		ImageRef:    imageRef,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		CookTime:    req.CookTime,
		Difficulty:  req.Difficulty,
	}, true
}

//
// Handlers
//

// CreateRecipe godoc
// @ID          createRecipe
// @Summary     Create a new recipe
// @Description Creates a recipe owned by the current user. Accepts multipart/form-data with an optional "imageFile" part, or JSON with an imageUrl.
// @Tags        Recipes
// @Accept      mpfd
// @Accept      json
// @Produce     json
//
// @Param       title        formData  string  true   "Recipe title"
// @Param       imageUrl     formData  string  false  "External image URL"
// @Param       ingredients  formData  string  true   "Ingredient list"
// @Param       steps        formData  string  true   "Preparation steps"
// @Param       cook_time    formData  string  true   "Cooking time label"
// @Param       difficulty   formData  string  true   "Difficulty label"
// @Param       imageFile    formData  file    false  "Recipe image (image/* only)"
//
// @Success     200  {object}  handlers.CreateRecipeResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Security    SessionCookie
// @Router      /recipes [post]
func (h *Handlers) CreateRecipe(c *gin.Context) {
	in, bound := h.bindRecipeForm(c)
	if !bound {
		return
	}

	rec, err := h.recipeSvc.Create(c.Request.Context(), userID(c), in)
	if err != nil {
		if errors.Is(err, services.ErrMissingFields) {
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "All fields are required")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeCreateFailed, "could not create recipe")
		return
	}
	ok(c, http.StatusOK, CreateRecipeResponse{
		Message:  "Recipe created successfully",
		RecipeID: rec.ID,
	})
}

// SearchRecipes godoc
// @ID          searchRecipes
// @Summary     Search recipes
// @Description Returns all recipes, optionally filtered by keyword (title or ingredients, case-insensitive), cooking time and difficulty. Filters combine with AND.
// @Tags        Recipes
// @Produce     json
//
// @Param       keyword     query  string  false  "Substring of title or ingredients"
// @Param       cookTime    query  string  false  "Exact cooking time label"
// @Param       difficulty  query  string  false  "Exact difficulty label"
//
// @Success     200  {array}   domain.Recipe
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes [get]
func (h *Handlers) SearchRecipes(c *gin.Context) {
	filter := services.SearchFilter{
		Keyword:    c.Query("keyword"),
		CookTime:   c.Query("cookTime"),
		Difficulty: c.Query("difficulty"),
	}

	items, err := h.recipeSvc.Search(c.Request.Context(), filter)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list recipes")
		return
	}
	ok(c, http.StatusOK, items)
}

// TopRatedRecipes godoc
// @ID          topRatedRecipes
// @Summary     List top-rated recipes
// @Description Returns up to 10 recipes ordered by average rating (highest first), ties broken by rating count. Unrated recipes rank last.
// @Tags        Recipes
// @Produce     json
//
// @Param       limit  query  int  false  "Maximum number of entries"  minimum(1) maximum(50) default(10)
//
// @Success     200  {array}   handlers.TopRatedEntry
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/top-rated [get]
func (h *Handlers) TopRatedRecipes(c *gin.Context) {
	const maxLimit = 50
	limit := utils.AtoiDefault(c.Query("limit"), services.DefaultTopRatedLimit)
	if limit < 1 {
		limit = services.DefaultTopRatedLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rated, err := h.recipeSvc.TopRated(c.Request.Context(), limit)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list top-rated recipes")
		return
	}

	out := make([]TopRatedEntry, 0, len(rated))
	for _, r := range rated {
		out = append(out, TopRatedEntry{
			Recipe:      r.Recipe,
			AvgRating:   r.Average,
			CountRating: r.Count,
		})
	}
	ok(c, http.StatusOK, out)
}

// GetRecipe godoc
// @ID          getRecipe
// @Summary     Get a recipe
// @Description Returns a single recipe together with its rating summary. The average is null when the recipe has no ratings.
// @Tags        Recipes
// @Produce     json
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid) example(141add05-4415-4938-b5a1-17e0d3171aff)
//
// @Success     200  {object}  handlers.RecipeDetailResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /recipes/{id} [get]
func (h *Handlers) GetRecipe(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	ctx := c.Request.Context()
	rec, err := h.recipeSvc.Get(ctx, id)
	if err != nil {
		if errors.Is(err, services.ErrRecipeNotFound) {
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Recipe not found")
			return
		}
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load recipe")
		return
	}

	avg, count, err := h.ratingSvc.Aggregate(ctx, id)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load rating summary")
		return
	}

	ok(c, http.StatusOK, RecipeDetailResponse{
		Recipe: *rec,
		Rating: RatingSummary{AvgRating: avg, CountRating: count},
	})
}

// MyRecipes godoc
// @ID          myRecipes
// @Summary     List the current user's recipes
// @Description Returns all recipes created by the current user, newest first. Supports weak ETag via If-None-Match and may return 304.
// @Tags        Recipes
// @Produce     json
//
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"  example(W/\"abc123\")
//
// @Success     200  {array}   domain.Recipe
// @Header      200  {string}  ETag  "Weak ETag for current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Security    SessionCookie
// @Router      /myrecipes [get]
func (h *Handlers) MyRecipes(c *gin.Context) {
	ctx := c.Request.Context()
	uid := userID(c)

	// ETag pre-check (best effort).
	if h.recipeStats != nil {
		count, maxTS, err := h.recipeStats(ctx, uid)
		if err == nil {
			var ts int64
			if maxTS != nil {
				ts = maxTS.Unix()
			}
			etag := fmt.Sprintf(`W/"myrecipes:%s:%d:%d"`, uid, count, ts)
			c.Header("ETag", etag)
			if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
				c.Status(http.StatusNotModified)
				return
			}
		}
	}

	items, err := h.recipeSvc.ListByOwner(ctx, uid)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeListFailed, "could not list recipes")
		return
	}
	ok(c, http.StatusOK, items)
}

// UpdateRecipe godoc
// @ID          updateRecipe
// @Summary     Update a recipe
// @Description Replaces the fields of a recipe owned by the current user. A newly uploaded image replaces the previous one; leaving both image fields empty keeps the current image.
// @Tags        Recipes
// @Accept      mpfd
// @Accept      json
// @Produce     json
//
// @Param       id           path      string  true   "Recipe ID (UUID)"  format(uuid)
// @Param       title        formData  string  true   "Recipe title"
// @Param       imageUrl     formData  string  false  "External image URL"
// @Param       ingredients  formData  string  true   "Ingredient list"
// @Param       steps        formData  string  true   "Preparation steps"
// @Param       cook_time    formData  string  true   "Cooking time label"
// @Param       difficulty   formData  string  true   "Difficulty label"
// @Param       imageFile    formData  file    false  "Replacement image (image/* only)"
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Security    SessionCookie
// @Router      /recipes/{id} [put]
func (h *Handlers) UpdateRecipe(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	in, bound := h.bindRecipeForm(c)
	if !bound {
		return
	}

	if err := h.recipeSvc.Update(c.Request.Context(), userID(c), id, in); err != nil {
		switch {
		case errors.Is(err, services.ErrMissingFields):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "All fields are required")
		case errors.Is(err, services.ErrRecipeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Recipe not found")
		case errors.Is(err, services.ErrNotRecipeOwner):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "You can only edit your own recipes")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not update recipe")
		}
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Recipe updated successfully"})
}

// DeleteRecipe godoc
// @ID          deleteRecipe
// @Summary     Delete a recipe
// @Description Deletes a recipe owned by the current user along with all of its ratings.
// @Tags        Recipes
// @Produce     json
//
// @Param       id  path  string  true  "Recipe ID (UUID)"  format(uuid)
//
// @Success     200  {object}  handlers.MessageResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Not the owner"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Security    SessionCookie
// @Router      /recipes/{id} [delete]
func (h *Handlers) DeleteRecipe(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	if err := h.recipeSvc.Delete(c.Request.Context(), userID(c), id); err != nil {
		switch {
		case errors.Is(err, services.ErrRecipeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Recipe not found")
		case errors.Is(err, services.ErrNotRecipeOwner):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "You can only delete your own recipes")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not delete recipe")
		}
		return
	}
	ok(c, http.StatusOK, MessageResponse{Message: "Recipe deleted successfully"})
}
