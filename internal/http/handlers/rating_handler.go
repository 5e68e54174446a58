// Rating HTTP handlers.
//
// This file exposes the rating endpoint:
//   - POST /recipes/{id}/rate  (submit a 1..5 rating)
//
// A user rates a given recipe at most once and never their own. Both rules
// are enforced in the service layer inside a single transaction; this layer
// only translates the outcomes into HTTP responses.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/iksninja/503004-wongnok-recipes/internal/services"
)

// RateRequest is the JSON payload for rating a recipe.
type RateRequest struct {
	// Rating is the score, 1 (worst) to 5 (best).
	Rating int `json:"rating" binding:"required,min=1,max=5" example:"5"`
}

// RateResponse wraps the stored rating together with the recipe's refreshed
// aggregate.
type RateResponse struct {
	Message string        `json:"message" example:"Rating submitted"`
	Rating  RatingSummary `json:"rating"`
}

// RateRecipe godoc
// @ID          rateRecipe
// @Summary     Rate a recipe
// @Description Submits a 1..5 rating for a recipe by the current user. Each user rates a recipe at most once, and owners cannot rate their own recipes.
// @Tags        Ratings
// @Accept      json
// @Produce     json
//
// @Param       id    path  string  true  "Recipe ID (UUID)"  format(uuid)
// @Param       body  body  handlers.RateRequest  true  "Rating payload"
//
// @Success     200  {object}  handlers.RateResponse
// @Failure     400  {object}  handlers.ErrorResponse  "Bad request, invalid rating, or already rated"
// @Failure     401  {object}  handlers.ErrorResponse  "Unauthorized"
// @Failure     403  {object}  handlers.ErrorResponse  "Own recipe"
// @Failure     404  {object}  handlers.ErrorResponse  "Recipe not found"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Security    SessionCookie
// @Router      /recipes/{id}/rate [post]
func (h *Handlers) RateRecipe(c *gin.Context) {
	recipeID := c.Param("id")
	if _, err := uuid.Parse(recipeID); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "recipe id must be a UUID")
		return
	}

	var req RateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be an integer between 1 and 5")
		return
	}

	ctx := c.Request.Context()
	if _, err := h.ratingSvc.Submit(ctx, userID(c), recipeID, req.Rating); err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidRating):
			fail(c, http.StatusBadRequest, ErrCodeBadRequest, "rating must be an integer between 1 and 5")
		case errors.Is(err, services.ErrRecipeNotFound):
			fail(c, http.StatusNotFound, ErrCodeNotFound, "Recipe not found")
		case errors.Is(err, services.ErrSelfRating):
			fail(c, http.StatusForbidden, ErrCodeForbidden, "You cannot rate your own recipe")
		case errors.Is(err, services.ErrAlreadyRated):
			fail(c, http.StatusBadRequest, ErrCodeConflict, "You already rated this recipe")
		default:
			fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not submit rating")
		}
		return
	}

	avg, count, err := h.ratingSvc.Aggregate(ctx, recipeID)
	if err != nil {
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "could not load rating summary")
		return
	}

	ok(c, http.StatusOK, RateResponse{
		Message: "Rating submitted",
		Rating:  RatingSummary{AvgRating: avg, CountRating: count},
	})
}
