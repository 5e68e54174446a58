package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
	"github.com/iksninja/503004-wongnok-recipes/internal/services"
)

func rateRequest(r *gin.Engine, id, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/recipes/"+id+"/rate", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestRateRecipe_InvalidID(t *testing.T) {
	h := newTestHandlers(t, stubAuthSvc{}, stubRecipeSvc{}, stubRatingSvc{})
	r := authedRouter(http.MethodPost, "/recipes/:id/rate", "u-1", h.RateRecipe)

	w := rateRequest(r, "not-a-uuid", `{"rating":5}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
}

func TestRateRecipe_BindingError(t *testing.T) {
	rate := stubRatingSvc{submit: func(context.Context, string, string, int) (*domain.Rating, error) {
		t.Fatal("service should not be called on binding error")
		return nil, nil
	}}
	h := newTestHandlers(t, stubAuthSvc{}, stubRecipeSvc{}, rate)
	r := authedRouter(http.MethodPost, "/recipes/:id/rate", "u-1", h.RateRecipe)

	for _, body := range []string{`{}`, `{"rating":0}`, `{"rating":6}`, `{"rating":"five"}`} {
		w := rateRequest(r, testRecipeID, body)
		if w.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", body, w.Code)
		}
	}
}

func TestRateRecipe_ErrorMapping(t *testing.T) {
	cases := []struct {
		svcErr error
		status int
		code   string
	}{
		{services.ErrInvalidRating, http.StatusBadRequest, ErrCodeBadRequest},
		{services.ErrRecipeNotFound, http.StatusNotFound, ErrCodeNotFound},
		{services.ErrSelfRating, http.StatusForbidden, ErrCodeForbidden},
		{services.ErrAlreadyRated, http.StatusBadRequest, ErrCodeConflict},
		{errors.New("db down"), http.StatusInternalServerError, ErrCodeInternal},
	}
	for _, tc := range cases {
		rate := stubRatingSvc{submit: func(context.Context, string, string, int) (*domain.Rating, error) {
			return nil, tc.svcErr
		}}
		h := newTestHandlers(t, stubAuthSvc{}, stubRecipeSvc{}, rate)
		r := authedRouter(http.MethodPost, "/recipes/:id/rate", "u-1", h.RateRecipe)

		w := rateRequest(r, testRecipeID, `{"rating":4}`)
		if w.Code != tc.status {
			t.Fatalf("%v: expected %d, got %d", tc.svcErr, tc.status, w.Code)
		}
		var er ErrorResponse
		if err := json.Unmarshal(w.Body.Bytes(), &er); err != nil {
			t.Fatalf("json: %v", err)
		}
		if er.Code != tc.code {
			t.Fatalf("%v: expected code %q, got %q", tc.svcErr, tc.code, er.Code)
		}
	}
}

func TestRateRecipe_Success(t *testing.T) {
	var gotRater, gotRecipe string
	var gotValue int
	avg := 4.5
	rate := stubRatingSvc{
		submit: func(_ context.Context, raterID, recipeID string, value int) (*domain.Rating, error) {
			gotRater, gotRecipe, gotValue = raterID, recipeID, value
			return &domain.Rating{RecipeID: recipeID, UserID: raterID, Value: value}, nil
		},
		aggregate: func(context.Context, string) (*float64, int64, error) {
			return &avg, 2, nil
		},
	}
	h := newTestHandlers(t, stubAuthSvc{}, stubRecipeSvc{}, rate)
	r := authedRouter(http.MethodPost, "/recipes/:id/rate", "u-9", h.RateRecipe)

	w := rateRequest(r, testRecipeID, `{"rating":5}`)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if gotRater != "u-9" || gotRecipe != testRecipeID || gotValue != 5 {
		t.Fatalf("call args: rater=%q recipe=%q value=%d", gotRater, gotRecipe, gotValue)
	}

	var got RateResponse
	if err := json.Unmarshal(w.Body.Bytes(), &got); err != nil {
		t.Fatalf("json: %v", err)
	}
	if got.Message != "Rating submitted" {
		t.Fatalf("unexpected message %q", got.Message)
	}
	if got.Rating.AvgRating == nil || *got.Rating.AvgRating != 4.5 || got.Rating.CountRating != 2 {
		t.Fatalf("unexpected summary: %+v", got.Rating)
	}
}

func TestRateRecipe_AggregateFailure(t *testing.T) {
	rate := stubRatingSvc{aggregate: func(context.Context, string) (*float64, int64, error) {
		return nil, 0, errors.New("db down")
	}}
	h := newTestHandlers(t, stubAuthSvc{}, stubRecipeSvc{}, rate)
	r := authedRouter(http.MethodPost, "/recipes/:id/rate", "u-1", h.RateRecipe)

	w := rateRequest(r, testRecipeID, `{"rating":3}`)
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}
