package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iksninja/503004-wongnok-recipes/internal/domain"
	"github.com/iksninja/503004-wongnok-recipes/internal/services"
	"github.com/iksninja/503004-wongnok-recipes/internal/uploads"
)

// ---- stubs to satisfy handlers.New() dependencies ----
//
// Each stub exposes func fields so a test can script exactly the calls it
// cares about; unset fields behave as successful no-ops.

type stubAuthSvc struct {
	register func(ctx context.Context, username, email, password string) (*domain.User, error)
	login    func(ctx context.Context, email, password string) (*domain.User, string, error)
	logout   func(ctx context.Context, token string) error
}

func (s stubAuthSvc) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if s.register != nil {
		return s.register(ctx, username, email, password)
	}
	return &domain.User{}, nil
}

func (s stubAuthSvc) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	if s.login != nil {
		return s.login(ctx, email, password)
	}
	return &domain.User{}, "", nil
}

func (s stubAuthSvc) Logout(ctx context.Context, token string) error {
	if s.logout != nil {
		return s.logout(ctx, token)
	}
	return nil
}

type stubRecipeSvc struct {
	create      func(ctx context.Context, ownerID string, in services.RecipeInput) (*domain.Recipe, error)
	get         func(ctx context.Context, id string) (*domain.Recipe, error)
	update      func(ctx context.Context, requesterID, id string, in services.RecipeInput) error
	deleteFn    func(ctx context.Context, requesterID, id string) error
	listByOwner func(ctx context.Context, ownerID string) ([]domain.Recipe, error)
	search      func(ctx context.Context, f services.SearchFilter) ([]domain.Recipe, error)
	topRated    func(ctx context.Context, limit int) ([]services.RatedRecipe, error)
}

func (s stubRecipeSvc) Create(ctx context.Context, ownerID string, in services.RecipeInput) (*domain.Recipe, error) {
	if s.create != nil {
		return s.create(ctx, ownerID, in)
	}
	return &domain.Recipe{}, nil
}

func (s stubRecipeSvc) Get(ctx context.Context, id string) (*domain.Recipe, error) {
	if s.get != nil {
		return s.get(ctx, id)
	}
	return &domain.Recipe{}, nil
}

func (s stubRecipeSvc) Update(ctx context.Context, requesterID, id string, in services.RecipeInput) error {
	if s.update != nil {
		return s.update(ctx, requesterID, id, in)
	}
	return nil
}

func (s stubRecipeSvc) Delete(ctx context.Context, requesterID, id string) error {
	if s.deleteFn != nil {
		return s.deleteFn(ctx, requesterID, id)
	}
	return nil
}

func (s stubRecipeSvc) ListByOwner(ctx context.Context, ownerID string) ([]domain.Recipe, error) {
	if s.listByOwner != nil {
		return s.listByOwner(ctx, ownerID)
	}
	return nil, nil
}

func (s stubRecipeSvc) Search(ctx context.Context, f services.SearchFilter) ([]domain.Recipe, error) {
	if s.search != nil {
		return s.search(ctx, f)
	}
	return nil, nil
}

func (s stubRecipeSvc) TopRated(ctx context.Context, limit int) ([]services.RatedRecipe, error) {
	if s.topRated != nil {
		return s.topRated(ctx, limit)
	}
	return nil, nil
}

type stubRatingSvc struct {
	submit    func(ctx context.Context, raterID, recipeID string, value int) (*domain.Rating, error)
	aggregate func(ctx context.Context, recipeID string) (*float64, int64, error)
}

func (s stubRatingSvc) Submit(ctx context.Context, raterID, recipeID string, value int) (*domain.Rating, error) {
	if s.submit != nil {
		return s.submit(ctx, raterID, recipeID, value)
	}
	return &domain.Rating{}, nil
}

func (s stubRatingSvc) Aggregate(ctx context.Context, recipeID string) (*float64, int64, error) {
	if s.aggregate != nil {
		return s.aggregate(ctx, recipeID)
	}
	return nil, 0, nil
}

// newTestHandlers wires stub services into a Handlers with a throwaway
// upload directory and test-friendly cookie options.
func newTestHandlers(t *testing.T, auth AuthService, rec RecipeService, rate RatingService) *Handlers {
	t.Helper()
	return newTestHandlersWithStats(t, auth, rec, rate, nil)
}

// newTestHandlersWithStats is newTestHandlers with a stats lookup wired in,
// enabling the conditional my-recipes path.
func newTestHandlersWithStats(t *testing.T, auth AuthService, rec RecipeService, rate RatingService, stats RecipeStatsFn) *Handlers {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store, err := uploads.New(t.TempDir())
	if err != nil {
		t.Fatalf("uploads.New: %v", err)
	}
	return New(auth, rec, rate, stats, store, CookieOptions{Name: "wongnok_session", MaxAge: time.Hour})
}

// authedRouter registers handler fn under method+path and injects userID into
// the context the way the session middleware would.
func authedRouter(method, path, uid string, fn gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Handle(method, path, func(c *gin.Context) {
		if uid != "" {
			c.Set("userID", uid)
		}
		fn(c)
	})
	return r
}
