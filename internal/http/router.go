// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns such
// as tracing, correlation IDs, logging/redaction, panic recovery, metrics,
// CORS, security headers, session authentication, and rate limiting.
//
// Design goals:
//   - Put observability first (OTel + Prometheus)
//   - Safe-by-default middleware ordering (RequestID → logging → recovery)
//   - Deterministic, minimal router setup; all dependencies injected
//   - Production-ready CORS and security header posture
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	_ "github.com/iksninja/503004-wongnok-recipes/docs"
	"github.com/iksninja/503004-wongnok-recipes/internal/config"
	"github.com/iksninja/503004-wongnok-recipes/internal/http/handlers"
	"github.com/iksninja/503004-wongnok-recipes/internal/http/middleware"
	"github.com/iksninja/503004-wongnok-recipes/internal/repo"
	"github.com/iksninja/503004-wongnok-recipes/internal/services"
	"github.com/iksninja/503004-wongnok-recipes/internal/uploads"
)

// RegisterRoutes attaches all middleware and HTTP endpoints to the given Gin
// engine. It configures observability (tracing, metrics), rate limiting, CORS
// and security headers, the /uploads static mount, health and metrics
// endpoints, and then mounts the public API under the configured base path.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. RedactingLogger: structured logs with PII scrubbing
//  4. Recovery: capture panics after logger
//  5. Body size limiter (sized for image uploads)
//  6. Metrics
//  7. Gzip compression
//  8. Rate limiter (per user/IP)
//  9. CORS and Security headers
//
// Session authentication is applied per route group, not globally, because
// registration, login, and recipe browsing are public.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, store *uploads.Store, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured logging with redaction (session cookies are masked)
	r.Use(middleware.RedactingLogger(middleware.RedactOptions{}))

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Global body size limit. Sized for multipart image uploads plus
	// form-field overhead; JSON endpoints stay far below it.
	r.Use(limitBody(cfg.UploadMaxBytes + (64 << 10)))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Response compression (images served from /uploads are already
	// compressed formats; gzip skips them by extension)
	r.Use(gzip.Gzip(gzip.DefaultCompression,
		gzip.WithExcludedExtensions([]string{".png", ".jpg", ".jpeg", ".gif", ".webp"})))

	// 8) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUserOrIP())
	r.Use(rl.Handler())

	// 9) CORS posture. Cookie-based sessions require credentials, which in
	// turn require an explicit origin allowlist; without one we fall back to
	// a credential-less wildcard suitable for same-origin deployments.
	if len(cfg.CORS.AllowedOrigins) == 0 {
		r.Use(cors.New(cors.Config{
			AllowAllOrigins:  true,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: false, // must remain false with AllowAllOrigins
			MaxAge:           12 * time.Hour,
		}))
	} else {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORS.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
			ExposeHeaders:    []string{"X-Request-ID", "Content-Length", "ETag"},
			AllowCredentials: true, // browsers must send the session cookie
			MaxAge:           12 * time.Hour,
		}))
	}

	// Security headers (HSTS only when enabled and request is HTTPS)
	r.Use(middleware.SecurityHeaders(middleware.SecurityOptions{
		EnableHSTS:   cfg.Security.EnableHSTS,
		HSTSMaxAge:   cfg.Security.HSTSMaxAge,
		NoStore:      false,
		EnablePolicy: true,
	}))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	// Uploaded recipe images
	r.Static(uploads.BasePath, store.Dir)

	// Swagger UI (opt-in; typically disabled in production)
	if cfg.SwaggerEnabled {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	// Dependency injection: services ← db/store
	authSvc := services.NewAuthService(db, cfg.SessionTTL)
	recipeSvc := services.NewRecipeService(db, store)
	ratingSvc := services.NewRatingService(db)
	recipeStats := func(ctx context.Context, ownerID string) (int64, *time.Time, error) {
		return repo.RecipesStats(ctx, db, ownerID)
	}
	h := handlers.New(authSvc, recipeSvc, ratingSvc, recipeStats, store, handlers.CookieOptions{
		Name:   cfg.SessionCookie,
		MaxAge: cfg.SessionTTL,
		Secure: cfg.CookieSecure,
	})

	requireSession := middleware.RequireSession(middleware.SessionOptions{
		CookieName: cfg.SessionCookie,
		Resolver:   authSvc.Resolve,
	})

	// Public API
	api := groupWithPrefix(r, cfg.APIBasePath)
	{
		// Accounts
		api.POST("/register", h.Register)
		api.POST("/login", h.Login)
		api.POST("/logout", h.Logout)

		// Recipe browsing (public)
		api.GET("/recipes", h.SearchRecipes)
		api.GET("/recipes/top-rated", h.TopRatedRecipes)
		api.GET("/recipes/:id", h.GetRecipe)

		// Authenticated operations
		auth := api.Group("", requireSession)
		{
			auth.POST("/recipes", h.CreateRecipe)
			auth.GET("/myrecipes", h.MyRecipes)
			auth.PUT("/recipes/:id", h.UpdateRecipe)
			auth.DELETE("/recipes/:id", h.DeleteRecipe)
			auth.POST("/recipes/:id/rate", h.RateRecipe)
		}
	}
}

// limitBody returns a Gin middleware that caps the request body size for all
// endpoints to maxBytes using http.MaxBytesReader. Requests exceeding the cap
// will cause downstream body reads to error.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
