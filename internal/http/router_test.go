package httpapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	sqlite "github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/iksninja/503004-wongnok-recipes/internal/config"
	"github.com/iksninja/503004-wongnok-recipes/internal/repo"
	"github.com/iksninja/503004-wongnok-recipes/internal/uploads"
)

// --- test DB helper (pure-Go sqlite, no CGO) ---
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:router_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
		t.Fatalf("enable foreign keys: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func newTestStore(t *testing.T) *uploads.Store {
	t.Helper()
	store, err := uploads.New(t.TempDir())
	if err != nil {
		t.Fatalf("uploads.New: %v", err)
	}
	return store
}

func testConfig(origins []string) config.Config {
	return config.Config{
		APIBasePath:    "/api",
		UploadMaxBytes: 5 << 20,
		SessionCookie:  "wongnok_session",
		SessionTTL:     time.Hour,
		RateRPS:        1000,
		RateBurst:      100,
		CORS:           config.CORSConfig{AllowedOrigins: origins},
		Security:       config.SecurityConfig{EnableHSTS: false},
		OTEL:           config.OTELConfig{ServiceName: "test-svc"},
	}
}

func TestRegisterRoutes_CORSAllowAll_Health_Metrics_Fallbacks(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), newTestStore(t), testConfig(nil))

	// /health works
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	// CORS (AllowAllOrigins) → header "*"
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("AllowAllOrigins expected '*', got %q", got)
	}

	// /metrics is wired
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/metrics", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || w.Body.Len() == 0 {
		t.Fatalf("GET /metrics bad: code=%d len=%d", w.Code, w.Body.Len())
	}

	// NoRoute → 404
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/nope", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET /nope expected 404, got %d", w.Code)
	}

	// NoMethod → 405 (POST /health)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/health", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusMethodNotAllowed {
		t.Fatalf("POST /health expected 405, got %d", w.Code)
	}
}

func TestRegisterRoutes_CORSWithOrigins_HeaderEchoAndCredentials(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), newTestStore(t), testConfig([]string{"http://example.com"}))

	// Any request runs through CORS middleware; header should reflect origin.
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("Origin", "http://example.com")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /health = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://example.com" {
		t.Fatalf("expected ACAO echo, got %q", got)
	}
	// Session cookies require credentialed CORS with an explicit allowlist.
	if got := w.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
		t.Fatalf("expected Allow-Credentials=true, got %q", got)
	}
}

func Test_limitBody_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// tiny cap to trigger MaxBytesReader
	r.Use(limitBody(10))
	r.POST("/echo", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.String(http.StatusRequestEntityTooLarge, "too big")
			return
		}
		c.String(http.StatusOK, "ok")
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/echo", bytes.NewBufferString("0123456789AB")) // 12 bytes
	r.ServeHTTP(w, req)
	if w.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("expected 413 from limitBody, got %d", w.Code)
	}
}

func Test_groupWithPrefix(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	// "/" and "" should mount at root
	root1 := groupWithPrefix(r, "/")
	root1.GET("/one", func(c *gin.Context) { c.String(http.StatusOK, "one") })
	root2 := groupWithPrefix(r, "")
	root2.GET("/two", func(c *gin.Context) { c.String(http.StatusOK, "two") })

	// non-root prefix
	api := groupWithPrefix(r, "/api")
	api.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })

	for path, want := range map[string]string{"/one": "one", "/two": "two", "/api/ping": "pong"} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, path, nil)
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK || rec.Body.String() != want {
			t.Fatalf("GET %s got %d %q", path, rec.Code, rec.Body.String())
		}
	}
}

// Smoke test that a request traverses the otel + logging + ratelimit +
// security headers pipeline.
func TestPipeline_Smoke(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), newTestStore(t), testConfig(nil))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("pipeline GET /health = %d", w.Code)
	}
	// RequestID header should be present (from RequestID middleware)
	if rid := w.Header().Get("X-Request-ID"); rid == "" {
		t.Fatalf("expected X-Request-ID header to be set")
	}
	// Baseline security headers applied to every response
	if w.Header().Get("X-Content-Type-Options") != "nosniff" {
		t.Fatalf("expected security headers on pipeline responses")
	}
}

// --- end-to-end flow over the real service stack ---

func doJSON(r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, ck := range w.Result().Cookies() {
		if ck.Name == "wongnok_session" && ck.Value != "" {
			return ck
		}
	}
	t.Fatalf("no session cookie in response")
	return nil
}

func TestAPI_EndToEnd_RegisterLoginCreateAndRate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterRoutes(r, newTestDB(t), newTestStore(t), testConfig(nil))

	// Register two accounts.
	if w := doJSON(r, http.MethodPost, "/api/register",
		`{"username":"ann","email":"ann@example.com","password":"pw-ann"}`, nil); w.Code != http.StatusOK {
		t.Fatalf("register ann = %d: %s", w.Code, w.Body.String())
	}
	if w := doJSON(r, http.MethodPost, "/api/register",
		`{"username":"bob","email":"bob@example.com","password":"pw-bob"}`, nil); w.Code != http.StatusOK {
		t.Fatalf("register bob = %d: %s", w.Code, w.Body.String())
	}

	// Duplicate email is rejected.
	if w := doJSON(r, http.MethodPost, "/api/register",
		`{"username":"ann2","email":"ann@example.com","password":"pw"}`, nil); w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate register = %d, want 400", w.Code)
	}

	// Log in both users.
	wAnn := doJSON(r, http.MethodPost, "/api/login", `{"email":"ann@example.com","password":"pw-ann"}`, nil)
	if wAnn.Code != http.StatusOK {
		t.Fatalf("login ann = %d: %s", wAnn.Code, wAnn.Body.String())
	}
	annCookie := sessionCookie(t, wAnn)

	wBob := doJSON(r, http.MethodPost, "/api/login", `{"email":"bob@example.com","password":"pw-bob"}`, nil)
	if wBob.Code != http.StatusOK {
		t.Fatalf("login bob = %d", wBob.Code)
	}
	bobCookie := sessionCookie(t, wBob)

	// Unauthenticated create is rejected.
	form := url.Values{
		"title":       {"Pad Krapow Moo"},
		"ingredients": {"pork, holy basil"},
		"steps":       {"Stir-fry."},
		"cook_time":   {"10 - 15 mins"},
		"difficulty":  {"Easy"},
	}
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("anonymous create = %d, want 401", w.Code)
	}

	// Ann creates a recipe.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.AddCookie(annCookie)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("create recipe = %d: %s", w.Code, w.Body.String())
	}
	var created struct {
		Message string `json:"message"`
		ID      string `json:"recipeId"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil || created.ID == "" {
		t.Fatalf("create response: err=%v body=%s", err, w.Body.String())
	}
	if created.Message == "" {
		t.Fatalf("create response missing message: %s", w.Body.String())
	}

	// Ann cannot rate her own recipe.
	if w := doJSON(r, http.MethodPost, "/api/recipes/"+created.ID+"/rate", `{"rating":5}`, annCookie); w.Code != http.StatusForbidden {
		t.Fatalf("self-rating = %d, want 403", w.Code)
	}

	// Bob rates it once; the second attempt is rejected.
	w2 := doJSON(r, http.MethodPost, "/api/recipes/"+created.ID+"/rate", `{"rating":4}`, bobCookie)
	if w2.Code != http.StatusOK {
		t.Fatalf("rate = %d: %s", w2.Code, w2.Body.String())
	}
	if w3 := doJSON(r, http.MethodPost, "/api/recipes/"+created.ID+"/rate", `{"rating":5}`, bobCookie); w3.Code != http.StatusBadRequest {
		t.Fatalf("repeat rating = %d, want 400", w3.Code)
	}

	// Public detail view includes the aggregate.
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/recipes/"+created.ID, nil))
	if w.Code != http.StatusOK {
		t.Fatalf("detail = %d: %s", w.Code, w.Body.String())
	}
	var detail struct {
		Rating struct {
			AvgRating   *float64 `json:"avg_rating"`
			CountRating int64    `json:"count_rating"`
		} `json:"rating"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &detail); err != nil {
		t.Fatalf("json: %v", err)
	}
	if detail.Rating.AvgRating == nil || *detail.Rating.AvgRating != 4 || detail.Rating.CountRating != 1 {
		t.Fatalf("unexpected aggregate: %+v", detail.Rating)
	}

	// Ann's recipe list contains her recipe; after logout the session is dead.
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/myrecipes", nil)
	req.AddCookie(annCookie)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), created.ID) {
		t.Fatalf("myrecipes = %d: %s", w.Code, w.Body.String())
	}

	if w := doJSON(r, http.MethodPost, "/api/logout", "", annCookie); w.Code != http.StatusOK {
		t.Fatalf("logout = %d", w.Code)
	}
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/myrecipes", nil)
	req.AddCookie(annCookie)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("myrecipes after logout = %d, want 401", w.Code)
	}
}
