package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"fridgechef/internal/core/ai/cache"
	"fridgechef/internal/infrastructure/config"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Debug:   true,
			Version: "test",
			Env:     "test",
		},
		Gemini: config.GeminiConfig{
			APIKey:  "test-key",
			Model:   "gemini-2.0-flash",
			Timeout: 5 * time.Second,
		},
		Cache: config.CacheConfig{Enabled: false},
		Fetch: config.FetchConfig{Timeout: 5 * time.Second},
		Image: config.ImageConfig{MaxSizeBytes: 1 << 20},
	}
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := testConfig()
	cacheService, err := cache.NewService(&cfg.Cache)
	require.NoError(t, err)

	router, err := SetupRouter(cfg, cacheService, nil)
	require.NoError(t, err)
	return router
}

func TestParseRejectsNonGET(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/parse", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusMethodNotAllowed, w.Code)
	assert.Equal(t, http.MethodGet, w.Header().Get("Allow"))
	assert.JSONEq(t, `{"error": "Method not allowed"}`, w.Body.String())
}

func TestParseMissingURLReturns400(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/parse", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthEndpoint(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestStorageRoutesAbsentWithoutDB(t *testing.T) {
	router := newRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/recipes", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
