package parse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"fridgechef/internal/core/ai/interpret"
	"fridgechef/internal/core/extract"
	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubFetcher struct {
	html string
	err  error
}

func (s *stubFetcher) FetchPage(ctx context.Context, pageURL string) (string, error) {
	return s.html, s.err
}

func (s *stubFetcher) FetchImageBase64(ctx context.Context, imageURL string) string {
	return ""
}

type stubAI struct{}

func (s *stubAI) AnalyzeVideo(ctx context.Context, videoURL string) (string, error) {
	return "", nil
}

func (s *stubAI) AnalyzeImage(ctx context.Context, base64Image, mimeType, contextText string) (string, error) {
	return "", nil
}

func newTestRouter(fetcher *stubFetcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	interpreter := interpret.NewInterpreter(ingredient.NewCategorizer(ingredient.DefaultAisleKeywords()))
	orchestrator := extract.NewOrchestrator(fetcher, &stubAI{}, interpreter)

	router := gin.New()
	router.GET("/api/parse", NewHandler(orchestrator).Parse)
	return router
}

const recipeHTML = `<html><head>
<title>Pancakes Recipe</title>
<script type="application/ld+json">{
  "@type": "Recipe",
  "name": "Pancakes",
  "recipeIngredient": ["2 cups flour", "1 cup milk", "2 eggs", "1 tbsp sugar", "1 tsp salt"],
  "recipeInstructions": ["Mix.", "Fry."],
  "recipeYield": "4 servings"
}</script>
</head><body></body></html>`

func TestParseReturnsRecipe(t *testing.T) {
	router := newTestRouter(&stubFetcher{html: recipeHTML})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/parse?url=https://example.com/pancakes", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var recipe common.ParsedRecipe
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &recipe))
	assert.Equal(t, "Pancakes", recipe.Title)
	assert.Len(t, recipe.Ingredients, 5)
	assert.Equal(t, []string{"Mix.", "Fry."}, recipe.Steps)
	assert.Equal(t, 4, recipe.Servings)
	assert.Contains(t, w.Body.String(), `"groceryByAisle":[]`)
}

func TestParseMissingURL(t *testing.T) {
	router := newTestRouter(&stubFetcher{html: recipeHTML})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/parse", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.JSONEq(t, `{"error": "Missing or invalid url"}`, w.Body.String())
}

func TestParseNonHTTPURL(t *testing.T) {
	router := newTestRouter(&stubFetcher{html: recipeHTML})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/parse?url=ftp://example.com", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestParseFetchFailure(t *testing.T) {
	router := newTestRouter(&stubFetcher{err: common.ErrPageFetchFailed})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/parse?url=https://example.com/gone", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "failed to fetch page")
}
