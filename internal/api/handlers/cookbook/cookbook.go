// Package cookbook serves stored recipes, fridge matching, and grocery
// list endpoints.
package cookbook

import (
	"errors"
	"net/http"
	"strings"

	"fridgechef/internal/api/handlers/pantry"
	"fridgechef/internal/core/extract"
	"fridgechef/internal/core/ingredient"
	"fridgechef/internal/core/match"
	"fridgechef/internal/pkg/common"
	"fridgechef/internal/storage/postgres"

	"github.com/gin-gonic/gin"
)

// Handler serves the cookbook endpoints.
type Handler struct {
	recipes      *postgres.RecipeRepo
	grocery      *postgres.GroceryListRepo
	kitchen      *postgres.KitchenRepo
	orchestrator *extract.Orchestrator
	matcher      *match.Matcher
	scaler       *ingredient.Scaler
	categorizer  *ingredient.Categorizer
}

// NewHandler creates a cookbook handler.
func NewHandler(
	recipes *postgres.RecipeRepo,
	grocery *postgres.GroceryListRepo,
	kitchen *postgres.KitchenRepo,
	orchestrator *extract.Orchestrator,
	matcher *match.Matcher,
	scaler *ingredient.Scaler,
	categorizer *ingredient.Categorizer,
) *Handler {
	return &Handler{
		recipes:      recipes,
		grocery:      grocery,
		kitchen:      kitchen,
		orchestrator: orchestrator,
		matcher:      matcher,
		scaler:       scaler,
		categorizer:  categorizer,
	}
}

// CreateRecipe saves a recipe. The body carries either a source URL, which
// runs the full extraction pipeline, or an explicit recipe payload.
func (h *Handler) CreateRecipe(c *gin.Context) {
	var req struct {
		URL         string   `json:"url"`
		Title       string   `json:"title"`
		ImageURL    string   `json:"imageUrl"`
		Ingredients []string `json:"ingredients"`
		Steps       []string `json:"steps"`
		Servings    int      `json:"servings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Error()})
		return
	}

	recipe := common.Recipe{
		UserID:      pantry.UserID(c),
		SourceURL:   req.URL,
		Title:       strings.TrimSpace(req.Title),
		ImageURL:    req.ImageURL,
		Ingredients: req.Ingredients,
		Steps:       req.Steps,
		Servings:    req.Servings,
	}

	if req.URL != "" {
		parsed, err := h.orchestrator.Resolve(c.Request.Context(), req.URL)
		if err != nil {
			var ce *common.CustomError
			if errors.As(err, &ce) {
				c.JSON(ce.Status, gin.H{"error": ce.Message})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		recipe.Title = parsed.Title
		recipe.ImageURL = parsed.ImageURL
		recipe.Ingredients = parsed.Ingredients
		recipe.Steps = parsed.Steps
		recipe.Servings = parsed.Servings
	}

	if recipe.Title == "" {
		recipe.Title = common.UntitledRecipe
	}
	if recipe.Servings <= 0 {
		recipe.Servings = common.DefaultServings
	}
	if recipe.Ingredients == nil {
		recipe.Ingredients = []string{}
	}
	if recipe.Steps == nil {
		recipe.Steps = []string{}
	}

	if err := h.recipes.Create(c.Request.Context(), &recipe); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, recipe)
}

// ListRecipes returns the caller's saved recipes.
func (h *Handler) ListRecipes(c *gin.Context) {
	recipes, err := h.recipes.ListByUser(c.Request.Context(), pantry.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"recipes": recipes})
}

// GetRecipe returns one recipe, optionally scaled to a target serving count
// via the servings query parameter.
func (h *Handler) GetRecipe(c *gin.Context) {
	recipe, err := h.recipes.GetByID(c.Request.Context(), pantry.UserID(c), c.Param("id"))
	if err != nil {
		respondStorageError(c, err)
		return
	}

	if raw := c.Query("servings"); raw != "" {
		target := extract.LeadingDigits(raw)
		if target <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid servings"})
			return
		}
		recipe.Ingredients = h.scaler.Scale(recipe.Ingredients, scaleFactor(recipe.Servings, target))
		recipe.Servings = target
	}

	c.JSON(http.StatusOK, recipe)
}

// ScaleRecipe returns one recipe's ingredient lines rescaled by an explicit
// factor, without touching the stored recipe.
func (h *Handler) ScaleRecipe(c *gin.Context) {
	var req struct {
		Factor float64 `json:"factor" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Factor <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "factor must be a positive number"})
		return
	}

	recipe, err := h.recipes.GetByID(c.Request.Context(), pantry.UserID(c), c.Param("id"))
	if err != nil {
		respondStorageError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"factor":      req.Factor,
		"ingredients": h.scaler.Scale(recipe.Ingredients, req.Factor),
	})
}

// DeleteRecipe removes one recipe.
func (h *Handler) DeleteRecipe(c *gin.Context) {
	if err := h.recipes.Delete(c.Request.Context(), pantry.UserID(c), c.Param("id")); err != nil {
		respondStorageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Matches ranks the caller's saved recipes against their kitchen inventory.
func (h *Handler) Matches(c *gin.Context) {
	userID := pantry.UserID(c)
	ctx := c.Request.Context()

	recipes, err := h.recipes.ListByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	inventory, err := h.kitchen.ListByUser(ctx, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	matches := match.Sort(h.matcher.Match(recipes, inventory))
	c.JSON(http.StatusOK, gin.H{"matches": matches})
}

// CreateGroceryList builds an aisle-grouped shopping list from a saved
// recipe, optionally scaling quantities to a target serving count first.
func (h *Handler) CreateGroceryList(c *gin.Context) {
	var req struct {
		RecipeID string `json:"recipeId" binding:"required"`
		Title    string `json:"title"`
		Servings int    `json:"servings"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": common.ErrInvalidRequest.Error()})
		return
	}

	userID := pantry.UserID(c)
	recipe, err := h.recipes.GetByID(c.Request.Context(), userID, req.RecipeID)
	if err != nil {
		respondStorageError(c, err)
		return
	}

	lines := recipe.Ingredients
	if req.Servings > 0 {
		lines = h.scaler.Scale(lines, scaleFactor(recipe.Servings, req.Servings))
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = recipe.Title
	}

	list := common.GroceryList{
		UserID:   userID,
		RecipeID: recipe.ID,
		Title:    title,
		Groups:   h.categorizer.GroupByAisle(lines),
	}
	if err := h.grocery.Create(c.Request.Context(), &list); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, list)
}

// ListGroceryLists returns the caller's saved lists.
func (h *Handler) ListGroceryLists(c *gin.Context) {
	lists, err := h.grocery.ListByUser(c.Request.Context(), pantry.UserID(c))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"lists": lists})
}

// GetGroceryList returns one saved list.
func (h *Handler) GetGroceryList(c *gin.Context) {
	list, err := h.grocery.GetByID(c.Request.Context(), pantry.UserID(c), c.Param("id"))
	if err != nil {
		respondStorageError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// DeleteGroceryList removes one saved list.
func (h *Handler) DeleteGroceryList(c *gin.Context) {
	if err := h.grocery.Delete(c.Request.Context(), pantry.UserID(c), c.Param("id")); err != nil {
		respondStorageError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// scaleFactor guards against stored recipes with a corrupt serving count.
func scaleFactor(from, to int) float64 {
	if from <= 0 {
		from = common.DefaultServings
	}
	return float64(to) / float64(from)
}

func respondStorageError(c *gin.Context, err error) {
	if errors.Is(err, common.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": common.ErrNotFound.Message})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
