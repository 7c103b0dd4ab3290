package api

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TheOneTrueGod/lomithBackend/internal/service"
	"github.com/TheOneTrueGod/lomithBackend/internal/types"
)

// RecipeHandler translates HTTP requests into recipe service calls.
type RecipeHandler struct {
	recipes *service.RecipeService
}

// NewRecipeHandler creates a RecipeHandler.
func NewRecipeHandler(recipes *service.RecipeService) *RecipeHandler {
	return &RecipeHandler{recipes: recipes}
}

// RegisterRoutes mounts the recipe endpoints on an authenticated
// route group.
func (h *RecipeHandler) RegisterRoutes(router *gin.RouterGroup) {
	recipes := router.Group("/recipes")
	{
		recipes.GET("", h.ListRecipes)
		recipes.POST("", h.CreateRecipe)
		recipes.GET("/:id", h.GetRecipe)
		recipes.PUT("/:id", h.UpdateRecipe)
		recipes.DELETE("/:id", h.DeleteRecipe)
	}
}

// ListRecipes handles GET /recipes. Query parameters: page (default
// 1), page_size (default 10), search, user_id, detail_level (default
// detailed).
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	page, ok := intQuery(c, "page", 1)
	if !ok {
		return
	}
	pageSize, ok := intQuery(c, "page_size", 10)
	if !ok {
		return
	}

	result, err := h.recipes.List(c.Request.Context(), service.ListOptions{
		Page:        page,
		PageSize:    pageSize,
		Search:      c.Query("search"),
		UserID:      c.Query("user_id"),
		DetailLevel: c.DefaultQuery("detail_level", types.DetailDetailed),
	})
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetRecipe handles GET /recipes/:id.
func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	view, err := h.recipes.GetByID(
		c.Request.Context(),
		c.Param("id"),
		c.DefaultQuery("detail_level", types.DetailDetailed),
	)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// CreateRecipe handles POST /recipes. The owner defaults to the
// authenticated user when the payload does not name one.
func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	var recipe types.Recipe
	if err := c.ShouldBindJSON(&recipe); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if recipe.UserID == "" {
		if userID, exists := c.Get("user_id"); exists {
			recipe.UserID = userID.(uuid.UUID).String()
		}
	}

	view, err := h.recipes.Create(c.Request.Context(), recipe)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, view)
}

// UpdateRecipe handles PUT /recipes/:id with partial-update
// semantics.
func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	var update types.RecipeUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	view, err := h.recipes.Update(c.Request.Context(), c.Param("id"), update)
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if view == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// DeleteRecipe handles DELETE /recipes/:id.
func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	removed, err := h.recipes.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		handleServiceError(c, err)
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Recipe not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Recipe deleted successfully"})
}

// intQuery parses an integer query parameter. On a malformed value it
// writes a 400 response and returns ok=false.
func intQuery(c *gin.Context, name string, fallback int) (int, bool) {
	raw := c.Query(name)
	if raw == "" {
		return fallback, true
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid parameter: " + name + " must be an integer"})
		return 0, false
	}
	return value, true
}

// handleServiceError maps service errors onto status codes:
// validation failures are client errors, everything else is a
// storage-level fault.
func handleServiceError(c *gin.Context, err error) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	log.Printf("recipe handler error: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "An internal error occurred"})
}
