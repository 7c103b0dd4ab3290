package api

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TheOneTrueGod/lomithBackend/internal/service"
)

// ExtractRequest asks for recipe extraction from a webpage URL.
// Provider optionally pins a specific integration.
type ExtractRequest struct {
	URL      string `json:"url" binding:"required"`
	Provider string `json:"provider"`
}

// ExtractHandler serves the AI recipe-extraction endpoint.
type ExtractHandler struct {
	extract *service.ExtractService
}

// NewExtractHandler creates an ExtractHandler.
func NewExtractHandler(extract *service.ExtractService) *ExtractHandler {
	return &ExtractHandler{extract: extract}
}

// Extract handles POST /ai/extract-recipe.
func (h *ExtractHandler) Extract(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req ExtractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.extract.ExtractFromURL(c.Request.Context(), userID, req.URL, req.Provider)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"recipe": recipe})
	case errors.Is(err, service.ErrInvalidURL):
		c.JSON(http.StatusBadRequest, gin.H{"error": "url must be a valid absolute URL"})
	case errors.Is(err, service.ErrNoIntegration):
		c.JSON(http.StatusBadRequest, gin.H{"error": "no active AI integration configured; add one first"})
	case errors.Is(err, service.ErrNoRecipeFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "No recipe found on this page"})
	default:
		log.Printf("extracting recipe: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": "Failed to extract recipe"})
	}
}
