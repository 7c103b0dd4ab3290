package api

import (
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/TheOneTrueGod/lomithBackend/internal/models"
	"github.com/TheOneTrueGod/lomithBackend/internal/service"
)

// IntegrationResponse is the wire shape of a stored AI integration.
// The API key never leaves the server; only a masked suffix does.
type IntegrationResponse struct {
	ID           string    `json:"id"`
	Provider     string    `json:"provider"`
	Model        string    `json:"model"`
	BaseURL      string    `json:"base_url"`
	Name         string    `json:"name"`
	IsActive     bool      `json:"is_active"`
	APIKeyMasked string    `json:"api_key_masked"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateIntegrationRequest is the payload for creating or replacing
// an integration. Provider may be omitted when it is detectable from
// the key format.
type CreateIntegrationRequest struct {
	APIKey   string `json:"api_key" binding:"required"`
	Provider string `json:"provider"`
	Model    string `json:"model"`
	BaseURL  string `json:"base_url"`
	Name     string `json:"name"`
	IsActive *bool  `json:"is_active"`
}

// UpdateIntegrationRequest carries a partial integration update.
type UpdateIntegrationRequest struct {
	APIKey   *string `json:"api_key"`
	Model    *string `json:"model"`
	BaseURL  *string `json:"base_url"`
	Name     *string `json:"name"`
	IsActive *bool   `json:"is_active"`
}

// AIIntegrationHandler serves the credential-management endpoints.
type AIIntegrationHandler struct {
	integrations *service.AIIntegrationService
}

// NewAIIntegrationHandler creates an AIIntegrationHandler.
func NewAIIntegrationHandler(integrations *service.AIIntegrationService) *AIIntegrationHandler {
	return &AIIntegrationHandler{integrations: integrations}
}

// RegisterRoutes mounts the integration endpoints on an authenticated
// route group.
func (h *AIIntegrationHandler) RegisterRoutes(router *gin.RouterGroup) {
	ai := router.Group("/ai/integrations")
	{
		ai.GET("", h.List)
		ai.POST("", h.Create)
		ai.GET("/:provider", h.GetByProvider)
		ai.PUT("/:provider", h.Update)
		ai.DELETE("/:provider", h.Delete)
	}
}

func (h *AIIntegrationHandler) serialize(integration *models.AIIntegration) IntegrationResponse {
	masked := "****"
	if key, err := h.integrations.DecryptAPIKey(integration.EncryptedAPIKey); err == nil {
		masked = service.MaskAPIKey(key)
	}
	return IntegrationResponse{
		ID:           integration.ID.String(),
		Provider:     integration.Provider,
		Model:        integration.Model,
		BaseURL:      integration.BaseURL,
		Name:         integration.Name,
		IsActive:     integration.IsActive,
		APIKeyMasked: masked,
		CreatedAt:    integration.CreatedAt,
		UpdatedAt:    integration.UpdatedAt,
	}
}

// List handles GET /ai/integrations.
func (h *AIIntegrationHandler) List(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	integrations, err := h.integrations.List(c.Request.Context(), userID)
	if err != nil {
		log.Printf("listing AI integrations: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list integrations"})
		return
	}

	out := make([]IntegrationResponse, len(integrations))
	for i := range integrations {
		out[i] = h.serialize(&integrations[i])
	}
	c.JSON(http.StatusOK, gin.H{"integrations": out})
}

// GetByProvider handles GET /ai/integrations/:provider.
func (h *AIIntegrationHandler) GetByProvider(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	integration, err := h.integrations.GetByProvider(c.Request.Context(), userID, c.Param("provider"))
	if err != nil {
		log.Printf("loading AI integration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load integration"})
		return
	}
	if integration == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}
	c.JSON(http.StatusOK, h.serialize(integration))
}

// Create handles POST /ai/integrations. Creating replaces an existing
// integration for the same provider.
func (h *AIIntegrationHandler) Create(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	var req CreateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	provider := req.Provider
	if provider == "" {
		provider = service.DetectProvider(req.APIKey)
	}
	if !service.IsKnownProvider(provider) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "provider is required and must be one of openai, anthropic, google"})
		return
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	integration, created, err := h.integrations.Upsert(c.Request.Context(), userID, service.UpsertParams{
		Provider: provider,
		APIKey:   req.APIKey,
		Model:    req.Model,
		BaseURL:  req.BaseURL,
		Name:     req.Name,
		IsActive: isActive,
	})
	if err != nil {
		log.Printf("saving AI integration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save integration"})
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, h.serialize(integration))
}

// Update handles PUT /ai/integrations/:provider.
func (h *AIIntegrationHandler) Update(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)
	provider := c.Param("provider")

	var req UpdateIntegrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	existing, err := h.integrations.GetByProvider(c.Request.Context(), userID, provider)
	if err != nil {
		log.Printf("loading AI integration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load integration"})
		return
	}
	if existing == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}

	apiKey, err := h.integrations.DecryptAPIKey(existing.EncryptedAPIKey)
	if err != nil {
		log.Printf("decrypting AI integration key: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load integration"})
		return
	}
	if req.APIKey != nil {
		apiKey = *req.APIKey
	}

	params := service.UpsertParams{
		Provider: provider,
		APIKey:   apiKey,
		Model:    existing.Model,
		BaseURL:  existing.BaseURL,
		Name:     existing.Name,
		IsActive: existing.IsActive,
	}
	if req.Model != nil {
		params.Model = *req.Model
	}
	if req.BaseURL != nil {
		params.BaseURL = *req.BaseURL
	}
	if req.Name != nil {
		params.Name = *req.Name
	}
	if req.IsActive != nil {
		params.IsActive = *req.IsActive
	}

	integration, _, err := h.integrations.Upsert(c.Request.Context(), userID, params)
	if err != nil {
		log.Printf("saving AI integration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save integration"})
		return
	}
	c.JSON(http.StatusOK, h.serialize(integration))
}

// Delete handles DELETE /ai/integrations/:provider.
func (h *AIIntegrationHandler) Delete(c *gin.Context) {
	userID := c.MustGet("user_id").(uuid.UUID)

	removed, err := h.integrations.Delete(c.Request.Context(), userID, c.Param("provider"))
	if err != nil {
		log.Printf("deleting AI integration: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete integration"})
		return
	}
	if !removed {
		c.JSON(http.StatusNotFound, gin.H{"error": "Integration not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Integration deleted successfully"})
}
