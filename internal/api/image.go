package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheOneTrueGod/lomithBackend/internal/service"
)

// ImageHandler serves recipe image uploads. The service is nil when
// object storage is not configured.
type ImageHandler struct {
	images *service.ImageService
}

// NewImageHandler creates an ImageHandler.
func NewImageHandler(images *service.ImageService) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload handles POST /recipes/image (multipart field "image") and
// returns the public URL for use as a recipe's imageUrl.
func (h *ImageHandler) Upload(c *gin.Context) {
	if h.images == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage is not configured"})
		return
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return
	}
	defer file.Close()

	url, err := h.images.UploadRecipeImage(c.Request.Context(), fileHeader.Filename, file)
	if err != nil {
		log.Printf("uploading recipe image: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to upload image"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": url})
}
