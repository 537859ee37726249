package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/middleware"
	"github.com/vinealis/vinea-backend/internal/service"
)

// maxImageSize caps uploads at 20MB
const maxImageSize = 20 << 20

// ImageHandler media upload endpoints
type ImageHandler struct {
	service *service.ImageService
}

// NewImageHandler creates a new ImageHandler
func NewImageHandler(service *service.ImageService) *ImageHandler {
	return &ImageHandler{service: service}
}

// Upload handles POST /api/v1/images
// @Summary Upload an image
// @Tags images
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Success 201 {object} common.APIResponse{data=domain.Image}
// @Security BearerAuth
// @Router /images [post]
func (h *ImageHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Missing file", err)
		return
	}
	if fileHeader.Size > maxImageSize {
		common.ErrorResponse(c, http.StatusBadRequest, "File too large", nil)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	switch contentType {
	case "image/jpeg", "image/png", "image/gif", "image/webp", "image/svg+xml":
	default:
		common.ErrorResponse(c, http.StatusBadRequest, "Unsupported content type", nil)
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Cannot read file", err)
		return
	}
	defer file.Close()

	image, err := h.service.Upload(c.Request.Context(), fileHeader.Filename, contentType, fileHeader.Size, file, middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Upload failed", err)
		return
	}
	common.CreatedResponse(c, image)
}

// ListImages handles GET /api/v1/images
// @Summary List images
// @Tags images
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} common.APIResponse{data=[]domain.Image}
// @Security BearerAuth
// @Router /images [get]
func (h *ImageHandler) ListImages(c *gin.Context) {
	images, meta, err := h.service.ListImages(c.Request.Context(), queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		common.FailResponse(c, "Failed to list images", err)
		return
	}
	common.SuccessResponse(c, images, meta)
}

// DeleteImage handles DELETE /api/v1/images/:id
// @Summary Delete an image
// @Tags images
// @Param id path int true "Image ID"
// @Success 200 {object} common.APIResponse
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /images/{id} [delete]
func (h *ImageHandler) DeleteImage(c *gin.Context) {
	if err := h.service.DeleteImage(c.Request.Context(), paramUint64(c, "id")); err != nil {
		common.FailResponse(c, "Failed to delete image", err)
		return
	}
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
