package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/middleware"
	"github.com/vinealis/vinea-backend/internal/service"
)

// ThemeHandler handles theme token requests
type ThemeHandler struct {
	service     *service.ThemeService
	redisClient *redis.Client
	cacheCfg    middleware.CacheConfig
}

// NewThemeHandler creates a new ThemeHandler
func NewThemeHandler(service *service.ThemeService, redisClient *redis.Client, cacheCfg middleware.CacheConfig) *ThemeHandler {
	return &ThemeHandler{service: service, redisClient: redisClient, cacheCfg: cacheCfg}
}

// GetTheme handles GET /api/v1/theme
// @Summary Get resolved theme
// @Description Returns the effective theme token map: defaults overlaid with overrides
// @Tags theme
// @Produce json
// @Success 200 {object} common.APIResponse{data=map[string]string}
// @Router /theme [get]
func (h *ThemeHandler) GetTheme(c *gin.Context) {
	theme, err := h.service.ResolveTheme(c.Request.Context())
	if err != nil {
		common.FailResponse(c, "Failed to resolve theme", err)
		return
	}
	common.SuccessResponse(c, theme, nil)
}

// ListDefaults handles GET /api/v1/theme/defaults
// @Summary List theme defaults
// @Tags theme
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.ThemeDefault}
// @Security BearerAuth
// @Router /theme/defaults [get]
func (h *ThemeHandler) ListDefaults(c *gin.Context) {
	defaults, err := h.service.ListDefaults(c.Request.Context())
	if err != nil {
		common.FailResponse(c, "Failed to list theme defaults", err)
		return
	}
	common.SuccessResponse(c, defaults, nil)
}

// ListOverrides handles GET /api/v1/theme/overrides
// @Summary List theme overrides
// @Tags theme
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.ThemeOverride}
// @Security BearerAuth
// @Router /theme/overrides [get]
func (h *ThemeHandler) ListOverrides(c *gin.Context) {
	overrides, err := h.service.ListOverrides(c.Request.Context())
	if err != nil {
		common.FailResponse(c, "Failed to list theme overrides", err)
		return
	}
	common.SuccessResponse(c, overrides, nil)
}

// SaveOverride handles PUT /api/v1/theme/overrides/:default_id
// @Summary Set a theme override
// @Description Upserts the override for a theme default
// @Tags theme
// @Accept json
// @Produce json
// @Param default_id path int true "Theme default ID"
// @Param request body domain.SaveThemeOverrideRequest true "Override value"
// @Success 200 {object} common.APIResponse{data=domain.ThemeOverride}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /theme/overrides/{default_id} [put]
func (h *ThemeHandler) SaveOverride(c *gin.Context) {
	var req domain.SaveThemeOverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	override, err := h.service.SaveOverride(c.Request.Context(), paramUint64(c, "default_id"), &req, middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Failed to save theme override", err)
		return
	}
	middleware.InvalidateCache(c.Request.Context(), h.redisClient, h.cacheCfg)
	common.SuccessResponse(c, override, nil)
}

// DeleteOverride handles DELETE /api/v1/theme/overrides/:default_id
// @Summary Reset a theme token to its default
// @Tags theme
// @Param default_id path int true "Theme default ID"
// @Success 200 {object} common.APIResponse
// @Security BearerAuth
// @Router /theme/overrides/{default_id} [delete]
func (h *ThemeHandler) DeleteOverride(c *gin.Context) {
	if err := h.service.DeleteOverride(c.Request.Context(), paramUint64(c, "default_id"), middleware.GetUserID(c)); err != nil {
		common.FailResponse(c, "Failed to delete theme override", err)
		return
	}
	middleware.InvalidateCache(c.Request.Context(), h.redisClient, h.cacheCfg)
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}
