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

// OverrideHandler handles block override requests
type OverrideHandler struct {
	service     *service.OverrideService
	redisClient *redis.Client
	cacheCfg    middleware.CacheConfig
}

// NewOverrideHandler creates a new OverrideHandler
func NewOverrideHandler(service *service.OverrideService, redisClient *redis.Client, cacheCfg middleware.CacheConfig) *OverrideHandler {
	return &OverrideHandler{service: service, redisClient: redisClient, cacheCfg: cacheCfg}
}

// GetPublishedBlocks handles GET /api/v1/pages/:route/blocks
// @Summary Get resolved published blocks
// @Description Returns the effective published HTML per block key; draft-only blocks are absent
// @Tags overrides
// @Produce json
// @Param route path string true "Page route"
// @Success 200 {object} common.APIResponse{data=map[string]string}
// @Failure 404 {object} common.APIResponse
// @Router /pages/{route}/blocks [get]
func (h *OverrideHandler) GetPublishedBlocks(c *gin.Context) {
	blocks, err := h.service.ResolvePublishedBlocks(c.Request.Context(), c.Param("route"))
	if err != nil {
		common.FailResponse(c, "Failed to resolve blocks", err)
		return
	}
	common.SuccessResponse(c, blocks, nil)
}

// SaveDraft handles POST /api/v1/pages/:route/blocks
// @Summary Save a block draft
// @Description Creates the draft override for a (page, block) or updates it in place
// @Tags overrides
// @Accept json
// @Produce json
// @Param route path string true "Page route"
// @Param request body domain.SaveBlockRequest true "Block content"
// @Success 200 {object} common.APIResponse{data=domain.ContentOverride}
// @Security BearerAuth
// @Router /pages/{route}/blocks [post]
func (h *OverrideHandler) SaveDraft(c *gin.Context) {
	var req domain.SaveBlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.service.SaveDraft(c.Request.Context(), c.Param("route"), &req, middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Failed to save draft", err)
		return
	}
	common.SuccessResponse(c, draft, nil)
}

// GetHistory handles GET /api/v1/pages/:route/blocks/:key/history
// @Summary Get block override history
// @Tags overrides
// @Produce json
// @Param route path string true "Page route"
// @Param key path string true "Block key"
// @Success 200 {object} common.APIResponse{data=[]domain.ContentOverride}
// @Security BearerAuth
// @Router /pages/{route}/blocks/{key}/history [get]
func (h *OverrideHandler) GetHistory(c *gin.Context) {
	history, err := h.service.GetHistory(c.Request.Context(), c.Param("route"), c.Param("key"))
	if err != nil {
		common.FailResponse(c, "Failed to get history", err)
		return
	}
	common.SuccessResponse(c, history, nil)
}

// PublishDraft handles POST /api/v1/overrides/:id/publish
// @Summary Publish an override
// @Description Flips the override row to published in place; earlier published rows stay as history
// @Tags overrides
// @Produce json
// @Param id path int true "Override ID"
// @Success 200 {object} common.APIResponse{data=domain.ContentOverride}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /overrides/{id}/publish [post]
func (h *OverrideHandler) PublishDraft(c *gin.Context) {
	published, err := h.service.PublishDraft(c.Request.Context(), paramUint64(c, "id"), middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Failed to publish override", err)
		return
	}
	middleware.InvalidateCache(c.Request.Context(), h.redisClient, h.cacheCfg)
	common.SuccessResponse(c, published, nil)
}

// Revert handles POST /api/v1/overrides/:id/revert
// @Summary Revert to a historical override
// @Description Copies the source row into a new draft; the source row is never mutated
// @Tags overrides
// @Produce json
// @Param id path int true "Override ID"
// @Success 200 {object} common.APIResponse{data=domain.ContentOverride}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /overrides/{id}/revert [post]
func (h *OverrideHandler) Revert(c *gin.Context) {
	draft, err := h.service.Revert(c.Request.Context(), paramUint64(c, "id"), middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Failed to revert", err)
		return
	}
	common.SuccessResponse(c, draft, nil)
}
