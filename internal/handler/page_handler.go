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

// PageHandler handles page and version requests
type PageHandler struct {
	service     *service.PageService
	redisClient *redis.Client
	cacheCfg    middleware.CacheConfig
}

// NewPageHandler creates a new PageHandler
func NewPageHandler(service *service.PageService, redisClient *redis.Client, cacheCfg middleware.CacheConfig) *PageHandler {
	return &PageHandler{service: service, redisClient: redisClient, cacheCfg: cacheCfg}
}

// ListPages handles GET /api/v1/pages
// @Summary List pages
// @Tags pages
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} common.APIResponse{data=[]domain.Page}
// @Router /pages [get]
func (h *PageHandler) ListPages(c *gin.Context) {
	page := queryInt(c, "page", 1)
	limit := queryInt(c, "limit", 20)

	pages, meta, err := h.service.ListPages(c.Request.Context(), page, limit)
	if err != nil {
		common.FailResponse(c, "Failed to list pages", err)
		return
	}
	common.SuccessResponse(c, pages, meta)
}

// CreatePage handles POST /api/v1/pages
// @Summary Create a page
// @Tags pages
// @Accept json
// @Produce json
// @Param request body domain.CreatePageRequest true "Page"
// @Success 201 {object} common.APIResponse{data=domain.Page}
// @Security BearerAuth
// @Router /pages [post]
func (h *PageHandler) CreatePage(c *gin.Context) {
	var req domain.CreatePageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	page, err := h.service.CreatePage(c.Request.Context(), &req)
	if err != nil {
		common.FailResponse(c, "Failed to create page", err)
		return
	}
	common.CreatedResponse(c, page)
}

// GetPage handles GET /api/v1/pages/:route
// @Summary Get a page
// @Tags pages
// @Produce json
// @Param route path string true "Page route"
// @Success 200 {object} common.APIResponse{data=domain.Page}
// @Failure 404 {object} common.APIResponse
// @Router /pages/{route} [get]
func (h *PageHandler) GetPage(c *gin.Context) {
	page, err := h.service.GetPage(c.Request.Context(), c.Param("route"))
	if err != nil {
		common.FailResponse(c, "Failed to get page", err)
		return
	}
	common.SuccessResponse(c, page, nil)
}

// DeletePage handles DELETE /api/v1/pages/:route
// @Summary Delete a page
// @Tags pages
// @Param route path string true "Page route"
// @Success 200 {object} common.APIResponse
// @Security BearerAuth
// @Router /pages/{route} [delete]
func (h *PageHandler) DeletePage(c *gin.Context) {
	if err := h.service.DeletePage(c.Request.Context(), c.Param("route")); err != nil {
		common.FailResponse(c, "Failed to delete page", err)
		return
	}
	h.invalidate(c)
	common.SuccessResponse(c, gin.H{"deleted": true}, nil)
}

// GetPageContent handles GET /api/v1/pages/:route/content
// @Summary Get resolved page content
// @Description Returns the effective content for the public site: the current published version, or the default content when the page was never published
// @Tags pages
// @Produce json
// @Param route path string true "Page route"
// @Success 200 {object} common.APIResponse{data=domain.PageContentResponse}
// @Failure 404 {object} common.APIResponse
// @Router /pages/{route}/content [get]
func (h *PageHandler) GetPageContent(c *gin.Context) {
	content, err := h.service.GetPageContent(c.Request.Context(), c.Param("route"))
	if err != nil {
		common.FailResponse(c, "Failed to resolve page content", err)
		return
	}
	common.SuccessResponse(c, content, nil)
}

// ListVersions handles GET /api/v1/pages/:route/versions
// @Summary List page versions
// @Tags pages
// @Produce json
// @Param route path string true "Page route"
// @Success 200 {object} common.APIResponse{data=[]domain.PageVersion}
// @Security BearerAuth
// @Router /pages/{route}/versions [get]
func (h *PageHandler) ListVersions(c *gin.Context) {
	versions, err := h.service.ListVersions(c.Request.Context(), c.Param("route"))
	if err != nil {
		common.FailResponse(c, "Failed to list versions", err)
		return
	}
	common.SuccessResponse(c, versions, nil)
}

// SaveDraftVersion handles POST /api/v1/pages/:route/versions
// @Summary Save the page draft
// @Description Creates the page's draft version or updates it in place
// @Tags pages
// @Accept json
// @Produce json
// @Param route path string true "Page route"
// @Param request body domain.SaveVersionRequest true "Draft content"
// @Success 200 {object} common.APIResponse{data=domain.PageVersion}
// @Security BearerAuth
// @Router /pages/{route}/versions [post]
func (h *PageHandler) SaveDraftVersion(c *gin.Context) {
	var req domain.SaveVersionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	draft, err := h.service.SaveDraftVersion(c.Request.Context(), c.Param("route"), &req, middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Failed to save draft", err)
		return
	}
	common.SuccessResponse(c, draft, nil)
}

// Publish handles POST /api/v1/pages/:route/publish
// @Summary Publish the page draft
// @Description Atomically archives the current published version, publishes the draft and repoints the page
// @Tags pages
// @Produce json
// @Param route path string true "Page route"
// @Success 200 {object} common.APIResponse{data=domain.PageVersion}
// @Failure 404 {object} common.APIResponse
// @Security BearerAuth
// @Router /pages/{route}/publish [post]
func (h *PageHandler) Publish(c *gin.Context) {
	version, err := h.service.Publish(c.Request.Context(), c.Param("route"), middleware.GetUserID(c))
	if err != nil {
		common.FailResponse(c, "Failed to publish", err)
		return
	}
	h.invalidate(c)
	common.SuccessResponse(c, version, nil)
}

// DiscardDraft handles DELETE /api/v1/pages/:route/draft
// @Summary Discard the page draft
// @Tags pages
// @Param route path string true "Page route"
// @Success 200 {object} common.APIResponse
// @Security BearerAuth
// @Router /pages/{route}/draft [delete]
func (h *PageHandler) DiscardDraft(c *gin.Context) {
	if err := h.service.DiscardDraft(c.Request.Context(), c.Param("route")); err != nil {
		common.FailResponse(c, "Failed to discard draft", err)
		return
	}
	common.SuccessResponse(c, gin.H{"discarded": true}, nil)
}

func (h *PageHandler) invalidate(c *gin.Context) {
	middleware.InvalidateCache(c.Request.Context(), h.redisClient, h.cacheCfg)
}
