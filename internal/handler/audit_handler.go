package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/repository"
	"github.com/vinealis/vinea-backend/internal/service"
)

// AuditHandler read access over the audit trail
type AuditHandler struct {
	service *service.AuditService
}

// NewAuditHandler creates a new AuditHandler
func NewAuditHandler(service *service.AuditService) *AuditHandler {
	return &AuditHandler{service: service}
}

// ListLogs handles GET /api/v1/audit
// @Summary List audit log entries
// @Tags audit
// @Produce json
// @Param entity_type query string false "Entity type filter"
// @Param entity_id query int false "Entity ID filter"
// @Param actor_id query int false "Actor filter"
// @Param page query int false "Page number"
// @Param limit query int false "Items per page"
// @Success 200 {object} common.APIResponse{data=[]domain.AuditLog}
// @Security BearerAuth
// @Router /audit [get]
func (h *AuditHandler) ListLogs(c *gin.Context) {
	filter := repository.AuditFilter{
		EntityType: c.Query("entity_type"),
	}
	if v, err := strconv.ParseUint(c.Query("entity_id"), 10, 64); err == nil {
		filter.EntityID = v
	}
	if v, err := strconv.ParseUint(c.Query("actor_id"), 10, 64); err == nil {
		filter.ActorID = v
	}

	logs, meta, err := h.service.ListLogs(c.Request.Context(), filter, queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		common.FailResponse(c, "Failed to list audit logs", err)
		return
	}
	common.SuccessResponse(c, logs, meta)
}
