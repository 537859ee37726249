package service

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
)

// AuditService read access over the audit trail
type AuditService struct {
	auditRepo repository.AuditRepository
}

// NewAuditService creates a new AuditService
func NewAuditService(auditRepo repository.AuditRepository) *AuditService {
	return &AuditService{auditRepo: auditRepo}
}

// ListLogs returns filtered audit entries with pagination, newest first
func (s *AuditService) ListLogs(ctx context.Context, filter repository.AuditFilter, page, limit int) ([]domain.AuditLog, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, total, err := s.auditRepo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, common.TranslateDBError(err)
	}
	return logs, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}
