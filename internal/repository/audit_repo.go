package repository

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/domain"
	"gorm.io/gorm"
)

// AuditFilter narrows audit log listings
type AuditFilter struct {
	EntityType string
	EntityID   uint64
	ActorID    uint64
}

// AuditRepository audit trail data access. Writes are append-only.
type AuditRepository interface {
	WithTx(tx *gorm.DB) AuditRepository
	Create(ctx context.Context, log *domain.AuditLog, history *domain.AuditHistory) error
	List(ctx context.Context, filter AuditFilter, offset, limit int) ([]domain.AuditLog, int64, error)
}

type auditRepository struct {
	db *gorm.DB
}

// NewAuditRepository creates a new AuditRepository
func NewAuditRepository(db *gorm.DB) AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) WithTx(tx *gorm.DB) AuditRepository {
	return &auditRepository{db: tx}
}

// Create persists the log row and its 1:1 history row together
func (r *auditRepository) Create(ctx context.Context, log *domain.AuditLog, history *domain.AuditHistory) error {
	if err := r.db.WithContext(ctx).Create(log).Error; err != nil {
		return err
	}
	history.AuditLogID = log.ID
	return r.db.WithContext(ctx).Create(history).Error
}

func (r *auditRepository) List(ctx context.Context, filter AuditFilter, offset, limit int) ([]domain.AuditLog, int64, error) {
	query := r.db.WithContext(ctx).Model(&domain.AuditLog{})
	if filter.EntityType != "" {
		query = query.Where("entity_type = ?", filter.EntityType)
	}
	if filter.EntityID != 0 {
		query = query.Where("entity_id = ?", filter.EntityID)
	}
	if filter.ActorID != 0 {
		query = query.Where("actor_id = ?", filter.ActorID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var logs []domain.AuditLog
	err := query.
		Preload("History").
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&logs).Error

	return logs, total, err
}
