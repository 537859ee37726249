package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"gorm.io/gorm"
)

// AuditRecorder writes one AuditLog plus one AuditHistory row for an entity
// mutation. Every state-changing service path calls it explicitly, passing
// the transaction it is committing under, so the audit rows live or die with
// the write they describe.
type AuditRecorder interface {
	RecordCreate(ctx context.Context, tx *gorm.DB, entity domain.Auditable) error
	RecordUpdate(ctx context.Context, tx *gorm.DB, entity domain.Auditable, before interface{}) error
	RecordDelete(ctx context.Context, tx *gorm.DB, entity domain.Auditable) error
}

type auditRecorder struct {
	auditRepo repository.AuditRepository
}

// NewAuditRecorder creates a new AuditRecorder
func NewAuditRecorder(auditRepo repository.AuditRepository) AuditRecorder {
	return &auditRecorder{auditRepo: auditRepo}
}

func (r *auditRecorder) RecordCreate(ctx context.Context, tx *gorm.DB, entity domain.Auditable) error {
	return r.record(ctx, tx, domain.AuditActionCreated, entity, nil)
}

func (r *auditRecorder) RecordUpdate(ctx context.Context, tx *gorm.DB, entity domain.Auditable, before interface{}) error {
	return r.record(ctx, tx, domain.AuditActionUpdated, entity, before)
}

// RecordDelete snapshots the row as it stood at removal time
func (r *auditRecorder) RecordDelete(ctx context.Context, tx *gorm.DB, entity domain.Auditable) error {
	return r.record(ctx, tx, domain.AuditActionDeleted, entity, nil)
}

// record is fail-closed: a snapshot that cannot be serialized fails the
// whole save, so an unauditable write never commits.
func (r *auditRecorder) record(ctx context.Context, tx *gorm.DB, action domain.AuditAction, entity domain.Auditable, before interface{}) error {
	current, err := json.Marshal(entity)
	if err != nil {
		return fmt.Errorf("audit snapshot of %s: %w", entity.AuditEntityType(), err)
	}

	history := &domain.AuditHistory{
		Current: string(current),
	}
	if before != nil {
		previous, err := json.Marshal(before)
		if err != nil {
			return fmt.Errorf("audit snapshot of %s: %w", entity.AuditEntityType(), err)
		}
		prev := string(previous)
		history.Previous = &prev
	}

	log := &domain.AuditLog{
		EntityType: entity.AuditEntityType(),
		EntityID:   entity.AuditEntityID(),
		Action:     action,
		ActorID:    entity.AuditActorID(),
	}

	return r.auditRepo.WithTx(tx).Create(ctx, log, history)
}
