package domain

import "time"

// AuditAction distinguishes inserts, updates and removals in the audit trail
type AuditAction string

const (
	AuditActionCreated AuditAction = "created"
	AuditActionUpdated AuditAction = "updated"
	AuditActionDeleted AuditAction = "deleted"
)

// Auditable is implemented by entities whose writes are recorded in the
// audit trail. The actor is read off the entity's editor/author reference.
type Auditable interface {
	AuditEntityType() string
	AuditEntityID() uint64
	AuditActorID() *uint64
}

// AuditLog records who changed what and when. Append-only, never mutated.
type AuditLog struct {
	ID         uint64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	EntityType string      `gorm:"column:entity_type;type:varchar(50);index" json:"entity_type"`
	EntityID   uint64      `gorm:"column:entity_id;index" json:"entity_id"`
	Action     AuditAction `gorm:"column:action;type:varchar(20)" json:"action"`
	ActorID    *uint64     `gorm:"column:actor_id;index" json:"actor_id,omitempty"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`

	History *AuditHistory `gorm:"foreignKey:AuditLogID" json:"history,omitempty"`
}

func (AuditLog) TableName() string { return "audit_logs" }

// AuditHistory holds the before/after JSON snapshots for one audit entry.
// Previous is nil for creates.
type AuditHistory struct {
	ID         uint64  `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	AuditLogID uint64  `gorm:"column:audit_log_id;uniqueIndex" json:"audit_log_id"`
	Previous   *string `gorm:"column:previous_data;type:json" json:"previous_data,omitempty"`
	Current    string  `gorm:"column:current_data;type:json" json:"current_data"`
}

func (AuditHistory) TableName() string { return "audit_histories" }
