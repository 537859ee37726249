package domain

import "time"

// OverrideStatus is the lifecycle state of a block override
type OverrideStatus string

const (
	OverrideStatusDraft     OverrideStatus = "draft"
	OverrideStatusPublished OverrideStatus = "published"
)

// ContentOverride holds one HTML override for a (page, block) pair. Rows
// accumulate as history: publishing flips a draft row in place, a revert
// copies a historical row into a fresh draft, and nothing is ever deleted.
// The effective published value for a block is the published row with the
// latest updated_at (id breaks timestamp ties).
type ContentOverride struct {
	ID        uint64         `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PageID    uint64         `gorm:"column:page_id;index:idx_override_page_block,priority:1" json:"page_id"`
	BlockKey  string         `gorm:"column:block_key;type:varchar(255);index:idx_override_page_block,priority:2" json:"block_key"`
	HTML      string         `gorm:"column:html_value;type:mediumtext" json:"html"`
	Status    OverrideStatus `gorm:"column:status;type:varchar(20);default:draft" json:"status"`
	Note      string         `gorm:"column:note;type:varchar(500)" json:"note,omitempty"`
	EditorID  *uint64        `gorm:"column:editor_id" json:"editor_id,omitempty"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ContentOverride) TableName() string { return "content_overrides" }

// AuditEntityType implements Auditable
func (o *ContentOverride) AuditEntityType() string { return "content_override" }

// AuditEntityID implements Auditable
func (o *ContentOverride) AuditEntityID() uint64 { return o.ID }

// AuditActorID implements Auditable
func (o *ContentOverride) AuditActorID() *uint64 { return o.EditorID }

// SaveBlockRequest saves a block-level draft override
type SaveBlockRequest struct {
	BlockKey string `json:"block_key" binding:"required,max=255"`
	HTML     string `json:"html" binding:"required"`
	Note     string `json:"note" binding:"max=500"`
}
