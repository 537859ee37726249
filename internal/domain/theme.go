package domain

import "time"

// ThemeDefault is an admin-seeded theme token (color, font, spacing...)
type ThemeDefault struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Key       string    `gorm:"column:theme_key;type:varchar(100);uniqueIndex" json:"key"`
	Value     string    `gorm:"column:value;type:varchar(500)" json:"value"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (ThemeDefault) TableName() string { return "theme_defaults" }

// ThemeOverride supersedes one ThemeDefault. The application upserts so at
// most one row per default should exist, but the resolver does not rely on
// that and applies duplicates in deterministic order.
type ThemeOverride struct {
	ID        uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	DefaultID uint64    `gorm:"column:default_id;uniqueIndex" json:"default_id"`
	Value     string    `gorm:"column:value;type:varchar(500)" json:"value"`
	EditorID  *uint64   `gorm:"column:editor_id" json:"editor_id,omitempty"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	Default *ThemeDefault `gorm:"foreignKey:DefaultID" json:"default,omitempty"`
}

func (ThemeOverride) TableName() string { return "theme_overrides" }

// AuditEntityType implements Auditable
func (o *ThemeOverride) AuditEntityType() string { return "theme_override" }

// AuditEntityID implements Auditable
func (o *ThemeOverride) AuditEntityID() uint64 { return o.ID }

// AuditActorID implements Auditable
func (o *ThemeOverride) AuditActorID() *uint64 { return o.EditorID }

// SaveThemeOverrideRequest sets an override value for a theme default
type SaveThemeOverrideRequest struct {
	Value string `json:"value" binding:"required,max=500"`
}
