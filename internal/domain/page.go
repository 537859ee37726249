package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// NormalizeRoute canonicalizes a page route to a leading-slash form, so the
// URL segment "about" and the stored route "/about" refer to the same page.
func NormalizeRoute(route string) string {
	return "/" + strings.Trim(route, "/")
}

// VersionStatus represents the lifecycle state of a page version
type VersionStatus string

const (
	VersionStatusDraft     VersionStatus = "draft"
	VersionStatusPublished VersionStatus = "published"
	VersionStatusArchived  VersionStatus = "archived"
)

// ContentBlock is one editable region of a page. The block schema beyond
// type/content is owned by the frontend; the backend stores it opaquely.
type ContentBlock struct {
	Type    string          `json:"type"`
	Content json.RawMessage `json:"content"`
}

// PageContent is the structured content stored for a page or version
type PageContent struct {
	Blocks []ContentBlock `json:"blocks"`
}

// Page represents a site page, identified by its unique route.
// DefaultContent is the seeded base content; CurrentVersionID points at the
// published version whose content supersedes it once the page has been
// published at least once.
type Page struct {
	ID               uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Route            string    `gorm:"column:route;type:varchar(255);uniqueIndex" json:"route"`
	Title            string    `gorm:"column:title;type:varchar(255)" json:"title"`
	DefaultContent   string    `gorm:"column:default_content;type:json" json:"default_content"`
	CurrentVersionID *uint64   `gorm:"column:current_version_id" json:"current_version_id,omitempty"`
	CreatedAt        time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`

	CurrentVersion *PageVersion `gorm:"foreignKey:CurrentVersionID" json:"current_version,omitempty"`
}

func (Page) TableName() string { return "pages" }

// PageVersion is a full content snapshot of a page. Version numbers increase
// monotonically per page. DraftFlag is non-nil only while the version is a
// draft; the (page_id, draft_flag) unique index is the concurrency guard that
// keeps at most one draft per page even under racing writers.
type PageVersion struct {
	ID          uint64        `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	PageID      uint64        `gorm:"column:page_id;uniqueIndex:idx_page_version,priority:1;uniqueIndex:idx_page_draft,priority:1" json:"page_id"`
	Version     uint          `gorm:"column:version;uniqueIndex:idx_page_version,priority:2" json:"version"`
	Content     string        `gorm:"column:content;type:json" json:"content"`
	Status      VersionStatus `gorm:"column:status;type:varchar(20);default:draft" json:"status"`
	DraftFlag   *bool         `gorm:"column:draft_flag;uniqueIndex:idx_page_draft,priority:2" json:"-"`
	AuthorID    *uint64       `gorm:"column:author_id" json:"author_id,omitempty"`
	ChangeNote  string        `gorm:"column:change_note;type:varchar(500)" json:"change_note,omitempty"`
	ContentHash string        `gorm:"column:content_hash;type:varchar(64)" json:"content_hash,omitempty"`
	CreatedAt   time.Time     `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time     `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
	PublishedAt *time.Time    `gorm:"column:published_at" json:"published_at,omitempty"`
}

func (PageVersion) TableName() string { return "page_versions" }

// AuditEntityType implements Auditable
func (v *PageVersion) AuditEntityType() string { return "page_version" }

// AuditEntityID implements Auditable
func (v *PageVersion) AuditEntityID() uint64 { return v.ID }

// AuditActorID implements Auditable
func (v *PageVersion) AuditActorID() *uint64 { return v.AuthorID }

// CreatePageRequest creates a new page
type CreatePageRequest struct {
	Route   string          `json:"route" binding:"required,max=255,pageroute"`
	Title   string          `json:"title" binding:"required,max=255"`
	Content json.RawMessage `json:"content" binding:"required"`
}

// SaveVersionRequest saves page content as a new or updated draft version
type SaveVersionRequest struct {
	Content    json.RawMessage `json:"content" binding:"required"`
	ChangeNote string          `json:"change_note" binding:"max=500"`
}

// PageContentResponse is the resolved content returned to the public site
type PageContentResponse struct {
	Route   string          `json:"route"`
	Title   string          `json:"title"`
	Version uint            `json:"version,omitempty"`
	Content json.RawMessage `json:"content"`
}
