package domain

import "time"

// Image is the metadata row for an uploaded media object. The bytes live in
// S3-compatible storage under StorageKey.
type Image struct {
	ID          uint64    `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	FileName    string    `gorm:"column:file_name;type:varchar(255)" json:"file_name"`
	StorageKey  string    `gorm:"column:storage_key;type:varchar(500);uniqueIndex" json:"storage_key"`
	URL         string    `gorm:"column:url;type:varchar(500)" json:"url"`
	ContentType string    `gorm:"column:content_type;type:varchar(100)" json:"content_type"`
	Size        int64     `gorm:"column:size" json:"size"`
	UploaderID  *uint64   `gorm:"column:uploader_id" json:"uploader_id,omitempty"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (Image) TableName() string { return "images" }
