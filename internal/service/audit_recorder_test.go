package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
)

// unserializable implements Auditable but cannot be marshaled to JSON
type unserializable struct {
	Ch chan int `json:"ch"`
}

func (u *unserializable) AuditEntityType() string { return "broken" }
func (u *unserializable) AuditEntityID() uint64   { return 1 }
func (u *unserializable) AuditActorID() *uint64   { return nil }

func TestRecordCreate_WritesLogAndHistory(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewAuditRecorder(repository.NewAuditRepository(db))

	actor := uint64(7)
	entity := &domain.ContentOverride{ID: 42, PageID: 1, BlockKey: "intro", HTML: "<p>x</p>", EditorID: &actor}

	err := db.Transaction(func(tx *gorm.DB) error {
		return recorder.RecordCreate(context.Background(), tx, entity)
	})
	require.NoError(t, err)

	var logs []domain.AuditLog
	require.NoError(t, db.Preload("History").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, "content_override", logs[0].EntityType)
	assert.Equal(t, uint64(42), logs[0].EntityID)
	assert.Equal(t, domain.AuditActionCreated, logs[0].Action)
	require.NotNil(t, logs[0].ActorID)
	assert.Equal(t, actor, *logs[0].ActorID)
	require.NotNil(t, logs[0].History)
	assert.Nil(t, logs[0].History.Previous)
	assert.Contains(t, logs[0].History.Current, `"block_key":"intro"`)
}

func TestRecordUpdate_KeepsBeforeSnapshot(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewAuditRecorder(repository.NewAuditRepository(db))

	before := domain.ContentOverride{ID: 42, BlockKey: "intro", HTML: "<p>old</p>"}
	after := &domain.ContentOverride{ID: 42, BlockKey: "intro", HTML: "<p>new</p>"}

	err := db.Transaction(func(tx *gorm.DB) error {
		return recorder.RecordUpdate(context.Background(), tx, after, before)
	})
	require.NoError(t, err)

	var logs []domain.AuditLog
	require.NoError(t, db.Preload("History").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.Equal(t, domain.AuditActionUpdated, logs[0].Action)
	require.NotNil(t, logs[0].History.Previous)
	assert.Contains(t, *logs[0].History.Previous, "old")
	assert.Contains(t, logs[0].History.Current, "new")
}

func TestRecord_SerializationFailureAbortsTransaction(t *testing.T) {
	db := setupTestDB(t)
	recorder := NewAuditRecorder(repository.NewAuditRepository(db))

	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&domain.ThemeDefault{Key: "color.x", Value: "#fff"}).Error; err != nil {
			return err
		}
		return recorder.RecordCreate(context.Background(), tx, &unserializable{Ch: make(chan int)})
	})
	require.Error(t, err)

	// the write sharing the transaction must not survive
	var count int64
	require.NoError(t, db.Model(&domain.ThemeDefault{}).Count(&count).Error)
	assert.Zero(t, count)

	require.NoError(t, db.Model(&domain.AuditLog{}).Count(&count).Error)
	assert.Zero(t, count)
}
