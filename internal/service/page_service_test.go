package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	err = db.AutoMigrate(
		&domain.Page{}, &domain.PageVersion{}, &domain.ContentOverride{},
		&domain.ThemeDefault{}, &domain.ThemeOverride{},
		&domain.AuditLog{}, &domain.AuditHistory{},
		&domain.User{}, &domain.Role{}, &domain.Permission{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func setupPageService(t *testing.T) (*PageService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	recorder := NewAuditRecorder(repository.NewAuditRepository(db))
	svc := NewPageService(db, repository.NewPageRepository(db), repository.NewPageVersionRepository(db), recorder)
	return svc, db
}

func seedPage(t *testing.T, db *gorm.DB, route string) *domain.Page {
	t.Helper()
	page := &domain.Page{
		Route:          route,
		Title:          "Test Page",
		DefaultContent: `{"blocks":[{"type":"text","content":{"html":"<p>default</p>"}}]}`,
	}
	require.NoError(t, db.Create(page).Error)
	return page
}

func auditCount(t *testing.T, db *gorm.DB, entityType string) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(&domain.AuditLog{}).Where("entity_type = ?", entityType).Count(&n).Error)
	return n
}

func TestGetPageContent_DefaultWhenNeverPublished(t *testing.T) {
	svc, db := setupPageService(t)
	seedPage(t, db, "/about")

	resp, err := svc.GetPageContent(context.Background(), "/about")
	require.NoError(t, err)
	assert.Equal(t, "/about", resp.Route)
	assert.JSONEq(t, `{"blocks":[{"type":"text","content":{"html":"<p>default</p>"}}]}`, string(resp.Content))
	assert.Zero(t, resp.Version)
}

func TestGetPageContent_PublishedVersionReplacesDefault(t *testing.T) {
	svc, db := setupPageService(t)
	page := seedPage(t, db, "/about")

	_, err := svc.SaveDraftVersion(context.Background(), "/about", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[{"type":"text","content":{"html":"<p>edited</p>"}}]}`),
	}, 1)
	require.NoError(t, err)

	published, err := svc.Publish(context.Background(), "/about", 1)
	require.NoError(t, err)
	assert.Equal(t, domain.VersionStatusPublished, published.Status)
	assert.NotNil(t, published.PublishedAt)

	resp, err := svc.GetPageContent(context.Background(), "/about")
	require.NoError(t, err)
	assert.Equal(t, uint(1), resp.Version)
	assert.JSONEq(t, `{"blocks":[{"type":"text","content":{"html":"<p>edited</p>"}}]}`, string(resp.Content))

	var reloaded domain.Page
	require.NoError(t, db.First(&reloaded, page.ID).Error)
	require.NotNil(t, reloaded.CurrentVersionID)
	assert.Equal(t, published.ID, *reloaded.CurrentVersionID)
}

func TestGetPageContent_UnknownRoute(t *testing.T) {
	svc, _ := setupPageService(t)

	_, err := svc.GetPageContent(context.Background(), "/missing")
	assert.ErrorIs(t, err, common.ErrPageNotFound)
}

func TestSaveDraftVersion_UpsertsSingleDraft(t *testing.T) {
	svc, db := setupPageService(t)
	page := seedPage(t, db, "/wines")

	first, err := svc.SaveDraftVersion(context.Background(), "/wines", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[{"type":"text","content":{"html":"<p>one</p>"}}]}`),
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), first.Version)
	assert.Equal(t, domain.VersionStatusDraft, first.Status)

	second, err := svc.SaveDraftVersion(context.Background(), "/wines", &domain.SaveVersionRequest{
		Content:    json.RawMessage(`{"blocks":[{"type":"text","content":{"html":"<p>two</p>"}}]}`),
		ChangeNote: "tweak",
	}, 2)
	require.NoError(t, err)

	// same row, mutated in place
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Version, second.Version)
	assert.Equal(t, "tweak", second.ChangeNote)
	assert.NotEqual(t, first.ContentHash, second.ContentHash)

	var count int64
	require.NoError(t, db.Model(&domain.PageVersion{}).Where("page_id = ?", page.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// one audit entry per save
	assert.Equal(t, int64(2), auditCount(t, db, "page_version"))
}

func TestSaveDraftVersion_RejectsMalformedContent(t *testing.T) {
	svc, db := setupPageService(t)
	page := seedPage(t, db, "/visit")

	_, err := svc.SaveDraftVersion(context.Background(), "/visit", &domain.SaveVersionRequest{
		Content: json.RawMessage(`"not a block list"`),
	}, 1)
	assert.ErrorIs(t, err, common.ErrInvalidInput)

	var count int64
	require.NoError(t, db.Model(&domain.PageVersion{}).Where("page_id = ?", page.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestPublish_ArchivesPreviousVersion(t *testing.T) {
	svc, db := setupPageService(t)
	seedPage(t, db, "/contact")

	ctx := context.Background()
	_, err := svc.SaveDraftVersion(ctx, "/contact", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[{"type":"text","content":{"html":"<p>v1</p>"}}]}`),
	}, 1)
	require.NoError(t, err)
	v1, err := svc.Publish(ctx, "/contact", 1)
	require.NoError(t, err)

	_, err = svc.SaveDraftVersion(ctx, "/contact", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[{"type":"text","content":{"html":"<p>v2</p>"}}]}`),
	}, 1)
	require.NoError(t, err)
	v2, err := svc.Publish(ctx, "/contact", 1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), v2.Version)

	var archived domain.PageVersion
	require.NoError(t, db.First(&archived, v1.ID).Error)
	assert.Equal(t, domain.VersionStatusArchived, archived.Status)

	versions, err := svc.ListVersions(ctx, "/contact")
	require.NoError(t, err)
	require.Len(t, versions, 2)
	assert.Equal(t, uint(2), versions[0].Version) // newest first
}

func TestPublish_NoDraft(t *testing.T) {
	svc, db := setupPageService(t)
	seedPage(t, db, "/home")

	_, err := svc.Publish(context.Background(), "/home", 1)
	assert.ErrorIs(t, err, common.ErrNoDraftVersion)
}

func TestDiscardDraft_KeepsPublishedVersions(t *testing.T) {
	svc, db := setupPageService(t)
	page := seedPage(t, db, "/home")

	ctx := context.Background()
	_, err := svc.SaveDraftVersion(ctx, "/home", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[]}`),
	}, 1)
	require.NoError(t, err)
	published, err := svc.Publish(ctx, "/home", 1)
	require.NoError(t, err)

	_, err = svc.SaveDraftVersion(ctx, "/home", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[{"type":"hero","content":{}}]}`),
	}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DiscardDraft(ctx, "/home"))

	var remaining []domain.PageVersion
	require.NoError(t, db.Where("page_id = ?", page.ID).Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, published.ID, remaining[0].ID)

	// nothing left to discard
	assert.ErrorIs(t, svc.DiscardDraft(ctx, "/home"), common.ErrNoDraftVersion)
}

func TestCreatePage_NormalizesRoute(t *testing.T) {
	svc, _ := setupPageService(t)

	page, err := svc.CreatePage(context.Background(), &domain.CreatePageRequest{
		Route:   "events",
		Title:   "Events",
		Content: json.RawMessage(`{"blocks":[]}`),
	})
	require.NoError(t, err)
	assert.Equal(t, "/events", page.Route)

	// both spellings resolve
	got, err := svc.GetPage(context.Background(), "events")
	require.NoError(t, err)
	assert.Equal(t, page.ID, got.ID)
}

func TestCreatePage_DuplicateRoute(t *testing.T) {
	svc, db := setupPageService(t)
	seedPage(t, db, "/about")

	_, err := svc.CreatePage(context.Background(), &domain.CreatePageRequest{
		Route:   "/about",
		Title:   "About again",
		Content: json.RawMessage(`{"blocks":[]}`),
	})
	assert.ErrorIs(t, err, common.ErrDomain)
}

func TestSaveDraftVersion_CancelledContext(t *testing.T) {
	svc, db := setupPageService(t)
	seedPage(t, db, "/about")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.SaveDraftVersion(ctx, "/about", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[]}`),
	}, 1)
	assert.ErrorIs(t, err, common.ErrCancelled)

	// nothing partial committed: no version row, no audit row
	var versions int64
	require.NoError(t, db.Model(&domain.PageVersion{}).Count(&versions).Error)
	assert.Zero(t, versions)
	assert.Zero(t, auditCount(t, db, "page_version"))
}

func TestPublish_CancelledContext(t *testing.T) {
	svc, db := setupPageService(t)
	page := seedPage(t, db, "/wines")

	_, err := svc.SaveDraftVersion(context.Background(), "/wines", &domain.SaveVersionRequest{
		Content: json.RawMessage(`{"blocks":[]}`),
	}, 1)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = svc.Publish(ctx, "/wines", 1)
	assert.ErrorIs(t, err, common.ErrCancelled)

	// draft untouched, page never repointed
	var draft domain.PageVersion
	require.NoError(t, db.Where("page_id = ?", page.ID).First(&draft).Error)
	assert.Equal(t, domain.VersionStatusDraft, draft.Status)

	var reloaded domain.Page
	require.NoError(t, db.First(&reloaded, page.ID).Error)
	assert.Nil(t, reloaded.CurrentVersionID)
}
