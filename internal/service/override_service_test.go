package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"github.com/vinealis/vinea-backend/pkg/sanitize"
)

func setupOverrideService(t *testing.T) (*OverrideService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	recorder := NewAuditRecorder(repository.NewAuditRepository(db))
	svc := NewOverrideService(db, repository.NewPageRepository(db), repository.NewOverrideRepository(db), recorder, sanitize.NewPolicy())
	return svc, db
}

func TestSaveDraft_UpsertsSingleRowPerBlock(t *testing.T) {
	svc, db := setupOverrideService(t)
	page := seedPage(t, db, "/about")

	ctx := context.Background()
	first, err := svc.SaveDraft(ctx, "/about", &domain.SaveBlockRequest{
		BlockKey: "intro",
		HTML:     "<p>first</p>",
	}, 1)
	require.NoError(t, err)
	assert.Equal(t, domain.OverrideStatusDraft, first.Status)

	second, err := svc.SaveDraft(ctx, "/about", &domain.SaveBlockRequest{
		BlockKey: "intro",
		HTML:     "<p>second</p>",
		Note:     "reword",
	}, 2)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "<p>second</p>", second.HTML)

	var count int64
	require.NoError(t, db.Model(&domain.ContentOverride{}).
		Where("page_id = ? AND block_key = ?", page.ID, "intro").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, int64(2), auditCount(t, db, "content_override"))
}

func TestSaveDraft_SanitizesHTML(t *testing.T) {
	svc, db := setupOverrideService(t)
	seedPage(t, db, "/about")

	draft, err := svc.SaveDraft(context.Background(), "/about", &domain.SaveBlockRequest{
		BlockKey: "intro",
		HTML:     `<p onclick="steal()">hi</p><script>alert(1)</script>`,
	}, 1)
	require.NoError(t, err)
	assert.NotContains(t, draft.HTML, "script")
	assert.NotContains(t, draft.HTML, "onclick")
	assert.Contains(t, draft.HTML, "<p>hi</p>")
}

func TestResolvePublishedBlocks_LatestWinsPerBlock(t *testing.T) {
	svc, db := setupOverrideService(t)
	page := seedPage(t, db, "/wines")

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	rows := []domain.ContentOverride{
		{PageID: page.ID, BlockKey: "intro", HTML: "<p>old</p>", Status: domain.OverrideStatusPublished, CreatedAt: t1, UpdatedAt: t1},
		{PageID: page.ID, BlockKey: "intro", HTML: "<p>new</p>", Status: domain.OverrideStatusPublished, CreatedAt: t2, UpdatedAt: t2},
		{PageID: page.ID, BlockKey: "hours", HTML: "<p>10-6</p>", Status: domain.OverrideStatusPublished, CreatedAt: t1, UpdatedAt: t1},
		{PageID: page.ID, BlockKey: "hidden", HTML: "<p>draft</p>", Status: domain.OverrideStatusDraft, CreatedAt: t2, UpdatedAt: t2},
	}
	for i := range rows {
		require.NoError(t, db.Create(&rows[i]).Error)
	}

	blocks, err := svc.ResolvePublishedBlocks(context.Background(), "/wines")
	require.NoError(t, err)
	assert.Len(t, blocks, 2)
	assert.Equal(t, "<p>new</p>", blocks["intro"])
	assert.Equal(t, "<p>10-6</p>", blocks["hours"])
	assert.NotContains(t, blocks, "hidden")
}

func TestResolvePublishedBlocks_EqualTimestampsFallBackToRowID(t *testing.T) {
	svc, db := setupOverrideService(t)
	page := seedPage(t, db, "/wines")

	ts := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	a := domain.ContentOverride{PageID: page.ID, BlockKey: "intro", HTML: "<p>a</p>", Status: domain.OverrideStatusPublished, CreatedAt: ts, UpdatedAt: ts}
	b := domain.ContentOverride{PageID: page.ID, BlockKey: "intro", HTML: "<p>b</p>", Status: domain.OverrideStatusPublished, CreatedAt: ts, UpdatedAt: ts}
	require.NoError(t, db.Create(&a).Error)
	require.NoError(t, db.Create(&b).Error)

	blocks, err := svc.ResolvePublishedBlocks(context.Background(), "/wines")
	require.NoError(t, err)
	assert.Equal(t, "<p>b</p>", blocks["intro"])
}

func TestPublishDraft_FlipsInPlaceAndKeepsHistory(t *testing.T) {
	svc, db := setupOverrideService(t)
	page := seedPage(t, db, "/visit")

	ctx := context.Background()
	draft, err := svc.SaveDraft(ctx, "/visit", &domain.SaveBlockRequest{BlockKey: "hours", HTML: "<p>new hours</p>"}, 1)
	require.NoError(t, err)

	published, err := svc.PublishDraft(ctx, draft.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, draft.ID, published.ID)
	assert.Equal(t, domain.OverrideStatusPublished, published.Status)

	// publishing does not delete anything
	var count int64
	require.NoError(t, db.Model(&domain.ContentOverride{}).Where("page_id = ?", page.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPublishDraft_NotFound(t *testing.T) {
	svc, _ := setupOverrideService(t)

	_, err := svc.PublishDraft(context.Background(), 9999, 1)
	assert.ErrorIs(t, err, common.ErrOverrideNotFound)
}

func TestRevert_CreatesFreshDraftWithoutMutatingSource(t *testing.T) {
	svc, db := setupOverrideService(t)
	seedPage(t, db, "/visit")

	ctx := context.Background()
	draft, err := svc.SaveDraft(ctx, "/visit", &domain.SaveBlockRequest{BlockKey: "hours", HTML: "<p>original</p>"}, 1)
	require.NoError(t, err)
	source, err := svc.PublishDraft(ctx, draft.ID, 1)
	require.NoError(t, err)

	reverted, err := svc.Revert(ctx, source.ID, 2)
	require.NoError(t, err)
	assert.NotEqual(t, source.ID, reverted.ID)
	assert.Equal(t, source.HTML, reverted.HTML)
	assert.Equal(t, domain.OverrideStatusDraft, reverted.Status)
	require.NotNil(t, reverted.EditorID)
	assert.Equal(t, uint64(2), *reverted.EditorID)

	// source row untouched
	var again domain.ContentOverride
	require.NoError(t, db.First(&again, source.ID).Error)
	assert.Equal(t, domain.OverrideStatusPublished, again.Status)

	history, err := svc.GetHistory(ctx, "/visit", "hours")
	require.NoError(t, err)
	assert.Len(t, history, 2)
}

func TestGetHistory_NewestFirst(t *testing.T) {
	svc, db := setupOverrideService(t)
	page := seedPage(t, db, "/about")

	t1 := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	for _, ts := range []time.Time{t1, t1.Add(time.Hour), t1.Add(2 * time.Hour)} {
		row := domain.ContentOverride{
			PageID: page.ID, BlockKey: "intro",
			HTML:      "<p>rev</p>",
			Status:    domain.OverrideStatusPublished,
			CreatedAt: ts, UpdatedAt: ts,
		}
		require.NoError(t, db.Create(&row).Error)
	}

	history, err := svc.GetHistory(context.Background(), "/about", "intro")
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.True(t, history[0].UpdatedAt.After(history[2].UpdatedAt))
}
