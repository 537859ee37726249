package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
)

func setupThemeService(t *testing.T) (*ThemeService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	recorder := NewAuditRecorder(repository.NewAuditRepository(db))
	svc := NewThemeService(db, repository.NewThemeRepository(db), recorder)
	return svc, db
}

func seedThemeDefault(t *testing.T, db *gorm.DB, key, value string) *domain.ThemeDefault {
	t.Helper()
	def := &domain.ThemeDefault{Key: key, Value: value}
	require.NoError(t, db.Create(def).Error)
	return def
}

func TestResolveTheme_DefaultsOnly(t *testing.T) {
	svc, db := setupThemeService(t)
	seedThemeDefault(t, db, "color.primary", "#5b2333")
	seedThemeDefault(t, db, "font.body", "serif")

	theme, err := svc.ResolveTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]string{
		"color.primary": "#5b2333",
		"font.body":     "serif",
	}, theme)
}

func TestResolveTheme_OverrideWins(t *testing.T) {
	svc, db := setupThemeService(t)
	def := seedThemeDefault(t, db, "color.primary", "#5b2333")
	seedThemeDefault(t, db, "font.body", "serif")

	_, err := svc.SaveOverride(context.Background(), def.ID, &domain.SaveThemeOverrideRequest{Value: "#112233"}, 1)
	require.NoError(t, err)

	theme, err := svc.ResolveTheme(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "#112233", theme["color.primary"])
	assert.Equal(t, "serif", theme["font.body"])
}

func TestSaveOverride_UpsertsSingleRow(t *testing.T) {
	svc, db := setupThemeService(t)
	def := seedThemeDefault(t, db, "color.accent", "#b59410")

	ctx := context.Background()
	first, err := svc.SaveOverride(ctx, def.ID, &domain.SaveThemeOverrideRequest{Value: "#111111"}, 1)
	require.NoError(t, err)
	second, err := svc.SaveOverride(ctx, def.ID, &domain.SaveThemeOverrideRequest{Value: "#222222"}, 2)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "#222222", second.Value)

	var count int64
	require.NoError(t, db.Model(&domain.ThemeOverride{}).Where("default_id = ?", def.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Equal(t, int64(2), auditCount(t, db, "theme_override"))
}

func TestSaveOverride_UnknownDefault(t *testing.T) {
	svc, _ := setupThemeService(t)

	_, err := svc.SaveOverride(context.Background(), 9999, &domain.SaveThemeOverrideRequest{Value: "#000"}, 1)
	assert.ErrorIs(t, err, common.ErrThemeDefaultNotFound)
}

func TestDeleteOverride_RestoresDefault(t *testing.T) {
	svc, db := setupThemeService(t)
	def := seedThemeDefault(t, db, "radius.card", "0.5rem")

	ctx := context.Background()
	_, err := svc.SaveOverride(ctx, def.ID, &domain.SaveThemeOverrideRequest{Value: "1rem"}, 1)
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOverride(ctx, def.ID, 2))

	theme, err := svc.ResolveTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "0.5rem", theme["radius.card"])

	assert.ErrorIs(t, svc.DeleteOverride(ctx, def.ID, 2), common.ErrNotFound)
}

func TestDeleteOverride_IsAudited(t *testing.T) {
	svc, db := setupThemeService(t)
	def := seedThemeDefault(t, db, "spacing.section", "4rem")

	ctx := context.Background()
	_, err := svc.SaveOverride(ctx, def.ID, &domain.SaveThemeOverrideRequest{Value: "6rem"}, 1)
	require.NoError(t, err)
	require.NoError(t, svc.DeleteOverride(ctx, def.ID, 7))

	assert.Equal(t, int64(2), auditCount(t, db, "theme_override"))

	var last domain.AuditLog
	require.NoError(t, db.Where("entity_type = ?", "theme_override").Order("id DESC").First(&last).Error)
	assert.Equal(t, domain.AuditActionDeleted, last.Action)
	require.NotNil(t, last.ActorID)
	assert.Equal(t, uint64(7), *last.ActorID)
}
