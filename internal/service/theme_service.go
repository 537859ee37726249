package service

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"gorm.io/gorm"
)

// ThemeService handles theme tokens: seeded defaults plus editor overrides
type ThemeService struct {
	db        *gorm.DB
	themeRepo repository.ThemeRepository
	recorder  AuditRecorder
}

// NewThemeService creates a new ThemeService
func NewThemeService(db *gorm.DB, themeRepo repository.ThemeRepository, recorder AuditRecorder) *ThemeService {
	return &ThemeService{
		db:        db,
		themeRepo: themeRepo,
		recorder:  recorder,
	}
}

// ResolveTheme overlays overrides onto the defaults. Overrides are applied
// in ascending updated_at order (id breaks ties) so a later write always
// wins, even if duplicate rows for one default slip past the upsert path.
func (s *ThemeService) ResolveTheme(ctx context.Context) (map[string]string, error) {
	defaults, err := s.themeRepo.ListDefaults(ctx)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	theme := make(map[string]string, len(defaults))
	for _, def := range defaults {
		theme[def.Key] = def.Value
	}

	overrides, err := s.themeRepo.ListOverrides(ctx)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	for _, o := range overrides {
		if o.Default != nil {
			theme[o.Default.Key] = o.Value
		}
	}
	return theme, nil
}

// ListDefaults returns all theme defaults
func (s *ThemeService) ListDefaults(ctx context.Context) ([]domain.ThemeDefault, error) {
	defaults, err := s.themeRepo.ListDefaults(ctx)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return defaults, nil
}

// ListOverrides returns all theme overrides
func (s *ThemeService) ListOverrides(ctx context.Context) ([]domain.ThemeOverride, error) {
	overrides, err := s.themeRepo.ListOverrides(ctx)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return overrides, nil
}

// SaveOverride upserts the override for a theme default: create when
// absent, mutate in place when present. Audited either way, in the same
// transaction as the write.
func (s *ThemeService) SaveOverride(ctx context.Context, defaultID uint64, req *domain.SaveThemeOverrideRequest, editorID uint64) (*domain.ThemeOverride, error) {
	def, err := s.themeRepo.FindDefaultByID(ctx, defaultID)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if def == nil {
		return nil, common.ErrThemeDefaultNotFound
	}

	var saved *domain.ThemeOverride
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overrides := s.themeRepo.WithTx(tx)

		existing, err := overrides.FindOverrideByDefault(ctx, defaultID)
		if err != nil {
			return err
		}

		if existing != nil {
			before := *existing
			existing.Value = req.Value
			existing.EditorID = &editorID
			if err := overrides.SaveOverride(ctx, existing); err != nil {
				return err
			}
			saved = existing
			return s.recorder.RecordUpdate(ctx, tx, existing, before)
		}

		saved = &domain.ThemeOverride{
			DefaultID: defaultID,
			Value:     req.Value,
			EditorID:  &editorID,
		}
		if err := overrides.CreateOverride(ctx, saved); err != nil {
			return err
		}
		return s.recorder.RecordCreate(ctx, tx, saved)
	})
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	saved.Default = def
	return saved, nil
}

// DeleteOverride resets a theme token back to its default value. The removal
// is audited like a save, in the same transaction as the delete.
func (s *ThemeService) DeleteOverride(ctx context.Context, defaultID uint64, editorID uint64) error {
	existing, err := s.themeRepo.FindOverrideByDefault(ctx, defaultID)
	if err != nil {
		return common.TranslateDBError(err)
	}
	if existing == nil {
		return common.ErrNotFound
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.themeRepo.WithTx(tx).DeleteOverride(ctx, defaultID); err != nil {
			return err
		}
		existing.EditorID = &editorID
		return s.recorder.RecordDelete(ctx, tx, existing)
	})
	return common.TranslateDBError(err)
}
