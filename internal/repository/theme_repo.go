package repository

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/domain"
	"gorm.io/gorm"
)

// ThemeRepository theme default/override data access
type ThemeRepository interface {
	WithTx(tx *gorm.DB) ThemeRepository
	ListDefaults(ctx context.Context) ([]domain.ThemeDefault, error)
	FindDefaultByID(ctx context.Context, id uint64) (*domain.ThemeDefault, error)
	ListOverrides(ctx context.Context) ([]domain.ThemeOverride, error)
	FindOverrideByDefault(ctx context.Context, defaultID uint64) (*domain.ThemeOverride, error)
	CreateOverride(ctx context.Context, override *domain.ThemeOverride) error
	SaveOverride(ctx context.Context, override *domain.ThemeOverride) error
	DeleteOverride(ctx context.Context, defaultID uint64) error
}

type themeRepository struct {
	db *gorm.DB
}

// NewThemeRepository creates a new ThemeRepository
func NewThemeRepository(db *gorm.DB) ThemeRepository {
	return &themeRepository{db: db}
}

func (r *themeRepository) WithTx(tx *gorm.DB) ThemeRepository {
	return &themeRepository{db: tx}
}

func (r *themeRepository) ListDefaults(ctx context.Context) ([]domain.ThemeDefault, error) {
	var defaults []domain.ThemeDefault
	err := r.db.WithContext(ctx).Order("theme_key ASC").Find(&defaults).Error
	return defaults, err
}

func (r *themeRepository) FindDefaultByID(ctx context.Context, id uint64) (*domain.ThemeDefault, error) {
	var def domain.ThemeDefault
	err := r.db.WithContext(ctx).First(&def, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &def, nil
}

// ListOverrides returns overrides oldest first (updated_at ASC, id ASC) so
// the resolver applies later writes last. Duplicate rows per default should
// not exist, but the ordering keeps the merge deterministic if they do.
func (r *themeRepository) ListOverrides(ctx context.Context) ([]domain.ThemeOverride, error) {
	var overrides []domain.ThemeOverride
	err := r.db.WithContext(ctx).
		Preload("Default").
		Order("updated_at ASC, id ASC").
		Find(&overrides).Error
	return overrides, err
}

func (r *themeRepository) FindOverrideByDefault(ctx context.Context, defaultID uint64) (*domain.ThemeOverride, error) {
	var override domain.ThemeOverride
	err := r.db.WithContext(ctx).Where("default_id = ?", defaultID).First(&override).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

func (r *themeRepository) CreateOverride(ctx context.Context, override *domain.ThemeOverride) error {
	return r.db.WithContext(ctx).Create(override).Error
}

func (r *themeRepository) SaveOverride(ctx context.Context, override *domain.ThemeOverride) error {
	return r.db.WithContext(ctx).Save(override).Error
}

func (r *themeRepository) DeleteOverride(ctx context.Context, defaultID uint64) error {
	return r.db.WithContext(ctx).
		Where("default_id = ?", defaultID).
		Delete(&domain.ThemeOverride{}).Error
}
