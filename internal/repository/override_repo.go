package repository

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/domain"
	"gorm.io/gorm"
)

// OverrideRepository block override data access
type OverrideRepository interface {
	WithTx(tx *gorm.DB) OverrideRepository
	Create(ctx context.Context, override *domain.ContentOverride) error
	Save(ctx context.Context, override *domain.ContentOverride) error
	FindByID(ctx context.Context, id uint64) (*domain.ContentOverride, error)
	FindDraft(ctx context.Context, pageID uint64, blockKey string) (*domain.ContentOverride, error)
	History(ctx context.Context, pageID uint64, blockKey string) ([]domain.ContentOverride, error)
	ListPublished(ctx context.Context, pageID uint64) ([]domain.ContentOverride, error)
}

type overrideRepository struct {
	db *gorm.DB
}

// NewOverrideRepository creates a new OverrideRepository
func NewOverrideRepository(db *gorm.DB) OverrideRepository {
	return &overrideRepository{db: db}
}

func (r *overrideRepository) WithTx(tx *gorm.DB) OverrideRepository {
	return &overrideRepository{db: tx}
}

func (r *overrideRepository) Create(ctx context.Context, override *domain.ContentOverride) error {
	return r.db.WithContext(ctx).Create(override).Error
}

func (r *overrideRepository) Save(ctx context.Context, override *domain.ContentOverride) error {
	return r.db.WithContext(ctx).Save(override).Error
}

func (r *overrideRepository) FindByID(ctx context.Context, id uint64) (*domain.ContentOverride, error) {
	var override domain.ContentOverride
	err := r.db.WithContext(ctx).First(&override, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

// FindDraft returns the single draft row for a (page, block), nil when absent
func (r *overrideRepository) FindDraft(ctx context.Context, pageID uint64, blockKey string) (*domain.ContentOverride, error) {
	var override domain.ContentOverride
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND block_key = ? AND status = ?",
			pageID, blockKey, domain.OverrideStatusDraft).
		First(&override).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &override, nil
}

// History returns every override row for a (page, block), newest first.
// id breaks equal-timestamp ties so the order is deterministic.
func (r *overrideRepository) History(ctx context.Context, pageID uint64, blockKey string) ([]domain.ContentOverride, error) {
	var overrides []domain.ContentOverride
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND block_key = ?", pageID, blockKey).
		Order("updated_at DESC, id DESC").
		Find(&overrides).Error
	return overrides, err
}

// ListPublished returns all published rows for a page ordered oldest first
// (updated_at ASC, id ASC) so a later row always wins when the resolver
// folds them into the per-block map.
func (r *overrideRepository) ListPublished(ctx context.Context, pageID uint64) ([]domain.ContentOverride, error) {
	var overrides []domain.ContentOverride
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND status = ?", pageID, domain.OverrideStatusPublished).
		Order("updated_at ASC, id ASC").
		Find(&overrides).Error
	return overrides, err
}
