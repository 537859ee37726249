package repository

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/domain"
	"gorm.io/gorm"
)

// PageVersionRepository page version data access
type PageVersionRepository interface {
	WithTx(tx *gorm.DB) PageVersionRepository
	Create(ctx context.Context, version *domain.PageVersion) error
	Save(ctx context.Context, version *domain.PageVersion) error
	FindByID(ctx context.Context, id uint64) (*domain.PageVersion, error)
	FindDraft(ctx context.Context, pageID uint64) (*domain.PageVersion, error)
	ListByPage(ctx context.Context, pageID uint64) ([]domain.PageVersion, error)
	NextVersion(ctx context.Context, pageID uint64) (uint, error)
	Delete(ctx context.Context, id uint64) error
}

type pageVersionRepository struct {
	db *gorm.DB
}

// NewPageVersionRepository creates a new PageVersionRepository
func NewPageVersionRepository(db *gorm.DB) PageVersionRepository {
	return &pageVersionRepository{db: db}
}

func (r *pageVersionRepository) WithTx(tx *gorm.DB) PageVersionRepository {
	return &pageVersionRepository{db: tx}
}

func (r *pageVersionRepository) Create(ctx context.Context, version *domain.PageVersion) error {
	return r.db.WithContext(ctx).Create(version).Error
}

func (r *pageVersionRepository) Save(ctx context.Context, version *domain.PageVersion) error {
	return r.db.WithContext(ctx).Save(version).Error
}

func (r *pageVersionRepository) FindByID(ctx context.Context, id uint64) (*domain.PageVersion, error) {
	var version domain.PageVersion
	err := r.db.WithContext(ctx).First(&version, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

// FindDraft returns the page's in-progress draft, nil when none exists
func (r *pageVersionRepository) FindDraft(ctx context.Context, pageID uint64) (*domain.PageVersion, error) {
	var version domain.PageVersion
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND status = ?", pageID, domain.VersionStatusDraft).
		First(&version).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &version, nil
}

func (r *pageVersionRepository) ListByPage(ctx context.Context, pageID uint64) ([]domain.PageVersion, error) {
	var versions []domain.PageVersion
	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("version DESC").
		Find(&versions).Error
	return versions, err
}

// NextVersion returns MAX(version)+1 for the page, 1 when none exist
func (r *pageVersionRepository) NextVersion(ctx context.Context, pageID uint64) (uint, error) {
	var maxVersion *uint
	err := r.db.WithContext(ctx).
		Model(&domain.PageVersion{}).
		Where("page_id = ?", pageID).
		Select("MAX(version)").
		Scan(&maxVersion).Error
	if err != nil {
		return 1, err
	}
	if maxVersion == nil {
		return 1, nil
	}
	return *maxVersion + 1, nil
}

func (r *pageVersionRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.PageVersion{}, id).Error
}
