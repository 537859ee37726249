package repository

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/domain"
	"gorm.io/gorm"
)

// PageRepository page data access
type PageRepository interface {
	WithTx(tx *gorm.DB) PageRepository
	Create(ctx context.Context, page *domain.Page) error
	FindByRoute(ctx context.Context, route string) (*domain.Page, error)
	FindByID(ctx context.Context, id uint64) (*domain.Page, error)
	List(ctx context.Context, offset, limit int) ([]domain.Page, int64, error)
	UpdateCurrentVersion(ctx context.Context, pageID uint64, versionID uint64) error
	Delete(ctx context.Context, id uint64) error
}

type pageRepository struct {
	db *gorm.DB
}

// NewPageRepository creates a new PageRepository
func NewPageRepository(db *gorm.DB) PageRepository {
	return &pageRepository{db: db}
}

func (r *pageRepository) WithTx(tx *gorm.DB) PageRepository {
	return &pageRepository{db: tx}
}

func (r *pageRepository) Create(ctx context.Context, page *domain.Page) error {
	page.Route = domain.NormalizeRoute(page.Route)
	return r.db.WithContext(ctx).Create(page).Error
}

// FindByRoute returns nil without error when no page exists for the route
func (r *pageRepository) FindByRoute(ctx context.Context, route string) (*domain.Page, error) {
	var page domain.Page
	err := r.db.WithContext(ctx).
		Preload("CurrentVersion").
		Where("route = ?", domain.NormalizeRoute(route)).
		First(&page).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) FindByID(ctx context.Context, id uint64) (*domain.Page, error) {
	var page domain.Page
	err := r.db.WithContext(ctx).First(&page, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &page, nil
}

func (r *pageRepository) List(ctx context.Context, offset, limit int) ([]domain.Page, int64, error) {
	var pages []domain.Page
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.Page{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("route ASC").
		Offset(offset).
		Limit(limit).
		Find(&pages).Error; err != nil {
		return nil, 0, err
	}

	return pages, total, nil
}

func (r *pageRepository) UpdateCurrentVersion(ctx context.Context, pageID uint64, versionID uint64) error {
	return r.db.WithContext(ctx).
		Model(&domain.Page{}).
		Where("id = ?", pageID).
		Update("current_version_id", versionID).Error
}

func (r *pageRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Page{}, id).Error
}
