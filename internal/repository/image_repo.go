package repository

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/domain"
	"gorm.io/gorm"
)

// ImageRepository image metadata access
type ImageRepository interface {
	Create(ctx context.Context, image *domain.Image) error
	FindByID(ctx context.Context, id uint64) (*domain.Image, error)
	List(ctx context.Context, offset, limit int) ([]domain.Image, int64, error)
	Delete(ctx context.Context, id uint64) error
}

type imageRepository struct {
	db *gorm.DB
}

// NewImageRepository creates a new ImageRepository
func NewImageRepository(db *gorm.DB) ImageRepository {
	return &imageRepository{db: db}
}

func (r *imageRepository) Create(ctx context.Context, image *domain.Image) error {
	return r.db.WithContext(ctx).Create(image).Error
}

func (r *imageRepository) FindByID(ctx context.Context, id uint64) (*domain.Image, error) {
	var image domain.Image
	err := r.db.WithContext(ctx).First(&image, id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &image, nil
}

func (r *imageRepository) List(ctx context.Context, offset, limit int) ([]domain.Image, int64, error) {
	var images []domain.Image
	var total int64

	if err := r.db.WithContext(ctx).Model(&domain.Image{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&images).Error; err != nil {
		return nil, 0, err
	}

	return images, total, nil
}

func (r *imageRepository) Delete(ctx context.Context, id uint64) error {
	return r.db.WithContext(ctx).Delete(&domain.Image{}, id).Error
}
