package service

import (
	"context"
	"io"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"github.com/vinealis/vinea-backend/pkg/logger"
	"github.com/vinealis/vinea-backend/pkg/storage"
)

// ImageService media uploads: bytes to object storage, metadata to the DB
type ImageService struct {
	imageRepo repository.ImageRepository
	store     *storage.S3Client
}

// NewImageService creates a new ImageService
func NewImageService(imageRepo repository.ImageRepository, store *storage.S3Client) *ImageService {
	return &ImageService{imageRepo: imageRepo, store: store}
}

// Upload stores the object and records its metadata
func (s *ImageService) Upload(ctx context.Context, fileName, contentType string, size int64, body io.Reader, uploaderID uint64) (*domain.Image, error) {
	if s.store == nil {
		return nil, common.ErrDomain
	}

	key := storage.GenerateKey("images", fileName)
	result, err := s.store.Upload(ctx, key, body, contentType, size)
	if err != nil {
		return nil, err
	}

	image := &domain.Image{
		FileName:    fileName,
		StorageKey:  result.Key,
		URL:         result.URL,
		ContentType: contentType,
		Size:        size,
		UploaderID:  &uploaderID,
	}
	if err := s.imageRepo.Create(ctx, image); err != nil {
		// metadata write failed; drop the orphaned object
		if delErr := s.store.Delete(context.Background(), result.Key); delErr != nil {
			logger.GetLogger().Warn().Err(delErr).Str("key", result.Key).Msg("orphaned object cleanup failed")
		}
		return nil, common.TranslateDBError(err)
	}
	return image, nil
}

// ListImages returns uploaded images, newest first
func (s *ImageService) ListImages(ctx context.Context, page, limit int) ([]domain.Image, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	images, total, err := s.imageRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, common.TranslateDBError(err)
	}
	return images, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// DeleteImage removes the metadata row and the stored object
func (s *ImageService) DeleteImage(ctx context.Context, id uint64) error {
	image, err := s.imageRepo.FindByID(ctx, id)
	if err != nil {
		return common.TranslateDBError(err)
	}
	if image == nil {
		return common.ErrNotFound
	}

	if err := s.imageRepo.Delete(ctx, id); err != nil {
		return common.TranslateDBError(err)
	}

	if s.store != nil {
		if err := s.store.Delete(ctx, image.StorageKey); err != nil {
			logger.GetLogger().Warn().Err(err).Str("key", image.StorageKey).Msg("object delete failed")
		}
	}
	return nil
}
