package service

import (
	"context"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"github.com/vinealis/vinea-backend/pkg/sanitize"
	"gorm.io/gorm"
)

// OverrideService handles block-level content overrides: the quick-edit
// draft/publish workflow layered over a page's blocks
type OverrideService struct {
	db           *gorm.DB
	pageRepo     repository.PageRepository
	overrideRepo repository.OverrideRepository
	recorder     AuditRecorder
	sanitizer    *sanitize.Policy
}

// NewOverrideService creates a new OverrideService
func NewOverrideService(db *gorm.DB, pageRepo repository.PageRepository, overrideRepo repository.OverrideRepository, recorder AuditRecorder, sanitizer *sanitize.Policy) *OverrideService {
	return &OverrideService{
		db:           db,
		pageRepo:     pageRepo,
		overrideRepo: overrideRepo,
		recorder:     recorder,
		sanitizer:    sanitizer,
	}
}

// ResolvePublishedBlocks returns the effective published HTML per block key
// for a route. Within a block the published row with the latest updated_at
// wins; equal timestamps fall back to insertion order (row id).
func (s *OverrideService) ResolvePublishedBlocks(ctx context.Context, route string) (map[string]string, error) {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}

	rows, err := s.overrideRepo.ListPublished(ctx, page.ID)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}

	// rows arrive oldest first, so the last write per block wins
	blocks := make(map[string]string, len(rows))
	for _, row := range rows {
		blocks[row.BlockKey] = row.HTML
	}
	return blocks, nil
}

// SaveDraft upserts the single draft row for a (page, block): an existing
// draft is mutated in place, otherwise a new draft row is inserted. The
// status never changes here.
func (s *OverrideService) SaveDraft(ctx context.Context, route string, req *domain.SaveBlockRequest, editorID uint64) (*domain.ContentOverride, error) {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}

	html := s.sanitizer.Sanitize(req.HTML)

	var draft *domain.ContentOverride
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overrides := s.overrideRepo.WithTx(tx)

		existing, err := overrides.FindDraft(ctx, page.ID, req.BlockKey)
		if err != nil {
			return err
		}

		if existing != nil {
			before := *existing
			existing.HTML = html
			existing.Note = req.Note
			existing.EditorID = &editorID
			if err := overrides.Save(ctx, existing); err != nil {
				return err
			}
			draft = existing
			return s.recorder.RecordUpdate(ctx, tx, existing, before)
		}

		draft = &domain.ContentOverride{
			PageID:   page.ID,
			BlockKey: req.BlockKey,
			HTML:     html,
			Status:   domain.OverrideStatusDraft,
			Note:     req.Note,
			EditorID: &editorID,
		}
		if err := overrides.Create(ctx, draft); err != nil {
			return err
		}
		return s.recorder.RecordCreate(ctx, tx, draft)
	})
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return draft, nil
}

// PublishDraft flips an override row to published in place. Prior published
// rows for the block stay untouched, preserving the history.
func (s *OverrideService) PublishDraft(ctx context.Context, id uint64, editorID uint64) (*domain.ContentOverride, error) {
	var published *domain.ContentOverride
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overrides := s.overrideRepo.WithTx(tx)

		override, err := overrides.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if override == nil {
			return common.ErrOverrideNotFound
		}

		before := *override
		override.Status = domain.OverrideStatusPublished
		override.EditorID = &editorID
		if err := overrides.Save(ctx, override); err != nil {
			return err
		}

		published = override
		return s.recorder.RecordUpdate(ctx, tx, override, before)
	})
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return published, nil
}

// Revert copies a historical row into a fresh draft. The source row is
// never mutated; history stays intact.
func (s *OverrideService) Revert(ctx context.Context, id uint64, editorID uint64) (*domain.ContentOverride, error) {
	var draft *domain.ContentOverride
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		overrides := s.overrideRepo.WithTx(tx)

		source, err := overrides.FindByID(ctx, id)
		if err != nil {
			return err
		}
		if source == nil {
			return common.ErrOverrideNotFound
		}

		draft = &domain.ContentOverride{
			PageID:   source.PageID,
			BlockKey: source.BlockKey,
			HTML:     source.HTML,
			Status:   domain.OverrideStatusDraft,
			Note:     source.Note,
			EditorID: &editorID,
		}
		if err := overrides.Create(ctx, draft); err != nil {
			return err
		}
		return s.recorder.RecordCreate(ctx, tx, draft)
	})
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return draft, nil
}

// GetHistory returns all override rows for a (route, block), newest first
func (s *OverrideService) GetHistory(ctx context.Context, route, blockKey string) ([]domain.ContentOverride, error) {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}

	history, err := s.overrideRepo.History(ctx, page.ID, blockKey)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return history, nil
}
