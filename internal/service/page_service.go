package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vinealis/vinea-backend/internal/common"
	"github.com/vinealis/vinea-backend/internal/domain"
	"github.com/vinealis/vinea-backend/internal/repository"
	"gorm.io/gorm"
)

// PageService handles pages and the versioned draft/publish workflow
type PageService struct {
	db          *gorm.DB
	pageRepo    repository.PageRepository
	versionRepo repository.PageVersionRepository
	recorder    AuditRecorder
}

// NewPageService creates a new PageService
func NewPageService(db *gorm.DB, pageRepo repository.PageRepository, versionRepo repository.PageVersionRepository, recorder AuditRecorder) *PageService {
	return &PageService{
		db:          db,
		pageRepo:    pageRepo,
		versionRepo: versionRepo,
		recorder:    recorder,
	}
}

// ListPages returns pages with pagination
func (s *PageService) ListPages(ctx context.Context, page, limit int) ([]domain.Page, *common.Meta, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}

	pages, total, err := s.pageRepo.List(ctx, (page-1)*limit, limit)
	if err != nil {
		return nil, nil, common.TranslateDBError(err)
	}
	return pages, &common.Meta{Page: page, Limit: limit, Total: total}, nil
}

// CreatePage registers a new page with its default content
func (s *PageService) CreatePage(ctx context.Context, req *domain.CreatePageRequest) (*domain.Page, error) {
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}

	newPage := &domain.Page{
		Route:          req.Route,
		Title:          req.Title,
		DefaultContent: string(req.Content),
	}
	if err := s.pageRepo.Create(ctx, newPage); err != nil {
		return nil, common.TranslateDBError(err)
	}
	return newPage, nil
}

// GetPage returns the page row for a route
func (s *PageService) GetPage(ctx context.Context, route string) (*domain.Page, error) {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}
	return page, nil
}

// DeletePage removes a page
func (s *PageService) DeletePage(ctx context.Context, route string) error {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return common.TranslateDBError(err)
	}
	if page == nil {
		return common.ErrPageNotFound
	}
	return common.TranslateDBError(s.pageRepo.Delete(ctx, page.ID))
}

// GetPageContent resolves the effective content for a route: the current
// published version's content replaces the default wholesale when present,
// otherwise the page's default content is served.
func (s *PageService) GetPageContent(ctx context.Context, route string) (*domain.PageContentResponse, error) {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}

	resp := &domain.PageContentResponse{
		Route:   page.Route,
		Title:   page.Title,
		Content: json.RawMessage(page.DefaultContent),
	}
	if page.CurrentVersion != nil && page.CurrentVersion.Content != "" {
		resp.Version = page.CurrentVersion.Version
		resp.Content = json.RawMessage(page.CurrentVersion.Content)
	}
	return resp, nil
}

// ListVersions returns a page's full version history, newest first
func (s *PageService) ListVersions(ctx context.Context, route string) ([]domain.PageVersion, error) {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}

	versions, err := s.versionRepo.ListByPage(ctx, page.ID)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return versions, nil
}

// SaveDraftVersion upserts the page's single draft version: an existing
// draft is mutated in place, otherwise a new draft with the next version
// number is inserted. The (page_id, draft_flag) unique index backstops the
// one-draft invariant against racing writers.
func (s *PageService) SaveDraftVersion(ctx context.Context, route string, req *domain.SaveVersionRequest, authorID uint64) (*domain.PageVersion, error) {
	if err := validateContent(req.Content); err != nil {
		return nil, err
	}

	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}

	var draft *domain.PageVersion
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		versions := s.versionRepo.WithTx(tx)

		existing, err := versions.FindDraft(ctx, page.ID)
		if err != nil {
			return err
		}

		if existing != nil {
			before := *existing
			existing.Content = string(req.Content)
			existing.ChangeNote = req.ChangeNote
			existing.AuthorID = &authorID
			existing.ContentHash = contentHash(req.Content)
			if err := versions.Save(ctx, existing); err != nil {
				return err
			}
			draft = existing
			return s.recorder.RecordUpdate(ctx, tx, existing, before)
		}

		next, err := versions.NextVersion(ctx, page.ID)
		if err != nil {
			return err
		}
		isDraft := true
		draft = &domain.PageVersion{
			PageID:      page.ID,
			Version:     next,
			Content:     string(req.Content),
			Status:      domain.VersionStatusDraft,
			DraftFlag:   &isDraft,
			AuthorID:    &authorID,
			ChangeNote:  req.ChangeNote,
			ContentHash: contentHash(req.Content),
		}
		if err := versions.Create(ctx, draft); err != nil {
			return err
		}
		return s.recorder.RecordCreate(ctx, tx, draft)
	})
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return draft, nil
}

// Publish promotes the page's draft atomically: the current published
// version is archived, the draft becomes published and the page pointer is
// repointed, all inside one transaction. Partial application cannot commit.
func (s *PageService) Publish(ctx context.Context, route string, actorID uint64) (*domain.PageVersion, error) {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	if page == nil {
		return nil, common.ErrPageNotFound
	}

	var published *domain.PageVersion
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		versions := s.versionRepo.WithTx(tx)
		pages := s.pageRepo.WithTx(tx)

		draft, err := versions.FindDraft(ctx, page.ID)
		if err != nil {
			return err
		}
		if draft == nil {
			return common.ErrNoDraftVersion
		}

		if page.CurrentVersionID != nil {
			current, err := versions.FindByID(ctx, *page.CurrentVersionID)
			if err != nil {
				return err
			}
			if current != nil {
				currentBefore := *current
				current.Status = domain.VersionStatusArchived
				if err := versions.Save(ctx, current); err != nil {
					return err
				}
				if err := s.recorder.RecordUpdate(ctx, tx, current, currentBefore); err != nil {
					return err
				}
			}
		}

		before := *draft
		now := time.Now()
		draft.Status = domain.VersionStatusPublished
		draft.DraftFlag = nil
		draft.PublishedAt = &now
		draft.AuthorID = &actorID
		if err := versions.Save(ctx, draft); err != nil {
			return err
		}

		if err := pages.UpdateCurrentVersion(ctx, page.ID, draft.ID); err != nil {
			return err
		}

		published = draft
		return s.recorder.RecordUpdate(ctx, tx, draft, before)
	})
	if err != nil {
		return nil, common.TranslateDBError(err)
	}
	return published, nil
}

// DiscardDraft deletes the page's unpublished draft. Published and archived
// versions are never deleted.
func (s *PageService) DiscardDraft(ctx context.Context, route string) error {
	page, err := s.pageRepo.FindByRoute(ctx, route)
	if err != nil {
		return common.TranslateDBError(err)
	}
	if page == nil {
		return common.ErrPageNotFound
	}

	draft, err := s.versionRepo.FindDraft(ctx, page.ID)
	if err != nil {
		return common.TranslateDBError(err)
	}
	if draft == nil {
		return common.ErrNoDraftVersion
	}

	return common.TranslateDBError(s.versionRepo.Delete(ctx, draft.ID))
}

// validateContent rejects payloads that do not parse into the block list
// shape before any mutation is attempted
func validateContent(raw json.RawMessage) error {
	var content domain.PageContent
	if err := json.Unmarshal(raw, &content); err != nil {
		return fmt.Errorf("%w: content must be a block list: %v", common.ErrInvalidInput, err)
	}
	return nil
}

func contentHash(raw []byte) string {
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:])
}
