package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/models"
	"github.com/appdotbuilder/canossa-info-system/internal/observability"
	"github.com/appdotbuilder/canossa-info-system/internal/repository"
)

// ErrPageContentNotFound indicates no page matched the given id.
var ErrPageContentNotFound = errors.New("page content not found")

const cacheKeyPageBySlugPrefix = "cms:pages:slug:v1:"

// PageContentService manages static pages.
type PageContentService interface {
	Create(ctx context.Context, payload dto.PageContentCreateRequest, actor Actor) (dto.PageContentResponse, error)
	ListAll(ctx context.Context) ([]dto.PageContentResponse, error)
	GetPublishedBySlug(ctx context.Context, req dto.PageBySlugRequest) (*dto.PageContentResponse, error)
	Update(ctx context.Context, payload dto.PageContentUpdateRequest, actor Actor) (dto.PageContentResponse, error)
}

type pageContentService struct {
	repo      repository.PageContentRepository
	validator *validator.Validate
	audit     AuditRecorder
	cache     readCache
	policy    *bluemonday.Policy
	logger    zerolog.Logger
	now       func() time.Time
}

// NewPageContentService constructs the page service. cache may be nil.
func NewPageContentService(repo repository.PageContentRepository, validator *validator.Validate, audit AuditRecorder, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) PageContentService {
	serviceLogger := logger.With().Str("component", "page_content_service").Logger()
	return &pageContentService{
		repo:      repo,
		validator: validator,
		audit:     audit,
		cache:     newReadCache(cache, cacheTTL, serviceLogger),
		policy:    newContentPolicy(),
		logger:    serviceLogger,
		now:       clock,
	}
}

func pageCacheKey(slug string) string {
	return cacheKeyPageBySlugPrefix + slug
}

func (s *pageContentService) Create(ctx context.Context, payload dto.PageContentCreateRequest, actor Actor) (dto.PageContentResponse, error) {
	payload.PageSlug = strings.TrimSpace(payload.PageSlug)
	payload.Title = strings.TrimSpace(payload.Title)
	if err := s.validator.Struct(payload); err != nil {
		return dto.PageContentResponse{}, err
	}

	now := s.now()
	page := models.PageContent{
		PageSlug:        payload.PageSlug,
		Title:           payload.Title,
		Content:         payload.Content,
		MetaDescription: payload.MetaDescription.Ptr(),
		IsPublished:     boolOrDefault(payload.IsPublished, true),
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, &page); err != nil {
		return dto.PageContentResponse{}, fmt.Errorf("create page %q: %w", page.PageSlug, err)
	}

	s.afterMutation(ctx, "created", actor, page, map[string]interface{}{
		"page_slug":    page.PageSlug,
		"is_published": page.IsPublished,
	})

	return dto.NewPageContentResponse(page), nil
}

func (s *pageContentService) ListAll(ctx context.Context) ([]dto.PageContentResponse, error) {
	pages, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}

	responses := make([]dto.PageContentResponse, 0, len(pages))
	for _, page := range pages {
		responses = append(responses, dto.NewPageContentResponse(page))
	}
	return responses, nil
}

// GetPublishedBySlug returns nil when the page is missing or unpublished.
func (s *pageContentService) GetPublishedBySlug(ctx context.Context, req dto.PageBySlugRequest) (*dto.PageContentResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, err
	}

	key := pageCacheKey(req.Slug)
	var cached dto.PageContentResponse
	if s.cache.get(ctx, "page_by_slug", key, &cached) {
		return &cached, nil
	}

	page, err := s.repo.GetPublishedBySlug(ctx, req.Slug)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get page %q: %w", req.Slug, err)
	}

	response := dto.NewPageContentResponse(page)
	response.Content = s.policy.Sanitize(response.Content)
	s.cache.set(ctx, key, response)
	return &response, nil
}

func (s *pageContentService) Update(ctx context.Context, payload dto.PageContentUpdateRequest, actor Actor) (dto.PageContentResponse, error) {
	payload.Title = trimmedPtr(payload.Title)
	if err := s.validator.Struct(payload); err != nil {
		return dto.PageContentResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, payload.ID)
	if err != nil {
		return dto.PageContentResponse{}, s.translateLookupError(payload.ID, err)
	}

	fields := map[string]interface{}{}
	changed := make([]string, 0, 4)
	if payload.Title != nil {
		fields["title"] = *payload.Title
		changed = append(changed, "title")
	}
	if payload.Content != nil {
		fields["content"] = *payload.Content
		changed = append(changed, "content")
	}
	if payload.MetaDescription.Set {
		if payload.MetaDescription.Valid {
			fields["meta_description"] = payload.MetaDescription.Value
		} else {
			fields["meta_description"] = nil
		}
		changed = append(changed, "meta_description")
	}
	if payload.IsPublished != nil {
		fields["is_published"] = *payload.IsPublished
		changed = append(changed, "is_published")
	}
	if payload.PageSlug != nil && *payload.PageSlug != current.PageSlug {
		s.logger.Debug().Uint("page_id", current.ID).Msg("ignoring page_slug change on update")
	}
	fields["updated_at"] = nextUpdatedAt(s.now(), current.UpdatedAt)

	updated, err := s.repo.UpdateFields(ctx, payload.ID, fields)
	if err != nil {
		return dto.PageContentResponse{}, s.translateLookupError(payload.ID, err)
	}

	s.afterMutation(ctx, "updated", actor, updated, map[string]interface{}{"fields": changed})

	return dto.NewPageContentResponse(updated), nil
}

func (s *pageContentService) translateLookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("page with id %d: %w", id, ErrPageContentNotFound)
	}
	return fmt.Errorf("update page %d: %w", id, err)
}

func (s *pageContentService) afterMutation(ctx context.Context, action string, actor Actor, page models.PageContent, metadata map[string]interface{}) {
	s.cache.invalidate(ctx, pageCacheKey(page.PageSlug))
	observability.ContentMutations().WithLabelValues("page_content", action).Inc()

	entityID := page.ID
	recordAudit(ctx, s.audit, s.logger, AuditEntry{
		Actor:      actor,
		Action:     "page_content." + action,
		EntityType: "page_content",
		EntityID:   &entityID,
		Metadata:   metadata,
	})
}

// newContentPolicy allows the markup editors put into page bodies and strips
// scripts and event handlers.
func newContentPolicy() *bluemonday.Policy {
	policy := bluemonday.UGCPolicy()
	policy.AllowAttrs("target").OnElements("a")
	return policy
}
