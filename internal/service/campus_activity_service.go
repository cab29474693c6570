package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/appdotbuilder/canossa-info-system/internal/dto"
	"github.com/appdotbuilder/canossa-info-system/internal/models"
	"github.com/appdotbuilder/canossa-info-system/internal/observability"
	"github.com/appdotbuilder/canossa-info-system/internal/repository"
)

// ErrCampusActivityNotFound indicates no activity matched the given id.
var ErrCampusActivityNotFound = errors.New("campus activity not found")

// FeaturedActivityLimit bounds the featured grid on the landing page.
const FeaturedActivityLimit = 6

const (
	cacheKeyPublishedActivities = "cms:activities:published:v1"
	cacheKeyFeaturedActivities  = "cms:activities:featured:v1"
)

// CampusActivityService manages campus activities.
type CampusActivityService interface {
	Create(ctx context.Context, payload dto.CampusActivityCreateRequest, actor Actor) (dto.CampusActivityResponse, error)
	ListPublished(ctx context.Context) ([]dto.CampusActivityResponse, error)
	ListFeatured(ctx context.Context) ([]dto.CampusActivityResponse, error)
	Update(ctx context.Context, payload dto.CampusActivityUpdateRequest, actor Actor) (dto.CampusActivityResponse, error)
	Delete(ctx context.Context, payload dto.CampusActivityDeleteRequest, actor Actor) (dto.DeleteResult, error)
}

type campusActivityService struct {
	repo      repository.CampusActivityRepository
	validator *validator.Validate
	audit     AuditRecorder
	cache     readCache
	logger    zerolog.Logger
	now       func() time.Time
}

// NewCampusActivityService constructs the activity service. cache may be nil.
func NewCampusActivityService(repo repository.CampusActivityRepository, validator *validator.Validate, audit AuditRecorder, cache *redis.Client, cacheTTL time.Duration, logger zerolog.Logger) CampusActivityService {
	serviceLogger := logger.With().Str("component", "campus_activity_service").Logger()
	return &campusActivityService{
		repo:      repo,
		validator: validator,
		audit:     audit,
		cache:     newReadCache(cache, cacheTTL, serviceLogger),
		logger:    serviceLogger,
		now:       clock,
	}
}

func (s *campusActivityService) Create(ctx context.Context, payload dto.CampusActivityCreateRequest, actor Actor) (dto.CampusActivityResponse, error) {
	payload.Title = strings.TrimSpace(payload.Title)
	if err := s.validator.Struct(payload); err != nil {
		return dto.CampusActivityResponse{}, err
	}

	now := s.now()
	activity := models.CampusActivity{
		Title:        payload.Title,
		Description:  payload.Description,
		Content:      payload.Content,
		ImageURL:     payload.ImageURL.Ptr(),
		ActivityDate: payload.ActivityDate.UTC(),
		IsFeatured:   boolOrDefault(payload.IsFeatured, false),
		IsPublished:  boolOrDefault(payload.IsPublished, true),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, &activity); err != nil {
		return dto.CampusActivityResponse{}, fmt.Errorf("create campus activity: %w", err)
	}

	s.afterMutation(ctx, "created", actor, activity.ID, map[string]interface{}{
		"title":        activity.Title,
		"is_featured":  activity.IsFeatured,
		"is_published": activity.IsPublished,
	})

	return dto.NewCampusActivityResponse(activity), nil
}

func (s *campusActivityService) ListPublished(ctx context.Context) ([]dto.CampusActivityResponse, error) {
	var cached []dto.CampusActivityResponse
	if s.cache.get(ctx, "published_activities", cacheKeyPublishedActivities, &cached) {
		return cached, nil
	}

	items, err := s.repo.ListPublished(ctx)
	if err != nil {
		return nil, fmt.Errorf("list published campus activities: %w", err)
	}

	responses := dto.NewCampusActivityResponses(items)
	s.cache.set(ctx, cacheKeyPublishedActivities, responses)
	return responses, nil
}

func (s *campusActivityService) ListFeatured(ctx context.Context) ([]dto.CampusActivityResponse, error) {
	var cached []dto.CampusActivityResponse
	if s.cache.get(ctx, "featured_activities", cacheKeyFeaturedActivities, &cached) {
		return cached, nil
	}

	items, err := s.repo.ListFeatured(ctx, FeaturedActivityLimit)
	if err != nil {
		return nil, fmt.Errorf("list featured campus activities: %w", err)
	}

	responses := dto.NewCampusActivityResponses(items)
	s.cache.set(ctx, cacheKeyFeaturedActivities, responses)
	return responses, nil
}

func (s *campusActivityService) Update(ctx context.Context, payload dto.CampusActivityUpdateRequest, actor Actor) (dto.CampusActivityResponse, error) {
	payload.Title = trimmedPtr(payload.Title)
	if err := s.validator.Struct(payload); err != nil {
		return dto.CampusActivityResponse{}, err
	}

	current, err := s.repo.GetByID(ctx, payload.ID)
	if err != nil {
		return dto.CampusActivityResponse{}, s.translateLookupError(payload.ID, err)
	}

	fields := map[string]interface{}{}
	changed := make([]string, 0, 7)
	if payload.Title != nil {
		fields["title"] = *payload.Title
		changed = append(changed, "title")
	}
	if payload.Description != nil {
		fields["description"] = *payload.Description
		changed = append(changed, "description")
	}
	if payload.Content != nil {
		fields["content"] = *payload.Content
		changed = append(changed, "content")
	}
	if payload.ImageURL.Set {
		if payload.ImageURL.Valid {
			fields["image_url"] = payload.ImageURL.Value
		} else {
			fields["image_url"] = nil
		}
		changed = append(changed, "image_url")
	}
	if payload.ActivityDate != nil {
		fields["activity_date"] = payload.ActivityDate.UTC()
		changed = append(changed, "activity_date")
	}
	if payload.IsFeatured != nil {
		fields["is_featured"] = *payload.IsFeatured
		changed = append(changed, "is_featured")
	}
	if payload.IsPublished != nil {
		fields["is_published"] = *payload.IsPublished
		changed = append(changed, "is_published")
	}
	fields["updated_at"] = nextUpdatedAt(s.now(), current.UpdatedAt)

	updated, err := s.repo.UpdateFields(ctx, payload.ID, fields)
	if err != nil {
		return dto.CampusActivityResponse{}, s.translateLookupError(payload.ID, err)
	}

	s.afterMutation(ctx, "updated", actor, updated.ID, map[string]interface{}{"fields": changed})

	return dto.NewCampusActivityResponse(updated), nil
}

func (s *campusActivityService) Delete(ctx context.Context, payload dto.CampusActivityDeleteRequest, actor Actor) (dto.DeleteResult, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.DeleteResult{}, err
	}

	removed, err := s.repo.Delete(ctx, payload.ID)
	if err != nil {
		return dto.DeleteResult{}, fmt.Errorf("delete campus activity %d: %w", payload.ID, err)
	}

	if removed {
		s.afterMutation(ctx, "deleted", actor, payload.ID, nil)
	}

	return dto.DeleteResult{Success: removed}, nil
}

func (s *campusActivityService) translateLookupError(id uint, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("campus activity with id %d: %w", id, ErrCampusActivityNotFound)
	}
	return fmt.Errorf("update campus activity %d: %w", id, err)
}

func (s *campusActivityService) afterMutation(ctx context.Context, action string, actor Actor, id uint, metadata map[string]interface{}) {
	s.cache.invalidate(ctx, cacheKeyPublishedActivities, cacheKeyFeaturedActivities)
	observability.ContentMutations().WithLabelValues("campus_activity", action).Inc()

	entityID := id
	recordAudit(ctx, s.audit, s.logger, AuditEntry{
		Actor:      actor,
		Action:     "campus_activity." + action,
		EntityType: "campus_activity",
		EntityID:   &entityID,
		Metadata:   metadata,
	})
}
