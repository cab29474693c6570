package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/appdotbuilder/canossa-info-system/internal/models"
)

// PageContentRepository exposes persistence helpers for static pages.
type PageContentRepository interface {
	Create(ctx context.Context, page *models.PageContent) error
	GetByID(ctx context.Context, id uint) (models.PageContent, error)
	GetPublishedBySlug(ctx context.Context, slug string) (models.PageContent, error)
	ListAll(ctx context.Context) ([]models.PageContent, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (models.PageContent, error)
}

type pageContentRepository struct {
	db *gorm.DB
}

// NewPageContentRepository constructs the repository implementation.
func NewPageContentRepository(db *gorm.DB) PageContentRepository {
	return &pageContentRepository{db: db}
}

func (r *pageContentRepository) Create(ctx context.Context, page *models.PageContent) error {
	return r.db.WithContext(ctx).Create(page).Error
}

func (r *pageContentRepository) GetByID(ctx context.Context, id uint) (models.PageContent, error) {
	var page models.PageContent
	if err := r.db.WithContext(ctx).First(&page, id).Error; err != nil {
		return models.PageContent{}, err
	}
	return page, nil
}

func (r *pageContentRepository) GetPublishedBySlug(ctx context.Context, slug string) (models.PageContent, error) {
	var page models.PageContent
	err := r.db.WithContext(ctx).
		Where("page_slug = ? AND is_published = ?", slug, true).
		First(&page).Error
	if err != nil {
		return models.PageContent{}, err
	}
	return page, nil
}

func (r *pageContentRepository) ListAll(ctx context.Context) ([]models.PageContent, error) {
	var pages []models.PageContent
	err := r.db.WithContext(ctx).
		Order("updated_at DESC").
		Order("id DESC").
		Find(&pages).Error
	return pages, err
}

// UpdateFields applies a column -> value map to a single page. The slug column
// is stripped so it can never change through this path.
func (r *pageContentRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (models.PageContent, error) {
	delete(fields, "page_slug")

	db := r.db.WithContext(ctx)
	result := db.Model(&models.PageContent{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return models.PageContent{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.PageContent{}, gorm.ErrRecordNotFound
	}

	var updated models.PageContent
	if err := db.First(&updated, id).Error; err != nil {
		return models.PageContent{}, err
	}
	return updated, nil
}
