package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/appdotbuilder/canossa-info-system/internal/models"
)

// CampusActivityRepository exposes persistence helpers for campus activities.
type CampusActivityRepository interface {
	Create(ctx context.Context, activity *models.CampusActivity) error
	GetByID(ctx context.Context, id uint) (models.CampusActivity, error)
	ListPublished(ctx context.Context) ([]models.CampusActivity, error)
	ListFeatured(ctx context.Context, limit int) ([]models.CampusActivity, error)
	UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (models.CampusActivity, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type campusActivityRepository struct {
	db *gorm.DB
}

// NewCampusActivityRepository constructs the repository implementation.
func NewCampusActivityRepository(db *gorm.DB) CampusActivityRepository {
	return &campusActivityRepository{db: db}
}

func (r *campusActivityRepository) Create(ctx context.Context, activity *models.CampusActivity) error {
	return r.db.WithContext(ctx).Create(activity).Error
}

func (r *campusActivityRepository) GetByID(ctx context.Context, id uint) (models.CampusActivity, error) {
	var activity models.CampusActivity
	if err := r.db.WithContext(ctx).First(&activity, id).Error; err != nil {
		return models.CampusActivity{}, err
	}
	return activity, nil
}

func (r *campusActivityRepository) ListPublished(ctx context.Context) ([]models.CampusActivity, error) {
	var items []models.CampusActivity
	err := r.db.WithContext(ctx).
		Where("is_published = ?", true).
		Order("activity_date DESC").
		Order("id DESC").
		Find(&items).Error
	return items, err
}

func (r *campusActivityRepository) ListFeatured(ctx context.Context, limit int) ([]models.CampusActivity, error) {
	query := r.db.WithContext(ctx).
		Where("is_featured = ? AND is_published = ?", true, true).
		Order("activity_date DESC").
		Order("id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	var items []models.CampusActivity
	err := query.Find(&items).Error
	return items, err
}

// UpdateFields applies a column -> value map to a single row and returns the
// stored result. gorm.ErrRecordNotFound is returned when no row matched.
func (r *campusActivityRepository) UpdateFields(ctx context.Context, id uint, fields map[string]interface{}) (models.CampusActivity, error) {
	db := r.db.WithContext(ctx)
	result := db.Model(&models.CampusActivity{}).Where("id = ?", id).Updates(fields)
	if result.Error != nil {
		return models.CampusActivity{}, result.Error
	}
	if result.RowsAffected == 0 {
		return models.CampusActivity{}, gorm.ErrRecordNotFound
	}

	var updated models.CampusActivity
	if err := db.First(&updated, id).Error; err != nil {
		return models.CampusActivity{}, err
	}
	return updated, nil
}

func (r *campusActivityRepository) Delete(ctx context.Context, id uint) (bool, error) {
	result := r.db.WithContext(ctx).Delete(&models.CampusActivity{}, id)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
