package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/appdotbuilder/canossa-info-system/internal/models"
)

// AdministratorRepository persists administrator accounts.
type AdministratorRepository interface {
	Create(ctx context.Context, admin *models.Administrator) error
	GetByUsername(ctx context.Context, username string) (models.Administrator, error)
	GetByID(ctx context.Context, id uint) (models.Administrator, error)
	UpdateLastLogin(ctx context.Context, id uint, at time.Time) error
}

type administratorRepository struct {
	db *gorm.DB
}

// NewAdministratorRepository constructs the repository implementation.
func NewAdministratorRepository(db *gorm.DB) AdministratorRepository {
	return &administratorRepository{db: db}
}

func (r *administratorRepository) Create(ctx context.Context, admin *models.Administrator) error {
	return r.db.WithContext(ctx).Create(admin).Error
}

func (r *administratorRepository) GetByUsername(ctx context.Context, username string) (models.Administrator, error) {
	var admin models.Administrator
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&admin).Error; err != nil {
		return models.Administrator{}, err
	}
	return admin, nil
}

func (r *administratorRepository) GetByID(ctx context.Context, id uint) (models.Administrator, error) {
	var admin models.Administrator
	if err := r.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return models.Administrator{}, err
	}
	return admin, nil
}

func (r *administratorRepository) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	result := r.db.WithContext(ctx).
		Model(&models.Administrator{}).
		Where("id = ?", id).
		UpdateColumn("last_login", at)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
