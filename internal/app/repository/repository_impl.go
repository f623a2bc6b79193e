package repository

import (
	"context"
	"errors"

	"github.com/collectpay/collectpay/internal/app/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, app *domain.App) error {
	return r.db.WithContext(ctx).Create(app).Error
}

// List returns every app when appIDs is nil, or only the named ones.
func (r *repo) List(ctx context.Context, appIDs []string) ([]domain.App, error) {
	tx := r.db.WithContext(ctx).Order("created_at desc")
	if appIDs != nil {
		tx = tx.Where("app_id IN ?", appIDs)
	}
	var apps []domain.App
	err := tx.Find(&apps).Error
	return apps, err
}

func (r *repo) FindByAppID(ctx context.Context, appID string) (*domain.App, error) {
	var app domain.App
	err := r.db.WithContext(ctx).Where("app_id = ?", appID).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (r *repo) Update(ctx context.Context, app *domain.App) error {
	return r.db.WithContext(ctx).Save(app).Error
}

func (r *repo) Delete(ctx context.Context, appID string) error {
	tx := r.db.WithContext(ctx).Where("app_id = ?", appID).Delete(&domain.App{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) AppIDExists(ctx context.Context, appID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&domain.App{}).
		Where("app_id = ?", appID).
		Count(&count).Error
	return count > 0, err
}
