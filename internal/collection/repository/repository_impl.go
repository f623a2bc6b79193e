package repository

import (
	"context"

	"github.com/collectpay/collectpay/internal/collection/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Upsert(ctx context.Context, collection *domain.Collection) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "app_id"}, {Name: "collection_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"tag", "updated_at"}),
	}).Create(collection).Error
}

func (r *repo) List(ctx context.Context, appIDs []string, appID, tag string) ([]domain.Collection, error) {
	tx := r.db.WithContext(ctx).Order("created_at desc")
	if appID != "" {
		tx = tx.Where("app_id = ?", appID)
	} else if appIDs != nil {
		tx = tx.Where("app_id IN ?", appIDs)
	}
	if tag != "" {
		tx = tx.Where("tag = ?", tag)
	}
	var collections []domain.Collection
	err := tx.Find(&collections).Error
	return collections, err
}

func (r *repo) Pool(ctx context.Context, appID, tag string) ([]domain.Collection, error) {
	var collections []domain.Collection
	err := r.db.WithContext(ctx).
		Where("app_id = ? AND tag = ?", appID, tag).
		Find(&collections).Error
	return collections, err
}

func (r *repo) Delete(ctx context.Context, appID, collectionID string) error {
	tx := r.db.WithContext(ctx).
		Where("app_id = ? AND collection_id = ?", appID, collectionID).
		Delete(&domain.Collection{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) AppExists(ctx context.Context, appID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("apps").
		Where("app_id = ?", appID).
		Count(&count).Error
	return count > 0, err
}
