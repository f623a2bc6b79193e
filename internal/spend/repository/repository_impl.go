package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/spend/domain"
	"github.com/collectpay/collectpay/internal/timerange"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Upsert(ctx context.Context, spend *domain.Spend) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "app_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"spend_amount", "roi", "settlement", "notes", "updated_at",
		}),
	}).Create(spend).Error
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.Spend, error) {
	var spend domain.Spend
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&spend).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &spend, nil
}

func (r *repo) List(ctx context.Context, appIDs []string, appID string, rng *timerange.Range) ([]domain.Spend, error) {
	tx := r.db.WithContext(ctx).Order("date desc")
	if appID != "" {
		tx = tx.Where("app_id = ?", appID)
	} else if appIDs != nil {
		tx = tx.Where("app_id IN ?", appIDs)
	}
	if rng != nil {
		tx = tx.Where("date BETWEEN ? AND ?", rng.Start, rng.End)
	}
	var spends []domain.Spend
	err := tx.Find(&spends).Error
	return spends, err
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.Spend{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
