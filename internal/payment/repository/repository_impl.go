package repository

import (
	"context"
	"errors"

	"github.com/collectpay/collectpay/internal/payment/domain"
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

func (r *repo) Upsert(ctx context.Context, payment *domain.Payment) (bool, error) {
	// Single-statement upsert so concurrent redeliveries of the same uuid
	// cannot race into duplicate rows.
	tx := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "uuid"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"pt_status", "collection_id", "ant", "amount", "transaction_date", "updated_at",
		}),
	}).Create(payment)
	if tx.Error != nil {
		return false, tx.Error
	}

	var stored domain.Payment
	if err := r.db.WithContext(ctx).Where("uuid = ?", payment.UUID).First(&stored).Error; err != nil {
		return false, err
	}
	created := stored.ID == payment.ID
	*payment = stored
	return created, nil
}

func (r *repo) FindByUUID(ctx context.Context, uuid string) (*domain.Payment, error) {
	var payment domain.Payment
	err := r.db.WithContext(ctx).Where("uuid = ?", uuid).First(&payment).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

func (r *repo) List(ctx context.Context, filter domain.ListFilter) ([]domain.Payment, int64, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Payment{})
	tx = applyFilter(tx, filter.AppIDs, filter.AppID, filter.Range)
	if filter.Status != "" {
		tx = tx.Where("pt_status = ?", filter.Status)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	tx = tx.Order("transaction_date desc")
	if filter.Limit > 0 {
		tx = tx.Offset(filter.Offset).Limit(filter.Limit)
	}

	var payments []domain.Payment
	if err := tx.Find(&payments).Error; err != nil {
		return nil, 0, err
	}
	return payments, total, nil
}

func (r *repo) Points(ctx context.Context, appIDs []string, appID string, rng *timerange.Range) ([]domain.Point, error) {
	tx := r.db.WithContext(ctx).Model(&domain.Payment{}).
		Select("app_id", "transaction_date", "amount", "pt_status")
	tx = applyFilter(tx, appIDs, appID, rng)

	var points []domain.Point
	err := tx.Order("transaction_date asc").Scan(&points).Error
	return points, err
}

func applyFilter(tx *gorm.DB, appIDs []string, appID string, rng *timerange.Range) *gorm.DB {
	if appID != "" {
		tx = tx.Where("app_id = ?", appID)
	} else if appIDs != nil {
		tx = tx.Where("app_id IN ?", appIDs)
	}
	if rng != nil {
		tx = tx.Where("transaction_date BETWEEN ? AND ?", rng.Start, rng.End)
	}
	return tx
}
