package repository

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/user/domain"
	"gorm.io/gorm"
)

type repo struct {
	db *gorm.DB
}

func New(db *gorm.DB) domain.Repository {
	return &repo{db: db}
}

func (r *repo) Create(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repo) List(ctx context.Context) ([]domain.User, error) {
	var users []domain.User
	err := r.db.WithContext(ctx).
		Order("created_at desc").
		Find(&users).Error
	return users, err
}

func (r *repo) FindByID(ctx context.Context, id snowflake.ID) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) FindByUsernameOrEmail(ctx context.Context, identifier string) (*domain.User, error) {
	var user domain.User
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *repo) Update(ctx context.Context, user *domain.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *repo) Delete(ctx context.Context, id snowflake.ID) error {
	tx := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if tx.Error != nil {
		return tx.Error
	}
	if tx.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *repo) ListAppAccess(ctx context.Context, userID snowflake.ID) ([]string, error) {
	var appIDs []string
	err := r.db.WithContext(ctx).
		Model(&domain.AppAccess{}).
		Select("app_id").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Scan(&appIDs).Error
	return appIDs, err
}

func (r *repo) ReplaceAppAccess(ctx context.Context, userID snowflake.ID, grants []domain.AppAccess) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&domain.AppAccess{}).Error; err != nil {
			return err
		}
		if len(grants) == 0 {
			return nil
		}
		return tx.Create(&grants).Error
	})
}

func (r *repo) DeleteAppAccess(ctx context.Context, userID snowflake.ID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&domain.AppAccess{}).Error
}

func (r *repo) ExistingAppIDs(ctx context.Context, appIDs []string) ([]string, error) {
	if len(appIDs) == 0 {
		return nil, nil
	}
	var existing []string
	err := r.db.WithContext(ctx).
		Table("apps").
		Select("app_id").
		Where("app_id IN ?", appIDs).
		Scan(&existing).Error
	return existing, err
}
