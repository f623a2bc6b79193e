// Package seed bootstraps the default admin account on first start.
package seed

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/auth/password"
	"github.com/collectpay/collectpay/internal/config"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	"gorm.io/gorm"
)

// EnsureDefaultAdmin creates the bootstrap admin when the users table is
// empty. Credentials come from config and default to admin/admin.
func EnsureDefaultAdmin(db *gorm.DB, cfg config.Config) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}

	node, err := snowflake.NewNode(1)
	if err != nil {
		return err
	}

	ctx := context.Background()
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&userdomain.User{}).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		hash, err := password.Hash(cfg.BootstrapAdminPassword)
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		return tx.Create(&userdomain.User{
			ID:           node.Generate(),
			Username:     strings.TrimSpace(cfg.BootstrapAdminUsername),
			Email:        strings.TrimSpace(cfg.BootstrapAdminEmail),
			PasswordHash: hash,
			Role:         userdomain.RoleAdmin,
			IsActive:     true,
			CreatedAt:    now,
			UpdatedAt:    now,
		}).Error
	})
}
