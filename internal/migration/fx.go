package migration

import (
	appdomain "github.com/collectpay/collectpay/internal/app/domain"
	collectiondomain "github.com/collectpay/collectpay/internal/collection/domain"
	"github.com/collectpay/collectpay/internal/config"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/seed"
	spenddomain "github.com/collectpay/collectpay/internal/spend/domain"
	userdomain "github.com/collectpay/collectpay/internal/user/domain"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// sqlite has no migrate driver wired; the model set is small
			// enough for AutoMigrate in local setups.
			if err := conn.AutoMigrate(
				&appdomain.App{},
				&userdomain.User{},
				&userdomain.AppAccess{},
				&collectiondomain.Collection{},
				&paymentdomain.Payment{},
				&spenddomain.Spend{},
			); err != nil {
				return err
			}
		}

		return seed.EnsureDefaultAdmin(conn, cfg)
	}),
)
