package access

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Resolver computes a Scope for a user. Grants are mutable, so resolution
// happens once per request and is never cached.
type Resolver struct {
	db  *gorm.DB
	log *zap.Logger
}

type Params struct {
	fx.In

	DB  *gorm.DB
	Log *zap.Logger
}

func NewResolver(p Params) *Resolver {
	return &Resolver{
		db:  p.DB,
		log: p.Log.Named("access.resolver"),
	}
}

const roleAdmin = "admin"

// Resolve returns the scope for the given user. Admins are unrestricted;
// everyone else sees exactly the apps granted through user_app_access.
func (r *Resolver) Resolve(ctx context.Context, userID snowflake.ID, role string) (Scope, error) {
	if role == roleAdmin {
		return Unrestricted(), nil
	}

	var appIDs []string
	err := r.db.WithContext(ctx).
		Table("user_app_access").
		Select("app_id").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Scan(&appIDs).Error
	if err != nil {
		return Scope{}, err
	}

	return RestrictedTo(appIDs), nil
}

var Module = fx.Module("access",
	fx.Provide(NewResolver),
)
