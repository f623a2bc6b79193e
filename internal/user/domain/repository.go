package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
)

type Repository interface {
	Create(ctx context.Context, user *User) error
	List(ctx context.Context) ([]User, error)
	FindByID(ctx context.Context, id snowflake.ID) (*User, error)
	FindByUsernameOrEmail(ctx context.Context, identifier string) (*User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id snowflake.ID) error

	ListAppAccess(ctx context.Context, userID snowflake.ID) ([]string, error)
	ReplaceAppAccess(ctx context.Context, userID snowflake.ID, grants []AppAccess) error
	DeleteAppAccess(ctx context.Context, userID snowflake.ID) error

	// ExistingAppIDs filters appIDs down to the ones present in the apps table.
	ExistingAppIDs(ctx context.Context, appIDs []string) ([]string, error)
}
