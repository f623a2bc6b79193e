package domain

import "context"

type Repository interface {
	Create(ctx context.Context, app *App) error
	List(ctx context.Context, appIDs []string) ([]App, error)
	FindByAppID(ctx context.Context, appID string) (*App, error)
	Update(ctx context.Context, app *App) error
	Delete(ctx context.Context, appID string) error
	AppIDExists(ctx context.Context, appID string) (bool, error)
}
