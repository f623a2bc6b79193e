package domain

import (
	"context"
	"errors"

	"github.com/collectpay/collectpay/internal/access"
)

type CreateAppRequest struct {
	AppName    string
	AppLogoURL string
}

type UpdateAppRequest struct {
	AppName    *string
	AppLogoURL *string
}

type Service interface {
	Create(ctx context.Context, req CreateAppRequest) (*App, error)
	List(ctx context.Context, scope access.Scope) ([]App, error)
	GetByAppID(ctx context.Context, scope access.Scope, appID string) (*App, error)
	Update(ctx context.Context, scope access.Scope, appID string, req UpdateAppRequest) (*App, error)
	Delete(ctx context.Context, scope access.Scope, appID string) error
}

var (
	ErrNotFound     = errors.New("app_not_found")
	ErrForbidden    = errors.New("app_forbidden")
	ErrInvalidName  = errors.New("invalid_app_name")
	ErrEmptyUpdate  = errors.New("empty_app_update")
	ErrIDsExhausted = errors.New("app_ids_exhausted")
)
