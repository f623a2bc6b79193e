package service

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/app/domain"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB    *gorm.DB
	Log   *zap.Logger
	GenID *snowflake.Node
	Clock clock.Clock
	Repo  domain.Repository
}

type Service struct {
	db    *gorm.DB
	log   *zap.Logger
	genID *snowflake.Node
	clock clock.Clock
	repo  domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:    p.DB,
		log:   p.Log.Named("app.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// appIDAttempts bounds the random draw before giving up. The 5-digit space
// holds 90000 ids, so collisions stay rare until the table is nearly full.
const appIDAttempts = 25

func (s *Service) Create(ctx context.Context, req domain.CreateAppRequest) (*domain.App, error) {
	name := strings.TrimSpace(req.AppName)
	if name == "" {
		return nil, domain.ErrInvalidName
	}

	appID, err := s.nextAppID(ctx)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now().UTC()
	app := domain.App{
		ID:         s.genID.Generate(),
		AppID:      appID,
		AppName:    name,
		AppLogoURL: strings.TrimSpace(req.AppLogoURL),
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, &app); err != nil {
		// Lost a race on the unique index; the caller can simply retry.
		if db.IsDuplicateKeyErr(err) {
			return nil, domain.ErrIDsExhausted
		}
		return nil, err
	}

	s.log.Info("app created",
		zap.String("app_id", app.AppID),
		zap.String("app_name", app.AppName),
	)
	return &app, nil
}

func (s *Service) List(ctx context.Context, scope access.Scope) ([]domain.App, error) {
	if scope.Empty() {
		return []domain.App{}, nil
	}
	return s.repo.List(ctx, scope.AppIDs())
}

func (s *Service) GetByAppID(ctx context.Context, scope access.Scope, appID string) (*domain.App, error) {
	if !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	return s.repo.FindByAppID(ctx, appID)
}

func (s *Service) Update(ctx context.Context, scope access.Scope, appID string, req domain.UpdateAppRequest) (*domain.App, error) {
	if !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if req.AppName == nil && req.AppLogoURL == nil {
		return nil, domain.ErrEmptyUpdate
	}

	app, err := s.repo.FindByAppID(ctx, appID)
	if err != nil {
		return nil, err
	}

	if req.AppName != nil {
		name := strings.TrimSpace(*req.AppName)
		if name == "" {
			return nil, domain.ErrInvalidName
		}
		app.AppName = name
	}
	if req.AppLogoURL != nil {
		app.AppLogoURL = strings.TrimSpace(*req.AppLogoURL)
	}
	app.UpdatedAt = s.clock.Now().UTC()

	if err := s.repo.Update(ctx, app); err != nil {
		return nil, err
	}
	return app, nil
}

func (s *Service) Delete(ctx context.Context, scope access.Scope, appID string) error {
	if !scope.Allows(appID) {
		return domain.ErrForbidden
	}
	if err := s.repo.Delete(ctx, appID); err != nil {
		return err
	}
	s.log.Info("app deleted", zap.String("app_id", appID))
	return nil
}

// nextAppID draws random 5-digit ids until one is free.
func (s *Service) nextAppID(ctx context.Context) (string, error) {
	for i := 0; i < appIDAttempts; i++ {
		candidate := fmt.Sprintf("%05d", 10000+rand.IntN(90000))
		exists, err := s.repo.AppIDExists(ctx, candidate)
		if err != nil {
			return "", err
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", domain.ErrIDsExhausted
}
