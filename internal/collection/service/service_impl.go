package service

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/collection/domain"
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
		log:   p.Log.Named("collection.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

func (s *Service) BatchUpsert(ctx context.Context, scope access.Scope, req domain.BatchUpsertRequest) (*domain.BatchUpsertResponse, error) {
	appID := strings.TrimSpace(req.AppID)
	if appID == "" {
		return nil, domain.ErrMissingAppID
	}
	if !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if len(req.Collections) == 0 {
		return nil, domain.ErrEmptyBatch
	}

	exists, err := s.repo.AppExists(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrUnknownApp
	}

	// Items are committed one by one. A bad item is reported and skipped
	// without rolling back the ones already written.
	resp := &domain.BatchUpsertResponse{
		Saved:  []domain.Collection{},
		Errors: []domain.ItemError{},
	}
	now := s.clock.Now().UTC()
	for _, item := range req.Collections {
		collectionID := strings.TrimSpace(item.CollectionID)
		tag := strings.ToLower(strings.TrimSpace(item.Tag))

		if collectionID == "" {
			resp.Errors = append(resp.Errors, domain.ItemError{
				CollectionID: item.CollectionID, Tag: item.Tag, Reason: "collectionId is required",
			})
			continue
		}
		if !domain.ValidTag(tag) {
			resp.Errors = append(resp.Errors, domain.ItemError{
				CollectionID: collectionID, Tag: item.Tag, Reason: "tag must be primary, retry, backup or custom",
			})
			continue
		}

		collection := domain.Collection{
			ID:           s.genID.Generate(),
			AppID:        appID,
			CollectionID: collectionID,
			Tag:          tag,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := s.repo.Upsert(ctx, &collection); err != nil {
			return nil, err
		}
		resp.Saved = append(resp.Saved, collection)
	}

	s.log.Info("collections upserted",
		zap.String("app_id", appID),
		zap.Int("saved", len(resp.Saved)),
		zap.Int("rejected", len(resp.Errors)),
	)
	return resp, nil
}

func (s *Service) List(ctx context.Context, scope access.Scope, req domain.ListRequest) ([]domain.Collection, error) {
	appID := strings.TrimSpace(req.AppID)
	if appID != "" && !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if appID == "" && scope.Empty() {
		return []domain.Collection{}, nil
	}

	tag := strings.ToLower(strings.TrimSpace(req.Tag))
	if tag != "" && !domain.ValidTag(tag) {
		return nil, domain.ErrInvalidTag
	}

	return s.repo.List(ctx, scope.AppIDs(), appID, tag)
}

func (s *Service) ListByApp(ctx context.Context, scope access.Scope, appID string) ([]domain.Collection, error) {
	return s.List(ctx, scope, domain.ListRequest{AppID: appID})
}

// PickRandom draws uniformly from the (appId, tag) pool on every call.
func (s *Service) PickRandom(ctx context.Context, scope access.Scope, appID, tag string) (*domain.Collection, error) {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return nil, domain.ErrMissingAppID
	}
	if !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if !domain.ValidTag(tag) {
		return nil, domain.ErrInvalidTag
	}

	pool, err := s.repo.Pool(ctx, appID, tag)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		return nil, domain.ErrEmptyPool
	}

	picked := pool[rand.IntN(len(pool))]
	return &picked, nil
}

func (s *Service) Delete(ctx context.Context, scope access.Scope, appID, collectionID string) error {
	appID = strings.TrimSpace(appID)
	if appID == "" {
		return domain.ErrMissingAppID
	}
	if !scope.Allows(appID) {
		return domain.ErrForbidden
	}
	return s.repo.Delete(ctx, appID, strings.TrimSpace(collectionID))
}
