package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/timerange"
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
		log:   p.Log.Named("payment.service"),
		genID: p.GenID,
		clock: p.Clock,
		repo:  p.Repo,
	}
}

// maxPageLimit has to admit a full report export, which loads up to 1000
// rows in a single page.
const (
	defaultPageLimit = 50
	maxPageLimit     = 1000
)

func (s *Service) Upsert(ctx context.Context, req domain.UpsertPaymentRequest) (*domain.Payment, bool, error) {
	uuid := strings.TrimSpace(req.UUID)
	if uuid == "" {
		return nil, false, domain.ErrMissingUUID
	}
	appID := strings.TrimSpace(req.AppID)
	if appID == "" {
		return nil, false, domain.ErrMissingAppID
	}
	status := strings.ToLower(strings.TrimSpace(req.PtStatus))
	if !domain.ValidStatus(status) {
		return nil, false, domain.ErrInvalidStatus
	}

	now := s.clock.Now()
	txnDate, err := domain.ParseTransactionDate(strings.TrimSpace(req.TransactionDate), now)
	if err != nil {
		return nil, false, err
	}

	payment := domain.Payment{
		ID:              s.genID.Generate(),
		UUID:            uuid,
		AppID:           appID,
		PtStatus:        status,
		CollectionID:    strings.TrimSpace(req.CollectionID),
		Ant:             strings.TrimSpace(req.Ant),
		Amount:          req.Amount.Float64(),
		TransactionDate: txnDate,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	created, err := s.repo.Upsert(ctx, &payment)
	if err != nil {
		return nil, false, err
	}

	s.log.Info("payment upserted",
		zap.String("uuid", payment.UUID),
		zap.String("app_id", payment.AppID),
		zap.String("pt_status", payment.PtStatus),
		zap.Bool("created", created),
	)
	return &payment, created, nil
}

func (s *Service) List(ctx context.Context, scope access.Scope, req domain.ListPaymentsRequest) (*domain.ListPaymentsResponse, error) {
	page := req.Page
	if page < 1 {
		page = 1
	}
	limit := req.Limit
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	empty := &domain.ListPaymentsResponse{
		Count: 0, Data: []domain.Payment{}, Page: page, Limit: limit, TotalPages: 0,
	}

	appID := strings.TrimSpace(req.AppID)
	if appID != "" && !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if appID == "" && scope.Empty() {
		return empty, nil
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status != "" && !domain.ValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}

	rows, total, err := s.repo.List(ctx, domain.ListFilter{
		AppIDs: scope.AppIDs(),
		AppID:  appID,
		Status: status,
		Range:  req.Range,
		Offset: (page - 1) * limit,
		Limit:  limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &domain.ListPaymentsResponse{
		Count:      total,
		Data:       rows,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *Service) GetByUUID(ctx context.Context, scope access.Scope, uuid string) (*domain.Payment, error) {
	payment, err := s.repo.FindByUUID(ctx, strings.TrimSpace(uuid))
	if err != nil {
		return nil, err
	}
	if !scope.Allows(payment.AppID) {
		// Hide rows outside the caller's scope entirely.
		return nil, domain.ErrNotFound
	}
	return payment, nil
}

func (s *Service) Points(ctx context.Context, scope access.Scope, appID string, rng *timerange.Range) ([]domain.Point, error) {
	appID = strings.TrimSpace(appID)
	if appID != "" && !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if appID == "" && scope.Empty() {
		return []domain.Point{}, nil
	}
	return s.repo.Points(ctx, scope.AppIDs(), appID, rng)
}
