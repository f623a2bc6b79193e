package service

import (
	"context"
	"sort"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/clock"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/spend/domain"
	"github.com/collectpay/collectpay/internal/timerange"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB         *gorm.DB
	Log        *zap.Logger
	GenID      *snowflake.Node
	Clock      clock.Clock
	Repo       domain.Repository
	PaymentSvc paymentdomain.Service
}

type Service struct {
	db         *gorm.DB
	log        *zap.Logger
	genID      *snowflake.Node
	clock      clock.Clock
	repo       domain.Repository
	paymentSvc paymentdomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		db:         p.DB,
		log:        p.Log.Named("spend.service"),
		genID:      p.GenID,
		clock:      p.Clock,
		repo:       p.Repo,
		paymentSvc: p.PaymentSvc,
	}
}

func (s *Service) Upsert(ctx context.Context, scope access.Scope, req domain.UpsertSpendRequest) (*domain.Spend, error) {
	appID := strings.TrimSpace(req.AppID)
	if appID == "" {
		return nil, domain.ErrMissingAppID
	}
	if !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}

	day, err := timerange.ParseDay(strings.TrimSpace(req.Date))
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	if req.SpendAmount < 0 {
		return nil, domain.ErrInvalidAmount
	}

	settlement := strings.ToLower(strings.TrimSpace(req.Settlement))
	if settlement == "" {
		settlement = domain.SettlementNo
	}
	if settlement != domain.SettlementYes && settlement != domain.SettlementNo {
		return nil, domain.ErrInvalidSettlement
	}

	now := s.clock.Now()
	spend := domain.Spend{
		ID:          s.genID.Generate(),
		AppID:       appID,
		Date:        day.UTC(),
		SpendAmount: req.SpendAmount,
		ROI:         req.ROI,
		Settlement:  settlement,
		Notes:       strings.TrimSpace(req.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Upsert(ctx, &spend); err != nil {
		return nil, err
	}

	s.log.Info("spend upserted",
		zap.String("app_id", spend.AppID),
		zap.String("date", timerange.DayKey(spend.Date)),
	)
	return &spend, nil
}

func (s *Service) List(ctx context.Context, scope access.Scope, req domain.ListSpendsRequest) ([]domain.Spend, error) {
	appID := strings.TrimSpace(req.AppID)
	if appID != "" && !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if appID == "" && scope.Empty() {
		return []domain.Spend{}, nil
	}

	rng, err := s.resolveRange(req)
	if err != nil {
		return nil, err
	}
	return s.repo.List(ctx, scope.AppIDs(), appID, rng)
}

func (s *Service) Delete(ctx context.Context, scope access.Scope, spendID string) error {
	id, err := snowflake.ParseString(spendID)
	if err != nil {
		return domain.ErrInvalidID
	}

	spend, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !scope.Allows(spend.AppID) {
		return domain.ErrForbidden
	}

	return s.repo.Delete(ctx, id)
}

// Reconcile joins spend rows against successful-payment day sums over the
// requested range, keyed by (IST day, app). Cells with only one side
// present still produce a row.
func (s *Service) Reconcile(ctx context.Context, scope access.Scope, req domain.ListSpendsRequest) ([]domain.ReconRow, error) {
	appID := strings.TrimSpace(req.AppID)
	if appID != "" && !scope.Allows(appID) {
		return nil, domain.ErrForbidden
	}
	if appID == "" && scope.Empty() {
		return []domain.ReconRow{}, nil
	}

	rng, err := s.resolveRange(req)
	if err != nil {
		return nil, err
	}

	spends, err := s.repo.List(ctx, scope.AppIDs(), appID, rng)
	if err != nil {
		return nil, err
	}
	points, err := s.paymentSvc.Points(ctx, scope, appID, rng)
	if err != nil {
		return nil, err
	}

	rows := make(map[string]*domain.ReconRow)
	cell := func(day, app string) *domain.ReconRow {
		key := day + "|" + app
		row, ok := rows[key]
		if !ok {
			row = &domain.ReconRow{Date: day, AppID: app, Settlement: domain.SettlementNo}
			rows[key] = row
		}
		return row
	}
	for _, spend := range spends {
		row := cell(timerange.DayKey(spend.Date), spend.AppID)
		row.SpendAmount = spend.SpendAmount
		row.ROI = spend.ROI
		row.Settlement = spend.Settlement
	}
	for _, point := range points {
		if point.PtStatus != paymentdomain.StatusSuccess {
			continue
		}
		row := cell(timerange.DayKey(point.TransactionDate), point.AppID)
		row.ReceivedAmount += point.Amount
		row.PaymentCount++
	}

	out := make([]domain.ReconRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date < out[j].Date
		}
		return out[i].AppID < out[j].AppID
	})
	return out, nil
}

// resolveRange applies the default last_7_days filter and handles the
// caller-supplied date_range pair.
func (s *Service) resolveRange(req domain.ListSpendsRequest) (*timerange.Range, error) {
	filter := strings.TrimSpace(req.Filter)
	if filter == "" {
		filter = timerange.FilterLast7Days
	}
	if filter == timerange.FilterDateRange {
		rng, err := timerange.FromDays(strings.TrimSpace(req.StartDate), strings.TrimSpace(req.EndDate))
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		return rng, nil
	}
	return timerange.Resolve(filter, s.clock.Now())
}
