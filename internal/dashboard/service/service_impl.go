package service

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/dashboard/aggregate"
	"github.com/collectpay/collectpay/internal/dashboard/domain"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	spenddomain "github.com/collectpay/collectpay/internal/spend/domain"
	"github.com/collectpay/collectpay/internal/timerange"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

type Params struct {
	fx.In

	Log        *zap.Logger
	Clock      clock.Clock
	PaymentSvc paymentdomain.Service
	SpendSvc   spenddomain.Service
}

type Service struct {
	log        *zap.Logger
	clock      clock.Clock
	paymentSvc paymentdomain.Service
	spendSvc   spenddomain.Service
}

func New(p Params) domain.Service {
	return &Service{
		log:        p.Log.Named("dashboard.service"),
		clock:      p.Clock,
		paymentSvc: p.PaymentSvc,
		spendSvc:   p.SpendSvc,
	}
}

// dailySalesPageLimit caps the per-day payment listing. Sums are computed
// from the full projection, so the cap only bounds the returned rows.
const dailySalesPageLimit = 500

func (s *Service) Overview(ctx context.Context, scope access.Scope, q domain.Query) (*domain.Overview, error) {
	rng, err := s.resolveQuery(q, timerange.FilterAllTime)
	if err != nil {
		return nil, err
	}

	points, err := s.paymentSvc.Points(ctx, scope, q.AppID, rng)
	if err != nil {
		return nil, err
	}

	granularity := timerange.GranularityDay
	if rng != nil {
		granularity = rng.Granularity
	}

	return &domain.Overview{
		Totals:       aggregate.Totals(points),
		StatusCounts: aggregate.StatusCounts(points),
		Charts: domain.OverviewCharts{
			DailySales:         aggregate.Series(points, granularity),
			StatusDistribution: aggregate.StatusDistribution(points),
		},
	}, nil
}

func (s *Service) Transactions(ctx context.Context, scope access.Scope, req paymentdomain.ListPaymentsRequest, filter, startDate, endDate string) (*paymentdomain.ListPaymentsResponse, error) {
	rng, err := s.resolveQuery(domain.Query{
		Filter:    filter,
		StartDate: startDate,
		EndDate:   endDate,
	}, timerange.FilterAllTime)
	if err != nil {
		return nil, err
	}
	req.Range = rng
	return s.paymentSvc.List(ctx, scope, req)
}

func (s *Service) DailySales(ctx context.Context, scope access.Scope, appID, date string) (*domain.DailySales, error) {
	appID = strings.TrimSpace(appID)
	day, err := timerange.ParseDay(strings.TrimSpace(date))
	if err != nil {
		return nil, domain.ErrInvalidDate
	}
	start, end := timerange.DayBounds(day)
	rng := &timerange.Range{Start: start, End: end, Granularity: timerange.GranularityDay}

	// Day sums come from the unbounded projection; the listing below is only
	// a bounded sample of the rows themselves.
	points, err := s.paymentSvc.Points(ctx, scope, appID, rng)
	if err != nil {
		return nil, err
	}

	resp, err := s.paymentSvc.List(ctx, scope, paymentdomain.ListPaymentsRequest{
		AppID: appID,
		Range: rng,
		Limit: dailySalesPageLimit,
	})
	if err != nil {
		return nil, err
	}

	spends, err := s.spendSvc.List(ctx, scope, spenddomain.ListSpendsRequest{
		AppID:     appID,
		Filter:    timerange.FilterDateRange,
		StartDate: timerange.DayKey(day),
		EndDate:   timerange.DayKey(day),
	})
	if err != nil {
		return nil, err
	}
	spendByApp := make(map[string]*spenddomain.Spend, len(spends))
	for i := range spends {
		spendByApp[spends[i].AppID] = &spends[i]
	}

	groups := make(map[string]*domain.AppDailySales)
	group := func(app string) *domain.AppDailySales {
		g, ok := groups[app]
		if !ok {
			g = &domain.AppDailySales{AppID: app, Payments: []paymentdomain.Payment{}}
			groups[app] = g
		}
		return g
	}
	for _, point := range points {
		g := group(point.AppID)
		g.TotalAmount += point.Amount
		if point.PtStatus == paymentdomain.StatusSuccess {
			g.SuccessAmount += point.Amount
		}
	}
	for _, payment := range resp.Data {
		g := group(payment.AppID)
		g.Payments = append(g.Payments, payment)
	}
	// Spend rows surface even when the app took no payments that day.
	for app, spend := range spendByApp {
		group(app).Spend = spend
	}

	apps := make([]domain.AppDailySales, 0, len(groups))
	for _, g := range groups {
		apps = append(apps, *g)
	}
	sort.Slice(apps, func(i, j int) bool { return apps[i].AppID < apps[j].AppID })

	return &domain.DailySales{Date: timerange.DayKey(day), Apps: apps}, nil
}

func (s *Service) Performance(ctx context.Context, scope access.Scope, q domain.Query) (*domain.Performance, error) {
	filter := effectiveFilter(q.Filter, timerange.FilterLast7Days)
	rng, err := s.resolveQuery(q, timerange.FilterLast7Days)
	if err != nil {
		return nil, err
	}

	granularity := timerange.GranularityDay
	if rng != nil {
		switch rng.Granularity {
		case timerange.GranularityMonth:
			granularity = timerange.GranularityMonth
		default:
			granularity = timerange.GranularityDay
		}
	}

	points, err := s.paymentSvc.Points(ctx, scope, q.AppID, rng)
	if err != nil {
		return nil, err
	}
	return &domain.Performance{Filter: filter, Series: aggregate.Series(points, granularity)}, nil
}

func (s *Service) PerformanceHourly(ctx context.Context, scope access.Scope, q domain.Query) (*domain.Performance, error) {
	filter := effectiveFilter(q.Filter, timerange.FilterLast24Hours)
	rng, err := timerange.Resolve(filter, s.clock.Now())
	if err != nil {
		return nil, domain.ErrInvalidFilter
	}
	if rng == nil || (rng.Granularity != timerange.GranularityHour && rng.Granularity != timerange.GranularityMinute) {
		return nil, domain.ErrInvalidFilter
	}

	points, err := s.paymentSvc.Points(ctx, scope, q.AppID, rng)
	if err != nil {
		return nil, err
	}
	return &domain.Performance{Filter: filter, Series: aggregate.Series(points, rng.Granularity)}, nil
}

func (s *Service) resolveQuery(q domain.Query, def string) (*timerange.Range, error) {
	filter := effectiveFilter(q.Filter, def)
	if filter == timerange.FilterDateRange {
		rng, err := timerange.FromDays(strings.TrimSpace(q.StartDate), strings.TrimSpace(q.EndDate))
		if err != nil {
			return nil, domain.ErrInvalidDate
		}
		return rng, nil
	}

	rng, err := timerange.Resolve(filter, s.clock.Now())
	if err != nil {
		if errors.Is(err, timerange.ErrUnknownFilter) {
			return nil, domain.ErrInvalidFilter
		}
		return nil, err
	}
	return rng, nil
}

func effectiveFilter(filter, def string) string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return def
	}
	return filter
}
