package domain

import (
	"context"
	"errors"

	"github.com/collectpay/collectpay/internal/access"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	spenddomain "github.com/collectpay/collectpay/internal/spend/domain"
)

type Query struct {
	AppID     string
	Filter    string // timerange filter name
	StartDate string // for date_range
	EndDate   string
}

type SeriesPoint struct {
	Bucket string  `json:"bucket"`
	Count  int     `json:"count"`
	Amount float64 `json:"amount"`
}

type StatusSlice struct {
	Status string `json:"status"`
	Count  int    `json:"count"`
}

type Totals struct {
	TotalTransactions int     `json:"totalTransactions"`
	TotalAmount       float64 `json:"totalAmount"`
	SuccessAmount     float64 `json:"successAmount"`
}

type Overview struct {
	Totals
	StatusCounts map[string]int `json:"statusCounts"`
	Charts       OverviewCharts `json:"charts"`
}

type OverviewCharts struct {
	DailySales         []SeriesPoint `json:"dailySales"`
	StatusDistribution []StatusSlice `json:"statusDistribution"`
}

// AppDailySales is one app's slice of a single IST day: its payments, the
// day's sums and the spend row when one was recorded.
type AppDailySales struct {
	AppID         string                  `json:"appId"`
	Payments      []paymentdomain.Payment `json:"payments"`
	TotalAmount   float64                 `json:"totalAmount"`
	SuccessAmount float64                 `json:"successAmount"`
	Spend         *spenddomain.Spend      `json:"spend,omitempty"`
}

type DailySales struct {
	Date string          `json:"date"`
	Apps []AppDailySales `json:"apps"`
}

type Performance struct {
	Filter string        `json:"filter"`
	Series []SeriesPoint `json:"series"`
}

type Service interface {
	Overview(ctx context.Context, scope access.Scope, q Query) (*Overview, error)
	Transactions(ctx context.Context, scope access.Scope, req paymentdomain.ListPaymentsRequest, filter, startDate, endDate string) (*paymentdomain.ListPaymentsResponse, error)
	DailySales(ctx context.Context, scope access.Scope, appID, date string) (*DailySales, error)
	Performance(ctx context.Context, scope access.Scope, q Query) (*Performance, error)
	PerformanceHourly(ctx context.Context, scope access.Scope, q Query) (*Performance, error)
}

var (
	ErrInvalidFilter = errors.New("invalid_filter")
	ErrInvalidDate   = errors.New("invalid_date")
)
