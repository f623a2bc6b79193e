package domain

import (
	"context"
	"errors"

	"github.com/collectpay/collectpay/internal/access"
)

type UpsertSpendRequest struct {
	AppID       string  `json:"appId"`
	Date        string  `json:"date"` // YYYY-MM-DD, IST calendar day
	SpendAmount float64 `json:"spendAmount"`
	ROI         float64 `json:"roi"`
	Settlement  string  `json:"settlement"`
	Notes       string  `json:"notes"`
}

type ListSpendsRequest struct {
	AppID     string
	Filter    string // timerange filter name, default last_7_days
	StartDate string // for date_range
	EndDate   string
}

// ReconRow is one (day, app) cell of the spend/receipts outer join. A cell
// appears when either side has data; the missing side reads as zero.
type ReconRow struct {
	Date           string  `json:"date"`
	AppID          string  `json:"appId"`
	SpendAmount    float64 `json:"spendAmount"`
	ROI            float64 `json:"roi"`
	Settlement     string  `json:"settlement"`
	ReceivedAmount float64 `json:"receivedAmount"`
	PaymentCount   int     `json:"paymentCount"`
}

type Service interface {
	Upsert(ctx context.Context, scope access.Scope, req UpsertSpendRequest) (*Spend, error)
	List(ctx context.Context, scope access.Scope, req ListSpendsRequest) ([]Spend, error)
	Delete(ctx context.Context, scope access.Scope, spendID string) error
	Reconcile(ctx context.Context, scope access.Scope, req ListSpendsRequest) ([]ReconRow, error)
}

var (
	ErrNotFound          = errors.New("spend_not_found")
	ErrForbidden         = errors.New("spend_forbidden")
	ErrInvalidID         = errors.New("invalid_spend_id")
	ErrMissingAppID      = errors.New("missing_app_id")
	ErrInvalidDate       = errors.New("invalid_spend_date")
	ErrInvalidSettlement = errors.New("invalid_settlement")
	ErrInvalidAmount     = errors.New("invalid_spend_amount")
)
