package domain

import (
	"context"
	"errors"
	"time"

	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/timerange"
)

// UpsertPaymentRequest is the webhook body posted by the payment gateway.
type UpsertPaymentRequest struct {
	UUID            string `json:"uuid"`
	AppID           string `json:"appId"`
	PtStatus        string `json:"ptStatus"`
	CollectionID    string `json:"collectionId"`
	Ant             string `json:"ant"`
	Amount          Amount `json:"amount"`
	TransactionDate string `json:"transactionDate"`
}

type ListPaymentsRequest struct {
	AppID  string
	Status string
	Range  *timerange.Range
	Page   int
	Limit  int
}

type ListPaymentsResponse struct {
	Count      int64     `json:"count"`
	Data       []Payment `json:"data"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"totalPages"`
}

type Service interface {
	Upsert(ctx context.Context, req UpsertPaymentRequest) (*Payment, bool, error)
	List(ctx context.Context, scope access.Scope, req ListPaymentsRequest) (*ListPaymentsResponse, error)
	GetByUUID(ctx context.Context, scope access.Scope, uuid string) (*Payment, error)
	Points(ctx context.Context, scope access.Scope, appID string, rng *timerange.Range) ([]Point, error)
}

var (
	ErrNotFound       = errors.New("payment_not_found")
	ErrForbidden      = errors.New("payment_forbidden")
	ErrMissingUUID    = errors.New("missing_uuid")
	ErrMissingAppID   = errors.New("missing_app_id")
	ErrInvalidStatus  = errors.New("invalid_pt_status")
	ErrInvalidTxnDate = errors.New("invalid_transaction_date")
)

// ParseTransactionDate accepts the formats the gateway has been seen to send.
func ParseTransactionDate(raw string, now time.Time) (time.Time, error) {
	if raw == "" {
		return now, nil
	}
	for _, layout := range []string{
		time.RFC3339Nano,
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02",
	} {
		if t, err := time.ParseInLocation(layout, raw, timerange.IST); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTxnDate
}
