package domain

import (
	"context"

	"github.com/collectpay/collectpay/internal/timerange"
)

type ListFilter struct {
	AppIDs []string // nil means every app
	AppID  string
	Status string
	Range  *timerange.Range
	Offset int
	Limit  int
}

type Repository interface {
	// Upsert inserts the payment or, when the uuid already exists, updates
	// the mutable fields in place. Returns true when a new row was created.
	Upsert(ctx context.Context, payment *Payment) (bool, error)
	FindByUUID(ctx context.Context, uuid string) (*Payment, error)
	List(ctx context.Context, filter ListFilter) ([]Payment, int64, error)
	Points(ctx context.Context, appIDs []string, appID string, rng *timerange.Range) ([]Point, error)
}
