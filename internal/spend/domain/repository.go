package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/timerange"
)

type Repository interface {
	// Upsert inserts the spend or updates the existing (app_id, date) row.
	Upsert(ctx context.Context, spend *Spend) error
	FindByID(ctx context.Context, id snowflake.ID) (*Spend, error)
	List(ctx context.Context, appIDs []string, appID string, rng *timerange.Range) ([]Spend, error)
	Delete(ctx context.Context, id snowflake.ID) error
}
