package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/clock"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	paymentrepo "github.com/collectpay/collectpay/internal/payment/repository"
	paymentservice "github.com/collectpay/collectpay/internal/payment/service"
	"github.com/collectpay/collectpay/internal/spend/domain"
	"github.com/collectpay/collectpay/internal/spend/repository"
	"github.com/collectpay/collectpay/internal/spend/service"
	"github.com/collectpay/collectpay/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedNow is 2024-03-15 10:00 IST.
var fixedNow = time.Date(2024, 3, 15, 4, 30, 0, 0, time.UTC)

func setupService(t *testing.T) (domain.Service, paymentdomain.Service, *gorm.DB) {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&domain.Spend{}, &paymentdomain.Payment{}))

	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	fake := clock.NewFakeClock(fixedNow)
	paymentSvc := paymentservice.New(paymentservice.Params{
		DB:    gdb,
		Log:   zap.NewNop(),
		GenID: node,
		Clock: fake,
		Repo:  paymentrepo.New(gdb),
	})
	svc := service.New(service.Params{
		DB:         gdb,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fake,
		Repo:       repository.New(gdb),
		PaymentSvc: paymentSvc,
	})
	return svc, paymentSvc, gdb
}

func TestUpsertReplacesByAppAndDate(t *testing.T) {
	svc, _, gdb := setupService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-14", SpendAmount: 500,
	})
	require.NoError(t, err)

	updated, err := svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-14", SpendAmount: 750, Settlement: "yes",
	})
	require.NoError(t, err)
	assert.Equal(t, 750.0, updated.SpendAmount)

	var count int64
	require.NoError(t, gdb.Model(&domain.Spend{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	var stored domain.Spend
	require.NoError(t, gdb.First(&stored).Error)
	assert.Equal(t, 750.0, stored.SpendAmount)
	assert.Equal(t, domain.SettlementYes, stored.Settlement)
}

func TestUpsertValidation(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{Date: "2024-03-14"})
	assert.ErrorIs(t, err, domain.ErrMissingAppID)

	_, err = svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{AppID: "10001", Date: "14-03-2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidDate)

	_, err = svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-14", SpendAmount: -1,
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-14", Settlement: "maybe",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidSettlement)

	_, err = svc.Upsert(ctx, access.RestrictedTo([]string{"20002"}), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-14",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestListDefaultsToLastSevenDays(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	for _, date := range []string{"2024-03-14", "2024-03-01"} {
		_, err := svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
			AppID: "10001", Date: date, SpendAmount: 100,
		})
		require.NoError(t, err)
	}

	rows, err := svc.List(ctx, access.Unrestricted(), domain.ListSpendsRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "2024-03-14", rows[0].Date.In(time.FixedZone("IST", 19800)).Format("2006-01-02"))

	all, err := svc.List(ctx, access.Unrestricted(), domain.ListSpendsRequest{Filter: "all_time"})
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestDeleteScoped(t *testing.T) {
	svc, _, _ := setupService(t)
	ctx := context.Background()

	spend, err := svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-14", SpendAmount: 100,
	})
	require.NoError(t, err)

	err = svc.Delete(ctx, access.RestrictedTo([]string{"20002"}), spend.ID.String())
	assert.ErrorIs(t, err, domain.ErrForbidden)

	require.NoError(t, svc.Delete(ctx, access.Unrestricted(), spend.ID.String()))
	assert.ErrorIs(t, svc.Delete(ctx, access.Unrestricted(), spend.ID.String()), domain.ErrNotFound)
}

func TestReconcileOuterJoin(t *testing.T) {
	svc, paymentSvc, _ := setupService(t)
	ctx := context.Background()

	// Spend-only day.
	_, err := svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-13", SpendAmount: 300, Settlement: "yes",
	})
	require.NoError(t, err)

	// Payments-only day, one success and one failure.
	for _, p := range []paymentdomain.UpsertPaymentRequest{
		{UUID: "p1", AppID: "10001", PtStatus: "success", Amount: paymentdomain.Amount(120), TransactionDate: "2024-03-14 11:00:00"},
		{UUID: "p2", AppID: "10001", PtStatus: "success", Amount: paymentdomain.Amount(80), TransactionDate: "2024-03-14 18:00:00"},
		{UUID: "p3", AppID: "10001", PtStatus: "failed", Amount: paymentdomain.Amount(999), TransactionDate: "2024-03-14 19:00:00"},
	} {
		_, _, err := paymentSvc.Upsert(ctx, p)
		require.NoError(t, err)
	}

	rows, err := svc.Reconcile(ctx, access.Unrestricted(), domain.ListSpendsRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "2024-03-13", rows[0].Date)
	assert.Equal(t, "10001", rows[0].AppID)
	assert.Equal(t, 300.0, rows[0].SpendAmount)
	assert.Equal(t, domain.SettlementYes, rows[0].Settlement)
	assert.Zero(t, rows[0].ReceivedAmount)
	assert.Zero(t, rows[0].PaymentCount)

	assert.Equal(t, "2024-03-14", rows[1].Date)
	assert.Equal(t, "10001", rows[1].AppID)
	assert.Zero(t, rows[1].SpendAmount)
	assert.Equal(t, domain.SettlementNo, rows[1].Settlement)
	assert.Equal(t, 200.0, rows[1].ReceivedAmount)
	assert.Equal(t, 2, rows[1].PaymentCount)
}

func TestReconcileKeepsAppsSeparate(t *testing.T) {
	svc, paymentSvc, _ := setupService(t)
	ctx := context.Background()

	_, err := svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-14", SpendAmount: 500, Settlement: "yes",
	})
	require.NoError(t, err)
	_, err = svc.Upsert(ctx, access.Unrestricted(), domain.UpsertSpendRequest{
		AppID: "20002", Date: "2024-03-14", SpendAmount: 200, Settlement: "no",
	})
	require.NoError(t, err)

	_, _, err = paymentSvc.Upsert(ctx, paymentdomain.UpsertPaymentRequest{
		UUID: "x1", AppID: "20002", PtStatus: "success",
		Amount: paymentdomain.Amount(90), TransactionDate: "2024-03-14 12:00:00",
	})
	require.NoError(t, err)

	rows, err := svc.Reconcile(ctx, access.Unrestricted(), domain.ListSpendsRequest{})
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, "10001", rows[0].AppID)
	assert.Equal(t, 500.0, rows[0].SpendAmount)
	assert.Equal(t, domain.SettlementYes, rows[0].Settlement)
	assert.Zero(t, rows[0].ReceivedAmount)

	assert.Equal(t, "20002", rows[1].AppID)
	assert.Equal(t, 200.0, rows[1].SpendAmount)
	assert.Equal(t, domain.SettlementNo, rows[1].Settlement)
	assert.Equal(t, 90.0, rows[1].ReceivedAmount)
}

func TestReconcileEmptyScope(t *testing.T) {
	svc, _, _ := setupService(t)

	rows, err := svc.Reconcile(context.Background(), access.RestrictedTo(nil), domain.ListSpendsRequest{})
	require.NoError(t, err)
	assert.Empty(t, rows)
}
