package service_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/collectpay/collectpay/internal/access"
	"github.com/collectpay/collectpay/internal/clock"
	"github.com/collectpay/collectpay/internal/dashboard/domain"
	"github.com/collectpay/collectpay/internal/dashboard/service"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	paymentrepo "github.com/collectpay/collectpay/internal/payment/repository"
	paymentservice "github.com/collectpay/collectpay/internal/payment/service"
	spenddomain "github.com/collectpay/collectpay/internal/spend/domain"
	spendrepo "github.com/collectpay/collectpay/internal/spend/repository"
	spendservice "github.com/collectpay/collectpay/internal/spend/service"
	"github.com/collectpay/collectpay/pkg/db"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// fixedNow is 2024-03-15 10:00 IST.
var fixedNow = time.Date(2024, 3, 15, 4, 30, 0, 0, time.UTC)

type fixture struct {
	svc        domain.Service
	paymentSvc paymentdomain.Service
	spendSvc   spenddomain.Service
	db         *gorm.DB
}

func setup(t *testing.T) fixture {
	t.Helper()

	gdb, err := db.NewTest()
	require.NoError(t, err)
	require.NoError(t, gdb.AutoMigrate(&paymentdomain.Payment{}, &spenddomain.Spend{}))

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
	spendSvc := spendservice.New(spendservice.Params{
		DB:         gdb,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      fake,
		Repo:       spendrepo.New(gdb),
		PaymentSvc: paymentSvc,
	})
	svc := service.New(service.Params{
		Log:        zap.NewNop(),
		Clock:      fake,
		PaymentSvc: paymentSvc,
		SpendSvc:   spendSvc,
	})
	return fixture{svc: svc, paymentSvc: paymentSvc, spendSvc: spendSvc, db: gdb}
}

func seedPayments(t *testing.T, f fixture) {
	t.Helper()
	ctx := context.Background()
	for _, p := range []paymentdomain.UpsertPaymentRequest{
		{UUID: "p1", AppID: "10001", PtStatus: "success", Amount: paymentdomain.Amount(100), TransactionDate: "2024-03-14 10:00:00"},
		{UUID: "p2", AppID: "10001", PtStatus: "failed", Amount: paymentdomain.Amount(40), TransactionDate: "2024-03-14 12:00:00"},
		{UUID: "p3", AppID: "10001", PtStatus: "success", Amount: paymentdomain.Amount(60), TransactionDate: "2024-03-15 09:00:00"},
		{UUID: "p4", AppID: "20002", PtStatus: "success", Amount: paymentdomain.Amount(500), TransactionDate: "2024-03-15 09:30:00"},
	} {
		_, _, err := f.paymentSvc.Upsert(ctx, p)
		require.NoError(t, err)
	}
}

func TestOverviewTotalsAndCharts(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)
	ctx := context.Background()

	ov, err := f.svc.Overview(ctx, access.Unrestricted(), domain.Query{})
	require.NoError(t, err)

	assert.Equal(t, 4, ov.TotalTransactions)
	assert.Equal(t, 700.0, ov.TotalAmount)
	assert.Equal(t, 660.0, ov.SuccessAmount)
	assert.Equal(t, 3, ov.StatusCounts["success"])
	assert.Equal(t, 1, ov.StatusCounts["failed"])
	assert.Equal(t, 0, ov.StatusCounts["retry"])

	require.Len(t, ov.Charts.DailySales, 2)
	assert.Equal(t, "2024-03-14", ov.Charts.DailySales[0].Bucket)
	assert.Equal(t, 140.0, ov.Charts.DailySales[0].Amount)
}

func TestOverviewScoped(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)

	ov, err := f.svc.Overview(context.Background(), access.RestrictedTo([]string{"20002"}), domain.Query{})
	require.NoError(t, err)
	assert.Equal(t, 1, ov.TotalTransactions)
	assert.Equal(t, 500.0, ov.TotalAmount)
}

func TestOverviewEmptyScope(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)

	ov, err := f.svc.Overview(context.Background(), access.RestrictedTo(nil), domain.Query{})
	require.NoError(t, err)
	assert.Zero(t, ov.TotalTransactions)
	assert.Empty(t, ov.Charts.DailySales)
}

func TestOverviewUnknownFilter(t *testing.T) {
	f := setup(t)

	_, err := f.svc.Overview(context.Background(), access.Unrestricted(), domain.Query{Filter: "fortnight"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}

func TestTransactionsFilteredByRange(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)

	resp, err := f.svc.Transactions(context.Background(), access.Unrestricted(),
		paymentdomain.ListPaymentsRequest{}, "yesterday", "", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, resp.Count)
}

func TestDailySalesGroupsByApp(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)
	ctx := context.Background()

	_, err := f.spendSvc.Upsert(ctx, access.Unrestricted(), spenddomain.UpsertSpendRequest{
		AppID: "10001", Date: "2024-03-15", SpendAmount: 250,
	})
	require.NoError(t, err)

	day, err := f.svc.DailySales(ctx, access.Unrestricted(), "", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, day.Apps, 2)

	first := day.Apps[0]
	assert.Equal(t, "10001", first.AppID)
	assert.Len(t, first.Payments, 1)
	assert.Equal(t, 60.0, first.TotalAmount)
	require.NotNil(t, first.Spend)
	assert.Equal(t, 250.0, first.Spend.SpendAmount)

	second := day.Apps[1]
	assert.Equal(t, "20002", second.AppID)
	assert.Nil(t, second.Spend)
	assert.Equal(t, 500.0, second.TotalAmount)
}

func TestDailySalesSpendOnlyApp(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	_, err := f.spendSvc.Upsert(ctx, access.Unrestricted(), spenddomain.UpsertSpendRequest{
		AppID: "30003", Date: "2024-03-15", SpendAmount: 90,
	})
	require.NoError(t, err)

	day, err := f.svc.DailySales(ctx, access.Unrestricted(), "", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, day.Apps, 1)
	assert.Equal(t, "30003", day.Apps[0].AppID)
	assert.Empty(t, day.Apps[0].Payments)
	require.NotNil(t, day.Apps[0].Spend)
}

func TestDailySalesAppFilter(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)
	ctx := context.Background()

	day, err := f.svc.DailySales(ctx, access.Unrestricted(), "20002", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, day.Apps, 1)
	assert.Equal(t, "20002", day.Apps[0].AppID)
	assert.Equal(t, 500.0, day.Apps[0].TotalAmount)
}

func TestDailySalesSumsPastListingCap(t *testing.T) {
	f := setup(t)
	ctx := context.Background()

	node, err := snowflake.NewNode(2)
	require.NoError(t, err)

	txn := time.Date(2024, 3, 15, 8, 0, 0, 0, time.UTC)
	rows := make([]paymentdomain.Payment, 0, 510)
	for i := 0; i < 510; i++ {
		rows = append(rows, paymentdomain.Payment{
			ID:              node.Generate(),
			UUID:            fmt.Sprintf("dense-%04d", i),
			AppID:           "10001",
			PtStatus:        paymentdomain.StatusSuccess,
			Amount:          1,
			TransactionDate: txn,
			CreatedAt:       txn,
			UpdatedAt:       txn,
		})
	}
	require.NoError(t, f.db.CreateInBatches(&rows, 100).Error)

	day, err := f.svc.DailySales(ctx, access.Unrestricted(), "", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, day.Apps, 1)
	assert.Equal(t, 510.0, day.Apps[0].TotalAmount)
	assert.Equal(t, 510.0, day.Apps[0].SuccessAmount)
	assert.Len(t, day.Apps[0].Payments, 500)
}

func TestDailySalesBadDate(t *testing.T) {
	f := setup(t)

	_, err := f.svc.DailySales(context.Background(), access.Unrestricted(), "", "15-03-2024")
	assert.ErrorIs(t, err, domain.ErrInvalidDate)
}

func TestPerformanceDayBuckets(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)

	perf, err := f.svc.Performance(context.Background(), access.Unrestricted(), domain.Query{})
	require.NoError(t, err)
	assert.Equal(t, "last_7_days", perf.Filter)
	require.Len(t, perf.Series, 2)
	assert.Equal(t, "2024-03-14", perf.Series[0].Bucket)
}

func TestPerformanceMonthBuckets(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)

	perf, err := f.svc.Performance(context.Background(), access.Unrestricted(), domain.Query{Filter: "last_6_months"})
	require.NoError(t, err)
	require.Len(t, perf.Series, 1)
	assert.Equal(t, "2024-03", perf.Series[0].Bucket)
}

func TestPerformanceHourly(t *testing.T) {
	f := setup(t)
	seedPayments(t, f)

	perf, err := f.svc.PerformanceHourly(context.Background(), access.Unrestricted(), domain.Query{})
	require.NoError(t, err)
	assert.Equal(t, "last_24_hours", perf.Filter)
	// p3 and p4 share the 09:00 IST hour inside the trailing 24h window.
	last := perf.Series[len(perf.Series)-1]
	assert.Equal(t, "2024-03-15 09:00", last.Bucket)
	assert.Equal(t, 2, last.Count)
	assert.Equal(t, 560.0, last.Amount)

	_, err = f.svc.PerformanceHourly(context.Background(), access.Unrestricted(), domain.Query{Filter: "this_month"})
	assert.ErrorIs(t, err, domain.ErrInvalidFilter)
}
