package aggregate_test

import (
	"testing"
	"time"

	"github.com/collectpay/collectpay/internal/dashboard/aggregate"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/timerange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func point(day string, hour int, amount float64, status string) paymentdomain.Point {
	d, _ := time.ParseInLocation("2006-01-02", day, timerange.IST)
	return paymentdomain.Point{
		TransactionDate: d.Add(time.Duration(hour) * time.Hour).UTC(),
		Amount:          amount,
		PtStatus:        status,
	}
}

func TestTotals(t *testing.T) {
	points := []paymentdomain.Point{
		point("2024-03-14", 10, 100, "success"),
		point("2024-03-14", 11, 50, "failed"),
		point("2024-03-15", 9, 25, "success"),
	}

	totals := aggregate.Totals(points)
	assert.Equal(t, 3, totals.TotalTransactions)
	assert.Equal(t, 175.0, totals.TotalAmount)
	assert.Equal(t, 125.0, totals.SuccessAmount)
}

func TestStatusCountsZeroFillAndUnknown(t *testing.T) {
	points := []paymentdomain.Point{
		point("2024-03-14", 10, 100, "success"),
		point("2024-03-14", 11, 50, "mystery"),
	}

	counts := aggregate.StatusCounts(points)
	assert.Equal(t, 1, counts["success"])
	assert.Equal(t, 0, counts["failed"])
	assert.Equal(t, 0, counts["retry"])
	_, present := counts["mystery"]
	assert.False(t, present)
}

func TestSeriesDayBucketsSorted(t *testing.T) {
	points := []paymentdomain.Point{
		point("2024-03-15", 9, 25, "success"),
		point("2024-03-14", 10, 100, "success"),
		point("2024-03-14", 23, 50, "failed"),
	}

	series := aggregate.Series(points, timerange.GranularityDay)
	require.Len(t, series, 2)
	assert.Equal(t, "2024-03-14", series[0].Bucket)
	assert.Equal(t, 2, series[0].Count)
	assert.Equal(t, 150.0, series[0].Amount)
	assert.Equal(t, "2024-03-15", series[1].Bucket)
}

func TestSeriesHourBucketsUseISTLabels(t *testing.T) {
	// 2024-03-14 20:00 UTC is 2024-03-15 01:30 IST.
	p := paymentdomain.Point{
		TransactionDate: time.Date(2024, 3, 14, 20, 0, 0, 0, time.UTC),
		Amount:          10,
		PtStatus:        "success",
	}

	series := aggregate.Series([]paymentdomain.Point{p}, timerange.GranularityHour)
	require.Len(t, series, 1)
	assert.Equal(t, "2024-03-15 01:00", series[0].Bucket)
}

func TestSeriesEmpty(t *testing.T) {
	assert.Empty(t, aggregate.Series(nil, timerange.GranularityDay))
}
