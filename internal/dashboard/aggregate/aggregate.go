// Package aggregate folds payment points into the dashboard's totals,
// status counts and time-bucketed series.
package aggregate

import (
	"sort"

	dashboarddomain "github.com/collectpay/collectpay/internal/dashboard/domain"
	paymentdomain "github.com/collectpay/collectpay/internal/payment/domain"
	"github.com/collectpay/collectpay/internal/timerange"
)

func Totals(points []paymentdomain.Point) dashboarddomain.Totals {
	var t dashboarddomain.Totals
	for _, p := range points {
		t.TotalTransactions++
		t.TotalAmount += p.Amount
		if p.PtStatus == paymentdomain.StatusSuccess {
			t.SuccessAmount += p.Amount
		}
	}
	return t
}

// StatusCounts always reports the three known statuses, zero when absent.
// Rows carrying an unrecognized status are skipped without error.
func StatusCounts(points []paymentdomain.Point) map[string]int {
	counts := map[string]int{
		paymentdomain.StatusSuccess: 0,
		paymentdomain.StatusFailed:  0,
		paymentdomain.StatusRetry:   0,
	}
	for _, p := range points {
		if _, ok := counts[p.PtStatus]; ok {
			counts[p.PtStatus]++
		}
	}
	return counts
}

func StatusDistribution(points []paymentdomain.Point) []dashboarddomain.StatusSlice {
	counts := StatusCounts(points)
	return []dashboarddomain.StatusSlice{
		{Status: paymentdomain.StatusSuccess, Count: counts[paymentdomain.StatusSuccess]},
		{Status: paymentdomain.StatusFailed, Count: counts[paymentdomain.StatusFailed]},
		{Status: paymentdomain.StatusRetry, Count: counts[paymentdomain.StatusRetry]},
	}
}

// Series buckets points by the IST label for the granularity and sorts the
// buckets ascending. Only buckets with data appear; gaps are not zero-filled.
func Series(points []paymentdomain.Point, g timerange.Granularity) []dashboarddomain.SeriesPoint {
	buckets := make(map[string]*dashboarddomain.SeriesPoint)
	for _, p := range points {
		label := timerange.BucketLabel(p.TransactionDate, g)
		b, ok := buckets[label]
		if !ok {
			b = &dashboarddomain.SeriesPoint{Bucket: label}
			buckets[label] = b
		}
		b.Count++
		b.Amount += p.Amount
	}

	out := make([]dashboarddomain.SeriesPoint, 0, len(buckets))
	for _, b := range buckets {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Bucket < out[j].Bucket })
	return out
}
