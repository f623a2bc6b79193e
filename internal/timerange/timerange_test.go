package timerange

import (
	"testing"
	"time"
)

// 2024-03-15 10:00 IST == 2024-03-15 04:30 UTC.
var fixedNow = time.Date(2024, 3, 15, 4, 30, 0, 0, time.UTC)

func TestResolveAllTime(t *testing.T) {
	r, err := Resolve(FilterAllTime, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if r != nil {
		t.Fatalf("expected nil range, got %+v", r)
	}
}

func TestResolveUnknown(t *testing.T) {
	if _, err := Resolve("last_fortnight", fixedNow); err != ErrUnknownFilter {
		t.Fatalf("expected ErrUnknownFilter, got %v", err)
	}
}

func TestResolveThisMonth(t *testing.T) {
	r, err := Resolve(FilterThisMonth, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	wantStart := time.Date(2024, 3, 1, 0, 0, 0, 0, IST)
	if !r.Start.Equal(wantStart) {
		t.Fatalf("start: got %v, want %v", r.Start.In(IST), wantStart)
	}
	wantEnd := time.Date(2024, 3, 15, 23, 59, 59, int(time.Second-time.Nanosecond), IST)
	if !r.End.Equal(wantEnd) {
		t.Fatalf("end: got %v, want %v", r.End.In(IST), wantEnd)
	}
	if r.Granularity != GranularityDay {
		t.Fatalf("granularity: got %s", r.Granularity)
	}
}

func TestResolveYesterday(t *testing.T) {
	r, err := Resolve(FilterYesterday, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	if got := r.Start.In(IST).Format("2006-01-02 15:04:05"); got != "2024-03-14 00:00:00" {
		t.Fatalf("start: %s", got)
	}
	if got := r.End.In(IST).Format("2006-01-02 15:04:05"); got != "2024-03-14 23:59:59" {
		t.Fatalf("end: %s", got)
	}
}

func TestResolveYesterdayCrossesUTCDay(t *testing.T) {
	// 2024-03-15 01:00 IST is still 2024-03-14 in UTC; yesterday must be the
	// IST calendar day 2024-03-14, not the UTC one.
	now := time.Date(2024, 3, 14, 19, 30, 0, 0, time.UTC)
	r, err := Resolve(FilterYesterday, now)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := DayKey(r.Start); got != "2024-03-14" {
		t.Fatalf("start day: %s", got)
	}
}

func TestResolveLast7DaysInclusive(t *testing.T) {
	r, err := Resolve(FilterLast7Days, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}

	// Seven inclusive IST days: 2024-03-09 .. 2024-03-15.
	if got := DayKey(r.Start); got != "2024-03-09" {
		t.Fatalf("start day: %s", got)
	}
	if got := DayKey(r.End); got != "2024-03-15" {
		t.Fatalf("end day: %s", got)
	}
}

func TestResolveLastMonth(t *testing.T) {
	r, err := Resolve(FilterLastMonth, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := r.Start.In(IST).Format("2006-01-02"); got != "2024-02-01" {
		t.Fatalf("start: %s", got)
	}
	if got := r.End.In(IST).Format("2006-01-02"); got != "2024-02-29" {
		t.Fatalf("end: %s", got)
	}
}

func TestResolveLast6Months(t *testing.T) {
	r, err := Resolve(FilterLast6Months, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := r.Start.In(IST).Format("2006-01-02"); got != "2023-10-01" {
		t.Fatalf("start: %s", got)
	}
	if r.Granularity != GranularityMonth {
		t.Fatalf("granularity: %s", r.Granularity)
	}
}

func TestResolveThisYear(t *testing.T) {
	r, err := Resolve(FilterThisYear, fixedNow)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if got := r.Start.In(IST).Format("2006-01-02"); got != "2024-01-01" {
		t.Fatalf("start: %s", got)
	}
}

func TestResolveRollingWindows(t *testing.T) {
	cases := []struct {
		filter string
		window time.Duration
		g      Granularity
	}{
		{FilterLast8Hours, 8 * time.Hour, GranularityHour},
		{FilterLast12Hours, 12 * time.Hour, GranularityHour},
		{FilterLast24Hours, 24 * time.Hour, GranularityHour},
		{FilterLast10Min, 10 * time.Minute, GranularityMinute},
		{FilterLast30Min, 30 * time.Minute, GranularityMinute},
	}
	for _, tc := range cases {
		r, err := Resolve(tc.filter, fixedNow)
		if err != nil {
			t.Fatalf("%s: %v", tc.filter, err)
		}
		if !r.End.Equal(fixedNow) {
			t.Fatalf("%s: end %v", tc.filter, r.End)
		}
		if !r.Start.Equal(fixedNow.Add(-tc.window)) {
			t.Fatalf("%s: start %v", tc.filter, r.Start)
		}
		if r.Granularity != tc.g {
			t.Fatalf("%s: granularity %s", tc.filter, r.Granularity)
		}
	}
}

func TestBucketLabel(t *testing.T) {
	// 2024-03-15 09:05 IST.
	at := time.Date(2024, 3, 15, 3, 35, 0, 0, time.UTC)

	cases := map[Granularity]string{
		GranularityDay:    "2024-03-15",
		GranularityHour:   "2024-03-15 09:00",
		GranularityMinute: "2024-03-15 09:05",
		GranularityMonth:  "2024-03",
	}
	for g, want := range cases {
		if got := BucketLabel(at, g); got != want {
			t.Fatalf("%s: got %s, want %s", g, got, want)
		}
	}
}

func TestDayBounds(t *testing.T) {
	day, err := ParseDay("2024-03-15")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	start, end := DayBounds(day)
	if got := start.In(IST).Format("2006-01-02 15:04:05"); got != "2024-03-15 00:00:00" {
		t.Fatalf("start: %s", got)
	}
	if got := end.In(IST).Format("2006-01-02 15:04:05"); got != "2024-03-15 23:59:59" {
		t.Fatalf("end: %s", got)
	}
	if start.After(end) {
		t.Fatal("start after end")
	}
}

func TestKnownFilter(t *testing.T) {
	for _, f := range []string{FilterAllTime, FilterDateRange, FilterYesterday, FilterLast30Min} {
		if !knownFilter(f) {
			t.Fatalf("expected %s to be known", f)
		}
	}
	if knownFilter("bogus") {
		t.Fatal("expected bogus to be unknown")
	}
}
