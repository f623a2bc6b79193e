// Package timerange resolves the named dashboard date filters into UTC
// instant ranges. All calendar boundary math happens on the IST wall clock
// (fixed +05:30, no DST) and is converted back to UTC for storage-layer
// comparison.
package timerange

import (
	"errors"
	"time"
)

// IST is the fixed +05:30 offset used for all calendar bucketing.
var IST = time.FixedZone("IST", 5*3600+30*60)

type Granularity string

const (
	GranularityDay    Granularity = "day"
	GranularityHour   Granularity = "hour"
	GranularityMinute Granularity = "minute"
	GranularityMonth  Granularity = "month"
)

const (
	FilterAllTime     = "all_time"
	FilterDateRange   = "date_range"
	FilterYesterday   = "yesterday"
	FilterLast7Days   = "last_7_days"
	FilterThisMonth   = "this_month"
	FilterLastMonth   = "last_month"
	FilterLast6Months = "last_6_months"
	FilterThisYear    = "this_year"
	FilterLast8Hours  = "last_8_hours"
	FilterLast12Hours = "last_12_hours"
	FilterLast24Hours = "last_24_hours"
	FilterLast10Min   = "last_10_min"
	FilterLast30Min   = "last_30_min"
)

var ErrUnknownFilter = errors.New("unknown_filter")

// Range is an inclusive [Start, End] pair of UTC instants plus the bucket
// granularity a series over the range should use.
type Range struct {
	Start       time.Time
	End         time.Time
	Granularity Granularity
}

// Resolve maps a named filter and the current instant to a Range. all_time
// resolves to a nil Range (no filter). date_range is caller-supplied and not
// resolved here.
//
// last_7_days covers today plus the six preceding IST calendar days, seven
// inclusive days total.
func Resolve(filter string, now time.Time) (*Range, error) {
	local := now.In(IST)

	switch filter {
	case FilterAllTime:
		return nil, nil
	case FilterYesterday:
		y := local.AddDate(0, 0, -1)
		return &Range{
			Start:       startOfDay(y),
			End:         endOfDay(y),
			Granularity: GranularityDay,
		}, nil
	case FilterLast7Days:
		return &Range{
			Start:       startOfDay(local.AddDate(0, 0, -6)),
			End:         endOfDay(local),
			Granularity: GranularityDay,
		}, nil
	case FilterThisMonth:
		return &Range{
			Start:       startOfMonth(local),
			End:         endOfDay(local),
			Granularity: GranularityDay,
		}, nil
	case FilterLastMonth:
		prev := startOfMonth(local).In(IST).AddDate(0, -1, 0)
		return &Range{
			Start:       startOfMonth(prev),
			End:         endOfMonth(prev),
			Granularity: GranularityDay,
		}, nil
	case FilterLast6Months:
		start := startOfMonth(local).In(IST).AddDate(0, -5, 0)
		return &Range{
			Start:       startOfMonth(start),
			End:         endOfDay(local),
			Granularity: GranularityMonth,
		}, nil
	case FilterThisYear:
		start := time.Date(local.Year(), time.January, 1, 0, 0, 0, 0, IST)
		return &Range{
			Start:       start.UTC(),
			End:         endOfDay(local),
			Granularity: GranularityMonth,
		}, nil
	case FilterLast8Hours:
		return rolling(now, 8*time.Hour, GranularityHour), nil
	case FilterLast12Hours:
		return rolling(now, 12*time.Hour, GranularityHour), nil
	case FilterLast24Hours:
		return rolling(now, 24*time.Hour, GranularityHour), nil
	case FilterLast10Min:
		return rolling(now, 10*time.Minute, GranularityMinute), nil
	case FilterLast30Min:
		return rolling(now, 30*time.Minute, GranularityMinute), nil
	default:
		return nil, ErrUnknownFilter
	}
}

// knownFilter reports whether filter is one of the recognized names,
// including all_time and date_range.
func knownFilter(filter string) bool {
	if filter == FilterAllTime || filter == FilterDateRange {
		return true
	}
	_, err := Resolve(filter, time.Now())
	return err == nil
}

func rolling(now time.Time, window time.Duration, g Granularity) *Range {
	return &Range{
		Start:       now.Add(-window).UTC(),
		End:         now.UTC(),
		Granularity: g,
	}
}

func startOfDay(local time.Time) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, IST).UTC()
}

func endOfDay(local time.Time) time.Time {
	return time.Date(local.Year(), local.Month(), local.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), IST).UTC()
}

func startOfMonth(local time.Time) time.Time {
	return time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, IST).UTC()
}

func endOfMonth(local time.Time) time.Time {
	firstOfNext := time.Date(local.Year(), local.Month(), 1, 0, 0, 0, 0, IST).AddDate(0, 1, 0)
	return firstOfNext.Add(-time.Nanosecond).UTC()
}

// BucketLabel renders an IST-local, zero-padded series label for t at the
// given granularity.
func BucketLabel(t time.Time, g Granularity) string {
	local := t.In(IST)
	switch g {
	case GranularityMonth:
		return local.Format("2006-01")
	case GranularityHour:
		return local.Format("2006-01-02 15:00")
	case GranularityMinute:
		return local.Format("2006-01-02 15:04")
	default:
		return local.Format("2006-01-02")
	}
}

// DayKey renders the IST calendar-day key for t.
func DayKey(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

// ParseDay parses an IST calendar day written as YYYY-MM-DD.
func ParseDay(value string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", value, IST)
}

// DayBounds returns the UTC instants spanning the IST calendar day of t.
func DayBounds(t time.Time) (time.Time, time.Time) {
	local := t.In(IST)
	return startOfDay(local), endOfDay(local)
}

// FromDays builds a day-granularity range spanning two inclusive IST
// calendar days written as YYYY-MM-DD.
func FromDays(start, end string) (*Range, error) {
	s, err := ParseDay(start)
	if err != nil {
		return nil, err
	}
	e, err := ParseDay(end)
	if err != nil {
		return nil, err
	}
	if e.Before(s) {
		s, e = e, s
	}
	startUTC, _ := DayBounds(s)
	_, endUTC := DayBounds(e)
	return &Range{Start: startUTC, End: endUTC, Granularity: GranularityDay}, nil
}
