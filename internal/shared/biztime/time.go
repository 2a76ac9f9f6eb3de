// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. Business timezone is only used for
// calculating date boundaries (start/end of day, month) and the calendar
// period keys that scope monthly allowance accounting.
//
// Design principles:
// - All time storage is in UTC
// - Period boundaries are computed in business timezone, then converted to UTC for queries
// - Implicit Local timezone is prohibited
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "UTC"

	// PeriodLayout is the calendar-month period key format (e.g. "2025-11").
	PeriodLayout = "2006-01"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, defaults to UTC.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, auto-initializing with the
// default timezone when Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// CurrentPeriod returns the calendar-month period key for the current instant
// in business timezone.
func CurrentPeriod() string {
	return PeriodOf(NowUTC())
}

// PeriodOf returns the calendar-month period key the given instant falls into,
// evaluated in business timezone.
func PeriodOf(t time.Time) string {
	return t.In(Location()).Format(PeriodLayout)
}

// ParsePeriod validates a period key ("YYYY-MM") and returns its year/month.
func ParsePeriod(period string) (int, time.Month, error) {
	t, err := time.ParseInLocation(PeriodLayout, period, Location())
	if err != nil {
		return 0, 0, fmt.Errorf("invalid period format %q: %w", period, err)
	}
	return t.Year(), t.Month(), nil
}

// PeriodBoundsUTC returns the UTC instants bounding a calendar-month period.
// The end bound is exclusive (start of the following month).
func PeriodBoundsUTC(period string) (time.Time, time.Time, error) {
	year, month, err := ParsePeriod(period)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, Location())
	end := time.Date(year, month+1, 1, 0, 0, 0, 0, Location())
	return start.UTC(), end.UTC(), nil
}

// StartOfDayUTC returns the start of day (00:00:00) in business timezone,
// converted to UTC.
func StartOfDayUTC(t time.Time) time.Time {
	bizTime := t.In(Location())
	startOfDay := time.Date(bizTime.Year(), bizTime.Month(), bizTime.Day(), 0, 0, 0, 0, Location())
	return startOfDay.UTC()
}

// StartOfMonthUTC returns the start of month in business timezone, converted to UTC.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	startOfMonth := time.Date(year, month, 1, 0, 0, 0, 0, Location())
	return startOfMonth.UTC()
}

// EndOfMonthUTC returns the end of month in business timezone, converted to UTC.
func EndOfMonthUTC(year int, month time.Month) time.Time {
	nextMonth := time.Date(year, month+1, 1, 0, 0, 0, 0, Location())
	return nextMonth.Add(-time.Nanosecond).UTC()
}

// ToBizTimezone converts a UTC time to business timezone for display.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// FormatMetadataTime formats a UTC time for storage in metadata using RFC3339.
func FormatMetadataTime(t time.Time) string {
	return t.Format(time.RFC3339)
}

// ParseMetadataTime parses a timestamp from metadata string (RFC3339 format).
func ParseMetadataTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid metadata timestamp format %q: %w", s, err)
	}
	return t, nil
}
