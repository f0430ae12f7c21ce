package domain

import (
	"time"
)

// Interval is the bucket granularity of a statistics query
type Interval string

const (
	IntervalDay  Interval = "day"
	IntervalHour Interval = "hour"
)

// Step returns the duration of one bucket
func (i Interval) Step() time.Duration {
	switch i {
	case IntervalDay:
		return 24 * time.Hour
	case IntervalHour:
		return time.Hour
	default:
		return 0
	}
}

// Valid reports whether the interval is supported
func (i Interval) Valid() bool {
	return i == IntervalDay || i == IntervalHour
}

// Query selects the slice of the trade log to aggregate. Empty optional
// filters mean "no filter". An empty or inverted time range is valid and
// selects nothing.
type Query struct {
	StartTime    time.Time `json:"start_time" query:"startTime" validate:"required"`
	EndTime      time.Time `json:"end_time" query:"endTime" validate:"required"`
	TraderID     string    `json:"trader_id,omitempty" query:"traderId" validate:"omitempty,max=128"`
	Symbol       string    `json:"symbol,omitempty" query:"symbol" validate:"omitempty,max=64"`
	BaseCurrency string    `json:"base_currency,omitempty" query:"baseCurrency" validate:"omitempty,max=16"`
	Interval     Interval  `json:"interval" query:"interval" validate:"required,oneof=day hour"`
}

// Bucket is a half-open time interval [Start, End)
type Bucket struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t lies inside the bucket
func (b Bucket) Contains(t time.Time) bool {
	return !t.Before(b.Start) && t.Before(b.End)
}
