package dataprocessing

import (
	"fmt"
	"time"

	"github.com/antonKorobenko/test-task/pkg/contracts/domain"
)

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// GenerateBoundaries returns the bucket boundaries covering every trade.
//
// For day granularity the boundaries are the midnights from the date of the
// earliest trade through the day after the latest trade. For hour granularity
// they run from the hour of the earliest trade through one hour past the hour
// of the latest trade. Consecutive boundaries form half-open buckets, so every
// input trade falls in exactly one of them.
func GenerateBoundaries(trades []domain.Trade, interval domain.Interval) ([]time.Time, error) {
	if !interval.Valid() {
		return nil, fmt.Errorf("%w: unsupported interval %q", ErrInvalidQuery, interval)
	}
	if len(trades) == 0 {
		return nil, nil
	}

	lo, hi := trades[0].Timestamp, trades[0].Timestamp
	for i := range trades[1:] {
		ts := trades[i+1].Timestamp
		if ts.Before(lo) {
			lo = ts
		}
		if ts.After(hi) {
			hi = ts
		}
	}

	var first, last time.Time
	switch interval {
	case domain.IntervalDay:
		first = truncateDay(lo)
		last = next(truncateDay(hi), interval)
	case domain.IntervalHour:
		first = lo.UTC().Truncate(interval.Step())
		last = next(hi.UTC().Truncate(interval.Step()), interval)
	}

	var boundaries []time.Time
	for b := first; !b.After(last); b = next(b, interval) {
		boundaries = append(boundaries, b)
	}
	return boundaries, nil
}

// Buckets pairs consecutive boundaries into half-open buckets
func Buckets(boundaries []time.Time) []domain.Bucket {
	if len(boundaries) < 2 {
		return nil
	}
	buckets := make([]domain.Bucket, 0, len(boundaries)-1)
	for i := 0; i+1 < len(boundaries); i++ {
		buckets = append(buckets, domain.Bucket{Start: boundaries[i], End: boundaries[i+1]})
	}
	return buckets
}

// next steps a UTC boundary forward by one interval
func next(t time.Time, interval domain.Interval) time.Time {
	return t.Add(interval.Step())
}
