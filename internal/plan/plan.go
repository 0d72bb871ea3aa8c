// Package plan derives travel-day groupings from an ordered entry sequence.
// Everything here is a pure function of its inputs: buckets are recomputed on
// every call and no day assignment is ever stored on an entry, so reorders,
// adds, and removals reshuffle day membership with no extra bookkeeping.
package plan

import "github.com/wayfare/backend/internal/domain"

// DefaultBucketSize is the number of entries grouped into one travel day.
const DefaultBucketSize = 4

// Fallback day window used when the boundary entries carry no start time.
const (
	defaultDayStart = "09:00"
	defaultDayEnd   = "17:00"
)

// Partition groups entries into consecutive day buckets of bucketSize each.
// The entry at position i lands in bucket i/bucketSize + 1. Bucketing is
// purely positional: durations contribute to a bucket's total but never
// influence membership, so an over-scheduled day stays over-scheduled rather
// than being rebalanced.
//
// bucketSize <= 0 falls back to DefaultBucketSize. The result is always
// non-nil so callers can range over it.
func Partition(entries []domain.ItineraryEntry, bucketSize int) []domain.DayBucket {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}

	buckets := []domain.DayBucket{}
	for start := 0; start < len(entries); start += bucketSize {
		end := min(start+bucketSize, len(entries))
		members := entries[start:end]

		var total float64
		for _, e := range members {
			total += e.Duration()
		}

		buckets = append(buckets, domain.DayBucket{
			DayNumber:          start/bucketSize + 1,
			Entries:            members,
			TotalDurationHours: total,
			StartTime:          orDefault(members[0].StartTime, defaultDayStart),
			EndTime:            orDefault(members[len(members)-1].StartTime, defaultDayEnd),
		})
	}
	return buckets
}

// AbsoluteIndex translates a day-relative position back into an index in the
// flat ordered sequence. dayNumber is 1-based, dayRelative is 0-based.
//
// This formula and DayPosition are the only home of day/absolute index
// translation; the view controller and the HTTP move endpoint both call in
// here. Keeping it in one place matters because the two index spaces are easy
// to conflate when the last day is a partial bucket.
func AbsoluteIndex(dayNumber, dayRelative, bucketSize int) int {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	return dayRelative + (dayNumber-1)*bucketSize
}

// DayPosition is the inverse of AbsoluteIndex: it maps an absolute sequence
// index to its 1-based day number and 0-based position within the day.
func DayPosition(absolute, bucketSize int) (dayNumber, dayRelative int) {
	if bucketSize <= 0 {
		bucketSize = DefaultBucketSize
	}
	return absolute/bucketSize + 1, absolute % bucketSize
}

// orDefault returns s unless it is empty, in which case fallback is returned.
func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
