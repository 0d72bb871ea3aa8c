package domain

// DayBucket is a derived grouping of consecutive itinerary entries into one
// travel day. Buckets are recomputed from entry order on every read and are
// never persisted, so they can never drift out of sync with the sequence.
type DayBucket struct {
	// DayNumber starts at 1.
	DayNumber int `json:"day_number"`

	Entries []ItineraryEntry `json:"entries"`

	// TotalDurationHours is the sum of member durations. It is informational
	// only: bucketing is by position, so a day can exceed any reasonable
	// length without entries being redistributed.
	TotalDurationHours float64 `json:"total_duration_hours"`

	// StartTime and EndTime are the first and last members' start times when
	// set, otherwise fixed defaults ("09:00" / "17:00").
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}
