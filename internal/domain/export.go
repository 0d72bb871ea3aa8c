package domain

import "time"

// ExportRow is a single row in a user's itinerary export.
// It is a flat, denormalized view consumed by external print/export
// renderers: one row per entry, with the derived day number repeated for
// every entry in that day. The core does not depend on any renderer.
type ExportRow struct {
	DayNumber int `json:"day_number"`

	PlaceName  string `json:"place_name"`
	Location   string `json:"location"`
	Category   string `json:"category"`
	BestSeason string `json:"best_season"`

	// StartTime is the entry's scheduled "HH:MM" time, empty when unscheduled.
	StartTime     string  `json:"start_time"`
	DurationHours float64 `json:"duration_hours"`

	RequiresBooking bool      `json:"requires_booking"`
	AddedAt         time.Time `json:"added_at"`
}
