package domain

import "time"

// DefaultDurationHours is assumed for entries that never had a visit length
// set. It is applied when the entry is built from a destination and again,
// defensively, wherever durations are summed (old snapshots may carry zeros).
const DefaultDurationHours = 2

// ItineraryEntry is the core's owned copy of a selected destination plus its
// scheduling metadata. Entries live inside a user's ordered sequence; the
// position in that sequence is the travel order and is not stored on the
// entry itself.
type ItineraryEntry struct {
	DestinationID string `json:"destination_id"`
	PlaceName     string `json:"place_name"`
	Location      string `json:"location,omitempty"`
	BestSeason    string `json:"best_season,omitempty"`
	Category      string `json:"category,omitempty"`
	Text          string `json:"text,omitempty"`

	BestTimeOfDay   string `json:"best_time_of_day,omitempty"`
	RequiresBooking bool   `json:"requires_booking,omitempty"`

	// AddedAt is stamped once at insertion and never mutated afterwards.
	AddedAt time.Time `json:"added_at"`

	// StartTime is an optional "HH:MM" time of day. Empty means unscheduled.
	// It is the only field the store mutates after insertion.
	StartTime string `json:"start_time,omitempty"`

	DurationHours float64 `json:"duration_hours"`
}

// NewItineraryEntry builds an entry from a destination, stamping addedAt and
// defaulting the duration. Callers are expected to have validated d first.
func NewItineraryEntry(d Destination, addedAt time.Time) ItineraryEntry {
	duration := d.DurationHours
	if duration <= 0 {
		duration = DefaultDurationHours
	}
	return ItineraryEntry{
		DestinationID:   d.ID,
		PlaceName:       d.PlaceName,
		Location:        d.Location,
		BestSeason:      d.BestSeason,
		Category:        d.Category,
		Text:            d.Text,
		BestTimeOfDay:   d.BestTimeOfDay,
		RequiresBooking: d.RequiresBooking,
		AddedAt:         addedAt,
		DurationHours:   duration,
	}
}

// Duration returns the visit length in hours, falling back to
// DefaultDurationHours when the stored value is unset.
func (e ItineraryEntry) Duration() float64 {
	if e.DurationHours <= 0 {
		return DefaultDurationHours
	}
	return e.DurationHours
}
