// Package domain contains the core data types for the Wayfare itinerary API.
// This package has zero external dependencies beyond uuid and is imported by
// every other internal package (snapshot, itinerary, plan, handler).
package domain

import (
	"fmt"
	"strings"
)

// Destination is the slice of a feed post that the itinerary core consumes.
// It is supplied by the post subsystem and copied verbatim into an
// ItineraryEntry; the core never reaches back into the post for images,
// comments, or author data.
type Destination struct {
	// ID uniquely identifies the originating post. Required.
	ID string `json:"id"`

	// PlaceName is the display name of the place. Required.
	PlaceName string `json:"place_name"`

	Location   string `json:"location,omitempty"`
	BestSeason string `json:"best_season,omitempty"`
	Category   string `json:"category,omitempty"`
	Text       string `json:"text,omitempty"`

	// BestTimeOfDay and RequiresBooking are optional descriptive fields
	// carried through to the entry unchanged.
	BestTimeOfDay   string `json:"best_time_of_day,omitempty"`
	RequiresBooking bool   `json:"requires_booking,omitempty"`

	// DurationHours is the expected visit length. Zero or negative means
	// "unset"; the entry falls back to DefaultDurationHours.
	DurationHours float64 `json:"duration_hours,omitempty"`
}

// Validate checks the fields the core depends on for identity and display.
// A destination without an ID cannot be de-duplicated or removed later, and
// one without a place name cannot be rendered, so both are rejected outright
// rather than treated as a benign no-op.
func (d Destination) Validate() error {
	if strings.TrimSpace(d.ID) == "" {
		return fmt.Errorf("%w: destination id is required", ErrValidation)
	}
	if strings.TrimSpace(d.PlaceName) == "" {
		return fmt.Errorf("%w: place name is required", ErrValidation)
	}
	return nil
}
