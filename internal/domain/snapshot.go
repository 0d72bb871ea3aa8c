package domain

import (
	"time"

	"github.com/google/uuid"
)

// Snapshot is the persisted unit: the full userID → entries mapping under a
// single namespace key. Writes are whole-snapshot and last-write-wins; there
// is no merging of concurrent sessions.
type Snapshot struct {
	// Revision identifies one particular write. It is informational (useful
	// when eyeballing what a backend currently holds), not a concurrency
	// control token.
	Revision uuid.UUID `json:"revision"`

	SavedAt time.Time `json:"saved_at"`

	Itineraries map[string][]ItineraryEntry `json:"itineraries"`
}

// NewSnapshot stamps a fresh revision over the given mapping.
func NewSnapshot(itineraries map[string][]ItineraryEntry, savedAt time.Time) Snapshot {
	return Snapshot{
		Revision:    uuid.New(),
		SavedAt:     savedAt,
		Itineraries: itineraries,
	}
}
