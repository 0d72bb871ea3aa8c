// Package service assembles derived views of itinerary data for external
// consumers. It contains no storage logic of its own.
package service

import (
	"context"

	"github.com/wayfare/backend/internal/domain"
	"github.com/wayfare/backend/internal/plan"
)

// ItineraryReader is the read-only slice of the store the export needs.
type ItineraryReader interface {
	Get(ctx context.Context, userID string) []domain.ItineraryEntry
}

// ExportService flattens one user's itinerary into renderer-agnostic rows:
// one row per entry, tagged with its derived day number. Print and export
// renderers consume these rows without the core knowing they exist.
type ExportService struct {
	itineraries ItineraryReader
	bucketSize  int
}

// NewExportService constructs an ExportService over the given reader.
// bucketSize must match the store's day bucketing; pass 0 for the default.
func NewExportService(itineraries ItineraryReader, bucketSize int) *ExportService {
	if bucketSize <= 0 {
		bucketSize = plan.DefaultBucketSize
	}
	return &ExportService{itineraries: itineraries, bucketSize: bucketSize}
}

// Export returns one ExportRow per entry in the user's itinerary, in travel
// order. Day numbers are derived at call time from the same partitioning the
// UI shows. Always returns a non-nil slice.
func (s *ExportService) Export(ctx context.Context, userID string) []domain.ExportRow {
	entries := s.itineraries.Get(ctx, userID)

	rows := make([]domain.ExportRow, 0, len(entries))
	for i, e := range entries {
		day, _ := plan.DayPosition(i, s.bucketSize)
		rows = append(rows, domain.ExportRow{
			DayNumber:       day,
			PlaceName:       e.PlaceName,
			Location:        e.Location,
			Category:        e.Category,
			BestSeason:      e.BestSeason,
			StartTime:       e.StartTime,
			DurationHours:   e.Duration(),
			RequiresBooking: e.RequiresBooking,
			AddedAt:         e.AddedAt,
		})
	}
	return rows
}
