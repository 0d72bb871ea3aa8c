// Package handler implements the HTTP surface of the Wayfare itinerary API.
// Handlers are methods on Server, split into domain-specific files
// (itinerary.go, export.go, health.go) that all share the same struct so
// they can access its dependencies.
package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfare/backend/internal/domain"
)

// ItineraryServicer defines the store operations the handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the real store or its persistence.
type ItineraryServicer interface {
	Add(ctx context.Context, userID string, dest domain.Destination) (bool, error)
	Remove(ctx context.Context, userID, destinationID string)
	Reorder(ctx context.Context, userID string, from, to int)
	Clear(ctx context.Context, userID string)
	SetStartTime(ctx context.Context, userID, destinationID, startTime string) error
	Get(ctx context.Context, userID string) []domain.ItineraryEntry
	Days(ctx context.Context, userID string) []domain.DayBucket
}

// ExportServicer defines the export assembly the export handler depends on.
type ExportServicer interface {
	Export(ctx context.Context, userID string) []domain.ExportRow
}

// Server holds the dependencies shared by all handlers.
type Server struct {
	itineraries ItineraryServicer
	exports     ExportServicer
	bucketSize  int
}

// NewServer constructs the Server with all its dependencies.
// bucketSize must match the store's day bucketing; pass 0 for the default.
func NewServer(itineraries ItineraryServicer, exports ExportServicer, bucketSize int) *Server {
	return &Server{itineraries: itineraries, exports: exports, bucketSize: bucketSize}
}

// Routes returns the chi router for the full API surface.
// Auth is the caller's concern: userID is taken from the path and used only
// as a map key, exactly as the store contract demands.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.GetHealth)

	r.Route("/users/{userID}/itinerary", func(r chi.Router) {
		r.Get("/", s.GetItinerary)
		r.Post("/", s.AddToItinerary)
		r.Delete("/", s.ClearItinerary)
		r.Put("/order", s.ReorderItinerary)
		r.Put("/move", s.MoveEntry)
		r.Get("/days", s.GetDays)
		r.Get("/export", s.GetExport)
		r.Delete("/{destinationID}", s.RemoveFromItinerary)
		r.Patch("/{destinationID}/time", s.SetEntryTime)
	})

	return r
}
