package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/wayfare/backend/internal/domain"
	"github.com/wayfare/backend/internal/plan"
)

// addResponse is the body returned by AddToItinerary.
// Added is false when the destination was already present — a suppressed
// duplicate, reported as success rather than an error.
type addResponse struct {
	Added   bool                    `json:"added"`
	Entries []domain.ItineraryEntry `json:"entries"`
}

// reorderRequest is the body for PUT .../order: absolute sequence indices.
type reorderRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// moveRequest is the body for PUT .../move: the day-relative positions a
// drag-and-drop UI reports. Days are 1-based, indices 0-based within a day.
type moveRequest struct {
	SourceDay   int `json:"source_day"`
	SourceIndex int `json:"source_index"`
	DestDay     int `json:"dest_day"`
	DestIndex   int `json:"dest_index"`
}

// entryTimeRequest is the body for PATCH .../{destinationID}/time.
type entryTimeRequest struct {
	StartTime string `json:"start_time"`
}

// GetItinerary handles GET /users/{userID}/itinerary.
// Unknown users get an empty array, never a 404: an itinerary that was never
// written to is indistinguishable from an empty one.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	respondJSON(w, http.StatusOK, s.itineraries.Get(r.Context(), userID))
}

// AddToItinerary handles POST /users/{userID}/itinerary.
// The body is a Destination as supplied by the post subsystem. Returns 201
// when inserted, 200 when the destination was already present, and 422 when
// the destination is missing its id or place name.
func (s *Server) AddToItinerary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var dest domain.Destination
	if err := json.NewDecoder(r.Body).Decode(&dest); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	added, err := s.itineraries.Add(r.Context(), userID, dest)
	if err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondValidation(w, err)
			return
		}
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal", Message: "could not add to itinerary"},
		})
		return
	}

	status := http.StatusOK
	if added {
		status = http.StatusCreated
	}
	respondJSON(w, status, addResponse{
		Added:   added,
		Entries: s.itineraries.Get(r.Context(), userID),
	})
}

// RemoveFromItinerary handles DELETE /users/{userID}/itinerary/{destinationID}.
// Removing an entry that is not there is still a 204: the desired end state
// holds either way.
func (s *Server) RemoveFromItinerary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	destinationID := chi.URLParam(r, "destinationID")

	s.itineraries.Remove(r.Context(), userID, destinationID)
	w.WriteHeader(http.StatusNoContent)
}

// ClearItinerary handles DELETE /users/{userID}/itinerary.
func (s *Server) ClearItinerary(w http.ResponseWriter, r *http.Request) {
	s.itineraries.Clear(r.Context(), chi.URLParam(r, "userID"))
	w.WriteHeader(http.StatusNoContent)
}

// ReorderItinerary handles PUT /users/{userID}/itinerary/order with absolute
// sequence indices. Out-of-range indices are a benign no-op in the store, so
// the response is 204 regardless.
func (s *Server) ReorderItinerary(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req reorderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	s.itineraries.Reorder(r.Context(), userID, req.From, req.To)
	w.WriteHeader(http.StatusNoContent)
}

// MoveEntry handles PUT /users/{userID}/itinerary/move with the day-relative
// positions a drag gesture produces. Translation to absolute indices happens
// through plan, the same formula the view controller uses — never inline.
func (s *Server) MoveEntry(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}
	if req.SourceDay < 1 || req.DestDay < 1 || req.SourceIndex < 0 || req.DestIndex < 0 {
		respondBadRequest(w, "day numbers are 1-based and indices 0-based")
		return
	}

	from := plan.AbsoluteIndex(req.SourceDay, req.SourceIndex, s.bucketSize)
	to := plan.AbsoluteIndex(req.DestDay, req.DestIndex, s.bucketSize)
	s.itineraries.Reorder(r.Context(), userID, from, to)
	w.WriteHeader(http.StatusNoContent)
}

// SetEntryTime handles PATCH /users/{userID}/itinerary/{destinationID}/time.
// Returns 422 for a malformed time; an unknown entry is a 204 no-op.
func (s *Server) SetEntryTime(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	destinationID := chi.URLParam(r, "destinationID")

	var req entryTimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	if err := s.itineraries.SetStartTime(r.Context(), userID, destinationID, req.StartTime); err != nil {
		if errors.Is(err, domain.ErrValidation) {
			respondValidation(w, err)
			return
		}
		respondJSON(w, http.StatusInternalServerError, ErrorResponse{
			Error: ErrorDetail{Code: "internal", Message: "could not update entry time"},
		})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// GetDays handles GET /users/{userID}/itinerary/days.
// Buckets are derived on every request from the current entry order.
func (s *Server) GetDays(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	respondJSON(w, http.StatusOK, s.itineraries.Days(r.Context(), userID))
}
