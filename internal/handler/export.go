// Package handler — export.go implements GET /users/{userID}/itinerary/export.
// Returns the user's itinerary as a flat table for external print/export
// renderers. Supports content negotiation via ?format=csv (CSV) or default (JSON).
package handler

import (
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/wayfare/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"day_number", "place_name", "location", "category", "best_season",
	"start_time", "duration_hours", "requires_booking", "added_at",
}

// GetExport handles GET /users/{userID}/itinerary/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")
	rows := s.exports.Export(r.Context(), userID)

	if r.URL.Query().Get("format") == "csv" {
		writeCSV(w, rows)
		return
	}
	respondJSON(w, http.StatusOK, rows)
}

// writeCSV streams rows as text/csv. An empty itinerary still produces the
// header row, so the output is always a valid CSV document.
func writeCSV(w http.ResponseWriter, rows []domain.ExportRow) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="itinerary.csv"`)

	cw := csv.NewWriter(w)
	//nolint:errcheck — errors surface via cw.Error after Flush.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(rowToCSVRecord(row))
	}
	cw.Flush()
}

// rowToCSVRecord encodes an ExportRow as a flat string slice.
func rowToCSVRecord(r domain.ExportRow) []string {
	return []string{
		strconv.Itoa(r.DayNumber),
		r.PlaceName,
		r.Location,
		r.Category,
		r.BestSeason,
		r.StartTime,
		strconv.FormatFloat(r.DurationHours, 'f', -1, 64),
		strconv.FormatBool(r.RequiresBooking),
		r.AddedAt.UTC().Format(time.RFC3339),
	}
}
