package handler_test

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfare/backend/internal/domain"
	"github.com/wayfare/backend/internal/handler"
)

// mockExportServicer is a test double for handler.ExportServicer.
type mockExportServicer struct {
	export func(ctx context.Context, userID string) []domain.ExportRow
}

func (m *mockExportServicer) Export(ctx context.Context, userID string) []domain.ExportRow {
	return m.export(ctx, userID)
}

var _ handler.ExportServicer = (*mockExportServicer)(nil)

func exportRowFixture() domain.ExportRow {
	return domain.ExportRow{
		DayNumber:       1,
		PlaceName:       "Fushimi Inari",
		Location:        "Kyoto, Japan",
		Category:        "Temples",
		BestSeason:      "Spring",
		StartTime:       "08:00",
		DurationHours:   3,
		RequiresBooking: false,
		AddedAt:         time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
	}
}

func newExportHandler(rows []domain.ExportRow) http.Handler {
	svc := &mockExportServicer{
		export: func(context.Context, string) []domain.ExportRow { return rows },
	}
	return handler.NewServer(nil, svc, 4).Routes()
}

func TestGetExport_JSON(t *testing.T) {
	h := newExportHandler([]domain.ExportRow{exportRowFixture()})

	req := httptest.NewRequest(http.MethodGet, "/users/u1/itinerary/export", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")

	var rows []domain.ExportRow
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Fushimi Inari", rows[0].PlaceName)
	assert.Equal(t, 1, rows[0].DayNumber)
}

func TestGetExport_CSV(t *testing.T) {
	h := newExportHandler([]domain.ExportRow{exportRowFixture()})

	req := httptest.NewRequest(http.MethodGet, "/users/u1/itinerary/export?format=csv", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2, "header plus one data row")
	assert.Equal(t, "day_number", records[0][0])
	assert.Equal(t, []string{
		"1", "Fushimi Inari", "Kyoto, Japan", "Temples", "Spring",
		"08:00", "3", "false", "2026-03-14T12:00:00Z",
	}, records[1])
}

func TestGetExport_CSV_EmptyItineraryStillHasHeader(t *testing.T) {
	h := newExportHandler([]domain.ExportRow{})

	req := httptest.NewRequest(http.MethodGet, "/users/u1/itinerary/export?format=csv", nil)
	rec := httptest.NewRecorder()

	h.ServeHTTP(rec, req)

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, csvHeadersForTest(), records[0])
}

// csvHeadersForTest mirrors the handler's column order; the test fails loudly
// if a column is added or reordered without updating the export contract.
func csvHeadersForTest() []string {
	return []string{
		"day_number", "place_name", "location", "category", "best_season",
		"start_time", "duration_hours", "requires_booking", "added_at",
	}
}
