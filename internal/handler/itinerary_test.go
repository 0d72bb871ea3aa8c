package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wayfare/backend/internal/domain"
	"github.com/wayfare/backend/internal/handler"
)

// mockItineraryServicer is a test double for handler.ItineraryServicer.
// Set only the method fields your test needs.
type mockItineraryServicer struct {
	add          func(ctx context.Context, userID string, dest domain.Destination) (bool, error)
	remove       func(ctx context.Context, userID, destinationID string)
	reorder      func(ctx context.Context, userID string, from, to int)
	clear        func(ctx context.Context, userID string)
	setStartTime func(ctx context.Context, userID, destinationID, startTime string) error
	get          func(ctx context.Context, userID string) []domain.ItineraryEntry
	days         func(ctx context.Context, userID string) []domain.DayBucket
}

func (m *mockItineraryServicer) Add(ctx context.Context, userID string, dest domain.Destination) (bool, error) {
	return m.add(ctx, userID, dest)
}
func (m *mockItineraryServicer) Remove(ctx context.Context, userID, destinationID string) {
	m.remove(ctx, userID, destinationID)
}
func (m *mockItineraryServicer) Reorder(ctx context.Context, userID string, from, to int) {
	m.reorder(ctx, userID, from, to)
}
func (m *mockItineraryServicer) Clear(ctx context.Context, userID string) {
	m.clear(ctx, userID)
}
func (m *mockItineraryServicer) SetStartTime(ctx context.Context, userID, destinationID, startTime string) error {
	return m.setStartTime(ctx, userID, destinationID, startTime)
}
func (m *mockItineraryServicer) Get(ctx context.Context, userID string) []domain.ItineraryEntry {
	if m.get != nil {
		return m.get(ctx, userID)
	}
	return []domain.ItineraryEntry{}
}
func (m *mockItineraryServicer) Days(ctx context.Context, userID string) []domain.DayBucket {
	return m.days(ctx, userID)
}

// compile-time check: mockItineraryServicer must satisfy handler.ItineraryServicer.
var _ handler.ItineraryServicer = (*mockItineraryServicer)(nil)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mock into the chi router,
// mirroring exactly how main.go wires it in production.
func newHTTPHandler(svc handler.ItineraryServicer) http.Handler {
	return handler.NewServer(svc, nil, 4).Routes()
}

func entryFixture(id string) domain.ItineraryEntry {
	return domain.ItineraryEntry{
		DestinationID: id,
		PlaceName:     "Place " + id,
		Location:      "Kyoto, Japan",
		BestSeason:    "Spring",
		Category:      "Temples",
		AddedAt:       time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		DurationHours: 2,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

// ---- GET /users/{userID}/itinerary ----------------------------------------

func TestGetItinerary_200(t *testing.T) {
	svc := &mockItineraryServicer{
		get: func(_ context.Context, userID string) []domain.ItineraryEntry {
			require.Equal(t, "u1", userID)
			return []domain.ItineraryEntry{entryFixture("d1"), entryFixture("d2")}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users/u1/itinerary", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.ItineraryEntry
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "d1", resp[0].DestinationID)
}

func TestGetItinerary_UnknownUser_EmptyArray(t *testing.T) {
	svc := &mockItineraryServicer{
		get: func(context.Context, string) []domain.ItineraryEntry {
			return []domain.ItineraryEntry{}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users/nobody/itinerary", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, "[]", rec.Body.String(), "empty array, never null")
}

// ---- POST /users/{userID}/itinerary ----------------------------------------

func TestAddToItinerary_201(t *testing.T) {
	svc := &mockItineraryServicer{
		add: func(_ context.Context, userID string, dest domain.Destination) (bool, error) {
			assert.Equal(t, "u1", userID)
			assert.Equal(t, "d1", dest.ID)
			return true, nil
		},
		get: func(context.Context, string) []domain.ItineraryEntry {
			return []domain.ItineraryEntry{entryFixture("d1")}
		},
	}

	body := jsonBody(t, map[string]any{
		"id":          "d1",
		"place_name":  "Fushimi Inari",
		"location":    "Kyoto, Japan",
		"best_season": "Spring",
		"category":    "Temples",
	})

	req := httptest.NewRequest(http.MethodPost, "/users/u1/itinerary", body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp struct {
		Added   bool                    `json:"added"`
		Entries []domain.ItineraryEntry `json:"entries"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Added)
	require.Len(t, resp.Entries, 1)
}

func TestAddToItinerary_Duplicate_200(t *testing.T) {
	svc := &mockItineraryServicer{
		add: func(context.Context, string, domain.Destination) (bool, error) {
			return false, nil
		},
	}

	body := jsonBody(t, map[string]any{"id": "d1", "place_name": "Fushimi Inari"})
	req := httptest.NewRequest(http.MethodPost, "/users/u1/itinerary", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code, "duplicate is success, not conflict")

	var resp struct {
		Added bool `json:"added"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Added)
}

func TestAddToItinerary_422_ValidationError(t *testing.T) {
	svc := &mockItineraryServicer{
		add: func(context.Context, string, domain.Destination) (bool, error) {
			return false, fmt.Errorf("%w: place name is required", domain.ErrValidation)
		},
	}

	body := jsonBody(t, map[string]any{"id": "d1"})
	req := httptest.NewRequest(http.MethodPost, "/users/u1/itinerary", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "validation_error", resp.Error.Code)
	assert.Equal(t, "place name is required", resp.Error.Message)
}

func TestAddToItinerary_400_MalformedBody(t *testing.T) {
	svc := &mockItineraryServicer{}

	req := httptest.NewRequest(http.MethodPost, "/users/u1/itinerary",
		bytes.NewBufferString("{not json"))
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- DELETE ----------------------------------------------------------------

func TestRemoveFromItinerary_204(t *testing.T) {
	var gotUser, gotDest string
	svc := &mockItineraryServicer{
		remove: func(_ context.Context, userID, destinationID string) {
			gotUser, gotDest = userID, destinationID
		},
	}

	req := httptest.NewRequest(http.MethodDelete, "/users/u1/itinerary/d7", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", gotUser)
	assert.Equal(t, "d7", gotDest)
}

func TestClearItinerary_204(t *testing.T) {
	var cleared string
	svc := &mockItineraryServicer{
		clear: func(_ context.Context, userID string) { cleared = userID },
	}

	req := httptest.NewRequest(http.MethodDelete, "/users/u1/itinerary", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "u1", cleared)
}

// ---- PUT .../order and .../move --------------------------------------------

func TestReorderItinerary_204(t *testing.T) {
	var gotFrom, gotTo int
	svc := &mockItineraryServicer{
		reorder: func(_ context.Context, _ string, from, to int) {
			gotFrom, gotTo = from, to
		},
	}

	body := jsonBody(t, map[string]any{"from": 4, "to": 0})
	req := httptest.NewRequest(http.MethodPut, "/users/u1/itinerary/order", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 4, gotFrom)
	assert.Equal(t, 0, gotTo)
}

// Moving day 2's first entry to the top of day 1 must reorder absolute
// indices 4 → 0 at bucket size 4.
func TestMoveEntry_TranslatesDayRelativeIndices(t *testing.T) {
	var gotFrom, gotTo int
	svc := &mockItineraryServicer{
		reorder: func(_ context.Context, _ string, from, to int) {
			gotFrom, gotTo = from, to
		},
	}

	body := jsonBody(t, map[string]any{
		"source_day":   2,
		"source_index": 0,
		"dest_day":     1,
		"dest_index":   0,
	})
	req := httptest.NewRequest(http.MethodPut, "/users/u1/itinerary/move", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, 4, gotFrom)
	assert.Equal(t, 0, gotTo)
}

func TestMoveEntry_400_InvalidDayNumbers(t *testing.T) {
	svc := &mockItineraryServicer{}

	body := jsonBody(t, map[string]any{
		"source_day":   0,
		"source_index": 0,
		"dest_day":     1,
		"dest_index":   0,
	})
	req := httptest.NewRequest(http.MethodPut, "/users/u1/itinerary/move", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

// ---- PATCH .../{destinationID}/time ----------------------------------------

func TestSetEntryTime_204(t *testing.T) {
	var gotTime string
	svc := &mockItineraryServicer{
		setStartTime: func(_ context.Context, _, _, startTime string) error {
			gotTime = startTime
			return nil
		},
	}

	body := jsonBody(t, map[string]any{"start_time": "14:30"})
	req := httptest.NewRequest(http.MethodPatch, "/users/u1/itinerary/d1/time", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "14:30", gotTime)
}

func TestSetEntryTime_422_MalformedTime(t *testing.T) {
	svc := &mockItineraryServicer{
		setStartTime: func(context.Context, string, string, string) error {
			return fmt.Errorf("%w: start time must be HH:MM, got %q", domain.ErrValidation, "9am")
		},
	}

	body := jsonBody(t, map[string]any{"start_time": "9am"})
	req := httptest.NewRequest(http.MethodPatch, "/users/u1/itinerary/d1/time", body)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

// ---- GET .../days ----------------------------------------------------------

func TestGetDays_200(t *testing.T) {
	svc := &mockItineraryServicer{
		days: func(_ context.Context, userID string) []domain.DayBucket {
			require.Equal(t, "u1", userID)
			return []domain.DayBucket{
				{
					DayNumber:          1,
					Entries:            []domain.ItineraryEntry{entryFixture("d1")},
					TotalDurationHours: 2,
					StartTime:          "09:00",
					EndTime:            "17:00",
				},
			}
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/users/u1/itinerary/days", nil)
	rec := httptest.NewRecorder()

	newHTTPHandler(svc).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp []domain.DayBucket
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp, 1)
	assert.Equal(t, 1, resp[0].DayNumber)
	assert.Equal(t, "09:00", resp[0].StartTime)
}
