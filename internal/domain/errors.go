package domain

import "errors"

// ErrNotFound is returned by snapshot backends when no snapshot exists yet
// under the configured namespace key. The itinerary store treats it as
// "start from empty"; it never reaches callers of the store API.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a business rule (missing
// destination id or place name, malformed start time). Handlers should map
// this to HTTP 422 Unprocessable Entity.
//
// Note the deliberate asymmetry with the store's benign no-op conditions
// (duplicate add, unknown entry id, out-of-range reorder index): those are
// not errors at all and never produce ErrValidation.
var ErrValidation = errors.New("validation error")
