// Package view holds the itinerary view-controller contract: the ephemeral
// UI state (which entries are expanded) and the gesture callbacks a rendering
// layer drives. The controller owns no itinerary data — every state change is
// delegated to the store — and its expanded set is session-local, never
// persisted, and not part of the data model.
package view

import (
	"context"

	"github.com/wayfare/backend/internal/domain"
	"github.com/wayfare/backend/internal/plan"
)

// ItineraryStore defines the store operations the controller depends on.
type ItineraryStore interface {
	Remove(ctx context.Context, userID, destinationID string)
	Reorder(ctx context.Context, userID string, from, to int)
	Clear(ctx context.Context, userID string)
	SetStartTime(ctx context.Context, userID, destinationID, startTime string) error
	Get(ctx context.Context, userID string) []domain.ItineraryEntry
	Days(ctx context.Context, userID string) []domain.DayBucket
}

// DayIndex is a day-relative position as reported by a drag-and-drop
// rendering layer: Day is 1-based, Index is 0-based within that day.
type DayIndex struct {
	Day   int
	Index int
}

// Controller mediates between a rendering layer and the itinerary store.
// It is meant for single-goroutine UI event loops and is not safe for
// concurrent use.
type Controller struct {
	store      ItineraryStore
	bucketSize int
	expanded   map[string]struct{}
}

// NewController builds a Controller over the given store. bucketSize must
// match the size used to render the day groups; pass 0 for the default.
func NewController(store ItineraryStore, bucketSize int) *Controller {
	if bucketSize <= 0 {
		bucketSize = plan.DefaultBucketSize
	}
	return &Controller{
		store:      store,
		bucketSize: bucketSize,
		expanded:   make(map[string]struct{}),
	}
}

// ToggleExpanded flips the expanded state of one entry's detail panel.
func (c *Controller) ToggleExpanded(destinationID string) {
	if _, ok := c.expanded[destinationID]; ok {
		delete(c.expanded, destinationID)
		return
	}
	c.expanded[destinationID] = struct{}{}
}

// IsExpanded reports whether an entry's detail panel is open.
func (c *Controller) IsExpanded(destinationID string) bool {
	_, ok := c.expanded[destinationID]
	return ok
}

// DragEnd handles a completed drag gesture. The rendering layer reports
// day-relative positions; these are translated to absolute sequence indices
// before the store reorder. The translation lives in plan so day-relative
// and absolute index spaces cannot drift apart between here and the HTTP
// move endpoint — conflating the two is exactly the bug that shows up when
// the last day is a partial bucket.
func (c *Controller) DragEnd(ctx context.Context, userID string, src, dst DayIndex) {
	from := plan.AbsoluteIndex(src.Day, src.Index, c.bucketSize)
	to := plan.AbsoluteIndex(dst.Day, dst.Index, c.bucketSize)
	c.store.Reorder(ctx, userID, from, to)
}

// Remove deletes one entry. The expanded flag for the entry is dropped too so
// a later re-add starts collapsed.
func (c *Controller) Remove(ctx context.Context, userID, destinationID string) {
	c.store.Remove(ctx, userID, destinationID)
	delete(c.expanded, destinationID)
}

// Clear empties the user's itinerary and collapses everything.
func (c *Controller) Clear(ctx context.Context, userID string) {
	c.store.Clear(ctx, userID)
	c.expanded = make(map[string]struct{})
}

// SetStartTime passes a time-edit gesture through to the store.
func (c *Controller) SetStartTime(ctx context.Context, userID, destinationID, startTime string) error {
	return c.store.SetStartTime(ctx, userID, destinationID, startTime)
}

// Days returns the derived day buckets for rendering.
func (c *Controller) Days(ctx context.Context, userID string) []domain.DayBucket {
	return c.store.Days(ctx, userID)
}
