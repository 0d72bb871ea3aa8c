// Package itinerary implements the per-user itinerary store: an in-memory
// userID → ordered entry list mapping with snapshot persistence.
//
// The in-memory state is always authoritative. Every mutation writes the full
// snapshot through the configured backend, but a failed write is only a
// logged warning — it never rolls back the mutation or surfaces as an
// operation error. Missing users, unknown entry ids, duplicate adds, and
// out-of-range indices are benign no-ops, reflecting a UI convenience store
// rather than a transactional one.
package itinerary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/wayfare/backend/internal/domain"
	"github.com/wayfare/backend/internal/plan"
)

// SnapshotStore is the persistence contract the store depends on.
// Defining the interface here (in the consumer package) lets tests inject a
// failing or in-memory backend without touching redis or postgres.
type SnapshotStore interface {
	// Load returns the last persisted snapshot.
	// Returns domain.ErrNotFound when no snapshot exists yet.
	Load(ctx context.Context) (domain.Snapshot, error)

	// Save persists the snapshot, replacing any previous one (last write wins).
	Save(ctx context.Context, snap domain.Snapshot) error
}

// Store holds every user's itinerary, keyed by userID.
// A user's sequence is created lazily on first Add; Clear empties it but
// keeps the key. All methods are safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	itineraries map[string][]domain.ItineraryEntry

	snapshots  SnapshotStore
	bucketSize int
	log        *slog.Logger
	now        func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithBucketSize overrides the day bucket size used by Days.
func WithBucketSize(n int) Option {
	return func(s *Store) { s.bucketSize = n }
}

// WithClock overrides the time source. Tests use it to pin AddedAt values.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore builds a Store and seeds it from the backend's last snapshot.
// A missing snapshot means a fresh start; a failed or corrupt load is logged
// and also starts empty — construction never fails, because losing a durable
// copy must not take the itinerary feature down with it.
func NewStore(ctx context.Context, snapshots SnapshotStore, log *slog.Logger, opts ...Option) *Store {
	if log == nil {
		log = slog.Default()
	}
	s := &Store{
		itineraries: make(map[string][]domain.ItineraryEntry),
		snapshots:   snapshots,
		bucketSize:  plan.DefaultBucketSize,
		log:         log,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	snap, err := snapshots.Load(ctx)
	switch {
	case err == nil:
		if snap.Itineraries != nil {
			s.itineraries = snap.Itineraries
		}
	case errors.Is(err, domain.ErrNotFound):
		// First run under this namespace.
	default:
		log.Warn("itinerary snapshot load failed, starting empty", "error", err)
	}
	return s
}

// Add appends an entry built from dest to the user's itinerary.
// Returns true when inserted, false when dest.ID is already present (the
// duplicate is suppressed, not an error). A blank userID is a no-op.
// The only error condition is a malformed destination.
func (s *Store) Add(ctx context.Context, userID string, dest domain.Destination) (bool, error) {
	if userID == "" {
		return false, nil
	}
	if err := dest.Validate(); err != nil {
		return false, err
	}

	s.mu.Lock()
	for _, e := range s.itineraries[userID] {
		if e.DestinationID == dest.ID {
			s.mu.Unlock()
			return false, nil
		}
	}
	s.itineraries[userID] = append(s.itineraries[userID], domain.NewItineraryEntry(dest, s.now()))
	s.mu.Unlock()

	s.persist(ctx)
	return true, nil
}

// Remove deletes the entry with the given destination id, preserving the
// relative order of the rest. Unknown user or id is a no-op.
func (s *Store) Remove(ctx context.Context, userID, destinationID string) {
	if userID == "" {
		return
	}

	s.mu.Lock()
	entries, ok := s.itineraries[userID]
	idx := indexOf(entries, destinationID)
	if !ok || idx < 0 {
		s.mu.Unlock()
		return
	}
	s.itineraries[userID] = append(entries[:idx], entries[idx+1:]...)
	s.mu.Unlock()

	s.persist(ctx)
}

// Reorder moves the entry at from to position to — a single-element move,
// not a swap: intermediate entries shift by one. Either index out of range
// (or from == to) is a no-op.
func (s *Store) Reorder(ctx context.Context, userID string, from, to int) {
	if userID == "" {
		return
	}

	s.mu.Lock()
	entries := s.itineraries[userID]
	n := len(entries)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		s.mu.Unlock()
		return
	}
	moved := entries[from]
	entries = append(entries[:from], entries[from+1:]...)
	entries = append(entries[:to], append([]domain.ItineraryEntry{moved}, entries[to:]...)...)
	s.itineraries[userID] = entries
	s.mu.Unlock()

	s.persist(ctx)
}

// Clear empties the user's itinerary. The key stays so a later Add starts a
// fresh sequence rather than resurrecting stale data.
func (s *Store) Clear(ctx context.Context, userID string) {
	if userID == "" {
		return
	}

	s.mu.Lock()
	s.itineraries[userID] = []domain.ItineraryEntry{}
	s.mu.Unlock()

	s.persist(ctx)
}

// SetStartTime updates only the StartTime of the matching entry; position and
// every other field are untouched. An unknown entry is a no-op. The time must
// be "HH:MM" (24h) or empty to unschedule; anything else is ErrValidation.
func (s *Store) SetStartTime(ctx context.Context, userID, destinationID, startTime string) error {
	if userID == "" {
		return nil
	}
	if err := validateStartTime(startTime); err != nil {
		return err
	}

	s.mu.Lock()
	entries := s.itineraries[userID]
	idx := indexOf(entries, destinationID)
	if idx < 0 {
		s.mu.Unlock()
		return nil
	}
	entries[idx].StartTime = startTime
	s.mu.Unlock()

	s.persist(ctx)
	return nil
}

// Get returns a copy of the user's ordered entries. Unknown users get an
// empty, non-nil slice so callers can always range over the result.
func (s *Store) Get(_ context.Context, userID string) []domain.ItineraryEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.itineraries[userID]
	out := make([]domain.ItineraryEntry, len(entries))
	copy(out, entries)
	return out
}

// Days returns the user's entries partitioned into travel-day buckets.
// Buckets are derived on every call, never cached.
func (s *Store) Days(ctx context.Context, userID string) []domain.DayBucket {
	return plan.Partition(s.Get(ctx, userID), s.bucketSize)
}

// persist writes the full mapping through the snapshot backend with a short
// bounded retry. Failure is a warning: the in-memory state stays
// authoritative for the rest of the session and the caller's mutation
// already succeeded by the time we get here.
func (s *Store) persist(ctx context.Context) {
	s.mu.RLock()
	copied := make(map[string][]domain.ItineraryEntry, len(s.itineraries))
	for userID, entries := range s.itineraries {
		dup := make([]domain.ItineraryEntry, len(entries))
		copy(dup, entries)
		copied[userID] = dup
	}
	s.mu.RUnlock()

	snap := domain.NewSnapshot(copied, s.now())

	backoff := retry.WithMaxRetries(2, retry.NewConstant(100*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		if err := s.snapshots.Save(ctx, snap); err != nil {
			return retry.RetryableError(err)
		}
		return nil
	})
	if err != nil {
		s.log.Warn("itinerary snapshot write failed, in-memory state retained",
			"revision", snap.Revision, "error", err)
	}
}

// indexOf returns the position of the entry with the given destination id,
// or -1. Linear scan is fine: itineraries are human-curated and small.
func indexOf(entries []domain.ItineraryEntry, destinationID string) int {
	for i, e := range entries {
		if e.DestinationID == destinationID {
			return i
		}
	}
	return -1
}

func validateStartTime(s string) error {
	if s == "" {
		return nil
	}
	if _, err := time.Parse("15:04", s); err != nil {
		return fmt.Errorf("%w: start time must be HH:MM, got %q", domain.ErrValidation, s)
	}
	return nil
}
