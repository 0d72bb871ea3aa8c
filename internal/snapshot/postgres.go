package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wayfare/backend/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Accepting this interface instead of *pgxpool.Pool directly allows integration
// tests to pass a transaction that is rolled back after each test, giving free
// per-test isolation without any manual cleanup.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists the snapshot as one JSONB row per namespace in the
// itinerary_snapshots table. Writes are upserts: last write wins, matching
// the contract's whole-snapshot granularity.
type PostgresStore struct {
	db        db
	namespace string
}

// NewPostgresStore returns a PostgresStore keyed by namespace.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewPostgresStore(db db, namespace string) *PostgresStore {
	return &PostgresStore{db: db, namespace: namespace}
}

// Load fetches and decodes the snapshot row for the namespace.
// Returns domain.ErrNotFound when no row exists yet.
func (p *PostgresStore) Load(ctx context.Context) (domain.Snapshot, error) {
	const q = `
		SELECT data
		FROM itinerary_snapshots
		WHERE namespace = @namespace`

	var data []byte
	err := p.db.QueryRow(ctx, q, pgx.NamedArgs{"namespace": p.namespace}).Scan(&data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Snapshot{}, fmt.Errorf("snapshot.PostgresStore.Load: %w", domain.ErrNotFound)
		}
		return domain.Snapshot{}, fmt.Errorf("snapshot.PostgresStore.Load: %w", err)
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot.PostgresStore.Load: decode namespace %q: %w", p.namespace, err)
	}
	return snap, nil
}

// Save upserts the snapshot row for the namespace.
func (p *PostgresStore) Save(ctx context.Context, snap domain.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot.PostgresStore.Save: encode: %w", err)
	}

	const q = `
		INSERT INTO itinerary_snapshots (namespace, revision, saved_at, data)
		VALUES (@namespace, @revision, @saved_at, @data)
		ON CONFLICT (namespace) DO UPDATE
		SET revision = EXCLUDED.revision,
		    saved_at = EXCLUDED.saved_at,
		    data     = EXCLUDED.data`

	args := pgx.NamedArgs{
		"namespace": p.namespace,
		"revision":  snap.Revision,
		"saved_at":  snap.SavedAt,
		"data":      data,
	}

	if _, err := p.db.Exec(ctx, q, args); err != nil {
		return fmt.Errorf("snapshot.PostgresStore.Save: %w", err)
	}
	return nil
}
