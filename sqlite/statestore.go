package sqlite

import (
	"context"

	"github.com/fwojciec/pagewatch"
)

// Ensure StateStore implements pagewatch.StateStore at compile time.
var _ pagewatch.StateStore = (*StateStore)(nil)

// StateStore persists notification state in SQLite. It materializes the
// same State value as the JSON file backend: the notified and fingerprints
// tables carry the two maps, and Save replaces both in one transaction so
// readers never observe a half-written state.
type StateStore struct {
	db *DB
}

// NewStateStore creates a StateStore backed by db.
func NewStateStore(db *DB) *StateStore {
	return &StateStore{db: db}
}

// Load reads the full state. Query errors yield an empty state rather
// than failing the cycle, matching the file backend's corruption policy.
func (s *StateStore) Load(ctx context.Context) (*pagewatch.State, error) {
	state := pagewatch.NewState()

	rows, err := s.db.QueryContext(ctx, `SELECT key, ts FROM notified`)
	if err != nil {
		return pagewatch.NewState(), nil
	}
	defer rows.Close()
	for rows.Next() {
		var key string
		var ts int64
		if err := rows.Scan(&key, &ts); err != nil {
			return pagewatch.NewState(), nil
		}
		state.Notified[key] = ts
	}
	if err := rows.Err(); err != nil {
		return pagewatch.NewState(), nil
	}

	fpRows, err := s.db.QueryContext(ctx, `SELECT url, fp FROM fingerprints`)
	if err != nil {
		return pagewatch.NewState(), nil
	}
	defer fpRows.Close()
	for fpRows.Next() {
		var url, fp string
		if err := fpRows.Scan(&url, &fp); err != nil {
			return pagewatch.NewState(), nil
		}
		state.Fingerprints[url] = fp
	}
	if err := fpRows.Err(); err != nil {
		return pagewatch.NewState(), nil
	}

	return state, nil
}

// Save replaces the persisted state with the given one atomically.
func (s *StateStore) Save(ctx context.Context, state *pagewatch.State) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM notified`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM fingerprints`); err != nil {
		return err
	}

	for key, ts := range state.Notified {
		if _, err := tx.ExecContext(ctx, `INSERT INTO notified (key, ts) VALUES (?, ?)`, key, ts); err != nil {
			return err
		}
	}
	for url, fp := range state.Fingerprints {
		if _, err := tx.ExecContext(ctx, `INSERT INTO fingerprints (url, fp) VALUES (?, ?)`, url, fp); err != nil {
			return err
		}
	}

	return tx.Commit()
}
