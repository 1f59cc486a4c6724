// Package fs provides file-based persistence for notification state.
package fs

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/fwojciec/pagewatch"
)

// Ensure StateStore implements pagewatch.StateStore at compile time.
var _ pagewatch.StateStore = (*StateStore)(nil)

// StateStore persists notification state as a single JSON file with atomic
// update semantics: Save writes to a temporary file in the same directory
// and renames it over the final path, so a concurrent reader observes
// either the old or the new document, never a torn write.
type StateStore struct {
	path string
}

// NewStateStore creates a StateStore backed by the file at path.
func NewStateStore(path string) *StateStore {
	return &StateStore{path: path}
}

// Load reads the state file. A missing, unreadable or unparsable file
// yields an empty state; first-run and corruption are never fatal.
func (s *StateStore) Load(ctx context.Context) (*pagewatch.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return pagewatch.NewState(), nil
	}

	state := pagewatch.NewState()
	if err := json.Unmarshal(data, state); err != nil {
		return pagewatch.NewState(), nil
	}
	state.Normalize()
	return state, nil
}

// Save persists the full state atomically.
func (s *StateStore) Save(ctx context.Context, state *pagewatch.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// The temp file must live on the same filesystem as the final path for
	// the rename to be atomic.
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return nil
}
