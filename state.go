package pagewatch

import (
	"context"
	"time"
)

// State is the persistent notification memory carried across scan cycles.
// It is an explicit value: the orchestrator loads it at cycle start, owns
// it for the duration of the cycle, and saves it through a StateStore
// after every confirmed notification.
type State struct {
	// Notified maps dedup keys to the epoch-millisecond timestamp of the
	// last notification for that key.
	Notified map[string]int64 `json:"notified"`

	// Fingerprints maps normalized URLs to the most recently observed
	// content fingerprint. Entries are never pruned by TTL, only
	// superseded, so change detection survives pruning of Notified.
	Fingerprints map[string]string `json:"lastFingerprint"`
}

// NewState returns an empty valid state.
func NewState() *State {
	return &State{
		Notified:     make(map[string]int64),
		Fingerprints: make(map[string]string),
	}
}

// Normalize replaces nil maps with empty ones so a state deserialized from
// a partial document is always safe to use.
func (s *State) Normalize() {
	if s.Notified == nil {
		s.Notified = make(map[string]int64)
	}
	if s.Fingerprints == nil {
		s.Fingerprints = make(map[string]string)
	}
}

// Prune removes every notified entry older than now-ttl. Fingerprints are
// untouched. Pruning is monotonic: an entry never resurrects except by
// being re-notified.
func (s *State) Prune(ttl time.Duration, now time.Time) {
	cutoff := now.Add(-ttl).UnixMilli()
	for key, ts := range s.Notified {
		if ts < cutoff {
			delete(s.Notified, key)
		}
	}
}

// ShouldNotify reports whether a notification for key should fire: always
// when force is set, otherwise only when the key has no notified entry.
func (s *State) ShouldNotify(key string, force bool) bool {
	if force {
		return true
	}
	_, seen := s.Notified[key]
	return !seen
}

// RecordNotified marks key as notified at now.
func (s *State) RecordNotified(key string, now time.Time) {
	s.Notified[key] = now.UnixMilli()
}

// RecordFingerprint stores the latest fingerprint for a normalized URL and
// reports whether it replaced a different prior value (the "content
// changed" signal). A first observation is not a change.
func (s *State) RecordFingerprint(normalized, fp string) (changed bool) {
	prev, ok := s.Fingerprints[normalized]
	s.Fingerprints[normalized] = fp
	return ok && prev != fp
}

// StateStore persists State across process runs.
type StateStore interface {
	// Load reads the persisted state. A missing or corrupt store yields an
	// empty state, never an error; first-run and corruption are not fatal.
	Load(ctx context.Context) (*State, error)

	// Save persists the full state atomically enough that a concurrent
	// reader never observes a partially written document.
	Save(ctx context.Context, state *State) error
}
