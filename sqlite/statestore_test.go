package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustOpenDB returns an in-memory database and a cleanup-registered close.
func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func TestStateStore_Load_empty_database_returns_empty_state(t *testing.T) {
	t.Parallel()

	store := sqlite.NewStateStore(mustOpenDB(t))

	state, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, state.Notified)
	assert.Empty(t, state.Fingerprints)
}

func TestStateStore_Save_then_Load_round_trips(t *testing.T) {
	t.Parallel()

	store := sqlite.NewStateStore(mustOpenDB(t))
	ctx := context.Background()

	state := pagewatch.NewState()
	state.RecordNotified("https://s.kz/p|f1", time.UnixMilli(1700000000000))
	state.RecordNotified("https://s.kz/q", time.UnixMilli(1700000001000))
	state.RecordFingerprint("https://s.kz/p", "f1")

	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, state.Notified, loaded.Notified)
	assert.Equal(t, state.Fingerprints, loaded.Fingerprints)
}

func TestStateStore_Save_replaces_previous_state(t *testing.T) {
	t.Parallel()

	store := sqlite.NewStateStore(mustOpenDB(t))
	ctx := context.Background()

	first := pagewatch.NewState()
	first.RecordNotified("stale", time.UnixMilli(1))
	require.NoError(t, store.Save(ctx, first))

	second := pagewatch.NewState()
	second.RecordNotified("fresh", time.UnixMilli(2))
	require.NoError(t, store.Save(ctx, second))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.NotContains(t, loaded.Notified, "stale")
	assert.Equal(t, int64(2), loaded.Notified["fresh"])
}

func TestStateStore_Save_updates_fingerprint_in_place(t *testing.T) {
	t.Parallel()

	store := sqlite.NewStateStore(mustOpenDB(t))
	ctx := context.Background()

	state := pagewatch.NewState()
	state.RecordFingerprint("https://s.kz/p", "f1")
	require.NoError(t, store.Save(ctx, state))

	state.RecordFingerprint("https://s.kz/p", "f2")
	require.NoError(t, store.Save(ctx, state))

	loaded, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "f2", loaded.Fingerprints["https://s.kz/p"])
}
