package pagewatch_test

import (
	"testing"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/stretchr/testify/assert"
)

func TestState_Prune_removes_expired_notified_entries(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ttl := 24 * time.Hour

	s := pagewatch.NewState()
	s.RecordNotified("old", now.Add(-ttl-time.Minute))
	s.RecordNotified("fresh", now.Add(-time.Hour))
	s.Fingerprints["https://s.kz/p"] = "fp1"

	s.Prune(ttl, now)

	assert.NotContains(t, s.Notified, "old")
	assert.Contains(t, s.Notified, "fresh")

	// Fingerprints survive TTL pruning.
	assert.Equal(t, "fp1", s.Fingerprints["https://s.kz/p"])
}

func TestState_re_notification_permitted_after_prune(t *testing.T) {
	t.Parallel()

	now := time.Now()
	ttl := time.Hour

	s := pagewatch.NewState()
	s.RecordNotified("key", now)
	assert.False(t, s.ShouldNotify("key", false))

	s.Prune(ttl, now.Add(ttl+time.Second))
	assert.True(t, s.ShouldNotify("key", false))
}

func TestState_ShouldNotify_at_most_once_per_key(t *testing.T) {
	t.Parallel()

	s := pagewatch.NewState()

	assert.True(t, s.ShouldNotify("key", false))
	s.RecordNotified("key", time.Now())
	assert.False(t, s.ShouldNotify("key", false))
}

func TestState_ShouldNotify_force_bypasses_dedup(t *testing.T) {
	t.Parallel()

	s := pagewatch.NewState()
	s.RecordNotified("key", time.Now())

	assert.True(t, s.ShouldNotify("key", true))
}

func TestState_RecordFingerprint_reports_changes(t *testing.T) {
	t.Parallel()

	s := pagewatch.NewState()

	// First observation is not a change.
	assert.False(t, s.RecordFingerprint("https://s.kz/p", "f1"))

	// Same value again is not a change.
	assert.False(t, s.RecordFingerprint("https://s.kz/p", "f1"))

	// A different value is.
	assert.True(t, s.RecordFingerprint("https://s.kz/p", "f2"))
	assert.Equal(t, "f2", s.Fingerprints["https://s.kz/p"])
}

func TestState_Normalize_repairs_nil_maps(t *testing.T) {
	t.Parallel()

	var s pagewatch.State
	s.Normalize()

	assert.NotNil(t, s.Notified)
	assert.NotNil(t, s.Fingerprints)
}
