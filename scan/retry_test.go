package scan_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/scan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testDelays keeps retry tests fast.
var testDelays = []time.Duration{time.Millisecond, time.Millisecond}

func TestNavigateWithRetryDelays_succeeds_first_attempt(t *testing.T) {
	t.Parallel()

	calls := 0
	nav := func(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
		calls++
		return []pagewatch.Anchor{{Href: "https://s.kz/sauna/1"}}, nil
	}

	anchors, err := scan.NavigateWithRetryDelays(context.Background(), "https://s.kz", nav, nil, testDelays)
	require.NoError(t, err)
	assert.Len(t, anchors, 1)
	assert.Equal(t, 1, calls)
}

func TestNavigateWithRetryDelays_retries_then_succeeds(t *testing.T) {
	t.Parallel()

	calls := 0
	nav := func(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
		calls++
		if calls < 3 {
			return nil, errors.New("navigation timeout")
		}
		return []pagewatch.Anchor{}, nil
	}

	_, err := scan.NavigateWithRetryDelays(context.Background(), "https://s.kz", nav, nil, testDelays)
	require.NoError(t, err)
	assert.Equal(t, 3, calls)
}

func TestNavigateWithRetryDelays_returns_last_error_after_exhaustion(t *testing.T) {
	t.Parallel()

	lastErr := errors.New("still unreachable")
	calls := 0
	nav := func(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
		calls++
		return nil, lastErr
	}

	_, err := scan.NavigateWithRetryDelays(context.Background(), "https://s.kz", nav, nil, testDelays)
	require.Error(t, err)
	assert.Equal(t, lastErr, err)
	assert.Equal(t, len(testDelays)+1, calls)
}

func TestNavigateWithRetryDelays_respects_context_cancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	nav := func(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
		cancel()
		return nil, errors.New("fail")
	}

	_, err := scan.NavigateWithRetryDelays(ctx, "https://s.kz", nav, nil, []time.Duration{time.Hour})
	assert.ErrorIs(t, err, context.Canceled)
}
