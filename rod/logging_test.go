package rod_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/pagewatch"
	"github.com/fwojciec/pagewatch/mock"
	"github.com/fwojciec/pagewatch/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRenderer_delegates_and_logs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := &mock.Renderer{
		AnchorsFn: func(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
			return []pagewatch.Anchor{{Href: "https://s.kz/sauna/1"}}, nil
		},
		FieldsFn: func(ctx context.Context, url string) (*pagewatch.PageFields, error) {
			return &pagewatch.PageFields{Title: "t"}, nil
		},
		CloseFn: func() error { return nil },
	}

	r := rod.NewLoggingRenderer(inner, logger)

	anchors, err := r.Anchors(context.Background(), "https://s.kz/list")
	require.NoError(t, err)
	assert.Len(t, anchors, 1)
	assert.Contains(t, buf.String(), "anchors")
	assert.Contains(t, buf.String(), "https://s.kz/list")

	buf.Reset()
	fields, err := r.Fields(context.Background(), "https://s.kz/sauna/1")
	require.NoError(t, err)
	assert.Equal(t, "t", fields.Title)
	assert.Contains(t, buf.String(), "fields")

	assert.NoError(t, r.Close())
}

func TestLoggingRenderer_logs_errors(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	inner := &mock.Renderer{
		AnchorsFn: func(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
			return nil, errors.New("navigation timeout")
		},
	}

	_, err := rod.NewLoggingRenderer(inner, logger).Anchors(context.Background(), "https://s.kz")
	require.Error(t, err)
	assert.Contains(t, buf.String(), "navigation timeout")
}
