package rod

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Ensure LoggingRenderer implements pagewatch.Renderer.
var _ pagewatch.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with debug logging.
type LoggingRenderer struct {
	next   pagewatch.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next pagewatch.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Anchors logs the navigation and delegates to the wrapped renderer.
func (r *LoggingRenderer) Anchors(ctx context.Context, url string) (anchors []pagewatch.Anchor, err error) {
	defer func(begin time.Time) {
		r.logger.Info("anchors",
			"url", url,
			"count", len(anchors),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Anchors(ctx, url)
}

// Fields logs the fingerprint fetch and delegates to the wrapped renderer.
func (r *LoggingRenderer) Fields(ctx context.Context, url string) (fields *pagewatch.PageFields, err error) {
	defer func(begin time.Time) {
		r.logger.Info("fields",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Fields(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
