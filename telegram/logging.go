package telegram

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/pagewatch"
)

// Ensure LoggingNotifier implements pagewatch.Notifier.
var _ pagewatch.Notifier = (*LoggingNotifier)(nil)

// LoggingNotifier wraps a Notifier with delivery logging.
type LoggingNotifier struct {
	next   pagewatch.Notifier
	logger *slog.Logger
}

// NewLoggingNotifier creates a new LoggingNotifier.
func NewLoggingNotifier(next pagewatch.Notifier, logger *slog.Logger) *LoggingNotifier {
	return &LoggingNotifier{next: next, logger: logger}
}

// Notify logs the delivery attempt and delegates to the wrapped notifier.
func (n *LoggingNotifier) Notify(ctx context.Context, notification pagewatch.Notification) (err error) {
	defer func(begin time.Time) {
		n.logger.Info("notify",
			"href", notification.Href,
			"changed", notification.Changed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return n.next.Notify(ctx, notification)
}
