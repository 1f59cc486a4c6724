package mock

import (
	"context"

	"github.com/fwojciec/pagewatch"
)

var _ pagewatch.Notifier = (*Notifier)(nil)

// Notifier is a mock implementation of pagewatch.Notifier.
type Notifier struct {
	NotifyFn func(ctx context.Context, n pagewatch.Notification) error
}

func (m *Notifier) Notify(ctx context.Context, n pagewatch.Notification) error {
	return m.NotifyFn(ctx, n)
}
