package mock

import (
	"context"

	"github.com/fwojciec/pagewatch"
)

var _ pagewatch.StateStore = (*StateStore)(nil)

// StateStore is a mock implementation of pagewatch.StateStore.
type StateStore struct {
	LoadFn func(ctx context.Context) (*pagewatch.State, error)
	SaveFn func(ctx context.Context, state *pagewatch.State) error
}

func (s *StateStore) Load(ctx context.Context) (*pagewatch.State, error) {
	return s.LoadFn(ctx)
}

func (s *StateStore) Save(ctx context.Context, state *pagewatch.State) error {
	return s.SaveFn(ctx, state)
}

var _ pagewatch.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of pagewatch.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (d *DomainLimiter) Wait(ctx context.Context, domain string) error {
	if d.WaitFn == nil {
		return nil
	}
	return d.WaitFn(ctx, domain)
}
