// Package mock provides function-field mock implementations of the
// pagewatch interfaces for testing.
package mock

import (
	"context"

	"github.com/fwojciec/pagewatch"
)

var _ pagewatch.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of pagewatch.Renderer.
type Renderer struct {
	AnchorsFn func(ctx context.Context, url string) ([]pagewatch.Anchor, error)
	FieldsFn  func(ctx context.Context, url string) (*pagewatch.PageFields, error)
	CloseFn   func() error
}

func (r *Renderer) Anchors(ctx context.Context, url string) ([]pagewatch.Anchor, error) {
	return r.AnchorsFn(ctx, url)
}

func (r *Renderer) Fields(ctx context.Context, url string) (*pagewatch.PageFields, error) {
	return r.FieldsFn(ctx, url)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}
