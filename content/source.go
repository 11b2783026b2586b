package content

import (
	"context"
	"errors"
	"fmt"
)

// Source resolves the content bundle for one render.
type Source interface {
	Fetch(ctx context.Context) (Bundle, error)
}

// SourceFunc adapts a function to Source.
type SourceFunc func(ctx context.Context) (Bundle, error)

// Fetch calls f.
func (f SourceFunc) Fetch(ctx context.Context) (Bundle, error) {
	return f(ctx)
}

// Chain tries each source in order and returns the first bundle resolved.
type Chain struct {
	Sources []Source
	// OnError, when set, observes every failed source before the next one
	// is tried.
	OnError func(index int, err error)
}

// NewChain returns a Chain over sources, skipping nil entries.
func NewChain(sources ...Source) *Chain {
	c := &Chain{}
	for _, s := range sources {
		if s != nil {
			c.Sources = append(c.Sources, s)
		}
	}
	return c
}

// Fetch implements Source. When every source reports ErrNotFound the result
// is ErrNotFound; other failures are joined.
func (c *Chain) Fetch(ctx context.Context) (Bundle, error) {
	var errs []error
	notFound := true
	for i, s := range c.Sources {
		b, err := s.Fetch(ctx)
		if err == nil {
			return b, nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Bundle{}, ctxErr
		}
		if c.OnError != nil {
			c.OnError(i, err)
		}
		if !errors.Is(err, ErrNotFound) {
			notFound = false
		}
		errs = append(errs, err)
	}
	if notFound {
		return Bundle{}, ErrNotFound
	}
	return Bundle{}, fmt.Errorf("content: no source resolved: %w", errors.Join(errs...))
}
