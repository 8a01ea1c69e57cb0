package source

import (
	"context"
	"errors"
	"fmt"
)

// Chain tries providers in order and returns the first match
type Chain struct {
	providers []Provider
}

// NewChain creates a chain; local providers should come first
func NewChain(providers ...Provider) *Chain {
	return &Chain{providers: providers}
}

// Providers returns the chained providers
func (c *Chain) Providers() []Provider {
	return c.providers
}

// Match returns lyrics from the first provider that has them.
// Provider errors are remembered; ErrNotFound is returned only when every
// provider reported not found.
func (c *Chain) Match(ctx context.Context, track Track) (*Lyrics, error) {
	return c.match(ctx, track, nil)
}

// Refresh re-matches the track against remote providers only
func (c *Chain) Refresh(ctx context.Context, track Track) (*Lyrics, error) {
	return c.match(ctx, track, func(p Provider) bool {
		return p.Kind() == KindRemote
	})
}

// HasRemote reports whether any remote provider is configured
func (c *Chain) HasRemote() bool {
	for _, p := range c.providers {
		if p.Kind() == KindRemote {
			return true
		}
	}
	return false
}

func (c *Chain) match(ctx context.Context, track Track, include func(Provider) bool) (*Lyrics, error) {
	var errs []error

	for _, p := range c.providers {
		if include != nil && !include(p) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		lyrics, err := p.Match(ctx, track)
		if err == nil {
			return lyrics, nil
		}
		if !errors.Is(err, ErrNotFound) {
			errs = append(errs, fmt.Errorf("%s: %w", p.Name(), err))
		}
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, ErrNotFound
}
