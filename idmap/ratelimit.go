package idmap

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/hupe1980/dagset"
	"github.com/hupe1980/dagset/core"
)

// RateLimitedConvert wraps an IdConvert and throttles the operations that
// may hit a remote service. One token is consumed per round trip, so a
// batched lookup costs the same as a single lookup; the local-only probe is
// never throttled.
type RateLimitedConvert struct {
	inner   dagset.IdConvert
	limiter *rate.Limiter
}

var _ dagset.IdConvert = (*RateLimitedConvert)(nil)

// RateLimited wraps inner with the given limiter.
func RateLimited(inner dagset.IdConvert, limiter *rate.Limiter) *RateLimitedConvert {
	return &RateLimitedConvert{inner: inner, limiter: limiter}
}

func (c *RateLimitedConvert) VertexName(ctx context.Context, id core.Id) (core.Vertex, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.inner.VertexName(ctx, id)
}

func (c *RateLimitedConvert) VertexNameBatch(ctx context.Context, ids []core.Id) ([]core.Vertex, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return c.inner.VertexNameBatch(ctx, ids)
}

func (c *RateLimitedConvert) ContainsVertexIdLocally(ctx context.Context, ids []core.Id) ([]bool, error) {
	return c.inner.ContainsVertexIdLocally(ctx, ids)
}

func (c *RateLimitedConvert) VertexIdWithMaxGroup(ctx context.Context, v core.Vertex, maxGroup core.Group) (core.Id, bool, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, false, err
	}
	return c.inner.VertexIdWithMaxGroup(ctx, v, maxGroup)
}

func (c *RateLimitedConvert) MapVersion() dagset.Version {
	return c.inner.MapVersion()
}
