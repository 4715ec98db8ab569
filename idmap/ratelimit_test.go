package idmap

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/hupe1980/dagset/core"
)

func TestRateLimitedConvert_Passthrough(t *testing.T) {
	ctx := context.Background()
	m := NewMem()
	require.NoError(t, m.Insert(1, core.Vertex("a")))
	require.NoError(t, m.InsertRemote(2, core.Vertex("b")))

	c := RateLimited(m, rate.NewLimiter(rate.Inf, 1))

	v, err := c.VertexName(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, core.Vertex("a"), v)

	names, err := c.VertexNameBatch(ctx, []core.Id{1, 2})
	require.NoError(t, err)
	assert.Len(t, names, 2)

	local, err := c.ContainsVertexIdLocally(ctx, []core.Id{1, 2})
	require.NoError(t, err)
	assert.Equal(t, []bool{true, false}, local)

	id, ok, err := c.VertexIdWithMaxGroup(ctx, core.Vertex("b"), core.GroupMax)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, core.Id(2), id)

	assert.Equal(t, m.MapVersion(), c.MapVersion())
}

func TestRateLimitedConvert_Throttles(t *testing.T) {
	m := NewMem()
	require.NoError(t, m.Insert(1, core.Vertex("a")))

	// A drained zero-rate limiter blocks forever; the context deadline must
	// cut the lookup short.
	c := RateLimited(m, rate.NewLimiter(0, 1))
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.VertexName(ctx, 1) // consumes the single burst token
	require.NoError(t, err)
	_, err = c.VertexName(ctx, 1)
	assert.Error(t, err)

	// Local probes bypass the limiter entirely.
	_, err = c.ContainsVertexIdLocally(ctx, []core.Id{1})
	assert.NoError(t, err)
}
