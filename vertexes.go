package dagset

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/dagset/core"
)

// Vertexes resolves every member eagerly and returns the vertexes in the
// set's iteration order. Unlike Iter, which amortizes lookups while staying
// lazy, Vertexes partitions the ids into batches up front and resolves them
// with bounded parallelism. Use it when the whole set is needed anyway.
func (s *StaticSet) Vertexes(ctx context.Context) ([]core.Vertex, error) {
	it, reversed := s.iterAndReversed()
	ids := make([]core.Id, 0, it.Remaining())
	for {
		var id core.Id
		var ok bool
		if reversed {
			id, ok = it.NextBack()
		} else {
			id, ok = it.Next()
		}
		if !ok {
			break
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, nil
	}

	out := make([]core.Vertex, len(ids))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.opts.resolveConcurrency)

	batch := s.opts.batchSize
	for start := 0; start < len(ids); start += batch {
		end := min(start+batch, len(ids))
		g.Go(func() error {
			names, err := s.m.VertexNameBatch(ctx, ids[start:end])
			s.opts.logger.LogBatchLookup(ctx, end-start, err)
			if err != nil {
				return fmt.Errorf("batch resolve %d ids: %w", end-start, err)
			}
			if len(names) != end-start {
				return &ErrShortBatch{Requested: end - start, Received: len(names)}
			}
			copy(out[start:end], names)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
