package dagset

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/hupe1980/dagset/core"
)

// idIter is a double-ended iterator over ids. Both *spanset.Iter and
// *spanset.ListIter satisfy it.
type idIter interface {
	Next() (core.Id, bool)
	NextBack() (core.Id, bool)
	Remaining() uint64
}

// VertexIter lazily resolves a set's ids to vertex hashes in iteration
// order. Ids that are resolvable locally are resolved one at a time; the
// first id that would need a round trip triggers a single batched lookup
// covering the upcoming ids, so remote resolution is amortized.
//
// A VertexIter is single-consumer and not safe for concurrent use. Dropping
// it before exhaustion is always safe and simply abandons further lookups.
// It is restartable only by asking the set for a fresh iterator.
type VertexIter struct {
	ids       idIter
	reversed  bool
	m         IdConvert
	batchSize int
	logger    *Logger
	buf       []core.Vertex // completed batch, consumed from the end
}

// Iter returns a vertex iterator over the set in its iteration order.
func (s *StaticSet) Iter() *VertexIter {
	ids, reversed := s.iterAndReversed()
	return &VertexIter{
		ids:       ids,
		reversed:  reversed,
		m:         s.m,
		batchSize: s.opts.batchSize,
		logger:    s.opts.logger,
	}
}

// IterRev returns a vertex iterator over the set in reversed iteration
// order, without constructing a reversed set.
func (s *StaticSet) IterRev() *VertexIter {
	ids, reversed := s.iterAndReversed()
	return &VertexIter{
		ids:       ids,
		reversed:  !reversed,
		m:         s.m,
		batchSize: s.opts.batchSize,
		logger:    s.opts.logger,
	}
}

func (it *VertexIter) nextID() (core.Id, bool) {
	if it.reversed {
		return it.ids.NextBack()
	}
	return it.ids.Next()
}

// Remaining returns the number of vertexes not yet yielded.
func (it *VertexIter) Remaining() uint64 {
	return it.ids.Remaining() + uint64(len(it.buf))
}

// Next yields the next vertex. ok is false once the sequence is exhausted.
// A failed step reports the error without poisoning the underlying set,
// which stays valid for purely local operations.
func (it *VertexIter) Next(ctx context.Context) (v core.Vertex, ok bool, err error) {
	if n := len(it.buf); n > 0 {
		v = it.buf[n-1]
		it.buf = it.buf[:n-1]
		return v, true, nil
	}

	id, ok := it.nextID()
	if !ok {
		return nil, false, nil
	}

	local, err := it.m.ContainsVertexIdLocally(ctx, []core.Id{id})
	if err != nil {
		return nil, false, fmt.Errorf("local id probe: %w", err)
	}
	if len(local) != 1 {
		return nil, false, &ErrShortBatch{Requested: 1, Received: len(local)}
	}
	if local[0] {
		v, err := it.m.VertexName(ctx, id)
		if err != nil {
			return nil, false, fmt.Errorf("resolve id %s: %w", id, err)
		}
		return v, true, nil
	}

	// The id needs a round trip; gather up to batchSize additional upcoming
	// ids into the same batch.
	ids := make([]core.Id, 1, it.batchSize+1)
	ids[0] = id
	for len(ids) < it.batchSize+1 {
		next, ok := it.nextID()
		if !ok {
			break
		}
		ids = append(ids, next)
	}

	names, err := it.m.VertexNameBatch(ctx, ids)
	it.logger.LogBatchLookup(ctx, len(ids), err)
	if err != nil {
		return nil, false, fmt.Errorf("batch resolve %d ids: %w", len(ids), err)
	}
	if len(names) != len(ids) {
		return nil, false, &ErrShortBatch{Requested: len(ids), Received: len(names)}
	}

	// Store reversed so popping from the end preserves request order.
	slices.Reverse(names)
	it.buf = names
	v = it.buf[len(it.buf)-1]
	it.buf = it.buf[:len(it.buf)-1]
	return v, true, nil
}

// All returns a range-over-func sequence of the remaining vertexes.
// Iteration stops at the first error, which is yielded with a nil vertex.
func (it *VertexIter) All(ctx context.Context) iter.Seq2[core.Vertex, error] {
	return func(yield func(core.Vertex, error) bool) {
		for {
			v, ok, err := it.Next(ctx)
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}
			if !yield(v, nil) {
				return
			}
		}
	}
}
