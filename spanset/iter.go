package spanset

import (
	"iter"

	"github.com/hupe1980/dagset/core"
)

// Iter is a double-ended iterator over the ids of a SpanSet, yielding them
// in descending order from the front and ascending order from the back.
// Positions are computed from span boundaries; no per-id state is
// materialized, so Nth/NthBack skip in O(number of spans).
//
// The iterator holds a view of the set it was created from; mutating that
// set while iterating is undefined.
type Iter struct {
	spans     []Span
	frontSpan int
	frontOff  uint64 // next front id = spans[frontSpan].High - frontOff
	backSpan  int
	backOff   uint64 // next back id = spans[backSpan].Low + backOff
	remaining uint64
}

// IterDesc returns a new iterator positioned at both ends of the set.
func (s SpanSet) IterDesc() *Iter {
	return &Iter{
		spans:     s.spans,
		backSpan:  len(s.spans) - 1,
		remaining: s.Count(),
	}
}

// Remaining returns the number of ids not yet yielded from either end.
func (it *Iter) Remaining() uint64 {
	return it.remaining
}

// Next yields the next id from the front (descending).
func (it *Iter) Next() (core.Id, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	sp := it.spans[it.frontSpan]
	id := sp.High - core.Id(it.frontOff)
	it.frontOff++
	if it.frontOff == sp.Count() {
		it.frontSpan++
		it.frontOff = 0
	}
	it.remaining--
	return id, true
}

// NextBack yields the next id from the back (ascending).
func (it *Iter) NextBack() (core.Id, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	sp := it.spans[it.backSpan]
	id := sp.Low + core.Id(it.backOff)
	it.backOff++
	if it.backOff == sp.Count() {
		it.backSpan--
		it.backOff = 0
	}
	it.remaining--
	return id, true
}

// Nth skips n ids from the front and yields the next one, in O(spans).
func (it *Iter) Nth(n uint64) (core.Id, bool) {
	if n >= it.remaining {
		it.remaining = 0
		return 0, false
	}
	it.remaining -= n
	for n > 0 {
		avail := it.spans[it.frontSpan].Count() - it.frontOff
		if n < avail {
			it.frontOff += n
			n = 0
		} else {
			n -= avail
			it.frontSpan++
			it.frontOff = 0
		}
	}
	return it.Next()
}

// NthBack skips n ids from the back and yields the next one, in O(spans).
func (it *Iter) NthBack(n uint64) (core.Id, bool) {
	if n >= it.remaining {
		it.remaining = 0
		return 0, false
	}
	it.remaining -= n
	for n > 0 {
		avail := it.spans[it.backSpan].Count() - it.backOff
		if n < avail {
			it.backOff += n
			n = 0
		} else {
			n -= avail
			it.backSpan--
			it.backOff = 0
		}
	}
	return it.NextBack()
}

// Desc returns a range-over-func sequence of the ids in descending order.
func (s SpanSet) Desc() iter.Seq[core.Id] {
	return func(yield func(core.Id) bool) {
		it := s.IterDesc()
		for id, ok := it.Next(); ok; id, ok = it.Next() {
			if !yield(id) {
				return
			}
		}
	}
}

// Asc returns a range-over-func sequence of the ids in ascending order.
func (s SpanSet) Asc() iter.Seq[core.Id] {
	return func(yield func(core.Id) bool) {
		it := s.IterDesc()
		for id, ok := it.NextBack(); ok; id, ok = it.NextBack() {
			if !yield(id) {
				return
			}
		}
	}
}
