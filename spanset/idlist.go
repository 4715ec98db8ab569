package spanset

import (
	"strings"

	"github.com/hupe1980/dagset/core"
)

// IdList is an ordered sequence of spans preserving an arbitrary,
// possibly non-monotonic traversal order. Unlike SpanSet, spans are kept in
// insertion order and are not merged across non-consecutive ids.
// Each span is traversed ascending (Low to High); descending input therefore
// produces single-id spans.
//
// An IdList must not repeat ids; duplicate ids make positional operations
// (Count, Slice) disagree with set semantics.
type IdList struct {
	spans []Span
}

// FromIds builds a list from ids in traversal order, collapsing consecutive
// ascending runs into spans.
func FromIds(ids ...core.Id) IdList {
	var l IdList
	for _, id := range ids {
		if n := len(l.spans); n > 0 && id == l.spans[n-1].High+1 {
			l.spans[n-1].High = id
			continue
		}
		l.spans = append(l.spans, Single(id))
	}
	return l
}

// ListFromSpans builds a list from spans in traversal order.
func ListFromSpans(spans ...Span) IdList {
	var l IdList
	for _, sp := range spans {
		if n := len(l.spans); n > 0 && sp.Low == l.spans[n-1].High+1 {
			l.spans[n-1].High = sp.High
			continue
		}
		l.spans = append(l.spans, sp)
	}
	return l
}

// Spans returns the spans in traversal order.
// The returned slice is a view; callers must not modify it.
func (l IdList) Spans() []Span {
	return l.spans
}

// Count returns the number of ids in the list.
func (l IdList) Count() uint64 {
	var total uint64
	for _, sp := range l.spans {
		total += sp.Count()
	}
	return total
}

// IsEmpty reports whether the list has no ids.
func (l IdList) IsEmpty() bool {
	return len(l.spans) == 0
}

// First returns the first id in traversal order.
func (l IdList) First() (core.Id, bool) {
	if len(l.spans) == 0 {
		return 0, false
	}
	return l.spans[0].Low, true
}

// Last returns the last id in traversal order.
func (l IdList) Last() (core.Id, bool) {
	if len(l.spans) == 0 {
		return 0, false
	}
	return l.spans[len(l.spans)-1].High, true
}

// Slice returns the sub-list covering positions [skip, skip+take) of the
// traversal order, splitting spans at the exact boundaries.
func (l IdList) Slice(skip, take uint64) IdList {
	var out []Span
	for _, sp := range l.spans {
		if take == 0 {
			break
		}
		c := sp.Count()
		if skip >= c {
			skip -= c
			continue
		}
		lo := sp.Low + core.Id(skip)
		skip = 0
		avail := uint64(sp.High-lo) + 1
		if take >= avail {
			out = append(out, Span{Low: lo, High: sp.High})
			take -= avail
		} else {
			out = append(out, Span{Low: lo, High: lo + core.Id(take) - 1})
			take = 0
		}
	}
	return IdList{spans: out}
}

// String formats the list as its spans in traversal order.
func (l IdList) String() string {
	parts := make([]string, len(l.spans))
	for i, sp := range l.spans {
		parts[i] = sp.String()
	}
	return strings.Join(parts, " ")
}

// ListIter is a double-ended iterator over an IdList's traversal order.
// The front yields ids in list order (each span ascending); the back yields
// the exact reverse.
type ListIter struct {
	spans     []Span
	frontSpan int
	frontOff  uint64 // next front id = spans[frontSpan].Low + frontOff
	backSpan  int
	backOff   uint64 // next back id = spans[backSpan].High - backOff
	remaining uint64
}

// Iter returns a new iterator positioned at both ends of the list.
func (l IdList) Iter() *ListIter {
	return &ListIter{
		spans:     l.spans,
		backSpan:  len(l.spans) - 1,
		remaining: l.Count(),
	}
}

// Remaining returns the number of ids not yet yielded from either end.
func (it *ListIter) Remaining() uint64 {
	return it.remaining
}

// Next yields the next id in traversal order.
func (it *ListIter) Next() (core.Id, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	sp := it.spans[it.frontSpan]
	id := sp.Low + core.Id(it.frontOff)
	it.frontOff++
	if it.frontOff == sp.Count() {
		it.frontSpan++
		it.frontOff = 0
	}
	it.remaining--
	return id, true
}

// NextBack yields the next id in reversed traversal order.
func (it *ListIter) NextBack() (core.Id, bool) {
	if it.remaining == 0 {
		return 0, false
	}
	sp := it.spans[it.backSpan]
	id := sp.High - core.Id(it.backOff)
	it.backOff++
	if it.backOff == sp.Count() {
		it.backSpan--
		it.backOff = 0
	}
	it.remaining--
	return id, true
}
