package dagset

import (
	"context"
	"fmt"

	"github.com/hupe1980/dagset/core"
	"github.com/hupe1980/dagset/spanset"
)

// StaticSet binds a spanset.SpanSet (or an order-preserving IdList) to an
// id/vertex converter and a graph snapshot. It is the unit handed to higher
// layers: purely id-level operations (count, membership by id, algebra via
// FromEditSpans) stay synchronous and local, while iterating resolves ids to
// vertex hashes lazily and in batches.
//
// StaticSet has immutable value semantics: operations that change ordering
// return a new instance and no two instances share mutable backing state.
type StaticSet struct {
	spans spanset.SpanSet
	list  spanset.IdList // active for OrderCustom / OrderCustomReversed
	m     IdConvert
	dag   DagAlgorithm
	hints Hints
	order Order
	opts  options
}

// NewFromSpans wraps a SpanSet as-is, in the native descending order.
func NewFromSpans(spans spanset.SpanSet, m IdConvert, dag DagAlgorithm, opts ...Option) *StaticSet {
	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	s := &StaticSet{
		spans: spans,
		m:     m,
		dag:   dag,
		order: OrderDesc,
		opts:  o,
	}
	s.hints.Add(FlagIDDesc | FlagTopoDesc)
	s.refreshBounds()
	return s
}

// NewFromIdList wraps an IdList, preserving its traversal order. The list is
// scanned once: a traversal that is provably monotonic collapses to plain
// OrderAsc or OrderDesc, enabling all SpanSet-native fast paths; anything
// else stays OrderCustom.
func NewFromIdList(list spanset.IdList, m IdConvert, dag DagAlgorithm, opts ...Option) *StaticSet {
	spans := list.Spans()
	if len(spans) == 0 {
		return NewFromSpans(spanset.Empty(), m, dag, opts...)
	}

	// Spans traverse ascending internally, so a descending traversal can
	// only consist of single-id spans.
	asc, desc := true, spans[0].Low == spans[0].High
	minID, maxID := spans[0].Low, spans[0].High
	for i := 1; i < len(spans); i++ {
		prev, cur := spans[i-1], spans[i]
		if prev.High >= cur.Low {
			asc = false
		}
		if cur.Low != cur.High || prev.Low <= cur.High {
			desc = false
		}
		minID = min(minID, cur.Low)
		maxID = max(maxID, cur.High)
	}

	o := defaultOptions()
	for _, fn := range opts {
		fn(&o)
	}
	s := &StaticSet{
		spans: spanset.FromSpans(spans...),
		m:     m,
		dag:   dag,
		opts:  o,
	}
	switch {
	case desc:
		s.setOrder(OrderDesc)
	case asc:
		s.setOrder(OrderAsc)
	default:
		s.order = OrderCustom
		s.list = list
	}
	s.hints.setBounds(minID, maxID)
	return s
}

// refreshBounds recomputes the empty flag and id bounds from the SpanSet.
func (s *StaticSet) refreshBounds() {
	if s.spans.IsEmpty() {
		s.hints.Add(FlagEmpty)
		s.hints.clearBounds()
		return
	}
	s.hints.Remove(FlagEmpty)
	minID, _ := s.spans.Min()
	maxID, _ := s.spans.Max()
	s.hints.setBounds(minID, maxID)
}

// setOrder re-imposes a definite monotonic order; only OrderAsc and
// OrderDesc are accepted. Descending id order is also topologically
// descending because ids are allocated parents-first.
func (s *StaticSet) setOrder(o Order) {
	switch o {
	case OrderDesc:
		s.order = OrderDesc
		s.hints.Remove(FlagIDAsc)
		s.hints.Add(FlagIDDesc | FlagTopoDesc)
	case OrderAsc:
		s.order = OrderAsc
		s.hints.Remove(FlagIDDesc | FlagTopoDesc)
		s.hints.Add(FlagIDAsc)
	default:
		panic(fmt.Sprintf("dagset: setOrder called with %s", o))
	}
}

// Order returns the active iteration order.
func (s *StaticSet) Order() Order {
	return s.order
}

// Hints returns a copy of the cached property hints.
func (s *StaticSet) Hints() Hints {
	return s.hints
}

// AddHintFlags marks additional cached properties on the set, e.g. a graph
// layer recording that the set is ancestor-closed. The caller must guarantee
// the properties actually hold; hints are trusted, never re-verified.
func (s *StaticSet) AddHintFlags(f Flags) {
	s.hints.Add(f)
}

// Spans returns the underlying id set. Callers must treat it as read-only.
func (s *StaticSet) Spans() spanset.SpanSet {
	return s.spans
}

// Map returns the converter the set is bound to.
func (s *StaticSet) Map() IdConvert {
	return s.m
}

// Dag returns the graph snapshot handle the set is bound to.
func (s *StaticSet) Dag() DagAlgorithm {
	return s.dag
}

// Count returns the number of members. O(number of spans).
func (s *StaticSet) Count() uint64 {
	return s.spans.Count()
}

// SizeHint returns exact lower and upper bounds on the member count.
// For StaticSet both bounds are the exact count.
func (s *StaticSet) SizeHint() (uint64, uint64) {
	n := s.spans.Count()
	return n, n
}

// IsEmpty reports whether the set has no members.
func (s *StaticSet) IsEmpty() bool {
	return s.spans.IsEmpty()
}

// ContainsId reports whether the id is a member, without any resolution.
func (s *StaticSet) ContainsId(id core.Id) bool {
	return s.spans.Contains(id)
}

// Contains reports whether the vertex is a member. This requires one forward
// name-to-id lookup through the converter.
func (s *StaticSet) Contains(ctx context.Context, v core.Vertex) (bool, error) {
	id, ok, err := s.m.VertexIdWithMaxGroup(ctx, v, core.GroupMax)
	if err != nil {
		return false, fmt.Errorf("resolve vertex %s: %w", v, err)
	}
	if !ok {
		return false, nil
	}
	return s.spans.Contains(id), nil
}

// Reversed returns the set with its iteration order flipped.
// Asc/Desc toggle in O(1) by flipping the order hints; Custom and
// CustomReversed share the same list and conservatively drop all
// order-related hints, since a reversed arbitrary order guarantees nothing.
func (s *StaticSet) Reversed() *StaticSet {
	out := *s
	switch s.order {
	case OrderDesc:
		out.setOrder(OrderAsc)
	case OrderAsc:
		out.setOrder(OrderDesc)
	case OrderCustom:
		out.order = OrderCustomReversed
		out.hints.Remove(FlagIDAsc | FlagIDDesc | FlagTopoDesc)
	case OrderCustomReversed:
		out.order = OrderCustom
		out.hints.Remove(FlagIDAsc | FlagIDDesc | FlagTopoDesc)
	}
	return &out
}

// SliceSpans returns the sub-sequence covering positions [skip, skip+take)
// of the set's iteration order.
//
// skip and take are semantic positions; they are first translated into the
// physical direction, because OrderAsc and OrderCustomReversed read the
// physical storage from its tail. Slicing always drops FlagAncestors: a
// strict sub-sequence of an ancestor-closed set is not ancestor-closed in
// general.
func (s *StaticSet) SliceSpans(skip, take uint64) *StaticSet {
	n := s.Count()
	start := min(skip, n)
	window := min(take, n-start)
	end := start + window

	out := *s
	switch s.order {
	case OrderDesc:
		out.spans = s.spans.Skip(start).Take(window)
	case OrderAsc:
		out.spans = s.spans.Skip(n - end).Take(window)
	case OrderCustom:
		out.list = s.list.Slice(start, window)
		out.spans = spanset.FromSpans(out.list.Spans()...)
	case OrderCustomReversed:
		out.list = s.list.Slice(n-end, window)
		out.spans = spanset.FromSpans(out.list.Spans()...)
	}
	out.hints.Remove(FlagAncestors | FlagFull)
	out.refreshBounds()
	return &out
}

// First resolves the first vertex in iteration order.
// ok is false for the empty set.
func (s *StaticSet) First(ctx context.Context) (core.Vertex, bool, error) {
	it, reversed := s.iterAndReversed()
	var id core.Id
	var ok bool
	if reversed {
		id, ok = it.NextBack()
	} else {
		id, ok = it.Next()
	}
	if !ok {
		return nil, false, nil
	}
	v, err := s.m.VertexName(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("resolve id %s: %w", id, err)
	}
	return v, true, nil
}

// Last resolves the last vertex in iteration order.
// ok is false for the empty set.
func (s *StaticSet) Last(ctx context.Context) (core.Vertex, bool, error) {
	it, reversed := s.iterAndReversed()
	var id core.Id
	var ok bool
	if reversed {
		id, ok = it.Next()
	} else {
		id, ok = it.NextBack()
	}
	if !ok {
		return nil, false, nil
	}
	v, err := s.m.VertexName(ctx, id)
	if err != nil {
		return nil, false, fmt.Errorf("resolve id %s: %w", id, err)
	}
	return v, true, nil
}

// iterAndReversed is the single place mapping the four iteration orders to
// a physical double-ended id iterator plus a consumption direction. Iter,
// IterRev, First, Last and Vertexes all go through it.
func (s *StaticSet) iterAndReversed() (idIter, bool) {
	switch s.order {
	case OrderAsc:
		return s.spans.IterDesc(), true
	case OrderCustom:
		return s.list.Iter(), false
	case OrderCustomReversed:
		return s.list.Iter(), true
	default:
		return s.spans.IterDesc(), false
	}
}

// FromEditSpans combines two sets purely at the interval level, bypassing
// any name resolution. It succeeds only when both sets are bound to
// comparable id map snapshots; the result binds to whichever side's
// converter and graph handle are newer. ok is false when the snapshots are
// incomparable, which signals the caller to fall back to a general,
// name-aware combinator.
func FromEditSpans(lhs, rhs *StaticSet, edit func(a, b spanset.SpanSet) spanset.SpanSet) (*StaticSet, bool) {
	cmp, ok := lhs.m.MapVersion().Compare(rhs.m.MapVersion())
	if !ok {
		return nil, false
	}
	picked := lhs
	if cmp < 0 {
		picked = rhs
	}
	out := NewFromSpans(edit(lhs.spans, rhs.spans), picked.m, picked.dag)
	out.opts = picked.opts
	return out, true
}
