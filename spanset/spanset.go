package spanset

import (
	"container/heap"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/hupe1980/dagset/core"
)

// SpanSet is an integer set represented as an ordered collection of spans.
//
// Invariants:
//   - spans are sorted strictly descending by High
//   - no two stored spans overlap or touch: for adjacent spans a (earlier)
//     and b (later), a.Low > b.High+1
//
// The zero value is the empty set. SpanSet has value semantics: the pure
// algebra (Union, Intersection, Difference, Skip, Take) returns new sets and
// never mutates the receiver, so SpanSet values are safe to share across
// goroutines as long as the in-place mutators (Push*) are not used
// concurrently.
type SpanSet struct {
	spans []Span
}

// strictChecks re-validates the invariants after every constructor and
// mutator. Enabled by tests; off in production builds.
var strictChecks bool

// Empty returns the empty set.
func Empty() SpanSet {
	return SpanSet{}
}

// Full returns the set covering the entire valid id range.
func Full() SpanSet {
	return FromSortedSpans(Span{Low: core.MinId, High: core.MaxId})
}

// spanHeap is a max-heap ordered by (High, then Low).
type spanHeap []Span

func (h spanHeap) Len() int { return len(h) }
func (h spanHeap) Less(i, j int) bool {
	if h[i].High != h[j].High {
		return h[i].High > h[j].High
	}
	return h[i].Low > h[j].Low
}
func (h spanHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *spanHeap) Push(x any)   { *h = append(*h, x.(Span)) }
func (h *spanHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// FromSpans builds a set from arbitrary spans. The input may be unsorted and
// may contain overlapping or touching spans; they are merged.
func FromSpans(spans ...Span) SpanSet {
	h := spanHeap(slices.Clone(spans))
	heap.Init(&h)
	var out SpanSet
	out.spans = make([]Span, 0, len(spans))
	for h.Len() > 0 {
		out.pushWithUnion(heap.Pop(&h).(Span))
	}
	out.assertValid()
	return out
}

// FromSortedSpans builds a set from spans already sorted descending by High,
// with overlaps allowed only between adjacent inputs. Violating the ordering
// precondition produces an undefined result; use FromSpans when unsure.
func FromSortedSpans(spans ...Span) SpanSet {
	var out SpanSet
	out.spans = make([]Span, 0, len(spans))
	for _, sp := range spans {
		out.pushWithUnion(sp)
	}
	out.assertValid()
	return out
}

// pushWithUnion appends a span whose High does not exceed the High of any
// stored span, merging it into the current last span when they overlap or
// touch.
func (s *SpanSet) pushWithUnion(span Span) {
	n := len(s.spans)
	if n == 0 {
		s.spans = append(s.spans, span)
		return
	}
	last := &s.spans[n-1]
	if last.Low <= span.High+1 {
		last.Low = min(last.Low, span.Low)
		last.High = max(last.High, span.High)
		return
	}
	s.spans = append(s.spans, span)
}

// Push inserts a span at an arbitrary position, merging as needed.
//
// The common cases (extending either end, or merging into exactly one stored
// span found by binary search) are O(log n); only the multi-span merge and
// the mid-list insert fall back to an O(n) union rebuild.
func (s *SpanSet) Push(span Span) {
	n := len(s.spans)
	if n == 0 {
		s.spans = append(s.spans, span)
		s.assertValid()
		return
	}

	// k1: last stored span that is not strictly below `span`
	// (strictly below means High+1 < span.Low).
	k1 := n - 1
	if span.Low > core.MinId {
		k1 = sort.Search(n, func(i int) bool { return s.spans[i].High < span.Low-1 }) - 1
	}
	// k0: first stored span that is not strictly above `span`
	// (strictly above means Low > span.High+1).
	k0 := sort.Search(n, func(i int) bool { return s.spans[i].Low <= span.High+1 })

	switch {
	case k0 > k1:
		// Nothing touches the new span; it lands in the gap at k0.
		switch k0 {
		case n:
			s.spans = append(s.spans, span)
		case 0:
			s.spans = append(s.spans, Span{})
			copy(s.spans[1:], s.spans)
			s.spans[0] = span
		default:
			// Mid-list insert without a merge partner is rare.
			*s = s.Union(FromSortedSpans(span))
		}
	case k0 == k1:
		// Exactly one stored span touches or overlaps; merging cannot reach
		// either neighbor (they are strictly clear by the search bounds).
		sp := &s.spans[k0]
		sp.Low = min(sp.Low, span.Low)
		sp.High = max(sp.High, span.High)
	default:
		// The span bridges multiple stored spans.
		*s = s.Union(FromSortedSpans(span))
	}
	s.assertValid()
}

// PushSpan appends a span the caller knows is strictly lower than all stored
// spans, except that it may touch or overlap the current last span.
func (s *SpanSet) PushSpan(span Span) {
	s.pushWithUnion(span)
	s.assertValid()
}

// PushSpanAsc prepends a span the caller knows is strictly higher than all
// stored spans, except that it may touch or overlap the current first span.
// Used by incremental builders that produce spans in ascending order.
func (s *SpanSet) PushSpanAsc(span Span) {
	if len(s.spans) == 0 {
		s.spans = append(s.spans, span)
		s.assertValid()
		return
	}
	first := &s.spans[0]
	if span.Low <= first.High+1 {
		first.High = max(first.High, span.High)
		first.Low = min(first.Low, span.Low)
	} else {
		s.spans = append(s.spans, Span{})
		copy(s.spans[1:], s.spans)
		s.spans[0] = span
	}
	s.assertValid()
}

// PushSet inserts every span of other into the set.
func (s *SpanSet) PushSet(other SpanSet) {
	for _, sp := range other.spans {
		s.Push(sp)
	}
}

// searchHigh returns the index of the last stored span whose High >= v,
// or -1 if every stored span lies strictly below v.
func (s SpanSet) searchHigh(v core.Id) int {
	i := sort.Search(len(s.spans), func(i int) bool { return s.spans[i].High < v })
	return i - 1
}

// Contains reports whether id is a member of the set.
func (s SpanSet) Contains(id core.Id) bool {
	_, ok := s.SpanContaining(id)
	return ok
}

// SpanContaining returns the stored span covering id, if any.
func (s SpanSet) SpanContaining(id core.Id) (Span, bool) {
	i := s.searchHigh(id)
	if i < 0 || s.spans[i].Low > id {
		return Span{}, false
	}
	return s.spans[i], true
}

// IntersectionSpanMin returns the smallest id shared by the set and the query
// span, without materializing the intersection.
func (s SpanSet) IntersectionSpanMin(span Span) (core.Id, bool) {
	i := s.searchHigh(span.Low)
	if i < 0 || s.spans[i].Low > span.High {
		return 0, false
	}
	return max(s.spans[i].Low, span.Low), true
}

// Count returns the number of ids in the set. O(number of spans).
func (s SpanSet) Count() uint64 {
	var total uint64
	for _, sp := range s.spans {
		total += sp.Count()
	}
	return total
}

// IsEmpty reports whether the set has no members.
func (s SpanSet) IsEmpty() bool {
	return len(s.spans) == 0
}

// Min returns the smallest id in the set.
func (s SpanSet) Min() (core.Id, bool) {
	if len(s.spans) == 0 {
		return 0, false
	}
	return s.spans[len(s.spans)-1].Low, true
}

// Max returns the largest id in the set.
func (s SpanSet) Max() (core.Id, bool) {
	if len(s.spans) == 0 {
		return 0, false
	}
	return s.spans[0].High, true
}

// SpanCount returns the number of stored spans.
func (s SpanSet) SpanCount() int {
	return len(s.spans)
}

// Spans returns the stored spans in descending order.
// The returned slice is a view; callers must not modify it.
func (s SpanSet) Spans() []Span {
	return s.spans
}

// Union returns the set of ids present in either operand.
func (s SpanSet) Union(rhs SpanSet) SpanSet {
	var out SpanSet
	out.spans = make([]Span, 0, len(s.spans)+len(rhs.spans))
	i, j := 0, 0
	for i < len(s.spans) && j < len(rhs.spans) {
		if s.spans[i].High >= rhs.spans[j].High {
			out.pushWithUnion(s.spans[i])
			i++
		} else {
			out.pushWithUnion(rhs.spans[j])
			j++
		}
	}
	for ; i < len(s.spans); i++ {
		out.pushWithUnion(s.spans[i])
	}
	for ; j < len(rhs.spans); j++ {
		out.pushWithUnion(rhs.spans[j])
	}
	out.assertValid()
	return out
}

// Intersection returns the set of ids present in both operands.
func (s SpanSet) Intersection(rhs SpanSet) SpanSet {
	var out SpanSet
	i, j := 0, 0
	var a, b Span
	haveA, haveB := false, false
	for {
		if !haveA {
			if i >= len(s.spans) {
				break
			}
			a = s.spans[i]
			i++
			haveA = true
		}
		if !haveB {
			if j >= len(rhs.spans) {
				break
			}
			b = rhs.spans[j]
			j++
			haveB = true
		}
		switch {
		case a.Low > b.High:
			// a lies entirely above b; nothing below can reach it.
			haveA = false
		case b.Low > a.High:
			haveB = false
		default:
			ov, _ := a.Intersect(b)
			out.pushWithUnion(ov)
			// Replace each side by its remainder below the overlap; a side
			// with no remainder is consumed.
			if a.Low == ov.Low {
				haveA = false
			} else {
				a = Span{Low: a.Low, High: ov.Low - 1}
			}
			if b.Low == ov.Low {
				haveB = false
			} else {
				b = Span{Low: b.Low, High: ov.Low - 1}
			}
		}
	}
	out.assertValid()
	return out
}

// Difference returns the set of ids present in s but not in rhs.
func (s SpanSet) Difference(rhs SpanSet) SpanSet {
	var out SpanSet
	ri := 0
	for _, sp := range s.spans {
		cur := sp
		for {
			// Skip rhs spans entirely above the current left span.
			for ri < len(rhs.spans) && rhs.spans[ri].Low > cur.High {
				ri++
			}
			if ri == len(rhs.spans) || rhs.spans[ri].High < cur.Low {
				// Disjoint: the whole remaining left span survives.
				out.pushWithUnion(cur)
				break
			}
			r := rhs.spans[ri]
			// The part above the overlap is final; emit it now.
			if cur.High > r.High {
				out.pushWithUnion(Span{Low: r.High + 1, High: cur.High})
			}
			if r.Low > cur.Low {
				// Continue scanning the part below the overlap.
				cur = Span{Low: cur.Low, High: r.Low - 1}
			} else {
				break
			}
		}
	}
	out.assertValid()
	return out
}

// Skip returns the set without its first n ids in descending order.
// This is positional, not an id-range cut.
func (s SpanSet) Skip(n uint64) SpanSet {
	var out SpanSet
	for _, sp := range s.spans {
		if n == 0 {
			out.spans = append(out.spans, sp)
			continue
		}
		c := sp.Count()
		if n >= c {
			n -= c
			continue
		}
		out.spans = append(out.spans, Span{Low: sp.Low, High: sp.High - core.Id(n)})
		n = 0
	}
	out.assertValid()
	return out
}

// Take returns the first n ids of the set in descending order.
func (s SpanSet) Take(n uint64) SpanSet {
	var out SpanSet
	for _, sp := range s.spans {
		if n == 0 {
			break
		}
		c := sp.Count()
		if n >= c {
			out.spans = append(out.spans, sp)
			n -= c
			continue
		}
		out.spans = append(out.spans, Span{Low: sp.High - core.Id(n) + 1, High: sp.High})
		n = 0
	}
	out.assertValid()
	return out
}

// Equal reports whether both sets contain exactly the same ids.
func (s SpanSet) Equal(rhs SpanSet) bool {
	return slices.Equal(s.spans, rhs.spans)
}

// Clone returns an independent copy of the set.
func (s SpanSet) Clone() SpanSet {
	return SpanSet{spans: slices.Clone(s.spans)}
}

// String formats the set as its spans in descending order, e.g. "31..=40 20 1..=10".
func (s SpanSet) String() string {
	parts := make([]string, len(s.spans))
	for i, sp := range s.spans {
		parts[i] = sp.String()
	}
	return strings.Join(parts, " ")
}

// Validate checks the structural invariants and returns a descriptive error
// for the first violation found.
func (s SpanSet) Validate() error {
	for i, sp := range s.spans {
		if sp.Low > sp.High {
			return fmt.Errorf("spanset: malformed span %s..=%s at index %d", sp.Low, sp.High, i)
		}
		if i > 0 {
			prev := s.spans[i-1]
			if prev.Low <= sp.High+1 {
				return fmt.Errorf("spanset: spans %s and %s at index %d overlap, touch, or are out of order", prev, sp, i)
			}
		}
	}
	return nil
}

func (s SpanSet) assertValid() {
	if strictChecks {
		if err := s.Validate(); err != nil {
			panic(err)
		}
	}
}
