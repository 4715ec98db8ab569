package spanset

import (
	"slices"

	"github.com/RoaringBitmap/roaring/v2/roaring64"

	"github.com/hupe1980/dagset/core"
)

// FromBitmap builds a SpanSet from a roaring bitmap, collapsing consecutive
// ids into spans.
func FromBitmap(rb *roaring64.Bitmap) SpanSet {
	var asc []Span
	it := rb.Iterator()
	for it.HasNext() {
		id := core.Id(it.Next())
		if n := len(asc); n > 0 && id == asc[n-1].High+1 {
			asc[n-1].High = id
			continue
		}
		asc = append(asc, Single(id))
	}
	slices.Reverse(asc)
	return FromSortedSpans(asc...)
}

// ToBitmap materializes the set into a roaring bitmap.
func (s SpanSet) ToBitmap() *roaring64.Bitmap {
	rb := roaring64.New()
	for _, sp := range s.spans {
		rb.AddRange(uint64(sp.Low), uint64(sp.High)+1)
	}
	return rb
}
