// Package dagset is the identifier-set engine behind a commit graph index.
//
// The engine represents arbitrarily large sets of commits as compact runs of
// monotonically allocated integer ids (see the spanset package) and binds
// such a set to an id-to-hash converter and a graph snapshot, so that set
// algebra, membership, pagination, and reversal run in time proportional to
// the number of runs while commit hashes are resolved lazily, in batches,
// only when a caller actually iterates.
//
// # Quick start
//
//	set := dagset.NewFromSpans(spanset.FromSpans(spanset.NewSpan(1, 100)), idMap, dag)
//	it := set.Iter()
//	for {
//	    v, ok, err := it.Next(ctx)
//	    if err != nil || !ok {
//	        break
//	    }
//	    fmt.Println(v)
//	}
//
// Combining two sets bound to comparable snapshots stays purely in the
// interval domain:
//
//	union, ok := dagset.FromEditSpans(a, b, spanset.SpanSet.Union)
//
// When ok is false the sets come from incomparable snapshots and the caller
// must fall back to a name-aware combinator.
package dagset
