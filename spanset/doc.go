// Package spanset implements compact integer sets as ordered runs of ids.
//
// A SpanSet stores arbitrarily large sets of monotonically allocated ids as
// non-overlapping inclusive ranges, kept sorted descending. All set algebra
// (union, intersection, difference) and pagination (skip, take) run in time
// proportional to the number of ranges, not the number of ids.
//
// IdList is the order-preserving companion type: it keeps spans in an
// arbitrary caller-imposed traversal order instead of canonical descending
// order, for callers that need to retain a custom sequence through
// combinator chains.
package spanset
