package spanset

import (
	"fmt"

	"github.com/hupe1980/dagset/core"
)

// Span is an inclusive, non-empty range [Low, High] of ids.
// A well-formed span always has Low <= High; constructing a span with
// Low > High is a programmer error caught by Validate.
type Span struct {
	Low  core.Id
	High core.Id
}

// NewSpan creates a span covering [low, high].
func NewSpan(low, high core.Id) Span {
	return Span{Low: low, High: high}
}

// Single creates a span covering exactly one id.
func Single(id core.Id) Span {
	return Span{Low: id, High: id}
}

// Count returns the number of ids in the span.
func (s Span) Count() uint64 {
	return uint64(s.High-s.Low) + 1
}

// Contains reports whether id falls inside the span.
func (s Span) Contains(id core.Id) bool {
	return s.Low <= id && id <= s.High
}

// Intersect returns the overlap of two spans, if any.
func (s Span) Intersect(other Span) (Span, bool) {
	low := max(s.Low, other.Low)
	high := min(s.High, other.High)
	if low > high {
		return Span{}, false
	}
	return Span{Low: low, High: high}, true
}

// String formats the span as "low..=high", or just "low" for a single id.
func (s Span) String() string {
	if s.Low == s.High {
		return s.Low.String()
	}
	return fmt.Sprintf("%s..=%s", s.Low, s.High)
}
