package spanset

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dagset/core"
)

func TestSpan(t *testing.T) {
	s := sp(3, 7)
	assert.Equal(t, uint64(5), s.Count())
	assert.Equal(t, "3..=7", s.String())
	assert.True(t, s.Contains(3))
	assert.True(t, s.Contains(7))
	assert.False(t, s.Contains(8))

	single := Single(9)
	assert.Equal(t, uint64(1), single.Count())
	assert.Equal(t, "9", single.String())
}

func TestSpanIntersect(t *testing.T) {
	tests := []struct {
		name string
		a, b Span
		want Span
		ok   bool
	}{
		{"overlap", sp(1, 10), sp(5, 20), sp(5, 10), true},
		{"contained", sp(1, 10), sp(3, 4), sp(3, 4), true},
		{"single point", sp(1, 10), sp(10, 20), sp(10, 10), true},
		{"disjoint", sp(1, 5), sp(7, 9), Span{}, false},
		{"touching not overlapping", sp(1, 5), sp(6, 9), Span{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.a.Intersect(tt.b)
			require.Equal(t, tt.ok, ok)
			if ok {
				assert.Equal(t, tt.want, got)
			}
			// Intersect is symmetric.
			rev, revOK := tt.b.Intersect(tt.a)
			assert.Equal(t, ok, revOK)
			assert.Equal(t, got, rev)
		})
	}
}

func TestNewSpan(t *testing.T) {
	assert.Equal(t, sp(3, 7), NewSpan(core.Id(3), core.Id(7)))
	assert.Equal(t, sp(9, 9), NewSpan(core.Id(9), core.Id(9)))
}
