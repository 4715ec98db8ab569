package spanset

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dagset/core"
)

func ids(vs ...uint64) []core.Id {
	out := make([]core.Id, len(vs))
	for i, v := range vs {
		out[i] = core.Id(v)
	}
	return out
}

func collectList(l IdList) []core.Id {
	var out []core.Id
	it := l.Iter()
	for id, ok := it.Next(); ok; id, ok = it.Next() {
		out = append(out, id)
	}
	return out
}

func TestFromIds(t *testing.T) {
	tests := []struct {
		name string
		in   []core.Id
		want string
	}{
		{"empty", nil, ""},
		{"ascending run", ids(1, 2, 3), "1..=3"},
		{"two runs", ids(1, 2, 4, 5), "1..=2 4..=5"},
		{"out of order runs", ids(4, 5, 1, 2), "4..=5 1..=2"},
		{"descending singletons", ids(5, 4, 1), "5 4 1"},
		{"single", ids(7), "7"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FromIds(tt.in...).String())
		})
	}
}

func TestListFromSpans(t *testing.T) {
	l := ListFromSpans(sp(1, 3), sp(4, 6), sp(10, 10))
	assert.Equal(t, "1..=6 10", l.String())
	assert.Equal(t, uint64(7), l.Count())
}

func TestIdList_FirstLast(t *testing.T) {
	l := FromIds(ids(4, 5, 1, 2)...)
	first, ok := l.First()
	require.True(t, ok)
	assert.Equal(t, core.Id(4), first)
	last, ok := l.Last()
	require.True(t, ok)
	assert.Equal(t, core.Id(2), last)

	var empty IdList
	assert.True(t, empty.IsEmpty())
	_, ok = empty.First()
	assert.False(t, ok)
	_, ok = empty.Last()
	assert.False(t, ok)
}

func TestIdList_Iter(t *testing.T) {
	in := ids(4, 5, 6, 1, 2, 9)
	l := FromIds(in...)
	assert.Equal(t, in, collectList(l))

	// NextBack yields the exact reverse of the traversal order.
	var back []core.Id
	it := l.Iter()
	for id, ok := it.NextBack(); ok; id, ok = it.NextBack() {
		back = append(back, id)
	}
	slices.Reverse(back)
	assert.Equal(t, in, back)
}

func TestIdList_IterDoubleEnded(t *testing.T) {
	l := FromIds(ids(4, 5, 1, 2)...)
	it := l.Iter()

	id, _ := it.Next()
	assert.Equal(t, core.Id(4), id)
	id, _ = it.NextBack()
	assert.Equal(t, core.Id(2), id)
	id, _ = it.NextBack()
	assert.Equal(t, core.Id(1), id)
	id, _ = it.Next()
	assert.Equal(t, core.Id(5), id)

	_, ok := it.Next()
	assert.False(t, ok)
	assert.Equal(t, uint64(0), it.Remaining())
}

func TestIdList_Slice(t *testing.T) {
	l := FromIds(ids(4, 5, 6, 1, 2, 9)...)
	tests := []struct {
		name       string
		skip, take uint64
		want       []core.Id
	}{
		{"prefix", 0, 2, ids(4, 5)},
		{"span split", 1, 3, ids(5, 6, 1)},
		{"mid", 3, 2, ids(1, 2)},
		{"suffix", 4, 10, ids(2, 9)},
		{"all", 0, 100, ids(4, 5, 6, 1, 2, 9)},
		{"past end", 6, 3, nil},
		{"zero take", 2, 0, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collectList(l.Slice(tt.skip, tt.take))
			assert.Equal(t, tt.want, got)
		})
	}
}
