package spanset

import (
	"math/rand"
	"testing"

	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromBitmap(t *testing.T) {
	rb := roaring64.New()
	rb.AddMany([]uint64{1, 2, 3, 20, 31, 32})

	s := FromBitmap(rb)
	assert.Equal(t, "31..=32 20 1..=3", s.String())
	require.NoError(t, s.Validate())

	assert.True(t, FromBitmap(roaring64.New()).IsEmpty())
}

func TestToBitmap(t *testing.T) {
	s := FromSpans(sp(1, 10), sp(20, 20))
	rb := s.ToBitmap()
	assert.Equal(t, s.Count(), rb.GetCardinality())
	assert.True(t, rb.Contains(5))
	assert.True(t, rb.Contains(20))
	assert.False(t, rb.Contains(15))
}

func TestBitmap_RoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		s := randomSet(rng)
		back := FromBitmap(s.ToBitmap())
		require.True(t, s.Equal(back), "set %s round-tripped to %s", s, back)
	}
}
