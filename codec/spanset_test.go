package codec

import (
	"bytes"
	"encoding/binary"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/dagset/core"
	"github.com/hupe1980/dagset/spanset"
)

func sp(low, high uint64) spanset.Span {
	return spanset.Span{Low: core.Id(low), High: core.Id(high)}
}

func TestSpanSet_RoundTrip(t *testing.T) {
	sets := []spanset.SpanSet{
		spanset.Empty(),
		spanset.FromSpans(sp(3, 3)),
		spanset.FromSpans(sp(1, 10), sp(20, 20), sp(31, 40)),
		spanset.Full(),
	}
	compressions := []struct {
		name string
		c    CompressionType
	}{
		{"none", CompressionNone},
		{"lz4", CompressionLZ4},
		{"zstd", CompressionZSTD},
	}

	for _, comp := range compressions {
		t.Run(comp.name, func(t *testing.T) {
			for _, s := range sets {
				var buf bytes.Buffer
				require.NoError(t, EncodeSpanSet(&buf, s, comp.c))

				got, err := DecodeSpanSet(&buf)
				require.NoError(t, err)
				assert.True(t, s.Equal(got), "set %s decoded as %s", s, got)
			}
		})
	}
}

func TestSpanSet_RoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for round := 0; round < 30; round++ {
		var spans []spanset.Span
		for i := 0; i < rng.Intn(200); i++ {
			low := uint64(rng.Intn(1 << 20))
			spans = append(spans, sp(low, low+uint64(rng.Intn(64))))
		}
		s := spanset.FromSpans(spans...)

		for _, c := range []CompressionType{CompressionNone, CompressionLZ4, CompressionZSTD} {
			var buf bytes.Buffer
			require.NoError(t, EncodeSpanSet(&buf, s, c))
			got, err := DecodeSpanSet(&buf)
			require.NoError(t, err)
			require.True(t, s.Equal(got), "compression %d set %s", c, s)
		}
	}
}

func TestSpanSet_CompressionShrinksLargeSets(t *testing.T) {
	// Many regularly spaced spans compress well.
	spans := make([]spanset.Span, 0, 4096)
	for i := uint64(0); i < 4096; i++ {
		spans = append(spans, sp(i*10, i*10+3))
	}
	s := spanset.FromSpans(spans...)

	var raw, zstd bytes.Buffer
	require.NoError(t, EncodeSpanSet(&raw, s, CompressionNone))
	require.NoError(t, EncodeSpanSet(&zstd, s, CompressionZSTD))
	assert.Less(t, zstd.Len(), raw.Len())

	got, err := DecodeSpanSet(&zstd)
	require.NoError(t, err)
	assert.True(t, s.Equal(got))
}

func TestDecodeSpanSet_Corrupt(t *testing.T) {
	encode := func(s spanset.SpanSet) []byte {
		var buf bytes.Buffer
		require.NoError(t, EncodeSpanSet(&buf, s, CompressionNone))
		return buf.Bytes()
	}
	valid := encode(spanset.FromSpans(sp(1, 10), sp(20, 30)))

	t.Run("bad magic", func(t *testing.T) {
		data := bytes.Clone(valid)
		binary.LittleEndian.PutUint32(data[0:4], 0xdeadbeef)
		_, err := DecodeSpanSet(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("unsupported version", func(t *testing.T) {
		data := bytes.Clone(valid)
		binary.LittleEndian.PutUint32(data[4:8], 99)
		_, err := DecodeSpanSet(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("truncated", func(t *testing.T) {
		_, err := DecodeSpanSet(bytes.NewReader(valid[:len(valid)-5]))
		assert.Error(t, err)
	})

	t.Run("empty input", func(t *testing.T) {
		_, err := DecodeSpanSet(bytes.NewReader(nil))
		assert.Error(t, err)
	})

	t.Run("huge span count wraps multiply", func(t *testing.T) {
		// (1<<60+1)*16 wraps to 16 in uint64, matching a 16-byte payload;
		// the count must be rejected before any allocation is sized by it.
		data := bytes.Clone(encode(spanset.FromSpans(sp(1, 10))))
		binary.LittleEndian.PutUint64(data[9:17], 1<<60+1)
		_, err := DecodeSpanSet(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("span count mismatch", func(t *testing.T) {
		data := bytes.Clone(valid)
		binary.LittleEndian.PutUint64(data[9:17], 7)
		_, err := DecodeSpanSet(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrCorrupt)
	})

	t.Run("spans out of order", func(t *testing.T) {
		// Ascending storage violates the descending-by-High invariant.
		var buf bytes.Buffer
		var head [17]byte
		copy(head[:], valid[:17])
		binary.LittleEndian.PutUint64(head[9:17], 2)
		buf.Write(head[:])

		var block [8 + 2*16]byte
		binary.LittleEndian.PutUint32(block[0:4], 2*16) // uncompressed size
		binary.LittleEndian.PutUint32(block[4:8], 0)    // stored raw
		binary.LittleEndian.PutUint64(block[8:16], 1)   // span 0: 1..=5
		binary.LittleEndian.PutUint64(block[16:24], 5)
		binary.LittleEndian.PutUint64(block[24:32], 20) // span 1: 20..=30
		binary.LittleEndian.PutUint64(block[32:40], 30)
		buf.Write(block[:])

		_, err := DecodeSpanSet(&buf)
		assert.ErrorIs(t, err, ErrCorrupt)
	})
}
