// Package codec persists SpanSet values in a compact, self-describing
// binary format with optional block compression.
//
// Codec selection is a breaking-change boundary: bytes written with one
// format version may not decode under another.
package codec

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"

	"github.com/hupe1980/dagset/core"
	"github.com/hupe1980/dagset/spanset"
)

const (
	magicSpanSet = 0x44535053 // "DSPS"
	versionV1    = 1

	// spanBytes is the encoded size of one span: Low and High, 8 bytes each.
	spanBytes = 16
)

// CompressionType defines the compression algorithm used for the span block.
type CompressionType uint8

const (
	// CompressionNone stores the span block uncompressed.
	CompressionNone CompressionType = 0
	// CompressionLZ4 uses LZ4 block compression (fast, good for hot data).
	CompressionLZ4 CompressionType = 1
	// CompressionZSTD uses ZSTD block compression (better ratio, good for cold data).
	CompressionZSTD CompressionType = 2
)

// ErrCorrupt is returned when the input fails structural validation.
var ErrCorrupt = errors.New("corrupt spanset data")

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// header layout:
//
//	[Magic u32][Version u32][Compression u8][SpanCount u64]
//	[UncompressedSize u32][CompressedSize u32][Data...]
//
// CompressedSize == 0 means the block is stored uncompressed.

// EncodeSpanSet writes s to w.
func EncodeSpanSet(w io.Writer, s spanset.SpanSet, compression CompressionType) error {
	bw := bufio.NewWriter(w)

	spans := s.Spans()
	var head [17]byte
	binary.LittleEndian.PutUint32(head[0:4], magicSpanSet)
	binary.LittleEndian.PutUint32(head[4:8], versionV1)
	head[8] = byte(compression)
	binary.LittleEndian.PutUint64(head[9:17], uint64(len(spans)))
	if _, err := bw.Write(head[:]); err != nil {
		return err
	}

	payload := make([]byte, len(spans)*spanBytes)
	for i, sp := range spans {
		binary.LittleEndian.PutUint64(payload[i*spanBytes:], uint64(sp.Low))
		binary.LittleEndian.PutUint64(payload[i*spanBytes+8:], uint64(sp.High))
	}

	block, err := compressBlock(payload, compression)
	if err != nil {
		return err
	}
	if _, err := bw.Write(block); err != nil {
		return err
	}
	return bw.Flush()
}

// DecodeSpanSet reads a SpanSet from r, validating the structural invariants
// of the decoded spans.
func DecodeSpanSet(r io.Reader) (spanset.SpanSet, error) {
	br := bufio.NewReader(r)

	var head [17]byte
	if _, err := io.ReadFull(br, head[:]); err != nil {
		return spanset.SpanSet{}, err
	}
	if binary.LittleEndian.Uint32(head[0:4]) != magicSpanSet {
		return spanset.SpanSet{}, fmt.Errorf("%w: bad magic", ErrCorrupt)
	}
	if v := binary.LittleEndian.Uint32(head[4:8]); v != versionV1 {
		return spanset.SpanSet{}, fmt.Errorf("%w: unsupported version %d", ErrCorrupt, v)
	}
	compression := CompressionType(head[8])
	count := binary.LittleEndian.Uint64(head[9:17])

	payload, err := decompressBlock(br, compression)
	if err != nil {
		return spanset.SpanSet{}, err
	}
	// Compare by division: count is untrusted 64-bit input, and
	// count*spanBytes could wrap around before the comparison.
	if uint64(len(payload))%spanBytes != 0 || uint64(len(payload))/spanBytes != count {
		return spanset.SpanSet{}, fmt.Errorf("%w: payload size %d does not match span count %d", ErrCorrupt, len(payload), count)
	}

	spans := make([]spanset.Span, count)
	for i := range spans {
		spans[i] = spanset.Span{
			Low:  core.Id(binary.LittleEndian.Uint64(payload[i*spanBytes:])),
			High: core.Id(binary.LittleEndian.Uint64(payload[i*spanBytes+8:])),
		}
	}
	s := spanset.FromSortedSpans(spans...)
	// FromSortedSpans merges adjacent inputs, so a structurally valid encoding
	// must round-trip to the same span count.
	if s.SpanCount() != int(count) {
		return spanset.SpanSet{}, fmt.Errorf("%w: spans out of order or overlapping", ErrCorrupt)
	}
	if err := s.Validate(); err != nil {
		return spanset.SpanSet{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return s, nil
}

// compressBlock compresses the payload, falling back to uncompressed storage
// when compression does not help (ratio > 0.9).
func compressBlock(data []byte, compression CompressionType) ([]byte, error) {
	var compressed []byte
	var err error

	switch compression {
	case CompressionLZ4:
		compressed, err = compressBlockLZ4(data)
	case CompressionZSTD:
		compressed, err = compressBlockZSTD(data)
	case CompressionNone:
	default:
		return nil, fmt.Errorf("unknown compression type %d", compression)
	}
	if err != nil {
		return nil, err
	}

	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		result := make([]byte, 8+len(data))
		binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
		binary.LittleEndian.PutUint32(result[4:], 0) // 0 = uncompressed
		copy(result[8:], data)
		return result, nil
	}

	result := make([]byte, 8+len(compressed))
	binary.LittleEndian.PutUint32(result[0:], uint32(len(data)))
	binary.LittleEndian.PutUint32(result[4:], uint32(len(compressed)))
	copy(result[8:], compressed)
	return result, nil
}

func compressBlockLZ4(data []byte) ([]byte, error) {
	compressed := make([]byte, lz4.CompressBlockBound(len(data)))
	n, err := lz4.CompressBlock(data, compressed, nil)
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, nil // incompressible
	}
	return compressed[:n], nil
}

func compressBlockZSTD(data []byte) ([]byte, error) {
	enc := getZstdEncoder()
	defer zstdEncoderPool.Put(enc)
	return enc.EncodeAll(data, nil), nil
}

func decompressBlock(r io.Reader, compression CompressionType) ([]byte, error) {
	var head [8]byte
	if _, err := io.ReadFull(r, head[:]); err != nil {
		return nil, err
	}
	uncompressedSize := binary.LittleEndian.Uint32(head[0:4])
	compressedSize := binary.LittleEndian.Uint32(head[4:8])

	if compressedSize == 0 {
		data := make([]byte, uncompressedSize)
		if _, err := io.ReadFull(r, data); err != nil {
			return nil, err
		}
		return data, nil
	}

	compressed := make([]byte, compressedSize)
	if _, err := io.ReadFull(r, compressed); err != nil {
		return nil, err
	}
	result := make([]byte, uncompressedSize)

	switch compression {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(compressed, result)
		if err != nil {
			return nil, err
		}
		if uint32(n) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return result, nil

	case CompressionZSTD:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		decoded, err := dec.DecodeAll(compressed, result[:0])
		if err != nil {
			return nil, err
		}
		if uint32(len(decoded)) != uncompressedSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorrupt)
		}
		return decoded, nil

	default:
		return nil, fmt.Errorf("%w: compressed block with compression type %d", ErrCorrupt, compression)
	}
}
