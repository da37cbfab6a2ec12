package blockcodec

import (
	"fmt"
	"strings"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression defines the algorithm applied to each block.
type Compression uint8

const (
	// None stores blocks as is.
	None Compression = 0
	// LZ4 is fast block compression, the default for spill segments.
	LZ4 Compression = 1
	// ZSTD trades CPU for a better ratio when disk is the bottleneck.
	ZSTD Compression = 2
)

// String returns the lower-case name of the algorithm.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses an algorithm name case-insensitively.
func ParseCompression(s string) (Compression, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return ZSTD, nil
	default:
		return 0, fmt.Errorf("blockcodec: unknown compression %q", s)
	}
}

var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compress returns the compressed form of data appended to dst, or nil if
// compression does not pay off.
func compress(dst, data []byte, c Compression) ([]byte, error) {
	var out []byte

	switch c {
	case LZ4:
		bound := lz4.CompressBlockBound(len(data))
		if cap(dst) < bound {
			dst = make([]byte, bound)
		}
		n, err := lz4.CompressBlock(data, dst[:bound], nil)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			return nil, nil // incompressible
		}
		out = dst[:n]
	case ZSTD:
		enc := getZstdEncoder()
		out = enc.EncodeAll(data, dst[:0])
		putZstdEncoder(enc)
	default:
		return nil, nil
	}

	// Keep the raw bytes unless we save at least 10%.
	if float64(len(out)) > float64(len(data))*0.9 {
		return nil, nil
	}
	return out, nil
}

func decompress(dst, data []byte, c Compression, size int) ([]byte, error) {
	if cap(dst) < size {
		dst = make([]byte, size)
	}
	dst = dst[:size]

	switch c {
	case LZ4:
		n, err := lz4.UncompressBlock(data, dst)
		if err != nil {
			return nil, err
		}
		if n != size {
			return nil, fmt.Errorf("decompressed %d bytes, want %d", n, size)
		}
		return dst, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)

		decoded, err := dec.DecodeAll(data, dst[:0])
		if err != nil {
			return nil, err
		}
		if len(decoded) != size {
			return nil, fmt.Errorf("decompressed %d bytes, want %d", len(decoded), size)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("compressed block with compression %s", c)
	}
}
