package blockcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func records(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte(fmt.Sprintf("record-%06d|gene-%02d|", i, i%17))
	}
	return out
}

func writeAll(t *testing.T, c Compression, blockSize int, recs [][]byte) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	w := NewWriter(&buf, c, blockSize)
	for _, r := range recs {
		require.NoError(t, w.WriteRecord(r))
	}
	require.NoError(t, w.Flush())
	assert.Equal(t, int64(buf.Len()), w.BytesWritten())

	return &buf
}

func readAll(t *testing.T, c Compression, data []byte) ([]byte, int) {
	t.Helper()

	r := NewReader(data, c)
	var out []byte
	blocks := 0
	for {
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, blocks
		}
		require.NoError(t, err)
		out = append(out, b...)
		blocks++
	}
}

func TestRoundTrip(t *testing.T) {
	recs := records(5000)
	want := bytes.Join(recs, nil)

	for _, c := range []Compression{None, LZ4, ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			buf := writeAll(t, c, 4096, recs)

			got, blocks := readAll(t, c, buf.Bytes())
			assert.Equal(t, want, got)
			assert.Greater(t, blocks, 1)

			if c != None {
				assert.Less(t, buf.Len(), len(want))
			}
		})
	}
}

func TestRecordsNeverStraddleBlocks(t *testing.T) {
	recs := records(100)
	buf := writeAll(t, LZ4, 64, recs)

	r := NewReader(buf.Bytes(), LZ4)
	for {
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		require.NoError(t, err)
		assert.Zero(t, len(b)%len(recs[0]), "block holds whole records")
	}
}

func TestOversizedRecord(t *testing.T) {
	big := bytes.Repeat([]byte("x"), 1000)
	buf := writeAll(t, None, 16, [][]byte{[]byte("a"), big, []byte("b")})

	got, blocks := readAll(t, None, buf.Bytes())
	assert.Equal(t, 3, blocks)
	assert.Equal(t, append(append([]byte("a"), big...), 'b'), got)
}

func TestEmpty(t *testing.T) {
	buf := writeAll(t, ZSTD, 0, nil)
	assert.Zero(t, buf.Len())

	_, err := NewReader(nil, ZSTD).Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestCorruption(t *testing.T) {
	recs := records(200)

	for _, c := range []Compression{None, LZ4, ZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			data := writeAll(t, c, 1024, recs).Bytes()

			flipped := bytes.Clone(data)
			flipped[headerSize+3] ^= 0xFF
			_, _, err := drain(flipped, c)
			assert.ErrorIs(t, err, ErrCorrupt)

			_, _, err = drain(data[:len(data)-5], c)
			assert.ErrorIs(t, err, ErrCorrupt)

			_, _, err = drain(data[:headerSize-1], c)
			assert.ErrorIs(t, err, ErrCorrupt)
		})
	}
}

func TestChecksumCoversRawBytes(t *testing.T) {
	data := writeAll(t, None, 0, [][]byte{[]byte("hello")}).Bytes()
	binary.LittleEndian.PutUint32(data[8:], 0)

	_, err := NewReader(data, None).Next()
	assert.ErrorIs(t, err, ErrCorrupt)
}

func drain(data []byte, c Compression) ([]byte, int, error) {
	r := NewReader(data, c)
	var out []byte
	n := 0
	for {
		b, err := r.Next()
		if errors.Is(err, io.EOF) {
			return out, n, nil
		}
		if err != nil {
			return nil, n, err
		}
		out = append(out, b...)
		n++
	}
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{None, LZ4, ZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}

	_, err := ParseCompression("snappy")
	assert.Error(t, err)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteError(t *testing.T) {
	w := NewWriter(failingWriter{}, LZ4, 8)
	require.NoError(t, w.WriteRecord([]byte("12345678")))
	assert.Error(t, w.WriteRecord([]byte("next")))
}
