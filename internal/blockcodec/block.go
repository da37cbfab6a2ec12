package blockcodec

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"io"
)

// ErrCorrupt is returned when a block fails its size or checksum checks.
var ErrCorrupt = errors.New("blockcodec: corrupt block")

// DefaultBlockSize is used when NewWriter gets a non-positive block size.
const DefaultBlockSize = 256 * 1024

// Block layout: [RawSize uint32][StoredSize uint32][CRC32 uint32][Data...]
// StoredSize == 0 means Data is RawSize bytes stored uncompressed. The
// checksum (Castagnoli) covers the raw bytes.
const headerSize = 12

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// Writer packs records into compressed blocks. A record never straddles
// two blocks, so a reader can decode every block on its own.
type Writer struct {
	w           io.Writer
	compression Compression
	blockSize   int
	buffer      *bytes.Buffer
	scratch     []byte
	header      [headerSize]byte
	written     int64
	blocks      int
}

// NewWriter creates a Writer on top of w.
func NewWriter(w io.Writer, compression Compression, blockSize int) *Writer {
	if blockSize <= 0 {
		blockSize = DefaultBlockSize
	}
	return &Writer{
		w:           w,
		compression: compression,
		blockSize:   blockSize,
		buffer:      bytes.NewBuffer(make([]byte, 0, blockSize)),
	}
}

// WriteRecord appends one encoded record, flushing the current block first
// when the record would not fit.
func (bw *Writer) WriteRecord(record []byte) error {
	if bw.buffer.Len() > 0 && bw.buffer.Len()+len(record) > bw.blockSize {
		if err := bw.FlushBlock(); err != nil {
			return err
		}
	}
	bw.buffer.Write(record)
	return nil
}

// FlushBlock compresses and writes the current block.
func (bw *Writer) FlushBlock() error {
	if bw.buffer.Len() == 0 {
		return nil
	}

	raw := bw.buffer.Bytes()

	payload := raw
	stored := uint32(0)
	if bw.compression != None {
		compressed, err := compress(bw.scratch[:0], raw, bw.compression)
		if err != nil {
			return err
		}
		if compressed != nil {
			bw.scratch = compressed
			payload = compressed
			stored = uint32(len(compressed))
		}
	}

	binary.LittleEndian.PutUint32(bw.header[0:], uint32(len(raw)))
	binary.LittleEndian.PutUint32(bw.header[4:], stored)
	binary.LittleEndian.PutUint32(bw.header[8:], crc32.Checksum(raw, castagnoli))

	n, err := bw.w.Write(bw.header[:])
	bw.written += int64(n)
	if err != nil {
		return err
	}
	n, err = bw.w.Write(payload)
	bw.written += int64(n)
	if err != nil {
		return err
	}

	bw.blocks++
	bw.buffer.Reset()
	return nil
}

// Flush writes any remaining buffered data.
func (bw *Writer) Flush() error {
	return bw.FlushBlock()
}

// BytesWritten returns the total bytes written to the underlying writer.
func (bw *Writer) BytesWritten() int64 {
	return bw.written
}

// Blocks returns the number of blocks written.
func (bw *Writer) Blocks() int {
	return bw.blocks
}

// Reader iterates the blocks of an in-memory (typically mapped) region.
type Reader struct {
	data        []byte
	offset      int
	compression Compression
	buf         []byte
}

// NewReader creates a reader over data written with the given compression.
func NewReader(data []byte, compression Compression) *Reader {
	return &Reader{data: data, compression: compression}
}

// Next returns the raw bytes of the next block, or io.EOF after the last
// one. The returned slice is only valid until the next call.
func (br *Reader) Next() ([]byte, error) {
	if br.offset == len(br.data) {
		return nil, io.EOF
	}
	if len(br.data)-br.offset < headerSize {
		return nil, fmt.Errorf("%w: truncated header at offset %d", ErrCorrupt, br.offset)
	}

	h := br.data[br.offset:]
	rawSize := int(binary.LittleEndian.Uint32(h[0:]))
	storedSize := int(binary.LittleEndian.Uint32(h[4:]))
	sum := binary.LittleEndian.Uint32(h[8:])

	payloadSize := storedSize
	if storedSize == 0 {
		payloadSize = rawSize
	}
	if len(h)-headerSize < payloadSize {
		return nil, fmt.Errorf("%w: block at offset %d extends beyond data", ErrCorrupt, br.offset)
	}
	payload := h[headerSize : headerSize+payloadSize]

	raw := payload
	if storedSize != 0 {
		decoded, err := decompress(br.buf, payload, br.compression, rawSize)
		if err != nil {
			return nil, fmt.Errorf("%w: offset %d: %v", ErrCorrupt, br.offset, err)
		}
		br.buf = decoded
		raw = decoded
	}

	if crc32.Checksum(raw, castagnoli) != sum {
		return nil, fmt.Errorf("%w: checksum mismatch at offset %d", ErrCorrupt, br.offset)
	}

	br.offset += headerSize + payloadSize
	return raw, nil
}
