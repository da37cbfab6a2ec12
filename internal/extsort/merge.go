package extsort

import (
	"context"
	"errors"
	"fmt"
	"io"
	"iter"

	"github.com/hupe1980/paircorr/internal/blockcodec"
	"github.com/hupe1980/paircorr/internal/mmap"
	"github.com/hupe1980/paircorr/internal/queue"
)

// ctxCheckInterval is how many merged items pass between context checks.
const ctxCheckInterval = 1024

// cursor reads the items of one segment in order.
type cursor[T any] struct {
	segment int
	mapping *mmap.Mapping
	reader  *blockcodec.Reader
	block   []byte
	item    T
}

func openCursor[T any](segment int, path string, c blockcodec.Compression) (*cursor[T], error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	_ = m.Advise(mmap.AccessSequential)

	return &cursor[T]{
		segment: segment,
		mapping: m,
		reader:  blockcodec.NewReader(m.Bytes(), c),
	}, nil
}

// advance decodes the next item. It reports false at the end of the segment.
func (c *cursor[T]) advance(codec Codec[T]) (bool, error) {
	for len(c.block) == 0 {
		b, err := c.reader.Next()
		if errors.Is(err, io.EOF) {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("%w: segment %d: %w", ErrCorruptSegment, c.segment, err)
		}
		c.block = b
	}

	v, n, err := codec.Decode(c.block)
	if err != nil {
		return false, fmt.Errorf("%w: segment %d: %w", ErrCorruptSegment, c.segment, err)
	}
	if n <= 0 || n > len(c.block) {
		return false, fmt.Errorf("%w: segment %d: decoder consumed %d of %d bytes", ErrCorruptSegment, c.segment, n, len(c.block))
	}

	c.block = c.block[n:]
	c.item = v
	return true, nil
}

func (c *cursor[T]) close() error {
	c.block = nil
	return c.mapping.Close()
}

// merge returns the lazy k-way merge of the pass's segments. Ties are
// broken by segment index, which keeps the overall sort stable.
func (p *pass[T]) merge(ctx context.Context) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		defer p.cleanup()

		var zero T

		if p.dir == "" {
			yield(zero, ErrClosed)
			return
		}

		p.s.mu.Lock()
		_, live := p.s.dirs[p.dir]
		p.s.mu.Unlock()
		if !live {
			yield(zero, ErrClosed)
			return
		}

		cursors := make([]*cursor[T], 0, len(p.segments))
		defer func() {
			for _, c := range cursors {
				_ = c.close()
			}
		}()

		h := queue.New(len(p.segments), func(a, b *cursor[T]) bool {
			if r := p.s.cmp(a.item, b.item); r != 0 {
				return r < 0
			}
			return a.segment < b.segment
		})

		for i, path := range p.segments {
			c, err := openCursor[T](i, path, p.s.opts.compression)
			if err != nil {
				yield(zero, fmt.Errorf("extsort: open segment %d: %w", i, err))
				return
			}
			cursors = append(cursors, c)

			ok, err := c.advance(p.s.codec)
			if err != nil {
				yield(zero, err)
				return
			}
			if ok {
				h.Push(c)
			}
		}

		for emitted := 0; h.Len() > 0; emitted++ {
			if emitted%ctxCheckInterval == 0 {
				if err := ctx.Err(); err != nil {
					yield(zero, err)
					return
				}
			}

			c, _ := h.Top()
			if !yield(c.item, nil) {
				return
			}

			ok, err := c.advance(p.s.codec)
			if err != nil {
				yield(zero, err)
				return
			}
			if ok {
				h.ReplaceTop(c)
			} else {
				h.Pop()
			}
		}
	}
}
