package extsort

import (
	"context"
	"fmt"
	"iter"
	"os"
	"path/filepath"
	"slices"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/hupe1980/paircorr/internal/blockcodec"
	"github.com/hupe1980/paircorr/internal/queue"
	"github.com/hupe1980/paircorr/internal/resource"
)

// Stats summarizes the work of a Sorter across all of its passes.
type Stats struct {
	Passes       int
	Items        int64
	Segments     int
	BytesSpilled int64
}

// Sorter sorts streams larger than memory. At most budget items are held
// in memory per pass; every full buffer is sorted and spilled to a segment,
// and the segments are merged lazily.
//
// The sort is stable. A Sorter may run several passes, concurrently or one
// after another.
type Sorter[T any] struct {
	budget int
	cmp    func(a, b T) int
	codec  Codec[T]
	opts   options

	mu     sync.Mutex
	dirs   map[string]struct{} // spill dirs of passes not yet cleaned up
	stats  Stats
	closed bool
}

// New creates a Sorter holding at most budget items in memory per pass.
func New[T any](budget int, cmp func(a, b T) int, codec Codec[T], opts ...Option) (*Sorter[T], error) {
	if budget < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidBudget, budget)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	return &Sorter[T]{
		budget: budget,
		cmp:    cmp,
		codec:  codec,
		opts:   o,
		dirs:   make(map[string]struct{}),
	}, nil
}

// Stats returns the accumulated statistics.
func (s *Sorter[T]) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stats
}

// Close removes the segments of passes whose output was never consumed.
// Iterating such an output afterwards fails.
func (s *Sorter[T]) Close() error {
	s.mu.Lock()
	s.closed = true
	dirs := make([]string, 0, len(s.dirs))
	for d := range s.dirs {
		dirs = append(dirs, d)
	}
	clear(s.dirs)
	s.mu.Unlock()

	var firstErr error
	for _, d := range dirs {
		if err := s.opts.fs.RemoveAll(d); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Sort consumes seq and returns its items in ascending cmp order.
//
// The input is fully consumed before Sort returns; spill failures and
// input errors are returned directly. The output is lazy: segments are
// decoded as the caller iterates and removed once iteration ends, whether
// it ran to completion or stopped early. The output can be iterated once.
func (s *Sorter[T]) Sort(ctx context.Context, seq iter.Seq2[T, error]) (iter.Seq2[T, error], error) {
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil, ErrClosed
	}

	p := &pass[T]{s: s}

	buf := make([]T, 0, min(s.budget, 4096))
	for v, err := range seq {
		if err != nil {
			p.cleanup()
			return nil, err
		}

		buf = append(buf, v)
		p.items++

		if len(buf) == s.budget {
			if err := p.spill(ctx, buf); err != nil {
				p.cleanup()
				return nil, err
			}
			clear(buf)
			buf = buf[:0]
		}
	}

	if err := ctx.Err(); err != nil {
		p.cleanup()
		return nil, err
	}

	s.mu.Lock()
	s.stats.Passes++
	s.stats.Items += p.items
	s.mu.Unlock()

	if len(p.segments) == 0 {
		slices.SortStableFunc(buf, s.cmp)
		return func(yield func(T, error) bool) {
			for _, v := range buf {
				if !yield(v, nil) {
					return
				}
			}
		}, nil
	}

	if len(buf) > 0 {
		if err := p.spill(ctx, buf); err != nil {
			p.cleanup()
			return nil, err
		}
	}

	return p.merge(ctx), nil
}

// pass is the state of one Sort call.
type pass[T any] struct {
	s        *Sorter[T]
	dir      string
	segments []string
	items    int64
	scratch  []byte
}

func (p *pass[T]) ensureDir() error {
	if p.dir != "" {
		return nil
	}

	fsys := p.s.opts.fs
	if err := fsys.MkdirAll(p.s.opts.dir, 0o700); err != nil {
		return fmt.Errorf("extsort: create temp dir: %w", err)
	}
	dir, err := fsys.MkdirTemp(p.s.opts.dir, "paircorr-sort-*")
	if err != nil {
		return fmt.Errorf("extsort: create spill dir: %w", err)
	}

	p.s.mu.Lock()
	p.s.dirs[dir] = struct{}{}
	p.s.mu.Unlock()

	p.dir = dir
	return nil
}

func (p *pass[T]) cleanup() {
	if p.dir == "" {
		return
	}

	p.s.mu.Lock()
	_, owned := p.s.dirs[p.dir]
	delete(p.s.dirs, p.dir)
	p.s.mu.Unlock()

	// Close already removed it.
	if owned {
		_ = p.s.opts.fs.RemoveAll(p.dir)
	}
	p.dir = ""
	p.segments = nil
}

// sortRuns splits buf into contiguous runs and sorts them in parallel.
func (p *pass[T]) sortRuns(ctx context.Context, buf []T) ([][]T, error) {
	n := max(1, min(p.s.opts.workers, len(buf)/minParallelRun))
	if n == 1 {
		slices.SortStableFunc(buf, p.s.cmp)
		return [][]T{buf}, nil
	}

	size := (len(buf) + n - 1) / n
	runs := make([][]T, 0, n)

	rc := p.s.opts.controller
	g, gctx := errgroup.WithContext(ctx)
	for lo := 0; lo < len(buf); lo += size {
		run := buf[lo:min(lo+size, len(buf))]
		runs = append(runs, run)

		g.Go(func() error {
			if err := rc.AcquireWorker(gctx); err != nil {
				return err
			}
			defer rc.ReleaseWorker()

			slices.SortStableFunc(run, p.s.cmp)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, nil
}

type runHead[T any] struct {
	run  int
	pos  int
	item T
}

func (p *pass[T]) spill(ctx context.Context, buf []T) error {
	runs, err := p.sortRuns(ctx, buf)
	if err != nil {
		return err
	}

	if err := p.ensureDir(); err != nil {
		return err
	}

	path := filepath.Join(p.dir, fmt.Sprintf("segment-%06d.bin", len(p.segments)))
	// Track before writing so a failed segment is removed with the rest.
	p.segments = append(p.segments, path)

	written, err := p.writeSegment(ctx, path, runs)
	if err != nil {
		return fmt.Errorf("extsort: write %s: %w", filepath.Base(path), err)
	}

	p.s.mu.Lock()
	p.s.stats.Segments++
	p.s.stats.BytesSpilled += written
	p.s.mu.Unlock()

	return nil
}

func (p *pass[T]) writeSegment(ctx context.Context, path string, runs [][]T) (int64, error) {
	f, err := p.s.opts.fs.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o600)
	if err != nil {
		return 0, err
	}

	w := blockcodec.NewWriter(resource.NewRateLimitedWriter(ctx, f, p.s.opts.controller), p.s.opts.compression, p.s.opts.blockSize)

	if err := p.writeRuns(w, runs); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := w.Flush(); err != nil {
		_ = f.Close()
		return 0, err
	}
	if err := f.Close(); err != nil {
		return 0, err
	}

	return w.BytesWritten(), nil
}

// writeRuns merges the sorted runs into w. Ties go to the lower run, and
// runs are contiguous slices of the input, so the merge stays stable.
func (p *pass[T]) writeRuns(w *blockcodec.Writer, runs [][]T) error {
	write := func(v T) error {
		p.scratch = p.s.codec.Append(p.scratch[:0], v)
		return w.WriteRecord(p.scratch)
	}

	if len(runs) == 1 {
		for _, v := range runs[0] {
			if err := write(v); err != nil {
				return err
			}
		}
		return nil
	}

	h := queue.New(len(runs), func(a, b runHead[T]) bool {
		if c := p.s.cmp(a.item, b.item); c != 0 {
			return c < 0
		}
		return a.run < b.run
	})
	for i, run := range runs {
		if len(run) > 0 {
			h.Push(runHead[T]{run: i, item: run[0]})
		}
	}

	for h.Len() > 0 {
		top, _ := h.Top()
		if err := write(top.item); err != nil {
			return err
		}

		next := top.pos + 1
		if run := runs[top.run]; next < len(run) {
			h.ReplaceTop(runHead[T]{run: top.run, pos: next, item: run[next]})
		} else {
			h.Pop()
		}
	}

	return nil
}
