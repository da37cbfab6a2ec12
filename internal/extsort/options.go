package extsort

import (
	"os"
	"runtime"

	"github.com/hupe1980/paircorr/internal/blockcodec"
	"github.com/hupe1980/paircorr/internal/fs"
	"github.com/hupe1980/paircorr/internal/resource"
)

// minParallelRun is the smallest run worth sorting on its own goroutine.
const minParallelRun = 4096

type options struct {
	dir         string
	fs          fs.FileSystem
	compression blockcodec.Compression
	blockSize   int
	workers     int
	controller  *resource.Controller
}

func defaultOptions() options {
	return options{
		dir:         os.TempDir(),
		fs:          fs.Default,
		compression: blockcodec.LZ4,
		blockSize:   blockcodec.DefaultBlockSize,
		workers:     runtime.GOMAXPROCS(0),
	}
}

// Option configures a Sorter.
type Option func(*options)

// WithTempDir sets the directory under which spill segments are created.
func WithTempDir(dir string) Option {
	return func(o *options) {
		if dir != "" {
			o.dir = dir
		}
	}
}

// WithFileSystem sets the filesystem segments are written through.
func WithFileSystem(fsys fs.FileSystem) Option {
	return func(o *options) {
		if fsys != nil {
			o.fs = fsys
		}
	}
}

// WithCompression sets the segment block compression.
func WithCompression(c blockcodec.Compression) Option {
	return func(o *options) {
		o.compression = c
	}
}

// WithBlockSize sets the uncompressed size of segment blocks.
func WithBlockSize(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.blockSize = n
		}
	}
}

// WithWorkers sets how many runs a full buffer is split into for parallel
// sorting.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithController sets the controller that grants sort worker slots and
// throttles spill writes.
func WithController(c *resource.Controller) Option {
	return func(o *options) {
		o.controller = c
	}
}
