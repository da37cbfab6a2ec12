// Package resource implements the Controller that bounds the memory,
// worker and IO budgets of an analysis run.
//
//   - Memory: admission for buffered data (non-blocking, fail-fast)
//   - Workers: slots for CPU-heavy jobs such as spill sorts
//   - IO: token bucket for spill writes
//
// # Memory Management
//
// AcquireMemory returns ErrMemoryLimitExceeded immediately when the limit
// would be exceeded, so the caller can fall back (e.g. stream a dataset
// instead of buffering it):
//
//	rc := resource.NewController(resource.Config{
//	    MemoryLimitBytes: 1 << 30,
//	})
//
//	if err := rc.AcquireMemory(size); err != nil {
//	    // stream instead
//	}
//	defer rc.ReleaseMemory(size)
//
// # IO Rate Limiting
//
//	rc := resource.NewController(resource.Config{
//	    IOLimitBytesPerSec: 100 * 1024 * 1024,
//	})
//	w := resource.NewRateLimitedWriter(ctx, file, rc)
//
// All Controller methods are safe for concurrent use and treat a nil
// Controller as unlimited.
package resource
