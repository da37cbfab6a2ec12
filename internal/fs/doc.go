// Package fs provides filesystem abstractions for testability and fault injection.
//
// The package defines two key interfaces:
//
//   - [File]: an open file with read/write/sync capabilities
//   - [FileSystem]: filesystem operations (open, remove, rename, temp dirs)
//
// # Implementations
//
//   - [LocalFS]: production implementation using the os package
//   - [FaultyFS]: test utility that simulates I/O errors
//
// # Usage
//
// Production code uses fs.Default (which is [LocalFS]):
//
//	file, err := fs.Default.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
//
// Tests inject [FaultyFS] to make spill writes fail:
//
//	ffs := fs.NewFaultyFS(nil)
//	ffs.AddRule("segment-", fs.Fault{FailAfterBytes: 1024})
//
// Operations take no context.Context: local file calls are short and not
// interruptible at the syscall level. Remote reads go through blobstore.
package fs
