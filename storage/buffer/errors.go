package buffer

import "errors"

// The closed set of outcomes the buffer pool manager's public operations can
// return. Ok is represented by a nil error, as is conventional in Go rather
// than as an explicit sentinel value.
var (
	// ErrBufferExceeded means every frame is pinned; there is no victim to
	// evict.
	ErrBufferExceeded = errors.New("buffer: pool exhausted, every frame pinned")
	// ErrHashNotFound means the requested (file, page) isn't resident. This
	// is an expected outcome of a lookup, surfaced from UnpinPage.
	ErrHashNotFound = errors.New("buffer: page not resident")
	// ErrPageNotPinned means UnpinPage was called on a resident page with a
	// zero pin count.
	ErrPageNotPinned = errors.New("buffer: page is not pinned")
	// ErrPagePinned means FlushFile found a pinned page and stopped.
	ErrPagePinned = errors.New("buffer: page is pinned, cannot flush")
	// ErrBadBuffer means an invalidated frame still carries a file
	// identity — an internal inconsistency.
	ErrBadBuffer = errors.New("buffer: invalidated frame retains a file identity")
	// ErrHashError means a hash table insert or remove failed
	// unexpectedly, indicating the frame table and hash index have drifted
	// out of sync.
	ErrHashError = errors.New("buffer: hash table operation failed")
	// ErrIoError wraps an underlying PagedFile failure. Use errors.Is to
	// check for it; the wrapped error carries the underlying cause.
	ErrIoError = errors.New("buffer: paged file I/O failed")
)
