package common

// PageSize is the size in bytes of a single page, identical across the
// buffer pool, the page pool, and every PagedFile implementation.
const PageSize = 4096

// DefaultNumBufs is the pool size used by callers with no specific
// working-set estimate.
const DefaultNumBufs = 64
