// Package disk defines the paged-file contract the buffer pool consumes and
// two implementations of it: an os.File-backed one for real durability and
// an in-memory one (backed by memfile.File) for tests and embedders that
// don't need a real file descriptor.
package disk

import (
	"github.com/pagevault/pagevault/storage/page"
	"github.com/pagevault/pagevault/types"
)

// PagedFile is the external file layer the buffer pool manager depends on.
// It is out of the buffer pool's scope in the sense that its allocation
// strategy, its on-disk layout, and how it durably persists a WritePage are
// entirely up to the implementation — the manager only relies on this
// contract holding.
//
// File identity is compared by the PagedFile value itself (interface
// equality, which for pointer-receiver implementations is pointer
// equality): two PagedFile values obtained from opening the same
// underlying file are still distinct identities unless they are literally
// the same Go value.
type PagedFile interface {
	// ReadPage fills dst with the PageSize bytes stored at pageNo.
	ReadPage(pageNo types.PageID, dst *page.Page) error
	// WritePage durably writes src to pageNo.
	WritePage(pageNo types.PageID, src *page.Page) error
	// AllocatePage reserves a new page slot and returns its number.
	AllocatePage() (types.PageID, error)
	// DisposePage frees a previously allocated slot. It is not an error to
	// dispose of a page more than once or a page that was never allocated.
	DisposePage(pageNo types.PageID) error
}
