// Package page defines the fixed-size byte container that is the unit of
// I/O between the buffer pool and a PagedFile. Unlike the go-bustub lineage
// this is descended from, Page carries no pin count, dirty bit, or latch of
// its own — that bookkeeping belongs to the frame descriptor that owns a
// page's slot in the pool (see storage/buffer), so a Page is just an
// opaque, fixed-width block whose content the manager never interprets.
package page

import "github.com/pagevault/pagevault/common"

// Page is the fixed-width byte block read from and written to a PagedFile.
type Page [common.PageSize]byte

// Zero clears the page's bytes in place, used when a fresh page is handed
// back from AllocPage rather than read from disk.
func (p *Page) Zero() {
	for i := range p {
		p[i] = 0
	}
}

// CopyAt overwrites the page's bytes starting at offset with data. It
// panics if data would run past the end of the page — callers are expected
// to know the page layout they're writing.
func (p *Page) CopyAt(offset int, data []byte) {
	copy(p[offset:offset+len(data)], data)
}
