package disk

import (
	"errors"
	"sync"

	"github.com/dsnet/golib/memfile"
	"github.com/pagevault/pagevault/common"
	"github.com/pagevault/pagevault/storage/page"
	"github.com/pagevault/pagevault/types"
)

// MemFile is a PagedFile backed entirely by an in-memory buffer
// (memfile.File), with no file descriptor and no durability. It exists for
// tests and for embedders that want a scratch buffer pool that never
// touches disk.
type MemFile struct {
	mu         sync.Mutex
	f          *memfile.File
	size       int64
	nextPageID types.PageID
	freeList   []types.PageID
}

// NewMemFile returns an empty in-memory PagedFile.
func NewMemFile() *MemFile {
	return &MemFile{f: memfile.New(nil)}
}

// ReadPage implements PagedFile.
func (d *MemFile) ReadPage(pageNo types.PageID, dst *page.Page) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageNo) * common.PageSize
	if offset+common.PageSize > d.size {
		return errors.New("disk: read past end of file")
	}
	n, err := d.f.ReadAt(dst[:], offset)
	if err != nil {
		return err
	}
	if n != common.PageSize {
		return errors.New("disk: short read")
	}
	return nil
}

// WritePage implements PagedFile.
func (d *MemFile) WritePage(pageNo types.PageID, src *page.Page) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageNo) * common.PageSize
	n, err := d.f.WriteAt(src[:], offset)
	if err != nil {
		return err
	}
	if n != common.PageSize {
		return errors.New("disk: short write")
	}
	if end := offset + int64(n); end > d.size {
		d.size = end
	}
	return nil
}

// AllocatePage implements PagedFile.
func (d *MemFile) AllocatePage() (types.PageID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.freeList) > 0 {
		id := d.freeList[0]
		d.freeList = d.freeList[1:]
		return id, nil
	}
	id := d.nextPageID
	offset := int64(id) * common.PageSize
	if offset+common.PageSize > d.size {
		var zero page.Page
		if _, err := d.f.WriteAt(zero[:], offset); err != nil {
			return types.InvalidPageID, err
		}
		d.size = offset + common.PageSize
	}
	d.nextPageID++
	return id, nil
}

// DisposePage implements PagedFile.
func (d *MemFile) DisposePage(pageNo types.PageID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.freeList = append(d.freeList, pageNo)
	return nil
}
