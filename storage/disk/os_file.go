package disk

import (
	"errors"
	"io"
	"os"
	"sync"

	"github.com/pagevault/pagevault/common"
	"github.com/pagevault/pagevault/storage/page"
	"github.com/pagevault/pagevault/types"
)

// OSFile is a PagedFile backed by a single os.File, one page per
// PageSize-byte slot. It durably syncs every write.
type OSFile struct {
	mu         sync.Mutex
	f          *os.File
	nextPageID types.PageID
	freeList   []types.PageID
}

// OpenOSFile opens (creating if necessary) name as a PagedFile. Existing
// content is preserved and nextPageID resumes after the last full page.
func OpenOSFile(name string) (*OSFile, error) {
	f, err := os.OpenFile(name, os.O_RDWR|os.O_CREATE, 0666)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, err
	}
	nPages := info.Size() / common.PageSize
	return &OSFile{f: f, nextPageID: types.PageID(nPages)}, nil
}

// Close closes the underlying file. Callers must have flushed any pages
// they care about first — Close does not write anything back.
func (d *OSFile) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.f.Close()
}

// ReadPage implements PagedFile.
func (d *OSFile) ReadPage(pageNo types.PageID, dst *page.Page) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageNo) * common.PageSize
	info, err := d.f.Stat()
	if err != nil {
		return err
	}
	if offset+common.PageSize > info.Size() {
		return errors.New("disk: read past end of file")
	}
	if _, err := d.f.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	n, err := io.ReadFull(d.f, dst[:])
	if err != nil {
		return err
	}
	if n != common.PageSize {
		return errors.New("disk: short read")
	}
	return nil
}

// WritePage implements PagedFile.
func (d *OSFile) WritePage(pageNo types.PageID, src *page.Page) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	offset := int64(pageNo) * common.PageSize
	if _, err := d.f.Seek(offset, io.SeekStart); err != nil {
		return err
	}
	n, err := d.f.Write(src[:])
	if err != nil {
		return err
	}
	if n != common.PageSize {
		return errors.New("disk: short write")
	}
	return d.f.Sync()
}

// AllocatePage implements PagedFile.
func (d *OSFile) AllocatePage() (types.PageID, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.freeList) > 0 {
		id := d.freeList[0]
		d.freeList = d.freeList[1:]
		return id, nil
	}
	id := d.nextPageID
	info, err := d.f.Stat()
	if err != nil {
		return types.InvalidPageID, err
	}
	if end := int64(id+1) * common.PageSize; end > info.Size() {
		if err := d.f.Truncate(end); err != nil {
			return types.InvalidPageID, err
		}
	}
	d.nextPageID++
	return id, nil
}

// DisposePage implements PagedFile.
func (d *OSFile) DisposePage(pageNo types.PageID) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.freeList = append(d.freeList, pageNo)
	return nil
}
