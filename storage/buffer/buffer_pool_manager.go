// Package buffer implements the buffer pool manager: the façade that
// orchestrates the clock replacement engine, the frame descriptor table,
// the page pool, and the frame hash index into the five operations higher
// level code (indexes, heap files, catalogs) actually calls.
package buffer

import (
	"errors"
	"fmt"
	"io"

	"github.com/pagevault/pagevault/container/framehash"
	"github.com/pagevault/pagevault/internal/assert"
	"github.com/pagevault/pagevault/storage/disk"
	"github.com/pagevault/pagevault/storage/page"
	"github.com/pagevault/pagevault/types"
)

// BufferPoolManager is a fixed-size cache of pages, backed by an arbitrary
// number of PagedFiles. It is single-threaded: see internal/assert.Guard
// for what happens if a caller reenters it.
type BufferPoolManager struct {
	guard       assert.Guard
	pages       []page.Page
	descriptors []frameDescriptor
	hash        *framehash.Table
	replacer    *clockReplacer
	stats       Stats
}

// New builds a buffer pool manager with room for numBufs resident pages.
func New(numBufs int) *BufferPoolManager {
	assert.Require(numBufs > 0, "buffer: pool must hold at least one frame")

	descriptors := make([]frameDescriptor, numBufs)
	descPtrs := make([]*frameDescriptor, numBufs)
	for i := range descriptors {
		descriptors[i].frameIndex = i
		descriptors[i].pageNo = types.InvalidPageID
		descPtrs[i] = &descriptors[i]
	}

	return &BufferPoolManager{
		pages:       make([]page.Page, numBufs),
		descriptors: descriptors,
		hash:        framehash.NewTable(numBufs),
		replacer:    newClockReplacer(descPtrs),
	}
}

// allocateFrame runs the clock sweep and, if the chosen frame is currently
// occupied, evicts it: writing back if dirty, removing its hash entry, and
// resetting the descriptor.
func (b *BufferPoolManager) allocateFrame() (int, error) {
	frame, err := b.replacer.advance()
	if err != nil {
		return 0, err
	}

	d := &b.descriptors[frame]
	if !d.valid {
		return frame, nil
	}

	if d.dirty {
		if err := d.file.WritePage(d.pageNo, &b.pages[frame]); err != nil {
			return 0, fmt.Errorf("%w: %v", ErrIoError, err)
		}
		b.stats.DiskWrites++
		d.dirty = false
	}

	if err := b.hash.Remove(framehash.Key{File: d.file, PageNo: d.pageNo}); err != nil {
		// Treated as a fatal invariant violation, not a partial rollback of
		// the write-back that already happened.
		return 0, ErrHashError
	}

	d.invalidate()
	return frame, nil
}

// ReadPage pins page pageNo of file and returns a borrowed reference to its
// bytes, valid until the matching UnpinPage.
func (b *BufferPoolManager) ReadPage(file disk.PagedFile, pageNo types.PageID) (*page.Page, error) {
	b.guard.Enter()
	defer b.guard.Exit()

	key := framehash.Key{File: file, PageNo: pageNo}
	if frame, ok := b.hash.Lookup(key); ok {
		d := &b.descriptors[frame]
		d.pinCount++
		d.refBit = true
		b.stats.Accesses++
		return &b.pages[frame], nil
	}

	frame, err := b.allocateFrame()
	if err != nil {
		return nil, err
	}

	if err := file.ReadPage(pageNo, &b.pages[frame]); err != nil {
		// the frame is still invalid — allocateFrame either found it that
		// way or just invalidated it during eviction — so it's reusable
		// without any further cleanup.
		return nil, fmt.Errorf("%w: %v", ErrIoError, err)
	}
	b.stats.DiskReads++
	b.stats.Accesses++

	if err := b.hash.Insert(key, frame); err != nil {
		return nil, ErrHashError
	}
	b.descriptors[frame].fill(file, pageNo)
	return &b.pages[frame], nil
}

// UnpinPage releases one pin held on (file, pageNo). If dirtyFlag is true
// the frame's dirty bit is set; it is sticky and unpinning with false never
// clears an already-set dirty bit.
func (b *BufferPoolManager) UnpinPage(file disk.PagedFile, pageNo types.PageID, dirtyFlag bool) error {
	b.guard.Enter()
	defer b.guard.Exit()

	frame, ok := b.hash.Lookup(framehash.Key{File: file, PageNo: pageNo})
	if !ok {
		return ErrHashNotFound
	}
	d := &b.descriptors[frame]
	if d.pinCount == 0 {
		return ErrPageNotPinned
	}
	d.pinCount--
	if dirtyFlag {
		d.dirty = true
	}
	return nil
}

// AllocPage asks file to allocate a new page slot, buffers it as an
// all-zero page pinned once, and returns its number and a borrowed
// reference to its bytes.
func (b *BufferPoolManager) AllocPage(file disk.PagedFile) (types.PageID, *page.Page, error) {
	b.guard.Enter()
	defer b.guard.Exit()

	pageNo, err := file.AllocatePage()
	if err != nil {
		return types.InvalidPageID, nil, fmt.Errorf("%w: %v", ErrIoError, err)
	}

	frame, err := b.allocateFrame()
	if err != nil {
		return types.InvalidPageID, nil, err
	}

	b.pages[frame].Zero()
	if err := b.hash.Insert(framehash.Key{File: file, PageNo: pageNo}, frame); err != nil {
		return types.InvalidPageID, nil, ErrHashError
	}
	b.descriptors[frame].fill(file, pageNo)
	b.stats.Accesses++
	return pageNo, &b.pages[frame], nil
}

// DisposePage drops page pageNo from the pool without writing it back — it
// is being freed on disk — and asks file to free the slot.
func (b *BufferPoolManager) DisposePage(file disk.PagedFile, pageNo types.PageID) error {
	b.guard.Enter()
	defer b.guard.Exit()

	key := framehash.Key{File: file, PageNo: pageNo}
	if frame, ok := b.hash.Lookup(key); ok {
		b.descriptors[frame].invalidate()
		_ = b.hash.Remove(key) // presence already confirmed by Lookup above
	}

	if err := file.DisposePage(pageNo); err != nil {
		return fmt.Errorf("%w: %v", ErrIoError, err)
	}
	return nil
}

// FlushFile writes back every dirty, unpinned page belonging to file and
// invalidates its frames. It stops at the first pinned page it finds,
// leaving frames flushed so far as they are — the caller is responsible for
// retrying.
func (b *BufferPoolManager) FlushFile(file disk.PagedFile) error {
	b.guard.Enter()
	defer b.guard.Exit()

	for i := range b.descriptors {
		d := &b.descriptors[i]
		switch {
		case d.valid && d.file == file:
			if d.pinCount > 0 {
				return ErrPagePinned
			}
			if d.dirty {
				if err := d.file.WritePage(d.pageNo, &b.pages[i]); err != nil {
					return fmt.Errorf("%w: %v", ErrIoError, err)
				}
				b.stats.DiskWrites++
				d.dirty = false
			}
			_ = b.hash.Remove(framehash.Key{File: d.file, PageNo: d.pageNo})
			d.invalidate()
		case !d.valid && d.file == file:
			// an invalidated frame should never retain a file identity —
			// invalidate() always zeroes it — so reaching here means the
			// frame table and its own bookkeeping have drifted apart.
			return ErrBadBuffer
		}
	}
	return nil
}

// Close writes back every valid dirty frame, best-effort, and returns a
// joined error for any write that failed. There is no partial-flush
// surface beyond that — callers who need FlushFile's stricter guarantees
// should call it themselves before Close.
func (b *BufferPoolManager) Close() error {
	b.guard.Enter()
	defer b.guard.Exit()

	var errs []error
	for i := range b.descriptors {
		d := &b.descriptors[i]
		if d.valid && d.dirty {
			if err := d.file.WritePage(d.pageNo, &b.pages[i]); err != nil {
				errs = append(errs, err)
				continue
			}
			b.stats.DiskWrites++
			d.dirty = false
		}
	}
	return errors.Join(errs...)
}

// Stats returns a snapshot of the manager's counters.
func (b *BufferPoolManager) Stats() Stats {
	return b.stats
}

// WithPage pins pageNo of file, runs fn with a borrowed reference to its
// bytes, and unpins it afterward — including when fn panics — so callers
// never have to remember the matching UnpinPage on every exit path. fn
// reports whether it dirtied the page.
func (b *BufferPoolManager) WithPage(file disk.PagedFile, pageNo types.PageID, fn func(p *page.Page) (dirty bool, err error)) (err error) {
	p, err := b.ReadPage(file, pageNo)
	if err != nil {
		return err
	}

	dirty := false
	defer func() {
		if uerr := b.UnpinPage(file, pageNo, dirty); uerr != nil && err == nil {
			err = uerr
		}
	}()

	dirty, err = fn(p)
	return err
}

// Dump writes one line per frame to w: its index, resident page number (if
// any), pin count, and validity. Ported from the original reference
// implementation's printSelf, purely for diagnostics.
func (b *BufferPoolManager) Dump(w io.Writer) {
	for i := range b.descriptors {
		d := &b.descriptors[i]
		if d.valid {
			fmt.Fprintf(w, "%d\tpage=%d\tpin=%d\tvalid\n", i, d.pageNo, d.pinCount)
		} else {
			fmt.Fprintf(w, "%d\t-\tpin=%d\tinvalid\n", i, d.pinCount)
		}
	}
}
