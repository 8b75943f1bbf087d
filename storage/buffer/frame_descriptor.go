package buffer

import (
	"github.com/pagevault/pagevault/storage/disk"
	"github.com/pagevault/pagevault/types"
)

// frameDescriptor is the per-frame metadata parallel to the page pool.
// frameIndex is fixed at construction; everything else changes across a
// frame's lifetime as it's filled, pinned, dirtied, and evicted.
type frameDescriptor struct {
	frameIndex int
	valid      bool
	dirty      bool
	pinCount   int
	refBit     bool
	file       disk.PagedFile
	pageNo     types.PageID
}

// invalidate resets the descriptor to its born-empty state. Every path that
// invalidates a frame — eviction, DisposePage, FlushFile — goes through
// this so file never survives past the frame that owned it, keeping a
// dropped frame from ever appearing to belong to its former file.
func (d *frameDescriptor) invalidate() {
	d.valid = false
	d.dirty = false
	d.pinCount = 0
	d.refBit = false
	d.file = nil
	d.pageNo = types.InvalidPageID
}

// fill installs a freshly-read-in or freshly-allocated page into the frame,
// owning exactly one pin as required by ReadPage/AllocPage's contract.
func (d *frameDescriptor) fill(file disk.PagedFile, pageNo types.PageID) {
	d.valid = true
	d.dirty = false
	d.pinCount = 1
	d.refBit = false
	d.file = file
	d.pageNo = pageNo
}
