package buffer

import "testing"

func newTestDescriptors(n int) []*frameDescriptor {
	ptrs := make([]*frameDescriptor, n)
	for i := 0; i < n; i++ {
		ptrs[i] = &frameDescriptor{frameIndex: i}
	}
	return ptrs
}

func TestClockReplacerLandsOnFrameZeroFirst(t *testing.T) {
	descs := newTestDescriptors(3)
	c := newClockReplacer(descs)

	frame, err := c.advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if frame != 0 {
		t.Fatalf("expected first advance to land on frame 0, got %d", frame)
	}
}

func TestClockReplacerSecondChance(t *testing.T) {
	descs := newTestDescriptors(3)
	for _, d := range descs {
		d.valid = true
		d.refBit = true
	}
	c := newClockReplacer(descs)
	c.hand = 2 // hand starts just before frame 0, mid-sweep

	frame, err := c.advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if frame != 0 {
		t.Fatalf("expected second-chance sweep to evict frame 0, got %d", frame)
	}
	for i, d := range descs {
		if d.refBit {
			t.Fatalf("frame %d still has refBit set after a full sweep", i)
		}
	}
}

func TestClockReplacerAllPinnedReturnsBufferExceeded(t *testing.T) {
	descs := newTestDescriptors(3)
	for _, d := range descs {
		d.valid = true
		d.pinCount = 1
	}
	c := newClockReplacer(descs)

	if _, err := c.advance(); err != ErrBufferExceeded {
		t.Fatalf("expected ErrBufferExceeded, got %v", err)
	}
	for i, d := range descs {
		if !d.valid || d.pinCount != 1 {
			t.Fatalf("frame %d mutated despite BufferExceeded", i)
		}
	}
}

func TestClockReplacerSkipsPinnedFramesLandsOnUnpinned(t *testing.T) {
	descs := newTestDescriptors(3)
	descs[0].valid = true
	descs[0].pinCount = 1
	descs[1].valid = true // unpinned, ref bit clear: the victim
	descs[2].valid = true
	descs[2].pinCount = 1

	c := newClockReplacer(descs)
	frame, err := c.advance()
	if err != nil {
		t.Fatalf("advance: %v", err)
	}
	if frame != 1 {
		t.Fatalf("expected frame 1 (only unpinned frame), got %d", frame)
	}
}
