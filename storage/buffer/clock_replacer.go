package buffer

// clockReplacer implements the clock (second-chance) replacement policy: a
// single hand sweeping the frame descriptor table looking for a frame that
// is either already empty or unpinned with its reference bit clear.
//
// This differs from the circular-list-of-unpinned-frames replacer some
// clock implementations use, which never looks at pinned frames at all and
// so can never detect an all-pinned pool. This one sweeps the full
// descriptor array every call, counting pinned frames as it goes, so it can
// report exhaustion once it has scanned every frame without finding a
// victim.
type clockReplacer struct {
	descriptors []*frameDescriptor
	hand        int
}

// newClockReplacer builds a replacer over descriptors, with the hand
// starting at len(descriptors)-1 so the first advance lands on frame 0 —
// an arbitrary but fixed starting point that keeps eviction order
// deterministic and easy to test.
func newClockReplacer(descriptors []*frameDescriptor) *clockReplacer {
	return &clockReplacer{
		descriptors: descriptors,
		hand:        len(descriptors) - 1,
	}
}

// advance sweeps for a candidate frame: one that is not valid (free, no
// eviction needed) or one that is unpinned with a cleared reference bit
// (the caller must evict it). Frames with a set reference bit get one skip,
// clearing the bit as they're passed over. It returns ErrBufferExceeded once
// it has passed over n pinned frames during this call (the count is local to
// the call, and a pinned frame met again on a second sweep counts again), so
// every frame being pinned always ends in ErrBufferExceeded.
func (c *clockReplacer) advance() (int, error) {
	n := len(c.descriptors)
	scannedPinned := 0
	for {
		c.hand = (c.hand + 1) % n
		d := c.descriptors[c.hand]

		if !d.valid {
			return c.hand, nil
		}
		if d.pinCount > 0 {
			scannedPinned++
			if scannedPinned >= n {
				return 0, ErrBufferExceeded
			}
			continue
		}
		if d.refBit {
			d.refBit = false
			continue
		}
		return c.hand, nil
	}
}
