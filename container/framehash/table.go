// Package framehash implements the secondary index the buffer pool manager
// keeps consistent with the frame descriptor table at all times: a mapping
// from (file, page number) to frame index. Collision handling (chaining) is
// an implementation detail the manager doesn't depend on — only Lookup,
// Insert, and Remove's contracts matter.
package framehash

import (
	"errors"
	"fmt"
	"math"

	"github.com/spaolacci/murmur3"

	"github.com/pagevault/pagevault/storage/disk"
	"github.com/pagevault/pagevault/types"
)

// ErrDuplicateKey is returned by Insert when the key is already present.
// The buffer pool manager is never expected to call Insert with a live
// duplicate — a valid frame's key is always removed before it is reused —
// but the table checks anyway rather than silently overwriting a mapping.
var ErrDuplicateKey = errors.New("framehash: duplicate key")

// ErrNotFound is returned by Remove when the key isn't present.
var ErrNotFound = errors.New("framehash: key not found")

// Key identifies a resident page: the PagedFile that owns it (compared by
// interface identity — see disk.PagedFile's doc comment) and its page
// number within that file.
type Key struct {
	File   disk.PagedFile
	PageNo types.PageID
}

type entry struct {
	key   Key
	frame int
	next  *entry
}

// Table is a fixed-capacity chained hash table from Key to frame index.
// Capacity is set once at construction and never resizes.
type Table struct {
	buckets []*entry
	count   int
}

// NewTable allocates a table sized for numBufs frames: ⌈1.2·numBufs⌉ + 1
// buckets, matching the original reference implementation's sizing formula.
func NewTable(numBufs int) *Table {
	if numBufs <= 0 {
		numBufs = 1
	}
	capacity := int(math.Ceil(float64(numBufs)*1.2)) + 1
	return &Table{buckets: make([]*entry, capacity)}
}

func (t *Table) index(k Key) int {
	h := murmur3.Sum64([]byte(fmt.Sprintf("%p:%d", k.File, k.PageNo)))
	return int(h % uint64(len(t.buckets)))
}

// Lookup returns the frame index for k, if present.
func (t *Table) Lookup(k Key) (frame int, found bool) {
	for e := t.buckets[t.index(k)]; e != nil; e = e.next {
		if e.key == k {
			return e.frame, true
		}
	}
	return 0, false
}

// Insert adds a new mapping. It fails with ErrDuplicateKey if k is already
// present.
func (t *Table) Insert(k Key, frame int) error {
	idx := t.index(k)
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.key == k {
			return ErrDuplicateKey
		}
	}
	t.buckets[idx] = &entry{key: k, frame: frame, next: t.buckets[idx]}
	t.count++
	return nil
}

// Remove deletes k's mapping. It fails with ErrNotFound if k isn't present.
func (t *Table) Remove(k Key) error {
	idx := t.index(k)
	var prev *entry
	for e := t.buckets[idx]; e != nil; e = e.next {
		if e.key == k {
			if prev == nil {
				t.buckets[idx] = e.next
			} else {
				prev.next = e.next
			}
			t.count--
			return nil
		}
		prev = e
	}
	return ErrNotFound
}

// Len returns the number of resident entries.
func (t *Table) Len() int {
	return t.count
}

// Keys returns every resident key, for invariant checks in tests.
func (t *Table) Keys() []Key {
	keys := make([]Key, 0, t.count)
	for _, head := range t.buckets {
		for e := head; e != nil; e = e.next {
			keys = append(keys, e.key)
		}
	}
	return keys
}
