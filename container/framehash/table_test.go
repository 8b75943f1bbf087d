package framehash

import (
	"testing"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/pagevault/pagevault/storage/disk"
	"github.com/pagevault/pagevault/types"
)

func TestInsertLookupRemove(t *testing.T) {
	table := NewTable(8)
	file := disk.NewMemFile()
	key := Key{File: file, PageNo: 3}

	if _, ok := table.Lookup(key); ok {
		t.Fatal("lookup on empty table should miss")
	}
	if err := table.Insert(key, 5); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	frame, ok := table.Lookup(key)
	if !ok || frame != 5 {
		t.Fatalf("expected (5, true), got (%d, %v)", frame, ok)
	}
	if err := table.Insert(key, 5); err != ErrDuplicateKey {
		t.Fatalf("expected ErrDuplicateKey, got %v", err)
	}
	if err := table.Remove(key); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if err := table.Remove(key); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestDistinctFilesDoNotCollideOnPageNumberAlone(t *testing.T) {
	table := NewTable(8)
	fileA := disk.NewMemFile()
	fileB := disk.NewMemFile()

	if err := table.Insert(Key{File: fileA, PageNo: 1}, 0); err != nil {
		t.Fatalf("Insert A: %v", err)
	}
	if err := table.Insert(Key{File: fileB, PageNo: 1}, 1); err != nil {
		t.Fatalf("Insert B: %v", err)
	}

	frameA, ok := table.Lookup(Key{File: fileA, PageNo: 1})
	if !ok || frameA != 0 {
		t.Fatalf("expected fileA/1 at frame 0, got (%d, %v)", frameA, ok)
	}
	frameB, ok := table.Lookup(Key{File: fileB, PageNo: 1})
	if !ok || frameB != 1 {
		t.Fatalf("expected fileB/1 at frame 1, got (%d, %v)", frameB, ok)
	}
}

// TestKeysMatchesExpectedSet checks, by set comparison, that after a
// sequence of inserts and removes the table's resident key set equals
// exactly what plain bookkeeping expects.
func TestKeysMatchesExpectedSet(t *testing.T) {
	table := NewTable(16)
	file := disk.NewMemFile()

	expected := mapset.NewSet[types.PageID]()
	for i := types.PageID(0); i < 10; i++ {
		if err := table.Insert(Key{File: file, PageNo: i}, int(i)); err != nil {
			t.Fatalf("Insert %d: %v", i, err)
		}
		expected.Add(i)
	}
	for i := types.PageID(0); i < 10; i += 3 {
		if err := table.Remove(Key{File: file, PageNo: i}); err != nil {
			t.Fatalf("Remove %d: %v", i, err)
		}
		expected.Remove(i)
	}

	got := mapset.NewSet[types.PageID]()
	for _, k := range table.Keys() {
		got.Add(k.PageNo)
	}

	if !got.Equal(expected) {
		t.Fatalf("resident key set drifted: got %v, want %v", got.ToSlice(), expected.ToSlice())
	}
}
