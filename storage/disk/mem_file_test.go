package disk

import (
	"testing"

	"github.com/pagevault/pagevault/storage/page"
)

func TestMemFileAllocateWriteRead(t *testing.T) {
	f := NewMemFile()

	pageNo, err := f.AllocatePage()
	if err != nil {
		t.Fatalf("AllocatePage: %v", err)
	}

	var src page.Page
	src.CopyAt(0, []byte("hello memfile"))
	if err := f.WritePage(pageNo, &src); err != nil {
		t.Fatalf("WritePage: %v", err)
	}

	var dst page.Page
	if err := f.ReadPage(pageNo, &dst); err != nil {
		t.Fatalf("ReadPage: %v", err)
	}
	if dst != src {
		t.Fatalf("read back different bytes than written")
	}
}

func TestMemFileReadPastEndFails(t *testing.T) {
	f := NewMemFile()
	var dst page.Page
	if err := f.ReadPage(0, &dst); err == nil {
		t.Fatal("expected error reading past end of an empty file")
	}
}
