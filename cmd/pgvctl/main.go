// Command pgvctl runs a small scripted exercise of the buffer pool manager
// against an in-memory file, purely to demonstrate wiring — the manager
// itself has no CLI, no flags, and no persistent state of its own.
package main

import (
	"fmt"
	"os"

	"github.com/pagevault/pagevault/common"
	"github.com/pagevault/pagevault/storage/buffer"
	"github.com/pagevault/pagevault/storage/disk"
)

func main() {
	file := disk.NewMemFile()
	bpm := buffer.New(common.DefaultNumBufs)

	for i := 0; i < 3; i++ {
		pageNo, p, err := bpm.AllocPage(file)
		if err != nil {
			fmt.Fprintln(os.Stderr, "alloc:", err)
			os.Exit(1)
		}
		p.CopyAt(0, []byte(fmt.Sprintf("page-%d", pageNo)))
		if err := bpm.UnpinPage(file, pageNo, true); err != nil {
			fmt.Fprintln(os.Stderr, "unpin:", err)
			os.Exit(1)
		}
	}

	if _, err := bpm.ReadPage(file, 0); err != nil {
		fmt.Fprintln(os.Stderr, "read:", err)
		os.Exit(1)
	}
	if err := bpm.UnpinPage(file, 0, false); err != nil {
		fmt.Fprintln(os.Stderr, "unpin:", err)
		os.Exit(1)
	}

	bpm.Dump(os.Stdout)
	fmt.Printf("stats: %+v\n", bpm.Stats())
}
