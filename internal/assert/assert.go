// Package assert holds the small set of invariant checks the buffer pool
// leans on internally. These are for conditions the manager's own bookkeeping
// guarantees, not for validating caller input.
package assert

import (
	"fmt"

	"github.com/sasha-s/go-deadlock"
)

// Require panics if cond is false. Use it for invariants the manager itself
// is responsible for maintaining (e.g. "a frame we just made valid has an
// entry in the hash table") — never for rejecting bad caller input, which
// should return an error instead.
func Require(cond bool, format string, args ...any) {
	if !cond {
		panic(fmt.Sprintf(format, args...))
	}
}

// Guard is a non-reentrant lock. The buffer pool manager is single-threaded
// with no reentrancy support; Guard turns a violation of that contract into
// an immediate, named panic instead of a silent deadlock, while still
// relying on deadlock.Mutex as a backstop in case two real goroutines do
// race on it.
type Guard struct {
	mu     deadlock.Mutex
	locked bool
}

// Enter acquires the guard. It panics if it is already held — the manager
// doesn't support calling back into itself mid operation. deadlock.Mutex
// still backstops the case of two distinct goroutines racing on the guard,
// where it reports a timeout instead of hanging forever.
func (g *Guard) Enter() {
	Require(!g.locked, "pagevault: reentrant call into buffer pool manager")
	g.mu.Lock()
	g.locked = true
}

// Exit releases the guard.
func (g *Guard) Exit() {
	Require(g.locked, "assert.Guard: Exit without matching Enter")
	g.mu.Unlock()
	g.locked = false
}
