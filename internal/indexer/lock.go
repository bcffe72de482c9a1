package indexer

import "sync/atomic"

// indexLock guards a project's async run loop. TryAcquire never blocks,
// so a save arriving during an active run can requeue instead of waiting.
type indexLock struct {
	state atomic.Int32 // 0 = unlocked, 1 = locked
}

// TryAcquire claims the loop if nobody holds it.
func (l *indexLock) TryAcquire() bool {
	return l.state.CompareAndSwap(0, 1)
}

// Release hands the loop back. Only the holder may call it.
func (l *indexLock) Release() {
	l.state.Store(0)
}
