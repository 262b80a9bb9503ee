package poll

import "sync"

// Latest holds the result with the highest sequence number seen so far.
// Results that arrive after a newer one was applied are discarded.
type Latest[T any] struct {
	mu    sync.Mutex
	seq   uint64
	value T
	set   bool
}

// Apply stores v if seq is newer than the current value and reports whether it did.
func (l *Latest[T]) Apply(seq uint64, v T) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.set && seq <= l.seq {
		return false
	}
	l.seq = seq
	l.value = v
	l.set = true
	return true
}

func (l *Latest[T]) Get() (T, uint64, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.seq, l.set
}
