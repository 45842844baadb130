package scheduler

import (
	"context"
	"sync"
)

// turnstile lets jobs sharing a submission key through one at a time in
// ticket order. Every ticket must be left exactly once, whether its job
// ran or was abandoned.
type turnstile struct {
	mu       sync.Mutex
	next     uint64
	serving  uint64
	finished map[uint64]struct{}
	changed  chan struct{}
}

func newTurnstile() *turnstile {
	return &turnstile{
		finished: make(map[uint64]struct{}),
		changed:  make(chan struct{}),
	}
}

func (t *turnstile) ticket() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.next
	t.next++
	return n
}

// wait blocks until ticket n is served. It returns false if ctx is
// cancelled first.
func (t *turnstile) wait(ctx context.Context, n uint64) bool {
	for {
		if ctx.Err() != nil {
			return false
		}
		t.mu.Lock()
		if t.serving == n {
			t.mu.Unlock()
			return true
		}
		changed := t.changed
		t.mu.Unlock()

		select {
		case <-changed:
		case <-ctx.Done():
			return false
		}
	}
}

func (t *turnstile) leave(n uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.finished[n] = struct{}{}
	for {
		if _, ok := t.finished[t.serving]; !ok {
			break
		}
		delete(t.finished, t.serving)
		t.serving++
	}
	close(t.changed)
	t.changed = make(chan struct{})
}
