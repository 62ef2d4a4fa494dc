package backend

import (
	"sync"
	"time"
)

// throttle enforces a minimum gap between successive reloads.
type throttle struct {
	gap time.Duration

	mu   sync.Mutex
	next time.Time
}

func newThrottle(gap time.Duration) *throttle {
	if gap < 0 {
		gap = 0
	}
	return &throttle{gap: gap}
}

// wait blocks until the gap since the previous call has elapsed.
func (t *throttle) wait() {
	if t == nil || t.gap <= 0 {
		return
	}
	t.mu.Lock()
	now := time.Now()
	slot := t.next
	if slot.Before(now) {
		slot = now
	}
	t.next = slot.Add(t.gap)
	t.mu.Unlock()

	if d := time.Until(slot); d > 0 {
		time.Sleep(d)
	}
}
