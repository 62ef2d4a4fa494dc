package backend

import (
	"context"
	"sync"
	"time"

	"github.com/atomicstack/popup-picker/internal/logging/events"
	"github.com/atomicstack/popup-picker/internal/menu"
)

// minReloadGap bounds how often a source is reloaded, whether by the ticker
// or by an explicit Trigger.
const minReloadGap = 250 * time.Millisecond

// Event conveys a reloaded item set or an error from a source reload.
type Event struct {
	Source string
	Items  []menu.Item
	Err    error
}

// LoadFunc reloads a source.
type LoadFunc func(context.Context) ([]menu.Item, error)

// Watcher reloads a source on a fixed interval, and on demand via Trigger,
// and publishes the results.
type Watcher struct {
	source   string
	load     LoadFunc
	interval time.Duration
	throttle *throttle

	ctx    context.Context
	cancel context.CancelFunc

	events  chan Event
	trigger chan struct{}
	wg      sync.WaitGroup
}

// NewWatcher starts reloading source every interval. A non-positive interval
// disables the ticker; reloads then happen only through Trigger.
func NewWatcher(source string, load LoadFunc, interval time.Duration) *Watcher {
	ctx, cancel := context.WithCancel(context.Background())
	w := &Watcher{
		source:   source,
		load:     load,
		interval: interval,
		throttle: newThrottle(minReloadGap),
		ctx:      ctx,
		cancel:   cancel,
		events:   make(chan Event, 4),
		trigger:  make(chan struct{}, 1),
	}

	w.wg.Add(1)
	go w.poll()

	go func() {
		w.wg.Wait()
		close(w.events)
	}()

	return w
}

// Events returns a channel of reload events.
func (w *Watcher) Events() <-chan Event {
	return w.events
}

// Trigger requests a reload as soon as the throttle allows. Requests made
// while one is already pending are coalesced.
func (w *Watcher) Trigger() {
	select {
	case w.trigger <- struct{}{}:
	default:
	}
}

// Stop cancels the watcher. The poller exits after its current load
// completes; use Wait if a clean drain is required (e.g. in tests).
func (w *Watcher) Stop() {
	w.cancel()
}

// Wait blocks until the poller has exited and the events channel is closed.
func (w *Watcher) Wait() {
	w.wg.Wait()
}

func (w *Watcher) poll() {
	defer w.wg.Done()

	emit := func() bool {
		w.throttle.wait()
		items, err := w.load(w.ctx)
		if w.ctx.Err() != nil {
			return false
		}
		events.Source.Refresh(w.source, len(items))
		evt := Event{Source: w.source, Items: items, Err: err}
		select {
		case <-w.ctx.Done():
			return false
		case w.events <- evt:
			return true
		}
	}

	var tick <-chan time.Time
	if w.interval > 0 {
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()
		tick = ticker.C
	}

	for {
		select {
		case <-w.ctx.Done():
			return
		case <-tick:
			if !emit() {
				return
			}
		case <-w.trigger:
			if !emit() {
				return
			}
		}
	}
}
