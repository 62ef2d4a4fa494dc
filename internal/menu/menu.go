package menu

import (
	"io"
	"sync"
)

// Item represents a selectable picker entry.
type Item struct {
	ID    string
	Label string
	// Icon is rendered before the label when set.
	Icon     string
	OnSelect func()
}

// Select runs the item's action, if any.
func (i Item) Select() {
	if i.OnSelect != nil {
		i.OnSelect()
	}
}

// Context carries runtime data needed by loader functions.
type Context struct {
	SocketPath string
	Input      io.Reader
	Results    *Results
}

// Loader produces the candidate items of a source.
type Loader func(Context) ([]Item, error)

// Source is a named item supplier.
type Source struct {
	Name        string
	Description string
	Load        Loader
	// Refreshable sources may be reloaded periodically.
	Refreshable bool
}

// Results collects the output of committed item actions so it can be printed
// once the terminal has been restored.
type Results struct {
	mu    sync.Mutex
	lines []string
	err   error
}

func NewResults() *Results {
	return &Results{}
}

func (r *Results) Record(line string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.lines = append(r.lines, line)
	r.mu.Unlock()
}

// Fail remembers the first action error.
func (r *Results) Fail(err error) {
	if r == nil || err == nil {
		return
	}
	r.mu.Lock()
	if r.err == nil {
		r.err = err
	}
	r.mu.Unlock()
}

func (r *Results) Lines() []string {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.lines))
	copy(out, r.lines)
	return out
}

func (r *Results) Err() error {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}
