package state

import (
	"fmt"

	"github.com/atomicstack/popup-picker/internal/logging/events"
	"github.com/atomicstack/popup-picker/internal/menu"
)

// NoCursor is the cursor value of an empty list.
const NoCursor = -1

// List is a windowed cursor over an ordered item slice. The cursor is
// NoCursor exactly when the list is empty, and the visible window always
// contains the cursor.
type List struct {
	items      []menu.Item
	cursor     int
	start      int
	windowSize int
}

// Row is one visible entry of the window.
type Row struct {
	Index    int
	Item     menu.Item
	IsCursor bool
}

// Window is the visible slice [Start, Start+Size) of the list.
type Window struct {
	Start int
	Size  int
	Rows  []Row
}

// NewList returns an empty list showing at most windowSize rows.
func NewList(windowSize int) (*List, error) {
	if windowSize < 1 {
		return nil, fmt.Errorf("window size must be at least 1, got %d", windowSize)
	}
	return &List{cursor: NoCursor, windowSize: windowSize}, nil
}

// SetItems replaces the items. An out of range cursor is clamped to the last
// item, an unset cursor moves to the first item, and the window keeps the
// cursor on the same visible row where the bounds allow it. Items sharing an
// id collapse into the position of the first occurrence with the content of
// the last one.
func (l *List) SetItems(items []menu.Item) {
	rel := 0
	if l.cursor >= 0 {
		rel = l.cursor - l.start
	}
	l.items = dedupeItems(items)

	n := len(l.items)
	switch {
	case n == 0:
		l.cursor = NoCursor
		l.start = 0
	case l.cursor < 0:
		l.cursor = 0
		l.start = 0
	default:
		if l.cursor >= n {
			l.cursor = n - 1
		}
		l.start = l.cursor - rel
	}
	l.ensureCursorVisible()
	events.List.Items(n, l.cursor)
}

// SetWindowSize changes how many rows are visible. The window slides the
// minimal distance needed to keep the cursor in view.
func (l *List) SetWindowSize(size int) error {
	if size < 1 {
		return fmt.Errorf("window size must be at least 1, got %d", size)
	}
	if size == l.windowSize {
		return nil
	}
	l.windowSize = size
	l.ensureCursorVisible()
	events.List.Cursor(l.cursor, l.start)
	return nil
}

// NextItem moves the cursor down one item. It never wraps.
func (l *List) NextItem() bool {
	return l.moveTo(l.cursor + 1)
}

// PrevItem moves the cursor up one item. It never wraps.
func (l *List) PrevItem() bool {
	return l.moveTo(l.cursor - 1)
}

// MoveHome moves the cursor to the first item.
func (l *List) MoveHome() bool {
	return l.moveTo(0)
}

// MoveEnd moves the cursor to the last item.
func (l *List) MoveEnd() bool {
	return l.moveTo(len(l.items) - 1)
}

// PageUp moves the cursor up by one window, clamped at the first item.
func (l *List) PageUp() bool {
	return l.moveTo(clamp(l.cursor-l.windowSize, 0, len(l.items)-1))
}

// PageDown moves the cursor down by one window, clamped at the last item.
func (l *List) PageDown() bool {
	return l.moveTo(clamp(l.cursor+l.windowSize, 0, len(l.items)-1))
}

func (l *List) moveTo(idx int) bool {
	if len(l.items) == 0 || idx < 0 || idx >= len(l.items) || idx == l.cursor {
		return false
	}
	l.cursor = idx
	l.ensureCursorVisible()
	events.List.Cursor(l.cursor, l.start)
	return true
}

// ensureCursorVisible slides the window the minimal distance needed to keep
// the cursor inside it, then clamps the window to the item bounds.
func (l *List) ensureCursorVisible() {
	if len(l.items) == 0 {
		l.start = 0
		return
	}
	if l.cursor < l.start {
		l.start = l.cursor
	}
	if l.cursor > l.start+l.windowSize-1 {
		l.start = l.cursor - l.windowSize + 1
	}
	l.start = clamp(l.start, 0, l.maxStart())
}

func (l *List) maxStart() int {
	if m := len(l.items) - l.windowSize; m > 0 {
		return m
	}
	return 0
}

// VisibleWindow returns the rows currently in view.
func (l *List) VisibleWindow() Window {
	end := l.start + l.windowSize
	if end > len(l.items) {
		end = len(l.items)
	}
	w := Window{Start: l.start, Size: end - l.start}
	w.Rows = make([]Row, 0, w.Size)
	for i := l.start; i < end; i++ {
		w.Rows = append(w.Rows, Row{Index: i, Item: l.items[i], IsCursor: i == l.cursor})
	}
	return w
}

// CurrentItem returns the item under the cursor.
func (l *List) CurrentItem() (menu.Item, bool) {
	if l.cursor < 0 || l.cursor >= len(l.items) {
		return menu.Item{}, false
	}
	return l.items[l.cursor], true
}

func (l *List) Cursor() int     { return l.cursor }
func (l *List) Len() int        { return len(l.items) }
func (l *List) WindowSize() int { return l.windowSize }

// IndexOf returns the position of the item with the given id, or -1.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

func dedupeItems(items []menu.Item) []menu.Item {
	out := make([]menu.Item, 0, len(items))
	seen := make(map[string]int, len(items))
	for _, item := range items {
		if idx, ok := seen[item.ID]; ok {
			out[idx] = item
			events.List.Duplicate(item.ID)
			continue
		}
		seen[item.ID] = len(out)
		out = append(out, item)
	}
	return out
}

// CloneItems produces a shallow copy of the provided menu items.
func CloneItems(items []menu.Item) []menu.Item {
	dup := make([]menu.Item, len(items))
	copy(dup, items)
	return dup
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
