package state

import (
	"strconv"
	"testing"

	"github.com/atomicstack/popup-picker/internal/menu"
)

func numberedItems(n int) []menu.Item {
	items := make([]menu.Item, n)
	for i := range items {
		id := strconv.Itoa(i)
		items[i] = menu.Item{ID: id, Label: id}
	}
	return items
}

func newTestList(t *testing.T, windowSize, n int) *List {
	t.Helper()
	l, err := NewList(windowSize)
	if err != nil {
		t.Fatalf("new list: %v", err)
	}
	l.SetItems(numberedItems(n))
	return l
}

func assertWindow(t *testing.T, l *List, start, size int) {
	t.Helper()
	w := l.VisibleWindow()
	if w.Start != start || w.Size != size {
		t.Fatalf("expected window start=%d size=%d, got start=%d size=%d", start, size, w.Start, w.Size)
	}
	if len(w.Rows) != size {
		t.Fatalf("expected %d rows, got %d", size, len(w.Rows))
	}
}

func assertInvariants(t *testing.T, l *List) {
	t.Helper()
	n := l.Len()
	c := l.Cursor()
	if n == 0 {
		if c != NoCursor {
			t.Fatalf("expected no cursor on empty list, got %d", c)
		}
		return
	}
	if c < 0 || c >= n {
		t.Fatalf("cursor %d out of bounds for %d items", c, n)
	}
	w := l.VisibleWindow()
	if c < w.Start || c >= w.Start+w.Size {
		t.Fatalf("cursor %d outside window [%d,%d)", c, w.Start, w.Start+w.Size)
	}
	if w.Start < 0 || w.Start+w.Size > n {
		t.Fatalf("window [%d,%d) exceeds %d items", w.Start, w.Start+w.Size, n)
	}
	cursorRows := 0
	for _, row := range w.Rows {
		if row.IsCursor {
			cursorRows++
			if row.Index != c {
				t.Fatalf("cursor row index %d, expected %d", row.Index, c)
			}
		}
	}
	if cursorRows != 1 {
		t.Fatalf("expected exactly one cursor row, got %d", cursorRows)
	}
}

func TestNewListRejectsInvalidWindow(t *testing.T) {
	for _, size := range []int{0, -3} {
		if _, err := NewList(size); err == nil {
			t.Fatalf("expected error for window size %d", size)
		}
	}
}

func TestWindowSlidesAndClampsAtEnd(t *testing.T) {
	l := newTestList(t, 2, 3)
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor 0, got %d", l.Cursor())
	}
	assertWindow(t, l, 0, 2)

	l.NextItem()
	l.NextItem()
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor 2, got %d", l.Cursor())
	}
	assertWindow(t, l, 1, 2)

	if l.NextItem() {
		t.Fatalf("expected next at last item to be a no-op")
	}
	if l.Cursor() != 2 {
		t.Fatalf("expected cursor to remain 2, got %d", l.Cursor())
	}
	assertWindow(t, l, 1, 2)
}

func TestPrevItemAtFirstIsNoop(t *testing.T) {
	l := newTestList(t, 4, 3)
	if l.PrevItem() {
		t.Fatalf("expected prev at first item to be a no-op")
	}
	assertWindow(t, l, 0, 3)
}

func TestWindowSlidesMinimally(t *testing.T) {
	l := newTestList(t, 3, 10)
	for i := 0; i < 5; i++ {
		l.NextItem()
	}
	assertWindow(t, l, 3, 3)
	l.PrevItem()
	l.PrevItem()
	assertWindow(t, l, 3, 3)
	l.PrevItem()
	assertWindow(t, l, 2, 3)
	assertInvariants(t, l)
}

func TestEmptyListOperationsAreNoops(t *testing.T) {
	l := newTestList(t, 3, 0)
	if l.NextItem() || l.PrevItem() || l.MoveHome() || l.MoveEnd() || l.PageUp() || l.PageDown() {
		t.Fatalf("expected every movement on an empty list to be a no-op")
	}
	if _, ok := l.CurrentItem(); ok {
		t.Fatalf("expected no current item")
	}
	assertWindow(t, l, 0, 0)
	assertInvariants(t, l)
}

func TestSetItemsClampsOnShrink(t *testing.T) {
	l := newTestList(t, 4, 10)
	l.MoveEnd()
	if l.Cursor() != 9 {
		t.Fatalf("expected cursor 9, got %d", l.Cursor())
	}
	l.SetItems(numberedItems(5))
	if l.Cursor() != 4 {
		t.Fatalf("expected cursor clamped to 4, got %d", l.Cursor())
	}
	assertInvariants(t, l)

	l.SetItems(nil)
	if l.Cursor() != NoCursor {
		t.Fatalf("expected no cursor after emptying, got %d", l.Cursor())
	}
	l.SetItems(numberedItems(2))
	if l.Cursor() != 0 {
		t.Fatalf("expected cursor reset to first item, got %d", l.Cursor())
	}
	assertInvariants(t, l)
}

func TestSetItemsKeepsRelativeRow(t *testing.T) {
	l := newTestList(t, 4, 20)
	for i := 0; i < 9; i++ {
		l.NextItem()
	}
	// cursor 9 sits on the last visible row of window [6,10).
	assertWindow(t, l, 6, 4)

	l.SetItems(numberedItems(15))
	if l.Cursor() != 9 {
		t.Fatalf("expected cursor 9, got %d", l.Cursor())
	}
	assertWindow(t, l, 6, 4)

	l.SetItems(numberedItems(8))
	if l.Cursor() != 7 {
		t.Fatalf("expected cursor 7, got %d", l.Cursor())
	}
	assertWindow(t, l, 4, 4)
}

func TestPagingAndJumps(t *testing.T) {
	l := newTestList(t, 3, 8)
	if !l.PageDown() || l.Cursor() != 3 {
		t.Fatalf("expected page down to cursor 3, got %d", l.Cursor())
	}
	assertWindow(t, l, 1, 3)
	l.PageDown()
	l.PageDown()
	if l.Cursor() != 7 {
		t.Fatalf("expected page down clamped at 7, got %d", l.Cursor())
	}
	if l.PageDown() {
		t.Fatalf("expected page down at end to be a no-op")
	}
	if !l.PageUp() || l.Cursor() != 4 {
		t.Fatalf("expected page up to cursor 4, got %d", l.Cursor())
	}
	if !l.MoveHome() || l.Cursor() != 0 {
		t.Fatalf("expected home to cursor 0, got %d", l.Cursor())
	}
	assertWindow(t, l, 0, 3)
	if !l.MoveEnd() || l.Cursor() != 7 {
		t.Fatalf("expected end to cursor 7, got %d", l.Cursor())
	}
	assertWindow(t, l, 5, 3)
}

func TestInvariantsHoldUnderMixedOperations(t *testing.T) {
	l := newTestList(t, 4, 12)
	sizes := []int{12, 3, 0, 7, 20, 1}
	for step := 0; step < 60; step++ {
		switch step % 7 {
		case 0, 1, 2:
			l.NextItem()
		case 3:
			l.PrevItem()
		case 4:
			l.PageDown()
		case 5:
			l.PageUp()
		case 6:
			l.SetItems(numberedItems(sizes[(step/7)%len(sizes)]))
		}
		assertInvariants(t, l)
	}
}

func TestDuplicateIDsKeepFirstPositionLastContent(t *testing.T) {
	l, err := NewList(5)
	if err != nil {
		t.Fatalf("new list: %v", err)
	}
	l.SetItems([]menu.Item{
		{ID: "a", Label: "first a"},
		{ID: "b", Label: "b"},
		{ID: "a", Label: "second a"},
	})
	if l.Len() != 2 {
		t.Fatalf("expected duplicate ids collapsed to 2 items, got %d", l.Len())
	}
	if idx := l.IndexOf("a"); idx != 0 {
		t.Fatalf("expected a at index 0, got %d", idx)
	}
	item, _ := l.CurrentItem()
	if item.Label != "second a" {
		t.Fatalf("expected last content to win, got %q", item.Label)
	}
	if l.IndexOf("missing") != -1 || l.IndexOf("") != -1 {
		t.Fatalf("expected -1 for unknown ids")
	}
}

func TestClassify(t *testing.T) {
	cases := []struct {
		isCursor, active bool
		want             FocusState
	}{
		{false, false, FocusNone},
		{false, true, FocusNone},
		{true, false, FocusShallow},
		{true, true, FocusDeep},
	}
	for _, tc := range cases {
		if got := Classify(tc.isCursor, tc.active); got != tc.want {
			t.Fatalf("Classify(%v, %v) = %s, want %s", tc.isCursor, tc.active, got, tc.want)
		}
	}
}

func TestSetWindowSizeKeepsCursorVisible(t *testing.T) {
	l := newTestList(t, 16, 20)
	for i := 0; i < 10; i++ {
		l.NextItem()
	}
	if err := l.SetWindowSize(5); err != nil {
		t.Fatalf("set window size: %v", err)
	}
	assertWindow(t, l, 6, 5)
	assertInvariants(t, l)

	if err := l.SetWindowSize(16); err != nil {
		t.Fatalf("set window size: %v", err)
	}
	assertWindow(t, l, 4, 16)
	if l.Cursor() != 10 {
		t.Fatalf("expected cursor to stay at 10, got %d", l.Cursor())
	}

	if err := l.SetWindowSize(0); err == nil {
		t.Fatalf("expected error for window size 0")
	}
	if l.WindowSize() != 16 {
		t.Fatalf("expected rejected size to leave window at 16, got %d", l.WindowSize())
	}
}
