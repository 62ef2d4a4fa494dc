package state

import (
	"unicode"

	"github.com/atomicstack/popup-picker/internal/keymap"
	"github.com/atomicstack/popup-picker/internal/logging/events"
)

// Query is the editable filter text with a rune-indexed caret.
type Query struct {
	text   []rune
	cursor int
}

func NewQuery(initial string) *Query {
	q := &Query{}
	q.Set(initial, len([]rune(initial)))
	return q
}

func (q *Query) Value() string {
	return string(q.text)
}

// CursorPos returns the rune offset of the caret.
func (q *Query) CursorPos() int {
	return q.cursor
}

// Set replaces the text and clamps the caret into it.
func (q *Query) Set(text string, cursor int) {
	q.text = []rune(text)
	q.cursor = clamp(cursor, 0, len(q.text))
}

// HandleEvent applies an editing key. It reports whether the key was
// recognised, whether or not the text changed.
func (q *Query) HandleEvent(ev keymap.Event) bool {
	switch ev.Key {
	case "backspace", "ctrl+h":
		if q.DeleteBackward() {
			events.Filter.Backspace(q.Value())
		}
	case "ctrl+w", "alt+backspace":
		if q.DeleteWordBackward() {
			events.Filter.WordBackspace(q.Value())
		}
	case "ctrl+u":
		if q.Clear() {
			events.Filter.Cleared()
		}
	case "left", "ctrl+b":
		q.moveTraced(q.MoveRuneBackward)
	case "right", "ctrl+f":
		q.moveTraced(q.MoveRuneForward)
	case "home", "ctrl+a":
		q.moveTraced(q.MoveStart)
	case "end", "ctrl+e":
		q.moveTraced(q.MoveEnd)
	case "alt+b", "alt+left", "ctrl+left":
		q.moveTraced(q.MoveWordBackward)
	case "alt+f", "alt+right", "ctrl+right":
		q.moveTraced(q.MoveWordForward)
	case "space", " ":
		q.insertTraced(" ")
	default:
		if !ev.IsText() {
			return false
		}
		q.insertTraced(string(ev.Runes))
	}
	return true
}

func (q *Query) moveTraced(move func() bool) {
	if move() {
		events.Filter.Cursor(q.cursor)
	}
}

func (q *Query) insertTraced(text string) {
	if q.Insert(text) {
		events.Filter.Append(q.Value())
	}
}

// Insert places text at the caret and advances it.
func (q *Query) Insert(text string) bool {
	insert := []rune(text)
	if len(insert) == 0 {
		return false
	}
	updated := make([]rune, 0, len(q.text)+len(insert))
	updated = append(updated, q.text[:q.cursor]...)
	updated = append(updated, insert...)
	updated = append(updated, q.text[q.cursor:]...)
	q.text = updated
	q.cursor += len(insert)
	return true
}

// DeleteBackward deletes the rune before the caret.
func (q *Query) DeleteBackward() bool {
	if q.cursor == 0 {
		return false
	}
	q.text = append(q.text[:q.cursor-1], q.text[q.cursor:]...)
	q.cursor--
	return true
}

// DeleteWordBackward deletes the word preceding the caret.
func (q *Query) DeleteWordBackward() bool {
	i := q.wordStartBefore(q.cursor)
	if i == q.cursor {
		return false
	}
	q.text = append(q.text[:i], q.text[q.cursor:]...)
	q.cursor = i
	return true
}

// Clear empties the query.
func (q *Query) Clear() bool {
	if len(q.text) == 0 {
		return false
	}
	q.text = nil
	q.cursor = 0
	return true
}

func (q *Query) MoveStart() bool {
	return q.moveCursor(0)
}

func (q *Query) MoveEnd() bool {
	return q.moveCursor(len(q.text))
}

func (q *Query) MoveRuneBackward() bool {
	return q.moveCursor(q.cursor - 1)
}

func (q *Query) MoveRuneForward() bool {
	return q.moveCursor(q.cursor + 1)
}

func (q *Query) MoveWordBackward() bool {
	return q.moveCursor(q.wordStartBefore(q.cursor))
}

func (q *Query) MoveWordForward() bool {
	i := q.cursor
	for i < len(q.text) && !unicode.IsSpace(q.text[i]) {
		i++
	}
	for i < len(q.text) && unicode.IsSpace(q.text[i]) {
		i++
	}
	return q.moveCursor(i)
}

func (q *Query) moveCursor(pos int) bool {
	if pos < 0 || pos > len(q.text) || pos == q.cursor {
		return false
	}
	q.cursor = pos
	return true
}

func (q *Query) wordStartBefore(pos int) int {
	i := pos
	for i > 0 && unicode.IsSpace(q.text[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(q.text[i-1]) {
		i--
	}
	return i
}
