package events

import "github.com/atomicstack/popup-picker/internal/logging"

type FocusTracer struct{}

type KeymapTracer struct{}

type ListTracer struct{}

type SelectionTracer struct{}

var (
	Focus     = FocusTracer{}
	Keymap    = KeymapTracer{}
	List      = ListTracer{}
	Selection = SelectionTracer{}
)

func (FocusTracer) Move(from, to string) {
	logging.Trace("focus.move", map[string]interface{}{"from": from, "to": to})
}

func (KeymapTracer) Dispatch(scope, key, action string) {
	logging.Trace("keymap.dispatch", map[string]interface{}{"scope": scope, "key": key, "action": action})
}

func (KeymapTracer) PassThrough(scope, key string) {
	logging.Trace("keymap.pass-through", map[string]interface{}{"scope": scope, "key": key})
}

func (ListTracer) Cursor(cursor, windowStart int) {
	logging.Trace("list.cursor", map[string]interface{}{"cursor": cursor, "window": windowStart})
}

func (ListTracer) Items(count, cursor int) {
	logging.Trace("list.items", map[string]interface{}{"count": count, "cursor": cursor})
}

func (ListTracer) Duplicate(id string) {
	logging.Trace("list.duplicate-id", map[string]interface{}{"id": id})
}

func (SelectionTracer) Highlight(id, label string) {
	logging.Trace("selection.highlight", map[string]interface{}{"id": id, "label": label})
}

func (SelectionTracer) Commit(id, label, query string) {
	logging.Trace("selection.commit", map[string]interface{}{"id": id, "label": label, "query": query})
}
