package events

import "github.com/atomicstack/popup-picker/internal/logging"

type FilterTracer struct{}

type SourceTracer struct{}

var (
	Filter = FilterTracer{}
	Source = SourceTracer{}
)

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (FilterTracer) WordBackspace(filter string) {
	logging.Trace("filter.word-backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Cursor(pos int) {
	logging.Trace("filter.cursor", map[string]interface{}{"cursor": pos})
}

func (FilterTracer) Append(filter string) {
	logging.Trace("filter.append", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Backspace(filter string) {
	logging.Trace("filter.backspace", map[string]interface{}{"filter": filter})
}

func (FilterTracer) Matches(filter string, matched, total int) {
	logging.Trace("filter.matches", map[string]interface{}{"filter": filter, "matched": matched, "total": total})
}

func (SourceTracer) Load(name string, count int, err error) {
	payload := map[string]interface{}{"source": name, "count": count}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("source.load", payload)
}

func (SourceTracer) Refresh(name string, count int) {
	logging.Trace("source.refresh", map[string]interface{}{"source": name, "count": count})
}
