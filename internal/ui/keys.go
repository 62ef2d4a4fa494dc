package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-picker/internal/keymap"
)

// eventFromKey converts a Bubble Tea key press into a dispatcher event.
// Alt-modified runes are reported as named keys only.
func eventFromKey(msg tea.KeyMsg) keymap.Event {
	ev := keymap.Event{Key: keymap.NormalizeKey(msg.String())}
	switch msg.Type {
	case tea.KeyRunes:
		if !msg.Alt {
			ev.Runes = append([]rune(nil), msg.Runes...)
		}
	case tea.KeySpace:
		ev.Runes = []rune{' '}
	}
	return ev
}

func (m *Model) handleKeyMsg(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.picker == nil || m.quitting {
		return nil
	}
	before := m.picker.Frame()
	out := m.picker.HandleEvent(eventFromKey(keyMsg))
	after := m.picker.Frame()
	if before.QueryCursor != after.QueryCursor || before.Query != after.Query {
		m.filterCursorDirty = true
	}
	if out.Changed {
		m.errMsg = ""
	}

	switch {
	case out.Quit:
		m.quitting = true
		return tea.Quit
	case out.Committed != nil:
		if !m.keepOpen {
			m.quitting = true
			return tea.Quit
		}
		m.setInfo(fmt.Sprintf("Selected %s", out.Committed.Label))
	case out.Reload:
		if m.backend == nil {
			m.setInfo("Source cannot be reloaded")
			return nil
		}
		m.backend.Trigger()
		m.setInfo("Reloading…")
	}
	return nil
}
