package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/atomicstack/popup-picker/internal/backend"
	"github.com/atomicstack/popup-picker/internal/logging"
)

func waitForBackendEvent(w *backend.Watcher) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-w.Events()
		if !ok {
			return backendDoneMsg{}
		}
		return backendEventMsg{event: evt}
	}
}

type backendEventMsg struct {
	event backend.Event
}

type backendDoneMsg struct{}

func (m *Model) handleBackendEventMsg(msg tea.Msg) tea.Cmd {
	eventMsg, ok := msg.(backendEventMsg)
	if !ok {
		return nil
	}
	m.applyBackendEvent(eventMsg.event)
	if m.backend != nil {
		return waitForBackendEvent(m.backend)
	}
	return nil
}

func (m *Model) handleBackendDoneMsg(msg tea.Msg) tea.Cmd {
	m.backend = nil
	return nil
}

// applyBackendEvent swaps in reloaded candidates. Reload failures keep the
// current items and surface in the status line.
func (m *Model) applyBackendEvent(evt backend.Event) {
	if evt.Err != nil {
		err := fmt.Errorf("reload %s: %w", evt.Source, evt.Err)
		logging.Error(err)
		m.errMsg = err.Error()
		return
	}
	m.errMsg = ""
	if m.picker != nil {
		m.picker.SetCandidates(evt.Items)
	}
}
