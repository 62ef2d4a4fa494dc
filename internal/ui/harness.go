package ui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives the UI model synchronously for tests. Commands returned by
// Update run inline; batches are expanded and tea.Quit is recorded instead of
// stopping anything.
type Harness struct {
	model *Model
	quit  bool
}

// NewHarness creates a harness for the provided model.
func NewHarness(model *Model) *Harness {
	return &Harness{model: model}
}

// Send routes a message through the model and executes any returned commands.
func (h *Harness) Send(msg tea.Msg) {
	if h.model == nil {
		return
	}
	mdl, cmd := h.model.Update(msg)
	if updated, ok := mdl.(*Model); ok {
		h.model = updated
	}
	h.processCmd(cmd)
}

// SendKeys sends one key press per name: single characters as runes, the
// rest as named keys.
func (h *Harness) SendKeys(names ...string) {
	for _, name := range names {
		h.Send(keyMsg(name))
	}
}

func (h *Harness) processCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case nil:
		return
	case tea.QuitMsg:
		h.quit = true
	case tea.BatchMsg:
		for _, c := range msg {
			h.processCmd(c)
		}
	default:
		h.Send(msg)
	}
}

// Quit reports whether the model returned tea.Quit.
func (h *Harness) Quit() bool {
	return h.quit
}

// View returns the current view string.
func (h *Harness) View() string {
	if h.model == nil {
		return ""
	}
	return h.model.View()
}

// Model exposes the underlying model.
func (h *Harness) Model() *Model {
	return h.model
}

var namedKeys = map[string]tea.KeyType{
	"enter":     tea.KeyEnter,
	"tab":       tea.KeyTab,
	"shift+tab": tea.KeyShiftTab,
	"up":        tea.KeyUp,
	"down":      tea.KeyDown,
	"left":      tea.KeyLeft,
	"right":     tea.KeyRight,
	"home":      tea.KeyHome,
	"end":       tea.KeyEnd,
	"pgup":      tea.KeyPgUp,
	"pgdown":    tea.KeyPgDown,
	"esc":       tea.KeyEsc,
	"backspace": tea.KeyBackspace,
	"space":     tea.KeySpace,
	"ctrl+c":    tea.KeyCtrlC,
	"ctrl+r":    tea.KeyCtrlR,
	"ctrl+u":    tea.KeyCtrlU,
	"ctrl+w":    tea.KeyCtrlW,
}

func keyMsg(name string) tea.KeyMsg {
	if t, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}
