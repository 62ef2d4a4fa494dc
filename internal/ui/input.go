package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/atomicstack/popup-picker/internal/picker"
)

const (
	filterPromptText  = "» "
	filterPlaceholder = "(type to search)"
)

func (m *Model) updateFilterCursorModel(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	m.filterCursor, cmd = m.filterCursor.Update(msg)
	return cmd
}

// filterPrompt renders the query line. The caret is only drawn while the
// input has focus.
func (m *Model) filterPrompt(frame picker.Frame) string {
	render := func(style *lipgloss.Style, value string) string {
		if style == nil || value == "" {
			return value
		}
		return style.Render(value)
	}
	active := frame.Active == picker.NodeInput

	promptStyle := styles.FilterPrompt
	if !active {
		promptStyle = styles.FilterPromptIdle
	}
	prompt := render(promptStyle, filterPromptText)

	if styles.Cursor != nil {
		m.filterCursor.Style = styles.Cursor.Copy()
	}
	if styles.Filter != nil {
		m.filterCursor.TextStyle = styles.Filter.Copy()
	} else {
		m.filterCursor.TextStyle = lipgloss.Style{}
	}

	runes := []rune(frame.Query)
	if len(runes) == 0 {
		if !active {
			return prompt + render(styles.FilterPlaceholder, filterPlaceholder)
		}
		placeholder := []rune(filterPlaceholder)
		if styles.FilterPlaceholder != nil {
			m.filterCursor.TextStyle = styles.FilterPlaceholder.Copy()
		}
		caret := m.renderFilterCursor(string(placeholder[0]))
		return prompt + caret + render(styles.FilterPlaceholder, string(placeholder[1:]))
	}
	if !active {
		return prompt + render(styles.Filter, frame.Query)
	}

	pos := frame.QueryCursor
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}
	before := render(styles.Filter, string(runes[:pos]))
	caretRune := " "
	after := ""
	if pos < len(runes) {
		caretRune = string(runes[pos])
		after = render(styles.Filter, string(runes[pos+1:]))
	}
	return prompt + before + m.renderFilterCursor(caretRune) + after
}

func (m *Model) renderFilterCursor(char string) string {
	if char == "" {
		char = " "
	}
	m.filterCursor.SetChar(char)

	base := m.filterCursor.TextStyle.Copy()
	base = base.Inline(true)

	if m.filterCursor.Blink {
		return base.Render(char)
	}

	if styles.Cursor != nil {
		cursorStyle := styles.Cursor.Copy().Inline(true)
		base = base.Inherit(cursorStyle).Blink(false)
		return base.Render(char)
	}

	return base.Reverse(true).Render(char)
}
