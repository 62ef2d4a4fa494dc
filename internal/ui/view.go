package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atomicstack/popup-picker/internal/picker"
	"github.com/atomicstack/popup-picker/internal/ui/state"
)

const (
	rowIndicator = "▌"
	ellipsis     = "…"

	// header, status line and prompt
	chromeRows = 3
	// blank separator plus help line
	footerRows = 2
)

type styledLine struct {
	text  string
	style *lipgloss.Style
	// rendered marks text that already carries its styling.
	rendered bool
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.picker == nil || m.quitting {
		return ""
	}
	frame := m.picker.Frame()

	lines := make([]styledLine, 0, frame.Window.Size+6)
	lines = append(lines, styledLine{text: m.headerText(frame), rendered: true})
	if frame.Matched == 0 {
		msg := "(no entries)"
		if frame.Query != "" {
			msg = fmt.Sprintf("No matches for %q", frame.Query)
		}
		lines = append(lines, styledLine{text: msg, style: styles.Info})
	} else {
		for _, row := range frame.Window.Rows {
			lines = append(lines, m.buildItemLine(row, m.picker.FocusState(row.Index), m.width))
		}
	}
	if m.showFooter {
		lines = append(lines, styledLine{})
		lines = append(lines, styledLine{text: m.footerText(), rendered: true})
	}
	// Reserve 2 rows for the bottom bar (error/status + prompt).
	lines = limitHeight(lines, m.height-2, m.width)
	lines = applyWidth(lines, m.width)

	var statusLine styledLine
	if m.errMsg != "" {
		statusLine = styledLine{text: fmt.Sprintf("Error: %s", m.errMsg), style: styles.Error}
	} else if info := m.currentInfo(); info != "" {
		statusLine = styledLine{text: info, style: styles.Info}
	}
	bottom := applyWidth([]styledLine{statusLine}, m.width)
	out := renderLines(append(lines, bottom...))

	prompt := m.filterPrompt(frame)
	if m.width > 0 && lipgloss.Width(prompt) > m.width {
		prompt = truncate.StringWithTail(prompt, uint(m.width-1), ellipsis)
	}
	return out + "\n" + prompt
}

func (m *Model) headerText(frame picker.Frame) string {
	title := m.title
	if title == "" {
		title = "picker"
	}
	counter := fmt.Sprintf("%d/%d", frame.Matched, frame.Total)
	return paint(styles.Header, title+"  ") + paint(styles.Counter, counter)
}

// buildItemLine renders one row. The cursor row is painted blue while the
// list has focus and green while the input has focus. When width > 0 the
// label is padded so the highlight spans the container.
func (m *Model) buildItemLine(row state.Row, focus state.FocusState, width int) styledLine {
	lineStyle := styles.Item
	indicatorStyle := styles.ItemIndicator
	switch focus {
	case state.FocusDeep:
		lineStyle = styles.DeepFocus
		indicatorStyle = styles.DeepFocusIndicator
	case state.FocusShallow:
		lineStyle = styles.ShallowFocus
		indicatorStyle = styles.ShallowFocusIndicator
	}

	icon := strings.TrimSpace(row.Item.Icon)
	lead := rowIndicator + " "
	if icon != "" {
		lead += icon + " "
	}
	label := row.Item.Label
	if width > 0 {
		leadWidth := lipgloss.Width(lead)
		if leadWidth >= width {
			return styledLine{text: lead + label, style: lineStyle}
		}
		if leadWidth+lipgloss.Width(label) > width {
			label = truncate.StringWithTail(label, uint(width-1-leadWidth), ellipsis)
		}
		if pad := width - leadWidth - lipgloss.Width(label); pad > 0 {
			label += strings.Repeat(" ", pad)
		}
	}

	text := paint(indicatorStyle, rowIndicator)
	if icon != "" {
		iconStyle := styles.Icon
		if iconStyle != nil && lineStyle != nil {
			inherited := iconStyle.Inherit(*lineStyle)
			iconStyle = &inherited
		}
		text += paint(lineStyle, " ") + paint(iconStyle, icon)
	}
	text += paint(lineStyle, " "+label)
	return styledLine{text: text, rendered: true}
}

func (m *Model) footerText() string {
	keys := m.picker.Keys()
	parts := []string{}
	for _, scope := range m.picker.Scopes() {
		for _, b := range keys.HelpBindings(scope) {
			help := b.Help()
			parts = append(parts, paint(styles.FooterKey, help.Key)+paint(styles.Footer, " "+help.Desc))
		}
	}
	return strings.Join(parts, "  ")
}

func paint(style *lipgloss.Style, text string) string {
	if style == nil || text == "" {
		return text
	}
	return style.Render(text)
}

func limitHeight(lines []styledLine, height, width int) []styledLine {
	if height <= 0 || len(lines) <= height {
		return lines
	}
	if height == 1 {
		return []styledLine{{text: truncateText(ellipsis, width)}}
	}
	trimmed := make([]styledLine, 0, height)
	trimmed = append(trimmed, lines[:height-1]...)
	trimmed = append(trimmed, styledLine{text: truncateText(ellipsis, width)})
	return trimmed
}

func applyWidth(lines []styledLine, width int) []styledLine {
	if width <= 0 {
		return lines
	}
	result := make([]styledLine, len(lines))
	for i, line := range lines {
		text := line.text
		if lipgloss.Width(text) > width {
			text = truncate.StringWithTail(text, uint(width-1), ellipsis)
		}
		result[i] = styledLine{text: text, style: line.style, rendered: line.rendered}
	}
	return result
}

func renderLines(lines []styledLine) string {
	out := make([]string, len(lines))
	for i, line := range lines {
		if line.rendered {
			out[i] = line.text
			continue
		}
		out[i] = paint(line.style, line.text)
	}
	return strings.Join(out, "\n")
}

func truncateText(text string, width int) string {
	if width <= 0 {
		return text
	}
	runes := []rune(text)
	if len(runes) <= width {
		return text
	}
	if width == 1 {
		return string(runes[:1])
	}
	return string(runes[:width-1]) + ellipsis
}
