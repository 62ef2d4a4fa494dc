package theme

import "github.com/charmbracelet/lipgloss"

// Styles describes reusable Lip Gloss styles shared across the UI.
type Styles struct {
	Item          *lipgloss.Style
	ItemIndicator *lipgloss.Style
	Icon          *lipgloss.Style
	// DeepFocus is the cursor row while the list has focus.
	DeepFocus          *lipgloss.Style
	DeepFocusIndicator *lipgloss.Style
	// ShallowFocus is the cursor row while the input has focus.
	ShallowFocus          *lipgloss.Style
	ShallowFocusIndicator *lipgloss.Style
	Error                 *lipgloss.Style
	Info                  *lipgloss.Style
	Header                *lipgloss.Style
	Counter               *lipgloss.Style
	Footer                *lipgloss.Style
	FooterKey             *lipgloss.Style
	Filter                *lipgloss.Style
	FilterPrompt          *lipgloss.Style
	FilterPromptIdle      *lipgloss.Style
	FilterPlaceholder     *lipgloss.Style
	Cursor                *lipgloss.Style
}

var defaultStyles = Styles{
	Item: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	ItemIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
	),
	Icon: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	),
	DeepFocus: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("255")).Background(lipgloss.Color("25")).Bold(true),
	),
	DeepFocusIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Background(lipgloss.Color("25")),
	),
	ShallowFocus: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	ShallowFocusIndicator: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	),
	Error: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true),
	),
	Info: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	Header: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true),
	),
	Counter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Footer: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	FooterKey: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")).Bold(true),
	),
	Filter: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("249")),
	),
	FilterPrompt: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("34")).Bold(true),
	),
	FilterPromptIdle: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	FilterPlaceholder: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	),
	Cursor: ptr(
		lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("33")).Blink(true),
	),
}

// Default exposes the standard style set used across the application.
func Default() *Styles {
	return &defaultStyles
}

func ptr(style lipgloss.Style) *lipgloss.Style {
	return &style
}
