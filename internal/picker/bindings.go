package picker

import "github.com/atomicstack/popup-picker/internal/keymap"

// Focus node and scope names.
const (
	ScopeRoot = "picker"
	NodeInput = "input"
	NodeList  = "list"
)

const (
	ActionExit     keymap.Action = "exit"
	ActionUp       keymap.Action = "up"
	ActionDown     keymap.Action = "down"
	ActionHome     keymap.Action = "home"
	ActionEnd      keymap.Action = "end"
	ActionPageUp   keymap.Action = "pageup"
	ActionPageDown keymap.Action = "pagedown"
	ActionSelect   keymap.Action = "select"
	ActionNext     keymap.Action = "next"
	ActionPrev     keymap.Action = "prev"
	ActionQuit     keymap.Action = "quit"
	ActionReload   keymap.Action = "reload"
)

// DefaultBindings returns the stock key bindings.
func DefaultBindings() []keymap.Binding {
	return []keymap.Binding{
		{Scope: NodeInput, Action: ActionExit, Triggers: []string{"down", "tab"}, Help: "to list"},

		{Scope: NodeList, Action: ActionUp, Triggers: []string{"up", "k"}, Help: "up"},
		{Scope: NodeList, Action: ActionDown, Triggers: []string{"down", "j"}, Help: "down"},
		{Scope: NodeList, Action: ActionSelect, Triggers: []string{"enter"}, Help: "select"},
		{Scope: NodeList, Action: ActionNext, Triggers: []string{"tab"}, Help: "next"},
		{Scope: NodeList, Action: ActionHome, Triggers: []string{"home", "g"}, Help: "top"},
		{Scope: NodeList, Action: ActionEnd, Triggers: []string{"end", "G"}, Help: "bottom"},
		{Scope: NodeList, Action: ActionPageUp, Triggers: []string{"pgup", "ctrl+b"}, Help: "page up"},
		{Scope: NodeList, Action: ActionPageDown, Triggers: []string{"pgdown", "ctrl+f"}, Help: "page down"},

		{Scope: ScopeRoot, Action: ActionPrev, Triggers: []string{"shift+tab"}, Help: "back"},
		{Scope: ScopeRoot, Action: ActionQuit, Triggers: []string{"esc", "ctrl+c"}, Help: "quit"},
		{Scope: ScopeRoot, Action: ActionReload, Triggers: []string{"ctrl+r"}, Help: "reload"},
	}
}
