// Package picker wires the focus tree, key dispatcher and windowed list into
// a single synchronous state machine.
package picker

import (
	"fmt"
	"strings"

	"github.com/atomicstack/popup-picker/internal/focus"
	"github.com/atomicstack/popup-picker/internal/keymap"
	"github.com/atomicstack/popup-picker/internal/logging/events"
	"github.com/atomicstack/popup-picker/internal/menu"
	"github.com/atomicstack/popup-picker/internal/ui/state"
)

// Input is the text entry collaborator that receives keys the dispatcher
// does not claim while the input node is active.
type Input interface {
	HandleEvent(ev keymap.Event) bool
	Value() string
	CursorPos() int
}

// Matcher narrows the candidate set for a query.
type Matcher interface {
	Match(items []menu.Item, query string) []menu.Item
}

// MatcherFunc adapts a plain function to Matcher.
type MatcherFunc func(items []menu.Item, query string) []menu.Item

func (f MatcherFunc) Match(items []menu.Item, query string) []menu.Item {
	return f(items, query)
}

type Config struct {
	WindowSize int
	Wrap       bool
	// Bindings replaces DefaultBindings when non-empty.
	Bindings []keymap.Binding
}

// Outcome describes what a single event did.
type Outcome struct {
	Action   keymap.Action
	Scope    string
	Consumed bool
	Changed  bool
	// Committed is set when the event ran an item's action.
	Committed *menu.Item
	Quit      bool
	// Reload asks the caller to reload the item source.
	Reload bool
}

// Frame is the render snapshot of the picker.
type Frame struct {
	Window      state.Window
	Cursor      int
	Active      string
	Query       string
	QueryCursor int
	Matched     int
	Total       int
}

type operation func(p *Picker, out *Outcome)

type Picker struct {
	keys    *keymap.Dispatcher
	focus   *focus.Tree
	list    *state.List
	input   Input
	matcher Matcher
	ops     map[string]map[keymap.Action]operation

	// windowSize is the configured size; the list may show fewer rows.
	windowSize int

	candidates []menu.Item
	query      string

	highlighted   menu.Item
	hasHighlight  bool
	listWasActive bool
	onHighlight   []func(menu.Item)
	onCommit      []func(menu.Item)
}

// New builds a picker. A nil input defaults to an empty state.Query and a
// nil matcher to state.FilterItems. Every binding must name an operation
// that exists in its scope.
func New(cfg Config, input Input, matcher Matcher) (*Picker, error) {
	list, err := state.NewList(cfg.WindowSize)
	if err != nil {
		return nil, fmt.Errorf("picker list: %w", err)
	}
	bindings := cfg.Bindings
	if len(bindings) == 0 {
		bindings = DefaultBindings()
	}
	keys, err := keymap.New(bindings...)
	if err != nil {
		return nil, fmt.Errorf("picker keymap: %w", err)
	}

	tree := focus.New(ScopeRoot, focus.WithWrap(cfg.Wrap), focus.OnChange(events.Focus.Move))
	for _, id := range []string{NodeInput, NodeList} {
		if err := tree.Register(id); err != nil {
			return nil, fmt.Errorf("picker focus: %w", err)
		}
	}

	if input == nil {
		input = state.NewQuery("")
	}
	if matcher == nil {
		matcher = MatcherFunc(state.FilterItems)
	}

	p := &Picker{
		keys:    keys,
		focus:   tree,
		list:    list,
		input:   input,
		matcher: matcher,
		ops:     operations(),
		query:   input.Value(),

		windowSize: cfg.WindowSize,
	}
	for _, b := range bindings {
		if _, ok := p.ops[strings.TrimSpace(b.Scope)][b.Action]; !ok {
			return nil, fmt.Errorf("picker keymap: no %q operation in scope %s", b.Action, b.Scope)
		}
	}
	return p, nil
}

func operations() map[string]map[keymap.Action]operation {
	return map[string]map[keymap.Action]operation{
		NodeInput: {
			ActionExit: focusNext,
		},
		NodeList: {
			ActionUp:       listMove((*state.List).PrevItem),
			ActionDown:     listMove((*state.List).NextItem),
			ActionHome:     listMove((*state.List).MoveHome),
			ActionEnd:      listMove((*state.List).MoveEnd),
			ActionPageUp:   listMove((*state.List).PageUp),
			ActionPageDown: listMove((*state.List).PageDown),
			ActionSelect:   commit,
			ActionNext:     focusNext,
		},
		ScopeRoot: {
			ActionPrev:   focusPrevious,
			ActionQuit:   quit,
			ActionReload: reload,
		},
	}
}

func focusNext(p *Picker, out *Outcome) {
	out.Changed = p.focus.Next()
}

func focusPrevious(p *Picker, out *Outcome) {
	out.Changed = p.focus.Previous()
}

func listMove(move func(*state.List) bool) operation {
	return func(p *Picker, out *Outcome) {
		out.Changed = move(p.list)
	}
}

func commit(p *Picker, out *Outcome) {
	item, ok := p.list.CurrentItem()
	if !ok {
		return
	}
	item.Select()
	events.Selection.Commit(item.ID, item.Label, p.query)
	out.Committed = &item
	for _, fn := range p.onCommit {
		fn(item)
	}
}

func quit(_ *Picker, out *Outcome) {
	out.Quit = true
}

func reload(_ *Picker, out *Outcome) {
	out.Reload = true
}

// HandleEvent routes one key event. Keys bound in the active scope or the
// root scope run their operation; anything else goes to the input while it
// is focused.
func (p *Picker) HandleEvent(ev keymap.Event) Outcome {
	scopes := p.focus.Scopes()
	if b, ok := p.keys.Lookup(scopes, ev.Key); ok {
		events.Keymap.Dispatch(b.Scope, ev.Key, string(b.Action))
		out := Outcome{Action: b.Action, Scope: b.Scope, Consumed: true}
		p.ops[b.Scope][b.Action](p, &out)
		p.syncHighlight()
		return out
	}

	events.Keymap.PassThrough(scopes[0], ev.Key)
	if !p.focus.IsActive(NodeInput) {
		return Outcome{Scope: p.focus.Active()}
	}
	consumed := p.input.HandleEvent(ev)
	refiltered := p.refilter()
	p.syncHighlight()
	return Outcome{Scope: NodeInput, Consumed: consumed, Changed: consumed || refiltered}
}

// SetCandidates replaces the full candidate set and re-applies the query.
func (p *Picker) SetCandidates(items []menu.Item) {
	p.candidates = state.CloneItems(items)
	p.applyFilter()
	p.syncHighlight()
}

func (p *Picker) refilter() bool {
	q := p.input.Value()
	if q == p.query {
		return false
	}
	p.query = q
	p.applyFilter()
	return true
}

func (p *Picker) applyFilter() {
	p.list.SetItems(p.matcher.Match(p.candidates, p.query))
}

func (p *Picker) syncHighlight() {
	active := p.focus.IsActive(NodeList)
	entered := active && !p.listWasActive
	p.listWasActive = active
	if !active {
		return
	}
	item, ok := p.list.CurrentItem()
	if !ok {
		return
	}
	if !entered && p.hasHighlight && item.ID == p.highlighted.ID {
		return
	}
	p.highlighted = item
	p.hasHighlight = true
	events.Selection.Highlight(item.ID, item.Label)
	for _, fn := range p.onHighlight {
		fn(item)
	}
}

// FitRows caps the visible window at rows, never above the configured
// window size. rows <= 0 restores the configured size.
func (p *Picker) FitRows(rows int) {
	size := p.windowSize
	if rows > 0 && rows < size {
		size = rows
	}
	_ = p.list.SetWindowSize(size)
}

// OnHighlight registers a listener for cursor item changes on the focused list.
func (p *Picker) OnHighlight(fn func(menu.Item)) {
	if fn != nil {
		p.onHighlight = append(p.onHighlight, fn)
	}
}

// OnCommit registers a listener that runs after an item's action.
func (p *Picker) OnCommit(fn func(menu.Item)) {
	if fn != nil {
		p.onCommit = append(p.onCommit, fn)
	}
}

// Highlighted returns the most recently highlighted item.
func (p *Picker) Highlighted() (menu.Item, bool) {
	return p.highlighted, p.hasHighlight
}

// Frame returns the current render snapshot.
func (p *Picker) Frame() Frame {
	return Frame{
		Window:      p.list.VisibleWindow(),
		Cursor:      p.list.Cursor(),
		Active:      p.focus.Active(),
		Query:       p.input.Value(),
		QueryCursor: p.input.CursorPos(),
		Matched:     p.list.Len(),
		Total:       len(p.candidates),
	}
}

// FocusState classifies the row at index.
func (p *Picker) FocusState(index int) state.FocusState {
	return state.Classify(index >= 0 && index == p.list.Cursor(), p.focus.IsActive(NodeList))
}

// Active returns the focused node id.
func (p *Picker) Active() string {
	return p.focus.Active()
}

// Scopes returns the dispatch scopes for the current focus.
func (p *Picker) Scopes() []string {
	return p.focus.Scopes()
}

// Keys exposes the dispatcher for help rendering.
func (p *Picker) Keys() *keymap.Dispatcher {
	return p.keys
}
