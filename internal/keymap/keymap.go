// Package keymap resolves key triggers to semantic actions per focus scope.
package keymap

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// Action names a semantic operation such as "select" or "next".
type Action string

// Binding maps triggers to an action within one scope.
type Binding struct {
	Action   Action
	Triggers []string
	Help     string
	Scope    string
}

// Event is a raw key press as seen by the dispatcher.
type Event struct {
	Key   string
	Runes []rune
}

// IsText reports whether the event carries literal input characters.
func (e Event) IsText() bool {
	return len(e.Runes) > 0
}

// Dispatcher holds registrations keyed by scope and trigger. Lookups never
// mutate it.
type Dispatcher struct {
	bindingsByScope map[string][]*Binding
	indexByScope    map[string]map[string]*Binding
}

// New builds a dispatcher from bindings, failing on the first invalid one.
func New(bindings ...Binding) (*Dispatcher, error) {
	d := &Dispatcher{
		bindingsByScope: make(map[string][]*Binding),
		indexByScope:    make(map[string]map[string]*Binding),
	}
	for _, b := range bindings {
		if err := d.Register(b); err != nil {
			return nil, err
		}
	}
	return d, nil
}

// Register adds a binding. A trigger already bound to a different action in
// the same scope is an error; rebinding it to the same action is ignored.
func (d *Dispatcher) Register(b Binding) error {
	scope := strings.TrimSpace(b.Scope)
	if scope == "" {
		return fmt.Errorf("binding %q: scope is required", b.Action)
	}
	if strings.TrimSpace(string(b.Action)) == "" {
		return fmt.Errorf("binding in scope %s: action is required", scope)
	}
	triggers := normalizeKeyList(b.Triggers)
	if len(triggers) == 0 {
		return fmt.Errorf("binding %s/%s: at least one trigger is required", scope, b.Action)
	}

	index, ok := d.indexByScope[scope]
	if !ok {
		index = make(map[string]*Binding)
		d.indexByScope[scope] = index
	}
	for _, k := range triggers {
		if existing, exists := index[k]; exists && existing.Action != b.Action {
			return fmt.Errorf("binding %s/%s: trigger %q already bound to %s", scope, b.Action, k, existing.Action)
		}
	}

	copyBinding := b
	copyBinding.Scope = scope
	copyBinding.Triggers = triggers
	if strings.TrimSpace(copyBinding.Help) == "" {
		copyBinding.Help = string(b.Action)
	}
	d.bindingsByScope[scope] = append(d.bindingsByScope[scope], &copyBinding)
	for _, k := range triggers {
		if _, exists := index[k]; !exists {
			index[k] = &copyBinding
		}
	}
	return nil
}

// Lookup returns the binding for keyName in the first scope that has one.
// Scopes are ordered innermost first.
func (d *Dispatcher) Lookup(scopes []string, keyName string) (Binding, bool) {
	if d == nil {
		return Binding{}, false
	}
	keyName = NormalizeKey(keyName)
	if keyName == "" {
		return Binding{}, false
	}
	for _, scope := range scopes {
		if b := d.lookupInScope(keyName, scope); b != nil {
			return *b, true
		}
	}
	return Binding{}, false
}

// Dispatch resolves ev to an action. Unregistered keys report false and
// should be passed through to the focused component.
func (d *Dispatcher) Dispatch(scopes []string, ev Event) (Action, bool) {
	b, ok := d.Lookup(scopes, ev.Key)
	if !ok {
		return "", false
	}
	return b.Action, true
}

// Bindings lists the registrations of scope in registration order.
func (d *Dispatcher) Bindings(scope string) []Binding {
	if d == nil {
		return nil
	}
	items := d.bindingsByScope[scope]
	out := make([]Binding, 0, len(items))
	for _, b := range items {
		out = append(out, *b)
	}
	return out
}

// HelpBindings renders the scope's registrations as bubbles key bindings.
func (d *Dispatcher) HelpBindings(scope string) []key.Binding {
	items := d.Bindings(scope)
	out := make([]key.Binding, 0, len(items))
	for _, b := range items {
		out = append(out, key.NewBinding(key.WithKeys(b.Triggers...), key.WithHelp(b.Triggers[0], b.Help)))
	}
	return out
}

func (d *Dispatcher) lookupInScope(keyName, scope string) *Binding {
	if scope == "" {
		return nil
	}
	lookup, ok := d.indexByScope[scope]
	if !ok {
		return nil
	}
	return lookup[keyName]
}
