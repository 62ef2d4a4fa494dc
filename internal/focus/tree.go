// Package focus tracks which of a set of sibling nodes receives input.
package focus

import (
	"fmt"
	"strings"
)

// Node is a focusable position. Ordinal is fixed by registration order.
type Node struct {
	ID      string
	Ordinal int
}

// Tree holds ordered sibling nodes under a root scope. Once a node has been
// registered exactly one node is active.
type Tree struct {
	root     string
	nodes    []Node
	byID     map[string]int
	current  int
	wrap     bool
	onChange func(from, to string)
}

type Option func(*Tree)

// WithWrap makes Next and Previous cycle past the ends instead of clamping.
func WithWrap(wrap bool) Option {
	return func(t *Tree) { t.wrap = wrap }
}

// OnChange sets a callback fired after the active node changes.
func OnChange(fn func(from, to string)) Option {
	return func(t *Tree) { t.onChange = fn }
}

func New(root string, opts ...Option) *Tree {
	t := &Tree{root: root, byID: make(map[string]int), current: -1}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Register appends a node. The first registered node becomes active.
func (t *Tree) Register(id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return fmt.Errorf("focus node id is required")
	}
	if id == t.root {
		return fmt.Errorf("focus node %s collides with the root scope", id)
	}
	if _, exists := t.byID[id]; exists {
		return fmt.Errorf("focus node %s already registered", id)
	}
	t.byID[id] = len(t.nodes)
	t.nodes = append(t.nodes, Node{ID: id, Ordinal: len(t.nodes)})
	if t.current < 0 {
		t.current = 0
	}
	return nil
}

// Next activates the following sibling. It reports whether the active node
// changed; at the last node without wrap it is a no-op.
func (t *Tree) Next() bool {
	return t.move(1)
}

// Previous activates the preceding sibling.
func (t *Tree) Previous() bool {
	return t.move(-1)
}

// Enter activates the named node.
func (t *Tree) Enter(id string) bool {
	idx, ok := t.byID[id]
	if !ok {
		return false
	}
	return t.activate(idx)
}

func (t *Tree) move(delta int) bool {
	n := len(t.nodes)
	if n <= 1 {
		return false
	}
	next := t.current + delta
	if t.wrap {
		next = (next + n) % n
	} else if next < 0 {
		next = 0
	} else if next >= n {
		next = n - 1
	}
	return t.activate(next)
}

func (t *Tree) activate(idx int) bool {
	if idx == t.current {
		return false
	}
	from := t.Active()
	t.current = idx
	if t.onChange != nil {
		t.onChange(from, t.nodes[idx].ID)
	}
	return true
}

// Active returns the id of the active node, or "" before any registration.
func (t *Tree) Active() string {
	if t.current < 0 || t.current >= len(t.nodes) {
		return ""
	}
	return t.nodes[t.current].ID
}

func (t *Tree) IsActive(id string) bool {
	return id != "" && t.Active() == id
}

func (t *Tree) Len() int {
	return len(t.nodes)
}

// Nodes returns the registered nodes in ordinal order.
func (t *Tree) Nodes() []Node {
	out := make([]Node, len(t.nodes))
	copy(out, t.nodes)
	return out
}

// Scopes returns the dispatch scopes for the current focus, innermost first.
func (t *Tree) Scopes() []string {
	active := t.Active()
	if active == "" {
		return []string{t.root}
	}
	return []string{active, t.root}
}
