package menu

import (
	"fmt"
	"strings"
)

// Registry exposes lookup utilities for item sources.
type Registry struct {
	sources map[string]Source
	order   []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{sources: make(map[string]Source)}
}

// BuildRegistry constructs the registry of built-in sources.
func BuildRegistry() *Registry {
	r := NewRegistry()
	for _, src := range builtinSources() {
		if err := r.Register(src); err != nil {
			panic(err)
		}
	}
	return r
}

func builtinSources() []Source {
	return []Source{
		{Name: "demo", Description: "twenty placeholder items", Load: loadDemoItems},
		{Name: "lines", Description: "one item per input line", Load: loadLineItems},
		{Name: "tmux", Description: "tmux sessions", Load: loadSessionItems, Refreshable: true},
	}
}

// Register adds a source. Names must be unique and non-empty.
func (r *Registry) Register(src Source) error {
	name := strings.TrimSpace(src.Name)
	if name == "" {
		return fmt.Errorf("source name is required")
	}
	if src.Load == nil {
		return fmt.Errorf("source %s has no loader", name)
	}
	if _, exists := r.sources[name]; exists {
		return fmt.Errorf("source %s already registered", name)
	}
	src.Name = name
	r.sources[name] = src
	r.order = append(r.order, name)
	return nil
}

// Find returns the source registered under name.
func (r *Registry) Find(name string) (Source, bool) {
	if r == nil {
		return Source{}, false
	}
	src, ok := r.sources[strings.TrimSpace(name)]
	return src, ok
}

// Names lists registered sources in registration order.
func (r *Registry) Names() []string {
	if r == nil {
		return nil
	}
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// SourceNames lists the built-in source names.
func SourceNames() []string {
	sources := builtinSources()
	names := make([]string, 0, len(sources))
	for _, src := range sources {
		names = append(names, src.Name)
	}
	return names
}
