package config

import (
	"fmt"
	"sort"

	"github.com/BurntSushi/toml"

	"github.com/atomicstack/popup-picker/internal/keymap"
)

// LoadKeymap reads a TOML key binding file. Each table names a scope and
// each key an action whose value lists its triggers:
//
//	[list]
//	down = ["down", "j", "ctrl+n"]
func LoadKeymap(path string) ([]keymap.Binding, error) {
	var raw map[string]map[string][]string
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		return nil, fmt.Errorf("load keymap %s: %w", path, err)
	}

	scopes := make([]string, 0, len(raw))
	for scope := range raw {
		scopes = append(scopes, scope)
	}
	sort.Strings(scopes)

	var bindings []keymap.Binding
	for _, scope := range scopes {
		actions := raw[scope]
		names := make([]string, 0, len(actions))
		for action := range actions {
			names = append(names, action)
		}
		sort.Strings(names)
		for _, action := range names {
			triggers := actions[action]
			if len(triggers) == 0 {
				return nil, fmt.Errorf("load keymap %s: %s.%s has no triggers", path, scope, action)
			}
			bindings = append(bindings, keymap.Binding{
				Scope:    scope,
				Action:   keymap.Action(action),
				Triggers: triggers,
			})
		}
	}
	return bindings, nil
}
