package keymap

import "strings"

var keyAliases = map[string]string{
	"return": "enter",
	"escape": "esc",
	"spc":    "space",
	"bs":     "backspace",
	"del":    "delete",
}

// NormalizeKey canonicalises a trigger name. Literal characters keep their
// case; named keys are lower-cased and aliased.
func NormalizeKey(k string) string {
	if k == " " {
		return "space"
	}
	trimmed := strings.TrimSpace(k)
	if trimmed == "" {
		return ""
	}
	if len([]rune(trimmed)) == 1 {
		return trimmed
	}
	lower := strings.ToLower(trimmed)
	if alias, ok := keyAliases[lower]; ok {
		return alias
	}
	return lower
}

func normalizeKeyList(keys []string) []string {
	out := make([]string, 0, len(keys))
	seen := make(map[string]bool)
	for _, k := range keys {
		n := NormalizeKey(k)
		if n == "" || seen[n] {
			continue
		}
		seen[n] = true
		out = append(out, n)
	}
	return out
}

// Merge returns base with every (scope, action) pair named in overrides
// replaced by the override. Overrides for pairs absent from base are
// appended.
func Merge(base, overrides []Binding) []Binding {
	type pair struct {
		scope  string
		action Action
	}
	replaced := make(map[pair]Binding, len(overrides))
	order := make([]pair, 0, len(overrides))
	for _, o := range overrides {
		p := pair{strings.TrimSpace(o.Scope), o.Action}
		if _, seen := replaced[p]; !seen {
			order = append(order, p)
		}
		replaced[p] = o
	}

	out := make([]Binding, 0, len(base)+len(overrides))
	used := make(map[pair]bool, len(overrides))
	for _, b := range base {
		p := pair{strings.TrimSpace(b.Scope), b.Action}
		o, ok := replaced[p]
		if !ok {
			out = append(out, b)
			continue
		}
		if used[p] {
			continue
		}
		used[p] = true
		if strings.TrimSpace(o.Help) == "" {
			o.Help = b.Help
		}
		out = append(out, o)
	}
	for _, p := range order {
		if !used[p] {
			out = append(out, replaced[p])
		}
	}
	return out
}
