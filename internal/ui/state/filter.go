package state

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/atomicstack/popup-picker/internal/logging/events"
	"github.com/atomicstack/popup-picker/internal/menu"
)

// FilterItems returns the items matching query, in their original order.
// Labels are fuzzy matched case-insensitively; when nothing fuzzy matches,
// a substring match on label or id is tried instead.
func FilterItems(items []menu.Item, query string) []menu.Item {
	filtered := filterItems(items, query)
	if strings.TrimSpace(query) != "" {
		events.Filter.Matches(query, len(filtered), len(items))
	}
	return filtered
}

func filterItems(items []menu.Item, query string) []menu.Item {
	trimmed := strings.TrimSpace(query)
	if trimmed == "" {
		return CloneItems(items)
	}
	labels := make([]string, len(items))
	for i, item := range items {
		labels[i] = item.Label
	}
	ranks := fuzzy.RankFindNormalizedFold(trimmed, labels)
	if len(ranks) > 0 {
		matches := make(map[int]struct{}, len(ranks))
		for _, rank := range ranks {
			matches[rank.OriginalIndex] = struct{}{}
		}
		filtered := make([]menu.Item, 0, len(matches))
		for idx, item := range items {
			if _, ok := matches[idx]; ok {
				filtered = append(filtered, item)
			}
		}
		return filtered
	}
	lower := strings.ToLower(trimmed)
	filtered := make([]menu.Item, 0, len(items))
	for _, item := range items {
		if strings.Contains(strings.ToLower(item.Label), lower) || strings.Contains(strings.ToLower(item.ID), lower) {
			filtered = append(filtered, item)
		}
	}
	return filtered
}
