package workflow

import "strings"

// Searchable is implemented by list items that support the shared text/status
// narrowing used by every list endpoint.
type Searchable interface {
	// SearchFields returns the fields matched by free-text search.
	SearchFields() []string
	// StatusValue returns the item's current status.
	StatusValue() string
}

// Filter narrows items by case-insensitive substring match of query against
// any search field, AND exact status match. Empty query or status skips that
// clause. Always returns a non-nil slice so a zero-match result renders as an
// empty state, not a null.
func Filter[T Searchable](items []T, query, status string) []T {
	out := make([]T, 0, len(items))
	q := strings.ToLower(strings.TrimSpace(query))
	for _, item := range items {
		if status != "" && item.StatusValue() != status {
			continue
		}
		if q != "" && !matchesQuery(item, q) {
			continue
		}
		out = append(out, item)
	}
	return out
}

func matchesQuery(item Searchable, q string) bool {
	for _, f := range item.SearchFields() {
		if strings.Contains(strings.ToLower(f), q) {
			return true
		}
	}
	return false
}
