// Package views derives filtered, searched, classified and sorted subsets of
// a pantry collection. Every function is pure: inputs are never modified.
package views

import (
	"slices"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
)

// FilterByCategory keeps items whose category equals category exactly.
// An empty category returns items unchanged.
func FilterByCategory(items []pantry.Item, category pantry.Category) []pantry.Item {
	if category == "" {
		return items
	}
	return filter(items, func(it pantry.Item) bool {
		return it.Category == category
	})
}

// SearchByName keeps items whose name contains query, ignoring case.
// An empty query returns items unchanged.
func SearchByName(items []pantry.Item, query string) []pantry.Item {
	if query == "" {
		return items
	}
	q := strings.ToLower(query)
	return filter(items, func(it pantry.Item) bool {
		return strings.Contains(strings.ToLower(it.Name), q)
	})
}

// SortByExpiration returns a copy ordered by expiration date, soonest first.
// Items with the same date keep their relative order.
func SortByExpiration(items []pantry.Item) []pantry.Item {
	out := slices.Clone(items)
	slices.SortStableFunc(out, func(a, b pantry.Item) int {
		switch {
		case a.ExpirationDate.Before(b.ExpirationDate):
			return -1
		case b.ExpirationDate.Before(a.ExpirationDate):
			return 1
		default:
			return 0
		}
	})
	return out
}

// Query combines the optional predicates the list endpoint accepts.
type Query struct {
	Category pantry.Category
	Search   string
	// Status is applied only when non-nil.
	Status           *Status
	SortByExpiration bool
}

// Apply runs q over items as of asOf.
func Apply(items []pantry.Item, q Query, asOf time.Time) []pantry.Item {
	out := SearchByName(FilterByCategory(items, q.Category), q.Search)
	if q.Status != nil {
		out = FilterByStatus(out, *q.Status, asOf)
	}
	if q.SortByExpiration {
		out = SortByExpiration(out)
	}
	return out
}

func filter(items []pantry.Item, keep func(pantry.Item) bool) []pantry.Item {
	out := make([]pantry.Item, 0, len(items))
	for _, it := range items {
		if keep(it) {
			out = append(out, it)
		}
	}
	return out
}
