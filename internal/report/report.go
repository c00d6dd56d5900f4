// Package report reduces a pantry collection into the counts shown on the
// dashboard. All functions are pure and deterministic for a given asOf.
package report

import (
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/pantry"
	"github.com/dmitrijs2005/pantrykeeper/internal/timex"
	"github.com/dmitrijs2005/pantrykeeper/internal/views"
)

// Overall holds collection-wide totals. TotalCategories counts only the
// categories that occur in the collection.
type Overall struct {
	TotalItems      int `json:"totalItems"`
	ExpiredItems    int `json:"expiredItems"`
	TotalCategories int `json:"totalCategories"`
}

// CategorySummary holds the totals of one category.
type CategorySummary struct {
	TotalItems   int `json:"totalItems"`
	ExpiredItems int `json:"expiredItems"`
}

// CategoryRow is a CategorySummary labelled with its category.
type CategoryRow struct {
	Category pantry.Category `json:"category"`
	CategorySummary
}

// Report bundles both summaries for one reference date.
type Report struct {
	AsOf       timex.Date    `json:"asOf"`
	Overall    Overall       `json:"overall"`
	Categories []CategoryRow `json:"categories"`
}

// SummarizeOverall counts items, expired items and distinct categories.
func SummarizeOverall(items []pantry.Item, asOf time.Time) Overall {
	seen := make(map[pantry.Category]struct{})
	var o Overall
	for _, it := range items {
		o.TotalItems++
		if views.ClassifyExpiration(it, asOf) == views.Expired {
			o.ExpiredItems++
		}
		seen[it.Category] = struct{}{}
	}
	o.TotalCategories = len(seen)
	return o
}

// SummarizeByCategory groups the counts by category. Categories without
// items are absent from the result rather than present with zero counts.
func SummarizeByCategory(items []pantry.Item, asOf time.Time) map[pantry.Category]CategorySummary {
	out := make(map[pantry.Category]CategorySummary)
	for _, it := range items {
		s := out[it.Category]
		s.TotalItems++
		if views.ClassifyExpiration(it, asOf) == views.Expired {
			s.ExpiredItems++
		}
		out[it.Category] = s
	}
	return out
}

// Rows orders a per-category summary by pantry.Categories. Keys outside
// the known set, which only legacy rows could carry, follow at the end in
// first-seen order of items.
func Rows(byCategory map[pantry.Category]CategorySummary, items []pantry.Item) []CategoryRow {
	rows := make([]CategoryRow, 0, len(byCategory))
	done := make(map[pantry.Category]bool, len(byCategory))
	for _, c := range pantry.Categories {
		if s, ok := byCategory[c]; ok {
			rows = append(rows, CategoryRow{Category: c, CategorySummary: s})
			done[c] = true
		}
	}
	for _, it := range items {
		if done[it.Category] {
			continue
		}
		if s, ok := byCategory[it.Category]; ok {
			rows = append(rows, CategoryRow{Category: it.Category, CategorySummary: s})
			done[it.Category] = true
		}
	}
	return rows
}

// Build computes the full report for items as of asOf.
func Build(items []pantry.Item, asOf time.Time) Report {
	return Report{
		AsOf:       timex.DateOf(asOf),
		Overall:    SummarizeOverall(items, asOf),
		Categories: Rows(SummarizeByCategory(items, asOf), items),
	}
}
