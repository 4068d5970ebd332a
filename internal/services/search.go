package services

import (
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
	"golang.org/x/text/search"

	"github.com/everlog-app/everlog-backend/internal/models"
)

// SortMode is one of the four dashboard orderings.
type SortMode string

const (
	SortDateDesc  SortMode = "date_desc"
	SortDateAsc   SortMode = "date_asc"
	SortTitleAsc  SortMode = "title_asc"
	SortTitleDesc SortMode = "title_desc"
)

// ParseSortMode maps a query value to a sort mode, defaulting to newest
// first.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortDateAsc, SortTitleAsc, SortTitleDesc:
		return SortMode(s)
	default:
		return SortDateDesc
	}
}

// FilterEntries returns the entries matching the query in at least one of
// title, location or content. Matching is a case-insensitive substring
// test; an empty query matches everything. The collection is rescanned on
// every call — results are never cached.
func FilterEntries(entries []models.Journal, query string) []models.Journal {
	if query == "" {
		return entries
	}
	matcher := search.New(language.Und, search.IgnoreCase)
	matched := make([]models.Journal, 0, len(entries))
	for _, e := range entries {
		if containsFold(matcher, e.Title, query) ||
			containsFold(matcher, e.Location, query) ||
			containsFold(matcher, e.Content, query) {
			matched = append(matched, e)
		}
	}
	return matched
}

func containsFold(m *search.Matcher, text, pattern string) bool {
	if text == "" {
		return false
	}
	start, _ := m.IndexString(text, pattern)
	return start >= 0
}

// SortEntries orders entries in place. Title orderings use a
// case-insensitive locale-aware collation with missing titles sorting as
// the empty string; date orderings compare creation time. The sort is
// stable, so equal keys keep their stored order.
func SortEntries(entries []models.Journal, mode SortMode) {
	switch mode {
	case SortDateAsc:
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.Before(entries[j].CreatedAt)
		})
	case SortTitleAsc:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(entries, func(i, j int) bool {
			return c.CompareString(entries[i].Title, entries[j].Title) < 0
		})
	case SortTitleDesc:
		c := collate.New(language.Und, collate.IgnoreCase)
		sort.SliceStable(entries, func(i, j int) bool {
			return c.CompareString(entries[i].Title, entries[j].Title) > 0
		})
	default: // SortDateDesc
		sort.SliceStable(entries, func(i, j int) bool {
			return entries[i].CreatedAt.After(entries[j].CreatedAt)
		})
	}
}
