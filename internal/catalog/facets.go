package catalog

import (
	"slices"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

// Facet values with special meaning. Any other facet value is a park type.
const (
	FacetAll   = "all"
	FacetMajor = "major-sites"

	labelAll   = "All Parks"
	labelMajor = "Major Sites"
)

// FilterOption is one selectable facet and the number of parks it matches.
type FilterOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// BuildFacets scans the collection once and returns the "all" facet, the
// major-sites facet, then one facet per distinct type ordered by descending
// count. Types with equal counts keep their first-seen order.
func BuildFacets(parks []domain.Park) []FilterOption {
	major := 0
	counts := make(map[string]int)
	var order []string

	for _, p := range parks {
		if p.IsMajor() {
			major++
		}
		if _, seen := counts[p.Type]; !seen {
			order = append(order, p.Type)
		}
		counts[p.Type]++
	}

	byType := make([]FilterOption, len(order))
	for i, t := range order {
		byType[i] = FilterOption{Value: t, Label: t, Count: counts[t]}
	}
	slices.SortStableFunc(byType, func(a, b FilterOption) int {
		return b.Count - a.Count
	})

	facets := make([]FilterOption, 0, len(byType)+2)
	facets = append(facets,
		FilterOption{Value: FacetAll, Label: labelAll, Count: len(parks)},
		FilterOption{Value: FacetMajor, Label: labelMajor, Count: major},
	)
	return append(facets, byType...)
}
