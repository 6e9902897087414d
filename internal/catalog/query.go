package catalog

import (
	"strings"

	"github.com/couchcryptid/parks-data-service/internal/domain"
	"golang.org/x/text/cases"
)

// Query selects parks by free-text search term and facet.
type Query struct {
	Search string `json:"search"`
	Facet  string `json:"facet"`
}

// Normalize trims the search term and maps an empty facet to FacetAll.
func (q Query) Normalize() Query {
	q.Search = strings.TrimSpace(q.Search)
	if q.Facet == "" {
		q.Facet = FacetAll
	}
	return q
}

// Filter returns the parks matching q in their original order. The search
// term matches case-insensitively as a substring of the site name, location,
// type, or any facility. The facet restricts to major sites or to one exact
// type. Both conditions must hold. The input is never modified and the result
// is always a new slice of copied parks.
func Filter(parks []domain.Park, q Query) []domain.Park {
	q = q.Normalize()
	// Casers carry state, so each call folds with its own.
	fold := cases.Fold()
	term := fold.String(q.Search)

	out := make([]domain.Park, 0, len(parks))
	for _, p := range parks {
		if term != "" && !matchesTerm(fold, p, term) {
			continue
		}
		if !matchesFacet(p, q.Facet) {
			continue
		}
		out = append(out, p.Clone())
	}
	return out
}

func matchesTerm(fold cases.Caser, p domain.Park, term string) bool {
	if strings.Contains(fold.String(p.SiteName), term) ||
		strings.Contains(fold.String(p.Location), term) ||
		strings.Contains(fold.String(p.Type), term) {
		return true
	}
	for _, f := range p.Facilities {
		if strings.Contains(fold.String(f), term) {
			return true
		}
	}
	return false
}

func matchesFacet(p domain.Park, facet string) bool {
	switch facet {
	case FacetAll:
		return true
	case FacetMajor:
		return p.IsMajor()
	default:
		return p.Type == facet
	}
}
