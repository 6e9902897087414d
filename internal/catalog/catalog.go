// Package catalog serves queries over one immutable, fully derived park
// collection: facets, filtering, pagination, statistics, and CSV export.
package catalog

import (
	"io"
	"slices"
	"time"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

// Status describes where a catalog's parks came from.
type Status string

const (
	StatusLoading  Status = "loading"  // nothing loaded yet
	StatusLive     Status = "live"     // built from a retrieved payload
	StatusFallback Status = "fallback" // built from the built-in sample set
)

// Meta describes the load that produced a catalog.
type Meta struct {
	Version  uint64                 `json:"version"`
	Status   Status                 `json:"status"`
	Origin   string                 `json:"origin,omitempty"`
	Checksum string                 `json:"checksum,omitempty"`
	LoadedAt time.Time              `json:"loaded_at"`
	Report   domain.NormalizeReport `json:"report"`
}

// Catalog is a read-only snapshot of canonical parks with the facets and
// statistics computed from them. It is safe for concurrent use.
type Catalog struct {
	meta   Meta
	parks  []domain.Park
	facets []FilterOption
	stats  Stats
	byID   map[int]int
	cache  *resultCache
}

// Provider hands out the current catalog.
type Provider interface {
	Current() *Catalog
}

// New builds a catalog from derived parks. The parks are deep-copied, so
// later changes by the caller are not visible.
func New(parks []domain.Park, meta Meta) *Catalog {
	parks = cloneParks(parks)
	facets := BuildFacets(parks)
	byID := make(map[int]int, len(parks))
	for i, p := range parks {
		if _, dup := byID[p.ObjectID]; !dup {
			byID[p.ObjectID] = i
		}
	}
	return &Catalog{
		meta:   meta,
		parks:  parks,
		facets: facets,
		stats:  Aggregate(parks),
		byID:   byID,
		cache:  newResultCache(resultCacheCapacity(len(facets))),
	}
}

// Empty returns the placeholder catalog served before the first load.
func Empty() *Catalog {
	return New(nil, Meta{Status: StatusLoading})
}

func (c *Catalog) Meta() Meta      { return c.meta }
func (c *Catalog) Version() uint64 { return c.meta.Version }
func (c *Catalog) Status() Status  { return c.meta.Status }
func (c *Catalog) Len() int        { return len(c.parks) }
func (c *Catalog) Stats() Stats    { return c.stats }

// Current returns c itself, so a Session can be pinned to one snapshot.
func (c *Catalog) Current() *Catalog { return c }

// Parks returns a deep copy of the whole collection in canonical order.
func (c *Catalog) Parks() []domain.Park { return cloneParks(c.parks) }

// Facets returns a copy of the facet list.
func (c *Catalog) Facets() []FilterOption { return slices.Clone(c.facets) }

// Park looks up a park by object ID. With duplicate IDs the first wins.
func (c *Catalog) Park(id int) (domain.Park, bool) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Park{}, false
	}
	return c.parks[i].Clone(), true
}

// Search filters the collection, remembering recent results. Every call
// returns fresh parks the caller may modify.
func (c *Catalog) Search(q Query) []domain.Park {
	q = q.Normalize()
	if res, ok := c.cache.get(q); ok {
		return res
	}
	res := Filter(c.parks, q)
	c.cache.put(q, res)
	return res
}

// cloneParks deep-copies parks. Nothing handed out by a Catalog may share
// memory with its canonical collection.
func cloneParks(parks []domain.Park) []domain.Park {
	if parks == nil {
		return nil
	}
	out := make([]domain.Park, len(parks))
	for i, p := range parks {
		out[i] = p.Clone()
	}
	return out
}

// Export writes the parks matching q as CSV.
func (c *Catalog) Export(w io.Writer, q Query) error {
	return WriteCSV(w, c.Search(q))
}
