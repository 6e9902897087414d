package catalog

import (
	"container/list"
	"sync"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

// Cache sizing. Each facet gets room for a handful of recent search terms;
// small catalogs still keep a floor of entries.
const (
	searchesPerFacet = 8
	minCacheEntries  = 32
)

// resultCacheCapacity sizes a snapshot's result cache from its facet count.
func resultCacheCapacity(facets int) int {
	return max(facets*searchesPerFacet, minCacheEntries)
}

// resultCache is a small thread-safe LRU of query results for one catalog.
// Parks go in and come out as deep copies.
type resultCache struct {
	mu       sync.Mutex
	capacity int
	order    *list.List // front is most recently used
	entries  map[Query]*list.Element
}

type cachedResult struct {
	query Query
	parks []domain.Park
}

func newResultCache(capacity int) *resultCache {
	return &resultCache{
		capacity: max(capacity, 1),
		order:    list.New(),
		entries:  make(map[Query]*list.Element),
	}
}

func (c *resultCache) get(q Query) ([]domain.Park, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.entries[q]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return cloneParks(el.Value.(*cachedResult).parks), true
}

func (c *resultCache) put(q Query, parks []domain.Park) {
	parks = cloneParks(parks)

	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.entries[q]; ok {
		el.Value.(*cachedResult).parks = parks
		c.order.MoveToFront(el)
		return
	}

	c.entries[q] = c.order.PushFront(&cachedResult{query: q, parks: parks})
	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		delete(c.entries, oldest.Value.(*cachedResult).query)
		c.order.Remove(oldest)
	}
}

func (c *resultCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
