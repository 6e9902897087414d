package catalog

import (
	"sync"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

// View is what a consumer renders: the visible slice of the current results.
type View struct {
	Items   []domain.Park `json:"items"`
	Total   int           `json:"total"`
	Visible int           `json:"visible"`
	HasMore bool          `json:"has_more"`
	Version uint64        `json:"version"`
	Status  Status        `json:"status"`
	Search  string        `json:"search"`
	Facet   string        `json:"facet"`
}

// Session holds one consumer's query state over whatever catalog the
// provider currently serves. Changing the search term or facet, or a new
// catalog appearing, recomputes the results and resets the cursor to the
// first page. Only More advances the cursor.
type Session struct {
	mu       sync.Mutex
	provider Provider
	pageSize int
	query    Query
	stale    bool

	catalog *Catalog
	results []domain.Park
	cursor  *Cursor
}

// NewSession starts a session with no search term and the "all" facet.
func NewSession(provider Provider, pageSize int) *Session {
	if pageSize <= 0 {
		pageSize = PageSize
	}
	return &Session{
		provider: provider,
		pageSize: pageSize,
		query:    Query{Facet: FacetAll},
		stale:    true,
	}
}

// SetSearch changes the search term.
func (s *Session) SetSearch(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if term == s.query.Search {
		return
	}
	s.query.Search = term
	s.stale = true
}

// SetFacet changes the selected facet. An empty value selects FacetAll.
func (s *Session) SetFacet(facet string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if facet == "" {
		facet = FacetAll
	}
	if facet == s.query.Facet {
		return
	}
	s.query.Facet = facet
	s.stale = true
}

// More reveals the next page and returns the new view.
func (s *Session) More() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	s.cursor.More()
	return s.view()
}

// View returns the current visible slice.
func (s *Session) View() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refresh()
	return s.view()
}

// Query returns the session's current query.
func (s *Session) Query() Query {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

func (s *Session) refresh() {
	current := s.provider.Current()
	if !s.stale && current == s.catalog {
		return
	}
	s.catalog = current
	s.results = current.Search(s.query)
	s.cursor = NewCursor(len(s.results), s.pageSize)
	s.stale = false
}

func (s *Session) view() View {
	return View{
		Items:   s.cursor.Window(s.results),
		Total:   s.cursor.Total(),
		Visible: s.cursor.Visible(),
		HasMore: s.cursor.HasMore(),
		Version: s.catalog.Version(),
		Status:  s.catalog.Status(),
		Search:  s.query.Search,
		Facet:   s.query.Facet,
	}
}
