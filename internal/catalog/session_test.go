package catalog

import (
	"fmt"
	"testing"

	"github.com/couchcryptid/parks-data-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func manyParks(n int) []domain.Park {
	parks := make([]domain.Park, n)
	for i := range parks {
		parkType := "Recreation Ground"
		if i%3 == 0 {
			parkType = "Woodland"
		}
		parks[i] = derived(fmt.Sprintf("Park %02d", i), "Bristol", parkType, domain.No, 0)
		parks[i].ObjectID = i
	}
	return parks
}

func TestSession_PaginatesAndClamps(t *testing.T) {
	provider := &staticProvider{cat: New(manyParks(23), Meta{Version: 1, Status: StatusLive})}
	s := NewSession(provider, PageSize)

	v := s.View()
	assert.Equal(t, 23, v.Total)
	assert.Equal(t, 10, v.Visible)
	assert.Len(t, v.Items, 10)
	assert.True(t, v.HasMore)

	v = s.More()
	assert.Equal(t, 20, v.Visible)

	v = s.More()
	assert.Equal(t, 23, v.Visible)
	assert.Len(t, v.Items, 23)
	assert.False(t, v.HasMore)

	v = s.More()
	assert.Equal(t, 23, v.Visible)
}

func TestSession_ResetOnQueryChange(t *testing.T) {
	provider := &staticProvider{cat: New(manyParks(40), Meta{Version: 1})}
	s := NewSession(provider, PageSize)

	s.More()
	s.More()
	require.Equal(t, 30, s.View().Visible)

	s.SetFacet("Woodland")
	v := s.View()
	assert.Equal(t, 14, v.Total)
	assert.Equal(t, 10, v.Visible)
	assert.Equal(t, "Woodland", v.Facet)

	s.More()
	s.SetSearch("park 0")
	v = s.View()
	assert.Equal(t, 4, v.Total, "Park 00, 03, 06, 09")
	assert.Equal(t, 4, v.Visible, "reset is clamped to the result length")
}

func TestSession_SameValueKeepsCursor(t *testing.T) {
	provider := &staticProvider{cat: New(manyParks(40), Meta{Version: 1})}
	s := NewSession(provider, PageSize)

	s.More()
	s.SetFacet(FacetAll)
	s.SetFacet("")
	s.SetSearch("")

	assert.Equal(t, 20, s.View().Visible)
}

func TestSession_ResetsOnNewCatalog(t *testing.T) {
	provider := &staticProvider{cat: New(manyParks(40), Meta{Version: 1})}
	s := NewSession(provider, PageSize)

	s.More()
	require.Equal(t, 20, s.View().Visible)

	provider.cat = New(manyParks(15), Meta{Version: 2, Status: StatusFallback})
	v := s.View()
	assert.Equal(t, uint64(2), v.Version)
	assert.Equal(t, StatusFallback, v.Status)
	assert.Equal(t, 15, v.Total)
	assert.Equal(t, 10, v.Visible)
}

func TestSession_LoadingCatalog(t *testing.T) {
	s := NewSession(&staticProvider{cat: Empty()}, 0)

	v := s.View()
	assert.Equal(t, StatusLoading, v.Status)
	assert.Equal(t, 0, v.Total)
	assert.Empty(t, v.Items)
	assert.False(t, v.HasMore)
}

func TestSession_PinnedToCatalog(t *testing.T) {
	cat := New(manyParks(12), Meta{Version: 4, Status: StatusLive})
	s := NewSession(cat, PageSize)

	v := s.More()
	assert.Equal(t, 12, v.Visible)
	assert.Equal(t, uint64(4), v.Version)
	assert.Same(t, cat, cat.Current())
}

func TestSession_ViewItemsAreCopies(t *testing.T) {
	cat := New(bristolParks(), Meta{Version: 1})
	s := NewSession(cat, 3)
	original := cat.Parks()[0].Facilities

	v := s.View()
	require.NotEmpty(t, v.Items)
	v.Items[0].Facilities[0] = "Casino"
	v.Items[0].SiteName = "changed"

	assert.Equal(t, original, cat.Parks()[0].Facilities)
	assert.Equal(t, original, s.View().Items[0].Facilities)
	assert.Equal(t, "Castle Street Park", s.View().Items[0].SiteName)
}
