package catalog

import (
	"testing"

	"github.com/couchcryptid/parks-data-service/internal/domain"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestBuildFacets(t *testing.T) {
	facets := BuildFacets(bristolParks())

	expected := []FilterOption{
		{Value: FacetAll, Label: "All Parks", Count: 7},
		{Value: FacetMajor, Label: "Major Sites", Count: 3},
		{Value: "Recreation Ground", Label: "Recreation Ground", Count: 3},
		{Value: "Nature Reserve", Label: "Nature Reserve", Count: 2},
		{Value: "Urban Square", Label: "Urban Square", Count: 1},
		{Value: "Cemetery", Label: "Cemetery", Count: 1},
	}
	if diff := cmp.Diff(expected, facets); diff != "" {
		t.Fatalf("facets mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildFacets_CountsSum(t *testing.T) {
	parks := bristolParks()
	facets := BuildFacets(parks)

	assert.Equal(t, len(parks), facets[0].Count)

	sum := 0
	for _, f := range facets[2:] {
		sum += f.Count
	}
	assert.Equal(t, len(parks), sum, "each park belongs to exactly one type facet")
}

func TestBuildFacets_TiesKeepFirstSeenOrder(t *testing.T) {
	parks := []domain.Park{
		{SiteName: "a", Type: "Woodland"},
		{SiteName: "b", Type: "Allotment"},
		{SiteName: "c", Type: "Allotment"},
		{SiteName: "d", Type: "Woodland"},
		{SiteName: "e", Type: "Cemetery"},
	}

	facets := BuildFacets(parks)

	values := make([]string, 0, len(facets))
	for _, f := range facets {
		values = append(values, f.Value)
	}
	assert.Equal(t, []string{FacetAll, FacetMajor, "Woodland", "Allotment", "Cemetery"}, values)
}

func TestBuildFacets_Empty(t *testing.T) {
	facets := BuildFacets(nil)

	assert.Equal(t, []FilterOption{
		{Value: FacetAll, Label: "All Parks", Count: 0},
		{Value: FacetMajor, Label: "Major Sites", Count: 0},
	}, facets)
}
