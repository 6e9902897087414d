package catalog

import (
	"time"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

var testAsOf = time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)

func derived(name, location, parkType, major string, area float64) domain.Park {
	return domain.Derive(domain.Park{
		SiteName:       name,
		Location:       location,
		Type:           parkType,
		MajorSite:      major,
		Area:           area,
		PrimaryMeasure: area / 10_000,
		Unit:           domain.DefaultUnit,
	}, testAsOf)
}

// bristolParks is a small mixed collection: 3 recreation grounds, 2 nature
// reserves, 1 urban square, 1 unknown type; 3 major sites.
func bristolParks() []domain.Park {
	parks := []domain.Park{
		derived("Castle Street Park", "City Centre", "Recreation Ground", domain.No, 23_000),
		derived("Brandon Hill Nature Park", "Clifton", "Nature Reserve", domain.No, 85_000),
		derived("Queen Square", "City Centre", "Urban Square", domain.No, 12_000),
		derived("Eastville Park", "Eastville", "Recreation Ground", domain.Yes, 347_000),
		derived("Snuff Mills", "Stapleton", "Nature Reserve", domain.Yes, 40_000),
		derived("St Andrews Park", "Montpelier", "Recreation Ground", domain.No, 5_000),
		derived("Arnos Vale", "Brislington", "Cemetery", domain.Yes, 0),
	}
	for i := range parks {
		parks[i].ObjectID = i + 1
	}
	return parks
}

type staticProvider struct{ cat *Catalog }

func (p *staticProvider) Current() *Catalog { return p.cat }
