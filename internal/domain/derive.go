package domain

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"
)

// Rating bounds and weights.
const (
	BaseRating     = 3.5
	MaxRating      = 5.0
	majorSiteBonus = 0.8
	largeAreaBonus = 0.4 // area > largeArea
	vastAreaBonus  = 0.3 // area > vastArea
	largeArea      = 10_000.0
	vastArea       = 50_000.0
)

// Opening hours values.
const (
	HoursDawnToDusk = "Dawn to dusk"
	HoursAllDay     = "24 hours"
)

// typeProfile holds the fixed per-type lookups used by derivation.
type typeProfile struct {
	description   string // %s is the location
	facilities    []string
	accessibility string
}

var typeProfiles = map[string]typeProfile{
	"Recreation Ground": {
		description:   "A popular recreation ground in %s with open grass for sport and play.",
		facilities:    []string{"Playground", "Sports Pitches", "Open Grass", "Seating"},
		accessibility: "Level paths with step-free access from the main entrances.",
	},
	"Nature Reserve": {
		description:   "A protected nature reserve in %s supporting local wildlife and habitats.",
		facilities:    []string{"Walking Trails", "Wildlife Viewing", "Information Boards"},
		accessibility: "Uneven natural paths; some areas may be difficult for wheelchairs.",
	},
	"Urban Square": {
		description:   "A historic urban square in %s, ideal for relaxing and community events.",
		facilities:    []string{"Seating", "Events Space", "Lighting"},
		accessibility: "Fully step-free paved surfaces throughout.",
	},
	"Common Land": {
		description:   "Expansive common land in %s with open access for walking and recreation.",
		facilities:    []string{"Walking", "Open Space", "Viewpoints"},
		accessibility: "Mostly open grassland with some surfaced paths.",
	},
	"Formal Park": {
		description:   "A landscaped formal park in %s with gardens and heritage features.",
		facilities:    []string{"Gardens", "Seating", "Toilets", "Cafe"},
		accessibility: "Surfaced paths with step-free routes to the main gardens.",
	},
	"Woodland": {
		description:   "Woodland in %s offering shaded trails and natural habitats.",
		facilities:    []string{"Woodland Trails", "Wildlife Viewing"},
		accessibility: "Natural woodland paths that can be muddy in wet weather.",
	},
	"Informal Green Space": {
		description:   "An informal green space in %s for everyday walks and relaxation.",
		facilities:    []string{"Open Grass", "Walking Paths"},
		accessibility: "Grass surfaces with limited formal paths.",
	},
	"Play Area": {
		description:   "A children's play area in %s with equipment for different ages.",
		facilities:    []string{"Playground", "Seating", "Fenced Area"},
		accessibility: "Step-free entrance with accessible play equipment.",
	},
}

var defaultFacilities = []string{"Open Space", "Seating"}

const defaultAccessibility = "Accessibility information is not available for this site."

// dawnToDuskKeywords mark outdoor or informal categories that close at dusk.
var dawnToDuskKeywords = []string{"nature", "woodland", "common", "meadow", "informal"}

// Derive attaches the derived field set to a normalized park. asOf becomes
// LastUpdated; all other derived fields depend only on the park itself.
func Derive(p Park, asOf time.Time) Park {
	p.Description = Description(p.Type, p.Location)
	p.Facilities = Facilities(p.Type)
	p.Rating = Rating(p.MajorSite, p.Area)
	p.Accessibility = Accessibility(p.Type)
	p.OpeningHours = OpeningHours(p.Type)
	p.LastUpdated = asOf
	return p
}

// DeriveAll derives every park in order, returning a new slice.
func DeriveAll(parks []Park, asOf time.Time) []Park {
	out := make([]Park, len(parks))
	for i, p := range parks {
		out[i] = Derive(p, asOf)
	}
	return out
}

// Description renders the per-type template for the given location.
func Description(parkType, location string) string {
	if profile, ok := typeProfiles[parkType]; ok {
		return fmt.Sprintf(profile.description, location)
	}
	return fmt.Sprintf("A %s in %s.", strings.ToLower(parkType), location)
}

// Facilities returns a fresh copy of the facility list for the type.
func Facilities(parkType string) []string {
	if profile, ok := typeProfiles[parkType]; ok {
		return slices.Clone(profile.facilities)
	}
	return slices.Clone(defaultFacilities)
}

// Rating scores a park from 3.5 to 5.0. The bonuses are additive; the sum is
// rounded to one decimal and capped at MaxRating.
func Rating(majorSite string, area float64) float64 {
	rating := BaseRating
	if majorSite == Yes {
		rating += majorSiteBonus
	}
	if area > largeArea {
		rating += largeAreaBonus
	}
	if area > vastArea {
		rating += vastAreaBonus
	}
	return math.Min(Round1(rating), MaxRating)
}

// Accessibility returns the per-type accessibility note.
func Accessibility(parkType string) string {
	if profile, ok := typeProfiles[parkType]; ok {
		return profile.accessibility
	}
	return defaultAccessibility
}

// OpeningHours is dawn to dusk for outdoor/informal categories, otherwise 24 hours.
func OpeningHours(parkType string) string {
	lower := strings.ToLower(parkType)
	for _, kw := range dawnToDuskKeywords {
		if strings.Contains(lower, kw) {
			return HoursDawnToDusk
		}
	}
	return HoursAllDay
}

// Round1 rounds to one decimal place, halves away from zero.
func Round1(v float64) float64 {
	return math.Round(v*10) / 10
}
