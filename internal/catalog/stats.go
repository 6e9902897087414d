package catalog

import (
	"math"

	"github.com/couchcryptid/parks-data-service/internal/domain"
)

const squareMetersPerHectare = 10_000

// Stats summarizes a whole collection, independent of any active filter.
type Stats struct {
	TotalParks        int     `json:"total_parks"`
	TotalAreaHectares int64   `json:"total_area_hectares"`
	AverageRating     float64 `json:"average_rating"`
	MajorSites        int     `json:"major_sites"`
	HasData           bool    `json:"has_data"`
}

// Aggregate computes collection statistics. Area is summed in square meters
// and converted to whole hectares once, truncating. The mean rating is rounded
// to one decimal. An empty collection yields zero values with HasData false.
func Aggregate(parks []domain.Park) Stats {
	if len(parks) == 0 {
		return Stats{}
	}

	var areaSum, ratingSum float64
	major := 0
	for _, p := range parks {
		areaSum += p.Area
		ratingSum += p.Rating
		if p.IsMajor() {
			major++
		}
	}

	return Stats{
		TotalParks:        len(parks),
		TotalAreaHectares: int64(math.Trunc(areaSum / squareMetersPerHectare)),
		AverageRating:     domain.Round1(ratingSum / float64(len(parks))),
		MajorSites:        major,
		HasData:           true,
	}
}
