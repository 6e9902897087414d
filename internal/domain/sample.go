package domain

// SampleParks returns the built-in record set served when the source payload
// cannot be retrieved. The parks are normalized but not yet derived.
func SampleParks() []Park {
	return []Park{
		sample(1, "Castle Street Park", "City Centre", "Recreation Ground", 2.3, 51.4545, -2.5879, No),
		sample(2, "Brandon Hill Nature Park", "Clifton", "Nature Reserve", 8.5, 51.4520, -2.6050, No),
		sample(3, "Queen Square", "City Centre", "Urban Square", 1.2, 51.4500, -2.6000, No),
		sample(4, "Eastville Park", "Eastville", "Recreation Ground", 34.7, 51.4780, -2.5530, Yes),
		sample(5, "The Downs", "Clifton", "Common Land", 162, 51.4650, -2.6200, Yes),
	}
}

func sample(id int, name, location, parkType string, hectares, lat, lng float64, major string) Park {
	return Park{
		ObjectID:       id,
		AssetID:        DefaultAssetID,
		SiteCode:       DefaultSiteCode,
		SiteName:       name,
		Location:       location,
		Type:           parkType,
		FeatureGroup:   DefaultFeatureGroup,
		PrimaryMeasure: hectares,
		Unit:           DefaultUnit,
		Coordinates:    Coordinates{Lat: lat, Lng: lng},
		Area:           hectares * 10_000,
		MajorSite:      major,
		Validated:      Yes,
	}
}
