package domain

import (
	"context"
	"slices"
	"time"
)

// RawRow is one data line of the source payload keyed by trimmed header name.
// Every row carries every header key; missing trailing values are empty.
type RawRow map[string]string

// Coordinates is a WGS-84 latitude/longitude pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Park is the canonical green-space record after normalization and derivation.
type Park struct {
	ObjectID       int         `json:"object_id"`
	AssetID        string      `json:"asset_id"`
	SiteCode       string      `json:"site_code"`
	SiteName       string      `json:"site_name"`
	Location       string      `json:"location"`
	Type           string      `json:"type"`
	FeatureGroup   string      `json:"feature_group"`
	PrimaryMeasure float64     `json:"primary_measure"`
	Unit           string      `json:"unit"`
	Coordinates    Coordinates `json:"coordinates"`
	Area           float64     `json:"area"` // square meters
	MajorSite      string      `json:"major_site"`
	Validated      string      `json:"validated"`

	// Derived fields.
	Description   string    `json:"description"`
	Facilities    []string  `json:"facilities"`
	Rating        float64   `json:"rating"`
	Accessibility string    `json:"accessibility"`
	OpeningHours  string    `json:"opening_hours"`
	LastUpdated   time.Time `json:"last_updated"`
}

// IsMajor reports whether the park is flagged as a major site.
func (p Park) IsMajor() bool {
	return p.MajorSite == Yes
}

// Clone returns a copy of p that shares no memory with it.
func (p Park) Clone() Park {
	p.Facilities = slices.Clone(p.Facilities)
	return p
}

// Derived reports whether the derived field set has been attached.
func (p Park) Derived() bool {
	return p.Description != "" && len(p.Facilities) > 0 && p.Rating > 0 &&
		p.Accessibility != "" && p.OpeningHours != "" && !p.LastUpdated.IsZero()
}

// Source retrieves the raw delimited-text payload for a load.
type Source interface {
	Fetch(ctx context.Context) ([]byte, error)
}
