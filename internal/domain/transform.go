package domain

import (
	"math"
	"strconv"
	"strings"
)

// MaxParks caps how many named rows a single load keeps.
const MaxParks = 50

// Source column names.
const (
	ColObjectID     = "OBJECTID"
	ColAssetID      = "ASSET_ID"
	ColSiteCode     = "SITE_CODE"
	ColSiteName     = "SITE_NAME"
	ColLocation     = "LOCATION"
	ColFeatureType  = "FEATURE_ID"
	ColFeatureGroup = "FEATURE_GROUP"
	ColPrimMeas     = "PRIM_MEAS"
	ColUnit         = "UNIT"
	ColCentroidX    = "CENTROID_X"
	ColCentroidY    = "CENTROID_Y"
	ColFeatureArea  = "FEATURE_AREA"
	ColShapeArea    = "SHAPE_AREA"
	ColMajorSite    = "MAJOR_SITE"
	ColValidated    = "VALIDATED"
)

// Fallback values applied when a source column is absent or invalid.
const (
	DefaultAssetID      = "N/A"
	DefaultSiteCode     = "N/A"
	DefaultLocation     = "Bristol"
	DefaultType         = "General Green Space"
	DefaultFeatureGroup = "Parks and Green Spaces"
	DefaultUnit         = "hectares"
	DefaultLat          = 51.4545
	DefaultLng          = -2.5879

	Yes = "Yes"
	No  = "No"
)

// NormalizeReport summarizes a Normalize pass.
type NormalizeReport struct {
	Rows    int // rows seen
	Dropped int // rows without a site name
	Capped  int // named rows beyond MaxParks
}

// Normalize maps raw rows onto canonical parks in input order. Rows without a
// SITE_NAME are dropped and at most MaxParks parks are returned. Derived
// fields are left empty; see Derive.
func Normalize(rows []RawRow) ([]Park, NormalizeReport) {
	report := NormalizeReport{Rows: len(rows)}
	parks := make([]Park, 0, min(len(rows), MaxParks))

	for i, row := range rows {
		park, ok := NormalizeRow(row, i)
		if !ok {
			report.Dropped++
			continue
		}
		if len(parks) == MaxParks {
			report.Capped++
			continue
		}
		parks = append(parks, park)
	}

	return parks, report
}

// NormalizeRow builds a Park from a single row. ordinal is the row's index in
// the parsed sequence and stands in for a missing OBJECTID. It returns false
// when the row has no site name.
func NormalizeRow(row RawRow, ordinal int) (Park, bool) {
	name := field(row, ColSiteName)
	if name == "" {
		return Park{}, false
	}

	return Park{
		ObjectID:       parseIntOr(field(row, ColObjectID), ordinal),
		AssetID:        stringOr(field(row, ColAssetID), DefaultAssetID),
		SiteCode:       stringOr(field(row, ColSiteCode), DefaultSiteCode),
		SiteName:       name,
		Location:       stringOr(field(row, ColLocation), DefaultLocation),
		Type:           stringOr(field(row, ColFeatureType), DefaultType),
		FeatureGroup:   stringOr(field(row, ColFeatureGroup), DefaultFeatureGroup),
		PrimaryMeasure: parseNonNegativeOr(field(row, ColPrimMeas), 0),
		Unit:           stringOr(field(row, ColUnit), DefaultUnit),
		Coordinates: Coordinates{
			Lat: parseInRangeOr(field(row, ColCentroidY), -90, 90, DefaultLat),
			Lng: parseInRangeOr(field(row, ColCentroidX), -180, 180, DefaultLng),
		},
		Area:      parseArea(row),
		MajorSite: parseYesNo(field(row, ColMajorSite), No),
		Validated: parseYesNo(field(row, ColValidated), Yes),
	}, true
}

func field(row RawRow, key string) string {
	return strings.TrimSpace(row[key])
}

func stringOr(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

// parseArea prefers FEATURE_AREA and falls back to SHAPE_AREA, then 0.
func parseArea(row RawRow) float64 {
	for _, col := range []string{ColFeatureArea, ColShapeArea} {
		if v, ok := parseFinite(field(row, col)); ok && v >= 0 {
			return v
		}
	}
	return 0
}

// parseFinite parses s as a float, rejecting empty input, NaN and infinities.
func parseFinite(s string) (float64, bool) {
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseNonNegativeOr(s string, fallback float64) float64 {
	v, ok := parseFinite(s)
	if !ok || v < 0 {
		return fallback
	}
	return v
}

// parseInRangeOr guards coordinates: projected grid values (e.g. British
// National Grid eastings) are outside WGS-84 bounds and resolve to the fallback.
func parseInRangeOr(s string, lo, hi, fallback float64) float64 {
	v, ok := parseFinite(s)
	if !ok || v < lo || v > hi {
		return fallback
	}
	return v
}

// parseIntOr accepts plain integers and integral floats such as "12.0".
func parseIntOr(s string, fallback int) int {
	if s == "" {
		return fallback
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n
	}
	v, ok := parseFinite(s)
	if !ok || v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return fallback
	}
	return int(v)
}

func parseYesNo(s, fallback string) string {
	switch strings.ToLower(s) {
	case "yes", "y", "true":
		return Yes
	case "no", "n", "false":
		return No
	default:
		return fallback
	}
}
