package domain

import (
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testHeader = "OBJECTID,ASSET_ID,SITE_CODE,SITE_NAME,LOCATION,FEATURE_ID,FEATURE_GROUP,PRIM_MEAS,UNIT,CENTROID_X,CENTROID_Y,FEATURE_AREA,SHAPE_AREA,MAJOR_SITE,VALIDATED"
	testCastle = "Castle Street Park"
)

func TestParseRows(t *testing.T) {
	t.Run("header keys and values are trimmed", func(t *testing.T) {
		rows := ParseRows(" SITE_NAME , LOCATION \nQueen Square ,  City Centre\n", DefaultDelimiter)

		require.Len(t, rows, 1)
		assert.Equal(t, "Queen Square", rows[0]["SITE_NAME"])
		assert.Equal(t, "City Centre", rows[0]["LOCATION"])
	})

	t.Run("blank lines skipped and order preserved", func(t *testing.T) {
		rows := ParseRows("SITE_NAME\r\nA\r\n\r\n   \nB\nC\n", DefaultDelimiter)

		require.Len(t, rows, 3)
		assert.Equal(t, "A", rows[0]["SITE_NAME"])
		assert.Equal(t, "B", rows[1]["SITE_NAME"])
		assert.Equal(t, "C", rows[2]["SITE_NAME"])
	})

	t.Run("short rows get empty values for every header key", func(t *testing.T) {
		rows := ParseRows("A,B,C\n1\n", DefaultDelimiter)

		require.Len(t, rows, 1)
		assert.Equal(t, RawRow{"A": "1", "B": "", "C": ""}, rows[0])
	})

	t.Run("byte order mark stripped from header", func(t *testing.T) {
		rows := ParseRows("\uFEFFSITE_NAME\nA\n", DefaultDelimiter)

		require.Len(t, rows, 1)
		assert.Equal(t, "A", rows[0]["SITE_NAME"])
	})

	t.Run("custom delimiter", func(t *testing.T) {
		rows := ParseRows("SITE_NAME;LOCATION\nA;Bedminster\n", ";")

		require.Len(t, rows, 1)
		assert.Equal(t, "Bedminster", rows[0]["LOCATION"])
	})

	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, ParseRows("", DefaultDelimiter))
		assert.Empty(t, ParseRows(" \n\n", DefaultDelimiter))
	})

	t.Run("header only", func(t *testing.T) {
		assert.Empty(t, ParseRows(testHeader+"\n", DefaultDelimiter))
	})
}

func TestNormalizeRow(t *testing.T) {
	t.Run("all columns present", func(t *testing.T) {
		rows := ParseRows(testHeader+"\n"+
			"17,A-100,SC1,Castle Street Park,City Centre,Recreation Ground,Parks,2.3,hectares,-2.5879,51.4545,23000,0,Yes,No\n",
			DefaultDelimiter)
		require.Len(t, rows, 1)

		park, ok := NormalizeRow(rows[0], 0)
		require.True(t, ok)

		assert.Equal(t, 17, park.ObjectID)
		assert.Equal(t, "A-100", park.AssetID)
		assert.Equal(t, "SC1", park.SiteCode)
		assert.Equal(t, testCastle, park.SiteName)
		assert.Equal(t, "City Centre", park.Location)
		assert.Equal(t, "Recreation Ground", park.Type)
		assert.Equal(t, "Parks", park.FeatureGroup)
		assert.Equal(t, 2.3, park.PrimaryMeasure)
		assert.Equal(t, "hectares", park.Unit)
		assert.Equal(t, Coordinates{Lat: 51.4545, Lng: -2.5879}, park.Coordinates)
		assert.Equal(t, 23000.0, park.Area)
		assert.Equal(t, Yes, park.MajorSite)
		assert.Equal(t, No, park.Validated)
		assert.False(t, park.Derived())
	})

	t.Run("fallbacks for absent columns", func(t *testing.T) {
		park, ok := NormalizeRow(RawRow{ColSiteName: "Lonely Park"}, 7)
		require.True(t, ok)

		assert.Equal(t, 7, park.ObjectID)
		assert.Equal(t, DefaultAssetID, park.AssetID)
		assert.Equal(t, DefaultSiteCode, park.SiteCode)
		assert.Equal(t, DefaultLocation, park.Location)
		assert.Equal(t, DefaultType, park.Type)
		assert.Equal(t, DefaultFeatureGroup, park.FeatureGroup)
		assert.Equal(t, 0.0, park.PrimaryMeasure)
		assert.Equal(t, DefaultUnit, park.Unit)
		assert.Equal(t, Coordinates{Lat: DefaultLat, Lng: DefaultLng}, park.Coordinates)
		assert.Equal(t, 0.0, park.Area)
		assert.Equal(t, No, park.MajorSite)
		assert.Equal(t, Yes, park.Validated)
	})

	t.Run("missing name drops the row", func(t *testing.T) {
		_, ok := NormalizeRow(RawRow{ColSiteName: "   ", ColLocation: "Clifton"}, 0)
		assert.False(t, ok)

		_, ok = NormalizeRow(RawRow{ColLocation: "Clifton"}, 0)
		assert.False(t, ok)
	})

	t.Run("secondary area column", func(t *testing.T) {
		park, ok := NormalizeRow(RawRow{ColSiteName: "X", ColFeatureArea: "n/a", ColShapeArea: "812.5"}, 0)
		require.True(t, ok)
		assert.Equal(t, 812.5, park.Area)
	})

	t.Run("integral float object id", func(t *testing.T) {
		park, ok := NormalizeRow(RawRow{ColSiteName: "X", ColObjectID: "42.0"}, 3)
		require.True(t, ok)
		assert.Equal(t, 42, park.ObjectID)

		park, ok = NormalizeRow(RawRow{ColSiteName: "X", ColObjectID: "4.5"}, 3)
		require.True(t, ok)
		assert.Equal(t, 3, park.ObjectID)
	})

	t.Run("yes no variants", func(t *testing.T) {
		tests := []struct {
			raw  string
			want string
		}{
			{"Yes", Yes}, {"y", Yes}, {"TRUE", Yes},
			{"No", No}, {"n", No}, {"false", No},
			{"maybe", No}, {"", No},
		}
		for _, tt := range tests {
			park, ok := NormalizeRow(RawRow{ColSiteName: "X", ColMajorSite: tt.raw}, 0)
			require.True(t, ok)
			assert.Equal(t, tt.want, park.MajorSite, "MAJOR_SITE=%q", tt.raw)
		}
	})
}

func TestNormalizeRow_NumericCoercion(t *testing.T) {
	invalid := []string{"", "abc", "NaN", "+Inf", "-5"}

	for _, value := range invalid {
		t.Run("measure and area "+value, func(t *testing.T) {
			park, ok := NormalizeRow(RawRow{
				ColSiteName:    "X",
				ColPrimMeas:    value,
				ColFeatureArea: value,
				ColShapeArea:   value,
			}, 0)
			require.True(t, ok)

			assert.Equal(t, 0.0, park.PrimaryMeasure)
			assert.Equal(t, 0.0, park.Area)
		})
	}

	coordinates := []string{"", "abc", "NaN", "-Inf", "358000", "-181"}

	for _, value := range coordinates {
		t.Run("coordinates "+value, func(t *testing.T) {
			park, ok := NormalizeRow(RawRow{
				ColSiteName:  "X",
				ColCentroidX: value,
				ColCentroidY: value,
			}, 0)
			require.True(t, ok)

			assert.False(t, math.IsNaN(park.Coordinates.Lat))
			assert.False(t, math.IsNaN(park.Coordinates.Lng))
			assert.Equal(t, Coordinates{Lat: DefaultLat, Lng: DefaultLng}, park.Coordinates)
		})
	}
}

func TestNormalize(t *testing.T) {
	t.Run("one park per named row", func(t *testing.T) {
		rows := []RawRow{
			{ColSiteName: "A"},
			{ColSiteName: ""},
			{ColSiteName: "B"},
			{ColLocation: "Nowhere"},
		}

		parks, report := Normalize(rows)

		require.Len(t, parks, 2)
		assert.Equal(t, "A", parks[0].SiteName)
		assert.Equal(t, 0, parks[0].ObjectID)
		assert.Equal(t, "B", parks[1].SiteName)
		assert.Equal(t, 2, parks[1].ObjectID, "ordinal counts dropped rows too")
		assert.Equal(t, NormalizeReport{Rows: 4, Dropped: 2}, report)
	})

	t.Run("caps at MaxParks", func(t *testing.T) {
		var b strings.Builder
		b.WriteString("SITE_NAME\n")
		for i := range 120 {
			fmt.Fprintf(&b, "Park %d\n", i)
		}

		parks, report := Normalize(ParseRows(b.String(), DefaultDelimiter))

		require.Len(t, parks, MaxParks)
		assert.Equal(t, "Park 0", parks[0].SiteName)
		assert.Equal(t, "Park 49", parks[MaxParks-1].SiteName)
		assert.Equal(t, 120-MaxParks, report.Capped)
	})

	t.Run("empty input", func(t *testing.T) {
		parks, report := Normalize(nil)
		assert.Empty(t, parks)
		assert.Equal(t, NormalizeReport{}, report)
	})
}

func TestSampleParks(t *testing.T) {
	parks := SampleParks()
	require.Len(t, parks, 5)

	asOf := time.Date(2026, 10, 18, 9, 0, 0, 0, time.UTC)
	for _, p := range DeriveAll(parks, asOf) {
		assert.NotEmpty(t, p.SiteName)
		assert.True(t, p.Derived(), "sample park %q should derive fully", p.SiteName)
	}
}
