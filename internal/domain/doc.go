// Package domain models municipal parks and green-space records.
//
// # Data Source
//
// Records originate from the Bristol "Parks and green spaces" open dataset, a
// flat comma-delimited export with one header line. Fields are never quoted,
// so a value containing the delimiter cannot be represented faithfully; such
// rows parse into shifted columns and usually fail normalization harmlessly.
//
// # Column Conventions
//
//	OBJECTID       integer row identifier, unique within one export
//	SITE_NAME      the existence key: rows without it are dropped
//	FEATURE_ID     the site type, e.g. "Recreation Ground", "Nature Reserve"
//	PRIM_MEAS/UNIT primary measure and its unit, usually hectares
//	CENTROID_Y/X   WGS-84 latitude/longitude of the site centroid
//	FEATURE_AREA   site area in square meters; SHAPE_AREA is the secondary column
//	MAJOR_SITE     "Yes"/"No"
//	VALIDATED      "Yes"/"No"
//
// Any missing or unparseable value resolves to a documented fallback (see the
// Default* constants). Numeric coercion never produces NaN and never fails.
// Coordinates outside WGS-84 bounds, such as British National Grid eastings,
// fall back to the Bristol city-centre point.
//
// # Derived Fields
//
// Description, facilities, accessibility and opening hours come from fixed
// per-type tables with a generic default branch. The rating is a
// project-specific score:
//
//	3.5 base
//	+0.8 when MAJOR_SITE is "Yes"
//	+0.4 when area > 10,000 m²
//	+0.3 when area > 50,000 m²
//
// rounded to one decimal and capped at 5.0. All derivations are pure; the
// only time-dependent field, LastUpdated, is supplied by the caller once per load.
//
// # Ingestion Limit
//
// A single load keeps at most [MaxParks] named rows, the first ones in file order.
package domain
