// Package domain models the declination report pipeline's data.
//
// # Data Source
//
// Declination values come from the NOAA NCEI geomagnetic field calculator at
// https://www.ngdc.noaa.gov/geomag-web/calculators/calculateDeclination,
// queried once per input line with decimal coordinates and a date. The
// calculator answers with newline-delimited text whose second-to-last line is
// a comma-separated data row; the trailing line(s) are commentary or blank.
// That positional convention is load-bearing and preserved by [DecodeReport].
//
// # Input Conventions
//
// Input lines carry at least eight whitespace-separated fields:
//
//	YYYY MM DD LAT_DEG LAT_MIN LON_DEG LON_MIN GRID_OFFSET
//
// Fields beyond the eighth are tolerated and ignored. Lines whose first
// non-whitespace character is '#' are comments; blank lines pass through.
// Latitude is assumed North and longitude West — there is no hemisphere field
// and none is inferred. Minute values are not range-checked: "375" minutes is
// accepted and converted arithmetically (375/60 degrees), matching the data
// files this tool has always been fed.
//
// # Sign Conventions
//
// The calculator reports longitude East-positive ("East is least"); the
// report pipeline stores West-positive, so the decoded longitude is negated.
// Grid declination is derived at formatting time as
// declination - grid offset and never stored.
package domain
