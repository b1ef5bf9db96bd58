package domain

import (
	"fmt"
	"strings"
)

// HeaderLine labels the output columns. Emitting it is a presentation choice
// owned by the pipeline configuration.
const HeaderLine = "   DATE    Latit   Longit    grid    decDate  decLat  decLong  Decl  gridDec"

// MalformedMarker precedes the verbatim echo of a line with too few fields.
const MalformedMarker = "#! The following line is malformed:"

// degree and prime glyphs for degree/minute rendering.
const (
	degreeSign = "°"
	primeSign  = "′"
)

// FormatLine renders the final output line for one request/report pair:
//
//	2015-08-28 63° 375′ 96° 15′ -2.460 | 2015.548 61.100° 101.100° 5.525 7.985°
//
// Date, degrees, and minutes are echoed as given on the input line (year
// left-justified to 4, month/day zero-padded to 2); decimals use three
// places with minimum width 6 where columns must align. Grid declination is
// declination minus grid offset, computed here and nowhere else. The
// function is pure: identical records always yield identical bytes.
func FormatLine(req Request, rep Report) string {
	gridDeclination := rep.Declination - req.GridOffset
	return fmt.Sprintf("%-4s-%s-%s %s%s %s%s %s%s %s%s %6.3f | %.3f %6.3f%s %6.3f%s %.3f %.3f%s",
		req.Year, zeroPad(req.Month, 2), zeroPad(req.Day, 2),
		req.LatDeg, degreeSign, req.LatMin, primeSign,
		req.LonDeg, degreeSign, req.LonMin, primeSign,
		req.GridOffset,
		rep.DecimalYear, rep.Latitude, degreeSign, rep.Longitude, degreeSign,
		rep.Declination, gridDeclination, degreeSign,
	)
}

// zeroPad left-pads s with zeros to the given width. Strings already at or
// beyond the width pass through unchanged.
func zeroPad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}
