package domain

import (
	"fmt"
	"strconv"
)

// Request holds everything needed to query the calculator and to format the
// input half of the output line. Degree/minute fields keep their original
// string form for display; Lat/Lon carry the derived decimal degrees.
type Request struct {
	Year  string
	Month string
	Day   string

	LatDeg string
	LatMin string
	LonDeg string
	LonMin string

	// Lat and Lon are decimal degrees, deg + min/60. North and West
	// respectively, both stored positive.
	Lat float64
	Lon float64

	// GridOffset is the angular difference between true north and the
	// local grid north reference, in degrees.
	GridOffset float64
}

// ConversionError reports a field that could not be converted to a number.
// It is a data-quality error attributable to one input line, never fatal to
// the batch.
type ConversionError struct {
	Field string
	Value string
	Err   error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %q is not numeric", e.Field, e.Value)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// BuildRequest converts a classified field sequence into a Request. Fields
// are taken at fixed positions 0..7; anything beyond is ignored. Minute
// values are not range-checked — 375 minutes is 6.25 degrees, as given.
func BuildRequest(fields []string) (Request, error) {
	if len(fields) < MinFields {
		return Request{}, fmt.Errorf("need at least %d fields, got %d", MinFields, len(fields))
	}

	req := Request{
		Year:   fields[0],
		Month:  fields[1],
		Day:    fields[2],
		LatDeg: fields[3],
		LatMin: fields[4],
		LonDeg: fields[5],
		LonMin: fields[6],
	}

	latDeg, err := parseField("latitude degrees", req.LatDeg)
	if err != nil {
		return Request{}, err
	}
	latMin, err := parseField("latitude minutes", req.LatMin)
	if err != nil {
		return Request{}, err
	}
	lonDeg, err := parseField("longitude degrees", req.LonDeg)
	if err != nil {
		return Request{}, err
	}
	lonMin, err := parseField("longitude minutes", req.LonMin)
	if err != nil {
		return Request{}, err
	}
	req.GridOffset, err = parseField("grid offset", fields[7])
	if err != nil {
		return Request{}, err
	}

	req.Lat = latDeg + latMin/60
	req.Lon = lonDeg + lonMin/60
	return req, nil
}

func parseField(name, value string) (float64, error) {
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, &ConversionError{Field: name, Value: value, Err: err}
	}
	return v, nil
}
