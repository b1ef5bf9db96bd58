package domain

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleRequest() Request {
	return Request{
		Year: "2015", Month: "08", Day: "28",
		LatDeg: "63", LatMin: "375", LonDeg: "96", LonMin: "15",
		Lat: 69.25, Lon: 96.25,
		GridOffset: -2.46,
	}
}

func sampleReport() Report {
	return Report{
		DecimalYear: 2015.54795,
		Latitude:    61.1,
		Longitude:   101.1,
		Declination: 5.52539,
	}
}

func TestFormatLine(t *testing.T) {
	got := FormatLine(sampleRequest(), sampleReport())
	want := "2015-08-28 63° 375′ 96° 15′ -2.460 | 2015.548 61.100° 101.100° 5.525 7.985°"
	assert.Equal(t, want, got)
}

func TestFormatLine_GridDeclination(t *testing.T) {
	// grid declination = declination - grid offset = 5.52539 - (-2.46)
	req := sampleRequest()
	rep := sampleReport()
	got := FormatLine(req, rep)

	fields := strings.Fields(got)
	last := strings.TrimSuffix(fields[len(fields)-1], "°")
	assert.Equal(t, "7.985", last)
	assert.InDelta(t, 7.98539, rep.Declination-req.GridOffset, 1e-6)
}

func TestFormatLine_Idempotent(t *testing.T) {
	req, rep := sampleRequest(), sampleReport()
	first := FormatLine(req, rep)
	second := FormatLine(req, rep)
	assert.Equal(t, first, second)
}

func TestFormatLine_ZeroPadsMonthAndDay(t *testing.T) {
	req := sampleRequest()
	req.Month, req.Day = "8", "1"
	got := FormatLine(req, sampleReport())
	require.True(t, strings.HasPrefix(got, "2015-08-01 "), got)
}

func TestFormatLine_SemanticFieldCount(t *testing.T) {
	// date, lat pair, lon pair, grid offset, pipe, then the five decoded
	// columns: 12 whitespace tokens, 9 semantic fields plus the separator.
	got := FormatLine(sampleRequest(), sampleReport())
	fields := strings.Fields(got)
	assert.Len(t, fields, 12)
	assert.Equal(t, "|", fields[6])
}
