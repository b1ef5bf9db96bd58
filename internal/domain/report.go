package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Report is the decoded calculator response for one request.
type Report struct {
	DecimalYear float64
	// Latitude and Longitude are decimal degrees as echoed by the
	// calculator, longitude negated to the West-positive convention.
	Latitude  float64
	Longitude float64
	// Elevation is echoed by the service but unused by the output line.
	Elevation float64
	// Declination is degrees relative to true north.
	Declination float64

	// SecularVariation and Uncertainty are present in full calculator
	// responses but optional here; older response shapes omit them.
	SecularVariation float64
	Uncertainty      float64

	RetrievedAt time.Time
}

// DecodeError reports a calculator response whose shape or contents could not
// be interpreted. Like transport failures it is attributable to one line.
type DecodeError struct {
	Reason string
	Err    error
}

func (e *DecodeError) Error() string {
	return "decode response: " + e.Reason
}

func (e *DecodeError) Unwrap() error { return e.Err }

// reportFields is the minimum comma-separated field count of a data row:
// decimal year, latitude, longitude, elevation, declination. Secular
// variation and uncertainty follow when the service includes them.
const reportFields = 5

// DecodeReport parses the raw calculator response. The data row is the
// second-to-last newline-delimited line — the service appends trailing
// commentary or a blank line after it, and that positional convention must
// not change.
func DecodeReport(raw string) (Report, error) {
	lines := strings.Split(raw, "\n")
	if len(lines) < 2 {
		return Report{}, &DecodeError{Reason: fmt.Sprintf("expected at least 2 lines, got %d", len(lines))}
	}

	dataRow := lines[len(lines)-2]
	fields := strings.Split(dataRow, ",")
	if len(fields) < reportFields {
		return Report{}, &DecodeError{Reason: fmt.Sprintf("data row has %d fields, need %d", len(fields), reportFields)}
	}

	rep := Report{RetrievedAt: clock.Now()}
	required := []struct {
		name string
		dst  *float64
	}{
		{"decimal year", &rep.DecimalYear},
		{"latitude", &rep.Latitude},
		{"longitude", &rep.Longitude},
		{"elevation", &rep.Elevation},
		{"declination", &rep.Declination},
	}
	for i, f := range required {
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[i]), 64)
		if err != nil {
			return Report{}, &DecodeError{Reason: fmt.Sprintf("%s %q is not numeric", f.name, fields[i]), Err: err}
		}
		*f.dst = v
	}

	// East is least: the service reports East-positive, we store West-positive.
	rep.Longitude = -rep.Longitude

	for i, dst := range []*float64{&rep.SecularVariation, &rep.Uncertainty} {
		idx := reportFields + i
		if idx >= len(fields) {
			break
		}
		if v, err := strconv.ParseFloat(strings.TrimSpace(fields[idx]), 64); err == nil {
			*dst = v
		}
	}

	return rep, nil
}
