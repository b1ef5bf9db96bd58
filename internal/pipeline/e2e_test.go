package pipeline_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexKleider/declination/internal/adapter/geomag"
	"github.com/alexKleider/declination/internal/config"
	"github.com/alexKleider/declination/internal/observability"
	"github.com/alexKleider/declination/internal/pipeline"
)

// TestRun_EndToEnd drives the whole chain — classify, build, HTTP fetch,
// decode, format — against a stub calculator.
func TestRun_EndToEnd(t *testing.T) {
	var gotQueries []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQueries = append(gotQueries, r.URL.RawQuery)
		_, err := io.WriteString(w, testResponse)
		require.NoError(t, err)
	}))
	defer srv.Close()

	cfg := &config.Config{EndpointURL: srv.URL, RequestTimeout: 0}
	logger := discardLogger()
	metrics := observability.NewMetricsForTesting()
	client := geomag.NewClient(cfg, metrics, logger)
	p := pipeline.New(client, logger, metrics, pipeline.Options{Header: true})

	input := "# coastal waypoints\n" +
		testLine + "\n" +
		"short line\n"

	var out strings.Builder
	require.NoError(t, p.Run(context.Background(), strings.NewReader(input), &out))

	lines := splitLines(out.String())
	require.Len(t, lines, 5)
	assert.Contains(t, lines[0], "DATE")
	assert.Equal(t, "# coastal waypoints", lines[1])
	assert.Equal(t, formattedLine, lines[2])
	assert.Contains(t, lines[3], "#!")
	assert.Equal(t, "short line", lines[4])

	require.Len(t, gotQueries, 1)
	assert.Contains(t, gotQueries[0], "lat1Hemisphere=N")
	assert.Contains(t, gotQueries[0], "lon1Hemisphere=W")
}
