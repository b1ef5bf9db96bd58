// Command geomag-mock serves calculator responses in the NOAA tabular format
// so declination batches can run offline. Point the tool at it with
// GEOMAG_URL or --endpoint:
//
//	geomag-mock --addr :8181 &
//	declination --endpoint http://localhost:8181/calc -i waypoints.txt
//
// Declination values are synthetic but deterministic in the requested
// coordinates, so repeated runs produce identical output.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"
)

func main() {
	addr := flag.String("addr", ":8181", "listen address")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", handleCalculate(logger))

	logger.Info("mock calculator listening", "addr", *addr)
	srv := &http.Server{
		Addr:         *addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func handleCalculate(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		lat, latErr := strconv.ParseFloat(q.Get("lat1"), 64)
		lon, lonErr := strconv.ParseFloat(q.Get("lon1"), 64)
		if latErr != nil || lonErr != nil {
			http.Error(w, "lat1 and lon1 must be decimal degrees", http.StatusBadRequest)
			return
		}

		decYear := decimalYear(q.Get("startYear"), q.Get("startMonth"), q.Get("startDay"))

		// Synthetic but stable: declination varies smoothly with position.
		declination := 0.08*lat - 0.03*lon

		logger.Info("calculate", "lat", lat, "lon", lon, "decimal_year", decYear)

		// Echo the real service's shape: a commentary line, the data row
		// (East-positive longitude), and a trailing newline so the data
		// row sits second-to-last.
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		fmt.Fprintln(w, "Magnetic declination (mock)")
		fmt.Fprintf(w, "%.5f,%.1f,%.1f,0.0,%.5f,-0.10000,0.50000\n",
			decYear, lat, -lon, declination)
	}
}

// decimalYear converts the requested date to a fractional year, falling back
// to the current date when the fields do not parse.
func decimalYear(year, month, day string) float64 {
	y, errY := strconv.Atoi(year)
	m, errM := strconv.Atoi(month)
	d, errD := strconv.Atoi(day)

	t := time.Now().UTC()
	if errY == nil && errM == nil && errD == nil {
		t = time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
	}
	return float64(t.Year()) + float64(t.YearDay()-1)/365.0
}
